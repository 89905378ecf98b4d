/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package server hosts the toolkit over HTTP. Every tool is a POST under
// /v1/, cache administration lives under /v1/cache, and pipeline failures
// are rendered as category messages so model internals never reach clients.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"chainguard.dev/brandaf/pipeline"
	"chainguard.dev/brandaf/toolkit"
)

// Server routes toolkit operations.
type Server struct {
	Router   *chi.Mux
	toolkit  *toolkit.Toolkit
	pipeline *pipeline.Pipeline
	port     int
}

// New builds the router around a toolkit. The pipeline handle is used for
// cache administration only.
func New(tk *toolkit.Toolkit, p *pipeline.Pipeline, port int) (*Server, error) {
	if tk == nil {
		return nil, fmt.Errorf("toolkit is required")
	}
	if p == nil {
		return nil, fmt.Errorf("pipeline is required")
	}

	s := &Server{
		Router:   chi.NewRouter(),
		toolkit:  tk,
		pipeline: p,
		port:     port,
	}

	s.Router.Use(requestID)
	s.Router.Use(requestLogger)
	s.Router.Use(middleware.Recoverer)

	s.Router.Route("/v1", func(r chi.Router) {
		r.Post("/strategic-analysis", s.handleStrategicAnalysis)
		r.Post("/social-plan", s.handleSocialPlan)
		r.Post("/report-analysis", s.handleReportAnalysis)
		r.Post("/creative-performance", s.handleCreativePerformance)
		r.Post("/contract-analysis", s.handleContractAnalysis)
		r.Post("/creative-variations", s.handleCreativeVariations)
		r.Post("/profile-analysis", s.handleProfileAnalysis)
		r.Get("/cache/stats", s.handleCacheStats)
		r.Delete("/cache", s.handleCacheClear)
	})

	return s, nil
}

// ListenAndServe blocks serving the router until the context is cancelled,
// then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     s.Router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	clog.InfoContextf(ctx, "Listening on :%d", s.port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleStrategicAnalysis(w http.ResponseWriter, r *http.Request) {
	var in toolkit.StrategicAnalysisInput
	if !decode(w, r, &in) {
		return
	}
	if in.Query == "" {
		writeInvalid(w, "query is required")
		return
	}
	result, err := s.toolkit.StrategicAnalysis(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSocialPlan(w http.ResponseWriter, r *http.Request) {
	var in toolkit.SocialPlanInput
	if !decode(w, r, &in) {
		return
	}
	if in.Profile.Name == "" {
		writeInvalid(w, "profile name is required")
		return
	}
	posts, err := s.toolkit.GenerateSocialPlan(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

type reportAnalysisRequest struct {
	ReportText string `json:"reportText"`
}

func (s *Server) handleReportAnalysis(w http.ResponseWriter, r *http.Request) {
	var in reportAnalysisRequest
	if !decode(w, r, &in) {
		return
	}
	if in.ReportText == "" {
		writeInvalid(w, "reportText is required")
		return
	}
	result, err := s.toolkit.AnalyzeReport(r.Context(), in.ReportText)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type creativePerformanceRequest struct {
	// Image is base64 as produced by encoding/json for []byte.
	Image          []byte `json:"image"`
	MIMEType       string `json:"mimeType"`
	MarketSegment  string `json:"marketSegment"`
	CreativeFormat string `json:"creativeFormat"`
}

func (s *Server) handleCreativePerformance(w http.ResponseWriter, r *http.Request) {
	var in creativePerformanceRequest
	if !decode(w, r, &in) {
		return
	}
	if len(in.Image) == 0 {
		writeInvalid(w, "image is required")
		return
	}
	if in.MIMEType == "" {
		writeInvalid(w, "mimeType is required")
		return
	}
	if in.MarketSegment == "" || in.CreativeFormat == "" {
		writeInvalid(w, "marketSegment and creativeFormat are required")
		return
	}
	result, err := s.toolkit.AnalyzeCreativePerformance(r.Context(), toolkit.PerformanceInput{
		Image:          pipeline.Media{Data: in.Image, MIMEType: in.MIMEType},
		MarketSegment:  in.MarketSegment,
		CreativeFormat: in.CreativeFormat,
	})
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type contractAnalysisRequest struct {
	ContractText string                   `json:"contractText"`
	Modules      []toolkit.ModuleTemplate `json:"modules"`
}

func (s *Server) handleContractAnalysis(w http.ResponseWriter, r *http.Request) {
	var in contractAnalysisRequest
	if !decode(w, r, &in) {
		return
	}
	if in.ContractText == "" {
		writeInvalid(w, "contractText is required")
		return
	}
	result, err := s.toolkit.AnalyzeContract(r.Context(), in.ContractText, in.Modules)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreativeVariations(w http.ResponseWriter, r *http.Request) {
	var in toolkit.VariationInput
	if !decode(w, r, &in) {
		return
	}
	if in.ProductInfo == "" {
		writeInvalid(w, "productInfo is required")
		return
	}
	result, err := s.toolkit.GenerateVariations(r.Context(), in)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type profileAnalysisRequest struct {
	ProfileURL         string `json:"profileUrl"`
	BusinessObjectives string `json:"businessObjectives"`
}

func (s *Server) handleProfileAnalysis(w http.ResponseWriter, r *http.Request) {
	var in profileAnalysisRequest
	if !decode(w, r, &in) {
		return
	}
	if in.ProfileURL == "" {
		writeInvalid(w, "profileUrl is required")
		return
	}
	result, err := s.toolkit.AnalyzeProfile(r.Context(), in.ProfileURL, in.BusinessObjectives)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pipeline.CacheStats())
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.pipeline.ClearCache()
	clog.InfoContext(r.Context(), "Cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

type errorResponse struct {
	Error string `json:"error"`
}

// decode parses the JSON body into v, writing a 400 and returning false on
// failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeInvalid(w, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func writeInvalid(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// writeError maps a toolkit failure onto a status code and the category
// message for its error type.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	clog.FromContext(ctx).With("error", err).Error("Request failed")

	var blocked *pipeline.ContentBlockedError
	var empty *pipeline.EmptyResponseError
	var generation *pipeline.GenerationFailedError
	var malformed *pipeline.MalformedResponseError

	status := http.StatusBadGateway
	switch {
	case errors.As(err, &blocked):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &empty), errors.As(err, &generation), errors.As(err, &malformed):
		status = http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResponse{Error: pipeline.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
