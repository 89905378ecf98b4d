/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the brandaf service: the marketing toolkit hosted over
// HTTP, backed by the Gemini generation pipeline.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"google.golang.org/genai"

	"chainguard.dev/brandaf/metrics"
	"chainguard.dev/brandaf/pipeline"
	"chainguard.dev/brandaf/pipeline/cache"
	"chainguard.dev/brandaf/pipeline/gateway"
	"chainguard.dev/brandaf/pipeline/retry"
	"chainguard.dev/brandaf/server"
	"chainguard.dev/brandaf/toolkit"
)

type config struct {
	Port   int    `env:"PORT,default=8080"`
	APIKey string `env:"GEMINI_API_KEY,required"`

	Model           string        `env:"MODEL,default=gemini-2.5-flash"`
	MaxOutputTokens int32         `env:"MAX_OUTPUT_TOKENS,default=8192"`
	CacheTTL        time.Duration `env:"CACHE_TTL,default=1h"`

	RetryMaxAttempts int           `env:"RETRY_MAX_ATTEMPTS,default=3"`
	RetryBaseDelay   time.Duration `env:"RETRY_BASE_DELAY,default=1s"`
	RetryMaxDelay    time.Duration `env:"RETRY_MAX_DELAY,default=60s"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		clog.FatalContextf(ctx, "creating genai client: %v", err)
	}

	genaiMetrics := metrics.NewGenAI("chainguard.dev/brandaf")

	gw, err := gateway.New(client, gateway.WithMetrics(genaiMetrics))
	if err != nil {
		clog.FatalContextf(ctx, "creating gateway: %v", err)
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.RetryMaxAttempts
	retryCfg.BaseDelay = cfg.RetryBaseDelay
	retryCfg.MaxDelay = cfg.RetryMaxDelay

	p, err := pipeline.New(gw,
		pipeline.WithCache(cache.New(cache.WithTTL(cfg.CacheTTL))),
		pipeline.WithRetryConfig(retryCfg),
		pipeline.WithMetrics(genaiMetrics),
		pipeline.WithDefaultModel(cfg.Model),
		pipeline.WithDefaultMaxOutputTokens(cfg.MaxOutputTokens))
	if err != nil {
		clog.FatalContextf(ctx, "creating pipeline: %v", err)
	}

	tk, err := toolkit.New(p)
	if err != nil {
		clog.FatalContextf(ctx, "creating toolkit: %v", err)
	}

	srv, err := server.New(tk, p, cfg.Port)
	if err != nil {
		clog.FatalContextf(ctx, "creating server: %v", err)
	}

	clog.InfoContextf(ctx, "Starting brandaf with model %s", cfg.Model)
	if err := srv.ListenAndServe(ctx); err != nil {
		clog.FatalContextf(ctx, "serving: %v", err)
	}
}
