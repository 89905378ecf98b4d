/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolkit_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"chainguard.dev/brandaf/pipeline"
	"chainguard.dev/brandaf/toolkit"
	"google.golang.org/genai"
)

// fakeCaller records the last request and plays back a scripted response.
type fakeCaller struct {
	lastReq pipeline.Request
	resp    *pipeline.ModelResponse
	err     error
}

func (f *fakeCaller) Generate(_ context.Context, req pipeline.Request) (*pipeline.ModelResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newToolkit(t *testing.T, caller *fakeCaller) *toolkit.Toolkit {
	t.Helper()
	p, err := pipeline.New(caller)
	if err != nil {
		t.Fatalf("pipeline.New() error = %v", err)
	}
	tk, err := toolkit.New(p)
	if err != nil {
		t.Fatalf("toolkit.New() error = %v", err)
	}
	return tk
}

func TestStrategicAnalysis(t *testing.T) {
	caller := &fakeCaller{resp: &pipeline.ModelResponse{
		Text: "```json\n" + `{
			"title": "Strategic Plan for Acme Coffee",
			"executiveSummary": "Premium positioning with room to grow.",
			"marketKpis": [{"title": "Market Size", "value": "$2B", "description": "Specialty coffee."}],
			"marketAnalysis": {"overview": "o", "trends": "t", "opportunities": "p"},
			"competitiveLandscape": {"overview": "crowded", "competitors": [
				{"name": "Beans Co", "description": "d", "strengths": ["s"], "weaknesses": ["w"],
				 "socialPresence": {"instagram": "https://instagram.com/beans"},
				 "estimatedMonthlyTraffic": "10K", "topKeywords": ["coffee"],
				 "activeCampaignsSummary": "always-on"}
			]},
			"strategicRecommendations": "Focus on subscriptions.",
			"actionPlan": [{"phase": "Phase 1", "step": "1", "description": "d", "details": ["x"]}]
		}` + "\n```",
		GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A"}},
			{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "dup"}},
			{Web: &genai.GroundingChunkWeb{URI: "https://b.example"}},
		},
	}}
	tk := newToolkit(t, caller)

	got, err := tk.StrategicAnalysis(context.Background(), toolkit.StrategicAnalysisInput{
		Query:      "Acme Coffee",
		SocialLink: "https://instagram.com/acmecoffee",
	})
	if err != nil {
		t.Fatalf("StrategicAnalysis() error = %v", err)
	}

	if !caller.lastReq.UseGrounding {
		t.Error("strategic analysis must request grounding")
	}
	if !strings.Contains(caller.lastReq.Prompt, "Acme Coffee") {
		t.Error("prompt missing the business query")
	}
	if !strings.Contains(caller.lastReq.Prompt, "https://instagram.com/acmecoffee") {
		t.Error("prompt missing the social link context")
	}

	if got.Title != "Strategic Plan for Acme Coffee" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.CompetitiveLandscape.Competitors) != 1 || got.CompetitiveLandscape.Competitors[0].Name != "Beans Co" {
		t.Errorf("competitors = %#v", got.CompetitiveLandscape.Competitors)
	}
	if len(got.Sources) != 2 {
		t.Fatalf("sources = %#v, want deduplicated pair", got.Sources)
	}
	if got.Sources[0].URI != "https://a.example" || got.Sources[0].Title != "A" {
		t.Errorf("sources[0] = %#v", got.Sources[0])
	}
	if got.Sources[1].Title != "https://b.example" {
		t.Errorf("sources[1] title should fall back to the URI, got %#v", got.Sources[1])
	}
}

func TestStrategicAnalysisRequiresQuery(t *testing.T) {
	tk := newToolkit(t, &fakeCaller{})
	if _, err := tk.StrategicAnalysis(context.Background(), toolkit.StrategicAnalysisInput{}); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestGenerateSocialPlan(t *testing.T) {
	caller := &fakeCaller{resp: &pipeline.ModelResponse{
		Text: `[
			{"date": "2026-09-02", "title": "Launch teaser", "copy": "c", "status": "Not started",
			 "funnelStage": "Top", "objective": "Increase reach", "visualSuggestion": "Short video",
			 "channel": "Instagram Feed"},
			{"date": "2026-09-05", "title": "Case study", "copy": "c", "status": "Not started",
			 "funnelStage": "Bottom", "objective": "Collect leads", "visualSuggestion": "Carousel",
			 "channel": "Email"}
		]`,
	}}
	tk := newToolkit(t, caller)

	posts, err := tk.GenerateSocialPlan(context.Background(), toolkit.SocialPlanInput{
		Profile: toolkit.SocialProfile{
			Name:                "Acme Coffee",
			BusinessDescription: "Specialty coffee subscriptions",
			SocialLinks: []toolkit.SocialLink{
				{Platform: "Instagram", URL: "https://instagram.com/acme"},
			},
		},
		Month:        time.September,
		PostsPerWeek: 3,
		ContentMix:   toolkit.ContentMix{Top: 50, Middle: 30, Bottom: 20},
	})
	if err != nil {
		t.Fatalf("GenerateSocialPlan() error = %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d", len(posts))
	}
	if posts[0].Channel != "Instagram Feed" || posts[1].FunnelStage != "Bottom" {
		t.Errorf("unexpected posts: %#v", posts)
	}

	req := caller.lastReq
	if req.UseGrounding {
		t.Error("plan generation must not use grounding")
	}
	if req.ResponseSchema == nil || req.ResponseSchema.Type != genai.TypeArray {
		t.Fatalf("expected an array response schema, got %#v", req.ResponseSchema)
	}
	if req.ResponseSchema.Items == nil || req.ResponseSchema.Items.Properties["channel"] == nil {
		t.Error("schema items missing post properties")
	}
	if !strings.Contains(req.Prompt, "exactly 12 posts") {
		t.Errorf("prompt should ask for 12 posts, got %q", req.Prompt)
	}
	if !strings.Contains(req.Prompt, "September") {
		t.Error("prompt missing the target month")
	}
}

func TestGenerateSocialPlanValidation(t *testing.T) {
	tk := newToolkit(t, &fakeCaller{})
	valid := toolkit.SocialPlanInput{
		Profile:      toolkit.SocialProfile{Name: "Acme"},
		Month:        time.March,
		PostsPerWeek: 2,
		ContentMix:   toolkit.ContentMix{Top: 40, Middle: 30, Bottom: 30},
	}

	tests := []struct {
		name   string
		mutate func(*toolkit.SocialPlanInput)
	}{
		{"missing profile name", func(in *toolkit.SocialPlanInput) { in.Profile.Name = "" }},
		{"month out of range", func(in *toolkit.SocialPlanInput) { in.Month = 13 }},
		{"zero posts", func(in *toolkit.SocialPlanInput) { in.PostsPerWeek = 0 }},
		{"mix not 100", func(in *toolkit.SocialPlanInput) { in.ContentMix.Top = 90 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			if _, err := tk.GenerateSocialPlan(context.Background(), in); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestAnalyzeReport(t *testing.T) {
	caller := &fakeCaller{resp: &pipeline.ModelResponse{
		Text: `{
			"analysisTitle": "Market Analysis for a Clothing Brand",
			"strategicSummary": "UGC outperforms studio shots.",
			"personas": [{"name": "Maya", "age": 28, "jobTitle": "Designer", "incomeLevel": "mid",
				"location": "Austin", "bio": "b", "painPoints": ["p"], "goals": ["g"],
				"motivations": ["m"], "communicationChannels": ["Instagram"]}],
			"successfulCreatives": [{"theme": "UGC", "description": "d", "successReason": "r",
				"metrics": {"ctr": "2%", "conversionRate": "1%", "engagement": "high"}}],
			"creativePerformanceMetrics": [{"name": "UGC", "performance": 85}]
		}`,
	}}
	tk := newToolkit(t, caller)

	got, err := tk.AnalyzeReport(context.Background(), "Q3 report: UGC creatives drove 2x CTR.")
	if err != nil {
		t.Fatalf("AnalyzeReport() error = %v", err)
	}
	if len(got.Personas) != 1 || got.Personas[0].Name != "Maya" {
		t.Errorf("personas = %#v", got.Personas)
	}
	if caller.lastReq.UseGrounding {
		t.Error("report analysis must not use grounding")
	}
	if !caller.lastReq.StructuredOutput {
		t.Error("report analysis should request JSON output")
	}
	if !strings.Contains(caller.lastReq.Prompt, "UGC creatives drove 2x CTR") {
		t.Error("prompt missing the report text")
	}
}

func TestAnalyzeCreativePerformance(t *testing.T) {
	caller := &fakeCaller{resp: &pipeline.ModelResponse{
		Text: `{
			"title": "Creative Performance Analysis",
			"thermometer": {"overallTier": "High Performance", "overallScore": 88,
				"summary": "s", "metrics": [{"name": "Message Clarity", "score": 90, "analysis": "a"}]},
			"optimizationTips": ["Add a clearer CTA."],
			"benchmarks": [{"title": "Nike - Emotional Storytelling", "brandName": "Nike",
				"brandDomain": "nike.com", "channel": "YouTube", "sourceUrl": "https://example.com",
				"concept": "c", "successReason": "r", "performanceInsights": "i"}]
		}`,
		GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{URI: "https://adlibrary.example", Title: "Ad Library"}},
		},
	}}
	tk := newToolkit(t, caller)

	got, err := tk.AnalyzeCreativePerformance(context.Background(), toolkit.PerformanceInput{
		Image:          pipeline.Media{Data: []byte{0x89, 0x50, 0x4e, 0x47}, MIMEType: "image/png"},
		MarketSegment:  "fitness apparel",
		CreativeFormat: "Instagram Story",
	})
	if err != nil {
		t.Fatalf("AnalyzeCreativePerformance() error = %v", err)
	}
	if got.Thermometer.OverallScore != 88 {
		t.Errorf("score = %d", got.Thermometer.OverallScore)
	}
	if len(got.Sources) != 1 || got.Sources[0].Title != "Ad Library" {
		t.Errorf("sources = %#v", got.Sources)
	}

	req := caller.lastReq
	if !req.UseGrounding {
		t.Error("creative performance must request grounding")
	}
	if req.Media == nil || req.Media.MIMEType != "image/png" {
		t.Fatalf("media not forwarded: %#v", req.Media)
	}
	if !strings.Contains(req.Prompt, "fitness apparel") {
		t.Error("prompt missing the market segment")
	}
}

func TestAnalyzeContract(t *testing.T) {
	caller := &fakeCaller{resp: &pipeline.ModelResponse{
		Text: "Here is the extraction:\n" + `{
			"clientName": "Acme Coffee",
			"startDate": "2026-10-01",
			"monthlyFee": 4500.00,
			"identifiedModuleIds": ["mod_design_1", "mod_traffic_1"]
		}`,
	}}
	tk := newToolkit(t, caller)

	modules := []toolkit.ModuleTemplate{
		{ID: "mod_design_1", Name: "4 Monthly Static Creatives", Team: "Design"},
		{ID: "mod_traffic_1", Name: "Paid Traffic Management", Team: "Traffic"},
	}
	got, err := tk.AnalyzeContract(context.Background(), "Service agreement with Acme Coffee...", modules)
	if err != nil {
		t.Fatalf("AnalyzeContract() error = %v", err)
	}
	if got.ClientName != "Acme Coffee" || got.MonthlyFee != 4500.00 {
		t.Errorf("result = %#v", got)
	}
	if len(got.IdentifiedModuleIDs) != 2 {
		t.Errorf("module ids = %#v", got.IdentifiedModuleIDs)
	}
	if !strings.Contains(caller.lastReq.Prompt, "mod_design_1") {
		t.Error("prompt missing the module catalogue")
	}
}

func TestGenerateVariations(t *testing.T) {
	caller := &fakeCaller{resp: &pipeline.ModelResponse{
		Text: `{"variations": [
			{"angle": "Urgency", "headline": "Last chance", "bodyCopy": "b",
			 "visualSuggestion": "v", "cta": "Buy now", "platform": "TikTok"}
		]}`,
	}}
	tk := newToolkit(t, caller)

	got, err := tk.GenerateVariations(context.Background(), toolkit.VariationInput{
		ProductInfo:    "Monthly coffee subscription",
		TargetAudience: "Remote workers",
		KeyMessage:     "First box half price",
	})
	if err != nil {
		t.Fatalf("GenerateVariations() error = %v", err)
	}
	if len(got.Variations) != 1 || got.Variations[0].Angle != "Urgency" {
		t.Errorf("variations = %#v", got.Variations)
	}
	if !strings.Contains(caller.lastReq.Prompt, "First box half price") {
		t.Error("prompt missing the key message")
	}
}

func TestAnalyzeProfile(t *testing.T) {
	caller := &fakeCaller{resp: &pipeline.ModelResponse{
		Text: `{
			"profileOverview": "Clean visual identity.",
			"contentStrategyAnalysis": "Reels heavy.",
			"audienceAnalysis": "Young professionals.",
			"swotAnalysis": {
				"strengths": [{"title": "Consistency", "description": "d"}],
				"weaknesses": [{"title": "Low reach", "description": "d"}],
				"opportunities": [{"title": "Collabs", "description": "d"}],
				"threats": [{"title": "Competitors", "description": "d"}]
			},
			"recommendations": [{"priority": "High", "recommendation": "Post 3x weekly", "reason": "r"}]
		}`,
		GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{URI: "https://instagram.com/acme", Title: "Acme"}},
		},
	}}
	tk := newToolkit(t, caller)

	got, err := tk.AnalyzeProfile(context.Background(), "https://instagram.com/acme", "Grow qualified followers")
	if err != nil {
		t.Fatalf("AnalyzeProfile() error = %v", err)
	}
	if len(got.SWOTAnalysis.Strengths) != 1 {
		t.Errorf("swot = %#v", got.SWOTAnalysis)
	}
	if len(got.Sources) != 1 {
		t.Errorf("sources = %#v", got.Sources)
	}
	if !caller.lastReq.UseGrounding {
		t.Error("profile analysis must request grounding")
	}
}
