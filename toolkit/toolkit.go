/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package toolkit exposes the marketing operations the service offers. Each
// operation binds a prompt template, picks grounding or a response schema,
// and runs the shared generation pipeline.
package toolkit

import (
	"context"
	"fmt"
	"time"

	"chainguard.dev/brandaf/pipeline"
	"chainguard.dev/brandaf/prompt"
	"chainguard.dev/brandaf/schema"
)

var strategicAnalysisTemplate = prompt.Must(`You are an elite business strategy consultant specializing in market positioning and accelerated growth. Your task is to create a strategic plan and brand activation proposal for the following business or sector: "{{query}}".
{{socialContext}}
Your mission is to produce a strategic analysis report. Use the Google search tool to base the analysis on real data, especially for the competitor section.

Response format: your answer MUST be a single JSON object with no text or explanation outside it. The response must start with '{' and end with '}'.

Instructions:
1. Complete JSON: every field in the example below is mandatory. If search returns no data for a field (such as 'activeCampaignsSummary'), fill it with a plausible analysis for the sector. Never leave fields blank or as 'N/A'.
2. Real competitors: identify real competitors and fill in every field for each one.
3. Quality: accuracy is critical. The response must be complete and professional.
4. Structure: follow the example JSON object exactly.

Example JSON structure:
{{example}}`)

var socialPlanTemplate = prompt.Must(`You are a senior social media strategist. Your task is to create a monthly content plan for a client.

Client: {{clientName}}
Business description: {{businessDescription}}
Social profiles: {{socialLinks}}

Task requirements:
- Target month: {{month}}. Distribute the posts across that month in the current year.
- Total posts: create exactly {{totalPosts}} posts.
- Sales funnel mix:
  - Top of funnel: {{topPercent}}% of posts.
  - Middle of funnel: {{middlePercent}}% of posts.
  - Bottom of funnel: {{bottomPercent}}% of posts.

Generate a creative content plan aligned with the client's business, following the provided JSON schema exactly. Every post must have status 'Not started'.`)

var reportAnalysisTemplate = prompt.Must(`You are a market analyst and branding strategist. Analyze the report below and extract insights to build marketing personas and creative recommendations.

Report:
"""
{{report}}
"""

Response format: your answer MUST be a single JSON object following this structure.

JSON structure:
{{example}}`)

var creativePerformanceTemplate = prompt.Must(`You are a creative director and ad performance specialist. Analyze the attached image in the context of the "{{marketSegment}}" segment and the "{{creativeFormat}}" format. Use Google search to find real success benchmarks from the same industry.

Response format: your answer MUST be a single JSON object following this structure.

JSON structure:
{{example}}`)

var contractAnalysisTemplate = prompt.Must(`You are an agency operations assistant. Your task is to analyze the text of a contract and extract key information.

Contract text:
"""
{{contract}}
"""

Available service modules:
{{modules}}

Instructions:
1. Read the contract and identify the client name.
2. Find the start date and the monthly fee.
3. Compare the services described in the contract against the available modules and identify the matching module IDs.

Response format: your answer MUST be a single JSON object.

JSON structure:
{{example}}`)

var variationsTemplate = prompt.Must(`You are a senior copywriter and ad strategist. Create 5 creative variations for a digital marketing campaign based on the information below.

Product or service: {{product}}
Target audience: {{audience}}
Key message or offer: {{message}}

Instructions:
- Create 5 variations, each with a different communication angle (for example social proof, urgency, main benefit, curiosity, pain versus pleasure).
- For each variation provide a headline, body copy, visual suggestion, CTA, and recommended platform.

Response format: your answer MUST be a JSON object containing a "variations" array.

JSON structure:
{{example}}`)

var profileAnalysisTemplate = prompt.Must(`You are a digital marketing consultant specializing in social media audits. Your task is to analyze the given social profile and produce a complete SWOT analysis with strategic recommendations. Use the Google search tool to gather data about the profile.

Profile to analyze: {{profileURL}}
Business objectives: {{objectives}}

Response format: your answer MUST be a single JSON object.

JSON structure:
{{example}}`)

// Toolkit runs marketing operations through a shared generation pipeline.
type Toolkit struct {
	pipeline *pipeline.Pipeline
}

// New wires a toolkit around a pipeline.
func New(p *pipeline.Pipeline) (*Toolkit, error) {
	if p == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	return &Toolkit{pipeline: p}, nil
}

// run executes a request and decodes the result into T. Grounded requests
// come back with their sources already attached, so the decode picks those
// up through the result type's sources field.
func run[T any](ctx context.Context, tk *Toolkit, req pipeline.Request) (T, error) {
	var zero T
	value, err := tk.pipeline.Execute(ctx, req)
	if err != nil {
		return zero, err
	}
	return pipeline.Decode[T](value)
}

// StrategicAnalysisInput describes the business a strategic analysis is
// requested for. SocialLink optionally anchors the analysis on an existing
// profile or website.
type StrategicAnalysisInput struct {
	Query      string `json:"query"`
	SocialLink string `json:"socialLink,omitempty"`
}

// StrategicAnalysis produces a grounded brand-activation report.
func (tk *Toolkit) StrategicAnalysis(ctx context.Context, in StrategicAnalysisInput) (*StrategicAnalysis, error) {
	if in.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	socialContext := ""
	if in.SocialLink != "" {
		socialContext = fmt.Sprintf("\nFor a more precise analysis, consider the profile or website %s. It represents the business being analyzed. Use it as the main reference for brand identity, strengths and weaknesses, and the target audience.\n", in.SocialLink)
	}

	example := StrategicAnalysis{
		Title:            fmt.Sprintf("Strategic Plan for %s", in.Query),
		ExecutiveSummary: "A concise executive summary of the strategic analysis...",
		MarketKPIs: []KPI{{
			Title:       "Market Size",
			Value:       "$500M",
			Description: "Estimate for the gourmet pizza market.",
		}},
		MarketAnalysis: MarketAnalysis{
			Overview:      "Market overview...",
			Trends:        "Current trends...",
			Opportunities: "Identified opportunities...",
		},
		CompetitiveLandscape: CompetitiveLandscape{
			Overview: "Overall analysis of the competition...",
			Competitors: []Competitor{{
				Name:        "Real Example Competitor",
				Description: "Short description of the competitor",
				Strengths:   []string{"Strength 1", "Strength 2"},
				Weaknesses:  []string{"Weakness 1", "Weakness 2"},
				SocialPresence: SocialPresence{
					WebsiteURL: "https://www.realcompetitor.com",
					Instagram:  "https://instagram.com/real",
				},
				EstimatedMonthlyTraffic: "50K - 75K",
				TopKeywords:             []string{"artisan pizza", "pizza delivery"},
				ActiveCampaignsSummary:  "Heavy investment in local paid traffic on Instagram.",
				SocialEngagement: &SocialEngagement{
					Platform:       "Instagram",
					EngagementRate: "2.5%",
					Followers:      "80K",
				},
			}},
		},
		StrategicRecommendations: "Detailed recommendations here...",
		ActionPlan: []ActionStep{{
			Phase:       "Phase 1 (0-3 months)",
			Step:        "1. Digital Presence Optimization",
			Description: "Description of the step",
			Details:     []string{"Detail 1", "Detail 2"},
		}},
	}

	p, err := bind(strategicAnalysisTemplate,
		binding{"query", in.Query},
		binding{"socialContext", socialContext},
		jsonBinding{"example", example})
	if err != nil {
		return nil, err
	}

	result, err := run[StrategicAnalysis](ctx, tk, pipeline.Request{
		Prompt:       p,
		UseGrounding: true,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SocialPlanInput describes a monthly content plan request.
type SocialPlanInput struct {
	Profile      SocialProfile `json:"profile"`
	Month        time.Month    `json:"month"`
	PostsPerWeek int           `json:"postsPerWeek"`
	ContentMix   ContentMix    `json:"contentMix"`
}

func (in *SocialPlanInput) validate() error {
	if in.Profile.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if in.Month < time.January || in.Month > time.December {
		return fmt.Errorf("month %d out of range", in.Month)
	}
	if in.PostsPerWeek <= 0 {
		return fmt.Errorf("posts per week must be positive")
	}
	if sum := in.ContentMix.Top + in.ContentMix.Middle + in.ContentMix.Bottom; sum != 100 {
		return fmt.Errorf("content mix must total 100%%, got %d%%", sum)
	}
	return nil
}

// GenerateSocialPlan produces a month of scheduled posts. The plan covers
// four weeks, so the total is four times the weekly cadence.
func (tk *Toolkit) GenerateSocialPlan(ctx context.Context, in SocialPlanInput) ([]SocialPost, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	totalPosts := in.PostsPerWeek * 4

	links := ""
	for i, l := range in.Profile.SocialLinks {
		if i > 0 {
			links += ", "
		}
		links += fmt.Sprintf("%s: %s", l.Platform, l.URL)
	}

	p, err := bind(socialPlanTemplate,
		binding{"clientName", in.Profile.Name},
		binding{"businessDescription", in.Profile.BusinessDescription},
		binding{"socialLinks", links},
		binding{"month", in.Month.String()},
		binding{"totalPosts", fmt.Sprint(totalPosts)},
		binding{"topPercent", fmt.Sprint(in.ContentMix.Top)},
		binding{"middlePercent", fmt.Sprint(in.ContentMix.Middle)},
		binding{"bottomPercent", fmt.Sprint(in.ContentMix.Bottom)})
	if err != nil {
		return nil, err
	}

	return run[[]SocialPost](ctx, tk, pipeline.Request{
		Prompt:         p,
		ResponseSchema: schema.ForSlice[SocialPost](),
	})
}

// AnalyzeReport turns a client performance report into personas and
// creative recommendations.
func (tk *Toolkit) AnalyzeReport(ctx context.Context, reportText string) (*ReportAnalysis, error) {
	if reportText == "" {
		return nil, fmt.Errorf("report text is required")
	}

	example := ReportAnalysis{
		AnalysisTitle:    "Analysis Title (e.g. 'Market Analysis for a Clothing Brand')",
		StrategicSummary: "A 2-3 sentence summary with the main strategic insight from the report.",
		Personas: []Persona{{
			Name: "Persona Name", Age: 30, JobTitle: "Profession",
			IncomeLevel: "Income", Location: "Location", Bio: "Short biography",
			PainPoints: []string{"Pain point 1"}, Goals: []string{"Goal 1"},
			Motivations:           []string{"Motivation 1"},
			CommunicationChannels: []string{"Instagram", "Email"},
		}},
		SuccessfulCreatives: []SuccessfulCreative{{
			Theme: "Creative Theme", Description: "Description of the successful creative",
			SuccessReason: "Why it worked",
			Metrics: CreativeMetrics{
				CTR: "Estimated CTR", ConversionRate: "Estimated conversion rate",
				Engagement: "Estimated engagement",
			},
		}},
		CreativePerformanceMetrics: []CreativeMetricPoint{
			{Name: "Theme A", Performance: 85},
			{Name: "Theme B", Performance: 60},
		},
	}

	p, err := bind(reportAnalysisTemplate,
		binding{"report", reportText},
		jsonBinding{"example", example})
	if err != nil {
		return nil, err
	}

	result, err := run[ReportAnalysis](ctx, tk, pipeline.Request{
		Prompt:           p,
		StructuredOutput: true,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PerformanceInput describes an uploaded ad creative to score.
type PerformanceInput struct {
	Image          pipeline.Media `json:"-"`
	MarketSegment  string         `json:"marketSegment"`
	CreativeFormat string         `json:"creativeFormat"`
}

// AnalyzeCreativePerformance scores an uploaded creative and finds grounded
// industry benchmarks to compare it against.
func (tk *Toolkit) AnalyzeCreativePerformance(ctx context.Context, in PerformanceInput) (*PerformanceAnalysis, error) {
	if len(in.Image.Data) == 0 {
		return nil, fmt.Errorf("creative image is required")
	}
	if in.MarketSegment == "" {
		return nil, fmt.Errorf("market segment is required")
	}
	if in.CreativeFormat == "" {
		return nil, fmt.Errorf("creative format is required")
	}

	example := PerformanceAnalysis{
		Title: "Creative Performance Analysis",
		Thermometer: PerformanceThermometer{
			OverallTier:  "High Performance",
			OverallScore: 88,
			Summary:      "Summary of your evaluation.",
			Metrics: []PerformanceMetric{{
				Name: "Message Clarity", Score: 90, Analysis: "Justification for the score.",
			}},
		},
		OptimizationTips: []string{"Optimization tip 1.", "Tip 2."},
		Benchmarks: []BenchmarkCreative{{
			Title:               "E.g. Nike - Emotional Storytelling",
			BrandName:           "Nike",
			BrandDomain:         "nike.com",
			Channel:             "YouTube",
			SourceURL:           "Real URL of the campaign or an article about it",
			Concept:             "Description of the real creative's concept.",
			SuccessReason:       "Why this creative succeeded.",
			PerformanceInsights: "Real performance insight, citing the source where possible.",
			VideoURL:            "Video URL if applicable",
			VideoAnalysis: &VideoAnalysis{
				Hook:     "Analysis of the first 3 seconds.",
				Rhythm:   "Pacing analysis.",
				Branding: "Branding analysis.",
				CTA:      "CTA analysis.",
			},
		}},
	}

	p, err := bind(creativePerformanceTemplate,
		binding{"marketSegment", in.MarketSegment},
		binding{"creativeFormat", in.CreativeFormat},
		jsonBinding{"example", example})
	if err != nil {
		return nil, err
	}

	result, err := run[PerformanceAnalysis](ctx, tk, pipeline.Request{
		Prompt:       p,
		UseGrounding: true,
		Media:        &in.Image,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeContract extracts client, billing, and service-module information
// from contract text, matching services against the given module templates.
func (tk *Toolkit) AnalyzeContract(ctx context.Context, contractText string, modules []ModuleTemplate) (*ContractAnalysis, error) {
	if contractText == "" {
		return nil, fmt.Errorf("contract text is required")
	}

	example := ContractAnalysis{
		ClientName:          "Extracted Client Name",
		StartDate:           "YYYY-MM-DD",
		MonthlyFee:          1500.00,
		IdentifiedModuleIDs: []string{"mod_design_1", "mod_traffic_1"},
	}

	p, err := bind(contractAnalysisTemplate,
		binding{"contract", contractText},
		jsonBinding{"modules", modules},
		jsonBinding{"example", example})
	if err != nil {
		return nil, err
	}

	result, err := run[ContractAnalysis](ctx, tk, pipeline.Request{
		Prompt:           p,
		StructuredOutput: true,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// VariationInput is the campaign brief variations are generated from.
type VariationInput struct {
	ProductInfo    string `json:"productInfo"`
	TargetAudience string `json:"targetAudience"`
	KeyMessage     string `json:"keyMessage"`
}

// GenerateVariations produces five ad variations with distinct angles for
// one campaign brief.
func (tk *Toolkit) GenerateVariations(ctx context.Context, in VariationInput) (*VariationSet, error) {
	if in.ProductInfo == "" {
		return nil, fmt.Errorf("product info is required")
	}

	example := VariationSet{
		Variations: []CreativeVariation{{
			Angle:            "Social Proof (Testimonials)",
			Headline:         "See what our customers say!",
			BodyCopy:         "Ad copy focused on testimonials.",
			VisualSuggestion: "Carousel with customer testimonial screenshots.",
			CTA:              "Buy now",
			Platform:         "Instagram Feed",
		}},
	}

	p, err := bind(variationsTemplate,
		binding{"product", in.ProductInfo},
		binding{"audience", in.TargetAudience},
		binding{"message", in.KeyMessage},
		jsonBinding{"example", example})
	if err != nil {
		return nil, err
	}

	result, err := run[VariationSet](ctx, tk, pipeline.Request{
		Prompt:           p,
		StructuredOutput: true,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeProfile audits a public social profile against the stated business
// objectives, grounded on live search data.
func (tk *Toolkit) AnalyzeProfile(ctx context.Context, profileURL, businessObjectives string) (*ProfileAnalysis, error) {
	if profileURL == "" {
		return nil, fmt.Errorf("profile URL is required")
	}

	example := ProfileAnalysis{
		ProfileOverview:         "A general summary of the profile, first impression, and positioning.",
		ContentStrategyAnalysis: "Analysis of the editorial line, content formats, and frequency.",
		AudienceAnalysis:        "Analysis of the target audience, engagement, and community.",
		SWOTAnalysis: SWOT{
			Strengths:     []SWOTPoint{{Title: "Strength 1", Description: "Description of the strength."}},
			Weaknesses:    []SWOTPoint{{Title: "Weakness 1", Description: "Description of the weakness."}},
			Opportunities: []SWOTPoint{{Title: "Opportunity 1", Description: "Description of the market opportunity."}},
			Threats:       []SWOTPoint{{Title: "Threat 1", Description: "Description of the external threat."}},
		},
		Recommendations: []Recommendation{{
			Priority:       "High",
			Recommendation: "Clear actionable strategic recommendation.",
			Reason:         "Justification for the recommendation.",
		}},
	}

	p, err := bind(profileAnalysisTemplate,
		binding{"profileURL", profileURL},
		binding{"objectives", businessObjectives},
		jsonBinding{"example", example})
	if err != nil {
		return nil, err
	}

	result, err := run[ProfileAnalysis](ctx, tk, pipeline.Request{
		Prompt:       p,
		UseGrounding: true,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ClearCache drops all cached results.
func (tk *Toolkit) ClearCache() {
	tk.pipeline.ClearCache()
}

type binding struct {
	name  string
	value string
}

type jsonBinding struct {
	name  string
	value any
}

// bind applies a mix of literal and JSON bindings and builds the prompt.
func bind(t *prompt.Template, bindings ...any) (string, error) {
	var err error
	for _, b := range bindings {
		switch b := b.(type) {
		case binding:
			t, err = t.Bind(b.name, b.value)
		case jsonBinding:
			t, err = t.BindJSON(b.name, b.value)
		default:
			err = fmt.Errorf("unsupported binding %T", b)
		}
		if err != nil {
			return "", err
		}
	}
	return t.Build()
}
