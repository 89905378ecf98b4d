/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolkit

import "chainguard.dev/brandaf/pipeline/grounding"

// KPI is a headline market indicator in a strategic analysis.
type KPI struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// SocialPresence lists a competitor's public profiles.
type SocialPresence struct {
	Instagram  string `json:"instagram,omitempty"`
	Facebook   string `json:"facebook,omitempty"`
	TikTok     string `json:"tiktok,omitempty"`
	WebsiteURL string `json:"websiteUrl,omitempty"`
}

// SocialEngagement summarizes a competitor's engagement on one platform.
type SocialEngagement struct {
	Platform       string `json:"platform"`
	EngagementRate string `json:"engagementRate"`
	Followers      string `json:"followers"`
}

// Competitor is one entry in the competitive landscape.
type Competitor struct {
	Name                    string            `json:"name"`
	Description             string            `json:"description"`
	Strengths               []string          `json:"strengths"`
	Weaknesses              []string          `json:"weaknesses"`
	SocialPresence          SocialPresence    `json:"socialPresence"`
	EstimatedMonthlyTraffic string            `json:"estimatedMonthlyTraffic"`
	TopKeywords             []string          `json:"topKeywords"`
	ActiveCampaignsSummary  string            `json:"activeCampaignsSummary"`
	SocialEngagement        *SocialEngagement `json:"socialEngagement,omitempty"`
}

// ActionStep is one phase of the recommended activation plan.
type ActionStep struct {
	Phase       string   `json:"phase"`
	Step        string   `json:"step"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
}

// MarketAnalysis describes the market a business operates in.
type MarketAnalysis struct {
	Overview      string `json:"overview"`
	Trends        string `json:"trends"`
	Opportunities string `json:"opportunities"`
}

// CompetitiveLandscape describes the competition around a business.
type CompetitiveLandscape struct {
	Overview    string       `json:"overview"`
	Competitors []Competitor `json:"competitors"`
}

// StrategicAnalysis is the full brand-activation report for a business.
// Sources carries the web references the analysis was grounded on.
type StrategicAnalysis struct {
	Title                    string               `json:"title"`
	ExecutiveSummary         string               `json:"executiveSummary"`
	MarketKPIs               []KPI                `json:"marketKpis"`
	MarketAnalysis           MarketAnalysis       `json:"marketAnalysis"`
	CompetitiveLandscape     CompetitiveLandscape `json:"competitiveLandscape"`
	StrategicRecommendations string               `json:"strategicRecommendations"`
	ActionPlan               []ActionStep         `json:"actionPlan"`
	Sources                  []grounding.Source   `json:"sources,omitempty"`
}

// SocialLink points at one of a client's social profiles.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// SocialProfile describes the client a content plan is generated for.
type SocialProfile struct {
	Name                string       `json:"name"`
	BusinessDescription string       `json:"businessDescription"`
	SocialLinks         []SocialLink `json:"socialLinks,omitempty"`
}

// ContentMix splits a monthly plan across the sales funnel, in percent.
type ContentMix struct {
	Top    int `json:"top"`
	Middle int `json:"middle"`
	Bottom int `json:"bottom"`
}

// SocialPost is one scheduled entry in a monthly content plan. The
// jsonschema tags drive the response schema sent with the generation
// request, so field descriptions here are instructions to the model.
type SocialPost struct {
	Date             string `json:"date" jsonschema:"required,description=The post date in YYYY-MM-DD format."`
	Title            string `json:"title" jsonschema:"required,description=Short catchy title for the post."`
	Copy             string `json:"copy" jsonschema:"required,description=Full caption text for the post."`
	Status           string `json:"status" jsonschema:"required,description=Initial status of the post; always 'Not started'."`
	FunnelStage      string `json:"funnelStage" jsonschema:"required,enum=Top,enum=Middle,enum=Bottom,description=The sales funnel stage the post belongs to."`
	Objective        string `json:"objective" jsonschema:"required,description=Specific objective of the post (e.g. 'Increase reach' or 'Collect leads')."`
	VisualSuggestion string `json:"visualSuggestion" jsonschema:"required,description=Clear suggestion for the creative (e.g. 'Short video showing the product in use')."`
	Channel          string `json:"channel" jsonschema:"required,enum=Instagram Feed,enum=Instagram Stories,enum=TikTok,enum=Blog,enum=Email,description=The social media channel the post will be published on."`
}

// Persona is a marketing persona synthesized from a performance report.
type Persona struct {
	Name                  string   `json:"name"`
	Age                   int      `json:"age"`
	JobTitle              string   `json:"jobTitle"`
	IncomeLevel           string   `json:"incomeLevel"`
	Location              string   `json:"location"`
	Bio                   string   `json:"bio"`
	PainPoints            []string `json:"painPoints"`
	Goals                 []string `json:"goals"`
	Motivations           []string `json:"motivations"`
	CommunicationChannels []string `json:"communicationChannels"`
	PreferredBrands       []string `json:"preferredBrands,omitempty"`
}

// CreativeMetrics are the estimated performance numbers for a creative.
type CreativeMetrics struct {
	CTR            string `json:"ctr"`
	ConversionRate string `json:"conversionRate"`
	Engagement     string `json:"engagement"`
}

// SuccessfulCreative describes a creative theme that performed well.
type SuccessfulCreative struct {
	Theme         string          `json:"theme"`
	Description   string          `json:"description"`
	SuccessReason string          `json:"successReason"`
	Metrics       CreativeMetrics `json:"metrics"`
}

// CreativeMetricPoint scores one creative theme from 0 to 100.
type CreativeMetricPoint struct {
	Name        string `json:"name"`
	Performance int    `json:"performance"`
}

// ReportAnalysis is the result of analyzing a client performance report:
// personas, creative recommendations, and per-theme scores.
type ReportAnalysis struct {
	AnalysisTitle              string                `json:"analysisTitle"`
	StrategicSummary           string                `json:"strategicSummary"`
	Personas                   []Persona             `json:"personas"`
	SuccessfulCreatives        []SuccessfulCreative  `json:"successfulCreatives"`
	CreativePerformanceMetrics []CreativeMetricPoint `json:"creativePerformanceMetrics"`
}

// PerformanceMetric is one scored dimension of an ad creative.
type PerformanceMetric struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Analysis string `json:"analysis"`
}

// PerformanceThermometer is the overall verdict on an ad creative.
type PerformanceThermometer struct {
	OverallTier  string              `json:"overallTier"`
	OverallScore int                 `json:"overallScore"`
	Summary      string              `json:"summary"`
	Metrics      []PerformanceMetric `json:"metrics"`
}

// VideoAnalysis breaks down a benchmark video creative.
type VideoAnalysis struct {
	Hook     string `json:"hook"`
	Rhythm   string `json:"rhythm"`
	Branding string `json:"branding"`
	CTA      string `json:"cta"`
}

// BenchmarkCreative is a real-world creative found through search that the
// analyzed creative is compared against.
type BenchmarkCreative struct {
	Title               string         `json:"title"`
	BrandName           string         `json:"brandName"`
	BrandDomain         string         `json:"brandDomain"`
	Channel             string         `json:"channel"`
	SourceURL           string         `json:"sourceUrl"`
	Concept             string         `json:"concept"`
	SuccessReason       string         `json:"successReason"`
	PerformanceInsights string         `json:"performanceInsights"`
	VideoURL            string         `json:"videoUrl,omitempty"`
	VideoAnalysis       *VideoAnalysis `json:"videoAnalysis,omitempty"`
}

// PerformanceAnalysis is the scored review of an uploaded ad creative with
// grounded industry benchmarks.
type PerformanceAnalysis struct {
	Title            string                 `json:"title"`
	Thermometer      PerformanceThermometer `json:"thermometer"`
	OptimizationTips []string               `json:"optimizationTips"`
	Benchmarks       []BenchmarkCreative    `json:"benchmarks"`
	Sources          []grounding.Source     `json:"sources,omitempty"`
}

// ModuleTemplate is a service module offered by the agency, matched against
// contract text during analysis.
type ModuleTemplate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// ContractAnalysis is the structured extraction from a service contract.
type ContractAnalysis struct {
	ClientName          string   `json:"clientName"`
	StartDate           string   `json:"startDate"`
	MonthlyFee          float64  `json:"monthlyFee"`
	IdentifiedModuleIDs []string `json:"identifiedModuleIds"`
}

// CreativeVariation is one alternative ad angle for a campaign.
type CreativeVariation struct {
	Angle            string `json:"angle"`
	Headline         string `json:"headline"`
	BodyCopy         string `json:"bodyCopy"`
	VisualSuggestion string `json:"visualSuggestion"`
	CTA              string `json:"cta"`
	Platform         string `json:"platform"`
}

// VariationSet is the batch of variations produced for one campaign brief.
type VariationSet struct {
	Variations []CreativeVariation `json:"variations"`
}

// SWOTPoint is one entry in a SWOT quadrant.
type SWOTPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SWOT is the four-quadrant analysis of a social profile.
type SWOT struct {
	Strengths     []SWOTPoint `json:"strengths"`
	Weaknesses    []SWOTPoint `json:"weaknesses"`
	Opportunities []SWOTPoint `json:"opportunities"`
	Threats       []SWOTPoint `json:"threats"`
}

// Recommendation is a prioritized action from a profile analysis.
type Recommendation struct {
	Priority       string `json:"priority"`
	Recommendation string `json:"recommendation"`
	Reason         string `json:"reason"`
}

// ProfileAnalysis is the grounded audit of a public social media profile.
type ProfileAnalysis struct {
	ProfileOverview         string             `json:"profileOverview"`
	ContentStrategyAnalysis string             `json:"contentStrategyAnalysis"`
	AudienceAnalysis        string             `json:"audienceAnalysis"`
	SWOTAnalysis            SWOT               `json:"swotAnalysis"`
	Recommendations         []Recommendation   `json:"recommendations"`
	Sources                 []grounding.Source `json:"sources,omitempty"`
}
