package suggestions

import "time"

// SuggestionRequest carries the caller-supplied brand facts for one
// generation request. It is immutable once received.
type SuggestionRequest struct {
	Industry        string   `json:"industry"`
	BrandName       string   `json:"brandName"`
	TenantID        string   `json:"tenantId"`
	KeyProduct      string   `json:"keyProduct,omitempty"`
	ProductCategory string   `json:"productCategory,omitempty"`
	KeyCompetition  []string `json:"keyCompetition,omitempty"`
	MajorKeywords   []string `json:"majorKeywords,omitempty"`
	Objective       string   `json:"objective,omitempty"`
	HistoricalOKRs  []string `json:"historicalOKRs,omitempty"`
}

// MetricType is one entry of the metric taxonomy.
type MetricType struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	Category    string `json:"category"`
}

// Platform is one entry of the platform taxonomy.
type Platform struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
}

// IndustryTemplate is a curated objective template for an industry.
type IndustryTemplate struct {
	ID          string `json:"id"`
	Industry    string `json:"industry"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    int    `json:"priority"`
	Timeframe   string `json:"timeframe"`
}

// PerformanceSample is one historical objective-performance observation.
type PerformanceSample struct {
	Category      string  `json:"category"`
	Title         string  `json:"title"`
	CompletionPct float64 `json:"completionPct"`
	Timeframe     string  `json:"timeframe"`
}

// ReferenceContext is the read-only snapshot of reference data gathered once
// per request. It is never cached or shared across requests.
type ReferenceContext struct {
	Templates   []IndustryTemplate
	MetricTypes []MetricType
	Platforms   []Platform
	Samples     []PerformanceSample
}

// IndustryInsights summarizes the performance samples for prompt rendering.
type IndustryInsights struct {
	AvgCompletionPct float64
	TopCategories    []string
	Timeframes       []string
}

// RawSuggestion is the untrusted structure parsed from the model's output.
// Every field must be validated or clamped before use.
type RawSuggestion struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	Priority             float64  `json:"priority"`
	SuggestedTargetValue float64  `json:"suggestedTargetValue"`
	SuggestedTimeframe   string   `json:"suggestedTimeframe"`
	MetricTypeID         string   `json:"metricTypeId"`
	PlatformNames        []string `json:"platformNames"`
	ConfidenceScore      float64  `json:"confidenceScore"`
	Reasoning            string   `json:"reasoning"`
}

// Suggestion is a reconciled output unit. Metric and platform references
// always point at entries of the request's ReferenceContext; MetricType is
// nil only when the metric taxonomy was empty.
type Suggestion struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Category             string      `json:"category"`
	Priority             int         `json:"priority"`
	SuggestedTargetValue float64     `json:"suggestedTargetValue"`
	SuggestedTimeframe   string      `json:"suggestedTimeframe"`
	MetricType           *MetricType `json:"metricType"`
	Platforms            []Platform  `json:"platforms"`
	ConfidenceScore      float64     `json:"confidenceScore"`
	Reasoning            string      `json:"reasoning"`
}

// Result is the assembled outcome of one pipeline run.
type Result struct {
	Suggestions  []Suggestion
	Confidence   float64
	Industry     string
	BrandContext string
	GeneratedAt  time.Time
}
