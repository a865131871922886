package suggestions

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func testReferenceContext() ReferenceContext {
	return ReferenceContext{
		Templates: []IndustryTemplate{
			{ID: "t1", Industry: "fitness", Title: "Grow community", Description: "Build an engaged community", Category: "Growth", Priority: 1, Timeframe: "quarterly"},
			{ID: "t2", Industry: "fitness", Title: "Launch challenge", Description: "Run a branded challenge", Category: "Engagement", Priority: 2, Timeframe: "monthly"},
		},
		MetricTypes: []MetricType{
			{ID: "m1", Code: "ENGAGEMENT_RATE", Description: "Audience engagement rate", Unit: "percent", Category: "engagement"},
			{ID: "m2", Code: "FOLLOWER_GROWTH", Description: "Net follower growth", Unit: "count", Category: "growth"},
		},
		Platforms: []Platform{
			{ID: "p1", Name: "instagram", DisplayName: "Instagram", Category: "social"},
			{ID: "p2", Name: "youtube", DisplayName: "YouTube", Category: "video"},
		},
		Samples: []PerformanceSample{
			{Category: "Growth", Title: "Double signups", CompletionPct: 80, Timeframe: "quarterly"},
			{Category: "Engagement", Title: "Boost comments", CompletionPct: 60, Timeframe: "monthly"},
		},
	}
}

func TestComposePromptDeterministic(t *testing.T) {
	req := SuggestionRequest{
		Industry:       "fitness",
		BrandName:      "Acme",
		TenantID:       "7a0b2f2e-7d40-4a52-a8f0-54e530d31a4d",
		KeyProduct:     "Protein bars",
		MajorKeywords:  []string{"fitness", "nutrition"},
		HistoricalOKRs: []string{"Grow newsletter to 10k"},
	}
	ref := testReferenceContext()

	first := ComposePrompt(req, ref)
	second := ComposePrompt(req, ref)
	if first != second {
		t.Fatalf("expected byte-identical prompts for identical inputs")
	}
}

func TestComposePromptPlaceholders(t *testing.T) {
	req := SuggestionRequest{
		Industry:  "fitness",
		BrandName: "Acme",
		TenantID:  "7a0b2f2e-7d40-4a52-a8f0-54e530d31a4d",
	}
	prompt := ComposePrompt(req, ReferenceContext{})

	for _, want := range []string{
		"Key product: Not specified",
		"Product category: Not specified",
		"Key competitors: Not specified",
		"Major keywords: Not specified",
		"Current objective: Not specified",
		"Prior objectives: Not specified",
		"Average completion: 0.0%",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q\nprompt:\n%s", want, prompt)
		}
	}
	if !strings.Contains(prompt, "## Output Format") {
		t.Fatalf("expected output format section")
	}
	if !strings.Contains(prompt, `"confidenceScore":0.85`) {
		t.Fatalf("expected a concrete example object")
	}
}

func TestComposePromptSectionOrder(t *testing.T) {
	req := SuggestionRequest{Industry: "fitness", BrandName: "Acme", TenantID: "7a0b2f2e-7d40-4a52-a8f0-54e530d31a4d"}
	prompt := ComposePrompt(req, testReferenceContext())

	sections := []string{
		"## Brand Context",
		"## Industry Insights",
		"## Available Metrics",
		"## Available Platforms",
		"## Historical Success Patterns",
		"## Output Format",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(prompt, section)
		if idx < 0 {
			t.Fatalf("missing section %q", section)
		}
		if idx < last {
			t.Fatalf("section %q out of order", section)
		}
		last = idx
	}
}

func TestSummarizeInsightsEmpty(t *testing.T) {
	insights := SummarizeInsights(nil)
	if insights.AvgCompletionPct != 0 {
		t.Fatalf("expected 0 mean for no samples, got %v", insights.AvgCompletionPct)
	}
	if math.IsNaN(insights.AvgCompletionPct) {
		t.Fatalf("mean must never be NaN")
	}
	if len(insights.TopCategories) != 0 {
		t.Fatalf("expected no categories, got %v", insights.TopCategories)
	}
}

func TestSummarizeInsightsMeanAndTopCategories(t *testing.T) {
	samples := []PerformanceSample{
		{Category: "Growth", CompletionPct: 100, Timeframe: "quarterly"},
		{Category: "Engagement", CompletionPct: 50, Timeframe: "monthly"},
		{Category: "Engagement", CompletionPct: 50, Timeframe: "monthly"},
		{Category: "Revenue", CompletionPct: 0, Timeframe: "quarterly"},
		{Category: "Awareness", CompletionPct: 50, Timeframe: "weekly"},
	}
	insights := SummarizeInsights(samples)

	if insights.AvgCompletionPct != 50 {
		t.Fatalf("expected mean 50, got %v", insights.AvgCompletionPct)
	}
	// Engagement has 2 hits; the three single-hit categories tie and keep
	// fetch order, so only the first two survive the top-3 cut.
	want := []string{"Engagement", "Growth", "Revenue"}
	if !reflect.DeepEqual(insights.TopCategories, want) {
		t.Fatalf("expected top categories %v, got %v", want, insights.TopCategories)
	}
	wantTimeframes := []string{"quarterly", "monthly", "weekly"}
	if !reflect.DeepEqual(insights.Timeframes, wantTimeframes) {
		t.Fatalf("expected timeframes %v, got %v", wantTimeframes, insights.Timeframes)
	}
}
