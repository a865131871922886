package suggestions

import (
	"fmt"
	"sort"
	"strings"
)

const notSpecified = "Not specified"

// SummarizeInsights derives the industry-insight summary from performance
// samples: mean completion percentage (0 for no samples), top 3 categories by
// occurrence count (stable ties in fetch order), and distinct timeframes in
// fetch order.
func SummarizeInsights(samples []PerformanceSample) IndustryInsights {
	insights := IndustryInsights{}
	if len(samples) == 0 {
		return insights
	}

	var sum float64
	counts := make(map[string]int)
	var categoryOrder []string
	seenTimeframes := make(map[string]struct{})
	for _, s := range samples {
		sum += s.CompletionPct
		if s.Category != "" {
			if _, ok := counts[s.Category]; !ok {
				categoryOrder = append(categoryOrder, s.Category)
			}
			counts[s.Category]++
		}
		if s.Timeframe != "" {
			if _, ok := seenTimeframes[s.Timeframe]; !ok {
				seenTimeframes[s.Timeframe] = struct{}{}
				insights.Timeframes = append(insights.Timeframes, s.Timeframe)
			}
		}
	}
	insights.AvgCompletionPct = sum / float64(len(samples))

	// Stable sort keeps fetch order on equal counts.
	ranked := append([]string(nil), categoryOrder...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	insights.TopCategories = ranked

	return insights
}

// ComposePrompt deterministically renders the request and reference context
// into the instruction document sent to the model. Identical inputs always
// produce byte-identical output; missing optional fields render as an
// explicit placeholder so the document structure never varies.
func ComposePrompt(req SuggestionRequest, ref ReferenceContext) string {
	var b strings.Builder

	b.WriteString("You are a marketing strategy expert generating OKR suggestions.\n\n")

	b.WriteString("## Brand Context\n")
	fmt.Fprintf(&b, "Brand name: %s\n", orPlaceholder(req.BrandName))
	fmt.Fprintf(&b, "Industry: %s\n", orPlaceholder(req.Industry))
	fmt.Fprintf(&b, "Key product: %s\n", orPlaceholder(req.KeyProduct))
	fmt.Fprintf(&b, "Product category: %s\n", orPlaceholder(req.ProductCategory))
	fmt.Fprintf(&b, "Key competitors: %s\n", orPlaceholderList(req.KeyCompetition))
	fmt.Fprintf(&b, "Major keywords: %s\n", orPlaceholderList(req.MajorKeywords))
	fmt.Fprintf(&b, "Current objective: %s\n", orPlaceholder(req.Objective))
	fmt.Fprintf(&b, "Prior objectives: %s\n", orPlaceholderList(req.HistoricalOKRs))

	insights := SummarizeInsights(ref.Samples)
	b.WriteString("\n## Industry Insights\n")
	fmt.Fprintf(&b, "Historical samples: %d\n", len(ref.Samples))
	fmt.Fprintf(&b, "Average completion: %.1f%%\n", insights.AvgCompletionPct)
	fmt.Fprintf(&b, "Top categories: %s\n", orPlaceholderList(insights.TopCategories))
	fmt.Fprintf(&b, "Timeframes observed: %s\n", orPlaceholderList(insights.Timeframes))

	b.WriteString("\n## Available Metrics\n")
	if len(ref.MetricTypes) == 0 {
		b.WriteString(notSpecified + "\n")
	}
	for _, m := range ref.MetricTypes {
		fmt.Fprintf(&b, "- %s: %s (%s, %s)\n", m.Code, m.Description, m.Unit, m.Category)
	}

	b.WriteString("\n## Available Platforms\n")
	if len(ref.Platforms) == 0 {
		b.WriteString(notSpecified + "\n")
	}
	for _, p := range ref.Platforms {
		fmt.Fprintf(&b, "- %s (%s, %s)\n", p.DisplayName, p.Name, p.Category)
	}

	b.WriteString("\n## Historical Success Patterns\n")
	if len(ref.Templates) == 0 {
		b.WriteString(notSpecified + "\n")
	}
	for _, t := range ref.Templates {
		fmt.Fprintf(&b, "- [P%d] %s (%s, %s): %s\n", t.Priority, t.Title, t.Category, t.Timeframe, t.Description)
	}

	b.WriteString("\n## Output Format\n")
	b.WriteString("Respond with a JSON array only. Each element must have exactly these fields:\n")
	b.WriteString("title (string), description (string), category (string), priority (integer 1-3),\n")
	b.WriteString("suggestedTargetValue (number), suggestedTimeframe (string), metricTypeId (string,\n")
	b.WriteString("one of the metric codes above), platformNames (array of platform names above),\n")
	b.WriteString("confidenceScore (number 0.0-1.0), reasoning (string).\n")
	b.WriteString("Example element:\n")
	b.WriteString(`{"title":"Grow engaged followers","description":"Increase engaged followers through weekly short-form video","category":"Growth","priority":1,"suggestedTargetValue":5000,"suggestedTimeframe":"quarterly","metricTypeId":"FOLLOWER_GROWTH","platformNames":["instagram","tiktok"],"confidenceScore":0.85,"reasoning":"Short-form video drives follower growth in this industry"}`)
	b.WriteString("\n")

	return b.String()
}

func orPlaceholder(val string) string {
	if strings.TrimSpace(val) == "" {
		return notSpecified
	}
	return strings.TrimSpace(val)
}

func orPlaceholderList(vals []string) string {
	var kept []string
	for _, v := range vals {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return notSpecified
	}
	return strings.Join(kept, ", ")
}
