// Package reporting turns per-case scores into ranked provider
// summaries and reads/writes the tabular run artifacts.
package reporting

import (
	"sort"

	"github.com/careassist/medeval/internal/models"
	"github.com/careassist/medeval/internal/scoring"
)

// Aggregate groups case scores by provider and computes the summary
// statistics: case count, error rate, and the arithmetic mean of each
// score field. Providers are ranked descending by mean overall score;
// ties keep encounter order.
func Aggregate(scores []models.CaseScore) []models.ProviderSummary {
	byProvider := make(map[string][]models.CaseScore)
	var order []string
	for _, cs := range scores {
		if _, seen := byProvider[cs.Provider]; !seen {
			order = append(order, cs.Provider)
		}
		byProvider[cs.Provider] = append(byProvider[cs.Provider], cs)
	}

	summaries := make([]models.ProviderSummary, 0, len(order))
	for _, provider := range order {
		rows := byProvider[provider]
		if len(rows) == 0 {
			// Cannot happen with map insertion above, but a provider with
			// no cases has no meaningful summary either way.
			continue
		}

		n := float64(len(rows))
		var errors, correctness, reasoning, safety, overall float64
		for _, cs := range rows {
			if cs.Status != models.StatusOK {
				errors++
			}
			correctness += cs.CorrectnessScore
			reasoning += cs.ReasoningScore
			safety += cs.SafetyScore
			overall += cs.OverallScore
		}

		summaries = append(summaries, models.ProviderSummary{
			Provider:         provider,
			Cases:            len(rows),
			ErrorRate:        scoring.Round4(errors / n),
			CorrectnessScore: scoring.Round4(correctness / n),
			ReasoningScore:   scoring.Round4(reasoning / n),
			SafetyScore:      scoring.Round4(safety / n),
			OverallScore:     scoring.Round4(overall / n),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].OverallScore > summaries[j].OverallScore
	})

	return summaries
}
