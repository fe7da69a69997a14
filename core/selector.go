package core

import (
	"github.com/huangsam/keepwatch/schema"
)

// categoryScore computes the selection score for a candidate with at least
// one sample. A lower average rank is better and more samples are better, so
// the score is count / (1 + average) with higher winning.
func categoryScore(sampleCount int, averageValue float64) float64 {
	return float64(sampleCount) / (1.0 + averageValue)
}

// SelectCategory picks the best ranking category among the candidates.
// Candidates without samples are excluded from scoring entirely. Ties are
// broken by preferring more samples, then the lowest category ID, so repeated
// calls with the same input always return the same result.
func SelectCategory(candidates []schema.CategorySeries) (*schema.SelectionResult, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	var best *schema.CategorySeries
	var bestScore float64
	for i := range candidates {
		c := &candidates[i]
		if len(c.Samples) == 0 {
			continue
		}

		var sum float64
		for _, s := range c.Samples {
			sum += float64(s.Value)
		}
		avg := sum / float64(len(c.Samples))
		score := categoryScore(len(c.Samples), avg)

		if best == nil || score > bestScore {
			best, bestScore = c, score
			continue
		}
		if score == bestScore {
			if len(c.Samples) > len(best.Samples) ||
				(len(c.Samples) == len(best.Samples) && c.CategoryID < best.CategoryID) {
				best, bestScore = c, score
			}
		}
	}

	if best == nil {
		return nil, ErrInsufficientData
	}
	return &schema.SelectionResult{Chosen: *best, Score: bestScore}, nil
}
