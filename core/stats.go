package core

import (
	"time"

	"github.com/huangsam/keepwatch/schema"
)

// AggregateWindow computes descriptive statistics over the samples that fall
// in [start, end). The end bound is exclusive. An empty window yields a
// zero-count result with nil statistics rather than an error; ChangeCount is
// the number of adjacent in-window pairs whose values differ.
func AggregateWindow(samples []schema.Sample, start, end time.Time) schema.WindowStats {
	var stats schema.WindowStats

	var sum int
	var prev int
	for _, s := range samples {
		if s.Time.Before(start) || !s.Time.Before(end) {
			continue
		}

		if stats.Count == 0 {
			v := s.Value
			stats.Min = &v
			w := s.Value
			stats.Max = &w
		} else {
			if s.Value < *stats.Min {
				*stats.Min = s.Value
			}
			if s.Value > *stats.Max {
				*stats.Max = s.Value
			}
			if s.Value != prev {
				stats.ChangeCount++
			}
		}
		sum += s.Value
		prev = s.Value
		stats.Count++
	}

	if stats.Count > 0 {
		avg := float64(sum) / float64(stats.Count)
		stats.Average = &avg
	}
	return stats
}
