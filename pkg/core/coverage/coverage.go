// Package coverage reports how well the unassigned block pool is served by
// the current driver preference profiles.
package coverage

import (
	"github.com/dkellner/blockmatch/pkg/core/matcher"
	"github.com/dkellner/blockmatch/pkg/core/model"
	"github.com/dkellner/blockmatch/pkg/core/strategy"
)

// Bucket counts occurrences with at least MinMatches matching drivers
type Bucket struct {
	MinMatches int `json:"minMatches"`
	Count      int `json:"count"`
}

// Report summarizes matching coverage across the full driver x block cross
// product at one strictness tier.
type Report struct {
	Total    int      `json:"total"`
	Coverage []Bucket `json:"coverage"`
}

// thresholds are the "at least k drivers" levels reported
var thresholds = []int{1, 2, 3, 4}

// Stats counts, for every unassigned occurrence, the profiles that would
// accept it (score > 0) at the given strictness, and buckets the results.
// Read-only, O(drivers x occurrences).
func Stats(unassigned []model.ShiftOccurrence, profiles []model.DriverPreferenceProfile, strictness strategy.Strictness) Report {
	report := Report{
		Total:    len(unassigned),
		Coverage: make([]Bucket, len(thresholds)),
	}

	matchCounts := make([]int, len(unassigned))
	for i, occ := range unassigned {
		for _, profile := range profiles {
			if matcher.Score(occ, profile, strictness).Score > 0 {
				matchCounts[i]++
			}
		}
	}

	for i, min := range thresholds {
		count := 0
		for _, matches := range matchCounts {
			if matches >= min {
				count++
			}
		}
		report.Coverage[i] = Bucket{MinMatches: min, Count: count}
	}

	return report
}
