// Package allocator computes, for a single driver, the best compliant set of
// unassigned blocks given that driver's preference profile and existing
// commitments. Allocation is greedy and date-locally optimal: dates are
// walked chronologically and the best-scoring compliant candidate on each
// date wins. It does not arbitrate cross-driver contention; two drivers can
// legitimately be recommended the same block, and downstream assignment is
// first-write-wins.
package allocator

import (
	"sort"
	"strings"

	"github.com/dkellner/blockmatch/pkg/core/compliance"
	"github.com/dkellner/blockmatch/pkg/core/matcher"
	"github.com/dkellner/blockmatch/pkg/core/model"
	"github.com/dkellner/blockmatch/pkg/core/strategy"
	"github.com/dkellner/blockmatch/pkg/core/timeutil"
)

// Weekly allocation caps by contract type. Existing assignments count
// against the cap.
const (
	WeeklyCapSolo2   = 3
	WeeklyCapTeam    = 3
	WeeklyCapDefault = 6
)

// Input carries everything a single-driver allocation needs. All fields are
// read-only; Allocate holds no state between calls.
type Input struct {
	Profile    model.DriverPreferenceProfile
	Unassigned []model.ShiftOccurrence
	Existing   []model.ShiftOccurrence
	Strictness strategy.Strictness
}

// candidate pairs an occurrence with its score for sorting
type candidate struct {
	occurrence model.ShiftOccurrence
	result     model.BlockMatchResult
}

// WeeklyCap returns the maximum number of blocks a driver on the given
// contract type may hold per week.
func WeeklyCap(contractType model.ContractType) int {
	switch contractType {
	case model.ContractSolo2:
		return WeeklyCapSolo2
	case model.ContractTeam:
		return WeeklyCapTeam
	default:
		return WeeklyCapDefault
	}
}

// Allocate selects the best compliant blocks for one driver: at most one per
// calendar date, outside every rest window, capped by the weekly maximum
// less existing assignments. The result is ordered by service date and is
// identical across calls with identical inputs.
func Allocate(in Input) []model.MatchingBlock {
	// Score everything up front; zero scores are not candidates
	byDate := make(map[string][]candidate)
	for _, occ := range in.Unassigned {
		result := matcher.Score(occ, in.Profile, in.Strictness)
		if result.Score == 0 {
			continue
		}
		byDate[occ.ServiceDate] = append(byDate[occ.ServiceDate], candidate{occurrence: occ, result: result})
	}

	// Within a date the best time match wins; occurrence ID settles exact
	// ties so allocation stays deterministic
	dates := make([]string, 0, len(byDate))
	for date, candidates := range byDate {
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].result.TimeDiffMinutes != candidates[j].result.TimeDiffMinutes {
				return candidates[i].result.TimeDiffMinutes < candidates[j].result.TimeDiffMinutes
			}
			return candidates[i].occurrence.OccurrenceID < candidates[j].occurrence.OccurrenceID
		})
		dates = append(dates, date)
	}
	sort.Strings(dates)

	state := compliance.BuildState(in.Existing, in.Profile.PreferredContractType)

	selected := make([]model.MatchingBlock, 0, len(dates))
	for _, date := range dates {
		if state.DateOccupied(date) {
			continue
		}
		for _, c := range byDate[date] {
			start := timeutil.Instant(c.occurrence.ServiceDate, c.occurrence.StartTime)
			if !state.Allows(start) {
				continue
			}
			state = state.WithAssignment(date, start)
			selected = append(selected, model.MatchingBlock{
				Occurrence: c.occurrence,
				MatchScore: c.result.Score,
			})
			break
		}
	}

	remaining := WeeklyCap(model.ContractType(strings.ToLower(in.Profile.PreferredContractType))) - len(in.Existing)
	if remaining < 0 {
		remaining = 0
	}
	if len(selected) > remaining {
		selected = selected[:remaining]
	}

	return selected
}
