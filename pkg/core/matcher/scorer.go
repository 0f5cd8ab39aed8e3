package matcher

import (
	"math"
	"strings"

	"github.com/dkellner/blockmatch/pkg/core/model"
	"github.com/dkellner/blockmatch/pkg/core/strategy"
	"github.com/dkellner/blockmatch/pkg/core/timeutil"
)

// NoTimeDiff marks a result that never reached time evaluation
const NoTimeDiff = math.MaxInt

// Score tiers for accepted matches, by time proximity
const (
	scoreExactTime  = 1.0
	scoreWithinHour = 0.9
	scoreWithinTwo  = 0.8
	scoreDayOnly    = 0.7

	withinHourLimit = 60
	withinTwoLimit  = 120
)

// Score evaluates one occurrence against one driver preference profile at
// the given strictness tier. Pure and deterministic.
//
// Hard gates, each short-circuiting to a zero-score result:
//  1. Contract type: a profile preference must match the occurrence
//     case-insensitively; an occurrence without a contract type is rejected
//     rather than treated as a wildcard.
//  2. Completeness: profiles missing preferred days or preferred start
//     times are ineligible, not universally compatible.
//  3. Day of week: the occurrence's weekday must be among the preferred
//     days. This holds for every strictness tier.
//  4. Exact start time, strict tier only.
//
// Accepted occurrences score by closeness of the best preferred start time:
// 1.0 exact, 0.9 within an hour, 0.8 within two hours, 0.7 otherwise.
func Score(occ model.ShiftOccurrence, profile model.DriverPreferenceProfile, strictness strategy.Strictness) model.BlockMatchResult {
	if !contractCompatible(occ, profile) {
		return noMatch()
	}

	if !profile.HasSignal() {
		return noMatch()
	}

	serviceDay, err := timeutil.ParseServiceDate(occ.ServiceDate)
	if err != nil {
		return noMatch()
	}

	if !containsFold(profile.PreferredDays, timeutil.DayName(serviceDay)) {
		return noMatch()
	}

	startMinutes := timeutil.ToMinutes(occ.StartTime)
	bestDiff := NoTimeDiff
	timeMatches := false
	for _, preferred := range profile.PreferredStartTimes {
		diff := timeutil.CircularDiff(startMinutes, timeutil.ToMinutes(preferred))
		if diff < bestDiff {
			bestDiff = diff
		}
		if diff == 0 {
			timeMatches = true
		}
	}

	if strictness == strategy.StrictnessStrict && !timeMatches {
		return noMatch()
	}

	score := scoreDayOnly
	switch {
	case timeMatches:
		score = scoreExactTime
	case bestDiff <= withinHourLimit:
		score = scoreWithinHour
	case bestDiff <= withinTwoLimit:
		score = scoreWithinTwo
	}

	return model.BlockMatchResult{
		Score:           score,
		TimeDiffMinutes: bestDiff,
		DayMatches:      true,
		TimeMatches:     timeMatches,
	}
}

// contractCompatible applies the contract-type gate. No profile preference
// means any contract is acceptable; a preference requires the occurrence to
// carry a matching contract type.
func contractCompatible(occ model.ShiftOccurrence, profile model.DriverPreferenceProfile) bool {
	if profile.PreferredContractType == "" {
		return true
	}
	if occ.ContractType == "" {
		return false
	}
	return strings.EqualFold(occ.ContractType, profile.PreferredContractType)
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

func noMatch() model.BlockMatchResult {
	return model.BlockMatchResult{TimeDiffMinutes: NoTimeDiff}
}
