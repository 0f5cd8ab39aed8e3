package strategy

import "fmt"

// Strictness controls how much time deviation is tolerated when scoring a
// match. The day preference is a hard constraint for every tier; only the
// strict tier additionally requires an exact start-time match, which leaves
// moderate and flexible behaviorally identical in scoring. That collapse is
// deliberate and preserved here.
type Strictness string

const (
	StrictnessStrict   Strictness = "strict"
	StrictnessModerate Strictness = "moderate"
	StrictnessFlexible Strictness = "flexible"
)

func (s Strictness) IsValid() bool {
	return s == StrictnessStrict || s == StrictnessModerate || s == StrictnessFlexible
}

// TierForThreshold maps a 0-100 confidence threshold to a strictness tier.
// Values outside the range are clamped.
func TierForThreshold(threshold int) Strictness {
	if threshold > 100 {
		threshold = 100
	}
	if threshold < 0 {
		threshold = 0
	}

	switch {
	case threshold >= 80:
		return StrictnessStrict
	case threshold >= 40:
		return StrictnessModerate
	default:
		return StrictnessFlexible
	}
}

// Prioritization names what a scheduling strategy optimizes for
type Prioritization string

const (
	PrioritizeCoverage   Prioritization = "coverage"
	PrioritizeCost       Prioritization = "cost"
	PrioritizePreference Prioritization = "preference"
	PrioritizeBalance    Prioritization = "balance"
)

// Preset is a named scheduling strategy: a confidence threshold plus the
// dimension it prioritizes
type Preset struct {
	Name           string
	Threshold      int
	Prioritization Prioritization
}

// Strictness returns the strictness tier this preset's threshold maps to
func (p Preset) Strictness() Strictness {
	return TierForThreshold(p.Threshold)
}

var presets = []Preset{
	{Name: "cover", Threshold: 20, Prioritization: PrioritizeCoverage},
	{Name: "overtime", Threshold: 50, Prioritization: PrioritizeCost},
	{Name: "premium", Threshold: 90, Prioritization: PrioritizePreference},
	{Name: "balanced", Threshold: 60, Prioritization: PrioritizeBalance},
}

// Presets returns all named strategy presets
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetByName looks up a strategy preset by name
func PresetByName(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown strategy preset %q", name)
}

// Day-inclusion threshold bounds for the analysis accuracy mapping
const (
	minDayInclusionThreshold = 0.25
	maxDayInclusionThreshold = 0.80
)

// DayInclusionThreshold maps an analysis accuracy percentage (0-100) to the
// minimum share of assignments a weekday needs before the profile learner
// includes it as a preferred day. Higher accuracy lowers the bar. The result
// is clamped to [0.25, 0.80]. The learner itself runs outside this engine;
// the mapping lives here so both sides agree on it.
func DayInclusionThreshold(accuracy int) float64 {
	threshold := maxDayInclusionThreshold - float64(accuracy)/100.0*0.55
	if threshold < minDayInclusionThreshold {
		return minDayInclusionThreshold
	}
	if threshold > maxDayInclusionThreshold {
		return maxDayInclusionThreshold
	}
	return threshold
}
