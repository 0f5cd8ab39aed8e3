package model

// ContractType identifies the legal contract a block runs under
type ContractType string

const (
	// ContractSolo1 is a short single-driver route
	ContractSolo1 ContractType = "solo1"
	// ContractSolo2 is a long single-driver route with an overnight return
	ContractSolo2 ContractType = "solo2"
	// ContractTeam is a two-driver route
	ContractTeam ContractType = "team"
)

func (c ContractType) IsValid() bool {
	return c == ContractSolo1 || c == ContractSolo2 || c == ContractTeam
}

// ShiftOccurrence is a single dated instance of a recurring block on the
// calendar. Occurrences are created when a block is materialized and are
// read-only inputs to the matching engine.
type ShiftOccurrence struct {
	OccurrenceID string
	ServiceDate  string // Date format (2006-01-02)
	StartTime    string // HH:MM, 24h
	BlockID      string
	DriverID     string // Empty string if unassigned
	ContractType string // Empty string if unknown
	Status       string
	TractorID    string // Empty string if no tractor assigned
}

// DriverPreferenceProfile holds learned scheduling preferences for one driver.
// Profiles are produced by the pattern analysis pipeline; the engine only
// reads them. A profile with no preferred days OR no preferred start times
// carries insufficient signal and never matches anything.
type DriverPreferenceProfile struct {
	DriverID              string
	PreferredDays         []string // Lowercase weekday names
	PreferredStartTimes   []string // HH:MM strings, best first
	PreferredContractType string   // Empty string if no preference
}

// HasSignal reports whether the profile carries enough data to match against
func (p DriverPreferenceProfile) HasSignal() bool {
	return len(p.PreferredDays) > 0 && len(p.PreferredStartTimes) > 0
}

// BlockMatchResult is the outcome of scoring one occurrence against one
// profile. Score 0 means the occurrence is not a candidate, regardless of
// the other fields.
type BlockMatchResult struct {
	Score           float64
	TimeDiffMinutes int
	DayMatches      bool
	TimeMatches     bool
}

// MatchingBlock is an allocated recommendation: one occurrence the driver
// could compliantly take, with its match score. Recomputed on every call,
// never persisted.
type MatchingBlock struct {
	Occurrence ShiftOccurrence
	MatchScore float64
}
