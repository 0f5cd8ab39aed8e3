// Package compliance tracks the hours-of-service state that constrains where
// new blocks may be placed for a driver: which calendar dates are already
// taken, and which start-time windows are forbidden by mandated rest.
package compliance

import (
	"strings"
	"time"

	"github.com/dkellner/blockmatch/pkg/core/model"
	"github.com/dkellner/blockmatch/pkg/core/timeutil"
)

// Hours-of-service constants. A new block may not start until the previous
// block's duration plus the mandated rest period has elapsed.
const (
	Solo1BlockHours = 12
	Solo2BlockHours = 24
	RestHours       = 10
)

// Window is a half-open interval [Start, End) during which a driver may not
// start a new block.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the instant falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// State is the compliance accumulator for one driver. It is a value:
// WithAssignment returns an updated copy, so each allocation step is a pure
// state transition and the caller's previous state stays intact.
type State struct {
	minStartGap time.Duration
	occupied    map[string]bool
	windows     []Window
}

// MinStartGap returns the minimum spacing between consecutive block starts
// for a contract type: block duration plus rest. Unknown and team contracts
// use the solo1 spacing.
func MinStartGap(contractType string) time.Duration {
	hours := Solo1BlockHours + RestHours
	if strings.EqualFold(contractType, string(model.ContractSolo2)) {
		hours = Solo2BlockHours + RestHours
	}
	return time.Duration(hours) * time.Hour
}

// BuildState derives the initial compliance state from a driver's existing
// assignments. Each assignment occupies its calendar date and opens a rest
// window starting at its start instant.
func BuildState(existing []model.ShiftOccurrence, contractType string) State {
	state := State{
		minStartGap: MinStartGap(contractType),
		occupied:    make(map[string]bool, len(existing)),
	}

	for _, occ := range existing {
		state.occupied[occ.ServiceDate] = true
		start := timeutil.Instant(occ.ServiceDate, occ.StartTime)
		if start.IsZero() {
			continue
		}
		state.windows = append(state.windows, Window{Start: start, End: start.Add(state.minStartGap)})
	}

	return state
}

// DateOccupied reports whether the driver already holds a block on the given
// service date. One block per calendar date, independent of rest windows.
func (s State) DateOccupied(serviceDate string) bool {
	return s.occupied[serviceDate]
}

// Allows reports whether a new block may start at the given instant, i.e.
// the instant falls inside no rest window.
func (s State) Allows(start time.Time) bool {
	for _, w := range s.windows {
		if w.Contains(start) {
			return false
		}
	}
	return true
}

// Windows returns the forbidden start windows accumulated so far
func (s State) Windows() []Window {
	out := make([]Window, len(s.windows))
	copy(out, s.windows)
	return out
}

// WithAssignment returns a copy of the state with the given block accepted:
// its date marked occupied and a new rest window opened at its start.
func (s State) WithAssignment(serviceDate string, start time.Time) State {
	next := State{
		minStartGap: s.minStartGap,
		occupied:    make(map[string]bool, len(s.occupied)+1),
		windows:     make([]Window, len(s.windows), len(s.windows)+1),
	}
	for date := range s.occupied {
		next.occupied[date] = true
	}
	copy(next.windows, s.windows)

	next.occupied[serviceDate] = true
	if !start.IsZero() {
		next.windows = append(next.windows, Window{Start: start, End: start.Add(s.minStartGap)})
	}
	return next
}
