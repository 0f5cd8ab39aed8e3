package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dkellner/blockmatch/pkg/core/strategy"
	"github.com/dkellner/blockmatch/pkg/db"
)

// mockMatchDriverStore implements MatchDriverStore for testing
type mockMatchDriverStore struct {
	unassigned    []db.Occurrence
	assignments   map[string][]db.Occurrence
	profiles      map[string]*db.Profile
	unassignedErr error
	profileErr    error
}

func (m *mockMatchDriverStore) GetUnassignedOccurrences(ctx context.Context) ([]db.Occurrence, error) {
	if m.unassignedErr != nil {
		return nil, m.unassignedErr
	}
	return m.unassigned, nil
}

func (m *mockMatchDriverStore) GetDriverAssignments(ctx context.Context, driverID string) ([]db.Occurrence, error) {
	return m.assignments[driverID], nil
}

func (m *mockMatchDriverStore) GetProfile(ctx context.Context, driverID string) (*db.Profile, error) {
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.profiles[driverID], nil
}

func strPtr(s string) *string { return &s }

func unassignedRow(id, serviceDate, startTime, contractType string) db.Occurrence {
	return db.Occurrence{
		ID:           id,
		ServiceDate:  serviceDate,
		StartTime:    startTime,
		BlockID:      "block-" + id,
		ContractType: strPtr(contractType),
		Status:       StatusUnassigned,
	}
}

func TestMatchDriver_StrictScenario(t *testing.T) {
	// Wed 16:30 and Wed 20:00 solo2 blocks; strict tier keeps only 16:30
	store := &mockMatchDriverStore{
		unassigned: []db.Occurrence{
			unassignedRow("occ-1630", "2024-01-03", "16:30", "solo2"),
			unassignedRow("occ-2000", "2024-01-10", "20:00", "solo2"),
		},
		profiles: map[string]*db.Profile{
			"driver-1": {
				DriverID:              "driver-1",
				PreferredDays:         "wednesday",
				PreferredStartTimes:   "16:30",
				PreferredContractType: strPtr("solo2"),
			},
		},
	}

	result, err := MatchDriver(context.Background(), store, zap.NewNop(), MatchDriverInput{
		DriverID: "driver-1",
		Strategy: "premium", // threshold 90 -> strict
	})
	require.NoError(t, err)

	assert.Equal(t, strategy.StrictnessStrict, result.Strictness)
	assert.Equal(t, 90, result.Threshold)
	require.Len(t, result.Blocks, 1)
	assert.Equal(t, "occ-1630", result.Blocks[0].Occurrence.OccurrenceID)
	assert.Equal(t, 1.0, result.Blocks[0].MatchScore)
}

func TestMatchDriver_ThresholdOverridesStrategy(t *testing.T) {
	store := &mockMatchDriverStore{
		unassigned: []db.Occurrence{
			unassignedRow("occ-2000", "2024-01-03", "20:00", "solo2"),
		},
		profiles: map[string]*db.Profile{
			"driver-1": {
				DriverID:            "driver-1",
				PreferredDays:       "wednesday",
				PreferredStartTimes: "16:30",
			},
		},
	}

	threshold := 30
	result, err := MatchDriver(context.Background(), store, zap.NewNop(), MatchDriverInput{
		DriverID:  "driver-1",
		Strategy:  "premium",
		Threshold: &threshold,
	})
	require.NoError(t, err)

	// Threshold 30 -> flexible, so the inexact time is accepted
	assert.Equal(t, strategy.StrictnessFlexible, result.Strictness)
	require.Len(t, result.Blocks, 1)
	assert.Equal(t, 0.7, result.Blocks[0].MatchScore)
}

func TestMatchDriver_DefaultsToBalanced(t *testing.T) {
	store := &mockMatchDriverStore{
		unassigned: []db.Occurrence{
			unassignedRow("occ", "2024-01-03", "16:30", "solo1"),
		},
		profiles: map[string]*db.Profile{
			"driver-1": {
				DriverID:            "driver-1",
				PreferredDays:       "wednesday",
				PreferredStartTimes: "16:30",
			},
		},
	}

	result, err := MatchDriver(context.Background(), store, zap.NewNop(), MatchDriverInput{DriverID: "driver-1"})
	require.NoError(t, err)
	assert.Equal(t, 60, result.Threshold)
	assert.Equal(t, strategy.StrictnessModerate, result.Strictness)
}

func TestMatchDriver_UnknownDriver(t *testing.T) {
	store := &mockMatchDriverStore{
		unassigned: []db.Occurrence{unassignedRow("occ", "2024-01-03", "16:30", "solo1")},
		profiles:   map[string]*db.Profile{},
	}

	_, err := MatchDriver(context.Background(), store, zap.NewNop(), MatchDriverInput{DriverID: "ghost"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestMatchDriver_EmptyOccurrencePool(t *testing.T) {
	store := &mockMatchDriverStore{
		profiles: map[string]*db.Profile{
			"driver-1": {DriverID: "driver-1", PreferredDays: "wednesday", PreferredStartTimes: "16:30"},
		},
	}

	_, err := MatchDriver(context.Background(), store, zap.NewNop(), MatchDriverInput{DriverID: "driver-1"})
	assert.ErrorIs(t, err, ErrNoOccurrences)
}

func TestMatchDriver_InvalidThreshold(t *testing.T) {
	store := &mockMatchDriverStore{}
	threshold := 130

	_, err := MatchDriver(context.Background(), store, zap.NewNop(), MatchDriverInput{
		DriverID:  "driver-1",
		Threshold: &threshold,
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMatchDriver_UnknownStrategy(t *testing.T) {
	store := &mockMatchDriverStore{}

	_, err := MatchDriver(context.Background(), store, zap.NewNop(), MatchDriverInput{
		DriverID: "driver-1",
		Strategy: "yolo",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMatchDriver_StoreErrorIsWrapped(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &mockMatchDriverStore{
		profiles: map[string]*db.Profile{
			"driver-1": {DriverID: "driver-1", PreferredDays: "wednesday", PreferredStartTimes: "16:30"},
		},
		unassignedErr: storeErr,
	}

	_, err := MatchDriver(context.Background(), store, zap.NewNop(), MatchDriverInput{DriverID: "driver-1"})
	assert.ErrorIs(t, err, storeErr)
}

func TestMatchDriver_ExistingAssignmentsCountAgainstCap(t *testing.T) {
	// Solo2 cap 3 with one existing assignment leaves room for 2
	store := &mockMatchDriverStore{
		unassigned: []db.Occurrence{
			unassignedRow("a", "2024-01-04", "08:00", "solo2"),
			unassignedRow("b", "2024-01-06", "08:00", "solo2"),
			unassignedRow("c", "2024-01-08", "08:00", "solo2"),
			unassignedRow("d", "2024-01-10", "08:00", "solo2"),
			unassignedRow("e", "2024-01-12", "08:00", "solo2"),
		},
		assignments: map[string][]db.Occurrence{
			"driver-1": {
				{
					ID: "existing", ServiceDate: "2024-01-01", StartTime: "08:00",
					DriverID: strPtr("driver-1"), ContractType: strPtr("solo2"), Status: "assigned",
				},
			},
		},
		profiles: map[string]*db.Profile{
			"driver-1": {
				DriverID:              "driver-1",
				PreferredDays:         "sunday,monday,tuesday,wednesday,thursday,friday,saturday",
				PreferredStartTimes:   "08:00",
				PreferredContractType: strPtr("solo2"),
			},
		},
	}

	result, err := MatchDriver(context.Background(), store, zap.NewNop(), MatchDriverInput{
		DriverID: "driver-1",
		Strategy: "premium",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ExistingCount)
	assert.Len(t, result.Blocks, 2)
}
