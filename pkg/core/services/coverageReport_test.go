package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dkellner/blockmatch/pkg/core/strategy"
	"github.com/dkellner/blockmatch/pkg/db"
)

// mockCoverageStore implements CoverageReportStore for testing
type mockCoverageStore struct {
	unassigned []db.Occurrence
	profiles   []db.Profile
}

func (m *mockCoverageStore) GetUnassignedOccurrences(ctx context.Context) ([]db.Occurrence, error) {
	return m.unassigned, nil
}

func (m *mockCoverageStore) GetProfiles(ctx context.Context) ([]db.Profile, error) {
	return m.profiles, nil
}

func TestCoverageReport(t *testing.T) {
	store := &mockCoverageStore{
		unassigned: []db.Occurrence{
			unassignedRow("wed", "2024-01-03", "08:00", "solo1"),
			unassignedRow("thu", "2024-01-04", "08:00", "solo1"),
		},
		profiles: []db.Profile{
			{DriverID: "d1", PreferredDays: "wednesday", PreferredStartTimes: "08:00"},
			{DriverID: "d2", PreferredDays: "wednesday,thursday", PreferredStartTimes: "08:00"},
			{DriverID: "d3", PreferredDays: "", PreferredStartTimes: "08:00"}, // no signal
		},
	}

	result, err := CoverageReport(context.Background(), store, zap.NewNop(), CoverageReportInput{Strategy: "cover"})
	require.NoError(t, err)

	assert.Equal(t, strategy.StrictnessFlexible, result.Strictness)
	assert.Equal(t, 20, result.Threshold)
	assert.Equal(t, 2, result.Report.Total)
	require.Len(t, result.Report.Coverage, 4)
	assert.Equal(t, 2, result.Report.Coverage[0].Count) // >=1 driver
	assert.Equal(t, 1, result.Report.Coverage[1].Count) // >=2 drivers
	assert.Equal(t, 0, result.Report.Coverage[2].Count)
}

func TestCoverageReport_EmptyPool(t *testing.T) {
	store := &mockCoverageStore{}

	_, err := CoverageReport(context.Background(), store, zap.NewNop(), CoverageReportInput{})
	assert.ErrorIs(t, err, ErrNoOccurrences)
}
