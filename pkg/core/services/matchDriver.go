package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dkellner/blockmatch/pkg/core/allocator"
	"github.com/dkellner/blockmatch/pkg/core/model"
	"github.com/dkellner/blockmatch/pkg/core/strategy"
	"github.com/dkellner/blockmatch/pkg/db"
)

// MatchDriverStore defines the database operations needed for matching a driver
type MatchDriverStore interface {
	GetUnassignedOccurrences(ctx context.Context) ([]db.Occurrence, error)
	GetDriverAssignments(ctx context.Context, driverID string) ([]db.Occurrence, error)
	GetProfile(ctx context.Context, driverID string) (*db.Profile, error)
}

// MatchDriverInput selects the driver and how strict the match should be.
// Strategy names a preset; Threshold overrides it when non-nil.
type MatchDriverInput struct {
	DriverID  string
	Strategy  string
	Threshold *int
}

// MatchDriverResult contains the recommended blocks for one driver
type MatchDriverResult struct {
	DriverID      string
	Strictness    strategy.Strictness
	Threshold     int
	ExistingCount int
	Blocks        []model.MatchingBlock
}

// MatchDriver computes the best compliant set of unassigned blocks for one
// driver. Recommendations are per-driver and unreserved: nothing stops two
// drivers from being recommended the same block, and whoever is assigned
// first downstream wins.
func MatchDriver(ctx context.Context, database MatchDriverStore, logger *zap.Logger, input MatchDriverInput) (*MatchDriverResult, error) {
	threshold, err := resolveThreshold(input.Strategy, input.Threshold)
	if err != nil {
		return nil, err
	}
	strictness := strategy.TierForThreshold(threshold)

	logger.Info("Matching driver",
		zap.String("driver_id", input.DriverID),
		zap.Int("threshold", threshold),
		zap.String("strictness", string(strictness)))

	// Fetch the driver's preference profile
	logger.Debug("Fetching preference profile", zap.String("driver_id", input.DriverID))
	profileRow, err := database.GetProfile(ctx, input.DriverID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for driver %s: %w", input.DriverID, err)
	}
	if profileRow == nil {
		return nil, fmt.Errorf("driver %s: %w", input.DriverID, ErrProfileNotFound)
	}
	profile := profileRow.ToModel()

	// Fetch the unassigned block pool
	logger.Debug("Fetching unassigned occurrences")
	unassignedRows, err := database.GetUnassignedOccurrences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned occurrences: %w", err)
	}
	if len(unassignedRows) == 0 {
		return nil, ErrNoOccurrences
	}
	logger.Debug("Found unassigned occurrences", zap.Int("count", len(unassignedRows)))

	// Fetch the driver's existing assignments
	logger.Debug("Fetching existing assignments", zap.String("driver_id", input.DriverID))
	existingRows, err := database.GetDriverAssignments(ctx, input.DriverID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for driver %s: %w", input.DriverID, err)
	}
	logger.Debug("Found existing assignments", zap.Int("count", len(existingRows)))

	blocks := allocator.Allocate(allocator.Input{
		Profile:    profile,
		Unassigned: toModels(unassignedRows),
		Existing:   toModels(existingRows),
		Strictness: strictness,
	})

	logger.Info("Matching complete",
		zap.String("driver_id", input.DriverID),
		zap.Int("recommended_blocks", len(blocks)))

	return &MatchDriverResult{
		DriverID:      input.DriverID,
		Strictness:    strictness,
		Threshold:     threshold,
		ExistingCount: len(existingRows),
		Blocks:        blocks,
	}, nil
}

// resolveThreshold picks the effective confidence threshold: an explicit
// override wins, otherwise the named preset's threshold, otherwise the
// balanced preset.
func resolveThreshold(strategyName string, override *int) (int, error) {
	if override != nil {
		if *override < 0 || *override > 100 {
			return 0, fmt.Errorf("%w: threshold must be between 0 and 100, got %d", ErrInvalidArgument, *override)
		}
		return *override, nil
	}

	if strategyName == "" {
		strategyName = "balanced"
	}
	preset, err := strategy.PresetByName(strategyName)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return preset.Threshold, nil
}
