package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dkellner/blockmatch/pkg/core/coverage"
	"github.com/dkellner/blockmatch/pkg/core/strategy"
	"github.com/dkellner/blockmatch/pkg/db"
)

// CoverageReportStore defines the database operations needed for coverage reporting
type CoverageReportStore interface {
	GetUnassignedOccurrences(ctx context.Context) ([]db.Occurrence, error)
	GetProfiles(ctx context.Context) ([]db.Profile, error)
}

// CoverageReportInput selects the strictness for the report. Strategy names
// a preset; Threshold overrides it when non-nil.
type CoverageReportInput struct {
	Strategy  string
	Threshold *int
}

// CoverageReportResult wraps the coverage report with the tier it was
// computed at
type CoverageReportResult struct {
	Strictness strategy.Strictness
	Threshold  int
	Report     coverage.Report
}

// CoverageReport counts, for every unassigned block, how many driver
// profiles would accept it at the active strictness, and buckets the counts.
func CoverageReport(ctx context.Context, database CoverageReportStore, logger *zap.Logger, input CoverageReportInput) (*CoverageReportResult, error) {
	threshold, err := resolveThreshold(input.Strategy, input.Threshold)
	if err != nil {
		return nil, err
	}
	strictness := strategy.TierForThreshold(threshold)

	logger.Info("Computing coverage report",
		zap.Int("threshold", threshold),
		zap.String("strictness", string(strictness)))

	unassignedRows, err := database.GetUnassignedOccurrences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned occurrences: %w", err)
	}
	if len(unassignedRows) == 0 {
		return nil, ErrNoOccurrences
	}

	profileRows, err := database.GetProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	logger.Debug("Inputs loaded",
		zap.Int("occurrences", len(unassignedRows)),
		zap.Int("profiles", len(profileRows)))

	report := coverage.Stats(toModels(unassignedRows), toProfileModels(profileRows), strictness)

	logger.Info("Coverage report complete", zap.Int("total_blocks", report.Total))

	return &CoverageReportResult{
		Strictness: strictness,
		Threshold:  threshold,
		Report:     report,
	}, nil
}
