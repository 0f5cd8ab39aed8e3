package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/dkellner/blockmatch/pkg/db"
)

// StatusUnassigned is the status a freshly materialized occurrence starts in
const StatusUnassigned = "unassigned"

// BlockDefinition describes a recurring block to materialize onto the
// calendar: its recurrence rule, daily start time, and contract type.
type BlockDefinition struct {
	BlockID      string
	RRule        string
	StartTime    string
	ContractType string
}

// MaterializeBlocksStore defines the database operations needed for materializing blocks
type MaterializeBlocksStore interface {
	GetOccurrencesByBlock(ctx context.Context, blockID string) ([]db.Occurrence, error)
	InsertOccurrences(ctx context.Context, occurrences []db.Occurrence) error
}

// MaterializeBlocksInput spans the calendar range to fill
type MaterializeBlocksInput struct {
	Blocks []BlockDefinition
	From   time.Time
	Until  time.Time
}

// MaterializeBlocksResult reports what was created
type MaterializeBlocksResult struct {
	Created []db.Occurrence
	Skipped int
}

// MaterializeBlocks expands recurring block definitions into concrete
// unassigned occurrences over the given date range. Dates a block already
// has an occurrence on are skipped, so re-running over an overlapping range
// is safe.
func MaterializeBlocks(ctx context.Context, database MaterializeBlocksStore, logger *zap.Logger, input MaterializeBlocksInput) (*MaterializeBlocksResult, error) {
	if !input.Until.After(input.From) {
		return nil, fmt.Errorf("until %s must be after from %s",
			input.Until.Format("2006-01-02"), input.From.Format("2006-01-02"))
	}

	logger.Info("Materializing recurring blocks",
		zap.Int("block_count", len(input.Blocks)),
		zap.Time("from", input.From),
		zap.Time("until", input.Until))

	result := &MaterializeBlocksResult{}

	for _, block := range input.Blocks {
		rule, err := rrule.StrToRRule(block.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule for block %s: %w", block.BlockID, err)
		}
		rule.DTStart(input.From)

		// Dates this block is already materialized on
		existingRows, err := database.GetOccurrencesByBlock(ctx, block.BlockID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch occurrences for block %s: %w", block.BlockID, err)
		}
		existingDates := make(map[string]bool, len(existingRows))
		for _, row := range existingRows {
			existingDates[row.ServiceDate] = true
		}

		var rows []db.Occurrence
		for _, date := range rule.Between(input.From, input.Until, true) {
			serviceDate := date.Format("2006-01-02")
			if existingDates[serviceDate] {
				result.Skipped++
				continue
			}

			contractType := block.ContractType
			row := db.Occurrence{
				ID:          uuid.New().String(),
				ServiceDate: serviceDate,
				StartTime:   block.StartTime,
				BlockID:     block.BlockID,
				Status:      StatusUnassigned,
			}
			if contractType != "" {
				row.ContractType = &contractType
			}
			rows = append(rows, row)
		}

		if len(rows) == 0 {
			logger.Debug("Nothing to materialize for block", zap.String("block_id", block.BlockID))
			continue
		}

		if err := database.InsertOccurrences(ctx, rows); err != nil {
			return nil, fmt.Errorf("failed to insert occurrences for block %s: %w", block.BlockID, err)
		}

		logger.Info("Materialized block",
			zap.String("block_id", block.BlockID),
			zap.Int("created", len(rows)))
		result.Created = append(result.Created, rows...)
	}

	return result, nil
}
