package postgres

import (
	"context"
	"fmt"

	"github.com/dkellner/blockmatch/pkg/db"
)

const occurrenceColumns = `id, service_date, start_time, block_id, driver_id, contract_type, status, tractor_id`

// GetUnassignedOccurrences retrieves all occurrences with no assigned driver
func (d *DB) GetUnassignedOccurrences(ctx context.Context) ([]db.Occurrence, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+occurrenceColumns+`
		FROM shift_occurrence
		WHERE driver_id IS NULL
		ORDER BY service_date, start_time, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unassigned occurrences: %w", err)
	}
	defer rows.Close()

	return scanOccurrences(rows)
}

// GetDriverAssignments retrieves all occurrences assigned to a driver
func (d *DB) GetDriverAssignments(ctx context.Context, driverID string) ([]db.Occurrence, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+occurrenceColumns+`
		FROM shift_occurrence
		WHERE driver_id = $1
		ORDER BY service_date, start_time, id
	`, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments for driver %s: %w", driverID, err)
	}
	defer rows.Close()

	return scanOccurrences(rows)
}

// GetOccurrencesByBlock retrieves all occurrences for a logical block
func (d *DB) GetOccurrencesByBlock(ctx context.Context, blockID string) ([]db.Occurrence, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+occurrenceColumns+`
		FROM shift_occurrence
		WHERE block_id = $1
		ORDER BY service_date, id
	`, blockID)
	if err != nil {
		return nil, fmt.Errorf("failed to query occurrences for block %s: %w", blockID, err)
	}
	defer rows.Close()

	return scanOccurrences(rows)
}

// InsertOccurrences inserts occurrence records in a single transaction
func (d *DB) InsertOccurrences(ctx context.Context, occurrences []db.Occurrence) error {
	if len(occurrences) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, occ := range occurrences {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift_occurrence (id, service_date, start_time, block_id, driver_id, contract_type, status, tractor_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, occ.ID, occ.ServiceDate, occ.StartTime, occ.BlockID, occ.DriverID, occ.ContractType, occ.Status, occ.TractorID)
		if err != nil {
			return fmt.Errorf("failed to insert occurrence %s: %w", occ.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit occurrences: %w", err)
	}
	return nil
}

// rowScanner matches the subset of pgx.Rows the scan helpers need
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanOccurrences(rows rowScanner) ([]db.Occurrence, error) {
	var occurrences []db.Occurrence
	for rows.Next() {
		var occ db.Occurrence
		if err := rows.Scan(&occ.ID, &occ.ServiceDate, &occ.StartTime, &occ.BlockID,
			&occ.DriverID, &occ.ContractType, &occ.Status, &occ.TractorID); err != nil {
			return nil, fmt.Errorf("failed to scan occurrence: %w", err)
		}
		occurrences = append(occurrences, occ)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read occurrence rows: %w", err)
	}
	return occurrences, nil
}
