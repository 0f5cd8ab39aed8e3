package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dkellner/blockmatch/pkg/db"
)

// GetProfile retrieves the preference profile for one driver.
// Returns (nil, nil) when the driver has no profile.
func (d *DB) GetProfile(ctx context.Context, driverID string) (*db.Profile, error) {
	var profile db.Profile
	err := d.pool.QueryRow(ctx, `
		SELECT driver_id, preferred_days, preferred_start_times, preferred_contract_type
		FROM driver_profile
		WHERE driver_id = $1
	`, driverID).Scan(&profile.DriverID, &profile.PreferredDays, &profile.PreferredStartTimes, &profile.PreferredContractType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile for driver %s: %w", driverID, err)
	}
	return &profile, nil
}

// GetProfiles retrieves all driver preference profiles
func (d *DB) GetProfiles(ctx context.Context) ([]db.Profile, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT driver_id, preferred_days, preferred_start_times, preferred_contract_type
		FROM driver_profile
		ORDER BY driver_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []db.Profile
	for rows.Next() {
		var profile db.Profile
		if err := rows.Scan(&profile.DriverID, &profile.PreferredDays,
			&profile.PreferredStartTimes, &profile.PreferredContractType); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile rows: %w", err)
	}
	return profiles, nil
}
