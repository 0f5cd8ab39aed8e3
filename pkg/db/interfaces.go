package db

import "context"

// OccurrenceStore defines the interface for shift occurrence database operations
type OccurrenceStore interface {
	GetUnassignedOccurrences(ctx context.Context) ([]Occurrence, error)
	GetDriverAssignments(ctx context.Context, driverID string) ([]Occurrence, error)
	GetOccurrencesByBlock(ctx context.Context, blockID string) ([]Occurrence, error)
	InsertOccurrences(ctx context.Context, occurrences []Occurrence) error
}

// ProfileStore defines the interface for driver preference profile database operations
type ProfileStore interface {
	GetProfile(ctx context.Context, driverID string) (*Profile, error)
	GetProfiles(ctx context.Context) ([]Profile, error)
}
