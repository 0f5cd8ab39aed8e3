package services

import (
	"github.com/dkellner/blockmatch/pkg/core/model"
	"github.com/dkellner/blockmatch/pkg/db"
)

// toModels converts occurrence rows to their domain form
func toModels(rows []db.Occurrence) []model.ShiftOccurrence {
	out := make([]model.ShiftOccurrence, len(rows))
	for i, row := range rows {
		out[i] = row.ToModel()
	}
	return out
}

// toProfileModels converts profile rows to their domain form
func toProfileModels(rows []db.Profile) []model.DriverPreferenceProfile {
	out := make([]model.DriverPreferenceProfile, len(rows))
	for i, row := range rows {
		out[i] = row.ToModel()
	}
	return out
}
