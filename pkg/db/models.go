package db

import (
	"strings"

	"github.com/dkellner/blockmatch/pkg/core/model"
)

// Occurrence is the storage record for a materialized shift occurrence.
// Nullable columns map to pointers.
type Occurrence struct {
	ID           string
	ServiceDate  string
	StartTime    string
	BlockID      string
	DriverID     *string
	ContractType *string
	Status       string
	TractorID    *string
}

// Profile is the storage record for a learned driver preference profile.
// Day and time lists are stored as comma-joined text.
type Profile struct {
	DriverID              string
	PreferredDays         string
	PreferredStartTimes   string
	PreferredContractType *string
}

// ToModel converts an occurrence row to its domain form
func (o Occurrence) ToModel() model.ShiftOccurrence {
	occ := model.ShiftOccurrence{
		OccurrenceID: o.ID,
		ServiceDate:  o.ServiceDate,
		StartTime:    o.StartTime,
		BlockID:      o.BlockID,
		Status:       o.Status,
	}
	if o.DriverID != nil {
		occ.DriverID = *o.DriverID
	}
	if o.ContractType != nil {
		occ.ContractType = *o.ContractType
	}
	if o.TractorID != nil {
		occ.TractorID = *o.TractorID
	}
	return occ
}

// FromModel converts a domain occurrence to its storage form
func FromModel(occ model.ShiftOccurrence) Occurrence {
	row := Occurrence{
		ID:          occ.OccurrenceID,
		ServiceDate: occ.ServiceDate,
		StartTime:   occ.StartTime,
		BlockID:     occ.BlockID,
		Status:      occ.Status,
	}
	if occ.DriverID != "" {
		row.DriverID = &occ.DriverID
	}
	if occ.ContractType != "" {
		row.ContractType = &occ.ContractType
	}
	if occ.TractorID != "" {
		row.TractorID = &occ.TractorID
	}
	return row
}

// ToModel converts a profile row to its domain form
func (p Profile) ToModel() model.DriverPreferenceProfile {
	profile := model.DriverPreferenceProfile{
		DriverID:            p.DriverID,
		PreferredDays:       splitList(p.PreferredDays),
		PreferredStartTimes: splitList(p.PreferredStartTimes),
	}
	if p.PreferredContractType != nil {
		profile.PreferredContractType = *p.PreferredContractType
	}
	return profile
}

// splitList splits comma-joined text, dropping empty entries so a blank
// column reads as "no preferences" rather than one empty preference
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
