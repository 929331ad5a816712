package models

import "errors"

type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"
)

func ToWorkMode(s string) (WorkMode, error) {
	switch s {
	case string(WorkModeRemote):
		return WorkModeRemote, nil
	case string(WorkModeOnsite):
		return WorkModeOnsite, nil
	case string(WorkModeHybrid):
		return WorkModeHybrid, nil
	default:
		return "", errors.New("invalid work mode")
	}
}

// LocationPreference describes where work happens. Country, city and
// radius only carry meaning for onsite and hybrid modes; remote
// preferences ignore them entirely.
type LocationPreference struct {
	WorkMode WorkMode `json:"work_mode" validate:"required"`
	Country  string   `json:"country,omitempty"`
	City     string   `json:"city,omitempty"`
	RadiusKm int      `json:"radius_km,omitempty" validate:"min=0"`
}
