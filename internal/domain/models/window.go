package models

import "time"

type DateWindow struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

func (w DateWindow) Valid() bool {
	return !w.Earliest.After(w.Latest)
}

func (w DateWindow) Overlaps(other DateWindow) bool {
	return !w.Earliest.After(other.Latest) && !other.Earliest.After(w.Latest)
}

type HoursRange struct {
	Min int `json:"min" validate:"min=0"`
	Max int `json:"max" validate:"min=0,gtefield=Min"`
}

func (h HoursRange) Overlaps(other HoursRange) bool {
	return h.Min <= other.Max && other.Min <= h.Max
}
