package models

import "strings"

// CompensationRange is an expectation on the candidate side and an
// offer on the assignment side. Cross-currency comparison is not
// performed: ranges in different currencies never overlap.
type CompensationRange struct {
	Min      int    `json:"min" validate:"min=0"`
	Max      int    `json:"max" validate:"min=0,gtefield=Min"`
	Currency string `json:"currency" validate:"required"`
}

func (r CompensationRange) Overlaps(other CompensationRange) bool {
	if !strings.EqualFold(r.Currency, other.Currency) {
		return false
	}
	return r.Min <= other.Max && other.Min <= r.Max
}
