package models

import (
	"strings"
	"time"
)

type MatchStatus string

const (
	MatchSuggested MatchStatus = "suggested"
	MatchExpired   MatchStatus = "expired"
)

// Interest is one side's expressed decision on a match.
type Interest string

const (
	InterestNone       Interest = "none"
	InterestInterested Interest = "interested"
	InterestDeclined   Interest = "declined"
)

// Side identifies which party of a match is acting.
type Side string

const (
	SideCandidate    Side = "candidate"
	SideOrganization Side = "organization"
)

// RevealState is the stage of mutual-interest-gated identity
// disclosure. Identifying fields are visible only at RevealRevealed.
type RevealState string

const (
	RevealSuggested       RevealState = "suggested"
	RevealPendingInterest RevealState = "pendingInterest"
	RevealMutualInterest  RevealState = "mutualInterest"
	RevealRevealed        RevealState = "revealed"
	RevealDeclined        RevealState = "declined"
	RevealExpired         RevealState = "expired"
)

type DimensionScores struct {
	Skill        float64 `json:"skill"`
	Values       float64 `json:"values"`
	Causes       float64 `json:"causes"`
	Compensation float64 `json:"compensation"`
	Location     float64 `json:"location"`
	Language     float64 `json:"language"`
}

// Match is the engine's central record, one per (assignment, candidate)
// pair. Version is the optimistic concurrency token; every conditional
// write increments it.
type Match struct {
	ID                string `gorm:"primaryKey"`
	AssignmentID      string `gorm:"index"`
	CandidateID       string `gorm:"index"`
	Status            MatchStatus
	OverallScore      int
	DimensionScores   DimensionScores `gorm:"serializer:json"`
	MatchedExpertise  string          // comma-joined skill ids
	Explanation       string
	TaxonomyVersion   int
	CandidateInterest Interest
	OrgInterest       Interest
	RevealState       RevealState
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (m *Match) MatchedExpertiseAsArray() []string {
	return splitTags(m.MatchedExpertise)
}

func (m *Match) SetMatchedExpertise(skillIDs []string) {
	m.MatchedExpertise = strings.Join(skillIDs, ",")
}

func (m *Match) InterestOf(side Side) Interest {
	if side == SideCandidate {
		return m.CandidateInterest
	}
	return m.OrgInterest
}

// NextRevealState derives the reveal state implied by the two interest
// flags. Revealed can only move to declined; declined and expired are
// terminal.
func NextRevealState(current RevealState, candidate, org Interest) RevealState {
	if current == RevealExpired {
		return RevealExpired
	}
	if current == RevealDeclined {
		return RevealDeclined
	}
	if candidate == InterestDeclined || org == InterestDeclined {
		return RevealDeclined
	}
	if current == RevealRevealed {
		return RevealRevealed
	}
	if candidate == InterestInterested && org == InterestInterested {
		return RevealMutualInterest
	}
	if candidate == InterestInterested || org == InterestInterested {
		return RevealPendingInterest
	}
	return RevealSuggested
}
