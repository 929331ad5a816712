package events

// Topics on the in-process bus. The CRUD surface publishes entity
// changes; the recomputation scheduler subscribes.
var (
	AssignmentChangedTopic = "AssignmentChangedEvent"
	CandidateChangedTopic  = "CandidateChangedEvent"
	TaxonomyChangedTopic   = "TaxonomyChangedEvent"
	MatchRevealedTopic     = "MatchRevealedEvent"
)

type AssignmentChanged struct {
	AssignmentID string
}

type CandidateChanged struct {
	CandidateID string
}

type TaxonomyChanged struct {
	Version int
}

// MatchRevealed is published once per match when identity disclosure
// unlocks; notification delivery is an external collaborator.
type MatchRevealed struct {
	MatchID      string
	AssignmentID string
	CandidateID  string
}
