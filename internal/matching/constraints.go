package matching

import (
	"fmt"
	"sort"

	"github.com/impactlink/matchengine/internal/domain/models"
)

type ReasonCode string

const (
	ReasonMissingMustHaveSkill  ReasonCode = "MissingMustHaveSkill"
	ReasonUnmetVerificationGate ReasonCode = "UnmetVerificationGate"
	ReasonInsufficientLanguage  ReasonCode = "InsufficientLanguage"
	ReasonInactivePair          ReasonCode = "InactivePair"
)

// IneligibleReason is a normal negative result, not an error. The
// first failing hard filter wins; evaluation never continues past it.
type IneligibleReason struct {
	Code   ReasonCode
	Detail string
}

func (r IneligibleReason) String() string {
	if r.Detail == "" {
		return string(r.Code)
	}
	return fmt.Sprintf("%s(%s)", r.Code, r.Detail)
}

// EvaluateConstraints applies the hard filters between one candidate
// and one assignment, in fixed order: must-have skills, verification
// gates, minimum language, then active flags. Returns nil when the
// pair is eligible.
func EvaluateConstraints(candidate *models.CandidateProfile, assignment *models.Assignment) *IneligibleReason {

	for _, req := range assignment.MustHaveSkills {
		claim, ok := candidate.ClaimFor(req.SkillID)
		if !ok || !claim.Satisfies(req) {
			return &IneligibleReason{Code: ReasonMissingMustHaveSkill, Detail: req.SkillID}
		}
	}

	// Gates are a set; sorted iteration keeps the first failing gate
	// deterministic across runs.
	verified := make(map[string]bool)
	for _, gate := range candidate.VerifiedGatesAsArray() {
		verified[gate] = true
	}
	gates := assignment.VerificationGatesAsArray()
	sort.Strings(gates)
	for _, gate := range gates {
		if !verified[gate] {
			return &IneligibleReason{Code: ReasonUnmetVerificationGate, Detail: gate}
		}
	}

	if req := assignment.MinLanguage; req != nil {
		claim, ok := candidate.LanguageFor(req.Code)
		if !ok || !claim.Satisfies(*req) {
			return &IneligibleReason{Code: ReasonInsufficientLanguage, Detail: req.Code}
		}
	}

	if !candidate.MatchingActive || assignment.Status != models.AssignmentActive {
		return &IneligibleReason{Code: ReasonInactivePair}
	}

	return nil
}
