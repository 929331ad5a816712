package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/impactlink/matchengine/internal/events"
	"github.com/impactlink/matchengine/internal/logger"
	"github.com/impactlink/matchengine/internal/metrics"
	"github.com/impactlink/matchengine/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrMatchInactive   = errors.New("match is no longer active")
	ErrInvalidDecision = errors.New("decision must be interested or declined")
	ErrInvalidSide     = errors.New("side must be candidate or organization")
)

type revealMatchRepository interface {
	GetByID(ctx context.Context, id string) (*models.Match, error)
	UpdateInterest(ctx context.Context, match *models.Match) error
	PromoteToRevealed(ctx context.Context, matchID string) (bool, error)
}

// RevealedCandidate and RevealedOrganization are the identifying
// fields. They exist on a view only once the reveal state allows it.
type RevealedCandidate struct {
	Name      string
	Email     string
	AvatarURL string
}

type RevealedOrganization struct {
	OrgName      string
	ContactEmail string
}

// MatchView is what leaves the engine. Candidate and Organization are
// nil in every state before revealed; all earlier states expose only
// the structured fields used in scoring.
type MatchView struct {
	ID                string
	AssignmentID      string
	CandidateID       string
	Status            models.MatchStatus
	OverallScore      int
	DimensionScores   models.DimensionScores
	MatchedExpertise  []string
	Explanation       string
	CandidateInterest models.Interest
	OrgInterest       models.Interest
	RevealState       models.RevealState
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Candidate         *RevealedCandidate
	Organization      *RevealedOrganization
}

// RevealService is the only mutator of interest and reveal state, and
// the only reader allowed to attach identifying fields to a match.
type RevealService struct {
	matches     revealMatchRepository
	candidates  candidateRepository
	assignments assignmentRepository
	bus         EventBus.Bus
	retries     int
}

func NewRevealService(matches revealMatchRepository, candidates candidateRepository,
	assignments assignmentRepository, bus EventBus.Bus, retries int) (*RevealService, error) {

	if retries <= 0 {
		return nil, errors.New("retries must be greater than zero")
	}
	return &RevealService{
		matches:     matches,
		candidates:  candidates,
		assignments: assignments,
		bus:         bus,
		retries:     retries,
	}, nil
}

// RecordInterest applies one side's decision. The write is a
// compare-and-set on the match row: two racing calls from opposite
// sides converge deterministically on mutual interest, after which
// the reveal step runs automatically.
func (s *RevealService) RecordInterest(ctx context.Context, matchID string,
	side models.Side, decision models.Interest) (*MatchView, error) {

	if decision != models.InterestInterested && decision != models.InterestDeclined {
		return nil, ErrInvalidDecision
	}
	if side != models.SideCandidate && side != models.SideOrganization {
		return nil, ErrInvalidSide
	}

	var lastErr error
	for attempt := 0; attempt < s.retries; attempt++ {

		match, err := s.matches.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		// Expired and declined are terminal: no decision reopens them.
		if match.Status == models.MatchExpired || match.RevealState == models.RevealExpired ||
			match.RevealState == models.RevealDeclined {
			return nil, ErrMatchInactive
		}

		if side == models.SideCandidate {
			match.CandidateInterest = decision
		} else {
			match.OrgInterest = decision
		}
		match.RevealState = models.NextRevealState(match.RevealState, match.CandidateInterest, match.OrgInterest)

		if err = s.matches.UpdateInterest(ctx, match); err != nil {
			if errors.Is(err, repositories.ErrStaleWriteConflict) {
				metrics.StaleWriteConflicts.Inc()
				lastErr = err
				continue
			}
			return nil, err
		}

		if match.RevealState == models.RevealMutualInterest {
			if err = s.runRevealStep(ctx, match); err != nil {
				return nil, err
			}
		}

		return s.GetMatch(ctx, matchID, side)
	}

	log.WithField(logger.ErrorTypeField, logger.ErrorTypeConflict).
		Errorf("recording interest on match %v exhausted %v attempts", matchID, s.retries)
	return nil, errors.Wrapf(lastErr, "record interest exhausted %d attempts", s.retries)
}

// runRevealStep promotes mutual interest to revealed. Not optional:
// once both sides are interested, disclosure is automatic.
func (s *RevealService) runRevealStep(ctx context.Context, match *models.Match) error {
	promoted, err := s.matches.PromoteToRevealed(ctx, match.ID)
	if err != nil {
		return err
	}
	if promoted {
		metrics.RevealsCounter.Inc()
		log.Infof("match %v revealed after mutual interest", match.ID)
		s.bus.Publish(events.MatchRevealedTopic, events.MatchRevealed{
			MatchID:      match.ID,
			AssignmentID: match.AssignmentID,
			CandidateID:  match.CandidateID,
		})
	}
	return nil
}

// GetMatch returns the match with identifying fields redacted unless
// the reveal state is revealed. The check lives here, at the data
// access boundary, and no error path can route around it.
func (s *RevealService) GetMatch(ctx context.Context, matchID string, side models.Side) (*MatchView, error) {

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	view := &MatchView{
		ID:                match.ID,
		AssignmentID:      match.AssignmentID,
		CandidateID:       match.CandidateID,
		Status:            match.Status,
		OverallScore:      match.OverallScore,
		DimensionScores:   match.DimensionScores,
		MatchedExpertise:  match.MatchedExpertiseAsArray(),
		Explanation:       match.Explanation,
		CandidateInterest: match.CandidateInterest,
		OrgInterest:       match.OrgInterest,
		RevealState:       match.RevealState,
		CreatedAt:         match.CreatedAt,
		UpdatedAt:         match.UpdatedAt,
	}

	if match.RevealState != models.RevealRevealed {
		return view, nil
	}

	// Past this point both parties agreed to disclosure. Each side
	// sees the other's identity, not a reflection of its own.
	switch side {
	case models.SideOrganization:
		candidate, err := s.candidates.GetByID(ctx, match.CandidateID)
		if err != nil {
			return nil, err
		}
		view.Candidate = &RevealedCandidate{
			Name:      candidate.Name,
			Email:     candidate.Email,
			AvatarURL: candidate.AvatarURL,
		}
	case models.SideCandidate:
		assignment, err := s.assignments.GetByID(ctx, match.AssignmentID)
		if err != nil {
			return nil, err
		}
		view.Organization = &RevealedOrganization{
			OrgName:      assignment.OrgName,
			ContactEmail: assignment.ContactEmail,
		}
	}

	return view, nil
}
