package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/impactlink/matchengine/internal/logger"
	"github.com/impactlink/matchengine/internal/matching"
	"github.com/impactlink/matchengine/internal/metrics"
	"github.com/impactlink/matchengine/internal/repositories"
	"github.com/impactlink/matchengine/internal/taxonomy"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type matchRepository interface {
	GetByID(ctx context.Context, id string) (*models.Match, error)
	GetByPair(ctx context.Context, assignmentID, candidateID string) (*models.Match, error)
	Create(ctx context.Context, match *models.Match) error
	UpdateScores(ctx context.Context, match *models.Match) error
	Expire(ctx context.Context, matchID string) error
}

type candidateRepository interface {
	GetByID(ctx context.Context, id string) (*models.CandidateProfile, error)
}

type assignmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
}

type snapshotProvider interface {
	Snapshot(ctx context.Context) (*taxonomy.Snapshot, error)
}

// Matcher owns the single-pair evaluation path and the Match record
// lifecycle: constraint check, scoring, idempotent upsert, expiry.
type Matcher struct {
	matches     matchRepository
	candidates  candidateRepository
	assignments assignmentRepository
	vocab       snapshotProvider
	scorer      *matching.Scorer
	retries     int
}

func NewMatcher(matches matchRepository, candidates candidateRepository,
	assignments assignmentRepository, vocab snapshotProvider,
	weights matching.Weights, retries int) (*Matcher, error) {

	scorer, err := matching.NewScorer(weights)
	if err != nil {
		return nil, err
	}
	if retries <= 0 {
		return nil, errors.New("retries must be greater than zero")
	}

	return &Matcher{
		matches:     matches,
		candidates:  candidates,
		assignments: assignments,
		vocab:       vocab,
		scorer:      scorer,
		retries:     retries,
	}, nil
}

// ScoreCandidate evaluates one (candidate, assignment) pair and
// persists the result. An ineligible pair is a normal negative
// outcome, returned as a reason, not an error.
func (m *Matcher) ScoreCandidate(ctx context.Context, candidateID, assignmentID string) (*models.Match, *matching.IneligibleReason, error) {

	candidate, err := m.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, nil, err
	}
	assignment, err := m.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}

	snap, err := m.vocab.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	return m.ScorePair(ctx, candidate, assignment, snap)
}

// ScorePair is the recomputation entry point: callers that already
// hold the entities and a snapshot skip the reloads.
func (m *Matcher) ScorePair(ctx context.Context, candidate *models.CandidateProfile,
	assignment *models.Assignment, snap *taxonomy.Snapshot) (*models.Match, *matching.IneligibleReason, error) {

	start := time.Now()
	if err := validateTaxonomy(candidate, assignment, snap); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTaxonomy).
			Errorf("pair (%v, %v) failed taxonomy resolution: %v", candidate.ID, assignment.ID, err)
		return nil, nil, err
	}

	reason := matching.EvaluateConstraints(candidate, assignment)
	metrics.PairStepDuration.WithLabelValues("constraints").Observe(time.Since(start).Seconds())

	if reason != nil {
		metrics.IneligiblePairsCounter.WithLabelValues(string(reason.Code)).Inc()
		if err := m.expireExistingMatch(ctx, assignment.ID, candidate.ID); err != nil {
			return nil, nil, err
		}
		return nil, reason, nil
	}

	start = time.Now()
	result := m.scorer.Score(candidate, assignment, snap)
	metrics.PairStepDuration.WithLabelValues("scoring").Observe(time.Since(start).Seconds())

	if result.CrossCurrency {
		metrics.CrossCurrencyOutcomes.Inc()
		log.Infof("pair (%v, %v): compensation currencies differ, dimension scored zero",
			candidate.ID, assignment.ID)
	}

	start = time.Now()
	match, err := m.upsertMatch(ctx, candidate.ID, assignment.ID, result, snap.Version())
	metrics.PairStepDuration.WithLabelValues("persist").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, nil, err
	}

	metrics.ScoredPairsCounter.Inc()
	return match, nil, nil
}

// upsertMatch creates the pair's match or rewrites its scoring fields
// in place, preserving interest, reveal state and status. Version
// conflicts retry with fresh state, bounded.
func (m *Matcher) upsertMatch(ctx context.Context, candidateID, assignmentID string,
	result matching.Result, taxonomyVersion int) (*models.Match, error) {

	var lastErr error
	for attempt := 0; attempt < m.retries; attempt++ {

		existing, err := m.matches.GetByPair(ctx, assignmentID, candidateID)
		if err != nil {
			return nil, err
		}

		if existing == nil {
			match := newMatch(candidateID, assignmentID, result, taxonomyVersion)
			if err = m.matches.Create(ctx, match); err != nil {
				// Racing creator won the unique pair index; reread and update.
				lastErr = err
				continue
			}
			return match, nil
		}

		if scoringUnchanged(existing, result, taxonomyVersion) {
			return existing, nil
		}

		existing.OverallScore = result.Overall
		existing.DimensionScores = result.Dimensions
		existing.SetMatchedExpertise(result.MatchedExpertise)
		existing.Explanation = result.Explanation
		existing.TaxonomyVersion = taxonomyVersion

		if err = m.matches.UpdateScores(ctx, existing); err != nil {
			if errors.Is(err, repositories.ErrStaleWriteConflict) {
				metrics.StaleWriteConflicts.Inc()
				lastErr = err
				continue
			}
			return nil, err
		}
		return existing, nil
	}

	log.WithField(logger.ErrorTypeField, logger.ErrorTypeConflict).
		Errorf("upsert for pair (%v, %v) exhausted %v attempts", candidateID, assignmentID, m.retries)
	return nil, errors.Wrapf(lastErr, "upsert exhausted %d attempts", m.retries)
}

// ExpireMatch retires a match; calling it twice is a no-op.
func (m *Matcher) ExpireMatch(ctx context.Context, matchID string) error {
	return m.matches.Expire(ctx, matchID)
}

func (m *Matcher) expireExistingMatch(ctx context.Context, assignmentID, candidateID string) error {
	existing, err := m.matches.GetByPair(ctx, assignmentID, candidateID)
	if err != nil || existing == nil {
		return err
	}
	return m.matches.Expire(ctx, existing.ID)
}

func newMatch(candidateID, assignmentID string, result matching.Result, taxonomyVersion int) *models.Match {
	now := time.Now().UTC()
	match := &models.Match{
		ID:                uuid.NewString(),
		AssignmentID:      assignmentID,
		CandidateID:       candidateID,
		Status:            models.MatchSuggested,
		OverallScore:      result.Overall,
		DimensionScores:   result.Dimensions,
		Explanation:       result.Explanation,
		TaxonomyVersion:   taxonomyVersion,
		CandidateInterest: models.InterestNone,
		OrgInterest:       models.InterestNone,
		RevealState:       models.RevealSuggested,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	match.SetMatchedExpertise(result.MatchedExpertise)
	return match
}

func scoringUnchanged(existing *models.Match, result matching.Result, taxonomyVersion int) bool {
	unchanged := existing.OverallScore == result.Overall &&
		existing.DimensionScores == result.Dimensions &&
		existing.Explanation == result.Explanation &&
		existing.TaxonomyVersion == taxonomyVersion

	probe := &models.Match{}
	probe.SetMatchedExpertise(result.MatchedExpertise)
	return unchanged && existing.MatchedExpertise == probe.MatchedExpertise
}

// validateTaxonomy resolves every scorable identifier on both sides.
// An unknown key fails this single pair, never a whole sweep.
func validateTaxonomy(candidate *models.CandidateProfile, assignment *models.Assignment,
	snap *taxonomy.Snapshot) error {

	for _, req := range assignment.MustHaveSkills {
		if _, err := snap.Resolve(taxonomy.KindSkill, req.SkillID); err != nil {
			return err
		}
	}
	for _, req := range assignment.NiceToHaveSkills {
		if _, err := snap.Resolve(taxonomy.KindSkill, req.SkillID); err != nil {
			return err
		}
	}
	for _, claim := range candidate.Skills {
		if _, err := snap.Resolve(taxonomy.KindSkill, claim.SkillID); err != nil {
			return err
		}
	}
	if _, err := snap.ResolveAll(taxonomy.KindValue, assignment.ValuesRequiredAsArray()); err != nil {
		return err
	}
	if _, err := snap.ResolveAll(taxonomy.KindValue, candidate.ValuesTagsAsArray()); err != nil {
		return err
	}
	if _, err := snap.ResolveAll(taxonomy.KindCause, assignment.CauseTagsAsArray()); err != nil {
		return err
	}
	if _, err := snap.ResolveAll(taxonomy.KindCause, candidate.CauseTagsAsArray()); err != nil {
		return err
	}
	if assignment.MinLanguage != nil {
		if _, err := snap.Resolve(taxonomy.KindLanguage, assignment.MinLanguage.Code); err != nil {
			return err
		}
	}
	for _, claim := range candidate.Languages {
		if _, err := snap.Resolve(taxonomy.KindLanguage, claim.Code); err != nil {
			return err
		}
	}
	if _, err := snap.Resolve(taxonomy.KindCurrency, assignment.Compensation.Currency); err != nil {
		return err
	}
	if _, err := snap.Resolve(taxonomy.KindCurrency, candidate.Compensation.Currency); err != nil {
		return err
	}
	return nil
}
