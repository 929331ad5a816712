package repositories

import (
	"context"
	"time"

	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrStaleWriteConflict signals that a concurrent writer advanced the
// match's version token. Callers retry with fresh state, bounded.
var ErrStaleWriteConflict = errors.New("stale write conflict")

var ErrMatchNotFound = errors.New("match not found")

type Matches struct {
	db *gorm.DB
}

func NewMatchesRepository(db *gorm.DB) *Matches {
	return &Matches{db: db}
}

func (repo *Matches) GetByID(ctx context.Context, id string) (*models.Match, error) {
	var match models.Match
	if err := repo.db.WithContext(ctx).First(&match, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

// GetByPair returns nil without error when no match exists yet.
func (repo *Matches) GetByPair(ctx context.Context, assignmentID, candidateID string) (*models.Match, error) {
	var match models.Match
	err := repo.db.WithContext(ctx).
		First(&match, "assignment_id = ? AND candidate_id = ?", assignmentID, candidateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &match, nil
}

func (repo *Matches) Create(ctx context.Context, match *models.Match) error {
	return repo.db.WithContext(ctx).Create(match).Error
}

// UpdateScores rewrites the scoring fields conditional on the version
// token. Interest, reveal state and status are deliberately not in the
// update set: recomputation must never reset them.
func (repo *Matches) UpdateScores(ctx context.Context, match *models.Match) error {
	res := repo.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ? AND version = ?", match.ID, match.Version).
		Select("overall_score", "dimension_scores", "matched_expertise",
			"explanation", "taxonomy_version", "version", "updated_at").
		Updates(models.Match{
			OverallScore:     match.OverallScore,
			DimensionScores:  match.DimensionScores,
			MatchedExpertise: match.MatchedExpertise,
			Explanation:      match.Explanation,
			TaxonomyVersion:  match.TaxonomyVersion,
			Version:          match.Version + 1,
			UpdatedAt:        time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleWriteConflict
	}
	match.Version++
	return nil
}

// UpdateInterest is the compare-and-set behind interest recording:
// the write succeeds only if no one advanced the row since it was read.
func (repo *Matches) UpdateInterest(ctx context.Context, match *models.Match) error {
	res := repo.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ? AND version = ?", match.ID, match.Version).
		Select("candidate_interest", "org_interest", "reveal_state", "version", "updated_at").
		Updates(models.Match{
			CandidateInterest: match.CandidateInterest,
			OrgInterest:       match.OrgInterest,
			RevealState:       match.RevealState,
			Version:           match.Version + 1,
			UpdatedAt:         time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleWriteConflict
	}
	match.Version++
	return nil
}

// PromoteToRevealed runs the automatic reveal step. Conditional on the
// state rather than the version: it is idempotent and can race safely.
func (repo *Matches) PromoteToRevealed(ctx context.Context, matchID string) (bool, error) {
	res := repo.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ? AND reveal_state = ?", matchID, models.RevealMutualInterest).
		Updates(map[string]any{
			"reveal_state": models.RevealRevealed,
			"version":      gorm.Expr("version + 1"),
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Expire retires a match. A no-op when already expired.
func (repo *Matches) Expire(ctx context.Context, matchID string) error {
	return repo.db.WithContext(ctx).Model(&models.Match{}).
		Where("id = ? AND status <> ?", matchID, models.MatchExpired).
		Updates(map[string]any{
			"status":       models.MatchExpired,
			"reveal_state": models.RevealExpired,
			"version":      gorm.Expr("version + 1"),
			"updated_at":   time.Now().UTC(),
		}).Error
}

func (repo *Matches) GetByAssignment(ctx context.Context, assignmentID string) ([]models.Match, error) {
	var matches []models.Match
	if err := repo.db.WithContext(ctx).Find(&matches, "assignment_id = ?", assignmentID).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (repo *Matches) GetByCandidate(ctx context.Context, candidateID string) ([]models.Match, error) {
	var matches []models.Match
	if err := repo.db.WithContext(ctx).Find(&matches, "candidate_id = ?", candidateID).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// ListRanked orders by score descending with createdAt ascending as
// the tie-break, the engine being the source of truth for createdAt.
func (repo *Matches) ListRanked(ctx context.Context, assignmentID string, limit int) ([]models.Match, error) {
	var matches []models.Match
	err := repo.db.WithContext(ctx).
		Where("assignment_id = ? AND status <> ?", assignmentID, models.MatchExpired).
		Order("overall_score DESC, created_at ASC").
		Limit(limit).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// ExpireOrphaned retires matches whose candidate deactivated matching
// or whose assignment left the active status.
func (repo *Matches) ExpireOrphaned(ctx context.Context) (int64, error) {
	inactiveCandidates := repo.db.Model(&models.CandidateProfile{}).
		Select("id").Where("matching_active = ?", false)
	inactiveAssignments := repo.db.Model(&models.Assignment{}).
		Select("id").Where("status <> ?", models.AssignmentActive)

	res := repo.db.WithContext(ctx).Model(&models.Match{}).
		Where("status <> ?", models.MatchExpired).
		Where("candidate_id IN (?) OR assignment_id IN (?)", inactiveCandidates, inactiveAssignments).
		Updates(map[string]any{
			"status":       models.MatchExpired,
			"reveal_state": models.RevealExpired,
			"version":      gorm.Expr("version + 1"),
			"updated_at":   time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// DeclineStalePending declines matches stuck with one-sided interest
// longer than the cutoff allows.
func (repo *Matches) DeclineStalePending(ctx context.Context, before time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&models.Match{}).
		Where("reveal_state = ? AND updated_at < ?", models.RevealPendingInterest, before).
		Updates(map[string]any{
			"reveal_state": models.RevealDeclined,
			"version":      gorm.Expr("version + 1"),
			"updated_at":   time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
