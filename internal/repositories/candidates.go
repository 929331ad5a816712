package repositories

import (
	"context"

	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type Candidates struct {
	db *gorm.DB
}

func NewCandidatesRepository(db *gorm.DB) *Candidates {
	return &Candidates{db: db}
}

func (repo *Candidates) GetByID(ctx context.Context, id string) (*models.CandidateProfile, error) {
	var candidate models.CandidateProfile
	if err := repo.db.WithContext(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (repo *Candidates) Save(ctx context.Context, candidate *models.CandidateProfile) error {
	if err := candidate.Validate(); err != nil {
		return err
	}
	return repo.db.WithContext(ctx).Save(candidate).Error
}

// GetActive pages through candidates open to matching.
func (repo *Candidates) GetActive(ctx context.Context, limit int, offset int) ([]models.CandidateProfile, error) {
	var candidates []models.CandidateProfile
	err := repo.db.WithContext(ctx).
		Where("matching_active = ?", true).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}
