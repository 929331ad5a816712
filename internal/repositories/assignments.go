package repositories

import (
	"context"

	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

type Assignments struct {
	db *gorm.DB
}

func NewAssignmentsRepository(db *gorm.DB) *Assignments {
	return &Assignments{db: db}
}

func (repo *Assignments) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := repo.db.WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (repo *Assignments) Save(ctx context.Context, assignment *models.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}
	return repo.db.WithContext(ctx).Save(assignment).Error
}

// GetActive pages through published assignments.
func (repo *Assignments) GetActive(ctx context.Context, limit int, offset int) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := repo.db.WithContext(ctx).
		Where("status = ?", models.AssignmentActive).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
