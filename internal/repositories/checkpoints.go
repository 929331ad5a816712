package repositories

import (
	"context"
	"time"

	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Checkpoints persist per-sweep resumption state. A cancelled sweep
// resumes from the already-processed pair ids instead of restarting.
type Checkpoints struct {
	db *gorm.DB
}

func NewCheckpointsRepository(db *gorm.DB) *Checkpoints {
	return &Checkpoints{db: db}
}

func (repo *Checkpoints) Save(ctx context.Context, id string, data []byte) error {
	return repo.db.WithContext(ctx).Save(&models.SweepCheckpoint{
		ID:        id,
		Value:     data,
		UpdatedAt: time.Now().UTC(),
	}).Error
}

func (repo *Checkpoints) Load(ctx context.Context, id string) ([]byte, error) {
	checkpoint := &models.SweepCheckpoint{}
	err := repo.db.WithContext(ctx).First(checkpoint, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return checkpoint.Value, nil
}

func (repo *Checkpoints) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&models.SweepCheckpoint{}, "id = ?", id).Error
}
