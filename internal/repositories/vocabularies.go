package repositories

import (
	"context"

	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/impactlink/matchengine/internal/taxonomy"
	"gorm.io/gorm"
)

type Vocabularies struct {
	db *gorm.DB
}

func NewVocabulariesRepository(db *gorm.DB) *Vocabularies {
	return &Vocabularies{db: db}
}

// Snapshot builds an immutable taxonomy snapshot from the persisted
// vocabularies at their current version.
func (repo *Vocabularies) Snapshot(ctx context.Context) (*taxonomy.Snapshot, error) {

	var meta models.VocabularyMeta
	if err := repo.db.WithContext(ctx).First(&meta, "id = 1").Error; err != nil {
		return nil, err
	}

	var rows []models.VocabularyItem
	if err := repo.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make(map[taxonomy.Kind][]taxonomy.Item)
	for _, row := range rows {
		kind := taxonomy.Kind(row.Kind)
		items[kind] = append(items[kind], taxonomy.Item{
			Key:      row.Key,
			Label:    row.Label,
			Category: row.Category,
		})
	}

	return taxonomy.NewSnapshot(meta.Version, items), nil
}

// Upsert adds or relabels a vocabulary entry and bumps the taxonomy
// version; the next Snapshot call sees a new version.
func (repo *Vocabularies) Upsert(ctx context.Context, kind taxonomy.Kind, item taxonomy.Item) (int, error) {

	var version int
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&models.VocabularyItem{
			Kind:     string(kind),
			Key:      item.Key,
			Label:    item.Label,
			Category: item.Category,
		}).Error; err != nil {
			return err
		}

		var meta models.VocabularyMeta
		if err := tx.First(&meta, "id = 1").Error; err != nil {
			return err
		}
		meta.Version++
		version = meta.Version
		return tx.Save(&meta).Error
	})
	return version, err
}
