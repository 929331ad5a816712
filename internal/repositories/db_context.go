package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/impactlink/matchengine/internal/taxonomy"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer; one connection avoids busy errors
	// under concurrent upserts.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(models.CandidateProfile{})
	if err != nil {
		return fmt.Errorf("failed to migrate CandidateProfile entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Assignment{})
	if err != nil {
		return fmt.Errorf("failed to migrate Assignment entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Match{})
	if err != nil {
		return fmt.Errorf("failed to migrate Match entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.VocabularyItem{}, models.VocabularyMeta{})
	if err != nil {
		return fmt.Errorf("failed to migrate vocabulary entities: %w", err)
	}

	err = c.DB.AutoMigrate(models.SweepCheckpoint{})
	if err != nil {
		return fmt.Errorf("failed to migrate SweepCheckpoint entity: %w", err)
	}

	var itemsCount int64
	if err = c.DB.Model(models.VocabularyItem{}).Count(&itemsCount).Error; err != nil {
		return fmt.Errorf("failed to count vocabulary items: %w", err)
	}

	if itemsCount == 0 {
		if err = c.PopulateVocabularies(); err != nil {
			return fmt.Errorf("failed to populate vocabularies: %w", err)
		}
	}

	// One match per (assignment, candidate) pair, enforced by the store.
	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_assignment_candidate ON matches (assignment_id, candidate_id);").
		Error; err != nil {
		return fmt.Errorf("failed to create match pair index: %w", err)
	}

	return nil
}

func (c *DbContext) PopulateVocabularies() error {
	var items []models.VocabularyItem

	for kind, list := range taxonomy.SeedItems() {
		for _, item := range list {
			items = append(items, models.VocabularyItem{
				Kind:     string(kind),
				Key:      item.Key,
				Label:    item.Label,
				Category: item.Category,
			})
		}
	}

	if err := c.DB.Create(items).Error; err != nil {
		return fmt.Errorf("failed to create vocabulary items in the database: %w", err)
	}

	return c.DB.Save(&models.VocabularyMeta{ID: 1, Version: 1}).Error
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
