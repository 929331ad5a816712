package models

import "time"

// VocabularyItem is one controlled-vocabulary entry. Kind+Key is the
// canonical identity scoring resolves against.
type VocabularyItem struct {
	Kind     string `gorm:"primaryKey"`
	Key      string `gorm:"primaryKey"`
	Label    string
	Category string
}

// VocabularyMeta is a single-row table carrying the current taxonomy
// version. Every vocabulary edit bumps it; snapshots are immutable
// per version.
type VocabularyMeta struct {
	ID        int `gorm:"primaryKey"`
	Version   int
	UpdatedAt time.Time
}

// SweepCheckpoint stores the processed-pair state of a recomputation
// sweep so a cancelled sweep resumes instead of restarting.
type SweepCheckpoint struct {
	ID        string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}
