package repositories

import (
	"context"
	"time"

	"github.com/impactlink/matchengine/internal/taxonomy"
	gocache "github.com/patrickmn/go-cache"
)

const snapshotCacheKey = "snapshot"

type vocabularyRepository interface {
	Snapshot(ctx context.Context) (*taxonomy.Snapshot, error)
}

// CachedVocabularies serves the hot snapshot path from memory.
// Invalidate is called when the taxonomy changes.
type CachedVocabularies struct {
	repo  vocabularyRepository
	cache *gocache.Cache
}

func NewCachedVocabularies(repo vocabularyRepository) *CachedVocabularies {
	return &CachedVocabularies{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c *CachedVocabularies) Snapshot(ctx context.Context) (*taxonomy.Snapshot, error) {
	if value, found := c.cache.Get(snapshotCacheKey); found {
		return value.(*taxonomy.Snapshot), nil
	}

	snap, err := c.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Set(snapshotCacheKey, snap, gocache.DefaultExpiration)
	return snap, nil
}

func (c *CachedVocabularies) Invalidate() {
	c.cache.Delete(snapshotCacheKey)
}
