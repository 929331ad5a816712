package repositories

import (
	"context"
	"testing"

	"github.com/impactlink/matchengine/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Vocabularies_SnapshotFromSeededStore(t *testing.T) {
	repo := NewVocabulariesRepository(newTestDbContext(t).DB)

	snap, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Version())

	key, err := snap.Resolve(taxonomy.KindSkill, "Python")
	require.NoError(t, err)
	assert.Equal(t, "python", key)

	_, err = snap.Resolve(taxonomy.KindSkill, "not-a-skill")
	assert.Error(t, err)
}

func Test_Vocabularies_UpsertBumpsVersion(t *testing.T) {
	repo := NewVocabulariesRepository(newTestDbContext(t).DB)
	ctx := context.Background()

	version, err := repo.Upsert(ctx, taxonomy.KindSkill, taxonomy.Item{Key: "beekeeping", Label: "Beekeeping"})
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Version())

	key, err := snap.Resolve(taxonomy.KindSkill, "beekeeping")
	require.NoError(t, err)
	assert.Equal(t, "beekeeping", key)
}

func Test_CachedVocabularies_CachesUntilInvalidated(t *testing.T) {
	repo := NewVocabulariesRepository(newTestDbContext(t).DB)
	cached := NewCachedVocabularies(repo)
	ctx := context.Background()

	first, err := cached.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version())

	_, err = repo.Upsert(ctx, taxonomy.KindValue, taxonomy.Item{Key: "curiosity", Label: "Curiosity"})
	require.NoError(t, err)

	// Still the cached version until someone invalidates.
	stale, err := cached.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stale.Version())

	cached.Invalidate()

	fresh, err := cached.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.Version())
}

func Test_Checkpoints_SaveLoadRemove(t *testing.T) {
	repo := NewCheckpointsRepository(newTestDbContext(t).DB)
	ctx := context.Background()

	loaded, err := repo.Load(ctx, "assignment:asg-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, repo.Save(ctx, "assignment:asg-1", []byte(`["cand-1","cand-2"]`)))

	loaded, err = repo.Load(ctx, "assignment:asg-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["cand-1","cand-2"]`), loaded)

	require.NoError(t, repo.Save(ctx, "assignment:asg-1", []byte(`["cand-1","cand-2","cand-3"]`)))

	loaded, err = repo.Load(ctx, "assignment:asg-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["cand-1","cand-2","cand-3"]`), loaded)

	require.NoError(t, repo.Remove(ctx, "assignment:asg-1"))

	loaded, err = repo.Load(ctx, "assignment:asg-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
