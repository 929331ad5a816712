package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/impactlink/matchengine/internal/config"
	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/impactlink/matchengine/internal/events"
	"github.com/impactlink/matchengine/internal/repositories"
	"github.com/impactlink/matchengine/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Workers:           4,
		PairsPerSecond:    1000,
		TaxonomySweepCron: "0 3 * * *",
		ExpirySweepCron:   "0 * * * *",
		PairCacheTTL:      time.Minute,
	}
}

func (env *testEnv) newRecomputer(t *testing.T, bus EventBus.Bus) (*Recomputer, *repositories.CachedVocabularies) {
	return env.newRecomputerWithConfig(t, bus, testSchedulerConfig())
}

func (env *testEnv) newRecomputerWithConfig(t *testing.T, bus EventBus.Bus,
	cfg config.SchedulerConfig) (*Recomputer, *repositories.CachedVocabularies) {

	cached := repositories.NewCachedVocabularies(env.vocab)
	checkpoints := repositories.NewCheckpointsRepository(env.dbContext.DB)

	recomputer, err := NewRecomputer(bus, env.newMatcher(t), env.matches,
		env.candidates, env.assignments, checkpoints, cached, cached, cfg)
	require.NoError(t, err)
	t.Cleanup(recomputer.Stop)
	return recomputer, cached
}

func Test_RecomputeForAssignment_ScoresAllActiveCandidates(t *testing.T) {
	env := newTestEnv(t)
	env.saveCandidate(t, seededCandidate("cand-1"))
	other := seededCandidate("cand-2")
	other.Email = "sam@example.org"
	env.saveCandidate(t, other)

	ineligible := seededCandidate("cand-3")
	ineligible.Skills = []models.SkillClaim{
		{SkillID: "grant-writing", Level: models.LevelIntermediate, MonthsExperience: 12},
	}
	env.saveCandidate(t, ineligible)

	paused := seededCandidate("cand-4")
	paused.MatchingActive = false
	env.saveCandidate(t, paused)

	env.saveAssignment(t, seededAssignment("asg-1"))

	recomputer, _ := env.newRecomputer(t, EventBus.New())
	ctx := context.Background()

	require.NoError(t, recomputer.RecomputeForAssignment(ctx, "asg-1"))

	matches, err := env.matches.GetByAssignment(ctx, "asg-1")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	for _, match := range matches {
		assert.Equal(t, models.MatchSuggested, match.Status)
		assert.Contains(t, []string{"cand-1", "cand-2"}, match.CandidateID)
	}
}

func Test_RecomputeForCandidate_ScoresAllActiveAssignments(t *testing.T) {
	env := newTestEnv(t)
	env.saveCandidate(t, seededCandidate("cand-1"))
	env.saveAssignment(t, seededAssignment("asg-1"))

	second := seededAssignment("asg-2")
	env.saveAssignment(t, second)

	draft := seededAssignment("asg-3")
	draft.Status = models.AssignmentDraft
	env.saveAssignment(t, draft)

	recomputer, _ := env.newRecomputer(t, EventBus.New())
	ctx := context.Background()

	require.NoError(t, recomputer.RecomputeForCandidate(ctx, "cand-1"))

	matches, err := env.matches.GetByCandidate(ctx, "cand-1")
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func Test_RecomputeForAssignment_InactiveAssignmentExpiresMatches(t *testing.T) {
	env := newTestEnv(t)
	env.saveCandidate(t, seededCandidate("cand-1"))
	assignment := seededAssignment("asg-1")
	env.saveAssignment(t, assignment)

	recomputer, _ := env.newRecomputer(t, EventBus.New())
	ctx := context.Background()

	require.NoError(t, recomputer.RecomputeForAssignment(ctx, "asg-1"))

	assignment.Status = models.AssignmentClosed
	env.saveAssignment(t, assignment)

	require.NoError(t, recomputer.RecomputeForAssignment(ctx, "asg-1"))

	matches, err := env.matches.GetByAssignment(ctx, "asg-1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, models.MatchExpired, matches[0].Status)
}

func Test_RecomputeForAssignment_RepeatSweepIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.saveCandidate(t, seededCandidate("cand-1"))
	env.saveAssignment(t, seededAssignment("asg-1"))

	recomputer, _ := env.newRecomputer(t, EventBus.New())
	ctx := context.Background()

	require.NoError(t, recomputer.RecomputeForAssignment(ctx, "asg-1"))
	require.NoError(t, recomputer.RecomputeForAssignment(ctx, "asg-1"))

	matches, err := env.matches.GetByAssignment(ctx, "asg-1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Version)
}

func Test_RecomputeForAssignment_ResumesFromCheckpoint(t *testing.T) {
	env := newTestEnv(t)
	env.saveCandidate(t, seededCandidate("cand-1"))
	other := seededCandidate("cand-2")
	env.saveCandidate(t, other)
	env.saveAssignment(t, seededAssignment("asg-1"))

	checkpoints := repositories.NewCheckpointsRepository(env.dbContext.DB)
	ctx := context.Background()

	// A prior interrupted sweep over the same inputs already handled cand-1.
	assignment, err := env.assignments.GetByID(ctx, "asg-1")
	require.NoError(t, err)
	data, err := json.Marshal(sweepCheckpoint{
		Fingerprint: sweepFingerprint(assignment.ID, assignment.UpdatedAt, 1),
		Processed:   []string{"cand-1"},
	})
	require.NoError(t, err)
	require.NoError(t, checkpoints.Save(ctx, "assignment:asg-1", data))

	recomputer, _ := env.newRecomputer(t, EventBus.New())
	require.NoError(t, recomputer.RecomputeForAssignment(ctx, "asg-1"))

	matches, err := env.matches.GetByAssignment(ctx, "asg-1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "cand-2", matches[0].CandidateID)

	// A completed sweep clears its checkpoint.
	data, err = checkpoints.Load(ctx, "assignment:asg-1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func Test_RecomputeForAssignment_DiscardsCheckpointOfEarlierEdit(t *testing.T) {
	env := newTestEnv(t)
	env.saveCandidate(t, seededCandidate("cand-1"))
	env.saveCandidate(t, seededCandidate("cand-2"))
	env.saveAssignment(t, seededAssignment("asg-1"))

	checkpoints := repositories.NewCheckpointsRepository(env.dbContext.DB)
	ctx := context.Background()

	// Checkpoint left behind by a sweep for a previous revision of the
	// assignment: its pairs were scored against pre-edit inputs.
	data, err := json.Marshal(sweepCheckpoint{
		Fingerprint: "fingerprint-of-an-earlier-edit",
		Processed:   []string{"cand-1"},
	})
	require.NoError(t, err)
	require.NoError(t, checkpoints.Save(ctx, "assignment:asg-1", data))

	recomputer, _ := env.newRecomputer(t, EventBus.New())
	require.NoError(t, recomputer.RecomputeForAssignment(ctx, "asg-1"))

	matches, err := env.matches.GetByAssignment(ctx, "asg-1")
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func Test_RecomputeForAssignment_ReplacementSweepCompletes(t *testing.T) {
	env := newTestEnv(t)
	for _, id := range []string{"cand-1", "cand-2", "cand-3", "cand-4"} {
		env.saveCandidate(t, seededCandidate(id))
	}
	env.saveAssignment(t, seededAssignment("asg-1"))

	// Slow the first sweep down enough for the second to overtake it.
	cfg := testSchedulerConfig()
	cfg.PairsPerSecond = 2
	recomputer, _ := env.newRecomputerWithConfig(t, EventBus.New(), cfg)
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() { firstErr <- recomputer.RecomputeForAssignment(ctx, "asg-1") }()
	time.Sleep(500 * time.Millisecond)

	require.NoError(t, recomputer.RecomputeForAssignment(ctx, "asg-1"))

	if err := <-firstErr; err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}

	matches, err := env.matches.GetByAssignment(ctx, "asg-1")
	require.NoError(t, err)
	assert.Len(t, matches, 4)
}

func Test_Recomputer_ReactsToCandidateChangedEvents(t *testing.T) {
	env := newTestEnv(t)
	env.saveCandidate(t, seededCandidate("cand-1"))
	env.saveAssignment(t, seededAssignment("asg-1"))

	bus := EventBus.New()
	env.newRecomputer(t, bus)

	bus.Publish(events.CandidateChangedTopic, events.CandidateChanged{CandidateID: "cand-1"})

	require.Eventually(t, func() bool {
		matches, err := env.matches.GetByCandidate(context.Background(), "cand-1")
		return err == nil && len(matches) == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func Test_Recomputer_TaxonomyChangeInvalidatesSnapshotCache(t *testing.T) {
	env := newTestEnv(t)
	bus := EventBus.New()
	_, cached := env.newRecomputer(t, bus)
	ctx := context.Background()

	snap, err := cached.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, snap.Version())

	version, err := env.vocab.Upsert(ctx, taxonomy.KindSkill, taxonomy.Item{Key: "beekeeping", Label: "Beekeeping"})
	require.NoError(t, err)

	bus.Publish(events.TaxonomyChangedTopic, events.TaxonomyChanged{Version: version})
	bus.WaitAsync()

	snap, err = cached.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Version())
}
