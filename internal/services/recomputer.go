package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/impactlink/matchengine/internal/config"
	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/impactlink/matchengine/internal/events"
	"github.com/impactlink/matchengine/internal/logger"
	"github.com/impactlink/matchengine/internal/matching"
	"github.com/impactlink/matchengine/internal/metrics"
	"github.com/impactlink/matchengine/internal/taxonomy"
	gocache "github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const sweepPageSize = 50

type pairScorer interface {
	ScorePair(ctx context.Context, candidate *models.CandidateProfile,
		assignment *models.Assignment, snap *taxonomy.Snapshot) (*models.Match, *matching.IneligibleReason, error)
}

type sweepMatchRepository interface {
	GetByAssignment(ctx context.Context, assignmentID string) ([]models.Match, error)
	GetByCandidate(ctx context.Context, candidateID string) ([]models.Match, error)
	Expire(ctx context.Context, matchID string) error
}

type sweepCandidateRepository interface {
	GetByID(ctx context.Context, id string) (*models.CandidateProfile, error)
	GetActive(ctx context.Context, limit int, offset int) ([]models.CandidateProfile, error)
}

type sweepAssignmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	GetActive(ctx context.Context, limit int, offset int) ([]models.Assignment, error)
}

type checkpointRepository interface {
	Save(ctx context.Context, id string, data []byte) error
	Load(ctx context.Context, id string) ([]byte, error)
	Remove(ctx context.Context, id string) error
}

type snapshotInvalidator interface {
	Invalidate()
}

// Recomputer re-evaluates affected matches when a profile, assignment
// or the taxonomy changes. Independent pairs fan out over a bounded
// worker pool; a sweep checkpoints processed counterpart ids so a
// cancelled run resumes instead of restarting.
type Recomputer struct {
	bus           EventBus.Bus
	matcher       pairScorer
	matches       sweepMatchRepository
	candidates    sweepCandidateRepository
	assignments   sweepAssignmentRepository
	checkpoints   checkpointRepository
	vocab         snapshotProvider
	invalidator   snapshotInvalidator
	limiter       *rate.Limiter
	workers       int
	cache         *gocache.Cache
	cron          *cron.Cron
	taxonomyDirty atomic.Bool
	sweepContexts sync.Map
}

func NewRecomputer(bus EventBus.Bus, matcher pairScorer, matches sweepMatchRepository,
	candidates sweepCandidateRepository, assignments sweepAssignmentRepository,
	checkpoints checkpointRepository, vocab snapshotProvider, invalidator snapshotInvalidator,
	cfg config.SchedulerConfig) (*Recomputer, error) {

	r := &Recomputer{
		bus:         bus,
		matcher:     matcher,
		matches:     matches,
		candidates:  candidates,
		assignments: assignments,
		checkpoints: checkpoints,
		vocab:       vocab,
		invalidator: invalidator,
		limiter:     rate.NewLimiter(rate.Limit(cfg.PairsPerSecond), 1),
		workers:     cfg.Workers,
		cache:       gocache.New(cfg.PairCacheTTL, 2*cfg.PairCacheTTL),
		cron:        cron.New(),
	}

	if err := bus.Subscribe(events.AssignmentChangedTopic, r.onAssignmentChanged); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.CandidateChangedTopic, r.onCandidateChanged); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.TaxonomyChangedTopic, r.onTaxonomyChanged); err != nil {
		return nil, err
	}

	// Vocabulary edits are rare; their sweeps are deferred and batched
	// instead of running on every edit.
	if _, err := r.cron.AddFunc(cfg.TaxonomySweepCron, r.runTaxonomySweep); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Recomputer) Start() {
	r.cron.Start()
	log.Info("recomputation scheduler started")
}

func (r *Recomputer) Stop() {
	r.cron.Stop()
	r.sweepContexts.Range(func(key, value any) bool {
		value.(*sweepHandle).cancel()
		return true
	})
}

func (r *Recomputer) onAssignmentChanged(event events.AssignmentChanged) {
	go func() {
		if err := r.RecomputeForAssignment(context.Background(), event.AssignmentID); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeEngine).
				Errorf("assignment sweep %v failed: %v", event.AssignmentID, err)
		}
	}()
}

func (r *Recomputer) onCandidateChanged(event events.CandidateChanged) {
	go func() {
		if err := r.RecomputeForCandidate(context.Background(), event.CandidateID); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeEngine).
				Errorf("candidate sweep %v failed: %v", event.CandidateID, err)
		}
	}()
}

func (r *Recomputer) onTaxonomyChanged(event events.TaxonomyChanged) {
	r.invalidator.Invalidate()
	r.taxonomyDirty.Store(true)
	log.Infof("taxonomy changed to version %v, sweep deferred to next scheduled run", event.Version)
}

// RecomputeForAssignment re-scores every match referencing the
// assignment and discovers new eligible candidates among the active
// ones. A second sweep for the same assignment cancels the first.
func (r *Recomputer) RecomputeForAssignment(ctx context.Context, assignmentID string) error {

	sweepKey := "assignment:" + assignmentID
	ctx, handle := r.replaceSweepContext(sweepKey, ctx)
	defer r.finishSweepContext(sweepKey, handle)

	startTime := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(startTime).Seconds()) }()

	assignment, err := r.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}

	existing, err := r.matches.GetByAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}

	if assignment.Status != models.AssignmentActive {
		return r.expireAll(ctx, existing)
	}

	snap, err := r.vocab.Snapshot(ctx)
	if err != nil {
		return err
	}

	candidateIDs := make(map[string]bool)
	for _, match := range existing {
		candidateIDs[match.CandidateID] = true
	}
	for offset := 0; ; offset += sweepPageSize {
		page, err := r.candidates.GetActive(ctx, sweepPageSize, offset)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}
		for _, candidate := range page {
			candidateIDs[candidate.ID] = true
		}
	}

	fingerprint := sweepFingerprint(assignment.ID, assignment.UpdatedAt, snap.Version())
	return r.runSweep(ctx, sweepKey, fingerprint, candidateIDs, func(gctx context.Context, candidateID string) error {
		candidate, err := r.candidates.GetByID(gctx, candidateID)
		if err != nil {
			return err
		}
		return r.scorePairOnce(gctx, candidate, assignment, snap)
	})
}

// RecomputeForCandidate is the symmetric sweep, bounded by active
// assignments.
func (r *Recomputer) RecomputeForCandidate(ctx context.Context, candidateID string) error {

	sweepKey := "candidate:" + candidateID
	ctx, handle := r.replaceSweepContext(sweepKey, ctx)
	defer r.finishSweepContext(sweepKey, handle)

	startTime := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(startTime).Seconds()) }()

	candidate, err := r.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return err
	}

	existing, err := r.matches.GetByCandidate(ctx, candidateID)
	if err != nil {
		return err
	}

	if !candidate.MatchingActive {
		return r.expireAll(ctx, existing)
	}

	snap, err := r.vocab.Snapshot(ctx)
	if err != nil {
		return err
	}

	assignmentIDs := make(map[string]bool)
	for _, match := range existing {
		assignmentIDs[match.AssignmentID] = true
	}
	for offset := 0; ; offset += sweepPageSize {
		page, err := r.assignments.GetActive(ctx, sweepPageSize, offset)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}
		for _, assignment := range page {
			assignmentIDs[assignment.ID] = true
		}
	}

	fingerprint := sweepFingerprint(candidate.ID, candidate.UpdatedAt, snap.Version())
	return r.runSweep(ctx, sweepKey, fingerprint, assignmentIDs, func(gctx context.Context, assignmentID string) error {
		assignment, err := r.assignments.GetByID(gctx, assignmentID)
		if err != nil {
			return err
		}
		return r.scorePairOnce(gctx, candidate, assignment, snap)
	})
}

// runSweep fans counterpart ids out over the worker pool, skipping
// ids already in the checkpoint and checkpointing each processed one.
func (r *Recomputer) runSweep(ctx context.Context, sweepKey, fingerprint string,
	counterpartIDs map[string]bool, work func(ctx context.Context, id string) error) error {

	processed, err := r.loadCheckpoint(ctx, sweepKey, fingerprint)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	total := 0
	for id := range counterpartIDs {
		if processed[id] {
			continue
		}
		total++

		id := id
		g.Go(func() error {
			if err := r.limiter.Wait(gctx); err != nil {
				return err
			}
			if err := work(gctx, id); err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			processed[id] = true
			return r.saveCheckpoint(gctx, sweepKey, fingerprint, processed)
		})
	}

	if err := g.Wait(); err != nil {
		// The checkpoint stays: the next sweep for this key resumes
		// from the already-processed ids.
		return err
	}

	log.Infof("sweep %v handled %v pairs", sweepKey, total)
	return r.checkpoints.Remove(ctx, sweepKey)
}

// scorePairOnce suppresses duplicate work when racing events overlap:
// a pair already scored against identical inputs inside the cache TTL
// is skipped.
func (r *Recomputer) scorePairOnce(ctx context.Context, candidate *models.CandidateProfile,
	assignment *models.Assignment, snap *taxonomy.Snapshot) error {

	cacheID := pairFingerprint(candidate, assignment, snap.Version())
	if _, found := r.cache.Get(cacheID); found {
		return nil
	}

	_, _, err := r.matcher.ScorePair(ctx, candidate, assignment, snap)
	if err != nil {
		if errors.Is(err, taxonomy.ErrUnknownKey) {
			// Fails the single pair, not the sweep.
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeTaxonomy).
				Errorf("skipping pair (%v, %v): %v", candidate.ID, assignment.ID, err)
			return nil
		}
		return err
	}

	if err := r.cache.Add(cacheID, "", gocache.DefaultExpiration); err != nil {
		log.Errorf("failed to add pair fingerprint to cache: %v", err)
	}
	return nil
}

func (r *Recomputer) runTaxonomySweep() {
	if !r.taxonomyDirty.Swap(false) {
		return
	}

	log.Info("running deferred taxonomy sweep")
	ctx := context.Background()

	for offset := 0; ; offset += sweepPageSize {
		page, err := r.assignments.GetActive(ctx, sweepPageSize, offset)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("taxonomy sweep failed to page assignments: %v", err)
			r.taxonomyDirty.Store(true)
			return
		}
		if len(page) == 0 {
			break
		}
		for _, assignment := range page {
			if err := r.RecomputeForAssignment(ctx, assignment.ID); err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeEngine).
					Errorf("taxonomy sweep failed for assignment %v: %v", assignment.ID, err)
			}
		}
	}
}

func (r *Recomputer) expireAll(ctx context.Context, matches []models.Match) error {
	for _, match := range matches {
		if err := r.matches.Expire(ctx, match.ID); err != nil {
			return err
		}
	}
	return nil
}

// sweepHandle identifies one sweep's slot in the sweepContexts map.
// A finishing sweep may only remove its own handle: a replacement
// sweep under the same key must keep running.
type sweepHandle struct {
	cancel context.CancelFunc
}

func (r *Recomputer) replaceSweepContext(sweepKey string, parent context.Context) (context.Context, *sweepHandle) {
	ctx, cancel := context.WithCancel(parent)
	handle := &sweepHandle{cancel: cancel}
	if previous, loaded := r.sweepContexts.Swap(sweepKey, handle); loaded {
		previous.(*sweepHandle).cancel()
	}
	return ctx, handle
}

func (r *Recomputer) finishSweepContext(sweepKey string, handle *sweepHandle) {
	handle.cancel()
	r.sweepContexts.CompareAndDelete(sweepKey, handle)
}

// sweepCheckpoint ties processed counterpart ids to the inputs they
// were processed under. A checkpoint left by a sweep for an earlier
// edit of the same entity is stale: resuming from it would leave its
// pairs scored against the pre-edit entity.
type sweepCheckpoint struct {
	Fingerprint string   `json:"fingerprint"`
	Processed   []string `json:"processed"`
}

func (r *Recomputer) loadCheckpoint(ctx context.Context, sweepKey, fingerprint string) (map[string]bool, error) {
	data, err := r.checkpoints.Load(ctx, sweepKey)
	if err != nil {
		return nil, err
	}

	processed := make(map[string]bool)
	if data == nil {
		return processed, nil
	}

	var checkpoint sweepCheckpoint
	if err = json.Unmarshal(data, &checkpoint); err != nil {
		return nil, err
	}
	if checkpoint.Fingerprint != fingerprint {
		return processed, nil
	}
	for _, id := range checkpoint.Processed {
		processed[id] = true
	}
	return processed, nil
}

func (r *Recomputer) saveCheckpoint(ctx context.Context, sweepKey, fingerprint string, processed map[string]bool) error {
	ids := make([]string, 0, len(processed))
	for id := range processed {
		ids = append(ids, id)
	}
	data, err := json.Marshal(sweepCheckpoint{Fingerprint: fingerprint, Processed: ids})
	if err != nil {
		return err
	}
	return r.checkpoints.Save(ctx, sweepKey, data)
}

func sweepFingerprint(entityID string, updatedAt time.Time, taxonomyVersion int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%d", entityID, updatedAt.UnixNano(), taxonomyVersion)))
	return hex.EncodeToString(sum[:])
}

func pairFingerprint(candidate *models.CandidateProfile, assignment *models.Assignment, taxonomyVersion int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%d:%d:%d",
		candidate.ID, assignment.ID,
		candidate.UpdatedAt.UnixNano(), assignment.UpdatedAt.UnixNano(),
		taxonomyVersion)))
	return hex.EncodeToString(sum[:])
}
