package services

import (
	"context"
	"time"

	"github.com/impactlink/matchengine/internal/config"
	"github.com/impactlink/matchengine/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type expiryMatchRepository interface {
	ExpireOrphaned(ctx context.Context) (int64, error)
	DeclineStalePending(ctx context.Context, before time.Time) (int64, error)
}

// MatchExpirer is the safety net behind the event-driven path: a
// periodic sweep retiring matches whose candidate or assignment went
// inactive, and optionally declining stale one-sided interest.
type MatchExpirer struct {
	matches            expiryMatchRepository
	cron               *cron.Cron
	pendingInterestTTL time.Duration
}

func NewMatchExpirer(matches expiryMatchRepository, cfg config.SchedulerConfig) (*MatchExpirer, error) {

	if cfg.ExpirySweepCron == "" {
		return nil, errors.New("expiry sweep cron must be set")
	}

	e := &MatchExpirer{
		matches:            matches,
		cron:               cron.New(),
		pendingInterestTTL: cfg.PendingInterestTTL,
	}

	_, err := e.cron.AddFunc(cfg.ExpirySweepCron, e.sweep)
	if err != nil {
		return nil, err
	}

	e.cron.Start()
	log.Infof("match expirer started, pending interest TTL: %v", e.pendingInterestTTL)
	return e, nil
}

func (e *MatchExpirer) Stop() {
	e.cron.Stop()
}

func (e *MatchExpirer) sweep() {
	ctx := context.Background()

	expired, err := e.matches.ExpireOrphaned(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to expire orphaned matches: %v", err)
	} else if expired > 0 {
		log.Infof("expired %v matches with inactive counterparts", expired)
	}

	if e.pendingInterestTTL <= 0 {
		return
	}

	declined, err := e.matches.DeclineStalePending(ctx, time.Now().UTC().Add(-e.pendingInterestTTL))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to decline stale pending matches: %v", err)
	} else if declined > 0 {
		log.Infof("declined %v matches with stale one-sided interest", declined)
	}
}
