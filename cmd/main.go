package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/impactlink/matchengine/internal/config"
	"github.com/impactlink/matchengine/internal/logger"
	"github.com/impactlink/matchengine/internal/matching"
	"github.com/impactlink/matchengine/internal/metrics"
	"github.com/impactlink/matchengine/internal/repositories"
	"github.com/impactlink/matchengine/internal/services"
	log "github.com/sirupsen/logrus"
)

func runEngine(cfg *config.Config, dbContext *repositories.DbContext, bus EventBus.Bus) (*services.Recomputer, *services.MatchExpirer) {

	matches := repositories.NewMatchesRepository(dbContext.DB)
	candidates := repositories.NewCandidatesRepository(dbContext.DB)
	assignments := repositories.NewAssignmentsRepository(dbContext.DB)
	checkpoints := repositories.NewCheckpointsRepository(dbContext.DB)
	vocabularies := repositories.NewCachedVocabularies(repositories.NewVocabulariesRepository(dbContext.DB))

	weights := matching.Weights{
		Skill:        cfg.Engine.Weights.Skill,
		Values:       cfg.Engine.Weights.Values,
		Causes:       cfg.Engine.Weights.Causes,
		Compensation: cfg.Engine.Weights.Compensation,
		Location:     cfg.Engine.Weights.Location,
		Language:     cfg.Engine.Weights.Language,
	}

	matcher, err := services.NewMatcher(matches, candidates, assignments, vocabularies,
		weights, cfg.Engine.UpsertRetries)
	if err != nil {
		log.Fatalf("can't create matcher: %v", err)
	}

	recomputer, err := services.NewRecomputer(bus, matcher, matches, candidates, assignments,
		checkpoints, vocabularies, vocabularies, cfg.Scheduler)
	if err != nil {
		log.Fatalf("can't create recomputer: %v", err)
	}
	recomputer.Start()

	expirer, err := services.NewMatchExpirer(matches, cfg.Scheduler)
	if err != nil {
		log.Fatalf("can't create expirer: %v", err)
	}

	return recomputer, expirer
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.MetricsAddr)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	bus := EventBus.New()
	recomputer, expirer := runEngine(cfg, dbContext, bus)

	<-ctx.Done()

	log.Info("Shutting down services...")
	recomputer.Stop()
	expirer.Stop()
	log.Info("Services stopped.")
}
