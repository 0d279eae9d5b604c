// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-planner/internal/config"
	"travel-planner/internal/domain/model"
	"travel-planner/internal/infra/adapters/planner"
	pg "travel-planner/internal/infra/db/postgres"
	"travel-planner/internal/infra/logging"
	"travel-planner/internal/infra/metrics"
	red "travel-planner/internal/infra/redis"
	"travel-planner/internal/infra/sched"
	"travel-planner/internal/infra/web"
	"travel-planner/internal/infra/worker"
	"travel-planner/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (relaxed auth, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	txManager := pg.NewTxManager(pool)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	statusCache := red.NewStatusCache(redisClient, cfg.Redis.TTL)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Planner service client ----
	plannerAdapter, err := planner.NewHTTPAdapter(cfg.Planner.BaseURL, cfg.Planner.APIKey, cfg.Planner.RequestTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("planner adapter")
	}

	// ---- Repositories ----
	jobRepo := pg.NewPlanJobRepo(pool)
	itinRepo := pg.NewItineraryRepo(pool)
	tripRepo := pg.NewTripRepoCacheDecorator(pg.NewTripRepo(pool), redisClient, cfg.Redis.TTL)
	achievementRepo := pg.NewAchievementRepo(pool)
	moodRepo := pg.NewMoodRepo(pool)
	scrapbookRepo := pg.NewScrapbookRepo(pool)
	groupRepo := pg.NewGroupRepo(pool)

	// ---- Use cases ----
	planningUC := usecase.NewPlanningUseCase(plannerAdapter, jobRepo, itinRepo, statusCache, rateLimiter, cfg.Limits.SubmitsPerHour, logger)
	rewardUC := usecase.NewRewardUseCase(txManager, tripRepo, achievementRepo, logger)
	tripUC := usecase.NewTripUseCase(tripRepo, logger)
	achievementUC := usecase.NewAchievementUseCase(achievementRepo)
	moodUC := usecase.NewMoodUseCase(moodRepo, tripRepo, achievementRepo, logger)
	scrapbookUC := usecase.NewScrapbookUseCase(scrapbookRepo, tripRepo, achievementRepo, logger)
	groupUC := usecase.NewGroupUseCase(groupRepo, logger)

	// ---- Job tracking ----
	workerPool := worker.NewPool(cfg.Planner.Workers, logger)
	workerPool.Start(ctx)
	defer workerPool.Stop()

	tracker := worker.NewTracker(
		plannerAdapter, jobRepo, itinRepo, statusCache,
		planningUC, rewardUC,
		cfg.Planner.MaxPollFailures, cfg.Planner.JobDeadline, logger,
	)
	planningUC.SetStarter(func(job *model.PlanJob) {
		err := workerPool.Submit(func(ctx context.Context) error {
			return tracker.Track(ctx, job)
		})
		if err != nil {
			logger.Error().Err(err).Str("plan_id", job.ID).Msg("could not start tracking, janitor will sweep the job")
		}
	})

	janitor := sched.NewJanitor(time.Minute, cfg.Planner.JobDeadline, jobRepo, logger)
	go func() { _ = janitor.Run(ctx) }()

	// ---- HTTP server ----
	srv := web.NewServer(planningUC, tripUC, achievementUC, moodUC, scrapbookUC, groupUC, plannerAdapter, cfg.Auth.JWTSecret, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
