package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/gmarinelli/habitpulse/internal/adapters/cache"
	adapterHTTP "github.com/gmarinelli/habitpulse/internal/adapters/handler/http"
	"github.com/gmarinelli/habitpulse/internal/adapters/repository"
	"github.com/gmarinelli/habitpulse/internal/core/domain"
	"github.com/gmarinelli/habitpulse/internal/core/services"
	"github.com/gmarinelli/habitpulse/internal/core/workers"
	"github.com/gmarinelli/habitpulse/internal/logger"
	"github.com/gmarinelli/habitpulse/internal/metrics"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	log := logger.New(os.Getenv("LOG_FILE"))
	defer log.Sync()
	zap.ReplaceGlobals(log)

	metrics.Init()

	log.Info("starting_habitpulse")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		os.Getenv("DB_NAME"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatal("database_connect_failed", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info("database_connected")

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	historyRepo := repository.NewPostgresCompletionHistory(db)
	timeLogRepo := repository.NewPostgresTimeLogRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	rdb, err := cache.NewClient(cache.ConfigFromEnv())
	if err != nil {
		log.Warn("redis_unavailable_running_uncached", zap.Error(err))
		rdb = nil
	} else {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb, log)
	}

	policy := services.MilestonePolicyFromName(os.Getenv("MILESTONE_POLICY"))

	habitService := services.NewHabitService(habitRepo, historyRepo, timeLogRepo, policy)
	progressService := services.NewProgressService(habitRepo, historyRepo)
	timeLogService := services.NewTimeLogService(timeLogRepo, habitRepo)
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(
		os.Getenv("JWT_SECRET"),
		envOr("JWT_ISSUER", "habitpulse"),
		24*time.Hour,
		userRepo,
	)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	reminderWorker := workers.NewReminderWorker(habitRepo, log)
	reminderWorker.Start(workerCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:    adapterHTTP.NewHabitHandler(habitService),
		ProgressHandler: adapterHTTP.NewProgressHandler(progressService),
		TimeLogHandler:  adapterHTTP.NewTimeLogHandler(timeLogService),
		ReminderHandler: adapterHTTP.NewReminderHandler(habitService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           rdb,
		Logger:          log,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + envOr("PORT", "8080"),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("http_server_listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http_server_failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutdown_signal_received")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced_shutdown", zap.Error(err))
	}

	log.Info("server_stopped")
}
