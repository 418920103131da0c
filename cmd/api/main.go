package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // postgres driver

	"github.com/globalcyberassociates/cyberstats-backend/internal/api"
	"github.com/globalcyberassociates/cyberstats-backend/internal/config"
	"github.com/globalcyberassociates/cyberstats-backend/internal/db"
	"github.com/globalcyberassociates/cyberstats-backend/internal/email"
	"github.com/globalcyberassociates/cyberstats-backend/internal/questionnaire"
	"github.com/globalcyberassociates/cyberstats-backend/internal/store"
	stripeinternal "github.com/globalcyberassociates/cyberstats-backend/internal/stripe"
	"github.com/globalcyberassociates/cyberstats-backend/internal/worker"
	"github.com/soheilhy/cmux"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	// ── Logger ────────────────────────────────────────────────────────────────
	// JSON in production, pretty text in development.
	var logger *slog.Logger
	if os.Getenv("ENV") == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// ── Config ────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("config loaded", "env", cfg.Env, "port", cfg.Port)

	// ── Questionnaires ────────────────────────────────────────────────────────
	// Every shipped variant is validated up front. A malformed config would
	// silently mis-score submissions, so the process refuses to start instead.
	if err := questionnaire.ValidateAll(); err != nil {
		return err
	}
	if _, err := questionnaire.ByName(cfg.ActiveQuestionnaire); err != nil {
		return fmt.Errorf("ACTIVE_QUESTIONNAIRE: %w", err)
	}
	logger.Info("questionnaires validated", "active", cfg.ActiveQuestionnaire)

	// ── Database ──────────────────────────────────────────────────────────────
	pool, queries, err := openDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	logger.Info("database connected")

	// ── Store (atomic multi-step writes) ──────────────────────────────────────
	st := store.New(pool, queries)

	// ── Stripe ────────────────────────────────────────────────────────────────
	stripeClient := stripeinternal.NewClient(cfg.StripeSecretKey)

	// ── Email (Resend) ────────────────────────────────────────────────────────
	mailer := email.NewResendClient(
		cfg.ResendAPIKey,
		cfg.EmailFromAddr,
		cfg.EmailFromName,
		cfg.BaseURL,
	)

	// ── Worker ────────────────────────────────────────────────────────────────
	job := worker.NewJob(queries, st, mailer, logger)
	runner := worker.NewRunner(job, st, queries, worker.RunnerConfig{
		Workers:      cfg.WorkerCount,
		PollInterval: cfg.PollInterval,
		JobTimeout:   cfg.JobTimeout,
		MaxRetries:   cfg.MaxRetries,
	}, logger)

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.NewServer(
		queries,
		st,
		stripeClient,
		runner, // *Runner satisfies worker.Enqueuer
		mailer,
		api.Config{
			BaseURL:             cfg.BaseURL,
			StripeWebhookSecret: cfg.StripeWebhookSecret,
			Env:                 cfg.Env,
			ActiveVariant:       cfg.ActiveQuestionnaire,
			ConsultPriceCents:   cfg.ConsultPriceCents,
		},
		logger,
	)

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// ── gRPC health server ────────────────────────────────────────────────────
	// Deployment platforms probe liveness over gRPC; both protocols share the
	// single public port via cmux.
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// ── Listener (cmux splits gRPC and HTTP on one port) ──────────────────────
	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	mux := cmux.New(ln)
	grpcLn := mux.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpLn := mux.Match(cmux.Any())

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	// Root context cancelled by OS signal. Worker and both servers respect it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the worker pool in a background goroutine. It blocks until ctx is done.
	go runner.Start(ctx)

	serverErr := make(chan error, 2)
	go func() {
		if err := grpcSrv.Serve(grpcLn); err != nil && !errors.Is(err, cmux.ErrServerClosed) {
			serverErr <- fmt.Errorf("grpc serve: %w", err)
		}
	}()
	go func() {
		logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(httpLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("http serve: %w", err)
		}
	}()
	go func() {
		if err := mux.Serve(); err != nil && !errors.Is(err, net.ErrClosed) {
			serverErr <- fmt.Errorf("cmux serve: %w", err)
		}
	}()

	// Block until either a signal arrives or a server dies unexpectedly.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return err
	}

	// Stop accepting new gRPC health checks, then give in-flight HTTP requests
	// up to 20 seconds to finish.
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	grpcSrv.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// The worker goroutine exits when ctx is cancelled (already done).
	// runner.Start blocks until all worker goroutines finish — nothing extra needed.
	logger.Info("shutdown complete")
	return nil
}

// openDB opens the connection pool and prepares all statements.
// Using db.Prepare (rather than db.New) means every query is validated against
// the database schema at startup — the server refuses to start if the schema
// is out of sync.
func openDB(dsn string) (*sql.DB, *db.Queries, error) {
	pool, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}

	// Tune the connection pool.
	pool.SetMaxOpenConns(25)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(5 * time.Minute)
	pool.SetConnMaxIdleTime(2 * time.Minute)

	// Verify the connection is reachable before proceeding.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}

	// Prepare all statements. This validates the SQL against the live schema —
	// any mismatch (missing column, renamed table) is caught here, not at the
	// first query execution.
	queries, err := db.Prepare(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("prepare statements: %w", err)
	}

	return pool, queries, nil
}
