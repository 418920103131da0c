// Package worker contains the background pipeline that delivers assessment
// summary emails. It is intentionally decoupled from the HTTP layer: the api
// package holds a worker.Enqueuer interface and calls Enqueue — it never
// imports the concrete Runner or Job types.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/globalcyberassociates/cyberstats-backend/internal/db"
	"github.com/globalcyberassociates/cyberstats-backend/internal/store"
	"github.com/google/uuid"
)

// ─── ENQUEUER INTERFACE ───────────────────────────────────────────────────────

// Enqueuer is the narrow interface the api package uses to hand off work after
// an assessment with an email recipient is recorded. Keeping it here (not in
// api/) means api/ does not need to import worker/.
//
// The concrete implementation is *Runner. In tests, any struct with an Enqueue
// method satisfies the interface.
type Enqueuer interface {
	Enqueue(ctx context.Context, assessmentID uuid.UUID) error
}

// ─── RUNNER ───────────────────────────────────────────────────────────────────

// RunnerConfig holds tuning parameters for the Runner. All fields have
// sensible defaults if zero-valued; call DefaultRunnerConfig() to get them.
type RunnerConfig struct {
	// Workers is the number of concurrent job goroutines. Default: 3.
	Workers int

	// PollInterval is how often the fallback poller checks
	// ListPendingEmailDeliveries for rows that were missed by the in-process
	// channel (e.g. after a crash or restart). Default: 30s.
	PollInterval time.Duration

	// JobTimeout is the per-job context deadline. Default: 1 minute — a
	// delivery is one email API call.
	JobTimeout time.Duration

	// MaxRetries is the number of times a delivery is retried before the row
	// is marked as permanently failed. Default: 3.
	MaxRetries int
}

// DefaultRunnerConfig returns safe production defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Workers:      3,
		PollInterval: 30 * time.Second,
		JobTimeout:   time.Minute,
		MaxRetries:   3,
	}
}

// pollBatchSize caps how many pending rows one poll cycle pulls in.
const pollBatchSize = 50

// Runner manages a pool of worker goroutines. It accepts jobs via an
// in-process channel (fast path, used right after a submission) and also polls
// the database periodically to pick up any deliveries that were in-flight when
// the process last restarted (recovery path).
type Runner struct {
	job    *Job
	store  *store.Store
	q      db.Querier
	cfg    RunnerConfig
	logger *slog.Logger

	queue chan uuid.UUID
	wg    sync.WaitGroup
}

// NewRunner constructs a Runner. Call Start() to begin processing.
func NewRunner(
	job *Job,
	st *store.Store,
	q db.Querier,
	cfg RunnerConfig,
	logger *slog.Logger,
) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultRunnerConfig().Workers
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultRunnerConfig().PollInterval
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultRunnerConfig().JobTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultRunnerConfig().MaxRetries
	}

	return &Runner{
		job:    job,
		store:  st,
		q:      q,
		cfg:    cfg,
		logger: logger,
		// Buffer = Workers*2 so Enqueue never blocks under normal load.
		queue: make(chan uuid.UUID, cfg.Workers*2),
	}
}

// Enqueue pushes an assessmentID onto the in-process channel. It satisfies the
// Enqueuer interface. If the channel is full (very unlikely given the buffer
// sizing) it returns an error rather than blocking the HTTP response.
func (r *Runner) Enqueue(_ context.Context, assessmentID uuid.UUID) error {
	select {
	case r.queue <- assessmentID:
		r.logger.Info("worker: enqueued delivery", "assessment_id", assessmentID)
		return nil
	default:
		return errors.New("worker: queue is full, delivery will be picked up by poller")
	}
}

// Start launches the worker pool and the fallback poller. It blocks until ctx
// is cancelled. Call it in a goroutine from main:
//
//	go runner.Start(ctx)
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info("worker: starting", "workers", r.cfg.Workers, "poll_interval", r.cfg.PollInterval)

	// Launch worker goroutines.
	for i := range r.cfg.Workers {
		r.wg.Add(1)
		go r.work(ctx, i)
	}

	// Launch fallback poller.
	r.wg.Add(1)
	go r.poll(ctx)

	r.wg.Wait()
	r.logger.Info("worker: stopped")
}

// work is the inner loop for each worker goroutine.
func (r *Runner) work(ctx context.Context, id int) {
	defer r.wg.Done()
	log := r.logger.With("worker_id", id)
	log.Info("worker: goroutine started")

	for {
		select {
		case <-ctx.Done():
			log.Info("worker: goroutine stopping")
			return
		case assessmentID := <-r.queue:
			r.runWithRetry(ctx, assessmentID, log)
		}
	}
}

// poll queries the database on PollInterval for pending deliveries that were
// not handed over via the channel (e.g. rows from before a restart).
func (r *Runner) poll(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	// Run once immediately on startup to pick up anything from before restart.
	r.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.pollOnce(ctx)
		}
	}
}

func (r *Runner) pollOnce(ctx context.Context) {
	pending, err := r.q.ListPendingEmailDeliveries(ctx, pollBatchSize)
	if err != nil {
		r.logger.Error("worker: poll failed", "error", err)
		return
	}
	for _, a := range pending {
		select {
		case r.queue <- a.ID:
			r.logger.Debug("worker: poller enqueued delivery", "assessment_id", a.ID)
		default:
			// Queue full — will be picked up next poll cycle.
		}
	}
}

// runWithRetry executes the job up to MaxRetries times. After exhausting
// retries it calls store.MarkSummaryEmailFailed so the row is not picked up
// again by the poller.
func (r *Runner) runWithRetry(ctx context.Context, assessmentID uuid.UUID, log *slog.Logger) {
	var lastErr error

	for attempt := 1; attempt <= r.cfg.MaxRetries; attempt++ {
		jobCtx, cancel := context.WithTimeout(ctx, r.cfg.JobTimeout)
		lastErr = r.job.Run(jobCtx, assessmentID)
		cancel()

		if lastErr == nil {
			log.Info("worker: delivery completed", "assessment_id", assessmentID, "attempt", attempt)
			return
		}

		log.Warn("worker: delivery attempt failed",
			"assessment_id", assessmentID,
			"attempt", attempt,
			"max", r.cfg.MaxRetries,
			"error", lastErr,
		)

		if attempt < r.cfg.MaxRetries {
			// Exponential back-off: 2s, 4s, 8s …
			backoff := time.Duration(1<<attempt) * time.Second
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
		}
	}

	// All retries exhausted — mark the delivery permanently failed.
	log.Error("worker: delivery permanently failed", "assessment_id", assessmentID, "error", lastErr)
	failCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := r.store.MarkSummaryEmailFailed(failCtx, assessmentID, lastErr.Error()); err != nil {
		log.Error("worker: failed to mark delivery as failed", "assessment_id", assessmentID, "error", err)
	}
}
