// Package notify delivers secondary chat messages in the background. Jobs
// wait in a bounded queue, a small pool of workers runs them, and a failing
// job is retried with exponential backoff before it is logged and dropped.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/metrics"
	"github.com/sethvargo/go-retry"
)

var (
	ErrQueueFull   = errors.New("notification queue full")
	ErrQueueClosed = errors.New("notification queue closed")
)

// Job is one notification. Run must be safe to call more than once.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Errors matching
// chat.IsPermanent are marked by the queue itself.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

type Options struct {
	Workers    int
	QueueSize  int
	MaxRetries uint64
	Backoff    time.Duration // first retry delay, doubled on each attempt
}

type Queue struct {
	jobs    chan Job
	opts    Options
	logger  logging.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewQueue(opts Options, logger logging.Logger, m *metrics.Metrics) *Queue {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 100 * time.Millisecond
	}
	return &Queue{
		jobs:    make(chan Job, opts.QueueSize),
		opts:    opts,
		logger:  logger.With("module", "notify"),
		metrics: m,
	}
}

// Start launches the workers. They stop when ctx is cancelled or after
// Close drains the queue.
func (q *Queue) Start(ctx context.Context) {
	for id := range q.opts.Workers {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			q.logger.Debug(ctx, "notification worker started", "worker", id)
			q.work(ctx)
		}()
	}
}

func (q *Queue) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			q.run(ctx, job)
		}
	}
}

func (q *Queue) run(ctx context.Context, job Job) {
	b := retry.WithMaxRetries(q.opts.MaxRetries, retry.NewExponential(q.opts.Backoff))

	attempts := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++
		err := job.Run(ctx)
		if err == nil {
			return nil
		}
		if chat.IsPermanent(err) {
			err = Permanent(err)
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		q.logger.Debug(ctx, "notification attempt failed", "job", job.Name, "attempt", attempts, "error", err)
		return retry.RetryableError(err)
	})

	if err != nil {
		q.metrics.IncNotificationFailed()
		q.logger.Error(ctx, "notification abandoned", "job", job.Name, "attempts", attempts, "error", err)
		return
	}
	q.metrics.IncNotificationSent()
}

// Enqueue hands job to the workers without blocking. A full or closed queue
// drops the job, logs it and returns the reason.
func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.metrics.IncNotificationDropped()
		q.logger.Warn(ctx, "notification dropped", "job", job.Name, "error", ErrQueueClosed)
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		q.metrics.IncNotificationDropped()
		q.logger.Warn(ctx, "notification dropped", "job", job.Name, "error", ErrQueueFull)
		return ErrQueueFull
	}
}

// Close stops accepting jobs and waits until the workers have finished the
// jobs already queued.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
}

// Len returns the number of jobs waiting.
func (q *Queue) Len() int {
	return len(q.jobs)
}
