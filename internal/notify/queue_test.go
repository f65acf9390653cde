package notify

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/chat"
	"github.com/dmitrijs2005/cargobot/internal/chat/chattest"
	"github.com/dmitrijs2005/cargobot/internal/logging"
	"github.com/dmitrijs2005/cargobot/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueue(t *testing.T, opts Options) (*Queue, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	if opts.Backoff == 0 {
		opts.Backoff = time.Millisecond
	}
	return NewQueue(opts, logging.Discard(), m), m
}

func flaky(failures int32, calls *atomic.Int32) func(context.Context) error {
	return func(context.Context) error {
		if calls.Add(1) <= failures {
			return errors.New("temporary")
		}
		return nil
	}
}

func TestQueue_RetriesUntilSuccess(t *testing.T) {
	q, m := newQueue(t, Options{Workers: 1, QueueSize: 4, MaxRetries: 3})
	q.Start(context.Background())

	var calls atomic.Int32
	require.NoError(t, q.Enqueue(context.Background(), Job{Name: "flaky", Run: flaky(2, &calls)}))
	q.Close()

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsSent))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.NotificationsFailed))
}

// blockedMessenger fails every text the way a chat that blocked the bot does.
type blockedMessenger struct {
	chat.Messenger
	calls atomic.Int32
}

func (m *blockedMessenger) SendText(context.Context, int64, string, chat.Markup) (int, error) {
	m.calls.Add(1)
	return 0, fmt.Errorf("%w: Forbidden: bot was blocked by the user", chat.ErrPermanent)
}

func TestQueue_PermanentDeliveryErrorIsNotRetried(t *testing.T) {
	q, m := newQueue(t, Options{Workers: 1, QueueSize: 4, MaxRetries: 5})
	q.Start(context.Background())

	blocked := &blockedMessenger{}
	require.NoError(t, q.Enqueue(context.Background(), Text(blocked, 10, "approved", nil)))
	q.Close()

	assert.Equal(t, int32(1), blocked.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsFailed))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.NotificationsSent))
}

func TestQueue_GivesUpAfterMaxRetries(t *testing.T) {
	q, m := newQueue(t, Options{Workers: 1, QueueSize: 4, MaxRetries: 2})
	q.Start(context.Background())

	var calls atomic.Int32
	require.NoError(t, q.Enqueue(context.Background(), Job{Name: "broken", Run: flaky(100, &calls)}))
	q.Close()

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsFailed))
}

func TestQueue_PermanentErrorIsNotRetried(t *testing.T) {
	q, m := newQueue(t, Options{Workers: 1, QueueSize: 4, MaxRetries: 5})
	q.Start(context.Background())

	var calls atomic.Int32
	require.NoError(t, q.Enqueue(context.Background(), Job{Name: "blocked", Run: func(context.Context) error {
		calls.Add(1)
		return Permanent(errors.New("bot was blocked by the user"))
	}}))
	q.Close()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsFailed))
}

func TestQueue_FullDrops(t *testing.T) {
	q, m := newQueue(t, Options{Workers: 1, QueueSize: 1})

	noop := Job{Name: "noop", Run: func(context.Context) error { return nil }}
	require.NoError(t, q.Enqueue(context.Background(), noop))
	assert.ErrorIs(t, q.Enqueue(context.Background(), noop), ErrQueueFull)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsDrop))

	q.Start(context.Background())
	q.Close()
	assert.Equal(t, 0, q.Len())
}

func TestQueue_ClosedRejects(t *testing.T) {
	q, _ := newQueue(t, Options{Workers: 2, QueueSize: 2})
	q.Start(context.Background())
	q.Close()
	q.Close()

	err := q.Enqueue(context.Background(), Job{Name: "late", Run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueue_CloseDrainsPendingJobs(t *testing.T) {
	q, m := newQueue(t, Options{Workers: 3, QueueSize: 16})

	var done atomic.Int32
	for range 10 {
		require.NoError(t, q.Enqueue(context.Background(), Job{Name: "count", Run: func(context.Context) error {
			done.Add(1)
			return nil
		}}))
	}
	q.Start(context.Background())
	q.Close()

	assert.Equal(t, int32(10), done.Load())
	assert.Equal(t, 10.0, testutil.ToFloat64(m.NotificationsSent))
}

func TestText_SendsThroughMessenger(t *testing.T) {
	rec := chattest.NewRecorder()
	q, _ := newQueue(t, Options{Workers: 1, QueueSize: 4})
	q.Start(context.Background())

	require.NoError(t, q.Enqueue(context.Background(), Text(rec, 10, "hello", chat.RemoveKeyboard{})))
	q.Close()

	sent := rec.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(10), sent[0].ChatID)
	assert.Equal(t, "hello", sent[0].Text)
}
