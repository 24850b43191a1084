package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/internhub/recruitment/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanOutbox struct {
	ch chan *notification.OutboxMessage
}

func (o *chanOutbox) Enqueue(_ context.Context, msg *notification.OutboxMessage) error {
	o.ch <- msg
	return nil
}

func (o *chanOutbox) Dequeue(ctx context.Context, timeout time.Duration) (*notification.OutboxMessage, error) {
	select {
	case msg := <-o.ch:
		return msg, nil
	case <-time.After(timeout):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (o *chanOutbox) EnqueueDelayed(_ context.Context, _ *notification.OutboxMessage, _ time.Duration) error {
	return nil
}

func (o *chanOutbox) MoveDelayedToReady(_ context.Context) (int, error) { return 0, nil }

func (o *chanOutbox) Size(_ context.Context) (int64, error) { return int64(len(o.ch)), nil }

type recorder struct {
	mu   sync.Mutex
	seen []string
	done chan struct{}
}

func (r *recorder) Redeliver(_ context.Context, msg *notification.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, msg.ID)
	if len(r.seen) == 3 {
		close(r.done)
	}
	return nil
}

func TestOutboxWorker_DrainsAndStops(t *testing.T) {
	outbox := &chanOutbox{ch: make(chan *notification.OutboxMessage, 3)}
	rec := &recorder{done: make(chan struct{})}
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, outbox.Enqueue(context.Background(), &notification.OutboxMessage{ID: id}))
	}

	w := NewOutboxWorker(rec, outbox, 2)
	w.pollTimeout = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("outbox was not drained")
	}

	cancel()
	w.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, rec.seen)
}
