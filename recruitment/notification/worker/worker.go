package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/internhub/pkg/logx"
	"github.com/Abraxas-365/internhub/recruitment/notification"
)

// Redeliverer retries one queued notification
type Redeliverer interface {
	Redeliver(ctx context.Context, msg *notification.OutboxMessage) error
}

// OutboxWorker drains the notification outbox with a fixed pool of goroutines
type OutboxWorker struct {
	service      Redeliverer
	outbox       notification.Outbox
	workers      int
	pollTimeout  time.Duration
	moveInterval time.Duration
	wg           sync.WaitGroup
}

func NewOutboxWorker(service Redeliverer, outbox notification.Outbox, workers int) *OutboxWorker {
	if workers < 1 {
		workers = 1
	}
	return &OutboxWorker{
		service:      service,
		outbox:       outbox,
		workers:      workers,
		pollTimeout:  5 * time.Second,
		moveInterval: 30 * time.Second,
	}
}

// Start launches the pool. Goroutines exit when ctx is cancelled; Wait blocks until they have.
func (w *OutboxWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d notification outbox workers", w.workers)

	w.wg.Add(1)
	go w.moveDelayed(ctx)

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.process(ctx, i)
	}
}

func (w *OutboxWorker) Wait() {
	w.wg.Wait()
}

func (w *OutboxWorker) process(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logx.Debugf("Outbox worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Debugf("Outbox worker %d stopping", workerID)
			return
		default:
		}

		msg, err := w.outbox.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.Errorf("Outbox worker %d dequeue error: %v", workerID, err)
			w.sleep(ctx, time.Second)
			continue
		}
		if msg == nil {
			continue
		}

		if err := w.service.Redeliver(ctx, msg); err != nil {
			logx.Errorf("Outbox worker %d: notification %s: %v", workerID, msg.ID, err)
		}
	}
}

func (w *OutboxWorker) moveDelayed(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.moveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.outbox.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed notifications: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed notifications to the outbox", count)
			}
		}
	}
}

func (w *OutboxWorker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
