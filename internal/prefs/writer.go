package prefs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/syedqalbe-create/VisionAR/internal/repository"
)

// writeOp is one pending persistence write.
type writeOp struct {
	key   string
	value []byte
}

// writer drains queued preference writes to the repository in submission
// order on a single goroutine. One consumer means two writes to the same key
// can never land out of order, so the last queued value always wins.
// Failed writes are logged and dropped, and enqueue drops rather than blocks
// when the queue is full; the in-memory cache above this layer keeps serving
// the intended value either way, and the next save resubmits it.
type writer struct {
	repo    repository.PreferenceRepository
	logger  *slog.Logger
	queue   chan writeOp
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func newWriter(repo repository.PreferenceRepository, queueSize int, timeout time.Duration, logger *slog.Logger) *writer {
	w := &writer{
		repo:    repo,
		logger:  logger,
		queue:   make(chan writeOp, queueSize),
		timeout: timeout,
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) run() {
	defer close(w.done)
	for op := range w.queue {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		if err := w.repo.Set(ctx, op.key, op.value); err != nil {
			w.logger.Error("preference write failed",
				slog.String("key", op.key),
				slog.String("error", err.Error()),
			)
		}
		cancel()
	}
}

// enqueue submits a write without blocking. Returns false if the writer is
// closed or the queue is full.
func (w *writer) enqueue(key string, value []byte) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	select {
	case w.queue <- writeOp{key: key, value: value}:
		return true
	default:
		return false
	}
}

// close stops accepting writes and blocks until the queue is drained.
func (w *writer) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()
	<-w.done
}
