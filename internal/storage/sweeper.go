package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Purger is implemented by backends that keep expired entries until swept.
// Redis expires keys itself and does not implement it.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Sweeper periodically purges expired entries from a backend.
type Sweeper struct {
	purger   Purger
	interval time.Duration
	logger   *slog.Logger

	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
}

// NewSweeper creates a sweeper that purges every interval.
func NewSweeper(purger Purger, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		purger:   purger,
		interval: interval,
		logger:   logger.With("component", "storage.sweeper"),
	}
}

// Run sweeps once immediately, then on every tick. Blocks until ctx is
// cancelled or Shutdown is called.
func (s *Sweeper) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("sweeper already started")
	}
	s.started = true
	s.done = make(chan struct{})
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	defer close(s.done)

	s.logger.Info("storage sweeper started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("storage sweeper stopping")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Warn("failed to purge expired storage entries", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		s.logger.Info("purged expired storage entries", slog.Int64("count", n))
	}
}

// Shutdown stops the sweep loop and waits for an in-flight purge to finish.
// It matches the server's shutdown hook signature.
func (s *Sweeper) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.logger.Warn("storage sweeper shutdown timed out")
		return ctx.Err()
	}
}
