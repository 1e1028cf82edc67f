package pkg

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// Background runs fire-and-forget tasks detached from the request that
// started them. A task never affects the response; failures are only logged.
type Background struct {
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewBackground creates a task runner. Each task is bounded by timeout.
func NewBackground(logger *slog.Logger, timeout time.Duration) *Background {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Background{logger: logger, timeout: timeout}
}

// Go starts fn in its own goroutine. The task keeps the values of ctx (such as
// the request id used in logs) but not its cancellation.
func (b *Background) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				b.logger.ErrorContext(taskCtx, "background task panicked",
					slog.String("task", name),
					slog.String("panic", fmt.Sprint(r)),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		if err := fn(taskCtx); err != nil {
			b.logger.WarnContext(taskCtx, "background task failed",
				slog.String("task", name),
				slog.Any("error", err),
			)
		}
	}()
}

// Wait blocks until all started tasks finish or ctx is done.
func (b *Background) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
