// Package task implements background task execution for fire-and-forget work.
package task

import (
	"context"
	"log/slog"
	"time"

	"stencil/internal/domain/service"
)

// defaultTaskTimeout bounds a detached task so an unresponsive provider
// cannot leak goroutines.
const defaultTaskTimeout = 30 * time.Second

// goRunner runs each task on its own goroutine, detached from the request
// context so in-flight dispatches survive the response being written.
type goRunner struct {
	logger *slog.Logger
}

// NewGoRunner is the constructor for goRunner.
func NewGoRunner(logger *slog.Logger) service.TaskRunner {
	return &goRunner{logger: logger}
}

// Go schedules the task. Panics are recovered and logged so a failing task
// never takes the process down.
func (r *goRunner) Go(_ context.Context, task func(ctx context.Context)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTaskTimeout)
		defer cancel()

		defer func() {
			if p := recover(); p != nil {
				r.logger.ErrorContext(ctx, "background task panicked", slog.Any("panic", p))
			}
		}()

		task(ctx)
	}()
}
