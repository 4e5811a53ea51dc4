// Package task runs archive export/import in the background so the
// interactive surface stays responsive. Results are delivered over a
// channel consumed in the caller's own context; the worker goroutine never
// touches caller state. There is no queue, no cancellation and no timeout:
// once started, a task runs to completion or failure.
package task

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Result is the outcome of a finished task: the produced path (archive
// file or profile folder) or an error.
type Result struct {
	Path string
	Err  error
}

// Task is a single in-flight background operation.
type Task struct {
	ID   string
	Kind string
	done chan Result
}

// Done returns the channel the task's result is delivered on. The channel
// is buffered: a task completes even if nobody ever receives.
func (t *Task) Done() <-chan Result {
	return t.done
}

// Wait blocks until the task finishes and returns its result.
func (t *Task) Wait() (string, error) {
	res := <-t.done
	return res.Path, res.Err
}

// Runner starts background tasks.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run starts fn on its own goroutine and returns the task immediately.
// A panic in fn is reported as a failed result rather than crashing the
// process.
func (r *Runner) Run(kind string, fn func() (string, error)) *Task {
	t := &Task{
		ID:   uuid.New().String(),
		Kind: kind,
		done: make(chan Result, 1),
	}

	r.logger.Info("task started", "task", t.ID, "kind", kind)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("task panicked", "task", t.ID, "kind", kind, "panic", rec)
				t.done <- Result{Err: fmt.Errorf("%s task panicked: %v", kind, rec)}
			}
		}()

		path, err := fn()
		if err != nil {
			r.logger.Error("task failed", "task", t.ID, "kind", kind, "error", err)
		} else {
			r.logger.Info("task finished", "task", t.ID, "kind", kind, "path", path)
		}
		t.done <- Result{Path: path, Err: err}
	}()

	return t
}
