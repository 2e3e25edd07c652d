package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clipflow/internal/bus"
	"clipflow/internal/logging"
)

// Job is a worker role: a named consumer group plus the transformation it
// applies per task. Process must treat duplicate deliveries as harmless and
// report only terminal outcomes.
type Job interface {
	Role() string
	Process(ctx context.Context, videoName string) error
}

// TaskSource is the slice of the task bus the runner consumes from.
type TaskSource interface {
	Subscribe(ctx context.Context, group string, handler bus.Handler) error
}

// Runner drives a role's consume loop over the task bus. Per-task failures
// are logged and swallowed; the loop ends only when the context does.
type Runner struct {
	source TaskSource
	job    Job
	logger *slog.Logger
}

// NewRunner wires a job to the task bus.
func NewRunner(source TaskSource, job Job, logger *slog.Logger) (*Runner, error) {
	if source == nil || job == nil {
		return nil, errors.New("runner requires a task source and job")
	}
	return &Runner{
		source: source,
		job:    job,
		logger: logging.NewComponentLogger(logger, job.Role()+"-worker"),
	}, nil
}

// Run subscribes under the job's role and processes tasks until ctx ends.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("worker waiting for tasks")
	return r.source.Subscribe(ctx, r.job.Role(), func(taskCtx context.Context, videoName string) error {
		started := time.Now()
		r.logger.Info("task received", logging.String(logging.FieldVideo, videoName))

		if err := r.job.Process(taskCtx, videoName); err != nil {
			return err
		}

		r.logger.Info("task completed",
			logging.String(logging.FieldVideo, videoName),
			logging.Duration("elapsed", time.Since(started)))
		return nil
	})
}
