package worker

import (
	"context"
	"errors"
	"testing"

	"clipflow/internal/bus"
	"clipflow/internal/logging"
)

type fakeSource struct {
	group string
	tasks []string
}

func (s *fakeSource) Subscribe(ctx context.Context, group string, handler bus.Handler) error {
	s.group = group
	for _, task := range s.tasks {
		// The real bus logs and swallows handler errors too.
		_ = handler(ctx, task)
	}
	return ctx.Err()
}

type recordingJob struct {
	role      string
	processed []string
	failOn    string
}

func (j *recordingJob) Role() string { return j.role }

func (j *recordingJob) Process(_ context.Context, videoName string) error {
	if videoName == j.failOn {
		return errors.New("processing failed")
	}
	j.processed = append(j.processed, videoName)
	return nil
}

func TestRunnerSubscribesUnderRoleGroup(t *testing.T) {
	source := &fakeSource{tasks: []string{"a.mp4", "b.mp4"}}
	job := &recordingJob{role: "enhance"}

	runner, err := NewRunner(source, job, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if source.group != "enhance" {
		t.Errorf("group = %q, want enhance", source.group)
	}
	if len(job.processed) != 2 || job.processed[0] != "a.mp4" || job.processed[1] != "b.mp4" {
		t.Errorf("processed = %v", job.processed)
	}
}

func TestRunnerSurvivesTaskFailure(t *testing.T) {
	source := &fakeSource{tasks: []string{"bad.mp4", "good.mp4"}}
	job := &recordingJob{role: "metadata", failOn: "bad.mp4"}

	runner, err := NewRunner(source, job, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(job.processed) != 1 || job.processed[0] != "good.mp4" {
		t.Errorf("processed = %v, want the task after the failure", job.processed)
	}
}

func TestNewRunnerRejectsNilParts(t *testing.T) {
	if _, err := NewRunner(nil, &recordingJob{role: "enhance"}, logging.NewNop()); err == nil {
		t.Error("expected error for nil source")
	}
	if _, err := NewRunner(&fakeSource{}, nil, logging.NewNop()); err == nil {
		t.Error("expected error for nil job")
	}
}
