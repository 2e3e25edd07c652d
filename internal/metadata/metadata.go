// Package metadata implements the metadata-extraction worker role: it probes
// the source blob with ffprobe, derives the descriptor record, and reports it
// to the coordinator.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"clipflow/internal/api"
	"clipflow/internal/blob"
	"clipflow/internal/config"
	"clipflow/internal/logging"
	"clipflow/internal/media/ffprobe"
)

// DescriptorReporter delivers the extracted descriptor to the coordinator.
type DescriptorReporter interface {
	ReportMetadata(ctx context.Context, videoName string, descriptor api.Descriptor) error
}

// Extractor is the metadata worker role.
type Extractor struct {
	cfg      *config.Config
	source   *blob.Store
	reporter DescriptorReporter
	logger   *slog.Logger
}

// New builds the role over the shared source directory.
func New(cfg *config.Config, source *blob.Store, reporter DescriptorReporter, logger *slog.Logger) *Extractor {
	return &Extractor{
		cfg:      cfg,
		source:   source,
		reporter: reporter,
		logger:   logging.NewComponentLogger(logger, "metadata"),
	}
}

// Role names the consumer group this role subscribes under.
func (x *Extractor) Role() string {
	return "metadata"
}

// Process probes a single video and reports the descriptor.
func (x *Extractor) Process(ctx context.Context, videoName string) error {
	path, err := x.source.Path(videoName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("source blob: %w", err)
	}

	result, err := ffprobe.Inspect(ctx, x.cfg.Workers.FFprobeBinary, path)
	if err != nil {
		return err
	}

	descriptor, err := Describe(result)
	if err != nil {
		return fmt.Errorf("describe %s: %w", videoName, err)
	}

	x.logger.Info("metadata extracted",
		logging.String(logging.FieldVideo, videoName),
		logging.Any("descriptor", descriptor))

	if err := x.reporter.ReportMetadata(ctx, videoName, descriptor); err != nil {
		return fmt.Errorf("report metadata: %w", err)
	}
	return nil
}

// Describe derives the descriptor record from a probe result: resolution as
// "WxH", frames per second, and duration in seconds. Duration prefers the
// frame count divided by fps and falls back to the container duration.
func Describe(result ffprobe.Result) (api.Descriptor, error) {
	stream := result.VideoStream()
	if stream == nil {
		return nil, errors.New("no video stream")
	}

	fps := stream.FPS()
	duration := result.DurationSeconds()
	if frames := stream.FrameCount(); frames > 0 && fps > 0 {
		duration = float64(frames) / fps
	}

	return api.Descriptor{
		"resolution": stream.Resolution(),
		"fps":        fps,
		"duration":   duration,
	}, nil
}
