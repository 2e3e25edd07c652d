// Package enhance implements the pixel-enhancement worker role: it reads the
// source blob, runs ffmpeg with a brightness/contrast filter, writes the
// result to the processed store, and reports completion to the coordinator.
package enhance

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"clipflow/internal/blob"
	"clipflow/internal/config"
	"clipflow/internal/logging"
)

// OutputPrefix is prepended to enhanced blob names.
const OutputPrefix = "enhanced_"

// CompletionReporter delivers the terminal outcome to the coordinator.
type CompletionReporter interface {
	ReportEnhancement(ctx context.Context, videoName string) error
}

// Enhancer is the enhancement worker role.
type Enhancer struct {
	cfg      *config.Config
	source   *blob.Store
	output   *blob.Store
	reporter CompletionReporter
	logger   *slog.Logger
}

// New builds the role over the shared blob directories.
func New(cfg *config.Config, source, output *blob.Store, reporter CompletionReporter, logger *slog.Logger) *Enhancer {
	return &Enhancer{
		cfg:      cfg,
		source:   source,
		output:   output,
		reporter: reporter,
		logger:   logging.NewComponentLogger(logger, "enhance"),
	}
}

// Role names the consumer group this role subscribes under.
func (e *Enhancer) Role() string {
	return "enhance"
}

// Process transforms a single video and reports completion. Failures remove
// any partial output; the task is simply not reported.
func (e *Enhancer) Process(ctx context.Context, videoName string) error {
	inputPath, err := e.source.Path(videoName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("source blob: %w", err)
	}

	outputName := OutputPrefix + videoName
	outputPath, err := e.output.Path(outputName)
	if err != nil {
		return err
	}

	args := ffmpegArgs(inputPath, outputPath, e.cfg.Workers.Brightness, e.cfg.Workers.Contrast, e.cfg.Workers.TargetFPS)
	cmd := exec.CommandContext(ctx, e.cfg.Workers.FFmpegBinary, args...)
	if combined, err := cmd.CombinedOutput(); err != nil {
		_ = e.output.Remove(outputName)
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(combined))
	}

	e.logger.Info("enhancement finished",
		logging.String(logging.FieldVideo, videoName),
		logging.String("output", outputPath))

	if err := e.reporter.ReportEnhancement(ctx, videoName); err != nil {
		return fmt.Errorf("report enhancement: %w", err)
	}
	return nil
}

func ffmpegArgs(input, output string, brightness, contrast float64, fps int) []string {
	filter := fmt.Sprintf("eq=brightness=%s:contrast=%s",
		strconv.FormatFloat(brightness, 'f', -1, 64),
		strconv.FormatFloat(contrast, 'f', -1, 64))
	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", input, "-vf", filter}
	if fps > 0 {
		args = append(args, "-r", strconv.Itoa(fps))
	}
	return append(args, output)
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
