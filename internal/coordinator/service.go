package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"clipflow/internal/api"
	"clipflow/internal/blob"
	"clipflow/internal/logging"
)

// ErrDispatchFailed marks an upload whose task could not be published. The
// blob is retained and the registry entry stays pending; resubmission is the
// caller's responsibility.
var ErrDispatchFailed = errors.New("task dispatch failed")

// Ingest persists the upload, registers the video as pending, and publishes
// exactly one task. The blob rename happens before registration, and
// registration before publication, so workers always find a complete blob.
func (c *Coordinator) Ingest(ctx context.Context, filename string, src io.Reader) (string, error) {
	filename, err := blob.CleanName(filename)
	if err != nil {
		return "", err
	}

	size, err := c.uploads.Save(filename, src)
	if err != nil {
		return "", err
	}

	if _, err := c.registry.Register(ctx, filename); err != nil {
		return "", fmt.Errorf("register upload: %w", err)
	}

	if err := c.publisher.Publish(ctx, filename); err != nil {
		c.logger.Error("task publish failed; video stays pending",
			logging.String(logging.FieldVideo, filename),
			logging.Error(err))
		return "", fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	c.logger.Info("video ingested",
		logging.String(logging.FieldVideo, filename),
		logging.Int64("bytes", size))
	return filename, nil
}

// RecordEnhancement applies an enhancement completion report. The first
// report per video flips the flag and broadcasts one event; duplicates are
// acknowledged without effect. Unknown names are registered fail-open.
func (c *Coordinator) RecordEnhancement(ctx context.Context, videoName string) error {
	changed, err := c.registry.TrySetEnhanced(ctx, videoName)
	if err != nil {
		return err
	}
	if !changed {
		c.logger.Debug("duplicate enhancement report ignored", logging.String(logging.FieldVideo, videoName))
		return nil
	}

	c.logger.Info("video enhanced", logging.String(logging.FieldVideo, videoName))
	return c.observers.Broadcast(api.Event{
		Filename: videoName,
		Status:   api.StatusEnhanced,
	})
}

// RecordMetadata applies a metadata completion report, storing the descriptor
// atomically with the flag. Duplicate reports keep the first descriptor.
func (c *Coordinator) RecordMetadata(ctx context.Context, videoName string, descriptor api.Descriptor) error {
	changed, err := c.registry.TrySetMetadata(ctx, videoName, descriptor)
	if err != nil {
		return err
	}
	if !changed {
		c.logger.Debug("duplicate metadata report ignored", logging.String(logging.FieldVideo, videoName))
		return nil
	}

	c.logger.Info("video metadata extracted", logging.String(logging.FieldVideo, videoName))
	return c.observers.Broadcast(api.Event{
		Filename: videoName,
		Status:   api.StatusMetadataExtracted,
		Metadata: descriptor,
	})
}
