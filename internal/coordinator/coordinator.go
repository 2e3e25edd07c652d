package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"clipflow/internal/api"
	"clipflow/internal/blob"
	"clipflow/internal/config"
	"clipflow/internal/hub"
	"clipflow/internal/logging"
	"clipflow/internal/registry"
)

// TaskPublisher is the slice of the task bus the coordinator needs.
type TaskPublisher interface {
	Publish(ctx context.Context, videoName string) error
	Channel() string
}

// Coordinator owns the ingestion pipeline: it persists uploads, tracks
// per-video completion state, fans tasks out to workers, and multicasts
// status transitions to observers. A file lock enforces single-instance
// execution.
type Coordinator struct {
	cfg       *config.Config
	logger    *slog.Logger
	registry  *registry.Store
	observers *hub.Hub
	publisher TaskPublisher
	uploads   *blob.Store

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	server  *apiServer
}

// New constructs a coordinator with initialized dependencies.
func New(cfg *config.Config, store *registry.Store, publisher TaskPublisher, logger *slog.Logger) (*Coordinator, error) {
	if cfg == nil || store == nil || publisher == nil {
		return nil, errors.New("coordinator requires config, registry, and publisher")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	uploads, err := blob.NewStore(cfg.Paths.VideosDir)
	if err != nil {
		return nil, err
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "clipflowd.lock")
	return &Coordinator{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "coordinator"),
		registry:  store,
		observers: hub.New(cfg.Coordinator.ObserverBuffer, logger),
		publisher: publisher,
		uploads:   uploads,
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and begins serving the HTTP API.
func (c *Coordinator) Start(ctx context.Context) error {
	if c.running.Load() {
		return errors.New("coordinator already running")
	}

	ok, err := c.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another clipflow coordinator instance is already running")
	}

	c.server = newAPIServer(c.cfg, c, c.logger)
	if err := c.server.start(ctx); err != nil {
		_ = c.lock.Unlock()
		return err
	}

	c.running.Store(true)
	c.logger.Info("coordinator started",
		logging.String("bind", c.cfg.Paths.APIBind),
		logging.String("lock", c.lockPath))
	return nil
}

// Stop shuts the HTTP server down and releases the instance lock.
func (c *Coordinator) Stop() {
	if !c.running.Load() {
		return
	}
	if c.server != nil {
		c.server.stop()
		c.server = nil
	}
	if err := c.lock.Unlock(); err != nil {
		c.logger.Warn("failed to release coordinator lock", logging.Error(err))
	}
	c.running.Store(false)
	c.logger.Info("coordinator stopped")
}

// Close releases resources held by the coordinator.
func (c *Coordinator) Close() error {
	c.Stop()
	if c.registry != nil {
		return c.registry.Close()
	}
	return nil
}

// Hub exposes the observer hub.
func (c *Coordinator) Hub() *hub.Hub {
	return c.observers
}

// Status aggregates runtime information for API consumers.
func (c *Coordinator) Status(ctx context.Context) api.StatusResponse {
	summary, err := c.registry.Summary(ctx)
	if err != nil {
		c.logger.Warn("registry summary failed", logging.Error(err))
	}
	return api.StatusResponse{
		Running:   c.running.Load(),
		PID:       os.Getpid(),
		Observers: c.observers.Len(),
		Channel:   c.publisher.Channel(),
		Registry: api.RegistrySummary{
			Total:    summary.Total,
			Pending:  summary.Pending,
			Partial:  summary.Partial,
			Complete: summary.Complete,
		},
	}
}
