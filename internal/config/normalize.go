package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBroker()
	c.normalizeCoordinator()
	c.normalizeWorkers()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.VideosDir) == "" {
		c.Paths.VideosDir = defaultVideosDir
	}
	if c.Paths.VideosDir, err = expandPath(c.Paths.VideosDir); err != nil {
		return fmt.Errorf("paths.videos_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ProcessedDir) == "" {
		c.Paths.ProcessedDir = defaultProcessedDir
	}
	if c.Paths.ProcessedDir, err = expandPath(c.Paths.ProcessedDir); err != nil {
		return fmt.Errorf("paths.processed_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeBroker() {
	c.Broker.Addr = strings.TrimSpace(c.Broker.Addr)
	if c.Broker.Addr == "" {
		c.Broker.Addr = defaultBrokerAddr
	}
	c.Broker.Channel = strings.TrimSpace(c.Broker.Channel)
	if c.Broker.Channel == "" {
		c.Broker.Channel = defaultBrokerChannel
	}
}

func (c *Config) normalizeCoordinator() {
	c.Coordinator.BaseURL = strings.TrimRight(strings.TrimSpace(c.Coordinator.BaseURL), "/")
	if c.Coordinator.BaseURL == "" {
		c.Coordinator.BaseURL = defaultBaseURL
	}
	if c.Coordinator.RequestTimeout <= 0 {
		c.Coordinator.RequestTimeout = defaultRequestTimeout
	}
	if c.Coordinator.ObserverBuffer <= 0 {
		c.Coordinator.ObserverBuffer = defaultObserverBuffer
	}
	if c.Coordinator.MaxUploadMiB <= 0 {
		c.Coordinator.MaxUploadMiB = defaultMaxUploadMiB
	}
	if c.Coordinator.ShutdownTimeout <= 0 {
		c.Coordinator.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Coordinator.KeepaliveInterval <= 0 {
		c.Coordinator.KeepaliveInterval = defaultKeepaliveInterval
	}
}

func (c *Config) normalizeWorkers() {
	c.Workers.FFmpegBinary = strings.TrimSpace(c.Workers.FFmpegBinary)
	if c.Workers.FFmpegBinary == "" {
		c.Workers.FFmpegBinary = defaultFFmpegBinary
	}
	c.Workers.FFprobeBinary = strings.TrimSpace(c.Workers.FFprobeBinary)
	if c.Workers.FFprobeBinary == "" {
		c.Workers.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Workers.Contrast == 0 {
		c.Workers.Contrast = defaultContrast
	}
	if c.Workers.TargetFPS <= 0 {
		c.Workers.TargetFPS = defaultTargetFPS
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
