package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateBroker(); err != nil {
		return err
	}
	if err := c.validateCoordinator(); err != nil {
		return err
	}
	if err := c.validateWorkers(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.VideosDir == c.Paths.ProcessedDir {
		return errors.New("paths.videos_dir and paths.processed_dir must differ")
	}
	if !strings.Contains(c.Paths.APIBind, ":") {
		return fmt.Errorf("paths.api_bind %q must be host:port", c.Paths.APIBind)
	}
	return nil
}

func (c *Config) validateBroker() error {
	if c.Broker.Addr == "" {
		return errors.New("broker.addr must be set")
	}
	if c.Broker.Channel == "" {
		return errors.New("broker.channel must be set")
	}
	if c.Broker.DB < 0 {
		return errors.New("broker.db must not be negative")
	}
	return nil
}

func (c *Config) validateCoordinator() error {
	parsed, err := url.Parse(c.Coordinator.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("coordinator.base_url %q must be an absolute URL", c.Coordinator.BaseURL)
	}
	return nil
}

func (c *Config) validateWorkers() error {
	if c.Workers.Contrast <= 0 {
		return errors.New("workers.contrast must be positive")
	}
	if c.Workers.Brightness < -1 || c.Workers.Brightness > 1 {
		return errors.New("workers.brightness must be between -1 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q must be json or console", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
