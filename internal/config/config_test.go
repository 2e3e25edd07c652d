package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipflow/internal/config"
)

func TestLoadWithoutFileUsesDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantVideos := filepath.Join(tempHome, ".local", "share", "clipflow", "videos")
	if cfg.Paths.VideosDir != wantVideos {
		t.Fatalf("unexpected videos dir: got %q want %q", cfg.Paths.VideosDir, wantVideos)
	}
	if cfg.Paths.APIBind != "127.0.0.1:8000" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Broker.Channel != "video_tasks" {
		t.Fatalf("unexpected broker channel: %q", cfg.Broker.Channel)
	}
	if cfg.Coordinator.BaseURL != "http://localhost:8000" {
		t.Fatalf("unexpected base url: %q", cfg.Coordinator.BaseURL)
	}
	if cfg.Coordinator.ObserverBuffer != 16 {
		t.Fatalf("unexpected observer buffer: %d", cfg.Coordinator.ObserverBuffer)
	}
	if cfg.Workers.FFprobeBinary != "ffprobe" {
		t.Fatalf("unexpected ffprobe binary: %q", cfg.Workers.FFprobeBinary)
	}
}

func TestLoadParsesFileAndTrimsBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipflow.toml")
	content := strings.Join([]string{
		"[paths]",
		`videos_dir = "` + filepath.Join(dir, "in") + `"`,
		`processed_dir = "` + filepath.Join(dir, "out") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		"[coordinator]",
		`base_url = "http://coordinator.local:9000/"`,
		"[broker]",
		`addr = "redis.local:6379"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Coordinator.BaseURL != "http://coordinator.local:9000" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Coordinator.BaseURL)
	}
	if cfg.Broker.Addr != "redis.local:6379" {
		t.Fatalf("unexpected broker addr: %q", cfg.Broker.Addr)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"same dirs", func(c *config.Config) { c.Paths.ProcessedDir = c.Paths.VideosDir }},
		{"bad bind", func(c *config.Config) { c.Paths.APIBind = "8000" }},
		{"empty broker addr", func(c *config.Config) { c.Broker.Addr = "" }},
		{"negative db", func(c *config.Config) { c.Broker.DB = -1 }},
		{"relative base url", func(c *config.Config) { c.Coordinator.BaseURL = "coordinator:9000" }},
		{"zero contrast", func(c *config.Config) { c.Workers.Contrast = -1 }},
		{"brightness range", func(c *config.Config) { c.Workers.Brightness = 2 }},
		{"log format", func(c *config.Config) { c.Logging.Format = "yaml" }},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.VideosDir = "/tmp/clipflow-test/videos"
			cfg.Paths.ProcessedDir = "/tmp/clipflow-test/processed"
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	written, err := config.WriteSample(path)
	if err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if written != path {
		t.Fatalf("unexpected path: %q", written)
	}
	if _, err := config.WriteSample(path); err == nil {
		t.Fatal("expected error when config exists")
	}
}
