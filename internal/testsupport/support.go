package testsupport

import (
	"path/filepath"
	"testing"

	"clipflow/internal/config"
	"clipflow/internal/registry"
)

// NewConfig returns a validated config rooted in a per-test temp directory.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.VideosDir = filepath.Join(dir, "videos")
	cfg.Paths.ProcessedDir = filepath.Join(dir, "processed_videos")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("config.Validate: %v", err)
	}
	return &cfg
}

// MustOpenRegistry opens a registry.Store for tests and registers cleanup.
func MustOpenRegistry(t testing.TB, cfg *config.Config) *registry.Store {
	t.Helper()

	store, err := registry.Open(cfg)
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
