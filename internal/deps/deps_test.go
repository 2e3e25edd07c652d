package deps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipflow/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestVerifyNamesMissingBinaries(t *testing.T) {
	err := Verify([]Requirement{
		{Name: "FFmpeg", Command: "clearly-not-present-binary"},
		{Name: "Optional", Command: "also-not-present", Optional: true},
	})
	if err == nil {
		t.Fatal("expected error for missing required binary")
	}
	if !strings.Contains(err.Error(), "FFmpeg") {
		t.Errorf("error should name the missing binary: %v", err)
	}
	if strings.Contains(err.Error(), "Optional") {
		t.Errorf("optional binaries must not fail verification: %v", err)
	}
}

func TestRoleRequirementsUseConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.Workers.FFmpegBinary = "custom-ffmpeg"
	cfg.Workers.FFprobeBinary = "custom-ffprobe"

	enhance := EnhanceRequirements(&cfg)
	if len(enhance) != 1 || enhance[0].Command != "custom-ffmpeg" {
		t.Errorf("enhance requirements = %#v", enhance)
	}
	meta := MetadataRequirements(&cfg)
	if len(meta) != 1 || meta[0].Command != "custom-ffprobe" {
		t.Errorf("metadata requirements = %#v", meta)
	}
}
