package main

import (
	"strings"
	"testing"

	"clipflow/internal/api"
)

func TestRenderTableIncludesHeadersAndRows(t *testing.T) {
	out := renderTable(
		[]string{"Name", "Enhanced"},
		[][]string{{"movie.mp4", "yes"}, {"clip.mp4", "-"}},
		[]columnAlignment{alignLeft, alignLeft},
	)
	for _, want := range []string{"Name", "Enhanced", "movie.mp4", "clip.mp4"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDescriptorOrdersKnownKeys(t *testing.T) {
	got := formatDescriptor(api.Descriptor{
		"duration":   7.5,
		"fps":        30.0,
		"resolution": "1920x1080",
	})
	if got != "resolution=1920x1080 fps=30 duration=7.5" {
		t.Errorf("formatDescriptor = %q", got)
	}

	if got := formatDescriptor(nil); got != "" {
		t.Errorf("empty descriptor = %q, want empty string", got)
	}
}

func TestFlagMark(t *testing.T) {
	if flagMark(true) != "yes" || flagMark(false) != "-" {
		t.Error("flagMark mapping changed")
	}
}
