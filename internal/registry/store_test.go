package registry_test

import (
	"context"
	"fmt"
	"testing"

	"clipflow/internal/api"
	"clipflow/internal/registry"
	"clipflow/internal/testsupport"
)

func TestRegisterCreatesPendingEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRegistry(t, cfg)

	ctx := context.Background()
	record, err := store.Register(ctx, "clip.mp4")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !record.Pending() {
		t.Fatalf("expected pending entry, got %#v", record)
	}
	if record.Metadata != nil {
		t.Fatalf("expected no descriptor, got %v", record.Metadata)
	}
	if record.CreatedAt.IsZero() || record.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestRegisterRequiresName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRegistry(t, cfg)

	if _, err := store.Register(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestRegisterResetsFlagsAndDescriptor(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRegistry(t, cfg)

	ctx := context.Background()
	if _, err := store.Register(ctx, "clip.mp4"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := store.TrySetEnhanced(ctx, "clip.mp4"); err != nil {
		t.Fatalf("TrySetEnhanced failed: %v", err)
	}
	if _, err := store.TrySetMetadata(ctx, "clip.mp4", api.Descriptor{"fps": 24.0}); err != nil {
		t.Fatalf("TrySetMetadata failed: %v", err)
	}

	record, err := store.Register(ctx, "clip.mp4")
	if err != nil {
		t.Fatalf("re-Register failed: %v", err)
	}
	if !record.Pending() {
		t.Fatalf("expected reset to pending, got %#v", record)
	}
	if record.Metadata != nil {
		t.Fatalf("expected descriptor cleared, got %v", record.Metadata)
	}
}

func TestTrySetEnhancedTransitionsOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRegistry(t, cfg)

	ctx := context.Background()
	if _, err := store.Register(ctx, "a.mp4"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	first, err := store.TrySetEnhanced(ctx, "a.mp4")
	if err != nil {
		t.Fatalf("TrySetEnhanced failed: %v", err)
	}
	if !first {
		t.Fatal("expected first call to transition")
	}

	second, err := store.TrySetEnhanced(ctx, "a.mp4")
	if err != nil {
		t.Fatalf("duplicate TrySetEnhanced failed: %v", err)
	}
	if second {
		t.Fatal("expected duplicate call to be swallowed")
	}
}

func TestTrySetMetadataStoresDescriptorAtomically(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRegistry(t, cfg)

	ctx := context.Background()
	if _, err := store.Register(ctx, "clip.mp4"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	descriptor := api.Descriptor{
		"resolution": "1920x1080",
		"fps":        29.97,
		"duration":   12.5,
	}
	changed, err := store.TrySetMetadata(ctx, "clip.mp4", descriptor)
	if err != nil {
		t.Fatalf("TrySetMetadata failed: %v", err)
	}
	if !changed {
		t.Fatal("expected transition")
	}

	record, err := store.Get(ctx, "clip.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !record.MetadataExtracted {
		t.Fatal("expected metadata flag set")
	}
	if record.Enhanced {
		t.Fatal("enhancement flag must stay clear")
	}
	if record.Metadata["resolution"] != "1920x1080" {
		t.Fatalf("unexpected stored descriptor: %v", record.Metadata)
	}
	if record.Metadata["fps"] != 29.97 {
		t.Fatalf("unexpected fps in stored descriptor: %v", record.Metadata["fps"])
	}

	// A later duplicate must keep the original descriptor.
	changed, err = store.TrySetMetadata(ctx, "clip.mp4", api.Descriptor{"resolution": "1x1"})
	if err != nil {
		t.Fatalf("duplicate TrySetMetadata failed: %v", err)
	}
	if changed {
		t.Fatal("expected duplicate to be swallowed")
	}
	record, err = store.Get(ctx, "clip.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record.Metadata["resolution"] != "1920x1080" {
		t.Fatalf("descriptor overwritten by duplicate: %v", record.Metadata)
	}
}

func TestTrySetUnknownNameCreatesEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRegistry(t, cfg)

	ctx := context.Background()
	changed, err := store.TrySetEnhanced(ctx, "ghost.mp4")
	if err != nil {
		t.Fatalf("TrySetEnhanced failed: %v", err)
	}
	if !changed {
		t.Fatal("expected transition on auto-created entry")
	}

	record, err := store.Get(ctx, "ghost.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record == nil || !record.Enhanced || record.MetadataExtracted {
		t.Fatalf("unexpected auto-created record: %#v", record)
	}
}

func TestGetUnknownNameReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRegistry(t, cfg)

	record, err := store.Get(context.Background(), "missing.mp4")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %#v", record)
	}
}

func TestSummaryBuckets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRegistry(t, cfg)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := store.Register(ctx, fmt.Sprintf("video-%d.mp4", i)); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	if _, err := store.TrySetEnhanced(ctx, "video-1.mp4"); err != nil {
		t.Fatalf("TrySetEnhanced failed: %v", err)
	}
	if _, err := store.TrySetEnhanced(ctx, "video-2.mp4"); err != nil {
		t.Fatalf("TrySetEnhanced failed: %v", err)
	}
	if _, err := store.TrySetMetadata(ctx, "video-2.mp4", api.Descriptor{"fps": 30.0}); err != nil {
		t.Fatalf("TrySetMetadata failed: %v", err)
	}

	summary, err := store.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	want := registry.Summary{Total: 3, Pending: 1, Partial: 1, Complete: 1}
	if summary != want {
		t.Fatalf("unexpected summary: got %+v want %+v", summary, want)
	}
}

func TestConcurrentDuplicateReportsYieldOneTransition(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenRegistry(t, cfg)

	ctx := context.Background()
	if _, err := store.Register(ctx, "contended.mp4"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	const attempts = 8
	results := make(chan bool, attempts)
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			changed, err := store.TrySetEnhanced(ctx, "contended.mp4")
			results <- changed
			errs <- err
		}()
	}

	transitions := 0
	for i := 0; i < attempts; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("TrySetEnhanced failed: %v", err)
		}
		if <-results {
			transitions++
		}
	}
	if transitions != 1 {
		t.Fatalf("expected exactly one transition, got %d", transitions)
	}
}
