package tasks

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweepDirRemovesOnlyStaleFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	stale := filepath.Join(dir, "in_stale.jpg")
	fresh := filepath.Join(dir, "in_fresh.jpg")
	for _, path := range []string{stale, fresh} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("failed to age file: %v", err)
	}

	removed, err := sweepDir(dir, time.Hour)
	if err != nil {
		t.Fatalf("sweepDir failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 file removed, got %d", removed)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale file should have been removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh file should survive the sweep: %v", err)
	}
}

func TestSweepDirSkipsSubdirectories(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	sub := filepath.Join(dir, "keep")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(sub, old, old); err != nil {
		t.Fatalf("failed to age subdirectory: %v", err)
	}

	removed, err := sweepDir(dir, time.Hour)
	if err != nil {
		t.Fatalf("sweepDir failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected no removals, got %d", removed)
	}
	if _, err := os.Stat(sub); err != nil {
		t.Errorf("subdirectory should survive the sweep: %v", err)
	}
}

func TestSweepDirMissingDir(t *testing.T) {
	t.Parallel()

	removed, err := sweepDir(filepath.Join(t.TempDir(), "does-not-exist"), time.Hour)
	if err != nil {
		t.Errorf("missing dir should not be an error, got %v", err)
	}
	if removed != 0 {
		t.Errorf("expected no removals, got %d", removed)
	}
}
