package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// newTempSweepTask creates the scheduled task function that removes stale
// transient files from the image temp directory. Handlers clean up after
// themselves on every path; the sweep is the safety net for files orphaned
// by a crash mid-transform.
func newTempSweepTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "temp_sweep")

	return func(ctx context.Context) error {
		dir := deps.Config.Image.TempDir
		maxAge := deps.Config.Image.SweepMaxAge
		log.InfoContext(ctx, "Starting temp sweep task...", "dir", dir, "max_age", maxAge)

		removed, err := sweepDir(dir, maxAge)
		if err != nil {
			log.ErrorContext(ctx, "Temp sweep task failed", "error", err, "dir", dir)
			return fmt.Errorf("temp sweep failed: %w", err)
		}

		log.InfoContext(ctx, "Temp sweep task completed", "removed", removed)
		return nil
	}
}

// sweepDir removes regular files older than maxAge from dir and returns the
// number removed. A file that disappears between listing and removal is not
// an error; a concurrent handler may have cleaned it up already.
func sweepDir(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			removed++
		}
	}

	return removed, nil
}
