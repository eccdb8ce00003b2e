package media

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Sweeper removes media files older than the retention window. It is
// purely age-based: it does not consult order records, so a swept file
// may still be referenced by an order (the read then 404s).
type Sweeper struct {
	dirs   []string
	window time.Duration
	log    *zap.Logger
}

func NewSweeper(store *Store, window time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		dirs:   []string{store.UploadsDir, store.DeliveriesDir},
		window: window,
		log:    log,
	}
}

// RunOnce scans both buckets and deletes expired image files, returning
// the number removed. A failure on one file never aborts the rest.
func (s *Sweeper) RunOnce() int {
	now := time.Now()
	removed := 0

	for _, dir := range s.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.Warn("sweep: read directory failed", zap.String("dir", dir), zap.Error(err))
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !IsImage(entry.Name()) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				s.log.Warn("sweep: stat failed", zap.String("file", entry.Name()), zap.Error(err))
				continue
			}
			if now.Sub(info.ModTime()) <= s.window {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				s.log.Warn("sweep: remove failed", zap.String("file", entry.Name()), zap.Error(err))
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		s.log.Info("sweep: removed expired media files", zap.Int("count", removed))
	}
	return removed
}

// Start runs one sweep immediately and then on every tick of interval.
// The returned channel stops the loop when closed; ctx cancellation
// stops it as well.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) chan struct{} {
	stopCh := make(chan struct{})

	s.RunOnce()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunOnce()
			case <-stopCh:
				s.log.Info("sweep: stopped")
				return
			case <-ctx.Done():
				s.log.Info("sweep: stopped (context done)")
				return
			}
		}
	}()

	s.log.Info("sweep: scheduled",
		zap.Duration("interval", interval),
		zap.Duration("retention_window", s.window),
	)
	return stopCh
}
