// Package cleanup removes storage objects that no image row references
// anymore. Interrupted saves and deleted properties both leave orphans
// behind; the janitor is housekeeping, not transactional repair.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"casa-certa-portal/internal/config"
	"casa-certa-portal/internal/storage"
)

// URLSource lists every image URL the database still references.
// *database.GormDB implements it.
type URLSource interface {
	AllImageURLs() ([]string, error)
}

// Service compares the object store against the database and deletes
// unreferenced objects older than the retention window.
type Service struct {
	objects storage.ObjectStore
	urls    URLSource
	cfg     config.CleanupConfig
	now     func() time.Time
}

// NewService creates a new janitor service.
func NewService(objects storage.ObjectStore, urls URLSource, cfg config.CleanupConfig) *Service {
	return &Service{objects: objects, urls: urls, cfg: cfg, now: time.Now}
}

// Result holds the outcome of one janitor run.
type Result struct {
	ScannedCount int       `json:"scanned_count"`
	OrphanCount  int       `json:"orphan_count"`
	DeletedCount int       `json:"deleted_count"`
	ErrorCount   int       `json:"error_count"`
	DryRun       bool      `json:"dry_run"`
	ExecutedAt   time.Time `json:"executed_at"`
	DeletedKeys  []string  `json:"deleted_keys"`
	Errors       []string  `json:"errors,omitempty"`
}

// Run executes one janitor pass. Objects younger than the retention
// window are left alone so in-flight uploads are never collected.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		DryRun:     s.cfg.DryRun,
		ExecutedAt: s.now(),
	}

	objects, err := s.objects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage objects: %w", err)
	}
	result.ScannedCount = len(objects)

	urls, err := s.urls.AllImageURLs()
	if err != nil {
		return nil, fmt.Errorf("failed to list referenced images: %w", err)
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if key, ok := s.objects.KeyFromPublicURL(u); ok {
			referenced[key] = struct{}{}
		}
	}

	cutoff := result.ExecutedAt.Add(-s.cfg.Retention())

	var orphans []storage.ObjectInfo
	for _, obj := range objects {
		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		orphans = append(orphans, obj)
	}
	result.OrphanCount = len(orphans)

	if result.OrphanCount == 0 {
		slog.Info("janitor: no orphaned objects found", "scanned", result.ScannedCount)
		return result, nil
	}

	if s.cfg.MaxDeletions > 0 && result.OrphanCount > s.cfg.MaxDeletions {
		return nil, fmt.Errorf("safety check failed: %d orphans exceed deletion limit of %d",
			result.OrphanCount, s.cfg.MaxDeletions)
	}

	slog.Info("janitor: starting deletion pass",
		"orphans", result.OrphanCount, "retention", s.cfg.Retention(), "dry_run", s.cfg.DryRun)

	for _, obj := range orphans {
		if s.cfg.DryRun {
			slog.Info("janitor: would delete object", "key", obj.Key, "last_modified", obj.LastModified)
			result.DeletedKeys = append(result.DeletedKeys, obj.Key)
			result.DeletedCount++
			continue
		}

		if err := s.objects.Delete(ctx, obj.Key); err != nil {
			msg := fmt.Sprintf("failed to delete object %s: %v", obj.Key, err)
			slog.Error("janitor: " + msg)
			result.Errors = append(result.Errors, msg)
			result.ErrorCount++
			continue
		}
		result.DeletedKeys = append(result.DeletedKeys, obj.Key)
		result.DeletedCount++
	}

	slog.Info("janitor: pass complete",
		"deleted", result.DeletedCount, "errors", result.ErrorCount, "dry_run", s.cfg.DryRun)

	return result, nil
}
