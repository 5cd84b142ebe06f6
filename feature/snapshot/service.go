package snapshot

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"cover-sync/core/fsutil"
	"cover-sync/feature/covers"
	"cover-sync/feature/source"

	"go.uber.org/zap"
)

// Catalog is a source that exposes the raw catalog document besides its images.
type Catalog interface {
	source.Transport
	CatalogJSON(ctx context.Context) ([]byte, error)
}

// Result summarises a snapshot run.
type Result struct {
	Entries    int
	Downloaded int
	Existing   int
	Skipped    int
}

// Service builds an archive folder.
type Service struct {
	catalog Catalog
	dir     string
	pacer   *covers.Pacer
	logger  *zap.Logger
}

// NewService creates a snapshot service writing into dir.
func NewService(catalog Catalog, dir string, delay time.Duration, logger *zap.Logger) *Service {
	return &Service{
		catalog: catalog,
		dir:     dir,
		pacer:   covers.NewPacer(delay),
		logger:  logger,
	}
}

// Run stores the catalog and every image it references that is not yet in dir.
// Images the source cannot provide are logged and skipped.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	data, err := s.catalog.CatalogJSON(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := source.DecodeCatalog(data)
	if err != nil {
		return nil, err
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(s.dir, source.CatalogFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write catalog: %w", err)
	}

	result := &Result{Entries: len(entries)}
	s.logger.Info("Catalog stored", zap.Int("entries", len(entries)))

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ImageID]; dup {
			continue
		}
		seen[e.ImageID] = struct{}{}

		if err := s.download(ctx, e, result); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Snapshot finished",
		zap.Int("downloaded", result.Downloaded),
		zap.Int("existing", result.Existing),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (s *Service) download(ctx context.Context, e source.Entry, result *Result) error {
	l := s.logger.With(zap.String("title", e.Title), zap.String("image", e.ImageID))

	if err := source.ValidateImageID(e.ImageID); err != nil {
		l.Warn("Skipping invalid image id", zap.Error(err))
		result.Skipped++
		return nil
	}

	target := filepath.Join(s.dir, e.ImageID)
	exists, err := fsutil.Exists(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if exists {
		result.Existing++
		return nil
	}

	if err := s.pacer.Wait(ctx); err != nil {
		return err
	}
	data, err := s.catalog.Fetch(ctx, e.ImageID)
	s.pacer.Mark()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.Warn("Image unavailable, skipping", zap.Error(err))
		result.Skipped++
		return nil
	}

	if err := fsutil.WriteFileAtomic(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	l.Info("Image downloaded", zap.Int("bytes", len(data)))
	result.Downloaded++
	return nil
}
