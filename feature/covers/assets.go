package covers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"cover-sync/core/fsutil"
	"cover-sync/feature/source"

	"go.uber.org/zap"
)

// AssetOutcome is the terminal state of Ensure for one entry.
type AssetOutcome int

const (
	// AssetWritten means the cover was fetched and written.
	AssetWritten AssetOutcome = iota
	// AssetExists means the target was already present; nothing was fetched.
	AssetExists
	// AssetMissingSource means the transport could not provide the image.
	AssetMissingSource
	// AssetPlanned means a dry run would have fetched the cover.
	AssetPlanned
)

func (o AssetOutcome) String() string {
	switch o {
	case AssetWritten:
		return "written"
	case AssetExists:
		return "exists"
	case AssetMissingSource:
		return "missing-source"
	case AssetPlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// Pacer enforces a minimum delay between successive fetches.
type Pacer struct {
	delay time.Duration
	last  time.Time
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPacer creates a pacer. A zero delay never waits.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay, now: time.Now, sleep: sleepContext}
}

// Wait blocks until delay has passed since the previous Mark.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.delay <= 0 || p.last.IsZero() {
		return nil
	}
	remaining := p.delay - p.now().Sub(p.last)
	if remaining <= 0 {
		return nil
	}
	return p.sleep(ctx, remaining)
}

// Mark records that a fetch just happened.
func (p *Pacer) Mark() {
	if p == nil {
		return
	}
	p.last = p.now()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MaxTransportFailures is the number of consecutive transport errors (not
// missing images or bad statuses) after which the source counts as unreachable.
const MaxTransportFailures = 5

// ErrSourceUnreachable aborts a run whose transport keeps failing.
var ErrSourceUnreachable = errors.New("image source unreachable")

// Synchronizer makes sure a cover exists for every matched entry.
type Synchronizer struct {
	coverDir  string
	transport source.Transport
	pacer     *Pacer
	dryRun    bool
	logger    *zap.Logger

	maxFailures int
	failures    int
}

// NewSynchronizer creates a synchronizer writing into coverDir.
func NewSynchronizer(coverDir string, transport source.Transport, pacer *Pacer, dryRun bool, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		coverDir:  coverDir,
		transport: transport,
		pacer:     pacer,
		dryRun:    dryRun,
		logger:    logger,

		maxFailures: MaxTransportFailures,
	}
}

// TargetPath returns coverDir/{id}.png.
func (s *Synchronizer) TargetPath(id string) string {
	return filepath.Join(s.coverDir, AssetFilename(id))
}

// Ensure fetches the cover for entry unless the target already exists.
// A source that cannot provide the image yields AssetMissingSource. Local I/O
// failures, cancellation and MaxTransportFailures transport errors in a row
// are returned as errors.
func (s *Synchronizer) Ensure(ctx context.Context, id string, title string, entry source.Entry) (AssetOutcome, error) {
	target := s.TargetPath(id)
	l := s.logger.With(zap.String("title", title), zap.String("target", target))

	exists, err := fsutil.Exists(target)
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	if exists {
		l.Info("Cover already exists, skipping")
		return AssetExists, nil
	}

	if s.dryRun {
		l.Info("Dry run: cover would be fetched", zap.String("image", entry.ImageID))
		return AssetPlanned, nil
	}

	if err := s.pacer.Wait(ctx); err != nil {
		return 0, err
	}
	l.Info("Fetching cover", zap.String("source", s.transport.Name()), zap.String("image", entry.ImageID))
	data, err := s.transport.Fetch(ctx, entry.ImageID)
	s.pacer.Mark()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		reason := missingReason(err)
		if reason == "transport" {
			s.failures++
			if s.failures >= s.maxFailures {
				return 0, fmt.Errorf("%w after %d consecutive failures: %w", ErrSourceUnreachable, s.failures, err)
			}
		} else if reason != "invalid-id" {
			s.failures = 0
		}
		l.Warn("Source image unavailable, skipping cover",
			zap.String("image", entry.ImageID),
			zap.String("reason", reason),
			zap.Error(err),
		)
		return AssetMissingSource, nil
	}
	s.failures = 0

	if err := fsutil.WriteFileAtomic(target, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write cover %s: %w", target, err)
	}
	l.Info("Cover written", zap.Int("bytes", len(data)))
	return AssetWritten, nil
}

// missingReason classifies a transport error for the skip log line.
func missingReason(err error) string {
	var statusErr *source.StatusError
	switch {
	case errors.Is(err, source.ErrNotFound):
		return "not-found"
	case errors.As(err, &statusErr):
		return "status"
	case errors.Is(err, source.ErrInvalidID):
		return "invalid-id"
	default:
		return "transport"
	}
}
