package covers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cover-sync/core/logger"
	"cover-sync/feature/source"

	"github.com/gofrs/flock"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
)

// Options configures one sync run.
type Options struct {
	// LookupPath is the reference lookup file.
	LookupPath string
	// LookupMode selects how LookupPath is decoded.
	LookupMode LookupMode
	// CoverDir receives {id}.png files. It must exist.
	CoverDir string
	// InfoPath is the info JSON file. It must exist and hold a JSON object.
	InfoPath string
	// FetchDelay is the minimum pause between two fetches. Zero disables pacing.
	FetchDelay time.Duration
	// DryRun reads everything but writes neither covers nor the info file.
	DryRun bool
}

// Service drives the per-entry sync pipeline.
type Service struct {
	provider  source.Provider
	transport source.Transport
	opts      Options
	logger    *zap.Logger
}

// NewService creates a sync service for one provider/transport pair.
func NewService(provider source.Provider, transport source.Transport, opts Options, logger *zap.Logger) *Service {
	return &Service{
		provider:  provider,
		transport: transport,
		opts:      opts,
		logger:    logger,
	}
}

// classified is a catalog entry after title normalization and classification.
type classified struct {
	entry    source.Entry
	title    string
	category Category
	excluded bool
}

// Run executes the pipeline over every catalog entry in source order.
// Any returned error is fatal; per-cover problems only show up in the report.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	l, runID := logger.WithRunID(s.logger)
	report := &Report{RunID: runID}

	if !s.opts.DryRun {
		unlock, err := lockInfo(s.opts.InfoPath)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	variants, dropped, err := loadVariants(s.opts.LookupPath, s.opts.LookupMode)
	if err != nil {
		return nil, err
	}
	report.DroppedLookupKeys = dropped
	if len(dropped) > 0 {
		l.Warn("Lookup keys too short to carry a variant were ignored",
			zap.Int("count", len(dropped)),
			zap.Strings("keys", dropped),
		)
	}
	l.Info("Variant keys loaded",
		zap.String("mode", s.opts.LookupMode.String()),
		zap.Int("count", variants.Len()),
	)

	original, err := os.ReadFile(s.opts.InfoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read info file: %w", err)
	}
	info, err := DecodeInfo(s.opts.InfoPath, original)
	if err != nil {
		return nil, err
	}

	entries, err := s.provider.Entries(ctx)
	if err != nil {
		return nil, err
	}
	report.Entries = len(entries)
	l.Info("Catalog loaded", zap.String("source", s.provider.Name()), zap.Int("entries", len(entries)))

	// Classify everything up front so an outdated taxonomy aborts before any write.
	plan, err := classifyAll(entries)
	if err != nil {
		return nil, err
	}

	reconciler := NewReconciler(variants, l)
	assets := NewSynchronizer(s.opts.CoverDir, s.transport, NewPacer(s.opts.FetchDelay), s.opts.DryRun, l)

	for i, c := range plan {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sync interrupted after %d of %d entries: %w", i, len(plan), err)
		}
		if c.excluded {
			report.Excluded++
			continue
		}

		m := reconciler.Reconcile(c.entry, c.title, c.category)
		if !m.Matched() {
			report.Unmatched++
			continue
		}
		report.Matched++
		report.Claimed += len(m.Claimed)

		res := info.Upsert(m.InfoKey(), InfoRecord{Artist: c.entry.Artist, TitleKana: c.entry.TitleKana})
		report.countInfo(res)
		l.Debug("Info record upserted", zap.String("key", m.InfoKey()), zap.Stringer("result", res))
		if !s.opts.DryRun {
			if err := info.Save(); err != nil {
				return nil, err
			}
		}

		outcome, err := assets.Ensure(ctx, AssetID(m.Category, m.Title), m.Title, c.entry)
		if err != nil {
			return nil, err
		}
		report.countAsset(outcome)
	}

	report.Leftover = variants.Remaining()

	if s.opts.DryRun {
		diff, err := infoDiff(s.opts.InfoPath, original, info)
		if err != nil {
			return nil, err
		}
		report.InfoDiff = diff
	}

	l.Info("Sync finished",
		zap.Int("matched", report.Matched),
		zap.Int("unmatched", report.Unmatched),
		zap.Int("covers_written", report.AssetsWritten),
		zap.Int("covers_missing_source", report.AssetsMissingSource),
		zap.Int("variants_left", len(report.Leftover)),
	)
	return report, nil
}

func loadVariants(path string, mode LookupMode) (*VariantSpace, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read lookup file: %w", err)
	}
	return ParseVariants(data, mode)
}

func classifyAll(entries []source.Entry) ([]classified, error) {
	out := make([]classified, 0, len(entries))
	for i, e := range entries {
		c := classified{entry: e, title: NormalizeTitle(e.Title)}
		if e.CategoryCode == ExcludedCategoryCode {
			c.excluded = true
			out = append(out, c)
			continue
		}

		category, err := Classify(e.CategoryCode)
		if err != nil {
			var unknown *UnknownCategoryError
			if errors.As(err, &unknown) {
				unknown.Title = c.title
			}
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		c.category = category
		out = append(out, c)
	}
	return out, nil
}

// lockInfo takes an exclusive advisory lock for the info file.
// The lock file lives in the temp dir so the data directory stays clean.
func lockInfo(infoPath string) (func(), error) {
	resolved := infoPath
	if target, err := filepath.EvalSymlinks(infoPath); err == nil {
		resolved = target
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve info path: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	lockPath := filepath.Join(os.TempDir(), "cover-sync-"+hex.EncodeToString(sum[:8])+".lock")

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock info file: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("info file %s is being synced by another process", infoPath)
	}
	return func() { _ = lock.Unlock() }, nil
}

func infoDiff(path string, original []byte, info *InfoStore) (string, error) {
	updated, err := info.Encode()
	if err != nil {
		return "", err
	}
	if string(updated) == string(original) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(updated)),
		FromFile: path,
		ToFile:   path + " (after sync)",
		Context:  3,
	})
}
