package mirror

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cover-sync/core/reconcile"
	"cover-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	coversFolder = "covers"
	infoObject   = "info.json"
	coverExt     = ".png"
)

// Options configures one publish run.
type Options struct {
	CoverDir string
	InfoPath string
	Bucket   string
	Prefix   string
	DryRun   bool
}

// Result summarises a publish run.
type Result struct {
	Plan *reconcile.ReconcilePlan
	// Uploaded is the number of covers uploaded.
	Uploaded int
	// StorageOnly lists cover names found in storage but not locally.
	StorageOnly []string
	// InfoUploaded is false for dry runs.
	InfoUploaded bool
}

// Service mirrors covers to a bucket.
type Service struct {
	client storage.Client
	opts   Options
	logger *zap.Logger
}

// NewService creates a new publish service.
func NewService(client storage.Client, opts Options, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// CoverKey returns the object name of a cover.
func (s *Service) CoverKey(name string) string {
	return storage.ObjectKey(s.coversPrefix(), name)
}

// InfoKey returns the object name of the info file.
func (s *Service) InfoKey() string {
	return storage.ObjectKey(s.opts.Prefix, infoObject)
}

func (s *Service) coversPrefix() string {
	return storage.ObjectKey(s.opts.Prefix, coversFolder)
}

// Run plans and, unless DryRun is set, applies the upload of missing covers and the info file.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	local, err := s.localCovers()
	if err != nil {
		return nil, err
	}
	remote, err := s.remoteCovers(ctx)
	if err != nil {
		return nil, err
	}

	plan := reconcile.BuildPlan(local, remote)
	result := &Result{Plan: plan}
	for _, r := range plan.Results {
		if !r.LocalPresent {
			result.StorageOnly = append(result.StorageOnly, r.Key)
		}
	}

	s.logger.Info("Publish plan",
		zap.String("bucket", s.opts.Bucket),
		zap.String("prefix", s.coversPrefix()),
		zap.Int("total_items", plan.Summary.TotalItems),
		zap.Int("missing_storage", plan.Summary.MissingStorage),
		zap.Int("missing_local", plan.Summary.MissingLocal),
	)
	if len(result.StorageOnly) > 0 {
		s.logger.Warn("Covers only present in storage", zap.Strings("keys", result.StorageOnly))
	}

	if s.opts.DryRun {
		s.logger.Info("Dry-run mode: No changes were made.")
		return result, nil
	}

	uploaded, err := reconcile.ApplyPlan(ctx, plan, s, reconcile.ReconcileOptions{})
	result.Uploaded = uploaded
	if err != nil {
		return result, err
	}

	if err := s.uploadInfo(ctx); err != nil {
		return result, err
	}
	result.InfoUploaded = true

	s.logger.Info("Publish finished", zap.Int("uploaded", uploaded))
	return result, nil
}

// Upload copies one local cover to storage.
func (s *Service) Upload(ctx context.Context, name string) error {
	data, err := os.ReadFile(filepath.Join(s.opts.CoverDir, name))
	if err != nil {
		return err
	}
	key := s.CoverKey(name)
	if err := s.put(ctx, key, data, "image/png"); err != nil {
		return err
	}
	s.logger.Debug("Uploaded cover", zap.String("key", key))
	return nil
}

func (s *Service) uploadInfo(ctx context.Context) error {
	data, err := os.ReadFile(s.opts.InfoPath)
	if err != nil {
		return fmt.Errorf("failed to read info file: %w", err)
	}
	if err := s.put(ctx, s.InfoKey(), data, "application/json"); err != nil {
		return fmt.Errorf("failed to upload info file: %w", err)
	}
	return nil
}

func (s *Service) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.opts.Bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.opts.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if s.opts.DryRun {
		s.logger.Info("Bucket does not exist and would be created", zap.String("bucket", s.opts.Bucket))
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.opts.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.opts.Bucket, err)
	}
	s.logger.Info("Created bucket", zap.String("bucket", s.opts.Bucket))
	return nil
}

func (s *Service) localCovers() (reconcile.KeySet, error) {
	entries, err := os.ReadDir(s.opts.CoverDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list cover directory: %w", err)
	}
	keys := reconcile.NewKeySet()
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), coverExt) {
			keys.Add(e.Name())
		}
	}
	return keys, nil
}

func (s *Service) remoteCovers(ctx context.Context) (reconcile.KeySet, error) {
	prefix := s.coversPrefix() + "/"
	keys := reconcile.NewKeySet()
	opts := minio.ListObjectsOptions{Prefix: prefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.opts.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		keys.Add(name)
	}
	return keys, nil
}
