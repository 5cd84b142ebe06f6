package cmd

import (
	"fmt"

	"cover-sync/core/fsutil"
	"cover-sync/core/storage"
	"cover-sync/feature/mirror"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	publishPrefix string
	dryRunPublish bool
)

// publishCmd mirrors the cover directory and info file to object storage.
var publishCmd = &cobra.Command{
	Use:   "publish <cover-dir> <info-json>",
	Short: "Upload missing covers and the info file to the storage bucket",
	Long: `Compares the cover directory with <prefix>/covers/ in the configured bucket,
uploads covers missing in storage and replaces <prefix>/info.json.
Covers only present in storage are reported, never deleted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		coverDir, infoPath := args[0], args[1]
		if err := fsutil.RequireDir(coverDir); err != nil {
			return fmt.Errorf("cover directory: %w", err)
		}
		if err := fsutil.RequireFile(infoPath); err != nil {
			return fmt.Errorf("info file: %w", err)
		}

		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}

		ctx, stop := signalContext(cmd)
		defer stop()

		svc := mirror.NewService(client, mirror.Options{
			CoverDir: coverDir,
			InfoPath: infoPath,
			Bucket:   cfg.Storage.Bucket,
			Prefix:   publishPrefix,
			DryRun:   dryRunPublish,
		}, l)

		result, err := svc.Run(ctx)
		if err != nil {
			return fmt.Errorf("publish failed: %w", err)
		}

		l.Info("Publish report",
			zap.Int("planned_uploads", result.Plan.Summary.UploadActions),
			zap.Int("uploaded", result.Uploaded),
			zap.Int("storage_only", len(result.StorageOnly)),
			zap.Bool("info_uploaded", result.InfoUploaded),
		)
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVar(&publishPrefix, "prefix", "", "Object prefix inside the bucket")
	publishCmd.Flags().BoolVar(&dryRunPublish, "dry-run", false, "Plan without uploading")
	RootCmd.AddCommand(publishCmd)
}
