package cmd

import (
	"fmt"
	"os"
	"time"

	"cover-sync/core/httpclient"
	"cover-sync/feature/snapshot"
	"cover-sync/feature/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotDelay time.Duration

// snapshotCmd downloads the live catalog into an archive folder.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot <archive-dir>",
	Short: "Download the catalog and all covers into an archive folder",
	Long: `Stores the live catalog as maimai_songs.json and downloads every referenced
image that is not already present. The folder can be used with
"sync --cover-archive". Re-running only downloads what is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create archive directory: %w", err)
		}

		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()

		delay := cfg.Source.FetchDelay
		if cmd.Flags().Changed("delay") {
			delay = snapshotDelay
		}

		ctx, stop := signalContext(cmd)
		defer stop()

		remote := source.NewRemote(httpclient.New(cfg.HTTP), cfg.Source)
		result, err := snapshot.NewService(remote, dir, delay, l).Run(ctx)
		if err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}

		l.Info("Archive ready",
			zap.String("dir", dir),
			zap.Int("entries", result.Entries),
			zap.Int("downloaded", result.Downloaded),
		)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().DurationVar(&snapshotDelay, "delay", 0, "Minimum delay between image downloads (default from SOURCE_FETCH_DELAY)")
	RootCmd.AddCommand(snapshotCmd)
}
