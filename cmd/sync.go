package cmd

import (
	"errors"
	"fmt"
	"time"

	"cover-sync/core/config"
	"cover-sync/core/fsutil"
	"cover-sync/core/httpclient"
	"cover-sync/core/storage"
	"cover-sync/feature/covers"
	"cover-sync/feature/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	coverArchive  string
	bucketArchive string
	useVersions   bool
	dryRunSync    bool
	fetchDelay    time.Duration
	insecureTLS   bool
)

// syncCmd runs the cover and info synchronization.
var syncCmd = &cobra.Command{
	Use:   "sync <lookup-json> <cover-dir> <info-json>",
	Short: "Sync covers and the info file against the catalog",
	Long: `Reads the reference lookup, matches every catalog entry against it and,
for matched entries, updates the info file and downloads the missing covers.

The catalog comes from the live site unless --cover-archive or --bucket-archive
is given. Variant keys no catalog entry matched are printed at the end.

Examples:
  # Live site, level lookup
  sync levels.json covers/ info.json

  # Local archive, version lookup
  sync --versions --cover-archive ./archive versions.json covers/ info.json

  # Show what would change
  sync --dry-run levels.json covers/ info.json`,
	Args: cobra.ExactArgs(3),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&coverArchive, "cover-archive", "", "Read catalog and images from a local archive folder")
	syncCmd.Flags().StringVar(&bucketArchive, "bucket-archive", "", "Read catalog and images from an archive prefix in the storage bucket")
	syncCmd.Flags().BoolVar(&useVersions, "versions", false, "The lookup file is a list of version groups instead of a level table")
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Do not write covers or the info file; print the info diff")
	syncCmd.Flags().DurationVar(&fetchDelay, "delay", 0, "Minimum delay between network fetches (default from SOURCE_FETCH_DELAY)")
	syncCmd.Flags().BoolVar(&insecureTLS, "insecure-tls", false, "Skip TLS certificate verification for the live site")
	syncCmd.MarkFlagsMutuallyExclusive("cover-archive", "bucket-archive")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	lookupPath, coverDir, infoPath := args[0], args[1], args[2]

	if err := fsutil.RequireFile(lookupPath); err != nil {
		return fmt.Errorf("lookup file: %w", err)
	}
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

	if cmd.Flags().Changed("delay") {
		cfg.Source.FetchDelay = fetchDelay
	}
	if insecureTLS {
		cfg.HTTP.InsecureSkipVerify = true
	}

	provider, transport, delay, err := selectSource(cfg)
	if err != nil {
		return err
	}

	mode := covers.LookupLevels
	if useVersions {
		mode = covers.LookupVersions
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	l.Info("Starting cover sync",
		zap.String("source", provider.Name()),
		zap.String("lookup", lookupPath),
		zap.Bool("dry_run", dryRunSync),
	)

	svc := covers.NewService(provider, transport, covers.Options{
		LookupPath: lookupPath,
		LookupMode: mode,
		CoverDir:   coverDir,
		InfoPath:   infoPath,
		FetchDelay: delay,
		DryRun:     dryRunSync,
	}, l)

	report, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return report.Render(cmd.OutOrStdout())
}

// selectSource picks the catalog provider and image transport once for the run.
// Archive reads are not paced.
func selectSource(cfg *config.Config) (source.Provider, source.Transport, time.Duration, error) {
	switch {
	case coverArchive != "":
		if err := fsutil.RequireDir(coverArchive); err != nil {
			return nil, nil, 0, fmt.Errorf("cover archive: %w", err)
		}
		a := source.NewArchive(coverArchive)
		return a, a, 0, nil
	case bucketArchive != "":
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("failed to connect to storage: %w", err)
		}
		b := source.NewBucket(client, cfg.Storage.Bucket, bucketArchive)
		return b, b, cfg.Source.FetchDelay, nil
	default:
		if cfg.Source.CatalogURL == "" {
			return nil, nil, 0, errors.New("source.catalog_url is empty")
		}
		r := source.NewRemote(httpclient.New(cfg.HTTP), cfg.Source)
		return r, r, cfg.Source.FetchDelay, nil
	}
}
