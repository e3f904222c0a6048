package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lfaller/inspect-spacy-model/internal/logging"
	"github.com/lfaller/inspect-spacy-model/internal/registry"
	"github.com/lfaller/inspect-spacy-model/internal/store"
)

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [model]",
		Short: "Download and install a model bundle",
		Long:  "Download a model bundle archive from the bundle registry and install it into the models directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDownload,
	}
	cmd.ValidArgsFunction = validModelNames
	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	name := cfg.Model.Default
	if len(args) > 0 {
		name = args[0]
	}

	m, err := registry.GetModelByName(name)
	if err != nil {
		return err
	}

	st, err := store.NewStore(cfg.Model.Dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Downloading %s %s (%d MB)...\n", m.Name, m.Version, m.FileSizeMB)

	dl := store.NewDownloader(st)
	if cfg.Download.CleanupStale {
		if err := dl.CleanupFailedDownloads(); err != nil {
			logging.Warnf("cleanup of stale downloads failed: %v", err)
		}
	}

	dl.ProgressFunc = func(downloaded, total int64, speed float64) {
		percent := float64(downloaded) / float64(total) * 100
		fmt.Fprintf(out, "\rProgress: %.1f%% (%s / %s) - %.2f MB/s",
			percent,
			humanize.IBytes(uint64(downloaded)),
			humanize.IBytes(uint64(total)),
			speed/(1024*1024))
	}

	ctx := cmd.Context()
	if cfg.Download.TimeoutMinutes > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Download.TimeoutMinutes)*time.Minute)
		defer cancel()
	}

	dir, err := dl.Download(ctx, name)
	if err != nil {
		fmt.Fprintln(out)
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Download complete: %s\n", dir)
	return nil
}
