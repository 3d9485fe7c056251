package images

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wpzola/internal/common"
	"github.com/dtnitsch/wpzola/pkg/fetcher"
	"github.com/dtnitsch/wpzola/pkg/images"
	"github.com/dtnitsch/wpzola/pkg/manifest"
	"github.com/dtnitsch/wpzola/pkg/storage"
)

var errMissingAfterDownload = errors.New("image missing or empty after download")

func ImagesAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.IsSet("timeout") {
		cfg.ImageTimeout = c.Duration("timeout")
	}
	store := &storage.Storage{DryRun: cfg.DryRun}

	downloader := images.NewDownloader(cfg.BaseURL, cfg.StaticDir, fetcher.NewFetcher(cfg.ImageTimeout), store, logger)
	refs, err := downloader.Scan(cfg.ContentDir)
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot read content directory: %v", err), 1)
	}
	if len(refs) == 0 {
		fmt.Println("No images referenced by posts")
		return nil
	}
	logger.Info("downloading images", "count", len(refs), "base_url", cfg.BaseURL, "static_dir", cfg.StaticDir)

	report := downloader.Download(c.Context, refs)
	var invalid []string
	if !cfg.DryRun {
		var valid int
		valid, invalid = downloader.Verify(refs)
		logger.Info("verified images", "valid", valid, "invalid", len(invalid))
	}
	summary := summarize(report, refs, invalid, cfg.DryRun)

	return common.Finish(c, summary, logger)
}

// summarize records every download outcome, then fails refs that were not
// already failed but have no usable local copy after the run.
func summarize(report images.Report, refs, invalid []string, dryRun bool) *manifest.RunSummary {
	summary := manifest.New("images", dryRun)
	failed := map[string]bool{}
	for _, o := range report.Outcomes {
		switch {
		case o.Err != nil:
			failed[o.Ref] = true
			summary.Fail(o.Ref, o.Err)
		case o.Skipped:
			summary.Success(o.Ref, fmt.Sprintf("already present, %d bytes", o.Bytes))
		case o.Planned:
			summary.Skip(o.Ref, "would download "+o.RemoteURL)
		default:
			summary.Success(o.Ref, fmt.Sprintf("%d bytes", o.Bytes))
		}
	}
	summary.AddStat("total_bytes", report.TotalBytes)
	if dryRun {
		return summary
	}

	summary.AddStat("verified", int64(len(refs)-len(invalid)))
	for _, ref := range invalid {
		if failed[ref] {
			continue
		}
		summary.Fail(ref, errMissingAfterDownload)
	}
	return summary
}
