package wxr

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wpzola/internal/common"
	"github.com/dtnitsch/wpzola/pkg/manifest"
	"github.com/dtnitsch/wpzola/pkg/storage"
	"github.com/dtnitsch/wpzola/pkg/wxr"
	"github.com/dtnitsch/wpzola/pkg/zola"
)

func WxrAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	store := &storage.Storage{DryRun: cfg.DryRun}

	exportPath := c.String("export")
	f, err := os.Open(exportPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot read export: %v", err), 1)
	}
	records, err := wxr.Read(f)
	_ = f.Close()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Info("export loaded", "path", exportPath, "items", len(records))

	opts := wxr.Options{
		SiteURL:         cfg.BaseURL,
		AutoDescription: c.Bool("auto-description"),
		Logger:          logger,
	}
	if c.Bool("detect-lang") {
		opts.Languages = wxr.NewLinguaDetector()
	}
	conv, err := wxr.NewConverter(opts)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	postsDir := cfg.OutputDir
	if postsDir == "" {
		postsDir = cfg.ContentDir
	}

	report, err := wxr.NewMigrator(conv, store, postsDir, logger).Migrate(c.Context, records)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	summary := manifest.New("wxr", cfg.DryRun)
	for _, o := range report.Outcomes {
		switch {
		case o.Err != nil:
			summary.Fail(o.Title, o.Err)
		case o.Skipped:
			summary.Skip(o.Title, o.Reason)
		default:
			summary.Success(o.Path, o.NewPath)
		}
	}
	summary.AddStat("attachments", int64(len(report.Attachments)))
	summary.AddStat("redirects", int64(report.Redirects.Len()))

	if written, err := zola.WriteSectionIndex(postsDir, zola.DefaultSectionIndex, store); err != nil {
		logger.Error("failed to write section index", "error", err)
	} else if written {
		logger.Info("section index written", "dir", postsDir)
	}

	if err := report.Redirects.Write(cfg.RedirectsFile, store); err != nil {
		logger.Error("failed to write redirects", "path", cfg.RedirectsFile, "error", err)
	} else {
		logger.Info("redirect map written", "path", cfg.RedirectsFile, "entries", report.Redirects.Len())
	}

	changed, err := zola.EnsureTaxonomies(cfg.ZolaConfig, zola.DefaultTaxonomies, store)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Warn("zola config not found, taxonomies not added", "path", cfg.ZolaConfig)
	case err != nil:
		logger.Error("failed to update zola config", "path", cfg.ZolaConfig, "error", err)
	case changed:
		logger.Info("taxonomies added to zola config", "path", cfg.ZolaConfig)
	default:
		logger.Debug("zola config already declares taxonomies", "path", cfg.ZolaConfig)
	}

	return common.Finish(c, summary, logger)
}
