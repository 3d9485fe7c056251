package gists

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wpzola/internal/common"
	"github.com/dtnitsch/wpzola/pkg/caching"
	"github.com/dtnitsch/wpzola/pkg/fetcher"
	"github.com/dtnitsch/wpzola/pkg/gist"
	"github.com/dtnitsch/wpzola/pkg/manifest"
	"github.com/dtnitsch/wpzola/pkg/storage"
)

func GistsAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if c.IsSet("timeout") {
		cfg.GistTimeout = c.Duration("timeout")
	}
	store := &storage.Storage{DryRun: cfg.DryRun}

	var files []string
	if name := c.String("file"); name != "" {
		path := filepath.Join(cfg.ContentDir, name)
		if !store.HasFile(path) {
			return cli.Exit("file not found: "+path, 1)
		}
		files = []string{path}
	} else {
		files, err = store.ListMarkdown(cfg.ContentDir)
		if err != nil {
			return cli.Exit(fmt.Sprintf("cannot read content directory: %v", err), 1)
		}
	}

	var cache *caching.Cache
	if cfg.CacheDir != "" {
		cache, err = caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			logger.Warn("gist cache disabled", "error", err)
		}
	}

	client := gist.NewClient(cfg.GistAPIBase, fetcher.NewFetcher(cfg.GistTimeout), cache, logger)
	inliner := gist.NewInliner(client, gist.NewMatcher(cfg.GistOwner), store, logger)
	summary := manifest.New("gists", cfg.DryRun)

	for _, path := range files {
		name := filepath.Base(path)
		result, err := inliner.Process(c.Context, path)
		if err != nil {
			summary.Fail(name, err)
			continue
		}
		if len(result.IDs) == 0 {
			continue
		}

		summary.AddStat("gists_found", int64(len(result.IDs)))
		summary.AddStat("gists_inlined", int64(len(result.Inlined)))
		if len(result.Failed) > 0 {
			ids := make([]string, 0, len(result.Failed))
			for id := range result.Failed {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			issues := make([]string, len(ids))
			for i, id := range ids {
				issues[i] = fmt.Sprintf("%s: %v", id, result.Failed[id])
			}
			summary.Fail(name, fmt.Errorf("%d of %d gists not inlined", len(ids), len(result.IDs)), issues...)
			continue
		}
		summary.Success(name, "inlined "+strings.Join(result.Inlined, ", "))
	}

	if summary.Total == 0 {
		fmt.Println("No gist links found")
	}
	return common.Finish(c, summary, logger)
}
