package codeblocks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wpzola/internal/common"
	"github.com/dtnitsch/wpzola/pkg/codeblock"
	"github.com/dtnitsch/wpzola/pkg/manifest"
	"github.com/dtnitsch/wpzola/pkg/storage"
)

const previewLen = 60

func CodeblocksAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	store := &storage.Storage{DryRun: cfg.DryRun}

	files, err := selectFiles(c, store, cfg.ContentDir)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(files) == 0 {
		fmt.Println("No markdown files found to process")
		return nil
	}
	logger.Info("processing files", "count", len(files), "content_dir", cfg.ContentDir, "dry_run", cfg.DryRun)

	rewriter := codeblock.NewRewriter(store, cfg.MaxLineDelta, logger)
	summary := manifest.New("codeblocks", cfg.DryRun)
	verbose := c.Bool("verbose")

	for _, path := range files {
		name := filepath.Base(path)
		result, err := rewriter.Process(path)
		if err != nil {
			summary.Fail(name, err)
			continue
		}

		if verbose && len(result.Blocks) > 0 {
			fmt.Printf("%s: %d block(s)\n", name, len(result.Blocks))
			for i, b := range result.Blocks {
				fmt.Printf("  %d. %-8s %s\n", i+1, b.Language.String(), b.Snippet.Preview(previewLen))
			}
		}

		switch {
		case len(result.Blocks) == 0:
			summary.Skip(name, "no [code] blocks")
		case len(result.Issues) > 0:
			summary.Fail(name, fmt.Errorf("validation failed: %s", strings.Join(result.Issues, "; ")), result.Issues...)
		default:
			summary.Success(name, describe(result))
			summary.AddStat("blocks_converted", int64(len(result.Blocks)))
		}
	}

	return common.Finish(c, summary, logger)
}

// selectFiles resolves --file or the whole content directory.
func selectFiles(c *cli.Context, store *storage.Storage, contentDir string) ([]string, error) {
	if name := c.String("file"); name != "" {
		path := filepath.Join(contentDir, name)
		if !store.HasFile(path) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return []string{path}, nil
	}
	files, err := store.ListMarkdown(contentDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read content directory: %w", err)
	}
	return files, nil
}

func describe(r codeblock.Result) string {
	langs := make([]string, len(r.Blocks))
	for i, b := range r.Blocks {
		langs[i] = b.Language.String()
	}
	verb := "converted"
	if !r.Written {
		verb = "would convert"
	}
	return fmt.Sprintf("%s %d block(s): %s", verb, len(r.Blocks), strings.Join(langs, ", "))
}
