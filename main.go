package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wpzola/internal/codeblocks"
	"github.com/dtnitsch/wpzola/internal/db"
	"github.com/dtnitsch/wpzola/internal/gists"
	"github.com/dtnitsch/wpzola/internal/images"
	"github.com/dtnitsch/wpzola/internal/wxr"
	"github.com/dtnitsch/wpzola/pkg/help"
)

func main() {
	app := &cli.App{
		Name:  "wpzola",
		Usage: "Migrate a WordPress blog into a Zola site",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file overriding the default settings",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report what would change without writing anything",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Debug logs and per-block language detection output",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record the run in the history database",
			},
			&cli.StringFlag{
				Name:  "summary-file",
				Usage: "Also write the YAML run summary to this file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "codeblocks",
				Usage:  "Convert legacy [code] blocks into fenced code with a language",
				Action: codeblocks.CodeblocksAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "Process only this file name inside the content directory",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Process every markdown file in the content directory (default)",
					},
					&cli.StringFlag{
						Name:  "content-dir",
						Usage: "Directory holding the migrated posts",
					},
					&cli.IntFlag{
						Name:  "max-line-delta",
						Usage: "Reject rewrites whose line count changes by more than this (negative disables)",
					},
				},
			},
			{
				Name:   "images",
				Usage:  "Download /wp-content/uploads images referenced by posts",
				Action: images.ImagesAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "content-dir",
						Usage: "Directory holding the migrated posts",
					},
					&cli.StringFlag{
						Name:  "static-dir",
						Usage: "Directory images are saved under",
					},
					&cli.StringFlag{
						Name:  "base-url",
						Usage: "Live WordPress site to download from",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-image HTTP timeout",
					},
				},
			},
			{
				Name:   "gists",
				Usage:  "Replace GitHub gist links with the gist's code",
				Action: gists.GistsAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "content-dir",
						Usage: "Directory holding the migrated posts",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Process only this file name inside the content directory",
					},
					&cli.StringFlag{
						Name:  "owner",
						Usage: "GitHub user whose gist links are inlined",
					},
					&cli.StringFlag{
						Name:  "api-base",
						Usage: "Gist API endpoint",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Cache gist API responses in this directory",
					},
					&cli.DurationFlag{
						Name:  "cache-ttl",
						Usage: "How long cached gist responses stay fresh (0 = forever)",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Gist API timeout",
					},
				},
			},
			{
				Name:   "wxr",
				Usage:  "Convert a WordPress export into Zola posts and a redirect map",
				Action: wxr.WxrAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "export",
						Usage:    "WordPress WXR export file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Directory posts are written to (default: content dir)",
					},
					&cli.StringFlag{
						Name:  "content-dir",
						Usage: "Blog section directory",
					},
					&cli.StringFlag{
						Name:  "site-url",
						Usage: "Address of the WordPress site, used to make links relative",
					},
					&cli.StringFlag{
						Name:  "redirects",
						Usage: "Where to write the old URL to new path map",
					},
					&cli.StringFlag{
						Name:  "zola-config",
						Usage: "Zola config.toml to add taxonomies to",
					},
					&cli.BoolFlag{
						Name:  "detect-lang",
						Usage: "Store the detected natural language of each post under [extra]",
					},
					&cli.BoolFlag{
						Name:  "auto-description",
						Usage: "Derive a description from the post body when the excerpt is empty",
					},
				},
			},
			{
				Name:  "history",
				Usage: "Inspect previous runs",
				Subcommands: []*cli.Command{
					{
						Name:   "runs",
						Usage:  "List recent runs",
						Action: db.RunsAction,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "Maximum number of runs to list (0 = all)",
							},
						},
					},
					{
						Name:      "run",
						Usage:     "Show the items of a run (default: latest)",
						ArgsUsage: "[run-id]",
						Action:    db.RunAction,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "failed",
								Usage: "Only show failed items",
							},
						},
					},
				},
			},
			{
				Name:   "quickstart",
				Usage:  "Print a cheat sheet of common commands",
				Action: quickstartAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func quickstartAction(c *cli.Context) error {
	fmt.Print(help.ColdstartYAML)
	return nil
}
