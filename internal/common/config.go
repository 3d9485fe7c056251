package common

import (
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wpzola/models"
)

// LoadConfig resolves the configuration for a command: defaults, then the
// --config file, then any flag the user set explicitly. Timeouts are left
// to the commands since --timeout means different things to each.
func LoadConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("dry-run") {
		cfg.DryRun = c.Bool("dry-run")
	}
	if c.IsSet("content-dir") {
		cfg.ContentDir = c.String("content-dir")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("static-dir") {
		cfg.StaticDir = c.String("static-dir")
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("site-url") {
		cfg.BaseURL = c.String("site-url")
	}
	if c.IsSet("owner") {
		cfg.GistOwner = c.String("owner")
	}
	if c.IsSet("api-base") {
		cfg.GistAPIBase = c.String("api-base")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("cache-ttl") {
		cfg.CacheTTL = c.Duration("cache-ttl")
	}
	if c.IsSet("max-line-delta") {
		cfg.MaxLineDelta = c.Int("max-line-delta")
	}
	if c.IsSet("redirects") {
		cfg.RedirectsFile = c.String("redirects")
	}
	if c.IsSet("zola-config") {
		cfg.ZolaConfig = c.String("zola-config")
	}
	return cfg, nil
}
