package help

const ColdstartYAML = `# wpzola Quick Start

order:
  - "wxr: convert the WordPress export into content/blog"
  - "codeblocks: turn leftover [code] markup into fenced blocks"
  - "gists: inline GitHub gists"
  - "images: mirror /wp-content/uploads into static/"

global_flags:
  dry_run: "--dry-run (report only, never write)"
  config: "--config wpzola.yaml (YAML file with any of the keys below)"
  verbose: "-v (debug logs, per-block language detection)"
  quiet: "-q (errors only)"
  no_history: "--no-history (skip the sqlite run ledger)"

commands:
  migrate_export: |
    wpzola wxr --export wordpress.xml --site-url https://example.com
    wpzola wxr --export wordpress.xml --auto-description --detect-lang

  convert_code_blocks: |
    wpzola codeblocks --all
    wpzola codeblocks --file 2021-07-08-hello-world.md -v

  inline_gists: |
    wpzola gists --owner someone --cache-ttl 48h

  download_images: |
    wpzola images --base-url https://example.com --static-dir static

  history: |
    wpzola history runs --limit 10
    wpzola history run 3

config_keys:
  content_dir: "content/blog"
  output_dir: "(empty: content_dir)"
  static_dir: "static"
  base_url: "https://caricio.com"
  gist_owner: "rafaelcaricio"
  gist_api_base: "https://api.github.com/gists/"
  cache_dir: "(empty: no gist cache)"
  cache_ttl: "24h"
  image_timeout: "30s"
  gist_timeout: "10s"
  max_line_delta: "15 (negative disables the check)"
  redirects_file: "redirects.json"
  zola_config: "config.toml"

outputs:
  - "content/blog/DATE-slug.md (TOML front matter between +++)"
  - "content/blog/_index.md (written once)"
  - "redirects.json (old URL -> /blog/DATE-slug/)"
  - "YAML run summary on stdout, optional --summary-file"
`
