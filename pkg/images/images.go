// Package images mirrors WordPress uploads referenced by posts into the
// static asset tree.
package images

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dtnitsch/wpzola/pkg/fetcher"
	"github.com/dtnitsch/wpzola/pkg/storage"
)

// UploadsPrefix is the path under which WordPress stores media.
const UploadsPrefix = "/wp-content/uploads/"

// ErrOutsideStaticDir is returned for refs whose local path would leave the
// static directory.
var ErrOutsideStaticDir = errors.New("image path escapes the static directory")

var imageRef = regexp.MustCompile(`!\[.*?\]\((/wp-content/uploads/[^)]+)\)`)

// Refs returns the upload paths referenced by markdown images in content.
func Refs(content string) []string {
	var refs []string
	for _, m := range imageRef.FindAllStringSubmatch(content, -1) {
		refs = append(refs, m[1])
	}
	return refs
}

// Target is where one referenced image comes from and goes to.
type Target struct {
	Ref       string
	RemoteURL string
	LocalPath string
}

// Outcome is the result of downloading one image.
type Outcome struct {
	Target
	Bytes   int64
	Skipped bool
	Planned bool
	Err     error
}

// Report aggregates a download run.
type Report struct {
	Outcomes   []Outcome
	Downloaded int
	Skipped    int
	Planned    int
	Failed     int
	TotalBytes int64
}

// Successful counts downloaded and already-present images.
func (r Report) Successful() int {
	return r.Downloaded + r.Skipped
}

// Downloader fetches images from the live site.
type Downloader struct {
	baseURL   string
	staticDir string
	getter    fetcher.Getter
	store     *storage.Storage
	logger    *slog.Logger
}

// NewDownloader creates a Downloader resolving refs against baseURL and
// writing them under staticDir.
func NewDownloader(baseURL, staticDir string, getter fetcher.Getter, store *storage.Storage, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		baseURL:   strings.TrimRight(baseURL, "/"),
		staticDir: staticDir,
		getter:    getter,
		store:     store,
		logger:    logger,
	}
}

// Scan collects the unique image refs of every post in contentDir, sorted.
func (d *Downloader) Scan(contentDir string) ([]string, error) {
	files, err := d.store.ListMarkdown(contentDir)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	for _, f := range files {
		data, err := d.store.ReadFile(f)
		if err != nil {
			return nil, err
		}
		for _, ref := range Refs(string(data)) {
			seen[ref] = struct{}{}
		}
	}

	refs := make([]string, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs, nil
}

// Plan maps a ref to its remote URL and local path. Refs that resolve
// outside the static directory are rejected with ErrOutsideStaticDir.
func (d *Downloader) Plan(ref string) (Target, error) {
	rel := strings.TrimLeft(ref, "/")
	target := Target{
		Ref:       ref,
		RemoteURL: d.baseURL + "/" + rel,
		LocalPath: filepath.Join(d.staticDir, filepath.FromSlash(rel)),
	}
	inside, err := filepath.Rel(filepath.Clean(d.staticDir), target.LocalPath)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return target, fmt.Errorf("%s: %w", ref, ErrOutsideStaticDir)
	}
	return target, nil
}

// Download fetches every ref in order. A failure is recorded and the next
// ref is still attempted; images already on disk are not fetched again.
func (d *Downloader) Download(ctx context.Context, refs []string) Report {
	var report Report
	for i, ref := range refs {
		target, err := d.Plan(ref)
		outcome := Outcome{Target: target}
		log := d.logger.With("ref", ref, "index", i+1, "total", len(refs))
		if err != nil {
			outcome.Err = err
			report.Failed++
			report.Outcomes = append(report.Outcomes, outcome)
			log.Warn("image ref rejected", "error", err)
			continue
		}

		if stats, err := d.store.GetFileStats(target.LocalPath); err == nil {
			outcome.Skipped = true
			outcome.Bytes = stats.SizeBytes
			report.Skipped++
			report.TotalBytes += stats.SizeBytes
			report.Outcomes = append(report.Outcomes, outcome)
			log.Debug("image already exists", "bytes", stats.SizeBytes)
			continue
		}

		if d.store.DryRun {
			outcome.Planned = true
			report.Planned++
			report.Outcomes = append(report.Outcomes, outcome)
			log.Info("would download image", "url", target.RemoteURL, "path", target.LocalPath)
			continue
		}

		data, err := d.getter.GetBytes(ctx, target.RemoteURL)
		if err == nil {
			err = d.store.SaveFile(target.LocalPath, data)
		}
		if err != nil {
			outcome.Err = fmt.Errorf("download %s: %w", target.RemoteURL, err)
			report.Failed++
			report.Outcomes = append(report.Outcomes, outcome)
			log.Warn("image download failed", "url", target.RemoteURL, "error", err)
			continue
		}

		outcome.Bytes = int64(len(data))
		report.Downloaded++
		report.TotalBytes += outcome.Bytes
		report.Outcomes = append(report.Outcomes, outcome)
		log.Info("image downloaded", "bytes", outcome.Bytes)
	}
	return report
}

// Verify counts refs whose local copy exists and is not empty.
func (d *Downloader) Verify(refs []string) (valid int, invalid []string) {
	for _, ref := range refs {
		target, err := d.Plan(ref)
		if err != nil {
			invalid = append(invalid, ref)
			continue
		}
		stats, err := d.store.GetFileStats(target.LocalPath)
		if err == nil && stats.SizeBytes > 0 {
			valid++
			continue
		}
		invalid = append(invalid, ref)
	}
	return valid, invalid
}
