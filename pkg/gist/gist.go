// Package gist replaces links to GitHub gists with the code they contain.
package gist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dtnitsch/wpzola/pkg/caching"
	"github.com/dtnitsch/wpzola/pkg/fetcher"
)

// DefaultAPIBase is the GitHub endpoint serving a gist by id.
const DefaultAPIBase = "https://api.github.com/gists/"

// ErrNoFiles is returned for a gist that has no file with content.
var ErrNoFiles = errors.New("gist has no files with content")

// File is one named file of a gist.
type File struct {
	Filename  string
	Language  string
	Content   string
	RawURL    string
	Truncated bool
}

// Gist is the resolved content of one gist.
type Gist struct {
	ID    string
	Files []File
}

// Getter fetches API documents and raw file contents.
type Getter interface {
	fetcher.Getter
	GetJSON(ctx context.Context, url string) ([]byte, error)
}

// Client resolves gist ids through the GitHub API.
type Client struct {
	apiBase string
	getter  Getter
	cache   *caching.Cache
	logger  *slog.Logger
}

// NewClient creates a Client. cache may be nil.
func NewClient(apiBase string, getter Getter, cache *caching.Cache, logger *slog.Logger) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if !strings.HasSuffix(apiBase, "/") {
		apiBase += "/"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{apiBase: apiBase, getter: getter, cache: cache, logger: logger}
}

// Fetch returns the files of gist id, in the order the API lists them.
func (c *Client) Fetch(ctx context.Context, id string) (*Gist, error) {
	url := c.apiBase + id

	data, hit := []byte(nil), false
	if c.cache != nil {
		data, hit = c.cache.Get(url)
	}
	if !hit {
		var err error
		data, err = c.getter.GetJSON(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch gist %s: %w", id, err)
		}
	}

	g, err := Parse(id, data)
	if err != nil {
		return nil, err
	}

	for i := range g.Files {
		f := &g.Files[i]
		if !f.Truncated || f.RawURL == "" {
			continue
		}
		raw, err := c.getter.GetBytes(ctx, f.RawURL)
		if err != nil {
			return nil, fmt.Errorf("fetch truncated file %s of gist %s: %w", f.Filename, id, err)
		}
		f.Content = string(raw)
		f.Truncated = false
	}

	if !hit && c.cache != nil {
		if err := c.cache.Set(url, data); err != nil {
			c.logger.Warn("failed to cache gist", "gist", id, "error", err)
		}
	}
	return g, nil
}

// Parse reads a gist API document. Files without content are dropped.
func Parse(id string, data []byte) (*Gist, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("gist %s: invalid JSON response", id)
	}

	g := &Gist{ID: id}
	gjson.GetBytes(data, "files").ForEach(func(name, file gjson.Result) bool {
		f := File{
			Filename:  name.String(),
			Language:  strings.ToLower(file.Get("language").String()),
			Content:   file.Get("content").String(),
			RawURL:    file.Get("raw_url").String(),
			Truncated: file.Get("truncated").Bool(),
		}
		if f.Content != "" || f.Truncated {
			g.Files = append(g.Files, f)
		}
		return true
	})

	if len(g.Files) == 0 {
		return nil, fmt.Errorf("gist %s: %w", id, ErrNoFiles)
	}
	return g, nil
}

// Markdown renders every file of g as a fenced block.
func (g *Gist) Markdown() string {
	var b strings.Builder
	for _, f := range g.Files {
		b.WriteString("```")
		b.WriteString(f.Language)
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(f.Content, "\n"))
		b.WriteString("\n```\n")
	}
	return b.String()
}

// Matcher finds gist links of a single owner.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher builds a Matcher for links like https://gist.github.com/<owner>/<id>.
func NewMatcher(owner string) *Matcher {
	return &Matcher{
		re: regexp.MustCompile(`https://gist\.github\.com/` + regexp.QuoteMeta(owner) + `/([a-f0-9]+)`),
	}
}

// IDs returns the distinct gist ids linked from content, in order of first use.
func (m *Matcher) IDs(content string) []string {
	seen := map[string]bool{}
	var ids []string
	for _, match := range m.re.FindAllStringSubmatch(content, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			ids = append(ids, match[1])
		}
	}
	return ids
}

// Inline replaces each link whose gist is in gists with its rendered code.
// Links to gists that are missing from the map are left as they are.
func (m *Matcher) Inline(content string, gists map[string]*Gist) string {
	return m.re.ReplaceAllStringFunc(content, func(link string) string {
		id := m.re.FindStringSubmatch(link)[1]
		g, ok := gists[id]
		if !ok {
			return link
		}
		return g.Markdown()
	})
}
