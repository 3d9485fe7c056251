// Package zola scaffolds the parts of a Zola site that migrated posts rely on.
package zola

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dtnitsch/wpzola/pkg/frontmatter"
	"github.com/dtnitsch/wpzola/pkg/storage"
)

// SectionIndex is the preamble of a section's _index.md.
type SectionIndex struct {
	Title      string `toml:"title"`
	SortBy     string `toml:"sort_by"`
	PaginateBy int    `toml:"paginate_by"`
	Template   string `toml:"template"`
}

// DefaultSectionIndex is the blog section used for migrated posts.
var DefaultSectionIndex = SectionIndex{
	Title:      "Blog",
	SortBy:     "date",
	PaginateBy: 10,
	Template:   "section.html",
}

// Taxonomy is one [[taxonomies]] entry of a Zola config.
type Taxonomy struct {
	Name string `toml:"name"`
	Feed bool   `toml:"feed"`
}

// DefaultTaxonomies are the taxonomies migrated posts are tagged with.
var DefaultTaxonomies = []Taxonomy{
	{Name: "categories", Feed: true},
	{Name: "tags", Feed: true},
}

// WriteSectionIndex writes dir/_index.md unless one already exists.
// It reports whether a file was written.
func WriteSectionIndex(dir string, index SectionIndex, s *storage.Storage) (bool, error) {
	path := filepath.Join(dir, "_index.md")
	if s.HasFile(path) {
		return false, nil
	}
	data, err := frontmatter.RenderValue(index)
	if err != nil {
		return false, err
	}
	if err := s.SaveFile(path, data); err != nil {
		return false, fmt.Errorf("error writing section index: %w", err)
	}
	return true, nil
}

// HasTaxonomies reports whether a Zola config already declares taxonomies.
// Configs that do not parse fall back to a textual check.
func HasTaxonomies(config []byte) bool {
	var doc map[string]any
	if err := toml.Unmarshal(config, &doc); err == nil {
		_, ok := doc["taxonomies"]
		return ok
	}
	text := string(config)
	return strings.Contains(text, "[taxonomies]") ||
		strings.Contains(text, "[[taxonomies]]") ||
		strings.Contains(text, "taxonomies =")
}

// EnsureTaxonomies appends taxonomies to the config at path when it has
// none. It reports whether the config was changed.
func EnsureTaxonomies(path string, taxonomies []Taxonomy, s *storage.Storage) (bool, error) {
	config, err := s.ReadFile(path)
	if err != nil {
		return false, err
	}
	if HasTaxonomies(config) {
		return false, nil
	}

	block, err := toml.Marshal(struct {
		Taxonomies []Taxonomy `toml:"taxonomies"`
	}{taxonomies})
	if err != nil {
		return false, fmt.Errorf("error encoding taxonomies: %w", err)
	}

	var buf strings.Builder
	if len(config) > 0 && !strings.HasSuffix(string(config), "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(block)

	if err := s.AppendFile(path, []byte(buf.String())); err != nil {
		return false, fmt.Errorf("error updating %s: %w", path, err)
	}
	return true, nil
}
