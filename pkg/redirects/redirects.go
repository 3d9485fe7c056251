// Package redirects maps WordPress permalinks to their new Zola paths.
package redirects

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dtnitsch/wpzola/pkg/storage"
)

// DefaultSection is the Zola section posts are migrated into.
const DefaultSection = "blog"

// NewPath returns the site-relative path of a migrated post.
func NewPath(section, date, slug string) string {
	name := slug
	if date != "" {
		name = date + "-" + slug
	}
	return "/" + strings.Trim(section, "/") + "/" + name + "/"
}

// Map is an append-only old URL to new path table.
type Map struct {
	section string
	entries map[string]string
}

func New(section string) *Map {
	if section == "" {
		section = DefaultSection
	}
	return &Map{section: section, entries: map[string]string{}}
}

// Add records a redirect for a post and returns its new path. Records
// without a link or slug produce no entry.
func (m *Map) Add(oldURL, date, slug string) (string, bool) {
	oldURL = strings.TrimRight(strings.TrimSpace(oldURL), "/")
	if oldURL == "" || slug == "" {
		return "", false
	}
	path := NewPath(m.section, date, slug)
	m.entries[oldURL] = path
	return path, true
}

// Lookup returns the new path for oldURL.
func (m *Map) Lookup(oldURL string) (string, bool) {
	path, ok := m.entries[strings.TrimRight(oldURL, "/")]
	return path, ok
}

func (m *Map) Len() int {
	return len(m.entries)
}

// Keys returns the old URLs in sorted order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Write stores the map as an indented JSON object with sorted keys.
func (m *Map) Write(path string, s *storage.Storage) error {
	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling redirects: %w", err)
	}
	if err := s.SaveFile(path, append(data, '\n')); err != nil {
		return fmt.Errorf("error saving redirects: %w", err)
	}
	return nil
}
