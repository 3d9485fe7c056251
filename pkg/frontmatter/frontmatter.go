// Package frontmatter reads and writes the TOML preamble of Zola content files.
package frontmatter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
)

const delimiter = "+++"

// Meta is the subset of a document's front matter used as detection context.
type Meta struct {
	Title      string     `toml:"title" yaml:"title"`
	Slug       string     `toml:"slug" yaml:"slug"`
	Categories []string   `toml:"categories" yaml:"categories"`
	Tags       []string   `toml:"tags" yaml:"tags"`
	Taxonomies Taxonomies `toml:"taxonomies" yaml:"taxonomies"`
}

// AllCategories merges top-level and taxonomy categories.
func (m Meta) AllCategories() []string {
	return append(append([]string(nil), m.Categories...), m.Taxonomies.Categories...)
}

// AllTags merges top-level and taxonomy tags.
func (m Meta) AllTags() []string {
	return append(append([]string(nil), m.Tags...), m.Taxonomies.Tags...)
}

// Taxonomies is the nested [taxonomies] table.
type Taxonomies struct {
	Categories []string `toml:"categories,omitempty" yaml:"categories"`
	Tags       []string `toml:"tags,omitempty" yaml:"tags"`
}

// Parse splits source into front matter and body. A document without a
// preamble yields a zero Meta and the whole source as body.
func Parse(source []byte) (Meta, []byte, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Meta{}, source, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

// Page is the preamble written for a migrated post.
type Page struct {
	Title       string            `toml:"title"`
	Date        any               `toml:"date,omitempty"` // toml.LocalDate or nil
	Slug        string            `toml:"slug"`
	Description string            `toml:"description,omitempty,multiline"`
	Taxonomies  *Taxonomies       `toml:"taxonomies,omitempty"`
	Extra       map[string]string `toml:"extra,omitempty"`
}

// SetDate stores t as a TOML local date; the zero time clears it.
func (p *Page) SetDate(t time.Time) {
	if t.IsZero() {
		p.Date = nil
		return
	}
	p.Date = toml.LocalDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// SetTaxonomies attaches the taxonomy table only when it has content.
func (p *Page) SetTaxonomies(categories, tags []string) {
	if len(categories) == 0 && len(tags) == 0 {
		p.Taxonomies = nil
		return
	}
	p.Taxonomies = &Taxonomies{Categories: categories, Tags: tags}
}

// Render returns the delimited preamble, ready to be followed by the body.
func Render(p Page) ([]byte, error) {
	return RenderValue(p)
}

// RenderValue marshals any TOML-encodable value between +++ delimiters.
func RenderValue(v any) ([]byte, error) {
	data, err := toml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("render frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(data)
	if !bytes.HasSuffix(data, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString(delimiter + "\n")
	return buf.Bytes(), nil
}
