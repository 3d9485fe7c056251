package wxr

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns a category or tag label into a taxonomy term: lowercase,
// whitespace becomes '-', accents are folded and anything outside
// [a-z0-9_.-] is dropped.
func Slugify(label string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(strings.TrimSpace(label)),
	)
	if err != nil {
		folded = strings.ToLower(strings.TrimSpace(label))
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('-')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SlugifyAll slugifies labels, dropping empty and repeated terms.
func SlugifyAll(labels []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, l := range labels {
		s := Slugify(l)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// fallbackSlug derives a slug for records exported without wp:post_name.
func fallbackSlug(title, postID string) string {
	if s, err := slug.Normalize(title); err == nil && s != "" {
		return s
	}
	if s := strings.Trim(Slugify(title), "-."); s != "" {
		return s
	}
	if postID != "" {
		return "post-" + postID
	}
	return "untitled"
}
