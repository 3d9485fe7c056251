package wxr

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Python", "python"},
		{"CLI Tools", "cli-tools"},
		{"  Rust  ", "rust"},
		{"Café Olé", "cafe-ole"},
		{"C++ & C#", "c--c"},
		{"node.js", "node.js"},
		{"snake_case", "snake_case"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Slugify(tt.label); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestSlugifyAll(t *testing.T) {
	got := SlugifyAll([]string{"Python", "python", "!!!", "Web Dev"})
	want := []string{"python", "web-dev"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SlugifyAll() = %v, want %v", got, want)
	}
}

func TestFallbackSlug(t *testing.T) {
	if got := fallbackSlug("", "17"); got != "post-17" {
		t.Errorf("fallbackSlug(\"\", 17) = %q, want post-17", got)
	}
	if got := fallbackSlug("", ""); got != "untitled" {
		t.Errorf("fallbackSlug(\"\", \"\") = %q, want untitled", got)
	}
	if got := fallbackSlug("Hello World", "1"); got == "" || got == "post-1" {
		t.Errorf("fallbackSlug(title) = %q, want a slug derived from the title", got)
	}
}
