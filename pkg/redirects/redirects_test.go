package redirects

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/wpzola/pkg/storage"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		oldURL   string
		date     string
		slug     string
		wantPath string
		wantOK   bool
	}{
		{"dated post", "https://caricio.com/hello-world/", "2021-07-08", "hello-world", "/blog/2021-07-08-hello-world/", true},
		{"undated post", "https://caricio.com/about/", "", "about", "/blog/about/", true},
		{"missing slug", "https://caricio.com/?p=12", "2021-07-08", "", "", false},
		{"missing link", "", "2021-07-08", "orphan", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("")
			path, ok := m.Add(tt.oldURL, tt.date, tt.slug)
			if ok != tt.wantOK || path != tt.wantPath {
				t.Errorf("Add() = %q, %v; want %q, %v", path, ok, tt.wantPath, tt.wantOK)
			}
		})
	}
}

func TestTrailingSlashStripped(t *testing.T) {
	m := New("blog")
	m.Add("https://caricio.com/hello-world/", "2021-07-08", "hello-world")

	keys := m.Keys()
	if len(keys) != 1 || keys[0] != "https://caricio.com/hello-world" {
		t.Errorf("Keys() = %v", keys)
	}
	if path, ok := m.Lookup("https://caricio.com/hello-world/"); !ok || path != "/blog/2021-07-08-hello-world/" {
		t.Errorf("Lookup() = %q, %v", path, ok)
	}
}

func TestWrite(t *testing.T) {
	m := New("blog")
	m.Add("https://caricio.com/b/", "2022-01-01", "b")
	m.Add("https://caricio.com/a/", "2021-01-01", "a")

	path := filepath.Join(t.TempDir(), "redirects.json")
	s := &storage.Storage{}
	if err := m.Write(path, s); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := s.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["https://caricio.com/a"] != "/blog/2021-01-01-a/" || len(got) != 2 {
		t.Errorf("redirects = %v", got)
	}
}
