package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(filepath.Join(t.TempDir(), "gists"), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error = %v", err)
	}

	url := "https://api.github.com/gists/abc123"
	if _, ok := c.Get(url); ok {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Set(url, []byte(`{"files":{}}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok := c.Get(url)
	if !ok || string(data) != `{"files":{}}` {
		t.Errorf("Get() = %q, %v", data, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCache(dir, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	url := "https://api.github.com/gists/old"
	if err := c.Set(url, []byte("stale")); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-2 * time.Minute)
	if err := os.Chtimes(filepath.Join(dir, c.key(url)), old, old); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Get(url); ok {
		t.Error("expired entry reported as a hit")
	}
}
