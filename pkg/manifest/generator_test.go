package manifest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/dtnitsch/wpzola/pkg/storage"
)

func TestRunSummaryCounts(t *testing.T) {
	m := New("images", false)
	m.Success("/wp-content/uploads/a.png", "1024 bytes")
	m.Skip("/wp-content/uploads/b.png", "already exists")
	m.Fail("/wp-content/uploads/c.png", errors.New("timeout"))
	m.Fail("post.md", nil, "Unbalanced code fences: 3 backticks")
	m.AddStat("bytes", 1024)
	m.AddStat("bytes", 10)

	if m.Total != 4 || m.Successful != 1 || m.Skipped != 1 || m.Failed != 2 {
		t.Errorf("counts = %+v", m)
	}
	if m.Stats["bytes"] != 1034 {
		t.Errorf("bytes = %d", m.Stats["bytes"])
	}

	err := m.Err()
	if err == nil {
		t.Fatal("Err() = nil, want failures")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("Err() combined %d errors, want 2", got)
	}
	if !strings.Contains(err.Error(), "Unbalanced code fences") {
		t.Errorf("Err() = %v", err)
	}
}

func TestRunSummaryNoFailures(t *testing.T) {
	m := New("gists", true)
	m.Success("post.md", "")
	if err := m.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestRunSummarySave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.yaml")

	m := New("wxr", false)
	m.Success("hello-world", "content/blog/2021-07-08-hello-world.md")

	s := &storage.Storage{}
	if err := m.Save(path, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := s.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"command: wxr", "successful: 1", "item: hello-world"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("summary missing %q:\n%s", want, data)
		}
	}
}
