package images

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/wpzola/pkg/storage"
)

// stubGetter serves canned bodies and fails for URLs listed in fail.
type stubGetter struct {
	bodies    map[string][]byte
	fail      map[string]bool
	requested []string
}

func (g *stubGetter) GetBytes(_ context.Context, url string) ([]byte, error) {
	g.requested = append(g.requested, url)
	if g.fail[url] {
		return nil, errors.New("connection reset by peer")
	}
	if body, ok := g.bodies[url]; ok {
		return body, nil
	}
	return []byte("image-bytes"), nil
}

func TestRefs(t *testing.T) {
	content := `Intro ![diagram](/wp-content/uploads/2022/10/pic.png) and
![](/wp-content/uploads/2023/01/other.jpg)
![external](https://example.org/image.png)
[not an image](/wp-content/uploads/2022/10/file.pdf)`

	refs := Refs(content)
	want := []string{"/wp-content/uploads/2022/10/pic.png", "/wp-content/uploads/2023/01/other.jpg"}
	if strings.Join(refs, ",") != strings.Join(want, ",") {
		t.Errorf("Refs() = %v, want %v", refs, want)
	}
}

func TestPlan(t *testing.T) {
	d := NewDownloader("https://example.com/", "static", &stubGetter{}, &storage.Storage{}, nil)
	target, err := d.Plan("/wp-content/uploads/2022/10/pic.png")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if target.RemoteURL != "https://example.com/wp-content/uploads/2022/10/pic.png" {
		t.Errorf("RemoteURL = %q", target.RemoteURL)
	}
	if !strings.HasSuffix(filepath.ToSlash(target.LocalPath), "wp-content/uploads/2022/10/pic.png") {
		t.Errorf("LocalPath = %q", target.LocalPath)
	}
}

func TestPlanRejectsTraversal(t *testing.T) {
	d := NewDownloader("https://example.com", "static", &stubGetter{}, &storage.Storage{}, nil)

	for _, ref := range []string{
		"/wp-content/uploads/../../../x",
		"/wp-content/uploads/../../../../etc/passwd",
	} {
		if _, err := d.Plan(ref); !errors.Is(err, ErrOutsideStaticDir) {
			t.Errorf("Plan(%q) error = %v, want ErrOutsideStaticDir", ref, err)
		}
	}

	if _, err := d.Plan("/wp-content/uploads/2022/../2023/pic.png"); err != nil {
		t.Errorf("Plan() rejected a ref that stays inside: %v", err)
	}
}

func TestDownloadSkipsTraversal(t *testing.T) {
	root := t.TempDir()
	static := filepath.Join(root, "static")
	getter := &stubGetter{}
	d := NewDownloader("https://example.com", static, getter, &storage.Storage{}, nil)

	refs := []string{"/wp-content/uploads/../../../x", "/wp-content/uploads/2022/10/pic.png"}
	report := d.Download(context.Background(), refs)

	if report.Failed != 1 || report.Downloaded != 1 {
		t.Errorf("report = %+v", report)
	}
	if !errors.Is(report.Outcomes[0].Err, ErrOutsideStaticDir) {
		t.Errorf("outcome error = %v", report.Outcomes[0].Err)
	}
	for _, url := range getter.requested {
		if strings.Contains(url, "..") {
			t.Errorf("rejected ref was fetched: %s", url)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "x")); !os.IsNotExist(err) {
		t.Errorf("file written outside the static directory: %v", err)
	}

	valid, invalid := d.Verify(refs)
	if valid != 1 || len(invalid) != 1 || invalid[0] != refs[0] {
		t.Errorf("Verify() = %d, %v", valid, invalid)
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.md":      "![x](/wp-content/uploads/2022/10/b.png)\n![y](/wp-content/uploads/2022/10/a.png)",
		"b.md":      "![x](/wp-content/uploads/2022/10/b.png)",
		"_index.md": "![skip](/wp-content/uploads/2020/01/index.png)",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	d := NewDownloader("https://example.com", t.TempDir(), &stubGetter{}, &storage.Storage{}, nil)
	refs, err := d.Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := "/wp-content/uploads/2022/10/a.png,/wp-content/uploads/2022/10/b.png"
	if strings.Join(refs, ",") != want {
		t.Errorf("Scan() = %v", refs)
	}
}

func TestDownloadContinuesAfterFailure(t *testing.T) {
	static := t.TempDir()
	getter := &stubGetter{
		bodies: map[string][]byte{
			"https://example.com/wp-content/uploads/2022/10/pic.png": []byte("png-data"),
		},
		fail: map[string]bool{
			"https://example.com/wp-content/uploads/2022/10/broken.png": true,
		},
	}
	d := NewDownloader("https://example.com", static, getter, &storage.Storage{}, nil)

	refs := []string{
		"/wp-content/uploads/2022/10/broken.png",
		"/wp-content/uploads/2022/10/pic.png",
		"/wp-content/uploads/2022/11/later.png",
	}
	report := d.Download(context.Background(), refs)

	if len(getter.requested) != 3 {
		t.Errorf("requested %d images, want 3", len(getter.requested))
	}
	if report.Failed != 1 || report.Downloaded != 2 {
		t.Errorf("report = %+v", report)
	}
	if report.Outcomes[0].Err == nil {
		t.Error("first outcome should carry the error")
	}

	data, err := os.ReadFile(filepath.Join(static, "wp-content", "uploads", "2022", "10", "pic.png"))
	if err != nil || string(data) != "png-data" {
		t.Errorf("pic.png = %q, %v", data, err)
	}

	valid, invalid := d.Verify(refs)
	if valid != 2 || len(invalid) != 1 || invalid[0] != refs[0] {
		t.Errorf("Verify() = %d, %v", valid, invalid)
	}
}

func TestDownloadSkipsExisting(t *testing.T) {
	static := t.TempDir()
	local := filepath.Join(static, "wp-content", "uploads", "2022", "10", "pic.png")
	if err := os.MkdirAll(filepath.Dir(local), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(local, []byte("cached"), 0644); err != nil {
		t.Fatal(err)
	}

	getter := &stubGetter{}
	d := NewDownloader("https://example.com", static, getter, &storage.Storage{}, nil)
	report := d.Download(context.Background(), []string{"/wp-content/uploads/2022/10/pic.png"})

	if len(getter.requested) != 0 {
		t.Errorf("existing image was fetched again")
	}
	if report.Skipped != 1 || report.TotalBytes != 6 || report.Successful() != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestDownloadDryRun(t *testing.T) {
	static := t.TempDir()
	getter := &stubGetter{}
	d := NewDownloader("https://example.com", static, getter, &storage.Storage{DryRun: true}, nil)

	report := d.Download(context.Background(), []string{"/wp-content/uploads/2022/10/pic.png"})
	if report.Planned != 1 || len(getter.requested) != 0 {
		t.Errorf("report = %+v, requested = %v", report, getter.requested)
	}
}
