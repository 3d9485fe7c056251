package codeblock

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/wpzola/models"
	"github.com/dtnitsch/wpzola/pkg/storage"
)

const pythonPost = `+++
title = "Why not just use async Python"

[taxonomies]
categories = ["python"]
+++

Some intro.

[code]
import asyncio
from fastapi import FastAPI

async def main():
    await asyncio.sleep(1)
[/code]

And some output:

[code]
2021-07-08 08:56 server started
[/code]

An unknown snippet:

[code]
x = 1
[/code]
`

func TestFind(t *testing.T) {
	snippets := Find(pythonPost)
	if len(snippets) != 3 {
		t.Fatalf("Find() returned %d snippets, want 3", len(snippets))
	}
	if !strings.HasPrefix(snippets[0].Content, "import asyncio") {
		t.Errorf("first snippet = %q", snippets[0].Content)
	}
	if strings.HasSuffix(snippets[0].Content, "\n") {
		t.Error("snippet content should be right-trimmed")
	}
	for i := 1; i < len(snippets); i++ {
		if snippets[i].Start < snippets[i-1].End {
			t.Errorf("snippet %d overlaps the previous one", i)
		}
	}
	if got := pythonPost[snippets[1].Start:snippets[1].End]; !strings.HasPrefix(got, "[code]") || !strings.HasSuffix(got, "[/code]") {
		t.Errorf("offsets do not cover markers: %q", got)
	}
}

func TestRewrite(t *testing.T) {
	ctx := models.DocumentContext{Filename: "2021-07-08-post.md"}
	out, blocks := Rewrite(pythonPost, ctx)

	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	wantLangs := []models.Language{models.LanguagePython, models.LanguageText, models.LanguageNone}
	for i, want := range wantLangs {
		if blocks[i].Language != want {
			t.Errorf("block %d language = %q, want %q", i, blocks[i].Language, want)
		}
	}

	if !strings.Contains(out, "```python\nimport asyncio") {
		t.Errorf("python block not tagged:\n%s", out)
	}
	if !strings.Contains(out, "```text\n2021-07-08 08:56 server started\n```") {
		t.Errorf("text block not tagged:\n%s", out)
	}
	if !strings.Contains(out, "```\nx = 1\n```") {
		t.Errorf("unknown block should be untagged:\n%s", out)
	}
	if !strings.Contains(out, "Some intro.") || !strings.Contains(out, "An unknown snippet:") {
		t.Error("text outside blocks was lost")
	}
}

func TestRewriteUsesContextFallback(t *testing.T) {
	doc := "[code]\nx = compute()\n[/code]\n"
	out, blocks := Rewrite(doc, models.DocumentContext{Filename: "rust-notes.md"})
	if blocks[0].Language != models.LanguageRust {
		t.Errorf("language = %q, want rust", blocks[0].Language)
	}
	if !strings.HasPrefix(out, "```rust\n") {
		t.Errorf("out = %q", out)
	}
}

func TestRewriteFenceCount(t *testing.T) {
	for n := 0; n <= 5; n++ {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteString("paragraph\n\n[code]\necho hi\n[/code]\n\n")
		}
		out, blocks := Rewrite(b.String(), models.DocumentContext{})

		if len(blocks) != n {
			t.Errorf("n=%d: %d blocks", n, len(blocks))
		}
		if got := strings.Count(out, Fence); got != 2*n {
			t.Errorf("n=%d: %d fences, want %d", n, got, 2*n)
		}
		if strings.Contains(out, "[code]") || strings.Contains(out, "[/code]") {
			t.Errorf("n=%d: legacy markers remain", n)
		}
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	once, _ := Rewrite(pythonPost, models.DocumentContext{})
	twice, blocks := Rewrite(once, models.DocumentContext{})
	if len(blocks) != 0 {
		t.Errorf("second pass found %d blocks", len(blocks))
	}
	if once != twice {
		t.Error("second pass changed the document")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		original  string
		converted string
		tolerance int
		wantCount int
	}{
		{"clean", "a\nb", "```\na\n```", 15, 0},
		{"stray open marker", "", "[CODE]\n```\n```", 15, 1},
		{"stray close marker", "", "```\n```\n[/code]", 15, 1},
		{"unbalanced fences", "", "```\nabc", 15, 1},
		{"line delta exceeded", strings.Repeat("line\n", 30), "short", 15, 1},
		{"line delta disabled", strings.Repeat("line\n", 30), "short", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Validate(tt.original, tt.converted, tt.tolerance)
			if len(issues) != tt.wantCount {
				t.Errorf("Validate() = %v, want %d issue(s)", issues, tt.wantCount)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2021-07-08-why-not-just-use-async-python.md")
	if err := os.WriteFile(path, []byte(pythonPost), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRewriter(&storage.Storage{}, DefaultDelta, nil)
	result, err := r.Process(path)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !result.OK() || !result.Written {
		t.Fatalf("result = %+v", result)
	}
	// The unknown snippet falls back to the python category.
	if result.Blocks[2].Language != models.LanguagePython {
		t.Errorf("fallback language = %q, want python", result.Blocks[2].Language)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "[code]") {
		t.Error("file still contains legacy markers")
	}

	// Running again finds nothing and writes nothing.
	again, err := r.Process(path)
	if err != nil {
		t.Fatalf("second Process() error = %v", err)
	}
	if len(again.Blocks) != 0 || again.Written {
		t.Errorf("second pass = %+v", again)
	}
}

func TestProcessRejectsInvalidRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "post.md")
	// A dangling opening fence makes the fence count odd after rewriting.
	original := "```\n\n[code]\necho hi\n[/code]\n"
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRewriter(&storage.Storage{}, DefaultDelta, nil)
	result, err := r.Process(path)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(result.Issues) == 0 || result.Written {
		t.Fatalf("expected validation issues, got %+v", result)
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Error("invalid rewrite must leave the file untouched")
	}
}

func TestProcessDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "post.md")
	if err := os.WriteFile(path, []byte(pythonPost), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRewriter(&storage.Storage{DryRun: true}, DefaultDelta, nil)
	result, err := r.Process(path)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !result.OK() || result.Written {
		t.Errorf("result = %+v", result)
	}
	data, _ := os.ReadFile(path)
	if string(data) != pythonPost {
		t.Error("dry run modified the file")
	}
}
