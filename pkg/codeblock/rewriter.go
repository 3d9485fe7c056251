package codeblock

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dtnitsch/wpzola/models"
	"github.com/dtnitsch/wpzola/pkg/frontmatter"
	"github.com/dtnitsch/wpzola/pkg/storage"
)

// Result describes what happened to one document.
type Result struct {
	Path      string
	Blocks    []Block
	Issues    []string
	Converted string
	Written   bool
}

// OK reports whether the document had blocks and passed validation.
func (r Result) OK() bool {
	return len(r.Blocks) > 0 && len(r.Issues) == 0
}

// Rewriter converts legacy blocks in files on disk.
type Rewriter struct {
	store        *storage.Storage
	logger       *slog.Logger
	maxLineDelta int
}

// NewRewriter creates a Rewriter. Writes go through store, so a dry-run
// store leaves every file untouched.
func NewRewriter(store *storage.Storage, maxLineDelta int, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rewriter{store: store, logger: logger, maxLineDelta: maxLineDelta}
}

// Process rewrites a single file. Validation problems are reported in the
// Result and leave the file as it was; only I/O failures return an error.
func (r *Rewriter) Process(path string) (Result, error) {
	result := Result{Path: path}

	data, err := r.store.ReadFile(path)
	if err != nil {
		return result, err
	}
	original := string(data)

	ctx := models.DocumentContext{Filename: filepath.Base(path)}
	meta, _, err := frontmatter.Parse(data)
	if err != nil {
		r.logger.Debug("front matter unreadable, using file name only", "path", path, "error", err)
	} else {
		ctx.Categories = meta.AllCategories()
		ctx.Tags = meta.AllTags()
	}

	converted, blocks := Rewrite(original, ctx)
	result.Blocks = blocks
	result.Converted = converted
	if len(blocks) == 0 {
		r.logger.Debug("no legacy code blocks", "path", path)
		return result, nil
	}

	for _, b := range blocks {
		r.logger.Debug("block detected", "path", path, "offset", b.Snippet.Start, "language", b.Language.String())
	}

	result.Issues = Validate(original, converted, r.maxLineDelta)
	if len(result.Issues) > 0 {
		r.logger.Warn("validation failed, file left unchanged", "path", path, "issues", result.Issues)
		return result, nil
	}

	if err := r.store.SaveFile(path, []byte(converted)); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", path, err)
	}
	result.Written = !r.store.DryRun
	return result, nil
}
