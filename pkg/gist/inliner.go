package gist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/wpzola/pkg/storage"
)

// FileResult describes the gists handled in one post.
type FileResult struct {
	Path    string
	IDs     []string
	Inlined []string
	Failed  map[string]error
	Written bool
}

// Inliner rewrites posts so that gist links become inline code.
type Inliner struct {
	client  *Client
	matcher *Matcher
	store   *storage.Storage
	logger  *slog.Logger
}

func NewInliner(client *Client, matcher *Matcher, store *storage.Storage, logger *slog.Logger) *Inliner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inliner{client: client, matcher: matcher, store: store, logger: logger}
}

// Process inlines the gists of one post. A gist that cannot be fetched is
// recorded in Failed and its link is kept; only file I/O returns an error.
func (in *Inliner) Process(ctx context.Context, path string) (FileResult, error) {
	result := FileResult{Path: path, Failed: map[string]error{}}

	data, err := in.store.ReadFile(path)
	if err != nil {
		return result, err
	}
	content := string(data)

	result.IDs = in.matcher.IDs(content)
	if len(result.IDs) == 0 {
		in.logger.Debug("no gist links", "path", path)
		return result, nil
	}

	gists := make(map[string]*Gist, len(result.IDs))
	for _, id := range result.IDs {
		g, err := in.client.Fetch(ctx, id)
		if err != nil {
			result.Failed[id] = err
			in.logger.Warn("gist not inlined", "path", path, "gist", id, "error", err)
			continue
		}
		gists[id] = g
		result.Inlined = append(result.Inlined, id)
		for _, f := range g.Files {
			in.logger.Info("inlined gist file", "path", path, "gist", id, "file", f.Filename, "language", f.Language)
		}
	}

	updated := in.matcher.Inline(content, gists)
	if updated == content {
		return result, nil
	}
	if err := in.store.SaveFile(path, []byte(updated)); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", path, err)
	}
	result.Written = !in.store.DryRun
	return result, nil
}
