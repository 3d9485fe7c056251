package wxr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/dtnitsch/wpzola/models"
	"github.com/dtnitsch/wpzola/pkg/redirects"
	"github.com/dtnitsch/wpzola/pkg/storage"
)

// PostOutcome records what happened to one record.
type PostOutcome struct {
	Title   string
	Link    string
	Path    string
	NewPath string
	Skipped bool
	Reason  string
	Err     error
}

// Report summarises a migration.
type Report struct {
	Posts       int
	Migrated    int
	Skipped     int
	Failed      int
	Attachments []string
	Outcomes    []PostOutcome
	Redirects   *redirects.Map
}

// Err joins every per-post failure.
func (r *Report) Err() error {
	var err error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", o.Link, o.Err))
		}
	}
	return err
}

// Migrator writes converted posts into a content directory.
type Migrator struct {
	conv      *Converter
	store     *storage.Storage
	outputDir string
	section   string
	logger    *slog.Logger
}

func NewMigrator(conv *Converter, store *storage.Storage, outputDir string, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{
		conv:      conv,
		store:     store,
		outputDir: outputDir,
		section:   filepath.Base(outputDir),
		logger:    logger,
	}
}

// Migrate converts every post record. Attachments are only collected.
// A failing post is reported and the rest still run; a cancelled ctx stops
// the loop.
func (m *Migrator) Migrate(ctx context.Context, records []models.PostRecord) (*Report, error) {
	section := m.section
	if section == "." || section == string(filepath.Separator) || section == "" {
		section = redirects.DefaultSection
	}
	report := &Report{Redirects: redirects.New(section)}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		switch rec.PostType {
		case models.PostTypeAttachment:
			if rec.AttachmentURL != "" {
				report.Attachments = append(report.Attachments, rec.AttachmentURL)
			}
			continue
		case models.PostTypePost:
		default:
			continue
		}

		report.Posts++
		outcome := m.migrate(rec, report.Redirects)
		switch {
		case outcome.Err != nil:
			report.Failed++
			m.logger.Error("failed to migrate post", "title", rec.Title, "error", outcome.Err)
		case outcome.Skipped:
			report.Skipped++
			m.logger.Info("skipping post", "title", rec.Title, "status", rec.Status)
		default:
			report.Migrated++
			m.logger.Debug("migrated post", "path", outcome.Path, "new_path", outcome.NewPath)
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	m.logger.Info("migration finished",
		"posts", report.Posts,
		"migrated", report.Migrated,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"attachments", len(report.Attachments),
	)
	return report, nil
}

func (m *Migrator) migrate(rec models.PostRecord, redirectMap *redirects.Map) PostOutcome {
	outcome := PostOutcome{Title: rec.Title, Link: rec.Link}

	doc, err := m.conv.Convert(rec)
	if errors.Is(err, ErrNotPublished) {
		outcome.Skipped = true
		outcome.Reason = fmt.Sprintf("status %q", rec.Status)
		return outcome
	}
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Path = filepath.Join(m.outputDir, doc.Filename)
	if err := m.store.SaveFile(outcome.Path, doc.Content); err != nil {
		outcome.Err = err
		return outcome
	}

	if path, ok := redirectMap.Add(rec.Link, doc.Date, doc.Slug); ok {
		outcome.NewPath = path
	} else {
		m.logger.Warn("post has no link, no redirect recorded", "slug", doc.Slug)
	}
	return outcome
}
