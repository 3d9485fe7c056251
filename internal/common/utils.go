package common

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wpzola/pkg/db"
	"github.com/dtnitsch/wpzola/pkg/manifest"
	"github.com/dtnitsch/wpzola/pkg/storage"
)

// Finish prints the run summary, saves it to --summary-file, records it in
// the run ledger and turns failed items into a non-zero exit.
func Finish(c *cli.Context, summary *manifest.RunSummary, logger *slog.Logger) error {
	data, err := summary.YAML()
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	if path := c.String("summary-file"); path != "" {
		// Written even on dry runs.
		if err := summary.Save(path, &storage.Storage{}); err != nil {
			logger.Warn("failed to save summary", "path", path, "error", err)
		}
	}

	if !c.Bool("no-history") {
		if err := RecordRun(summary); err != nil {
			logger.Warn("failed to record run history", "error", err)
		}
	}

	if err := summary.Err(); err != nil {
		logger.Error("run finished with failures", "failed", summary.Failed, "error", err)
		return cli.Exit(fmt.Sprintf("%s: %d of %d items failed", summary.Command, summary.Failed, summary.Total), 1)
	}
	return nil
}

// RecordRun stores a summary and its items in the run ledger.
func RecordRun(summary *manifest.RunSummary) error {
	database, err := db.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	return recordRun(database, summary)
}

func recordRun(database *db.DB, summary *manifest.RunSummary) error {
	runID, err := database.StartRun(summary.Command, summary.DryRun)
	if err != nil {
		return err
	}
	for _, r := range summary.Results {
		detail := r.Detail
		if detail == "" && len(r.Issues) > 0 {
			detail = fmt.Sprintf("%v", r.Issues)
		}
		if err := database.RecordItem(runID, r.Item, r.Status, detail, r.ErrorMessage); err != nil {
			return err
		}
	}
	return database.FinishRun(runID, db.RunCounts{
		Total:     summary.Total,
		Succeeded: summary.Successful,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
	})
}
