package db

import (
	"fmt"
	"strings"

	dbpkg "github.com/dtnitsch/wpzola/pkg/db"
	"github.com/dtnitsch/wpzola/pkg/manifest"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-12s %-8s %-8s %-8s %-8s %-8s\n",
		"ID", "Started", "Command", "Dry Run", "Total", "Success", "Skipped", "Failed")
	fmt.Println(strings.Repeat("-", 86))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-12s %-8t %-8d %-8d %-8d %-8d\n",
			r.RunID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Command,
			r.DryRun,
			r.Total,
			r.Succeeded,
			r.Skipped,
			r.Failed,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'wpzola history run <id>' to see details\n")

	return nil
}

// RunAction shows the items of one run, or of the latest run
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	items, err := database.GetRunItems(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d (%s)\n", run.RunID, run.Command)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Started:     %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if run.FinishedAt.Valid {
		fmt.Printf("Finished:    %s\n", run.FinishedAt.Time.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Printf("Finished:    (interrupted)\n")
	}
	fmt.Printf("Dry run:     %t\n", run.DryRun)
	fmt.Printf("Items:       %d total, %d success, %d skipped, %d failed\n",
		run.Total, run.Succeeded, run.Skipped, run.Failed)

	if len(items) == 0 {
		return nil
	}

	fmt.Printf("\n%-8s %-50s %s\n", "Status", "Item", "Detail")
	fmt.Println(strings.Repeat("-", 100))
	onlyFailed := c.Bool("failed")
	for _, it := range items {
		if onlyFailed && it.Status != manifest.StatusError {
			continue
		}
		detail := it.Detail
		if it.ErrorMessage != "" {
			detail = it.ErrorMessage
		}
		fmt.Printf("%-8s %-50s %s\n", it.Status, truncate(it.Item, 50), detail)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
