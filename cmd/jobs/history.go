package jobs

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/internal/client"
	"github.com/vietjobs/jobradar-cli/internal/progress"
)

func historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <site-name>",
		Short: "Show a site's recent crawl runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return fmt.Errorf("invalid limit value: %w", err)
			}
			if limit <= 0 {
				limit = deps.Config.Poll.HistoryLimit
			}

			runs, err := deps.Client.FetchSiteHistory(cmd.Context(), args[0], limit)
			if err != nil {
				return describeError("fetch site history", err)
			}
			if len(runs) == 0 {
				fmt.Printf("No recorded runs for %s.\n", args[0])
				return nil
			}
			renderHistory(runs)
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "number of runs to show (default from config)")
	return cmd
}

func renderHistory(runs []progress.CrawlJobProgress) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Job", "Status", "Started", "Duration", "Found", "Added", "Duplicates"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.JobID,
			run.Status,
			run.StartedAt.Format(time.DateTime),
			runDuration(run),
			run.TotalJobsFound,
			run.TotalJobsAdded,
			run.TotalDuplicates,
		})
	}
	t.Render()
}

func runDuration(run progress.CrawlJobProgress) string {
	if run.CompletedAt == nil {
		return "-"
	}
	return run.CompletedAt.Sub(run.StartedAt).Round(time.Second).String()
}

func logsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List crawl request logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			filter := client.CrawlLogFilter{}
			if filter.SiteName, err = cmd.Flags().GetString("site"); err != nil {
				return fmt.Errorf("invalid site flag: %w", err)
			}
			if filter.Status, err = cmd.Flags().GetString("status"); err != nil {
				return fmt.Errorf("invalid status flag: %w", err)
			}
			if filter.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
				return fmt.Errorf("invalid limit value: %w", err)
			}
			if filter.Offset, err = cmd.Flags().GetInt("offset"); err != nil {
				return fmt.Errorf("invalid offset value: %w", err)
			}

			page, err := deps.Client.ListCrawlLogs(cmd.Context(), filter)
			if err != nil {
				return describeError("list crawl logs", err)
			}
			if len(page.Logs) == 0 {
				fmt.Println("No crawl logs match.")
				return nil
			}
			renderLogs(page)
			return nil
		},
	}
	cmd.Flags().String("site", "", "filter by site name")
	cmd.Flags().String("status", "", "filter by outcome: success or error")
	cmd.Flags().IntP("limit", "n", 20, "number of logs to show")
	cmd.Flags().Int("offset", 0, "pagination offset")
	return cmd
}

func renderLogs(page *client.CrawlLogPage) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Site", "HTTP", "Duration", "Found", "Stored", "Error"})
	for _, entry := range page.Logs {
		t.AppendRow(table.Row{
			entry.SiteName,
			entry.ResponseStatus,
			fmt.Sprintf("%dms", entry.DurationMS),
			entry.JobsFound,
			entry.JobsStored,
			entry.ErrorMessage,
		})
	}
	t.Render()
	fmt.Printf("Showing %d of %d logs.\n", len(page.Logs), page.Total)
}

func statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the admin dashboard summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			stats, err := deps.Client.FetchDashboardStats(cmd.Context())
			if err != nil {
				return describeError("fetch dashboard stats", err)
			}

			fmt.Printf("Total jobs:        %d\n", stats.TotalJobs)
			fmt.Printf("Added last 24h:    %d\n", stats.RecentJobs)
			fmt.Printf("Pending sync jobs: %d\n", stats.PendingSyncJobs)
			if stats.LastSyncTime != nil {
				fmt.Printf("Last sync:         %s\n", stats.LastSyncTime.Format(time.DateTime))
			}
			if len(stats.JobsBySource) > 0 {
				names := make([]string, 0, len(stats.JobsBySource))
				for source := range stats.JobsBySource {
					names = append(names, source)
				}
				sort.Strings(names)

				t := table.NewWriter()
				t.SetOutputMirror(os.Stdout)
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Source", "Jobs"})
				for _, source := range names {
					t.AppendRow(table.Row{source, stats.JobsBySource[source]})
				}
				t.Render()
			}
			return nil
		},
	}
}
