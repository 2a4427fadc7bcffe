package jobs

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/internal/logger"
	"github.com/vietjobs/jobradar-cli/internal/poller"
	"github.com/vietjobs/jobradar-cli/internal/progress"
)

func statusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <site-name>",
		Short: "Show a site's current crawl activity",
		Long: `Status shows whether a site has running crawl jobs. With --follow the
view refreshes at the slower browse cadence until all jobs finish.`,
		Args: cobra.ExactArgs(1),
		RunE: runStatus,
	}
	cmd.Flags().BoolP("follow", "f", false, "keep refreshing while jobs are running")
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	deps, err := newDeps()
	if err != nil {
		return err
	}
	defer func() { _ = deps.Logger.Sync() }()

	siteName := args[0]
	follow, err := cmd.Flags().GetBool("follow")
	if err != nil {
		return fmt.Errorf("invalid follow flag: %w", err)
	}

	if !follow {
		status, fetchErr := deps.Client.FetchSiteStatus(cmd.Context(), siteName)
		if fetchErr != nil {
			return describeError("fetch site status", fetchErr)
		}
		renderSiteStatus(status)
		return nil
	}

	done := make(chan struct{})
	var lastErr error

	controller, err := poller.New(poller.Config[*progress.SiteStatus]{
		Fetch: func(ctx context.Context) (*progress.SiteStatus, error) {
			return deps.Client.FetchSiteStatus(ctx, siteName)
		},
		Active: func(status *progress.SiteStatus) bool {
			return status.HasRunningJob
		},
		Interval: deps.Config.Poll.BrowseInterval,
		OnResult: func(status *progress.SiteStatus) {
			renderSiteStatus(status)
			if !status.HasRunningJob {
				close(done)
			}
		},
		OnError: func(fetchErr error) {
			lastErr = fetchErr
			close(done)
		},
		Logger: deps.Logger.With(logger.String("site_name", siteName)),
	})
	if err != nil {
		return fmt.Errorf("create poller: %w", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	controller.Start()
	select {
	case <-done:
		controller.Close()
	case <-interrupt:
		controller.Close()
		return nil
	}

	if lastErr != nil {
		return describeError("fetch site status", lastErr)
	}
	return nil
}

func renderSiteStatus(status *progress.SiteStatus) {
	fmt.Printf("\n%s: %d active job(s), %d recent run(s)\n",
		status.SiteName, status.ActiveJobsCount, status.RecentHistoryCount)

	if len(status.ActiveJobs) > 0 {
		renderJobTable(status.ActiveJobs)
	}
	if status.LastCompleted != nil {
		last := status.LastCompleted
		finished := "unknown"
		if last.CompletedAt != nil {
			finished = last.CompletedAt.Format(time.DateTime)
		}
		fmt.Printf("Last completed: job %s (%s) at %s, %d jobs added.\n",
			last.JobID, last.Status, finished, last.TotalJobsAdded)
	}
}

func renderJobTable(runs []progress.CrawlJobProgress) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Job", "Status", "Progress", "Found", "Added", "Started"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.JobID,
			run.Status,
			fmt.Sprintf("%d%%", progress.OverallProgressPercent(run.Steps)),
			run.TotalJobsFound,
			run.TotalJobsAdded,
			run.StartedAt.Format(time.DateTime),
		})
	}
	t.Render()
}
