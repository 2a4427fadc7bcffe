// Package watch implements the live crawl-job watcher. It polls the progress
// endpoint while the job is active and redraws the step timeline after each
// snapshot, stopping on the first terminal snapshot, on a fetch failure, or
// on interrupt.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/cmd/common"
	"github.com/vietjobs/jobradar-cli/internal/client"
	"github.com/vietjobs/jobradar-cli/internal/logger"
	"github.com/vietjobs/jobradar-cli/internal/poller"
	"github.com/vietjobs/jobradar-cli/internal/progress"
	"github.com/vietjobs/jobradar-cli/internal/watch"
)

const (
	// messageColumnWidth caps the message column so step errors wrap instead
	// of blowing out the terminal.
	messageColumnWidth = 48
)

// Command returns the watch command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <job-id>",
		Short: "Watch a crawl job's progress live",
		Long: `Watch polls a crawl job and redraws its step timeline until the job
reaches a terminal status. Press Ctrl-C to stop watching; the job itself
keeps running server-side.

Examples:
  # Watch a job by id
  jobradar watch 7c9e6679-7425-40de-944b-e07fc1f90ae7

  # Poll faster than the configured cadence
  jobradar watch 7c9e6679 --interval 1s
`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
	cmd.Flags().DurationP("interval", "i", 0, "poll interval (default from config)")
	cmd.Flags().Bool("once", false, "fetch a single snapshot and exit")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()

	jobID := args[0]
	interval, err := cmd.Flags().GetDuration("interval")
	if err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	if interval <= 0 {
		interval = deps.Config.Poll.WatchInterval
	}
	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return fmt.Errorf("invalid once flag: %w", err)
	}

	watcher := &jobWatcher{
		deps:  deps,
		jobID: jobID,
		model: watch.NewModel(),
	}
	if once {
		return watcher.fetchOnce(cmd)
	}
	return watcher.run(cmd, interval)
}

// jobWatcher ties the polling controller to the render model for one job.
type jobWatcher struct {
	deps  *common.CommandDeps
	jobID string
	model *watch.Model
	done  chan struct{}
}

func (w *jobWatcher) fetchOnce(cmd *cobra.Command) error {
	w.model.BeginFetch()
	snap, err := w.deps.Client.FetchJobProgress(cmd.Context(), w.jobID)
	if err != nil {
		return describeFetchError(w.jobID, err)
	}
	w.model.ApplySnapshot(snap)
	w.render()
	return nil
}

func (w *jobWatcher) run(cmd *cobra.Command, interval time.Duration) error {
	w.done = make(chan struct{})

	controller, err := poller.New(poller.Config[*progress.CrawlJobProgress]{
		Fetch:    w.fetch,
		Active:   (*progress.CrawlJobProgress).Active,
		Interval: interval,
		OnResult: w.onSnapshot,
		OnError:  w.onFailure,
		Logger:   w.deps.Logger.With(logger.String("job_id", w.jobID)),
	})
	if err != nil {
		return fmt.Errorf("create poller: %w", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	w.model.BeginFetch()
	controller.Start()

	select {
	case <-w.done:
		controller.Close()
	case <-interrupt:
		fmt.Fprintln(os.Stderr, "\nStopped watching; the job keeps running server-side.")
		controller.Close()
		return nil
	}

	state := w.model.State()
	if state.Err != nil {
		return describeFetchError(w.jobID, state.Err)
	}
	return nil
}

func (w *jobWatcher) fetch(ctx context.Context) (*progress.CrawlJobProgress, error) {
	w.model.BeginFetch()
	return w.deps.Client.FetchJobProgress(ctx, w.jobID)
}

func (w *jobWatcher) onSnapshot(snap *progress.CrawlJobProgress) {
	w.model.ApplySnapshot(snap)
	w.render()
	if !snap.Active() {
		close(w.done)
	}
}

func (w *jobWatcher) onFailure(err error) {
	w.model.ApplyError(err)
	close(w.done)
}

// render redraws the whole timeline. Stale data annotated with the refresh
// phase beats a blank screen.
func (w *jobWatcher) render() {
	state := w.model.State()
	if state.Snapshot == nil {
		return
	}
	snap := state.Snapshot

	fmt.Printf("\nJob %s  site=%s  status=%s  overall=%d%%  (updated %s)\n",
		snap.JobID, snap.SiteName, snap.Status, state.OverallPercent,
		state.LastUpdated.Format(time.TimeOnly))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: messageColumnWidth},
	})
	t.AppendHeader(table.Row{"", "Step", "Status", "Progress", "Message"})

	for i, step := range snap.Steps {
		marker := " "
		if i == state.CurrentStepIndex {
			marker = ">"
		}
		t.AppendRow(table.Row{marker, step.Name, statusCell(step.Status), progressCell(step), messageCell(step)})
	}
	t.Render()

	if snap.Status == progress.StatusCompleted {
		fmt.Printf("Done: %d found, %d added, %d duplicates.\n",
			snap.TotalJobsFound, snap.TotalJobsAdded, snap.TotalDuplicates)
	}
	if len(snap.Errors) > 0 {
		fmt.Printf("Errors: %s\n", strings.Join(snap.Errors, "; "))
	}
}

func statusCell(status progress.StepStatus) string {
	switch status {
	case progress.StatusCompleted:
		return text.FgGreen.Sprint(status)
	case progress.StatusFailed:
		return text.FgRed.Sprint(status)
	case progress.StatusRunning:
		return text.FgCyan.Sprint(status)
	default:
		return string(status)
	}
}

func progressCell(step progress.CrawlStep) string {
	details, err := progress.DecodeDetails(step.Details)
	if err == nil && details.TotalPages > 0 {
		return fmt.Sprintf("%d%% (page %d/%d)", step.ProgressPercentage, details.CurrentPage, details.TotalPages)
	}
	return fmt.Sprintf("%d%%", step.ProgressPercentage)
}

func messageCell(step progress.CrawlStep) string {
	if step.Error != "" {
		return text.FgRed.Sprint(step.Error)
	}
	return step.Message
}

// describeFetchError turns the failure into actionable console output.
func describeFetchError(jobID string, err error) error {
	switch {
	case client.IsNotFound(err):
		return fmt.Errorf("job %s not found; it may have expired from the progress store", jobID)
	case client.IsUnauthorized(err):
		return fmt.Errorf("session expired; run 'jobradar login' and try again")
	default:
		return fmt.Errorf("fetch job progress: %w", err)
	}
}
