// Package jobs implements the crawl-activity commands: per-site status,
// recent job history, crawl logs and the admin dashboard summary.
package jobs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/cmd/common"
	"github.com/vietjobs/jobradar-cli/internal/client"
)

// Command returns the jobs command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect crawl activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(statusCommand())
	cmd.AddCommand(historyCommand())
	cmd.AddCommand(logsCommand())
	cmd.AddCommand(statsCommand())
	return cmd
}

func newDeps() (*common.CommandDeps, error) {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return deps, nil
}

func describeError(action string, err error) error {
	switch {
	case client.IsUnauthorized(err):
		return fmt.Errorf("session expired; run 'jobradar login' and try again")
	case client.IsNotFound(err):
		return fmt.Errorf("%s: not found", action)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
