// Package sources implements the data-source admin commands: listing,
// creating, updating, deleting and testing crawler configurations, plus
// triggering a crawl. All of these require an admin session.
package sources

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/cmd/common"
	"github.com/vietjobs/jobradar-cli/internal/client"
)

// Command returns the sources command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage crawler data sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(listCommand())
	cmd.AddCommand(getCommand())
	cmd.AddCommand(createCommand())
	cmd.AddCommand(updateCommand())
	cmd.AddCommand(deleteCommand())
	cmd.AddCommand(testCommand())
	cmd.AddCommand(crawlCommand())
	return cmd
}

// adminDeps wraps dependency construction with the login hint shared by all
// subcommands here.
func adminDeps() (*common.CommandDeps, error) {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	if _, ok := deps.Session.CurrentToken(); !ok {
		return nil, fmt.Errorf("no admin session; run 'jobradar login' first")
	}
	return deps, nil
}

// describeAdminError maps API failures onto actionable messages.
func describeAdminError(action string, err error) error {
	switch {
	case client.IsUnauthorized(err):
		return fmt.Errorf("session expired; run 'jobradar login' and try again")
	case client.IsNotFound(err):
		return fmt.Errorf("%s: no such data source", action)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
