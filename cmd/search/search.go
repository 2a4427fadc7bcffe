// Package search implements the semantic job-search command. Ranking is
// entirely server-side; this command renders one page of results.
package search

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/cmd/common"
	"github.com/vietjobs/jobradar-cli/internal/client"
	"github.com/vietjobs/jobradar-cli/internal/logger"
)

const (
	// DefaultSearchSize is the number of results returned when no size is
	// specified via command-line flags.
	DefaultSearchSize = 10

	// DefaultTitleWidth caps the title column before truncation.
	DefaultTitleWidth = 48

	// DefaultSuggestionLimit is the number of query completions shown.
	DefaultSuggestionLimit = 5
)

// Command returns the search command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search aggregated job postings",
		Long: `Search runs a semantic query against the aggregated job index.

Examples:
  # Search for golang jobs
  jobradar search -q "golang backend"

  # Restrict to one platform, larger page
  jobradar search -q "data engineer" --source TopCV -s 20
`,
		RunE: runSearch,
	}
	cmd.Flags().StringP("query", "q", "", "query string to search for")
	cmd.Flags().StringSlice("source", nil, "restrict to platforms (repeatable)")
	cmd.Flags().IntP("size", "s", DefaultSearchSize, "number of results to return")
	cmd.Flags().Int("offset", 0, "pagination offset")
	if err := cmd.MarkFlagRequired("query"); err != nil {
		fmt.Fprintf(os.Stderr, "Error marking query flag as required: %v\n", err)
		os.Exit(1)
	}

	cmd.AddCommand(suggestCommand())
	return cmd
}

func runSearch(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()

	query := cmd.Flag("query").Value.String()
	sources, err := cmd.Flags().GetStringSlice("source")
	if err != nil {
		return fmt.Errorf("invalid source flag: %w", err)
	}
	size, err := cmd.Flags().GetInt("size")
	if err != nil {
		return fmt.Errorf("invalid size value: %w", err)
	}
	offset, err := cmd.Flags().GetInt("offset")
	if err != nil {
		return fmt.Errorf("invalid offset value: %w", err)
	}

	resp, err := deps.Client.SearchJobs(cmd.Context(), client.SearchRequest{
		Query:   query,
		Sources: sources,
		Limit:   size,
		Offset:  offset,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	// Fire-and-forget: a tracking failure never blocks results.
	if trackErr := deps.Client.TrackInteraction(cmd.Context(), client.Interaction{
		Action:   "search",
		Metadata: map[string]any{"query": query, "results": resp.Total},
	}); trackErr != nil {
		deps.Logger.Debug("interaction tracking failed", logger.Error(trackErr))
	}

	renderResults(resp)
	return nil
}

func renderResults(resp *client.SearchResponse) {
	if len(resp.Jobs) == 0 {
		fmt.Printf("No results for %q.\n", resp.Query)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: DefaultTitleWidth},
	})
	t.AppendHeader(table.Row{"#", "Title", "Company", "Location", "Source", "Posted"})

	for i, job := range resp.Jobs {
		location := job.Location
		if location == "" {
			location = "N/A"
		}
		t.AppendRow(table.Row{
			resp.Offset + i + 1,
			truncate(job.Title, DefaultTitleWidth),
			job.CompanyName,
			location,
			job.Source,
			job.PostedDate.Format("2006-01-02"),
		})
	}
	t.Render()
	fmt.Printf("Showing %d of %d results for %q.\n", len(resp.Jobs), resp.Total, resp.Query)
}

func suggestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Show query completions for a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			suggestions, err := deps.Client.SearchSuggestions(cmd.Context(), args[0], DefaultSuggestionLimit)
			if err != nil {
				return fmt.Errorf("fetch suggestions: %w", err)
			}
			if len(suggestions) == 0 {
				fmt.Println("No suggestions.")
				return nil
			}
			for _, s := range suggestions {
				fmt.Println(s)
			}
			return nil
		},
	}
	return cmd
}

func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
