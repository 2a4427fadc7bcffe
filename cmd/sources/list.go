package sources

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/internal/client"
)

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured data sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := adminDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			sources, err := deps.Client.ListDataSources(cmd.Context())
			if err != nil {
				return describeAdminError("list data sources", err)
			}
			renderSourceTable(sources)
			return nil
		},
	}
}

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <site-name>",
		Short: "Show one data source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := adminDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			source, err := deps.Client.GetDataSource(cmd.Context(), args[0])
			if err != nil {
				return describeAdminError("get data source", err)
			}
			renderSourceTable([]client.DataSource{*source})
			return nil
		},
	}
}

func renderSourceTable(sources []client.DataSource) {
	if len(sources) == 0 {
		fmt.Println("No data sources configured.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Site", "URL", "Active", "Updated"})
	for _, source := range sources {
		t.AppendRow(table.Row{
			source.SiteName,
			source.SiteURL,
			source.IsActive,
			source.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	t.Render()
}
