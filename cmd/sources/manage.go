package sources

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/internal/client"
	"github.com/vietjobs/jobradar-cli/internal/logger"
)

func createCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <site-name>",
		Short: "Create a data source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := adminDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			siteURL, err := cmd.Flags().GetString("url")
			if err != nil {
				return fmt.Errorf("invalid url flag: %w", err)
			}
			active, err := cmd.Flags().GetBool("active")
			if err != nil {
				return fmt.Errorf("invalid active flag: %w", err)
			}
			crawlerConfig, err := parseConfigFlag(cmd)
			if err != nil {
				return err
			}

			source, err := deps.Client.CreateDataSource(cmd.Context(), client.CreateDataSourceRequest{
				SiteName: args[0],
				SiteURL:  siteURL,
				Config:   crawlerConfig,
				IsActive: active,
			})
			if err != nil {
				return describeAdminError("create data source", err)
			}

			deps.Logger.Info("data source created",
				logger.String("site_name", source.SiteName),
				logger.String("id", source.ID))
			fmt.Printf("Created data source %s.\n", source.SiteName)
			return nil
		},
	}
	cmd.Flags().String("url", "", "site URL to crawl")
	cmd.Flags().Bool("active", true, "enable the source immediately")
	cmd.Flags().String("config", "", "crawler config as a JSON object")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func updateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <site-name>",
		Short: "Update a data source; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := adminDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			// Only flags the user set make it into the partial update.
			var req client.UpdateDataSourceRequest
			if cmd.Flags().Changed("url") {
				siteURL, flagErr := cmd.Flags().GetString("url")
				if flagErr != nil {
					return fmt.Errorf("invalid url flag: %w", flagErr)
				}
				req.SiteURL = &siteURL
			}
			if cmd.Flags().Changed("active") {
				active, flagErr := cmd.Flags().GetBool("active")
				if flagErr != nil {
					return fmt.Errorf("invalid active flag: %w", flagErr)
				}
				req.IsActive = &active
			}
			if cmd.Flags().Changed("config") {
				crawlerConfig, flagErr := parseConfigFlag(cmd)
				if flagErr != nil {
					return flagErr
				}
				req.Config = crawlerConfig
			}

			source, err := deps.Client.UpdateDataSource(cmd.Context(), args[0], req)
			if err != nil {
				return describeAdminError("update data source", err)
			}
			fmt.Printf("Updated data source %s.\n", source.SiteName)
			return nil
		},
	}
	cmd.Flags().String("url", "", "site URL to crawl")
	cmd.Flags().Bool("active", true, "enable or disable the source")
	cmd.Flags().String("config", "", "crawler config as a JSON object")
	return cmd
}

func deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <site-name>",
		Short: "Delete a data source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := adminDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			if err := deps.Client.DeleteDataSource(cmd.Context(), args[0]); err != nil {
				return describeAdminError("delete data source", err)
			}
			fmt.Printf("Deleted data source %s.\n", args[0])
			return nil
		},
	}
}

func testCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test <site-name>",
		Short: "Check a data source's site is reachable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := adminDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			result, err := deps.Client.TestDataSource(cmd.Context(), args[0])
			if err != nil {
				return describeAdminError("test data source", err)
			}

			if result.IsAvailable {
				fmt.Printf("%s is reachable (HTTP %d, %dms).\n",
					result.SiteURL, result.StatusCode, result.ResponseTimeMS)
				return nil
			}
			return fmt.Errorf("%s is unreachable: %s", result.SiteURL, result.Error)
		},
	}
}

func parseConfigFlag(cmd *cobra.Command) (map[string]any, error) {
	raw, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("--config must be a JSON object: %w", err)
	}
	return parsed, nil
}
