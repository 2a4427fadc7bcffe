package sources

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietjobs/jobradar-cli/internal/logger"
)

func crawlCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "crawl <site-name>",
		Short: "Trigger a crawl for a data source",
		Long: `Crawl asks the backend to start a crawl job for the given source and
prints the job id. Follow it live with 'jobradar watch <job-id>'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := adminDeps()
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			resp, err := deps.Client.TriggerCrawl(cmd.Context(), args[0])
			if err != nil {
				return describeAdminError("trigger crawl", err)
			}

			deps.Logger.Info("crawl triggered",
				logger.String("site_name", args[0]),
				logger.String("job_id", resp.JobID))
			fmt.Printf("%s\nFollow it with: jobradar watch %s\n", resp.Message, resp.JobID)
			return nil
		},
	}
}
