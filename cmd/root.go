// Package cmd implements the command-line interface for JobRadar.
// It provides the root command and subcommands for watching crawl jobs,
// searching postings and administering data sources.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vietjobs/jobradar-cli/cmd/jobs"
	"github.com/vietjobs/jobradar-cli/cmd/login"
	"github.com/vietjobs/jobradar-cli/cmd/search"
	cmdsources "github.com/vietjobs/jobradar-cli/cmd/sources"
	"github.com/vietjobs/jobradar-cli/cmd/watch"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug logging for all commands.
	Debug bool

	rootCmd = &cobra.Command{
		Use:   "jobradar",
		Short: "Console for the JobRadar job aggregation backend",
		Long: `JobRadar aggregates job postings from Vietnamese job boards.
This console watches crawl jobs live, searches the aggregated index and
manages the crawler's data sources.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment variables are available to viper.
	_ = godotenv.Load()

	// Parse flags early to get the debug flag before commands build loggers.
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or ~/.config/jobradar/config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("jobradar version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(watch.Command())
	rootCmd.AddCommand(search.Command())
	rootCmd.AddCommand(cmdsources.Command())
	rootCmd.AddCommand(jobs.Command())
	rootCmd.AddCommand(login.Command())
	rootCmd.AddCommand(login.LogoutCommand())
}

// initConfig reads the config file and environment variables into viper.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if configDir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(configDir + "/jobradar")
		}
	}

	// Environment variables take precedence over config file values.
	viper.SetEnvPrefix("jobradar")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional; defaults and env cover a fresh install.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: config file not loaded: %v\n", err)
		}
	}

	if err := bindFlags(); err != nil {
		return err
	}

	if Debug || viper.GetBool("debug") {
		viper.Set("logger.level", "debug")
		Debug = true
	}
	return nil
}

func bindFlags() error {
	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := viper.BindEnv("api.base_url", "JOBRADAR_API_URL"); err != nil {
		return fmt.Errorf("failed to bind JOBRADAR_API_URL: %w", err)
	}
	if err := viper.BindEnv("logger.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logger.format", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	return nil
}
