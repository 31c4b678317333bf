package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "tidysql",
		Short:        "tidysql",
		SilenceUsage: true,
		Long:         `Lint and fix SQL source according to a tidysql.toml/tidysql.yaml configuration.`,
	}

	directory  string
	configPath string
	dialect    string
	verbose    bool

	log = logrus.New()
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "path to directory and subtree which will be scanned for *.sql files")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to tidysql.toml/tidysql.yaml (defaults to the nearest ancestor of --directory)")
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "", "override the configured SQL dialect")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return rootCmd.Execute()
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
