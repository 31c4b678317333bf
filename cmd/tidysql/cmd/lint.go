package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tidysql/tidysql"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Scan the directory tree and report lint diagnostics for every *.sql file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			_ = cmd.Help()
			return errors.New("too many arguments")
		}

		runID := uuid.New()
		entry := log.WithField("run_id", runID)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		files, err := findSQLFiles(directory)
		if err != nil {
			return err
		}
		entry.Debugf("found %d SQL file(s) under %s", len(files), directory)

		hadDiagnostics := false
		for _, path := range files {
			source, err := readFile(path)
			if err != nil {
				return err
			}

			diags := tidysql.CheckWithConfig(source, &cfg)
			for _, d := range diags {
				hadDiagnostics = true
				fmt.Printf("%s:%d: %s: %s\n", path, d.Range.Start, d.Code, d.Message)
			}
		}

		if hadDiagnostics {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
