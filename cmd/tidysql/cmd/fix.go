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

var writeInPlace bool

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Scan the directory tree and apply lint fixes to every *.sql file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			_ = cmd.Help()
			return errors.New("too many arguments")
		}

		entry := log.WithField("run_id", uuid.New())
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

		for _, path := range files {
			source, err := readFile(path)
			if err != nil {
				return err
			}

			fixed, ferr := tidysql.FixWithConfig(source, &cfg)
			if ferr != nil {
				entry.WithField("file", path).Warnf("skipped: %s", ferr.Error())
				continue
			}
			if fixed == source {
				continue
			}

			if !writeInPlace {
				fmt.Println(fixed)
				continue
			}
			if err := os.WriteFile(path, []byte(fixed), 0o644); err != nil {
				return err
			}
			entry.Infof("fixed %s", path)
		}
		return nil
	},
}

func init() {
	fixCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "write fixes back to disk instead of printing to stdout")
	rootCmd.AddCommand(fixCmd)
}
