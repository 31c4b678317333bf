package main

import (
	"os"

	"github.com/tidysql/tidysql/cmd/tidysql/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
