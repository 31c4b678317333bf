package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/tidysql/tidysql/parser"
	"github.com/tidysql/tidysql/parser/ansi"
	"github.com/tidysql/tidysql/syntax"
)

var treeCmd = &cobra.Command{
	Use:   "tree <file.sql>",
	Short: "Parse a single file and dump its syntax tree, for debugging rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			_ = cmd.Help()
			return errors.New("expected exactly one file argument")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		tree, perr := parser.Run(string(data), ansi.ParseFunc)
		if perr != nil {
			return fmt.Errorf("parse error: %s", perr.Error())
		}

		dumpTree(tree.Root(), 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func dumpTree(root syntax.Node, indent int) {
	depth := indent
	walker := root.PreorderWithTokens()
	for {
		ev, ok := walker.Next()
		if !ok {
			break
		}
		switch ev.Kind {
		case syntax.EnterNodeEvent:
			fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth), ev.Node.Kind(), ev.Node.Range())
			depth++
		case syntax.LeaveNodeEvent:
			depth--
		case syntax.TokenWalkEvent:
			fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth), ev.Token.Kind(), repr.String(ev.Token.Text()))
		}
	}
}
