package commands

import (
	"github.com/spf13/cobra"

	"github.com/starfold-labs/starfold/pkg/ast"
	"github.com/starfold-labs/starfold/pkg/source"
)

// NewDumpCommand creates the dump command.
func NewDumpCommand() *cobra.Command {
	var funcName string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the parsed tree of a file or a single function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := source.ParseFile(args[0])
			if err != nil {
				return err
			}

			tree := prog.Tree()
			if funcName != "" {
				fn, err := prog.Function(funcName)
				if err != nil {
					return err
				}
				tree = fn.Tree()
			}
			return ast.Fprint(cmd.OutOrStdout(), tree)
		},
	}

	cmd.Flags().StringVar(&funcName, "func", "", "Dump only the named function")

	return cmd
}
