package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/starfold-labs/starfold/pkg/source"
)

// functionInfo is the structured listing entry for one function.
type functionInfo struct {
	File      string `json:"file" yaml:"file"`
	Function  string `json:"function" yaml:"function"`
	Line      int    `json:"line" yaml:"line"`
	Signature string `json:"signature" yaml:"signature"`
	Docstring string `json:"docstring,omitempty" yaml:"docstring,omitempty"`
}

// NewFunctionsCommand creates the functions command.
func NewFunctionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "functions <file>...",
		Short: "List the top-level functions in the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := commandConfig(cmd.Context())
			if err != nil {
				return err
			}

			var infos []functionInfo
			for _, path := range args {
				prog, err := source.ParseFile(path)
				if err != nil {
					return err
				}
				for _, fn := range prog.Functions() {
					infos = append(infos, functionInfo{
						File:      path,
						Function:  fn.Name(),
						Line:      fn.Line(),
						Signature: fn.Signature(),
						Docstring: fn.Docstring(),
					})
				}
			}

			headers := []string{"File", "Function", "Line", "Signature", "Docstring"}
			rows := make([][]string, len(infos))
			for i, info := range infos {
				rows[i] = []string{info.File, info.Function, strconv.Itoa(info.Line), info.Signature, info.Docstring}
			}
			return renderListing(cmd.OutOrStdout(), cfg.Output, headers, rows, infos)
		},
	}
}
