package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/starfold-labs/starfold/pkg/source"
)

// NewCallCommand creates the call command.
func NewCallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "call <file> <function> [arg...]",
		Short: "Execute a function with the given arguments and print its result",
		Long: `Execute the named function from the file. Arguments are parsed as
integers, floats, or booleans when they look like one, and passed as
strings otherwise.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := source.ParseFile(args[0])
			if err != nil {
				return err
			}
			fn, err := prog.Function(args[1])
			if err != nil {
				return err
			}

			callArgs := make([]any, len(args)-2)
			for i, raw := range args[2:] {
				callArgs[i] = parseCallArg(raw)
			}

			result, err := fn.Invoke(callArgs...)
			if err != nil {
				return fmt.Errorf("call %s: %w", fn.Signature(), err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%v\n", result)
			return nil
		},
	}
}

// parseCallArg converts a command-line argument to the most specific
// value it parses as.
func parseCallArg(raw string) any {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}
