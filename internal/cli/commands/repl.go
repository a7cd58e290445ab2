package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/starfold-labs/starfold/internal/config"
	"github.com/starfold-labs/starfold/pkg/analyses"
	"github.com/starfold-labs/starfold/pkg/fold"
	"github.com/starfold-labs/starfold/pkg/source"
)

const (
	replPrompt     = "starfold> "
	replContinue   = "     ...> "
	replHistory    = "starfold_history"
	replSourceName = "<repl>"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively define functions and see their analysis results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := commandConfig(cmd.Context())
			if err != nil {
				return err
			}

			appliers, err := analyses.BuildAll(cfg.Analyses, cfg.AnalysisOptions())
			if err != nil {
				return err
			}

			return runRepl(cmd, cfg, appliers)
		},
	}
}

func runRepl(cmd *cobra.Command, cfg *config.Config, appliers []fold.Applier) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     filepath.Join(os.TempDir(), replHistory),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "starfold REPL (analyses: %s)\n", strings.Join(cfg.Analyses, ", "))
	_, _ = fmt.Fprintln(out, "Define functions; a blank line runs the analyses. Type .help for commands.")
	_, _ = fmt.Fprintln(out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		trimmed := strings.TrimSpace(line)

		// Dot-commands act immediately, outside any open block.
		if buffer.Len() == 0 && strings.HasPrefix(trimmed, ".") {
			if quit := handleDotCommand(cmd, trimmed); quit {
				break
			}
			continue
		}

		if trimmed == "" {
			if buffer.Len() == 0 {
				continue
			}
			// Blank line terminates the block: analyze it.
			src := buffer.String()
			buffer.Reset()
			rl.SetPrompt(replPrompt)

			if err := analyzeSnippet(cmd, cfg, appliers, src); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			_, _ = fmt.Fprintln(out)
			continue
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")
		rl.SetPrompt(replContinue)
	}

	return nil
}

func analyzeSnippet(cmd *cobra.Command, cfg *config.Config, appliers []fold.Applier, src string) error {
	prog, err := source.Parse(replSourceName, []byte(src))
	if err != nil {
		return err
	}
	if len(prog.Functions()) == 0 {
		return errors.New("no function definitions in input")
	}

	var reports []FunctionReport
	for _, fn := range prog.Functions() {
		report, err := analyzeFunction(fn, appliers)
		if err != nil {
			return err
		}
		report.File = replSourceName
		reports = append(reports, report)
	}
	return renderReports(cmd.OutOrStdout(), cfg.Output, cfg.Analyses, reports)
}

func handleDotCommand(cmd *cobra.Command, line string) (quit bool) {
	out := cmd.OutOrStdout()
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(out)

	case ".analyses":
		for _, a := range analyses.All() {
			_, _ = fmt.Fprintf(out, "  %-12s %s\n", a.Name, a.Doc)
		}

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", line)
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .analyses       List the available analyses
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - End a function definition with a blank line to run the analyses
  - Several definitions may share one block
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}
