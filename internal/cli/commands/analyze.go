package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/starfold-labs/starfold/internal/config"
	"github.com/starfold-labs/starfold/pkg/analyses"
	"github.com/starfold-labs/starfold/pkg/fold"
	"github.com/starfold-labs/starfold/pkg/source"
)

// debounceDelay coalesces bursts of filesystem events into one re-run.
const debounceDelay = 100 * time.Millisecond

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	var funcFilter string
	var watch bool

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Apply the configured analyses to every function in the given files",
		Long: `Parse each file, fold the configured analyses over every top-level
function, and report the stacked results. Analyses and their options
come from the config file, environment, and flags.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := commandConfig(ctx)
			if err != nil {
				return err
			}
			logger := config.GetLogger(ctx)

			appliers, err := analyses.BuildAll(cfg.Analyses, cfg.AnalysisOptions())
			if err != nil {
				return err
			}

			run := func() error {
				reports, err := analyzeFiles(ctx, logger, appliers, cfg.Jobs, args, funcFilter)
				if err != nil {
					return err
				}
				return renderReports(cmd.OutOrStdout(), cfg.Output, cfg.Analyses, reports)
			}

			if watch || cfg.Watch {
				return watchAndRun(ctx, logger, args, run)
			}
			return run()
		},
	}

	cmd.Flags().StringVar(&funcFilter, "func", "", "Only analyze the named function")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run when the source files change")

	return cmd
}

// commandConfig returns the config the root command stored, loading
// defaults when the command runs outside the root (as in tests).
func commandConfig(ctx context.Context) (*config.Config, error) {
	if cfg := config.GetConfig(ctx); cfg != nil {
		return cfg, nil
	}
	return config.Load("", nil)
}

// analyzeFiles parses every file and applies the analyses to each of
// its functions, capped at jobs concurrent files.
func analyzeFiles(ctx context.Context, logger *slog.Logger, appliers []fold.Applier, jobs int, files []string, funcFilter string) ([]FunctionReport, error) {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	var mu sync.Mutex
	var reports []FunctionReport

	for _, path := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			runID := uuid.New().String()
			logger.Debug("analyzing file", "file", path, "run_id", runID)

			prog, err := source.ParseFile(path)
			if err != nil {
				return err
			}

			var fileReports []FunctionReport
			for _, fn := range prog.Functions() {
				if funcFilter != "" && fn.Name() != funcFilter {
					continue
				}
				report, err := analyzeFunction(fn, appliers)
				if err != nil {
					return fmt.Errorf("%s: %s: %w", path, fn.Name(), err)
				}
				report.File = path
				fileReports = append(fileReports, report)
			}
			if funcFilter != "" && len(fileReports) == 0 {
				logger.Debug("no matching function", "file", path, "func", funcFilter, "run_id", runID)
			}

			mu.Lock()
			reports = append(reports, fileReports...)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].File != reports[j].File {
			return reports[i].File < reports[j].File
		}
		return reports[i].Line < reports[j].Line
	})
	return reports, nil
}

// analyzeFunction stacks every applier on the function and collects
// the recorded results in application order.
func analyzeFunction(fn *source.Function, appliers []fold.Applier) (FunctionReport, error) {
	report := FunctionReport{
		Function:  fn.Name(),
		Line:      fn.Line(),
		Signature: fn.Signature(),
	}

	var subject fold.Subject = fn
	for _, applier := range appliers {
		carrier, err := applier.ApplyTo(subject, nil)
		if err != nil {
			return report, err
		}
		subject = carrier
	}

	if carrier, ok := subject.(*fold.Carrier); ok {
		for _, result := range carrier.Results() {
			report.Results = append(report.Results, AnalysisResult{
				Name:  result.Name,
				Value: presentable(result.Value),
			})
		}
	}
	return report, nil
}

// presentable converts fold results into values the renderers handle:
// types with a String method render as that string.
func presentable(v any) any {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return v
}

// watchAndRun runs once, then re-runs on every change to the watched
// files, debounced, until the context is cancelled.
func watchAndRun(ctx context.Context, logger *slog.Logger, files []string, run func() error) error {
	if err := run(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// Watch directories rather than files so editors that replace the
	// file on save keep being observed.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	logger.Info("watching for changes", "files", len(watched))

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				logger.Debug("file changed, re-analyzing", "file", event.Name)
				if err := run(); err != nil {
					logger.Error("analysis failed", "error", err)
				}
			})

		case err := <-watcher.Errors:
			logger.Error("watcher error", "error", err)
		}
	}
}
