package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mkutlay/checkdeck/internal/cppcheck"
	"github.com/mkutlay/checkdeck/internal/logger"
	"github.com/mkutlay/checkdeck/internal/toolchain"
)

var watchDebounce time.Duration

// sourceExtensions are the C and C++ file suffixes that trigger a
// re-run.
var sourceExtensions = map[string]bool{
	".c":   true,
	".cc":  true,
	".cpp": true,
	".cxx": true,
	".h":   true,
	".hpp": true,
}

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Re-run cppcheck when source files change",
		Long: `Watch a project directory and re-run cppcheck whenever a C or C++
source file changes. Events are debounced so a save burst triggers a
single run. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before re-running")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := logger.NewWithCallback("watch", isVerbose)

	project, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("cannot resolve project path: %w", err)
	}

	filters, err := resolveFilters(cmd, cfg.Analysis.Severities)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, project, cfg.Report.HTMLDir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer := cppcheck.NewAnalyzer(cfg.Tools.Cppcheck, toolchain.ExecRunner{})
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Watching %s for changes (Ctrl-C to stop)\n", project)

	// Initial run so the watcher starts from known results.
	runOnce(ctx, analyzer, project, filters, cmd)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "Stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New subdirectories join the watch set.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addWatchDirs(watcher, event.Name, cfg.Report.HTMLDir)
				}
			}
			if !isSourceFile(event.Name) {
				continue
			}
			log.Debug("change detected: %s", event.Name)
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)

		case <-timerC:
			timer = nil
			timerC = nil
			runOnce(ctx, analyzer, project, filters, cmd)
		}
	}
}

// addWatchDirs registers root and its subdirectories, skipping hidden
// directories and the report output tree.
func addWatchDirs(watcher *fsnotify.Watcher, root, reportDir string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == reportDir) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// isSourceFile reports whether path has a C or C++ suffix.
func isSourceFile(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

func runOnce(ctx context.Context, analyzer *cppcheck.Analyzer, project string, filters cppcheck.Filters, cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running cppcheck on %s\n", project)

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if timeout := GetGlobalConfig().Analysis.Timeout; timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	res, err := analyzer.Run(runCtx, project, filters)
	if err != nil {
		fmt.Fprintf(out, "Error running cppcheck: %v\n", err)
		return
	}
	out.Write(res.Stdout)
	out.Write(res.Stderr)
}
