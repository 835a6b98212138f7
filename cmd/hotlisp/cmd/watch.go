package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/go-hotlisp/internal/demo"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/runner"
	"github.com/cwbudde/go-hotlisp/internal/runnerlog"
	"github.com/spf13/cobra"
)

var (
	pollInterval time.Duration
	trace        bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [script]",
	Short: "Run a script, hot-reloading it as the source file changes",
	Long: `Run a script under the reload controller (spec.md §4.G): the source
file is polled every --interval, and a single changed function's body is
hot-swapped with its entry-time snapshot restored; any larger change (an
added/removed function, or more than one modified body) triggers a full
reset.

With no script argument, watch writes the built-in demo (spec.md §6) to a
temp file and watches that.`,
	Args: cobra.MaximumNArgs(1),
	RunE: watchScript,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&pollInterval, "interval", time.Second, "source file poll interval (spec.md §6: default 1s)")
	watchCmd.Flags().BoolVar(&trace, "trace", false, "log every reload decision and evaluator step at DEBUG level")
}

func watchScript(_ *cobra.Command, args []string) error {
	path, err := resolveWatchPath(args)
	if err != nil {
		return err
	}

	level := runnerlog.Info
	if verbose || trace {
		level = runnerlog.Debug
	}
	log := runnerlog.New(os.Stderr, level)

	env, funs := newEnvironment(os.Stdout)
	r, err := runner.New(path, pollInterval, env, funs, log)
	if err != nil {
		return reportReadOrParseError(err, path)
	}

	value, err := r.Run()
	if err != nil {
		source, _ := os.ReadFile(path)
		return reportError(err, string(source), path)
	}

	fmt.Println(value.String())
	return nil
}

// resolveWatchPath returns the script path to watch, writing the built-in
// demo to a temp file when no argument is given (spec.md §6).
func resolveWatchPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	path := filepath.Join(os.TempDir(), "hotlisp-demo.lisp")
	if err := os.WriteFile(path, []byte(demo.Script), 0o644); err != nil {
		return "", fmt.Errorf("failed to write demo script: %w", err)
	}
	return path, nil
}

func reportReadOrParseError(err error, path string) error {
	source, readErr := os.ReadFile(path)
	if readErr != nil {
		return err
	}
	if de, ok := err.(*diag.Error); ok {
		return reportError(de, string(source), path)
	}
	return err
}
