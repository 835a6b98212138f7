package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-hotlisp/internal/demo"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/evalnode"
	"github.com/cwbudde/go-hotlisp/internal/reader"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Evaluate a script once and print its result",
	Long: `Read, parse and evaluate a script to completion, printing its final value.

Unlike "watch", run does not reload the source file while it executes —
it is meant for scripts that terminate on their own rather than the
graphics demo's infinite game loop.

With no script argument, run evaluates the built-in demo (spec.md §6).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := loadSource(args)
	if err != nil {
		return err
	}

	prog, err := reader.Read(source)
	if err != nil {
		return reportError(err, source, filename)
	}

	env, funs := newEnvironment(os.Stdout)
	driver := evalnode.NewDriver(funs)
	value, err := driver.RunProgram(prog, env)
	if err != nil {
		return reportError(err, source, filename)
	}

	fmt.Println(value.String())
	return nil
}

// loadSource returns a script's source and a display name for it. With no
// argument, it runs the built-in demo (spec.md §6 CLI).
func loadSource(args []string) (source, filename string, err error) {
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return demo.Script, "<demo>", nil
}

// reportError formats err with source context and color (when stderr is a
// terminal), matching the teacher's errors.FormatErrors pattern.
func reportError(err error, source, filename string) error {
	de, ok := err.(*diag.Error)
	if !ok {
		return err
	}
	useColor := diag.UseColor(os.Stderr)
	fmt.Fprintln(diag.Writer(os.Stderr), diag.Format(de, source, filename, useColor))
	return fmt.Errorf("%s", de.Kind)
}
