package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Format renders err with a source line and a caret under the offending
// column, the same layout the teacher's CompilerError.Format produces.
// Coloring is applied via fatih/color instead of hand-rolled ANSI escapes,
// and is a no-op when color is false.
func Format(err *Error, source, file string, useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s: ", err.Kind)
	if useColor {
		header = color.New(color.FgRed, color.Bold).Sprint(header)
	}
	sb.WriteString(header)

	if file != "" && err.HasPos {
		sb.WriteString(fmt.Sprintf("%s:%d:%d: ", file, err.Pos.Line, err.Pos.Column))
	} else if err.HasPos {
		sb.WriteString(fmt.Sprintf("line %d:%d: ", err.Pos.Line, err.Pos.Column))
	}
	sb.WriteString(err.Message)

	if err.HasPos {
		if line := sourceLine(source, err.Pos.Line); line != "" {
			sb.WriteString("\n")
			prefix := fmt.Sprintf("%4d | ", err.Pos.Line)
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(prefix)+max0(err.Pos.Column-1)))
			caret := "^"
			if useColor {
				caret = color.New(color.FgRed, color.Bold).Sprint(caret)
			}
			sb.WriteString(caret)
		}
	}

	return sb.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func sourceLine(source string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Writer wraps w so ANSI sequences render correctly on Windows consoles,
// matching how hashicorp-serf pairs mattn/go-colorable with mattn/go-isatty
// for its own CLI output. Writers that are not an *os.File pass through
// unchanged.
func Writer(w io.Writer) io.Writer {
	f, ok := w.(*os.File)
	if !ok {
		return w
	}
	return colorable.NewColorable(f)
}

// UseColor reports whether w looks like an interactive terminal that should
// receive ANSI color codes.
func UseColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
