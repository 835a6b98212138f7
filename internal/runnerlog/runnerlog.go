// Package runnerlog provides the runner's leveled logger: a standard
// log.Logger filtered by github.com/hashicorp/logutils, the same pairing
// hashicorp-serf's agent uses to separate INFO chatter from DEBUG detail
// (spec.md §4.G reload decisions, §5 poll ticks). Default level is INFO;
// -v/--trace drops it to DEBUG, which is what surfaces individual
// Child/Final evaluator transitions.
package runnerlog

import (
	"io"
	"log"

	"github.com/hashicorp/logutils"
)

// Levels, ordered most to least verbose, matching the strings passed to
// log.Printf's "[LEVEL] " prefix convention.
const (
	Debug = "DEBUG"
	Info  = "INFO"
	Warn  = "WARN"
	Error = "ERROR"
)

// Logger wraps a *log.Logger whose output passes through a logutils level
// filter; its methods prepend the "[LEVEL] " prefix logutils keys off of.
type Logger struct {
	std *log.Logger
}

// New builds a Logger that writes to w, filtered to minLevel and above.
// Pass runnerlog.Debug for --trace, runnerlog.Info otherwise.
func New(w io.Writer, minLevel string) *Logger {
	filter := &logutils.LevelFilter{
		Levels:   []logutils.LogLevel{Debug, Info, Warn, Error},
		MinLevel: logutils.LogLevel(minLevel),
		Writer:   w,
	}
	return &Logger{std: log.New(filter, "", log.LstdFlags)}
}

func (l *Logger) Debugf(format string, args ...any) { l.std.Printf("[DEBUG] "+format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.std.Printf("[INFO] "+format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.std.Printf("[WARN] "+format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.std.Printf("[ERROR] "+format, args...) }
