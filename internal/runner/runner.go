// Package runner implements the reload controller (spec.md §4.G): it owns
// the driver, periodically re-reads the source file, diffs the AST at
// function granularity, and either hot-swaps a single function's body
// (restoring its last entry-time snapshot) or performs a full reset.
package runner

import (
	"os"
	"time"

	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/evalnode"
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/reader"
	"github.com/cwbudde/go-hotlisp/internal/runnerlog"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// Runner owns the live evaluator state and the polling loop that keeps it
// in sync with the source file on disk (spec.md §4.G, §5 "single-threaded
// cooperative": the runner interleaves file-watch polling with driver
// steps by checking wall time between steps, there is no separate
// goroutine — see SPEC_FULL.md's original_source/main.py grounding).
type Runner struct {
	Path         string
	PollInterval time.Duration
	Env          *runtime.Environment
	Funs         *funtable.Table
	Log          *runnerlog.Logger

	state    evalnode.Node
	origRoot evalnode.Node
	funs     map[string]funDef
	lastPoll time.Time
}

// New constructs a Runner: reads path, parses it, builds the initial
// evaluator tree, takes the orig_root deep copy used for full resets, and
// installs the driver-root reference in the function table (spec.md §4.G
// "On construction").
func New(path string, pollInterval time.Duration, env *runtime.Environment, funs *funtable.Table, log *runnerlog.Logger) (*Runner, error) {
	prog, err := readProgram(path)
	if err != nil {
		return nil, err
	}

	root := evalnode.Node(&evalnode.Eval{AST: prog, Env: env, Funs: funs})
	funs.SetRoot(root)

	return &Runner{
		Path:         path,
		PollInterval: pollInterval,
		Env:          env,
		Funs:         funs,
		Log:          log,
		state:        root,
		origRoot:     root.DeepCopy().(evalnode.Node),
		funs:         topLevelFuns(prog),
		lastPoll:     now(),
	}, nil
}

func readProgram(path string) (*ast.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return reader.Read(string(src))
}

// now is a seam so tests can control wall time; production uses time.Now.
var now = time.Now

// Step advances the evaluator tree by exactly one step and, if the poll
// interval has elapsed, checks the source file for changes. It returns
// (value, true, nil) once the program reaches a Final value, or
// (nil, false, err) on an unrecoverable evaluator error (spec.md §7:
// "Inside the evaluator all errors terminate evaluation and propagate to
// the runner, which reports and exits").
func (r *Runner) Step() (runtime.Value, bool, error) {
	if now().Sub(r.lastPoll) >= r.PollInterval {
		r.lastPoll = now()
		if r.Log != nil {
			r.Log.Debugf("poll %s", r.Path)
		}
		r.poll()
	}

	step, err := r.state.Step()
	if err != nil {
		return nil, false, err
	}
	switch step.Kind {
	case evalnode.Incomplete:
		return nil, false, nil
	case evalnode.Child:
		r.state = step.Next
		r.Funs.SetRoot(r.state)
		if r.Log != nil {
			r.Log.Debugf("step: child %T", r.state)
		}
		return nil, false, nil
	default: // Final
		if r.Log != nil {
			r.Log.Debugf("step: final %s", step.Value)
		}
		return step.Value, true, nil
	}
}

// Run drives Step in a loop until the program terminates or errors.
func (r *Runner) Run() (runtime.Value, error) {
	for {
		value, done, err := r.Step()
		if err != nil {
			return nil, err
		}
		if done {
			return value, nil
		}
	}
}

// poll re-reads the source file and applies the reload policy of
// spec.md §4.G. A parse error or an unreadable file is swallowed (logged,
// keep running) per spec.md §7.
func (r *Runner) poll() {
	src, err := os.ReadFile(r.Path)
	if err != nil {
		if r.Log != nil {
			r.Log.Warnf("reload: could not read %s: %v", r.Path, err)
		}
		return
	}

	prog, err := reader.Read(string(src))
	if err != nil {
		if r.Log != nil {
			r.Log.Infof("reload: parse error, keeping current program: %v", err)
		}
		return
	}

	newFuns := topLevelFuns(prog)
	diff := diffFuns(r.funs, newFuns)
	if diff.unchanged() {
		return
	}

	if len(diff.Added) != 0 || len(diff.Removed) != 0 || len(diff.Modified) != 1 {
		r.fullReset(newFuns, diag.New(diag.BadReload, "reload changed %d function(s) at once, resetting", len(diff.Added)+len(diff.Removed)+len(diff.Modified)))
		return
	}

	r.hotSwap(diff.Modified[0], newFuns)
}

// fullReset restores state to a deep copy of origRoot and wipes the
// function table back to its just-constructed state (spec.md §4.G "full
// reset"). Clearing records along with snapshots is required, not just
// cosmetic: orig_root's `fun` forms re-Define every top-level name the next
// time it runs, which would collide with whatever is still sitting in the
// table from the run being discarded. reason is logged, not returned: a
// BadReload here is swallowed the same way a ParseError is (spec.md §7).
func (r *Runner) fullReset(newFuns map[string]funDef, reason error) {
	if r.Log != nil {
		r.Log.Infof("%v", reason)
	}
	r.Funs.Reset()
	r.state = r.origRoot.DeepCopy().(evalnode.Node)
	r.Funs.SetRoot(r.state)
	r.funs = newFuns
}

// hotSwap updates name's function record with its new params+body. If a
// snapshot exists for name, execution rewinds to it (spec.md §4.G "Exactly
// one modified function N: hot swap"); otherwise the current position
// continues and the new body takes effect on the next call (spec.md §9
// Open Question (b): live-table resolution).
func (r *Runner) hotSwap(name string, newFuns map[string]funDef) {
	def := newFuns[name]
	params := make([]string, 0, len(def.Params))
	for _, p := range def.Params {
		if sym, ok := p.(*ast.Sym); ok {
			params = append(params, sym.Name)
		}
	}
	r.Funs.ReplaceBody(name, params, def.Body)
	r.funs = newFuns

	if snap, ok := r.Funs.GetSnapshot(name); ok {
		if r.Log != nil {
			r.Log.Infof("hot-swap %s: restoring snapshot taken at %s", name, snap.At.Format(time.RFC3339))
		}
		r.state = snap.Root.(evalnode.Node)
		r.Funs.SetRoot(r.state)
		return
	}

	if r.Log != nil {
		r.Log.Infof("hot-swap %s: no snapshot yet, new body takes effect on next call", name)
	}
}
