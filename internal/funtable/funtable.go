// Package funtable implements the global function table of spec.md §3/§4.D:
// named function records plus a per-name snapshot slot, and the weak
// back-link to the live driver root that makes function-entry snapshotting
// possible.
//
// Record lives here rather than in internal/runtime to break an import
// cycle: a Record needs to carry a *Table (its captured_funs, spec.md §3),
// and Table needs runtime.Value/Environment — if Record lived in
// internal/runtime, runtime would have to import funtable, which already
// imports runtime. Record still satisfies runtime.Value structurally
// (Type/String/Truthy), so callers that only need a Value never notice the
// split.
package funtable

import (
	"strings"
	"time"

	"github.com/cwbudde/go-hotlisp/internal/ast"
	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// EvalNode is the minimal contract the evaluator tree must satisfy for the
// table to snapshot it: a deep, independent copy of itself (spec.md §3
// invariant: "Deep-copying any evaluator subtree produces an equal-by-value
// tree"). Defined here (not in the evaluator package) so funtable never has
// to import the evaluator, even though the evaluator imports funtable for
// call-site snapshotting and body lookup.
type EvalNode interface {
	DeepCopy() EvalNode
}

// Record is a function or lambda value: spec.md §3's "{ name, params,
// body, captured_env, captured_funs }" quadruple, with Name empty for an
// anonymous lambda. It is immutable once built — a reload replaces the
// Table's entry with a new *Record rather than mutating this one.
type Record struct {
	Name        string
	Params      []string
	Body        ast.Node
	CapturedEnv *runtime.Environment
	CapturedFuns *Table
}

// IsLambda reports whether this record is an anonymous lambda (spec.md §3,
// §4.E: "(lambda p1 ... pk body) returns a lambda record as Final
// directly").
func (r *Record) IsLambda() bool { return r.Name == "" }

func (r *Record) Type() string {
	if r.IsLambda() {
		return "LAMBDA"
	}
	return "FUNCTION"
}

func (r *Record) String() string {
	kind := "fun"
	name := r.Name
	if r.IsLambda() {
		kind = "lambda"
		name = ""
	}
	parts := []string{kind}
	if name != "" {
		parts = append(parts, name)
	}
	parts = append(parts, r.Params...)
	return "<" + strings.Join(parts, " ") + ">"
}

func (r *Record) Truthy() bool { return true }

// Snapshot is a deep copy of the evaluator tree taken immediately before a
// call to a named function, paired with the wall-clock time it was taken
// (spec.md §3, GLOSSARY).
type Snapshot struct {
	Root EvalNode
	At   time.Time
}

// Table is the global function table (spec.md §3/§4.D): name -> Record,
// name -> Snapshot, plus a non-owning ("weak") reference to the current
// driver root.
type Table struct {
	records   map[string]*Record
	snapshots map[string]Snapshot
	root      EvalNode
}

// New creates an empty function table.
func New() *Table {
	return &Table{
		records:   make(map[string]*Record),
		snapshots: make(map[string]Snapshot),
	}
}

// Define registers a new function record. A second definition of the same
// name is a *diag.Error of kind DuplicateDefinition (spec.md §3 invariant:
// "Exactly one function record per global name at any time").
func (t *Table) Define(name string, rec *Record) error {
	if _, exists := t.records[name]; exists {
		return diag.New(diag.DuplicateDefinition, "function %q already defined", name)
	}
	t.records[name] = rec
	return nil
}

// Lookup returns the live record for name, or (nil, false).
func (t *Table) Lookup(name string) (*Record, bool) {
	rec, ok := t.records[name]
	return rec, ok
}

// ReplaceBody swaps in a new record for name, preserving its captured
// environment and function table, per spec.md §4.D. Used only by the
// runner's hot-swap path (spec.md §4.G); it does not check for
// pre-existence the way Define does, because a reload targets a function
// that is already live.
func (t *Table) ReplaceBody(name string, params []string, body ast.Node) {
	old, ok := t.records[name]
	rec := &Record{Name: name, Params: params, Body: body, CapturedFuns: t}
	if ok {
		rec.CapturedEnv = old.CapturedEnv
	}
	t.records[name] = rec
}

// SetRoot publishes the current driver root (spec.md §4.F: "Publishing the
// driver root after each Child replacement keeps the function table's
// snapshot target current"). It stores the reference only — no copy.
func (t *Table) SetRoot(root EvalNode) {
	t.root = root
}

// Root returns the live driver root most recently published via SetRoot.
func (t *Table) Root() EvalNode {
	return t.root
}

// TakeSnapshot deep-copies root and stores it (with the current wall time)
// as the snapshot for name, overwriting any previous snapshot for that name
// (spec.md §3, §4.D). Called by the Invocation node immediately before
// descending into a named function's body — the linchpin of live reload
// (spec.md §4.E).
func (t *Table) TakeSnapshot(name string, root EvalNode, now time.Time) {
	if root == nil {
		return
	}
	t.snapshots[name] = Snapshot{Root: root.DeepCopy(), At: now}
}

// GetSnapshot returns the most recent snapshot for name, if any.
func (t *Table) GetSnapshot(name string) (Snapshot, bool) {
	snap, ok := t.snapshots[name]
	return snap, ok
}

// ClearSnapshots wipes every stored snapshot and leaves records in place.
// The runner's full reset (spec.md §4.G) uses Reset instead, which also
// clears records.
func (t *Table) ClearSnapshots() {
	t.snapshots = make(map[string]Snapshot)
}

// Names returns every currently-defined function name, in no particular
// order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.records))
	for n := range t.records {
		names = append(names, n)
	}
	return names
}

// Reset clears every record and snapshot, returning the table to its
// just-constructed state. Used by the runner's full-reset reload policy,
// which restores program state from scratch (spec.md §4.G).
func (t *Table) Reset() {
	t.records = make(map[string]*Record)
	t.snapshots = make(map[string]Snapshot)
	t.root = nil
}

// DeepCopy returns t itself: the function table is shared, pointer-identity
// state and must never be cloned as part of an evaluator-tree snapshot
// (spec.md §5: "The function table's deep-copy operation returns itself"),
// since a snapshot must still observe later body swaps through the live
// table.
func (t *Table) DeepCopy() *Table {
	return t
}
