// Package runtime defines the runtime Value union of spec.md §3 (integer,
// float, text, host-callable, sequence, or Nil — function/lambda records
// live in internal/funtable to avoid an import cycle, see its doc comment)
// and the frame-chain Environment of spec.md §4.C. Modeled on the teacher's
// internal/interp/runtime package, which bundles the same two concerns
// together for the same reason.
package runtime

import (
	"strconv"
	"strings"
)

// Value is any runtime value produced by evaluation.
type Value interface {
	Type() string
	String() string
	// Truthy implements spec.md §3/§4.E's truthiness rule: 0, 0.0, "", the
	// empty sequence and Nil are false; everything else is true.
	Truthy() bool
}

// Int is an integer value.
type Int struct{ V int64 }

func (v Int) Type() string   { return "INT" }
func (v Int) String() string { return strconv.FormatInt(v.V, 10) }
func (v Int) Truthy() bool   { return v.V != 0 }

// Float is a floating-point value.
type Float struct{ V float64 }

func (v Float) Type() string   { return "FLOAT" }
func (v Float) String() string { return strconv.FormatFloat(v.V, 'g', -1, 64) }
func (v Float) Truthy() bool   { return v.V != 0 }

// Str is a text value.
type Str struct{ V string }

func (v Str) Type() string   { return "STR" }
func (v Str) String() string { return v.V }
func (v Str) Truthy() bool   { return v.V != "" }

// Nil is the value `if` produces when its condition is false and there is
// no else-branch (spec.md §3). By convention it is falsy, matching the
// "empty value" reading of the truthiness rule (spec.md §3/§4.E list this
// rule only for 0/""; Nil's own truthiness is left to the implementation —
// see DESIGN.md "Open Question decisions", Truthiness).
type Nil struct{}

func (Nil) Type() string   { return "NIL" }
func (Nil) String() string { return "nil" }
func (Nil) Truthy() bool   { return false }

// Seq is an ordered sequence, constructed by the `list` builtin (spec.md
// §6) and consumed by `len`/`foreach`. An empty sequence is falsy
// (spec.md §8: `(if (list) 1 2)` -> 2).
type Seq struct{ Items []Value }

func (v Seq) Type() string { return "SEQ" }
func (v Seq) String() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
func (v Seq) Truthy() bool { return len(v.Items) > 0 }

// HostCallable is an opaque host-provided primitive (spec.md §4.H / §6): it
// accepts already-evaluated argument values and returns a result or an
// error.
type HostCallable struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (v *HostCallable) Type() string   { return "HOST_CALLABLE" }
func (v *HostCallable) String() string { return "<builtin:" + v.Name + ">" }
func (v *HostCallable) Truthy() bool   { return true }
