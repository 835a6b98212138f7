// Package builtins is the host-callable bridge of spec.md §4.H/§6:
// arithmetic, comparisons, display/sequence helpers, and the
// graphics/input contract the language's CLI demo exercises. The
// graphics/input host itself is out of scope (spec.md §1, "specified only
// via their contracts"); Host below is a headless stand-in grounded on
// original_source/gamelib.py's pygame Game (320x240 window, a ball sprite,
// fill, and four key queries) reimplemented without a display so the
// contract is satisfiable in tests and from a plain terminal.
package builtins

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// Rect is one filled rectangle recorded by the "draw" builtin, kept in
// Host.Frame for test inspection in lieu of an actual screen.
type Rect struct {
	X, Y, R, G, B int64
}

// Ball is one ball-sprite blit recorded by "draw-ball".
type Ball struct {
	X, Y int64
}

// Host is the headless graphics/input/IO backend the builtins bridge
// against. NewHost returns a ready one: a 320x240 surface (original_source/
// gamelib.py's window size) with no input pressed and an empty frame. The
// zero value has a 0x0 surface and a nil Coinflip.
type Host struct {
	Out io.Writer

	Width, Height int64

	MouseX, MouseY        int64
	MousePressed          bool
	UpKey, DownKey        bool
	LeftKey, RightKey     bool

	// Coinflip is the deterministic hook SPEC_FULL.md calls for: swap it in
	// tests instead of reaching for math/rand, so `coinflip` results are
	// reproducible.
	Coinflip func() bool

	// Apply applies a function/lambda record or host-callable to args;
	// wired by whatever owns the driver (runner/cmd), since actually
	// driving a record's body requires the evaluator, which this package
	// does not otherwise need to know about. foreach is the only builtin
	// that needs it (spec.md §6).
	Apply func(callee runtime.Value, args []runtime.Value) (runtime.Value, error)

	Background Rect
	Frame      []Rect
	Balls      []Ball
	Rendered   int
}

// NewHost returns a Host sized like original_source/gamelib.py's window,
// with Coinflip defaulting to an always-false stub (tests override it; a
// real CLI run can swap in a math/rand-backed one before Install).
func NewHost(out io.Writer) *Host {
	return &Host{
		Out:      out,
		Width:    320,
		Height:   240,
		Coinflip: func() bool { return false },
	}
}

// Install registers every required built-in (spec.md §6) into env's
// built-ins frame (index 0). Names are stored in their canonical form
// where the surface symbol isn't itself a valid Go/identifier-safe name
// (e.g. "mouse-pressed?" -> "mouse_pressedq"), matching the fallback
// resolution Lookup performs (spec.md §3).
func Install(env *runtime.Environment, host *Host) {
	def := func(name string, fn func([]runtime.Value) (runtime.Value, error)) {
		env.DefineBuiltin(name, &runtime.HostCallable{Name: name, Fn: fn})
	}

	def("+", biAdd)
	def("-", biSub)
	def("*", biMul)
	def("/", biDiv)
	def("=", biEq)
	def("<", biLt)
	def(">", biGt)
	def("display", host.biDisplay)
	def("list", biList)
	def("len", biLen)
	def("foreach", host.biForeach)
	def("coinflip", host.biCoinflip)
	def("width", host.biWidth)
	def("height", host.biHeight)
	def("mousex", host.biMouseX)
	def("mousey", host.biMouseY)
	def("mouse_pressedq", host.biMousePressed)
	def("up_keyq", host.biUpKey)
	def("down_keyq", host.biDownKey)
	def("left_keyq", host.biLeftKey)
	def("right_keyq", host.biRightKey)
	def("background", host.biBackground)
	def("draw", host.biDraw)
	def("draw_ball", host.biDrawBall)
	def("render", host.biRender)
}

func arityErr(name string, want string, got int) error {
	return diag.New(diag.ArityError, "%s takes %s args, %d given", name, want, got)
}

func typeErr(name string, v runtime.Value) error {
	return diag.New(diag.TypeError, "%s: unexpected argument of type %s", name, v.Type())
}

func asNumber(v runtime.Value) (float64, bool, error) {
	switch n := v.(type) {
	case runtime.Int:
		return float64(n.V), true, nil
	case runtime.Float:
		return n.V, false, nil
	default:
		return 0, false, typeErr("arithmetic", v)
	}
}

func numResult(f float64, allInt bool) runtime.Value {
	if allInt {
		return runtime.Int{V: int64(f)}
	}
	return runtime.Float{V: f}
}

func biAdd(args []runtime.Value) (runtime.Value, error) {
	sum := 0.0
	allInt := true
	for _, a := range args {
		f, isInt, err := asNumber(a)
		if err != nil {
			return nil, err
		}
		sum += f
		allInt = allInt && isInt
	}
	return numResult(sum, allInt), nil
}

// biSub implements spec.md §6: variadic except unary, which negates from 0
// ("(- 5)" -> -5).
func biSub(args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, arityErr("-", "at least 1", 0)
	}
	first, allInt, err := asNumber(args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return numResult(-first, allInt), nil
	}
	acc := first
	for _, a := range args[1:] {
		f, isInt, err := asNumber(a)
		if err != nil {
			return nil, err
		}
		acc -= f
		allInt = allInt && isInt
	}
	return numResult(acc, allInt), nil
}

func biMul(args []runtime.Value) (runtime.Value, error) {
	prod := 1.0
	allInt := true
	for _, a := range args {
		f, isInt, err := asNumber(a)
		if err != nil {
			return nil, err
		}
		prod *= f
		allInt = allInt && isInt
	}
	return numResult(prod, allInt), nil
}

// biDiv is true float division (original_source/lisp.py, gamelib.py:
// "'/': lambda x, y: x / y"), unlike "+ - *": int/int division is the one
// case where an integer-looking result would routinely be wrong, e.g.
// "(/ 10 4)" must be 2.5, not a truncated 2.
func biDiv(args []runtime.Value) (runtime.Value, error) {
	if len(args) < 2 {
		return nil, arityErr("/", "at least 2", len(args))
	}
	acc, _, err := asNumber(args[0])
	if err != nil {
		return nil, err
	}
	for _, a := range args[1:] {
		f, _, err := asNumber(a)
		if err != nil {
			return nil, err
		}
		acc /= f
	}
	return runtime.Float{V: acc}, nil
}

// biEq implements spec.md §6's "variadic all-equal" comparison.
func biEq(args []runtime.Value) (runtime.Value, error) {
	for i := 1; i < len(args); i++ {
		a, _, err := asNumber(args[i-1])
		if err != nil {
			return nil, err
		}
		b, _, err := asNumber(args[i])
		if err != nil {
			return nil, err
		}
		if a != b {
			return runtime.Int{V: 0}, nil
		}
	}
	return runtime.Int{V: 1}, nil
}

func totalOrder(name string, args []runtime.Value, ok func(a, b float64) bool) (runtime.Value, error) {
	if len(args) < 2 {
		return nil, arityErr(name, "at least 2", len(args))
	}
	for i := 1; i < len(args); i++ {
		a, _, err := asNumber(args[i-1])
		if err != nil {
			return nil, err
		}
		b, _, err := asNumber(args[i])
		if err != nil {
			return nil, err
		}
		if !ok(a, b) {
			return runtime.Int{V: 0}, nil
		}
	}
	return runtime.Int{V: 1}, nil
}

func biLt(args []runtime.Value) (runtime.Value, error) {
	return totalOrder("<", args, func(a, b float64) bool { return a < b })
}

func biGt(args []runtime.Value) (runtime.Value, error) {
	return totalOrder(">", args, func(a, b float64) bool { return a > b })
}

// biDisplay writes each argument's printable form, comma-joined plus a
// newline, to Out (spec.md §6); it returns Nil, matching "returns nothing".
func (h *Host) biDisplay(args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Fprintln(h.Out, strings.Join(parts, ", "))
	return runtime.Nil{}, nil
}

func biList(args []runtime.Value) (runtime.Value, error) {
	items := make([]runtime.Value, len(args))
	copy(items, args)
	return runtime.Seq{Items: items}, nil
}

func biLen(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, arityErr("len", "1", len(args))
	}
	seq, ok := args[0].(runtime.Seq)
	if !ok {
		return nil, typeErr("len", args[0])
	}
	return runtime.Int{V: int64(len(seq.Items))}, nil
}

// biForeach maps fn over seq via h.Apply and returns the last mapped result
// (spec.md §6, §9 Open Question (c): "preserved but is arguably surprising
// — left unchanged").
func (h *Host) biForeach(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, arityErr("foreach", "2", len(args))
	}
	seq, ok := args[1].(runtime.Seq)
	if !ok {
		return nil, typeErr("foreach", args[1])
	}
	if h.Apply == nil {
		return nil, diag.New(diag.RuntimeError, "foreach: no apply routine installed")
	}
	var result runtime.Value = runtime.Nil{}
	for _, item := range seq.Items {
		v, err := h.Apply(args[0], []runtime.Value{item})
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (h *Host) biCoinflip(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 0 {
		return nil, arityErr("coinflip", "0", len(args))
	}
	if h.Coinflip() {
		return runtime.Int{V: 1}, nil
	}
	return runtime.Int{V: 0}, nil
}

func (h *Host) biWidth([]runtime.Value) (runtime.Value, error)  { return runtime.Int{V: h.Width}, nil }
func (h *Host) biHeight([]runtime.Value) (runtime.Value, error) { return runtime.Int{V: h.Height}, nil }
func (h *Host) biMouseX([]runtime.Value) (runtime.Value, error) { return runtime.Int{V: h.MouseX}, nil }
func (h *Host) biMouseY([]runtime.Value) (runtime.Value, error) { return runtime.Int{V: h.MouseY}, nil }

func boolValue(b bool) runtime.Value {
	if b {
		return runtime.Int{V: 1}
	}
	return runtime.Int{V: 0}
}

func (h *Host) biMousePressed([]runtime.Value) (runtime.Value, error) {
	return boolValue(h.MousePressed), nil
}
func (h *Host) biUpKey([]runtime.Value) (runtime.Value, error)    { return boolValue(h.UpKey), nil }
func (h *Host) biDownKey([]runtime.Value) (runtime.Value, error)  { return boolValue(h.DownKey), nil }
func (h *Host) biLeftKey([]runtime.Value) (runtime.Value, error)  { return boolValue(h.LeftKey), nil }
func (h *Host) biRightKey([]runtime.Value) (runtime.Value, error) { return boolValue(h.RightKey), nil }

func (h *Host) biBackground(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 3 {
		return nil, arityErr("background", "3", len(args))
	}
	rect, err := rectFromArgs(0, 0, args)
	if err != nil {
		return nil, err
	}
	h.Background = rect
	return runtime.Nil{}, nil
}

func (h *Host) biDraw(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 5 {
		return nil, arityErr("draw", "5", len(args))
	}
	x, err := asInt("draw", args[0])
	if err != nil {
		return nil, err
	}
	y, err := asInt("draw", args[1])
	if err != nil {
		return nil, err
	}
	rect, err := rectFromArgs(x, y, args[2:])
	if err != nil {
		return nil, err
	}
	h.Frame = append(h.Frame, rect)
	return runtime.Nil{}, nil
}

func (h *Host) biDrawBall(args []runtime.Value) (runtime.Value, error) {
	if len(args) != 2 {
		return nil, arityErr("draw-ball", "2", len(args))
	}
	x, err := asInt("draw-ball", args[0])
	if err != nil {
		return nil, err
	}
	y, err := asInt("draw-ball", args[1])
	if err != nil {
		return nil, err
	}
	h.Balls = append(h.Balls, Ball{X: x, Y: y})
	return runtime.Nil{}, nil
}

// biRender swaps buffers (no-op headlessly) and drains events; a real host
// would exit the process on a quit event (spec.md §6), which this headless
// stand-in has no source of.
func (h *Host) biRender([]runtime.Value) (runtime.Value, error) {
	h.Rendered++
	return runtime.Nil{}, nil
}

func asInt(name string, v runtime.Value) (int64, error) {
	switch n := v.(type) {
	case runtime.Int:
		return n.V, nil
	case runtime.Float:
		return int64(n.V), nil
	default:
		return 0, typeErr(name, v)
	}
}

func rectFromArgs(x, y int64, args []runtime.Value) (Rect, error) {
	r, err := asInt("draw", args[0])
	if err != nil {
		return Rect{}, err
	}
	g, err := asInt("draw", args[1])
	if err != nil {
		return Rect{}, err
	}
	b, err := asInt("draw", args[2])
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, R: r, G: g, B: b}, nil
}
