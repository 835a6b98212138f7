package builtins

import (
	"bytes"
	"testing"

	"github.com/cwbudde/go-hotlisp/internal/diag"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		fn   func([]runtime.Value) (runtime.Value, error)
		args []runtime.Value
		want runtime.Value
	}{
		{"add ints", biAdd, []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 1}}, runtime.Int{V: 2}},
		{"add mixed is float", biAdd, []runtime.Value{runtime.Int{V: 1}, runtime.Float{V: 0.5}}, runtime.Float{V: 1.5}},
		{"sub unary negates", biSub, []runtime.Value{runtime.Int{V: 5}}, runtime.Int{V: -5}},
		{"sub variadic", biSub, []runtime.Value{runtime.Int{V: 10}, runtime.Int{V: 3}, runtime.Int{V: 2}}, runtime.Int{V: 5}},
		{"mul", biMul, []runtime.Value{runtime.Int{V: 3}, runtime.Int{V: 4}}, runtime.Int{V: 12}},
		{"div is always float", biDiv, []runtime.Value{runtime.Int{V: 10}, runtime.Int{V: 2}}, runtime.Float{V: 5}},
		{"div non-exact", biDiv, []runtime.Value{runtime.Int{V: 10}, runtime.Int{V: 4}}, runtime.Float{V: 2.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want.String() || got.Type() != tt.want.Type() {
				t.Errorf("got %s (%s), want %s (%s)", got, got.Type(), tt.want, tt.want.Type())
			}
		})
	}
}

func TestSubRequiresAtLeastOneArg(t *testing.T) {
	_, err := biSub(nil)
	if !diag.Is(err, diag.ArityError) {
		t.Fatalf("want ArityError, got %v", err)
	}
}

func TestDivRequiresAtLeastTwoArgs(t *testing.T) {
	_, err := biDiv([]runtime.Value{runtime.Int{V: 1}})
	if !diag.Is(err, diag.ArityError) {
		t.Fatalf("want ArityError, got %v", err)
	}
}

// TestComparisons is spec.md §6's "total-order comparison; = is variadic
// all-equal" property.
func TestComparisons(t *testing.T) {
	tests := []struct {
		name string
		fn   func([]runtime.Value) (runtime.Value, error)
		args []runtime.Value
		want int64
	}{
		{"= all equal", biEq, []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 1}, runtime.Int{V: 1}}, 1},
		{"= unequal", biEq, []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}}, 0},
		{"< true", biLt, []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}}, 1},
		{"< false", biLt, []runtime.Value{runtime.Int{V: 2}, runtime.Int{V: 1}}, 0},
		{"< chained", biLt, []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}, runtime.Int{V: 3}}, 1},
		{"< chained broken", biLt, []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 3}, runtime.Int{V: 2}}, 0},
		{"> true", biGt, []runtime.Value{runtime.Int{V: 2}, runtime.Int{V: 1}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.(runtime.Int).V != tt.want {
				t.Errorf("got %v, want %d", got, tt.want)
			}
		})
	}
}

func TestDisplayWritesCommaJoinedAndReturnsNil(t *testing.T) {
	var out bytes.Buffer
	host := NewHost(&out)
	result, err := host.biDisplay([]runtime.Value{runtime.Int{V: 1}, runtime.Str{V: "hi"}})
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "1, hi\n" {
		t.Errorf("got %q, want %q", out.String(), "1, hi\n")
	}
	if result.Type() != "NIL" {
		t.Errorf("display must return Nil, got %s", result)
	}
}

func TestListAndLen(t *testing.T) {
	seq, err := biList([]runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}, runtime.Int{V: 3}})
	if err != nil {
		t.Fatal(err)
	}
	length, err := biLen([]runtime.Value{seq})
	if err != nil {
		t.Fatal(err)
	}
	if length.(runtime.Int).V != 3 {
		t.Fatalf("got %v, want 3", length)
	}
}

func TestLenRejectsNonSequence(t *testing.T) {
	_, err := biLen([]runtime.Value{runtime.Int{V: 1}})
	if !diag.Is(err, diag.TypeError) {
		t.Fatalf("want TypeError, got %v", err)
	}
}

// TestForeachAppliesAndReturnsLast is spec.md §6/§9 Open Question (c):
// foreach maps fn over seq via Host.Apply and returns the last result.
func TestForeachAppliesAndReturnsLast(t *testing.T) {
	host := NewHost(new(bytes.Buffer))
	var seen []int64
	host.Apply = func(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
		n := args[0].(runtime.Int).V
		seen = append(seen, n)
		return runtime.Int{V: n * 2}, nil
	}

	seq := runtime.Seq{Items: []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}, runtime.Int{V: 3}}}
	result, err := host.biForeach([]runtime.Value{&runtime.HostCallable{Name: "double"}, seq})
	if err != nil {
		t.Fatal(err)
	}
	if result.(runtime.Int).V != 6 {
		t.Fatalf("got %v, want 6 (last mapped result)", result)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Fatalf("got %v, want [1 2 3] applied in order", seen)
	}
}

func TestForeachWithoutApplyIsRuntimeError(t *testing.T) {
	host := NewHost(new(bytes.Buffer))
	seq := runtime.Seq{Items: []runtime.Value{runtime.Int{V: 1}}}
	_, err := host.biForeach([]runtime.Value{&runtime.HostCallable{Name: "f"}, seq})
	if !diag.Is(err, diag.RuntimeError) {
		t.Fatalf("want RuntimeError, got %v", err)
	}
}

func TestCoinflipUsesInjectedHook(t *testing.T) {
	host := NewHost(new(bytes.Buffer))
	host.Coinflip = func() bool { return true }
	result, err := host.biCoinflip(nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.(runtime.Int).V != 1 {
		t.Fatalf("got %v, want 1 (true)", result)
	}

	host.Coinflip = func() bool { return false }
	result, _ = host.biCoinflip(nil)
	if result.(runtime.Int).V != 0 {
		t.Fatalf("got %v, want 0 (false)", result)
	}
}

// TestKeyAndMouseDefaults covers spec.md §6's input built-ins: a fresh Host
// reports no input and the 320x240 surface of original_source/gamelib.py.
func TestKeyAndMouseDefaults(t *testing.T) {
	host := NewHost(new(bytes.Buffer))

	w, _ := host.biWidth(nil)
	h, _ := host.biHeight(nil)
	if w.(runtime.Int).V != 320 || h.(runtime.Int).V != 240 {
		t.Fatalf("got %vx%v, want 320x240", w, h)
	}

	for _, fn := range []func([]runtime.Value) (runtime.Value, error){
		host.biMousePressed, host.biUpKey, host.biDownKey, host.biLeftKey, host.biRightKey,
	} {
		v, err := fn(nil)
		if err != nil {
			t.Fatal(err)
		}
		if v.(runtime.Int).V != 0 {
			t.Fatalf("a fresh Host must report no input pressed, got %v", v)
		}
	}
}

func TestMouseQueriesReflectHostState(t *testing.T) {
	host := NewHost(new(bytes.Buffer))
	host.MouseX, host.MouseY = 10, 20
	host.MousePressed = true

	x, _ := host.biMouseX(nil)
	y, _ := host.biMouseY(nil)
	pressed, _ := host.biMousePressed(nil)

	if x.(runtime.Int).V != 10 || y.(runtime.Int).V != 20 {
		t.Fatalf("got (%v, %v), want (10, 20)", x, y)
	}
	if pressed.(runtime.Int).V != 1 {
		t.Fatalf("got %v, want 1 (pressed)", pressed)
	}
}

// TestDrawingRecordsIntoFrame covers spec.md §6's background/draw/draw-ball
// built-ins recording into the headless Host instead of a real screen.
func TestDrawingRecordsIntoFrame(t *testing.T) {
	host := NewHost(new(bytes.Buffer))

	if _, err := host.biBackground([]runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}, runtime.Int{V: 3}}); err != nil {
		t.Fatal(err)
	}
	if host.Background != (Rect{R: 1, G: 2, B: 3}) {
		t.Fatalf("got %+v, want background (1,2,3)", host.Background)
	}

	if _, err := host.biDraw([]runtime.Value{
		runtime.Int{V: 5}, runtime.Int{V: 6}, runtime.Int{V: 7}, runtime.Int{V: 8}, runtime.Int{V: 9},
	}); err != nil {
		t.Fatal(err)
	}
	if len(host.Frame) != 1 || host.Frame[0] != (Rect{X: 5, Y: 6, R: 7, G: 8, B: 9}) {
		t.Fatalf("got %+v, want one rect at (5,6) color (7,8,9)", host.Frame)
	}

	if _, err := host.biDrawBall([]runtime.Value{runtime.Int{V: 11}, runtime.Int{V: 12}}); err != nil {
		t.Fatal(err)
	}
	if len(host.Balls) != 1 || host.Balls[0] != (Ball{X: 11, Y: 12}) {
		t.Fatalf("got %+v, want one ball at (11,12)", host.Balls)
	}

	if _, err := host.biRender(nil); err != nil {
		t.Fatal(err)
	}
	if host.Rendered != 1 {
		t.Fatalf("got %d renders, want 1", host.Rendered)
	}
}

func TestDrawRejectsWrongArity(t *testing.T) {
	host := NewHost(new(bytes.Buffer))
	_, err := host.biDraw([]runtime.Value{runtime.Int{V: 1}})
	if !diag.Is(err, diag.ArityError) {
		t.Fatalf("want ArityError, got %v", err)
	}
}

func TestInstallRegistersCanonicalNames(t *testing.T) {
	env := runtime.NewRoot()
	host := NewHost(new(bytes.Buffer))
	Install(env, host)

	for _, name := range []string{
		"+", "-", "*", "/", "=", "<", ">", "display", "list", "len", "foreach",
		"coinflip", "width", "height", "mousex", "mousey",
		"mouse_pressedq", "up_keyq", "down_keyq", "left_keyq", "right_keyq",
		"background", "draw", "draw_ball", "render",
	} {
		if _, ok := env.Lookup(name); !ok {
			t.Errorf("Install must register %q", name)
		}
	}
}
