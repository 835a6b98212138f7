package evalnode_test

import (
	"fmt"
	"testing"

	"github.com/cwbudde/go-hotlisp/internal/evalnode"
	"github.com/cwbudde/go-hotlisp/internal/reader"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestGoldenScripts snapshot-tests the printable result of a handful of
// representative programs, modeled on the teacher's
// internal/interp/fixture_test.go (source file in, go-snaps golden output
// out) but scaled down to this language's much smaller surface: no fixture
// directory tree, just a literal source-per-case table.
func TestGoldenScripts(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"arithmetic", `(+ 1 (* 2 3))`},
		{"tail_recursive_sum", `((fun sum n acc (if (< n 1) acc (sum (- n 1) (+ acc n)))) 100 0)`},
		{"closures_over_env", `(do (set base 10) ((lambda x (+ x base)) 5))`},
		{"sequence_ops", `(len (list 1 2 3 4))`},
		{"lambda_as_value", `(do (fun apply1 f x (f x)) (apply1 (lambda y (* y y)) 6))`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env, funs, _ := newEnv()
			prog, err := reader.Read(tc.src)
			if err != nil {
				t.Fatalf("Read(%q): %v", tc.src, err)
			}
			value, err := evalnode.NewDriver(funs).RunProgram(prog, env)
			if err != nil {
				t.Fatalf("RunProgram(%q): %v", tc.src, err)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_result", tc.name), value.String())
		})
	}
}
