package runtime

// Environment is the frame-chain scope of spec.md §3/§4.C: an ordered list
// of frames. Frame 0 holds built-ins, frame 1 holds the top-level user
// scope, and each call activation pushes one more frame onto the end.
//
// Deep-copying an Environment (for function-entry snapshots, spec.md §4.D)
// clones every frame's map so later mutation of the live environment cannot
// corrupt a snapshot, while frames that are merely *shared* by reference
// (e.g. a closure's captured_env before any call pushes onto it) stay
// shared until the copy actually happens.
type Environment struct {
	frames []*frame
}

type frame struct {
	vars map[string]Value
}

func newFrame() *frame {
	return &frame{vars: make(map[string]Value)}
}

// NewRoot creates the two base frames described by spec.md §3: an empty
// built-ins frame (index 0, populated by internal/builtins) and an empty
// top-level user frame (index 1).
func NewRoot() *Environment {
	return &Environment{frames: []*frame{newFrame(), newFrame()}}
}

// Push appends a new, empty frame — one activation record per function
// call (spec.md §3).
func (e *Environment) Push() {
	e.frames = append(e.frames, newFrame())
}

// WithFrame returns a new Environment sharing e's frames plus one
// additional frame pre-populated with bindings. Used by Invocation
// (spec.md §4.E) to build `captured_env ++ [frame{paramᵢ ↦ argᵢ}]` without
// mutating the callee's captured environment.
func (e *Environment) WithFrame(bindings map[string]Value) *Environment {
	f := newFrame()
	for k, v := range bindings {
		f.vars[k] = v
	}
	frames := make([]*frame, len(e.frames)+1)
	copy(frames, e.frames)
	frames[len(e.frames)] = f
	return &Environment{frames: frames}
}

// Lookup walks frames right-to-left (innermost/most-recent first), per
// spec.md §3. It does not consult the function table; the Lookup evaluator
// node (spec.md §4.E) does that as a fallback once this returns false.
func (e *Environment) Lookup(name string) (Value, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name in the last (innermost/current) frame, creating or
// overwriting it there. Used as Assign's fallback; `fun` records are
// registered in the function table, not here.
func (e *Environment) Define(name string, v Value) {
	last := e.frames[len(e.frames)-1]
	last.vars[name] = v
}

// Assign implements spec.md §4.C's `set` resolution rule: rebind in the
// innermost frame that already contains name; if no frame has it, define it
// in the last frame (spec.md §9 Open Question (a), resolved in favor of
// "last frame", matching §4.C's literal wording over the index-1 aside in
// §3).
func (e *Environment) Assign(name string, v Value) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i].vars[name]; ok {
			e.frames[i].vars[name] = v
			return
		}
	}
	e.Define(name, v)
}

// DefineBuiltin installs a value directly into frame 0, the built-ins
// frame (spec.md §3). Used once at startup by internal/builtins.
func (e *Environment) DefineBuiltin(name string, v Value) {
	e.frames[0].vars[name] = v
}

// DeepCopy clones every frame so the result is fully independent of e:
// later mutation of e (or of the copy) cannot be observed through the
// other. This is the Environment half of an evaluator-tree snapshot
// (spec.md §3 invariants, §4.D).
//
// Each *Environment reachable from a snapshotted evaluator subtree gets its
// own independent clone here — there is no shared-pointer memo across the
// subtree, so two nodes that pointed at the same *Environment in the live
// tree end up pointing at two distinct (but value-equal) copies. This is
// safe for every shape spec.md defines: a snapshot is always taken at an
// Invocation's call boundary, where the only retained delegate chain is the
// already-fully-evaluated argument list (no live Set/If delegate still
// sharing the callee's env), and a function body always runs in its own
// freshly pushed frame (WithFrame), never the caller's *Environment by
// reference. It would only matter for a `set` visible through two
// independently-held references to one *Environment inside a single
// snapshotted subtree, which no evaluator node in this package constructs.
func (e *Environment) DeepCopy() *Environment {
	frames := make([]*frame, len(e.frames))
	for i, f := range e.frames {
		nf := newFrame()
		for k, v := range f.vars {
			nf.vars[k] = v
		}
		frames[i] = nf
	}
	return &Environment{frames: frames}
}

// Canonicalize implements the symbol-resolution fallback of spec.md §3:
// replace '-' with '_', and if the name ends in '?' drop it and append 'q'.
// (So "mouse-pressed?" resolves to a host-provided "mouse_pressedq".)
func Canonicalize(name string) string {
	out := make([]byte, 0, len(name)+1)
	for i := 0; i < len(name); i++ {
		if name[i] == '-' {
			out = append(out, '_')
		} else {
			out = append(out, name[i])
		}
	}
	if len(out) > 0 && out[len(out)-1] == '?' {
		out = append(out[:len(out)-1], 'q')
	}
	return string(out)
}
