package evalnode

import (
	"github.com/cwbudde/go-hotlisp/internal/funtable"
	"github.com/cwbudde/go-hotlisp/internal/runtime"
)

// Literal is a terminal node for Int/Float/Str values (spec.md §4.E): one
// step always yields Final(Value). Values are immutable, so DeepCopy need
// not do anything beyond copying the struct.
type Literal struct {
	Value runtime.Value
}

func (l *Literal) Step() (Step, error) {
	return final(l.Value)
}

func (l *Literal) DeepCopy() funtable.EvalNode {
	return &Literal{Value: l.Value}
}
