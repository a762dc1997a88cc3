package expr

import (
	"math"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func TestSimplifyConstantFolding(t *testing.T) {
	// 2+3 folds to 5
	e := &Infix{X: &Number{Value: 2}, Op: OpAdd, Y: &Number{Value: 3}}
	s := e.Simplify()
	n, ok := s.(*Number)
	assert.True(t, ok)
	assert.Equal(t, complex(5, 0), n.Value)

	// pi folds to its numeric value
	s = (&Pi{}).Simplify()
	n, ok = s.(*Number)
	assert.True(t, ok)
	assert.Equal(t, complex(math.Pi, 0), n.Value)

	// 2*pi*0.25 folds all the way down
	e2 := &Infix{
		X:  &Infix{X: &Number{Value: 2}, Op: OpMul, Y: &Pi{}},
		Op: OpMul,
		Y:  &Number{Value: complex(0.25, 0)},
	}
	n, ok = e2.Simplify().(*Number)
	assert.True(t, ok)
	assertClose(t, complex(math.Pi/2, 0), n.Value)
}

func TestSimplifyPartial(t *testing.T) {
	// (1+2)*%theta keeps the variable symbolic
	e := &Infix{
		X:  &Infix{X: &Number{Value: 1}, Op: OpAdd, Y: &Number{Value: 2}},
		Op: OpMul,
		Y:  &Variable{Name: "theta"},
	}
	s := e.Simplify()
	infix, ok := s.(*Infix)
	assert.True(t, ok)
	assert.Equal(t, OpMul, infix.Op)

	// One side folded to 3, the other stayed a variable
	var sawNumber, sawVariable bool
	for _, side := range []Expression{infix.X, infix.Y} {
		switch v := side.(type) {
		case *Number:
			sawNumber = true
			assert.Equal(t, complex(3, 0), v.Value)
		case *Variable:
			sawVariable = true
			assert.Equal(t, "theta", v.Name)
		}
	}
	assert.True(t, sawNumber)
	assert.True(t, sawVariable)
}

func TestSimplifyDivisionByZeroStaysSymbolic(t *testing.T) {
	// Simplify cannot fail, so 1/0 is left as a division
	e := &Infix{X: &Number{Value: 1}, Op: OpDiv, Y: &Number{Value: 0}}
	_, ok := e.Simplify().(*Infix)
	assert.True(t, ok)
}

func TestSimplifyPrefix(t *testing.T) {
	// Unary plus disappears
	s := (&Prefix{Op: OpAdd, X: &Variable{Name: "a"}}).Simplify()
	v, ok := s.(*Variable)
	assert.True(t, ok)
	assert.Equal(t, "a", v.Name)

	// Negation of a constant folds
	s = (&Prefix{Op: OpSub, X: &Number{Value: 3}}).Simplify()
	n, ok := s.(*Number)
	assert.True(t, ok)
	assert.Equal(t, complex(-3, 0), n.Value)

	// Negation of a symbol survives
	s = (&Prefix{Op: OpSub, X: &Variable{Name: "a"}}).Simplify()
	_, ok = s.(*Prefix)
	assert.True(t, ok)
}

func TestSubstitute(t *testing.T) {
	e := &Infix{
		X:  &Variable{Name: "theta"},
		Op: OpMul,
		Y:  &Variable{Name: "phi"},
	}
	out := e.Substitute(Bindings{"theta": 2})
	infix, ok := out.(*Infix)
	assert.True(t, ok)

	n, ok := infix.X.(*Number)
	assert.True(t, ok)
	assert.Equal(t, complex(2, 0), n.Value)

	// Unbound variables remain symbolic
	v, ok := infix.Y.(*Variable)
	assert.True(t, ok)
	assert.Equal(t, "phi", v.Name)

	// The receiver is unchanged (expressions are immutable values)
	_, ok = e.X.(*Variable)
	assert.True(t, ok)
}

func TestEqualOnSimplifiedForms(t *testing.T) {
	two := &Number{Value: 2}
	three := &Number{Value: 3}
	five := &Number{Value: 5}

	// 2+3 equals 5
	assert.True(t, Equal(&Infix{X: two, Op: OpAdd, Y: three}, five))

	// a+b equals b+a (canonical ordering of commutative operands)
	a := &Variable{Name: "a"}
	b := &Variable{Name: "b"}
	assert.True(t, Equal(
		&Infix{X: a, Op: OpAdd, Y: b},
		&Infix{X: b, Op: OpAdd, Y: a},
	))
	assert.True(t, Equal(
		&Infix{X: a, Op: OpMul, Y: b},
		&Infix{X: b, Op: OpMul, Y: a},
	))

	// Subtraction does not commute
	assert.False(t, Equal(
		&Infix{X: a, Op: OpSub, Y: b},
		&Infix{X: b, Op: OpSub, Y: a},
	))

	// pi equals its folded value
	assert.True(t, Equal(&Pi{}, &Number{Value: complex(math.Pi, 0)}))

	// Different symbols differ
	assert.False(t, Equal(a, b))
	assert.False(t, Equal(
		&Reference{Ref: MemoryReference{Name: "ro", Index: 0}},
		&Reference{Ref: MemoryReference{Name: "ro", Index: 1}},
	))
}

func TestHashMatchesEquality(t *testing.T) {
	a := &Variable{Name: "a"}
	b := &Variable{Name: "b"}
	left := &Infix{X: a, Op: OpAdd, Y: b}
	right := &Infix{X: b, Op: OpAdd, Y: a}
	assert.Equal(t, Hash(left), Hash(right))

	sum := &Infix{X: &Number{Value: 2}, Op: OpAdd, Y: &Number{Value: 3}}
	assert.Equal(t, Hash(sum), Hash(&Number{Value: 5}))

	assert.NotEqual(t, Hash(a), Hash(b))
}

func TestReferences(t *testing.T) {
	e := &Infix{
		X:  &Call{Fn: Sin, Arg: &Reference{Ref: MemoryReference{Name: "theta", Index: 1}}},
		Op: OpAdd,
		Y:  &Prefix{Op: OpSub, X: &Reference{Ref: MemoryReference{Name: "beta"}}},
	}
	refs := References(e)
	assert.Len(t, refs, 2)
	assert.Equal(t, MemoryReference{Name: "theta", Index: 1}, refs[0])
	assert.Equal(t, MemoryReference{Name: "beta", Index: 0}, refs[1])

	assert.Len(t, References(&Pi{}), 0)
}
