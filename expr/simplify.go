package expr

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"io"
	"math"
)

func (x *Number) Simplify() Expression { return x }

func (x *Pi) Simplify() Expression {
	return &Number{Value: complex(math.Pi, 0)}
}

func (x *Variable) Simplify() Expression { return x }

func (x *Reference) Simplify() Expression { return x }

func (x *Call) Simplify() Expression {
	arg := x.Arg.Simplify()
	if n, ok := arg.(*Number); ok {
		return &Number{Value: applyFunction(x.Fn, n.Value)}
	}
	return &Call{Fn: x.Fn, Arg: arg}
}

func (x *Infix) Simplify() Expression {
	left := x.X.Simplify()
	right := x.Y.Simplify()
	ln, lok := left.(*Number)
	rn, rok := right.(*Number)
	if lok && rok {
		if v, err := applyOperator(x.Op, ln.Value, rn.Value); err == nil {
			return &Number{Value: v}
		}
	}
	// Commutative operands are kept in a canonical order so that commuted
	// spellings share a single simplified form.
	if (x.Op == OpAdd || x.Op == OpMul) && hashOf(left) > hashOf(right) {
		left, right = right, left
	}
	return &Infix{X: left, Op: x.Op, Y: right}
}

func (x *Prefix) Simplify() Expression {
	operand := x.X.Simplify()
	if x.Op != OpSub {
		return operand
	}
	if n, ok := operand.(*Number); ok {
		return &Number{Value: -n.Value}
	}
	return &Prefix{Op: OpSub, X: operand}
}

func (x *Number) Substitute(bindings Bindings) Expression { return x }

func (x *Pi) Substitute(bindings Bindings) Expression { return x }

func (x *Variable) Substitute(bindings Bindings) Expression {
	if v, ok := bindings[x.Name]; ok {
		return &Number{Value: v}
	}
	return x
}

func (x *Reference) Substitute(bindings Bindings) Expression { return x }

func (x *Call) Substitute(bindings Bindings) Expression {
	return &Call{Fn: x.Fn, Arg: x.Arg.Substitute(bindings)}
}

func (x *Infix) Substitute(bindings Bindings) Expression {
	return &Infix{
		X:  x.X.Substitute(bindings),
		Op: x.Op,
		Y:  x.Y.Substitute(bindings),
	}
}

func (x *Prefix) Substitute(bindings Bindings) Expression {
	return &Prefix{Op: x.Op, X: x.X.Substitute(bindings)}
}

// Equal reports whether two expressions have structurally identical
// simplified forms. Spellings that fold to the same constants compare
// equal: 2+3 equals 5, and a+b equals b+a through canonical operand
// ordering.
func Equal(a, b Expression) bool {
	if a == nil || b == nil {
		return a == b
	}
	return structuralEqual(a.Simplify(), b.Simplify())
}

// Hash returns a stable hash of the expression's simplified form. Equal
// expressions hash identically, across processes.
func Hash(e Expression) uint64 {
	return hashOf(e.Simplify())
}

// References returns every memory reference appearing in the expression,
// in left-to-right order.
func References(e Expression) []MemoryReference {
	var refs []MemoryReference
	collectReferences(e, &refs)
	return refs
}

func collectReferences(e Expression, refs *[]MemoryReference) {
	switch e := e.(type) {
	case *Reference:
		*refs = append(*refs, e.Ref)
	case *Call:
		collectReferences(e.Arg, refs)
	case *Infix:
		collectReferences(e.X, refs)
		collectReferences(e.Y, refs)
	case *Prefix:
		collectReferences(e.X, refs)
	}
}

func structuralEqual(a, b Expression) bool {
	switch a := a.(type) {
	case *Number:
		other, ok := b.(*Number)
		return ok && a.Value == other.Value
	case *Pi:
		_, ok := b.(*Pi)
		return ok
	case *Variable:
		other, ok := b.(*Variable)
		return ok && a.Name == other.Name
	case *Reference:
		other, ok := b.(*Reference)
		return ok && a.Ref == other.Ref
	case *Call:
		other, ok := b.(*Call)
		return ok && a.Fn == other.Fn && structuralEqual(a.Arg, other.Arg)
	case *Infix:
		other, ok := b.(*Infix)
		return ok && a.Op == other.Op &&
			structuralEqual(a.X, other.X) && structuralEqual(a.Y, other.Y)
	case *Prefix:
		other, ok := b.(*Prefix)
		return ok && a.Op == other.Op && structuralEqual(a.X, other.X)
	}
	return false
}

// hashOf hashes the expression tree as-is, without simplifying. FNV-1a is
// used so hashes are stable across runs.
func hashOf(e Expression) uint64 {
	h := fnv.New64a()
	hashExpression(h, e)
	return h.Sum64()
}

func hashExpression(h hash.Hash64, e Expression) {
	var buf [8]byte
	switch e := e.(type) {
	case *Number:
		h.Write([]byte{'n'})
		// Zero-valued parts are skipped so 0.0 and -0.0 hash identically,
		// keeping Hash consistent with Equal.
		if re := real(e.Value); math.Abs(re) > 0 {
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(re))
			h.Write(buf[:])
		}
		if im := imag(e.Value); math.Abs(im) > 0 {
			binary.BigEndian.PutUint64(buf[:], math.Float64bits(im))
			h.Write(buf[:])
		}
	case *Pi:
		h.Write([]byte{'p'})
	case *Variable:
		h.Write([]byte{'v'})
		io.WriteString(h, e.Name)
	case *Reference:
		h.Write([]byte{'r'})
		io.WriteString(h, e.Ref.Name)
		binary.BigEndian.PutUint64(buf[:], e.Ref.Index)
		h.Write(buf[:])
	case *Call:
		h.Write([]byte{'c'})
		io.WriteString(h, string(e.Fn))
		hashExpression(h, e.Arg)
	case *Infix:
		h.Write([]byte{'i'})
		io.WriteString(h, string(e.Op))
		hashExpression(h, e.X)
		hashExpression(h, e.Y)
	case *Prefix:
		h.Write([]byte{'x'})
		io.WriteString(h, string(e.Op))
		hashExpression(h, e.X)
	}
}
