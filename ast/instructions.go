package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/token"
)

// Gate is a gate application, possibly wrapped in modifiers:
//
//	CONTROLLED DAGGER RX(pi/2) 0 1
type Gate struct {
	StartPos  token.Position // position of the first modifier or the gate name
	EndPos    token.Position
	Modifiers []Modifier
	Name      string
	Params    []expr.Expression
	Qubits    []Qubit
}

func (x *Gate) instNode() {}

func (x *Gate) Pos() token.Position { return x.StartPos }
func (x *Gate) End() token.Position { return x.EndPos }

func (x *Gate) String() string {
	var out bytes.Buffer
	for _, m := range x.Modifiers {
		out.WriteString(string(m))
		out.WriteString(" ")
	}
	out.WriteString(x.Name)
	if len(x.Params) > 0 {
		out.WriteString("(")
		for i, p := range x.Params {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(p.String())
		}
		out.WriteString(")")
	}
	for _, q := range x.Qubits {
		out.WriteString(" ")
		out.WriteString(q.String())
	}
	return out.String()
}

// Measurement is a MEASURE instruction. The target is nil when the result
// is discarded.
type Measurement struct {
	Keyword token.Position
	EndPos  token.Position
	Qubit   Qubit
	Target  *expr.MemoryReference
}

func (x *Measurement) instNode() {}

func (x *Measurement) Pos() token.Position { return x.Keyword }
func (x *Measurement) End() token.Position { return x.EndPos }

func (x *Measurement) String() string {
	out := "MEASURE " + x.Qubit.String()
	if x.Target != nil {
		out += " " + x.Target.String()
	}
	return out
}

// Operand is a classical instruction operand: a memory reference or a
// numeric literal.
type Operand interface {
	String() string
	operandValue()
}

// RefOperand is a memory reference operand.
type RefOperand struct {
	Ref expr.MemoryReference
}

func (o RefOperand) operandValue() {}

func (o RefOperand) String() string { return o.Ref.String() }

// IntOperand is an integer literal operand.
type IntOperand struct {
	Value int64
}

func (o IntOperand) operandValue() {}

func (o IntOperand) String() string { return strconv.FormatInt(o.Value, 10) }

// RealOperand is a floating point literal operand. It always serializes
// with a decimal point or exponent so it reparses as a real.
type RealOperand struct {
	Value float64
}

func (o RealOperand) operandValue() {}

func (o RealOperand) String() string {
	s := strconv.FormatFloat(o.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// BinaryOp is a two-operand classical instruction: ADD, SUB, MUL, DIV,
// AND, IOR, or XOR. The destination is read, combined with the source,
// and written back.
type BinaryOp struct {
	Keyword token.Position
	EndPos  token.Position
	Op      string // the command spelling, e.g. "ADD"
	Dest    expr.MemoryReference
	Source  Operand
}

func (x *BinaryOp) instNode() {}

func (x *BinaryOp) Pos() token.Position { return x.Keyword }
func (x *BinaryOp) End() token.Position { return x.EndPos }

func (x *BinaryOp) String() string {
	return x.Op + " " + x.Dest.String() + " " + x.Source.String()
}

// UnaryOp is a one-operand classical instruction: NEG or NOT.
type UnaryOp struct {
	Keyword token.Position
	EndPos  token.Position
	Op      string // "NEG" or "NOT"
	Dest    expr.MemoryReference
}

func (x *UnaryOp) instNode() {}

func (x *UnaryOp) Pos() token.Position { return x.Keyword }
func (x *UnaryOp) End() token.Position { return x.EndPos }

func (x *UnaryOp) String() string { return x.Op + " " + x.Dest.String() }

// Move writes a value into a memory slot without reading it first.
type Move struct {
	Keyword token.Position
	EndPos  token.Position
	Dest    expr.MemoryReference
	Source  Operand
}

func (x *Move) instNode() {}

func (x *Move) Pos() token.Position { return x.Keyword }
func (x *Move) End() token.Position { return x.EndPos }

func (x *Move) String() string {
	return "MOVE " + x.Dest.String() + " " + x.Source.String()
}

// Exchange swaps the contents of two memory slots.
type Exchange struct {
	Keyword token.Position
	EndPos  token.Position
	Left    expr.MemoryReference
	Right   expr.MemoryReference
}

func (x *Exchange) instNode() {}

func (x *Exchange) Pos() token.Position { return x.Keyword }
func (x *Exchange) End() token.Position { return x.EndPos }

func (x *Exchange) String() string {
	return "EXCHANGE " + x.Left.String() + " " + x.Right.String()
}

// Load reads a dynamically indexed slot of a memory region:
//
//	LOAD dest region offset
type Load struct {
	Keyword token.Position
	EndPos  token.Position
	Dest    expr.MemoryReference
	Source  string // region name
	Offset  expr.MemoryReference
}

func (x *Load) instNode() {}

func (x *Load) Pos() token.Position { return x.Keyword }
func (x *Load) End() token.Position { return x.EndPos }

func (x *Load) String() string {
	return "LOAD " + x.Dest.String() + " " + x.Source + " " + x.Offset.String()
}

// Store writes a dynamically indexed slot of a memory region:
//
//	STORE region offset source
type Store struct {
	Keyword token.Position
	EndPos  token.Position
	Dest    string // region name
	Offset  expr.MemoryReference
	Source  Operand
}

func (x *Store) instNode() {}

func (x *Store) Pos() token.Position { return x.Keyword }
func (x *Store) End() token.Position { return x.EndPos }

func (x *Store) String() string {
	return "STORE " + x.Dest + " " + x.Offset.String() + " " + x.Source.String()
}

// Label defines a jump target: LABEL @name.
type Label struct {
	Keyword token.Position
	EndPos  token.Position
	Name    string
}

func (x *Label) instNode() {}

func (x *Label) Pos() token.Position { return x.Keyword }
func (x *Label) End() token.Position { return x.EndPos }

func (x *Label) String() string { return "LABEL @" + x.Name }

// Jump transfers control unconditionally.
type Jump struct {
	Keyword token.Position
	EndPos  token.Position
	Target  string
}

func (x *Jump) instNode() {}

func (x *Jump) Pos() token.Position { return x.Keyword }
func (x *Jump) End() token.Position { return x.EndPos }

func (x *Jump) String() string { return "JUMP @" + x.Target }

// JumpWhen transfers control if a memory slot holds a nonzero value.
type JumpWhen struct {
	Keyword   token.Position
	EndPos    token.Position
	Target    string
	Condition expr.MemoryReference
}

func (x *JumpWhen) instNode() {}

func (x *JumpWhen) Pos() token.Position { return x.Keyword }
func (x *JumpWhen) End() token.Position { return x.EndPos }

func (x *JumpWhen) String() string {
	return "JUMP-WHEN @" + x.Target + " " + x.Condition.String()
}

// JumpUnless transfers control if a memory slot holds zero.
type JumpUnless struct {
	Keyword   token.Position
	EndPos    token.Position
	Target    string
	Condition expr.MemoryReference
}

func (x *JumpUnless) instNode() {}

func (x *JumpUnless) Pos() token.Position { return x.Keyword }
func (x *JumpUnless) End() token.Position { return x.EndPos }

func (x *JumpUnless) String() string {
	return "JUMP-UNLESS @" + x.Target + " " + x.Condition.String()
}

// Halt ends program execution.
type Halt struct {
	Keyword token.Position
}

func (x *Halt) instNode() {}

func (x *Halt) Pos() token.Position { return x.Keyword }
func (x *Halt) End() token.Position { return x.Keyword.Advance(4) } // len("HALT")

func (x *Halt) String() string { return "HALT" }

// Wait pauses execution until an external signal.
type Wait struct {
	Keyword token.Position
}

func (x *Wait) instNode() {}

func (x *Wait) Pos() token.Position { return x.Keyword }
func (x *Wait) End() token.Position { return x.Keyword.Advance(4) } // len("WAIT")

func (x *Wait) String() string { return "WAIT" }

// Nop does nothing.
type Nop struct {
	Keyword token.Position
}

func (x *Nop) instNode() {}

func (x *Nop) Pos() token.Position { return x.Keyword }
func (x *Nop) End() token.Position { return x.Keyword.Advance(3) } // len("NOP")

func (x *Nop) String() string { return "NOP" }

// Reset returns a qubit to the ground state, or every qubit when no qubit
// is given.
type Reset struct {
	Keyword token.Position
	EndPos  token.Position
	Qubit   *Qubit
}

func (x *Reset) instNode() {}

func (x *Reset) Pos() token.Position { return x.Keyword }
func (x *Reset) End() token.Position { return x.EndPos }

func (x *Reset) String() string {
	if x.Qubit == nil {
		return "RESET"
	}
	return "RESET " + x.Qubit.String()
}

// NamedParameter is one name: value pair in a waveform invocation.
type NamedParameter struct {
	Name  string
	Value expr.Expression
}

// WaveformInvocation references a waveform by name, optionally with
// parameters: flat(duration: 1e-6, iq: 1).
type WaveformInvocation struct {
	Name   string
	Params []NamedParameter
}

func (w WaveformInvocation) String() string {
	if len(w.Params) == 0 {
		return w.Name
	}
	var out bytes.Buffer
	out.WriteString(w.Name)
	out.WriteString("(")
	for i, p := range w.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.Name)
		out.WriteString(": ")
		out.WriteString(p.Value.String())
	}
	out.WriteString(")")
	return out.String()
}

// Pulse plays a waveform on a frame. A blocking pulse reserves every frame
// on the qubits involved; NONBLOCKING reserves only its own frame.
type Pulse struct {
	Keyword     token.Position
	EndPos      token.Position
	NonBlocking bool
	Frame       FrameIdentifier
	Waveform    WaveformInvocation
}

func (x *Pulse) instNode() {}

func (x *Pulse) Pos() token.Position { return x.Keyword }
func (x *Pulse) End() token.Position { return x.EndPos }

func (x *Pulse) String() string {
	out := "PULSE " + x.Frame.String() + " " + x.Waveform.String()
	if x.NonBlocking {
		return "NONBLOCKING " + out
	}
	return out
}

// Capture demodulates a frame against a waveform, writing the result to
// memory.
type Capture struct {
	Keyword     token.Position
	EndPos      token.Position
	NonBlocking bool
	Frame       FrameIdentifier
	Waveform    WaveformInvocation
	Target      expr.MemoryReference
}

func (x *Capture) instNode() {}

func (x *Capture) Pos() token.Position { return x.Keyword }
func (x *Capture) End() token.Position { return x.EndPos }

func (x *Capture) String() string {
	out := "CAPTURE " + x.Frame.String() + " " + x.Waveform.String() + " " + x.Target.String()
	if x.NonBlocking {
		return "NONBLOCKING " + out
	}
	return out
}

// RawCapture records raw IQ values from a frame for a duration, writing
// them to memory.
type RawCapture struct {
	Keyword     token.Position
	EndPos      token.Position
	NonBlocking bool
	Frame       FrameIdentifier
	Duration    expr.Expression
	Target      expr.MemoryReference
}

func (x *RawCapture) instNode() {}

func (x *RawCapture) Pos() token.Position { return x.Keyword }
func (x *RawCapture) End() token.Position { return x.EndPos }

func (x *RawCapture) String() string {
	out := "RAW-CAPTURE " + x.Frame.String() + " " + x.Duration.String() + " " + x.Target.String()
	if x.NonBlocking {
		return "NONBLOCKING " + out
	}
	return out
}

// Delay idles qubits, or specific frames on those qubits, for a duration
// in seconds.
type Delay struct {
	Keyword  token.Position
	EndPos   token.Position
	Qubits   []Qubit
	Frames   []string // frame names; empty means all frames on the qubits
	Duration expr.Expression
}

func (x *Delay) instNode() {}

func (x *Delay) Pos() token.Position { return x.Keyword }
func (x *Delay) End() token.Position { return x.EndPos }

func (x *Delay) String() string {
	var out bytes.Buffer
	out.WriteString("DELAY")
	for _, q := range x.Qubits {
		out.WriteString(" ")
		out.WriteString(q.String())
	}
	for _, f := range x.Frames {
		out.WriteString(" ")
		out.WriteString(strconv.Quote(f))
	}
	out.WriteString(" ")
	out.WriteString(x.Duration.String())
	return out.String()
}

// Fence orders all instructions on the listed qubits: everything earlier
// completes before anything later starts. A bare FENCE covers all qubits.
type Fence struct {
	Keyword token.Position
	EndPos  token.Position
	Qubits  []Qubit
}

func (x *Fence) instNode() {}

func (x *Fence) Pos() token.Position { return x.Keyword }
func (x *Fence) End() token.Position { return x.EndPos }

func (x *Fence) String() string {
	out := "FENCE"
	for _, q := range x.Qubits {
		out += " " + q.String()
	}
	return out
}

// Pragma is an opaque directive passed through to later tools.
type Pragma struct {
	Keyword token.Position
	EndPos  token.Position
	Name    string
	Args    []string
	Data    string // trailing quoted string
	HasData bool
}

func (x *Pragma) instNode() {}

func (x *Pragma) Pos() token.Position { return x.Keyword }
func (x *Pragma) End() token.Position { return x.EndPos }

func (x *Pragma) String() string {
	var out bytes.Buffer
	out.WriteString("PRAGMA ")
	out.WriteString(x.Name)
	for _, arg := range x.Args {
		out.WriteString(" ")
		out.WriteString(arg)
	}
	if x.HasData {
		out.WriteString(" ")
		out.WriteString(strconv.Quote(x.Data))
	}
	return out.String()
}
