package ast

import (
	"bytes"
	"strconv"

	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/token"
)

// DataType is a memory region element type.
type DataType string

// The memory region element types.
const (
	TypeBit     DataType = "BIT"
	TypeOctet   DataType = "OCTET"
	TypeInteger DataType = "INTEGER"
	TypeReal    DataType = "REAL"
)

// Offset is one OFFSET clause of a SHARING declaration.
type Offset struct {
	Count uint64
	Type  DataType
}

// Sharing aliases a declared region onto a parent region.
type Sharing struct {
	Name    string
	Offsets []Offset
}

// Declaration is a DECLARE instruction reserving a named memory region:
//
//	DECLARE ro BIT[8]
//	DECLARE theta REAL[1] SHARING params OFFSET 2 REAL
type Declaration struct {
	Keyword token.Position
	EndPos  token.Position
	Name    string
	Type    DataType
	Size    uint64 // region length; 1 for an unsized declaration
	Sized   bool   // whether the source spelled an explicit [n]
	Sharing *Sharing
}

func (x *Declaration) instNode() {}

func (x *Declaration) Pos() token.Position { return x.Keyword }
func (x *Declaration) End() token.Position { return x.EndPos }

func (x *Declaration) String() string {
	var out bytes.Buffer
	out.WriteString("DECLARE ")
	out.WriteString(x.Name)
	out.WriteString(" ")
	out.WriteString(string(x.Type))
	if x.Sized {
		out.WriteString("[")
		out.WriteString(strconv.FormatUint(x.Size, 10))
		out.WriteString("]")
	}
	if x.Sharing != nil {
		out.WriteString(" SHARING ")
		out.WriteString(x.Sharing.Name)
		for _, off := range x.Sharing.Offsets {
			out.WriteString(" OFFSET ")
			out.WriteString(strconv.FormatUint(off.Count, 10))
			out.WriteString(" ")
			out.WriteString(string(off.Type))
		}
	}
	return out.String()
}

// GateKind distinguishes how a gate definition specifies its unitary.
type GateKind string

// Gate definition kinds.
const (
	MatrixGate      GateKind = "MATRIX"
	PermutationGate GateKind = "PERMUTATION"
)

// GateDefinition is a DEFGATE instruction. Matrix gates list one matrix
// row per body line; permutation gates list a single row of basis indices.
type GateDefinition struct {
	Keyword     token.Position
	EndPos      token.Position
	Name        string
	Params      []string // parameter names, without the % sigil
	Kind        GateKind
	Matrix      [][]expr.Expression // rows, for matrix gates
	Permutation []uint64            // basis permutation, for permutation gates
}

func (x *GateDefinition) instNode() {}

func (x *GateDefinition) Pos() token.Position { return x.Keyword }
func (x *GateDefinition) End() token.Position { return x.EndPos }

// Arity returns the number of qubits the defined gate acts on, and whether
// that could be determined. A matrix with 2^n rows acts on n qubits.
func (x *GateDefinition) Arity() (int, bool) {
	rows := len(x.Matrix)
	if x.Kind == PermutationGate {
		rows = len(x.Permutation)
	}
	n := 0
	for 1<<n < rows {
		n++
	}
	if rows == 0 || 1<<n != rows {
		return 0, false
	}
	return n, true
}

func (x *GateDefinition) String() string {
	var out bytes.Buffer
	out.WriteString("DEFGATE ")
	out.WriteString(x.Name)
	writeParamNames(&out, x.Params)
	if x.Kind == PermutationGate {
		out.WriteString(" AS PERMUTATION:")
		out.WriteString("\n\t")
		for i, v := range x.Permutation {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(strconv.FormatUint(v, 10))
		}
		return out.String()
	}
	out.WriteString(":")
	for _, row := range x.Matrix {
		out.WriteString("\n\t")
		for i, entry := range row {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(entry.String())
		}
	}
	return out.String()
}

// CircuitDefinition is a DEFCIRCUIT instruction: a named, parameterized
// sequence of instructions over formal qubit arguments.
type CircuitDefinition struct {
	Keyword token.Position
	EndPos  token.Position
	Name    string
	Params  []string // parameter names, without the % sigil
	Qubits  []string // formal qubit argument names
	Body    []Instruction
}

func (x *CircuitDefinition) instNode() {}

func (x *CircuitDefinition) Pos() token.Position { return x.Keyword }
func (x *CircuitDefinition) End() token.Position { return x.EndPos }

func (x *CircuitDefinition) String() string {
	var out bytes.Buffer
	out.WriteString("DEFCIRCUIT ")
	out.WriteString(x.Name)
	writeParamNames(&out, x.Params)
	for _, q := range x.Qubits {
		out.WriteString(" ")
		out.WriteString(q)
	}
	out.WriteString(":")
	writeBody(&out, x.Body)
	return out.String()
}

// Calibration is a DEFCAL instruction giving the pulse-level implementation
// of a gate. Parameters may be concrete values (a calibration specialized
// to RX(pi/2)) or variables.
type Calibration struct {
	Keyword   token.Position
	EndPos    token.Position
	Modifiers []Modifier
	Name      string
	Params    []expr.Expression
	Qubits    []Qubit
	Body      []Instruction
}

func (x *Calibration) instNode() {}

func (x *Calibration) Pos() token.Position { return x.Keyword }
func (x *Calibration) End() token.Position { return x.EndPos }

func (x *Calibration) String() string {
	var out bytes.Buffer
	out.WriteString("DEFCAL ")
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
	out.WriteString(":")
	writeBody(&out, x.Body)
	return out.String()
}

// MeasureCalibration is a DEFCAL MEASURE instruction giving the pulse-level
// implementation of measurement.
type MeasureCalibration struct {
	Keyword token.Position
	EndPos  token.Position
	Qubit   *Qubit // nil when the calibration covers any qubit
	Target  string // formal name bound to the destination, may be empty
	Body    []Instruction
}

func (x *MeasureCalibration) instNode() {}

func (x *MeasureCalibration) Pos() token.Position { return x.Keyword }
func (x *MeasureCalibration) End() token.Position { return x.EndPos }

func (x *MeasureCalibration) String() string {
	var out bytes.Buffer
	out.WriteString("DEFCAL MEASURE")
	if x.Qubit != nil {
		out.WriteString(" ")
		out.WriteString(x.Qubit.String())
	}
	if x.Target != "" {
		out.WriteString(" ")
		out.WriteString(x.Target)
	}
	out.WriteString(":")
	writeBody(&out, x.Body)
	return out.String()
}

// FrameAttribute is one attribute line of a frame definition. The value is
// either a quoted string (Value nil) or an expression.
type FrameAttribute struct {
	Name  string
	Text  string
	Value expr.Expression
}

func (a FrameAttribute) String() string {
	if a.Value != nil {
		return a.Name + ": " + a.Value.String()
	}
	return a.Name + ": " + strconv.Quote(a.Text)
}

// FrameDefinition is a DEFFRAME instruction describing a pulse frame:
//
//	DEFFRAME 0 "rx":
//	    INITIAL-FREQUENCY: 2e9
type FrameDefinition struct {
	Keyword    token.Position
	EndPos     token.Position
	Frame      FrameIdentifier
	Attributes []FrameAttribute
}

func (x *FrameDefinition) instNode() {}

func (x *FrameDefinition) Pos() token.Position { return x.Keyword }
func (x *FrameDefinition) End() token.Position { return x.EndPos }

func (x *FrameDefinition) String() string {
	var out bytes.Buffer
	out.WriteString("DEFFRAME ")
	out.WriteString(x.Frame.String())
	out.WriteString(":")
	for _, attr := range x.Attributes {
		out.WriteString("\n\t")
		out.WriteString(attr.String())
	}
	return out.String()
}

// WaveformDefinition is a DEFWAVEFORM instruction listing the IQ samples of
// a custom waveform.
type WaveformDefinition struct {
	Keyword token.Position
	EndPos  token.Position
	Name    string
	Params  []string // parameter names, without the % sigil
	Samples []expr.Expression
}

func (x *WaveformDefinition) instNode() {}

func (x *WaveformDefinition) Pos() token.Position { return x.Keyword }
func (x *WaveformDefinition) End() token.Position { return x.EndPos }

func (x *WaveformDefinition) String() string {
	var out bytes.Buffer
	out.WriteString("DEFWAVEFORM ")
	out.WriteString(x.Name)
	writeParamNames(&out, x.Params)
	out.WriteString(":")
	out.WriteString("\n\t")
	for i, s := range x.Samples {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(s.String())
	}
	return out.String()
}

func writeParamNames(out *bytes.Buffer, params []string) {
	if len(params) == 0 {
		return
	}
	out.WriteString("(")
	for i, p := range params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString("%")
		out.WriteString(p)
	}
	out.WriteString(")")
}

func writeBody(out *bytes.Buffer, body []Instruction) {
	for _, inst := range body {
		out.WriteString("\n\t")
		out.WriteString(inst.String())
	}
}
