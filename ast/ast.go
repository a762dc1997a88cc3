// Package ast defines the abstract syntax tree representation of Quil
// programs. Instructions record the source span they were parsed from;
// operand values such as qubits and memory references are plain values.
package ast

import (
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/quill/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns the canonical textual form of the node. Parsing the
	// result reproduces a structurally identical node.
	String() string
}

// Instruction is a top-level program item: an executable instruction, a
// declaration, or a definition.
type Instruction interface {
	Node
	instNode()
}

// IsDefinition returns true for instructions that declare program structure
// (memory declarations and the DEF* forms) rather than execute.
func IsDefinition(inst Instruction) bool {
	switch inst.(type) {
	case *Declaration, *GateDefinition, *CircuitDefinition, *Calibration,
		*MeasureCalibration, *FrameDefinition, *WaveformDefinition:
		return true
	}
	return false
}

// Modifier is a gate modifier keyword.
type Modifier string

// Gate modifiers, in their source spellings.
const (
	ModControlled Modifier = "CONTROLLED"
	ModDagger     Modifier = "DAGGER"
	ModForked     Modifier = "FORKED"
)

// Qubit names a qubit operand: either a fixed hardware index or a named
// placeholder awaiting later binding. Placeholders appear in circuit and
// calibration definitions and serialize as bare names.
type Qubit struct {
	Index uint64 // fixed index, used when Name is empty
	Name  string // placeholder name, when not empty
}

// IsFixed returns true when the qubit is a fixed hardware index.
func (q Qubit) IsFixed() bool { return q.Name == "" }

func (q Qubit) String() string {
	if q.Name != "" {
		return q.Name
	}
	return strconv.FormatUint(q.Index, 10)
}

// FrameIdentifier names a pulse frame: the qubits it spans plus the frame's
// quoted name.
type FrameIdentifier struct {
	Qubits []Qubit
	Name   string
}

func (f FrameIdentifier) String() string {
	var out strings.Builder
	for _, q := range f.Qubits {
		out.WriteString(q.String())
		out.WriteByte(' ')
	}
	out.WriteString(strconv.Quote(f.Name))
	return out.String()
}

// Key returns a stable identity for the frame, used for table lookups and
// resource tracking.
func (f FrameIdentifier) Key() string {
	var out strings.Builder
	for _, q := range f.Qubits {
		out.WriteString(q.String())
		out.WriteByte(' ')
	}
	out.WriteString(f.Name)
	return out.String()
}
