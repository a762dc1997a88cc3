package ast

import (
	"testing"

	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/token"
)

func TestGateString(t *testing.T) {
	gate := &Gate{
		Name: "RX",
		Params: []expr.Expression{
			&expr.Infix{X: &expr.Pi{}, Op: expr.OpDiv, Y: &expr.Number{Value: 2}},
		},
		Qubits: []Qubit{{Index: 0}},
	}
	if gate.String() != "RX((pi/2)) 0" {
		t.Errorf("gate.String() wrong. got=%q", gate.String())
	}

	controlled := &Gate{
		Modifiers: []Modifier{ModControlled, ModDagger},
		Name:      "X",
		Qubits:    []Qubit{{Index: 2}, {Index: 3}},
	}
	if controlled.String() != "CONTROLLED DAGGER X 2 3" {
		t.Errorf("gate.String() wrong. got=%q", controlled.String())
	}
}

func TestInstructionStrings(t *testing.T) {
	ro0 := expr.MemoryReference{Name: "ro"}
	tests := []struct {
		node     Instruction
		expected string
	}{
		{&Measurement{Qubit: Qubit{Index: 0}, Target: &ro0}, "MEASURE 0 ro[0]"},
		{&Measurement{Qubit: Qubit{Name: "q"}}, "MEASURE q"},
		{
			&BinaryOp{Op: "ADD", Dest: ro0, Source: IntOperand{Value: 2}},
			"ADD ro[0] 2",
		},
		{
			&BinaryOp{
				Op:     "SUB",
				Dest:   expr.MemoryReference{Name: "ro", Index: 1},
				Source: IntOperand{Value: -3},
			},
			"SUB ro[1] -3",
		},
		{&UnaryOp{Op: "NEG", Dest: ro0}, "NEG ro[0]"},
		{
			&Move{Dest: expr.MemoryReference{Name: "a"}, Source: RealOperand{Value: 1}},
			"MOVE a[0] 1.0",
		},
		{
			&Exchange{
				Left:  expr.MemoryReference{Name: "a"},
				Right: expr.MemoryReference{Name: "b"},
			},
			"EXCHANGE a[0] b[0]",
		},
		{
			&Load{Dest: expr.MemoryReference{Name: "dest"}, Source: "src", Offset: ro0},
			"LOAD dest[0] src ro[0]",
		},
		{
			&Store{Dest: "dest", Offset: ro0, Source: RefOperand{Ref: expr.MemoryReference{Name: "a"}}},
			"STORE dest ro[0] a[0]",
		},
		{&Label{Name: "start"}, "LABEL @start"},
		{&Jump{Target: "start"}, "JUMP @start"},
		{&JumpWhen{Target: "start", Condition: ro0}, "JUMP-WHEN @start ro[0]"},
		{&JumpUnless{Target: "end", Condition: ro0}, "JUMP-UNLESS @end ro[0]"},
		{&Halt{}, "HALT"},
		{&Wait{}, "WAIT"},
		{&Nop{}, "NOP"},
		{&Reset{}, "RESET"},
		{&Reset{Qubit: &Qubit{Index: 5}}, "RESET 5"},
		{
			&Pulse{
				Frame:    FrameIdentifier{Qubits: []Qubit{{Index: 0}}, Name: "xy"},
				Waveform: WaveformInvocation{Name: "flat"},
			},
			`PULSE 0 "xy" flat`,
		},
		{
			&Pulse{
				NonBlocking: true,
				Frame:       FrameIdentifier{Qubits: []Qubit{{Index: 0}}, Name: "xy"},
				Waveform: WaveformInvocation{
					Name: "custom",
					Params: []NamedParameter{
						{Name: "a", Value: &expr.Number{Value: 1}},
					},
				},
			},
			`NONBLOCKING PULSE 0 "xy" custom(a: 1)`,
		},
		{
			&Capture{
				Frame:    FrameIdentifier{Qubits: []Qubit{{Index: 0}}, Name: "rx"},
				Waveform: WaveformInvocation{Name: "kernel"},
				Target:   ro0,
			},
			`CAPTURE 0 "rx" kernel ro[0]`,
		},
		{
			&RawCapture{
				Frame:    FrameIdentifier{Qubits: []Qubit{{Index: 0}, {Index: 1}}, Name: "rx"},
				Duration: &expr.Number{Value: complex(2e9, 0)},
				Target:   ro0,
			},
			`RAW-CAPTURE 0 1 "rx" 2e+09 ro[0]`,
		},
		{
			&Delay{
				Qubits:   []Qubit{{Index: 0}, {Index: 1}},
				Frames:   []string{"rf"},
				Duration: &expr.Number{Value: complex(1e-6, 0)},
			},
			`DELAY 0 1 "rf" 1e-06`,
		},
		{&Fence{}, "FENCE"},
		{&Fence{Qubits: []Qubit{{Index: 0}, {Index: 1}}}, "FENCE 0 1"},
		{
			&Pragma{Name: "READOUT-POVM", Args: []string{"0"}, Data: "(0.9 0.2 0.1 0.8)", HasData: true},
			`PRAGMA READOUT-POVM 0 "(0.9 0.2 0.1 0.8)"`,
		},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("String() wrong. got=%q, want=%q", got, tt.expected)
		}
	}
}

func TestDefinitionStrings(t *testing.T) {
	decl := &Declaration{Name: "ro", Type: TypeBit, Size: 8, Sized: true}
	if decl.String() != "DECLARE ro BIT[8]" {
		t.Errorf("decl.String() wrong. got=%q", decl.String())
	}

	scalar := &Declaration{Name: "flag", Type: TypeBit, Size: 1}
	if scalar.String() != "DECLARE flag BIT" {
		t.Errorf("decl.String() wrong. got=%q", scalar.String())
	}

	shared := &Declaration{
		Name: "theta", Type: TypeReal, Size: 1, Sized: true,
		Sharing: &Sharing{
			Name:    "params",
			Offsets: []Offset{{Count: 2, Type: TypeReal}},
		},
	}
	if shared.String() != "DECLARE theta REAL[1] SHARING params OFFSET 2 REAL" {
		t.Errorf("decl.String() wrong. got=%q", shared.String())
	}

	gate := &GateDefinition{
		Name: "SQRT-X",
		Kind: MatrixGate,
		Matrix: [][]expr.Expression{
			{&expr.Number{Value: complex(0.5, 0.5)}, &expr.Number{Value: complex(0.5, -0.5)}},
			{&expr.Number{Value: complex(0.5, -0.5)}, &expr.Number{Value: complex(0.5, 0.5)}},
		},
	}
	expected := "DEFGATE SQRT-X:\n\t0.5+0.5i, 0.5-0.5i\n\t0.5-0.5i, 0.5+0.5i"
	if gate.String() != expected {
		t.Errorf("gate.String() wrong. got=%q", gate.String())
	}

	perm := &GateDefinition{
		Name:        "CCNOT",
		Kind:        PermutationGate,
		Permutation: []uint64{0, 1, 2, 3, 4, 5, 7, 6},
	}
	expected = "DEFGATE CCNOT AS PERMUTATION:\n\t0, 1, 2, 3, 4, 5, 7, 6"
	if perm.String() != expected {
		t.Errorf("perm.String() wrong. got=%q", perm.String())
	}

	circuit := &CircuitDefinition{
		Name:   "BELL",
		Qubits: []string{"a", "b"},
		Body: []Instruction{
			&Gate{Name: "H", Qubits: []Qubit{{Name: "a"}}},
			&Gate{Name: "CNOT", Qubits: []Qubit{{Name: "a"}, {Name: "b"}}},
		},
	}
	expected = "DEFCIRCUIT BELL a b:\n\tH a\n\tCNOT a b"
	if circuit.String() != expected {
		t.Errorf("circuit.String() wrong. got=%q", circuit.String())
	}

	cal := &Calibration{
		Name:   "RX",
		Params: []expr.Expression{&expr.Variable{Name: "theta"}},
		Qubits: []Qubit{{Index: 0}},
		Body: []Instruction{
			&Pulse{
				Frame:    FrameIdentifier{Qubits: []Qubit{{Index: 0}}, Name: "xy"},
				Waveform: WaveformInvocation{Name: "flat"},
			},
		},
	}
	expected = "DEFCAL RX(%theta) 0:\n\tPULSE 0 \"xy\" flat"
	if cal.String() != expected {
		t.Errorf("cal.String() wrong. got=%q", cal.String())
	}

	measureCal := &MeasureCalibration{
		Qubit:  &Qubit{Index: 0},
		Target: "dest",
		Body: []Instruction{
			&Measurement{Qubit: Qubit{Index: 0}, Target: &expr.MemoryReference{Name: "dest"}},
		},
	}
	expected = "DEFCAL MEASURE 0 dest:\n\tMEASURE 0 dest[0]"
	if measureCal.String() != expected {
		t.Errorf("measureCal.String() wrong. got=%q", measureCal.String())
	}

	frame := &FrameDefinition{
		Frame: FrameIdentifier{Qubits: []Qubit{{Index: 0}}, Name: "rx"},
		Attributes: []FrameAttribute{
			{Name: "DIRECTION", Text: "tx"},
			{Name: "INITIAL-FREQUENCY", Value: &expr.Number{Value: complex(2e9, 0)}},
		},
	}
	expected = "DEFFRAME 0 \"rx\":\n\tDIRECTION: \"tx\"\n\tINITIAL-FREQUENCY: 2e+09"
	if frame.String() != expected {
		t.Errorf("frame.String() wrong. got=%q", frame.String())
	}

	wf := &WaveformDefinition{
		Name:   "ramp",
		Params: []string{"scale"},
		Samples: []expr.Expression{
			&expr.Number{Value: complex(0.1, 0)},
			&expr.Infix{X: &expr.Number{Value: complex(0.2, 0)}, Op: expr.OpMul, Y: &expr.Variable{Name: "scale"}},
		},
	}
	expected = "DEFWAVEFORM ramp(%scale):\n\t0.1, (0.2*%scale)"
	if wf.String() != expected {
		t.Errorf("wf.String() wrong. got=%q", wf.String())
	}
}

func TestPositions(t *testing.T) {
	start := token.Position{Line: 3, Column: 0, Char: 40, File: "test.quil"}
	end := token.Position{Line: 3, Column: 12, Char: 52, File: "test.quil"}

	m := &Measurement{Keyword: start, EndPos: end, Qubit: Qubit{Index: 0}}
	if m.Pos() != start {
		t.Errorf("Pos() = %v, want %v", m.Pos(), start)
	}
	if m.End() != end {
		t.Errorf("End() = %v, want %v", m.End(), end)
	}

	halt := &Halt{Keyword: start}
	if halt.End().Column != start.Column+4 {
		t.Errorf("Halt.End() column = %d", halt.End().Column)
	}
}

func TestIsDefinition(t *testing.T) {
	definitions := []Instruction{
		&Declaration{},
		&GateDefinition{},
		&CircuitDefinition{},
		&Calibration{},
		&MeasureCalibration{},
		&FrameDefinition{},
		&WaveformDefinition{},
	}
	for _, def := range definitions {
		if !IsDefinition(def) {
			t.Errorf("IsDefinition(%T) = false, want true", def)
		}
	}
	executable := []Instruction{
		&Gate{}, &Measurement{}, &Label{}, &Jump{}, &Halt{}, &Pragma{},
		&Pulse{}, &Fence{}, &BinaryOp{}, &Move{},
	}
	for _, inst := range executable {
		if IsDefinition(inst) {
			t.Errorf("IsDefinition(%T) = true, want false", inst)
		}
	}
}

func TestQubit(t *testing.T) {
	fixed := Qubit{Index: 3}
	if !fixed.IsFixed() || fixed.String() != "3" {
		t.Errorf("fixed qubit wrong: %v %q", fixed.IsFixed(), fixed.String())
	}
	named := Qubit{Name: "q"}
	if named.IsFixed() || named.String() != "q" {
		t.Errorf("named qubit wrong: %v %q", named.IsFixed(), named.String())
	}
}

func TestFrameIdentifier(t *testing.T) {
	f := FrameIdentifier{Qubits: []Qubit{{Index: 0}, {Index: 1}}, Name: "cz"}
	if f.String() != `0 1 "cz"` {
		t.Errorf("frame.String() wrong. got=%q", f.String())
	}
	if f.Key() != "0 1 cz" {
		t.Errorf("frame.Key() wrong. got=%q", f.Key())
	}
}

func TestGateDefinitionArity(t *testing.T) {
	oneQubit := &GateDefinition{
		Kind: MatrixGate,
		Matrix: [][]expr.Expression{
			{&expr.Number{Value: 1}, &expr.Number{Value: 0}},
			{&expr.Number{Value: 0}, &expr.Number{Value: 1}},
		},
	}
	if n, ok := oneQubit.Arity(); !ok || n != 1 {
		t.Errorf("Arity() = %d, %v", n, ok)
	}

	perm := &GateDefinition{
		Kind:        PermutationGate,
		Permutation: []uint64{0, 1, 2, 3, 4, 5, 7, 6},
	}
	if n, ok := perm.Arity(); !ok || n != 3 {
		t.Errorf("Arity() = %d, %v", n, ok)
	}

	ragged := &GateDefinition{
		Kind: MatrixGate,
		Matrix: [][]expr.Expression{
			{&expr.Number{Value: 1}, &expr.Number{Value: 0}},
			{&expr.Number{Value: 0}, &expr.Number{Value: 1}},
			{&expr.Number{Value: 0}, &expr.Number{Value: 0}},
		},
	}
	if _, ok := ragged.Arity(); ok {
		t.Error("Arity() should fail for a 3-row matrix")
	}
}
