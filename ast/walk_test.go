package ast

import (
	"fmt"
	"reflect"
	"testing"
)

func TestInspect(t *testing.T) {
	circuit := &CircuitDefinition{
		Name:   "BELL",
		Qubits: []string{"a", "b"},
		Body: []Instruction{
			&Gate{Name: "H", Qubits: []Qubit{{Name: "a"}}},
			&Gate{Name: "CNOT", Qubits: []Qubit{{Name: "a"}, {Name: "b"}}},
		},
	}

	var visited []string
	Inspect(circuit, func(n Node) bool {
		if n == nil {
			return false
		}
		switch n := n.(type) {
		case *CircuitDefinition:
			visited = append(visited, "CircuitDefinition:"+n.Name)
		case *Gate:
			visited = append(visited, "Gate:"+n.Name)
		default:
			visited = append(visited, fmt.Sprintf("%T", n))
		}
		return true
	})

	expected := []string{
		"CircuitDefinition:BELL",
		"Gate:H",
		"Gate:CNOT",
	}
	if !reflect.DeepEqual(visited, expected) {
		t.Errorf("visited wrong.\ngot=%v\nwant=%v", visited, expected)
	}
}

func TestInspectPrune(t *testing.T) {
	cal := &Calibration{
		Name:   "RX",
		Qubits: []Qubit{{Index: 0}},
		Body: []Instruction{
			&Pulse{
				Frame:    FrameIdentifier{Qubits: []Qubit{{Index: 0}}, Name: "xy"},
				Waveform: WaveformInvocation{Name: "flat"},
			},
		},
	}

	count := 0
	Inspect(cal, func(n Node) bool {
		if n == nil {
			return false
		}
		count++
		// Do not descend into the calibration body.
		_, isCal := n.(*Calibration)
		return !isCal
	})
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestPreorder(t *testing.T) {
	measureCal := &MeasureCalibration{
		Qubit:  &Qubit{Index: 0},
		Target: "dest",
		Body: []Instruction{
			&Fence{Qubits: []Qubit{{Index: 0}}},
			&Measurement{Qubit: Qubit{Index: 0}},
		},
	}

	var visited []string
	for n := range Preorder(measureCal) {
		visited = append(visited, fmt.Sprintf("%T", n))
	}
	expected := []string{"*ast.MeasureCalibration", "*ast.Fence", "*ast.Measurement"}
	if !reflect.DeepEqual(visited, expected) {
		t.Errorf("visited wrong.\ngot=%v\nwant=%v", visited, expected)
	}
}

func TestWalkLeafInstruction(t *testing.T) {
	// Instructions without bodies are visited once with no children.
	var visited []string
	Inspect(&Halt{}, func(n Node) bool {
		if n != nil {
			visited = append(visited, fmt.Sprintf("%T", n))
		}
		return true
	})
	if !reflect.DeepEqual(visited, []string{"*ast.Halt"}) {
		t.Errorf("visited wrong. got=%v", visited)
	}
}
