// Package program defines the in-memory representation of a parsed Quil
// program and the analyses performed on it: validation, basic block
// discovery, and instruction dependency graphs.
//
// A Program is assembled by a single writer (normally the parser) through
// Append. After construction it is treated as immutable: every analysis is
// a pure read computed on demand, so any number of goroutines may share one
// Program.
package program

import (
	"strings"

	"github.com/deepnoodle-ai/quill/ast"
)

// Program holds the ordered top-level items of a parsed program together
// with lookup tables derived from its definitions.
type Program struct {
	items []ast.Instruction

	regions      map[string]*ast.Declaration
	gates        map[string]*ast.GateDefinition
	circuits     map[string]*ast.CircuitDefinition
	calibrations []*ast.Calibration
	measureCals  []*ast.MeasureCalibration
	frames       map[string]*ast.FrameDefinition
	waveforms    map[string]*ast.WaveformDefinition
	labels       map[string]*ast.Label
}

// New returns an empty program.
func New() *Program {
	return &Program{
		regions:   map[string]*ast.Declaration{},
		gates:     map[string]*ast.GateDefinition{},
		circuits:  map[string]*ast.CircuitDefinition{},
		frames:    map[string]*ast.FrameDefinition{},
		waveforms: map[string]*ast.WaveformDefinition{},
		labels:    map[string]*ast.Label{},
	}
}

// Append adds instructions to the end of the program, updating the lookup
// tables. The first definition of a name wins its table slot; Validate
// reports duplicates.
func (p *Program) Append(instructions ...ast.Instruction) {
	for _, inst := range instructions {
		p.items = append(p.items, inst)
		switch x := inst.(type) {
		case *ast.Declaration:
			if _, ok := p.regions[x.Name]; !ok {
				p.regions[x.Name] = x
			}
		case *ast.GateDefinition:
			if _, ok := p.gates[x.Name]; !ok {
				p.gates[x.Name] = x
			}
		case *ast.CircuitDefinition:
			if _, ok := p.circuits[x.Name]; !ok {
				p.circuits[x.Name] = x
			}
		case *ast.Calibration:
			p.calibrations = append(p.calibrations, x)
		case *ast.MeasureCalibration:
			p.measureCals = append(p.measureCals, x)
		case *ast.FrameDefinition:
			if _, ok := p.frames[x.Frame.Key()]; !ok {
				p.frames[x.Frame.Key()] = x
			}
		case *ast.WaveformDefinition:
			if _, ok := p.waveforms[x.Name]; !ok {
				p.waveforms[x.Name] = x
			}
		case *ast.Label:
			if _, ok := p.labels[x.Name]; !ok {
				p.labels[x.Name] = x
			}
		}
	}
}

// Len returns the number of top-level items.
func (p *Program) Len() int {
	return len(p.items)
}

// Items returns every top-level item in source order. The returned slice
// must not be modified.
func (p *Program) Items() []ast.Instruction {
	return p.items
}

// Instructions returns the executable instructions in source order,
// skipping declarations and definitions.
func (p *Program) Instructions() []ast.Instruction {
	var out []ast.Instruction
	for _, item := range p.items {
		if !ast.IsDefinition(item) {
			out = append(out, item)
		}
	}
	return out
}

// Definitions returns the declarations and definitions in source order.
func (p *Program) Definitions() []ast.Instruction {
	var out []ast.Instruction
	for _, item := range p.items {
		if ast.IsDefinition(item) {
			out = append(out, item)
		}
	}
	return out
}

// MemoryRegion looks up a DECLARE by region name.
func (p *Program) MemoryRegion(name string) (*ast.Declaration, bool) {
	d, ok := p.regions[name]
	return d, ok
}

// GateDefinition looks up a DEFGATE by gate name.
func (p *Program) GateDefinition(name string) (*ast.GateDefinition, bool) {
	g, ok := p.gates[name]
	return g, ok
}

// CircuitDefinition looks up a DEFCIRCUIT by circuit name.
func (p *Program) CircuitDefinition(name string) (*ast.CircuitDefinition, bool) {
	c, ok := p.circuits[name]
	return c, ok
}

// Waveform looks up a DEFWAVEFORM by waveform name.
func (p *Program) Waveform(name string) (*ast.WaveformDefinition, bool) {
	w, ok := p.waveforms[name]
	return w, ok
}

// Frame looks up a DEFFRAME by frame identifier.
func (p *Program) Frame(f ast.FrameIdentifier) (*ast.FrameDefinition, bool) {
	d, ok := p.frames[f.Key()]
	return d, ok
}

// Frames returns every frame definition in source order.
func (p *Program) Frames() []*ast.FrameDefinition {
	var out []*ast.FrameDefinition
	for _, item := range p.items {
		if f, ok := item.(*ast.FrameDefinition); ok {
			out = append(out, f)
		}
	}
	return out
}

// Calibrations returns every DEFCAL in source order.
func (p *Program) Calibrations() []*ast.Calibration {
	return p.calibrations
}

// MeasureCalibrations returns every DEFCAL MEASURE in source order.
func (p *Program) MeasureCalibrations() []*ast.MeasureCalibration {
	return p.measureCals
}

// Label looks up a LABEL by name. When a label is defined more than once
// the first definition wins; Validate reports the duplicates.
func (p *Program) Label(name string) (*ast.Label, bool) {
	l, ok := p.labels[name]
	return l, ok
}

// Labels returns every label in source order, including duplicates.
func (p *Program) Labels() []*ast.Label {
	var out []*ast.Label
	for _, item := range p.items {
		if l, ok := item.(*ast.Label); ok {
			out = append(out, l)
		}
	}
	return out
}

// Text serializes the program to canonical Quil: every item rendered in
// canonical form, one per line, with definition bodies indented by tabs.
// A non-empty program ends with a newline. Parsing the result yields a
// structurally identical program, and serializing that parse yields this
// same text.
func (p *Program) Text() string {
	if len(p.items) == 0 {
		return ""
	}
	var out strings.Builder
	for _, item := range p.items {
		out.WriteString(item.String())
		out.WriteByte('\n')
	}
	return out.String()
}

func (p *Program) String() string {
	return p.Text()
}
