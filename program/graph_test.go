package program

import (
	"testing"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/wonton/assert"
)

func pulse(qubit uint64, frameName string) *ast.Pulse {
	return &ast.Pulse{
		Frame:    ast.FrameIdentifier{Qubits: []ast.Qubit{{Index: qubit}}, Name: frameName},
		Waveform: ast.WaveformInvocation{Name: "flat"},
	}
}

func TestDependencyGraphChain(t *testing.T) {
	p := build(
		declare("ro", ast.TypeBit, 2),
		gate("H", 0),
		gate("CNOT", 0, 1),
		measure(0, "ro", 0),
	)
	blocks := p.BasicBlocks()
	assert.Len(t, blocks, 1)

	g := p.DependencyGraph(blocks[0])
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, g.Edges())
	assert.True(t, g.HasEdge(0, 1))
	assert.True(t, g.HasEdge(1, 2))
	assert.False(t, g.HasEdge(0, 2)) // only transitively ordered
}

func TestDependencyGraphDisjointMeasurements(t *testing.T) {
	// Distinct slots of a declared region are distinct resources, so
	// measurements on distinct qubits into distinct slots commute.
	p := build(declare("ro", ast.TypeBit, 2))

	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		measure(0, "ro", 0),
		measure(1, "ro", 1),
	}})
	assert.Len(t, g.Edges(), 0)

	// The same slot twice is a write-write conflict.
	g = p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		measure(0, "ro", 0),
		measure(1, "ro", 0),
	}})
	assert.Equal(t, [][2]int{{0, 1}}, g.Edges())
}

func TestDependencyGraphUndeclaredRegionCollapses(t *testing.T) {
	// With no declaration the region's extent is unknown, so all of its
	// slots collapse onto one conservative resource.
	p := New()
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		measure(0, "ro", 0),
		measure(1, "ro", 1),
	}})
	assert.Equal(t, [][2]int{{0, 1}}, g.Edges())
}

func TestDependencyGraphWriteAfterRead(t *testing.T) {
	p := build(declare("ro", ast.TypeBit, 2))
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		&ast.Move{Dest: ref("ro", 0), Source: ast.IntOperand{Value: 1}},
		&ast.BinaryOp{Op: "ADD", Dest: ref("ro", 0), Source: ast.RefOperand{Ref: ref("ro", 1)}},
		&ast.Move{Dest: ref("ro", 1), Source: ast.IntOperand{Value: 0}},
	}})
	// The ADD reads ro[1], so the later write to ro[1] must wait for it
	// even though the two never write the same slot.
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, g.Edges())
}

func TestDependencyGraphBarriers(t *testing.T) {
	tests := []struct {
		name    string
		barrier ast.Instruction
	}{
		{"wait", &ast.Wait{}},
		{"bare fence", &ast.Fence{}},
		{"bare reset", &ast.Reset{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
				gate("H", 0),
				tt.barrier,
				gate("X", 1),
			}})
			// The barrier orders against both sides even though the two
			// gates share no qubit.
			assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, g.Edges())
		})
	}
}

func TestDependencyGraphFenceQubits(t *testing.T) {
	p := New()
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		gate("H", 0),
		&ast.Fence{Qubits: []ast.Qubit{{Index: 0}}},
		gate("H", 1),
	}})
	// FENCE 0 orders against qubit 0 only.
	assert.Equal(t, [][2]int{{0, 1}}, g.Edges())
}

func TestDependencyGraphTargetedReset(t *testing.T) {
	p := New()
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		gate("H", 0),
		&ast.Reset{Qubit: &ast.Qubit{Index: 0}},
		gate("X", 0),
		gate("Y", 1),
	}})
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, g.Edges())
}

func TestDependencyGraphFrames(t *testing.T) {
	p := New()

	// Two pulses on the same frame conflict.
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		pulse(0, "rf"),
		pulse(0, "rf"),
	}})
	assert.Equal(t, [][2]int{{0, 1}}, g.Edges())

	// Pulses on different frames over different qubits commute.
	g = p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		pulse(0, "rf"),
		pulse(1, "rf"),
	}})
	assert.Len(t, g.Edges(), 0)
}

func TestDependencyGraphDelay(t *testing.T) {
	p := New()
	delay := &ast.Delay{
		Qubits:   []ast.Qubit{{Index: 0}},
		Frames:   []string{"rf"},
		Duration: &expr.Number{Value: 1e-8},
	}
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		pulse(0, "rf"),
		delay,
		pulse(0, "rf"),
	}})
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, g.Edges())
}

func TestDependencyGraphCaptureWritesTarget(t *testing.T) {
	p := build(declare("iq", ast.TypeReal, 2))
	capture := &ast.Capture{
		Frame:    ast.FrameIdentifier{Qubits: []ast.Qubit{{Index: 0}}, Name: "ro_rx"},
		Waveform: ast.WaveformInvocation{Name: "flat"},
		Target:   ref("iq", 0),
	}
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		capture,
		&ast.BinaryOp{Op: "ADD", Dest: ref("iq", 0), Source: ast.IntOperand{Value: 1}},
	}})
	assert.Equal(t, [][2]int{{0, 1}}, g.Edges())
}

func TestDependencyGraphLoadStore(t *testing.T) {
	p := build(
		declare("table", ast.TypeBit, 2),
		declare("idx", ast.TypeInteger, 1),
		declare("out", ast.TypeBit, 1),
	)
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		&ast.Move{Dest: ref("table", 1), Source: ast.IntOperand{Value: 1}},
		&ast.Load{Dest: ref("out", 0), Source: "table", Offset: ref("idx", 0)},
		&ast.Store{Dest: "table", Offset: ref("idx", 0), Source: ast.IntOperand{Value: 0}},
	}})
	// The LOAD reads every slot of table, so it sees the MOVE; the STORE
	// writes every slot, so it waits for both.
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}}, g.Edges())
}

func TestDependencyGraphFreeFloating(t *testing.T) {
	p := New()
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		&ast.Pragma{Name: "INITIAL_REWIRING", Data: "GREEDY", HasData: true},
		&ast.Nop{},
		gate("H", 0),
	}})
	assert.Len(t, g.Edges(), 0)
}

func TestTopologicalOrder(t *testing.T) {
	p := build(declare("ro", ast.TypeBit, 1))
	g := p.DependencyGraph(BasicBlock{Instructions: []ast.Instruction{
		gate("H", 0),
		gate("X", 0),
		measure(0, "ro", 0),
	}})
	assert.Equal(t, []int{0, 1, 2}, g.TopologicalOrder())

	diamond := &Graph{adjacency: [][]int{{1, 2}, {3}, {3}, nil}}
	assert.Equal(t, []int{0, 1, 2, 3}, diamond.TopologicalOrder())

	assert.Len(t, (&Graph{}).TopologicalOrder(), 0)
}

func TestGraphAccessors(t *testing.T) {
	g := &Graph{adjacency: [][]int{{1, 2}, {2}, nil}}
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []int{1, 2}, g.Neighbors(0))
	assert.Nil(t, g.Neighbors(7))
	assert.True(t, g.HasEdge(0, 2))
	assert.False(t, g.HasEdge(2, 0))
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}}, g.Edges())
}

func TestGraphDOT(t *testing.T) {
	p := New()
	block := BasicBlock{
		Name: "block_0",
		Instructions: []ast.Instruction{
			gate("H", 0),
			gate("CNOT", 0, 1),
		},
	}
	g := p.DependencyGraph(block)
	expected := "digraph \"block_0\" {\n" +
		"  n0 [label=\"0: H 0\"];\n" +
		"  n1 [label=\"1: CNOT 0 1\"];\n" +
		"  n0 -> n1;\n" +
		"}\n"
	assert.Equal(t, expected, g.DOT(block))
}
