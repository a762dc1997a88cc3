package program

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/expr"
)

// Graph is a dependency graph over one basic block's instructions. Nodes
// are indices into the block's instruction list. Edges always point from
// an earlier instruction to a later one, so the graph is acyclic by
// construction. Instructions with no path between them commute: the
// topological orders of the graph are exactly the valid execution orders
// of the block.
type Graph struct {
	adjacency [][]int // sorted successor lists, one per instruction
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.adjacency) }

// Neighbors returns the successors of node i in ascending order. The
// returned slice must not be modified.
func (g *Graph) Neighbors(i int) []int {
	if i < 0 || i >= len(g.adjacency) {
		return nil
	}
	return g.adjacency[i]
}

// HasEdge returns true when instruction j depends directly on
// instruction i.
func (g *Graph) HasEdge(i, j int) bool {
	for _, k := range g.Neighbors(i) {
		if k == j {
			return true
		}
		if k > j {
			break
		}
	}
	return false
}

// Edges returns every edge as a (from, to) pair, ordered by source then
// destination.
func (g *Graph) Edges() [][2]int {
	var edges [][2]int
	for i, successors := range g.adjacency {
		for _, j := range successors {
			edges = append(edges, [2]int{i, j})
		}
	}
	return edges
}

// TopologicalOrder returns a valid execution order of the block: every
// instruction appears after each instruction it depends on. Ties break
// toward the lower index, so the result is deterministic.
func (g *Graph) TopologicalOrder() []int {
	n := len(g.adjacency)
	indegree := make([]int, n)
	for _, successors := range g.adjacency {
		for _, j := range successors {
			indegree[j]++
		}
	}
	placed := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !placed[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		placed[next] = true
		order = append(order, next)
		for _, j := range g.adjacency[next] {
			indegree[j]--
		}
	}
	return order
}

// DOT renders the graph in graphviz dot syntax, labeling each node with
// its instruction.
func (g *Graph) DOT(block BasicBlock) string {
	var out strings.Builder
	out.WriteString("digraph ")
	out.WriteString(strconv.Quote(block.Name))
	out.WriteString(" {\n")
	for i, inst := range block.Instructions {
		fmt.Fprintf(&out, "  n%d [label=%s];\n", i, strconv.Quote(fmt.Sprintf("%d: %s", i, inst.String())))
	}
	for _, edge := range g.Edges() {
		fmt.Fprintf(&out, "  n%d -> n%d;\n", edge[0], edge[1])
	}
	out.WriteString("}\n")
	return out.String()
}

// DependencyGraph computes the data dependencies between the instructions
// of one basic block. The resource model is conservative: a gate reads and
// writes every qubit it names, a pulse operation reads and writes its
// frame and the frame's qubits, and classical instructions read and write
// memory slots. An instruction that reads a resource depends on the
// resource's last writer; a writer depends on the last writer and on every
// read since. WAIT, bare FENCE, and bare RESET are barriers: they order
// against every other instruction in the block.
func (p *Program) DependencyGraph(block BasicBlock) *Graph {
	n := len(block.Instructions)
	successors := make([]map[int]bool, n)
	addEdge := func(from, to int) {
		if from == to {
			return
		}
		if successors[from] == nil {
			successors[from] = map[int]bool{}
		}
		successors[from][to] = true
	}

	lastWriter := map[string]int{}
	readers := map[string][]int{}
	barrier := -1

	for i, inst := range block.Instructions {
		if isBarrier(inst) {
			lo := barrier
			if lo < 0 {
				lo = 0
			}
			for j := lo; j < i; j++ {
				addEdge(j, i)
			}
			barrier = i
			continue
		}
		if barrier >= 0 {
			addEdge(barrier, i)
		}
		reads, writes := p.instructionResources(inst)
		for _, r := range reads {
			if w, ok := lastWriter[r]; ok {
				addEdge(w, i)
			}
			readers[r] = append(readers[r], i)
		}
		for _, r := range writes {
			if w, ok := lastWriter[r]; ok {
				addEdge(w, i)
			}
			for _, reader := range readers[r] {
				addEdge(reader, i)
			}
			delete(readers, r)
			lastWriter[r] = i
		}
	}

	adjacency := make([][]int, n)
	for i, set := range successors {
		if len(set) == 0 {
			continue
		}
		list := make([]int, 0, len(set))
		for j := range set {
			list = append(list, j)
		}
		sort.Ints(list)
		adjacency[i] = list
	}
	return &Graph{adjacency: adjacency}
}

// isBarrier returns true for instructions that order against everything
// in their block: WAIT, FENCE with no qubits, and RESET with no qubit.
func isBarrier(inst ast.Instruction) bool {
	switch x := inst.(type) {
	case *ast.Wait:
		return true
	case *ast.Fence:
		return len(x.Qubits) == 0
	case *ast.Reset:
		return x.Qubit == nil
	}
	return false
}

// qubitResource returns the scheduling resource for a qubit.
func qubitResource(q ast.Qubit) string {
	return "qubit " + q.String()
}

// frameResource returns the scheduling resource for a frame.
func frameResource(f ast.FrameIdentifier) string {
	return "frame " + f.Key()
}

// slotResource returns the scheduling resource for one memory slot.
// Distinct slots of a declared region are distinct resources. Slots of an
// undeclared region collapse onto the region itself, since its extent is
// unknown.
func (p *Program) slotResource(name string, index uint64) string {
	if _, declared := p.regions[name]; declared {
		return "mem " + name + "[" + strconv.FormatUint(index, 10) + "]"
	}
	return "mem " + name
}

// regionResources returns the scheduling resources for a whole-region
// access: every declared slot, or the single collapsed resource when the
// region is undeclared.
func (p *Program) regionResources(name string) []string {
	decl, declared := p.regions[name]
	if !declared {
		return []string{"mem " + name}
	}
	out := make([]string, 0, decl.Size)
	for i := uint64(0); i < decl.Size; i++ {
		out = append(out, "mem "+name+"["+strconv.FormatUint(i, 10)+"]")
	}
	return out
}

// instructionResources returns the resources an instruction reads and
// writes. Resources read and written both appear in both lists.
func (p *Program) instructionResources(inst ast.Instruction) (reads, writes []string) {
	read := func(resources ...string) { reads = append(reads, resources...) }
	write := func(resources ...string) { writes = append(writes, resources...) }
	touch := func(resources ...string) { read(resources...); write(resources...) }
	readRefs := func(exprs ...expr.Expression) {
		for _, e := range exprs {
			if e == nil {
				continue
			}
			for _, r := range expr.References(e) {
				read(p.slotResource(r.Name, r.Index))
			}
		}
	}
	readOperand := func(o ast.Operand) {
		if r, ok := o.(ast.RefOperand); ok {
			read(p.slotResource(r.Ref.Name, r.Ref.Index))
		}
	}

	switch x := inst.(type) {
	case *ast.Gate:
		for _, q := range x.Qubits {
			touch(qubitResource(q))
		}
		readRefs(x.Params...)
	case *ast.Measurement:
		touch(qubitResource(x.Qubit))
		if x.Target != nil {
			write(p.slotResource(x.Target.Name, x.Target.Index))
		}
	case *ast.BinaryOp:
		touch(p.slotResource(x.Dest.Name, x.Dest.Index))
		readOperand(x.Source)
	case *ast.UnaryOp:
		touch(p.slotResource(x.Dest.Name, x.Dest.Index))
	case *ast.Move:
		write(p.slotResource(x.Dest.Name, x.Dest.Index))
		readOperand(x.Source)
	case *ast.Exchange:
		touch(p.slotResource(x.Left.Name, x.Left.Index))
		touch(p.slotResource(x.Right.Name, x.Right.Index))
	case *ast.Load:
		write(p.slotResource(x.Dest.Name, x.Dest.Index))
		read(p.regionResources(x.Source)...)
		read(p.slotResource(x.Offset.Name, x.Offset.Index))
	case *ast.Store:
		write(p.regionResources(x.Dest)...)
		read(p.slotResource(x.Offset.Name, x.Offset.Index))
		readOperand(x.Source)
	case *ast.Pulse:
		touch(frameResource(x.Frame))
		for _, q := range x.Frame.Qubits {
			touch(qubitResource(q))
		}
		for _, param := range x.Waveform.Params {
			readRefs(param.Value)
		}
	case *ast.Capture:
		touch(frameResource(x.Frame))
		for _, q := range x.Frame.Qubits {
			touch(qubitResource(q))
		}
		for _, param := range x.Waveform.Params {
			readRefs(param.Value)
		}
		write(p.slotResource(x.Target.Name, x.Target.Index))
	case *ast.RawCapture:
		touch(frameResource(x.Frame))
		for _, q := range x.Frame.Qubits {
			touch(qubitResource(q))
		}
		readRefs(x.Duration)
		write(p.slotResource(x.Target.Name, x.Target.Index))
	case *ast.Delay:
		for _, q := range x.Qubits {
			touch(qubitResource(q))
		}
		for _, name := range x.Frames {
			touch(frameResource(ast.FrameIdentifier{Qubits: x.Qubits, Name: name}))
		}
		readRefs(x.Duration)
	case *ast.Fence:
		// A bare FENCE is a barrier and never reaches here.
		for _, q := range x.Qubits {
			touch(qubitResource(q))
		}
	case *ast.Reset:
		// A bare RESET is a barrier and never reaches here.
		if x.Qubit != nil {
			write(qubitResource(*x.Qubit))
		}
	}
	return reads, writes
}
