package program

import (
	"fmt"

	"github.com/deepnoodle-ai/quill/ast"
)

// BasicBlock is a maximal straight-line run of executable instructions: no
// control transfer enters or leaves its interior. A LABEL opens a block and
// names it; JUMP, JUMP-WHEN, JUMP-UNLESS, and HALT close one as its
// terminator. Blocks are views over the program's instructions and are
// never mutated independently.
type BasicBlock struct {
	Name         string     // label name, or a synthesized block_N
	Label        *ast.Label // nil for blocks that no label opens
	Instructions []ast.Instruction
	Terminator   ast.Instruction // nil when the block falls through

	// start is the index in Items() of the first item belonging to the
	// block: the LABEL when there is one, otherwise the first instruction.
	start int
}

// isTerminator returns true for instructions that end a basic block.
func isTerminator(inst ast.Instruction) bool {
	switch inst.(type) {
	case *ast.Jump, *ast.JumpWhen, *ast.JumpUnless, *ast.Halt:
		return true
	}
	return false
}

// BasicBlocks splits the program's executable instructions into basic
// blocks, in source order. Definitions do not participate: they declare
// structure rather than execute. A label that opens a block names it;
// every other block is named block_N by its position in the result.
func (p *Program) BasicBlocks() []BasicBlock {
	var blocks []BasicBlock
	var current *BasicBlock
	flush := func() {
		if current != nil {
			blocks = append(blocks, *current)
			current = nil
		}
	}
	for i, item := range p.items {
		if ast.IsDefinition(item) {
			continue
		}
		if label, ok := item.(*ast.Label); ok {
			flush()
			current = &BasicBlock{Name: label.Name, Label: label, start: i}
			continue
		}
		if current == nil {
			current = &BasicBlock{start: i}
		}
		if isTerminator(item) {
			current.Terminator = item
			flush()
			continue
		}
		current.Instructions = append(current.Instructions, item)
	}
	flush()
	for i := range blocks {
		if blocks[i].Name == "" {
			blocks[i].Name = fmt.Sprintf("block_%d", i)
		}
	}
	return blocks
}
