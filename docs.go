// Package quill parses and analyzes programs written in Quil, the quantum
// instruction language. It provides a lexer and parser producing a typed
// syntax tree, a symbolic engine for the arithmetic expressions appearing
// in gate parameters, and program-level analyses: validation, basic block
// discovery, and instruction dependency graphs.
//
// # Parsing
//
// Parse turns source text into a Program:
//
//	src := `DECLARE ro BIT[2]
//	H 0
//	CNOT 0 1
//	MEASURE 0 ro[0]
//	MEASURE 1 ro[1]
//	`
//	prog, err := quill.Parse(context.Background(), src)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(prog.Text())
//
// Text serializes the program back to canonical Quil. The canonical form
// is stable: parsing it and serializing again reproduces the same text,
// which makes it usable as a formatter.
//
// Parsing stops at the first error. Parse errors carry their source
// location and, when the error implements FriendlyError, a formatted
// report with the offending source line:
//
//	_, err := quill.Parse(ctx, "MOVE ro[0]", quill.WithFilename("prog.quil"))
//	var friendly interface{ FriendlyErrorMessage() string }
//	if errors.As(err, &friendly) {
//		fmt.Println(friendly.FriendlyErrorMessage())
//	}
//
// # Expressions
//
// Gate parameters and definition bodies contain arithmetic over complex
// numbers, the constant pi, formal parameters such as %theta, and memory
// references such as ro[0]. ParseExpression parses one expression, and the
// expr package simplifies, substitutes, and evaluates it:
//
//	e, _ := quill.ParseExpression("pi/4 + %theta")
//	bound := e.Substitute(expr.Bindings{"theta": 0.5})
//	v, _ := bound.Evaluate(nil)
//
// # Analyses
//
// A parsed Program answers structural queries (GateDefinition, Frame,
// MemoryRegion, Labels) and supports three analyses. Validate reports
// every finding it can rather than stopping at the first:
//
//	for _, finding := range prog.Validate() {
//		fmt.Println(finding.Error())
//	}
//
// BasicBlocks splits the executable instructions at labels and control
// transfers, and DependencyGraph orders the instructions of one block by
// their data dependencies on qubits, frames, and memory:
//
//	blocks := prog.BasicBlocks()
//	graph := prog.DependencyGraph(blocks[0])
//	fmt.Println(graph.DOT(blocks[0]))
//
// Programs are immutable after parsing, so any number of goroutines may
// share one Program and run analyses concurrently.
package quill

// Version is the current Quill version.
const Version = "0.1.0"
