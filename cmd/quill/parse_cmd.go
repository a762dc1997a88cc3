package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/program"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/deepnoodle-ai/wonton/tui"
)

func parseHandler(ctx *cli.Context) error {
	p, _, err := parseProgram(ctx)
	if err != nil {
		return err
	}

	if strings.ToLower(ctx.String("output")) == "json" {
		return printJSON(ctx, itemsToJSON(p))
	}

	printItems(p)
	return nil
}

// ItemNode represents a parsed instruction in the JSON output
type ItemNode struct {
	Type     string      `json:"type"`
	Value    any         `json:"value,omitempty"`
	Children []*ItemNode `json:"children,omitempty"`
}

func itemsToJSON(p *program.Program) *ItemNode {
	root := &ItemNode{Type: "Program"}
	for _, item := range p.Items() {
		if child := itemToJSON(item); child != nil {
			root.Children = append(root.Children, child)
		}
	}
	return root
}

func itemToJSON(item ast.Instruction) *ItemNode {
	if item == nil {
		return nil
	}

	typeName := reflect.TypeOf(item).Elem().Name()
	result := &ItemNode{Type: typeName}

	switch n := item.(type) {
	case *ast.Gate:
		result.Value = n.Name
		for _, m := range n.Modifiers {
			result.Children = append(result.Children, &ItemNode{Type: "Modifier", Value: string(m)})
		}
		for _, p := range n.Params {
			result.Children = append(result.Children, exprToJSON(p))
		}
		for _, q := range n.Qubits {
			result.Children = append(result.Children, qubitToJSON(q))
		}

	case *ast.Measurement:
		result.Children = append(result.Children, qubitToJSON(n.Qubit))
		if n.Target != nil {
			result.Children = append(result.Children, refToJSON(*n.Target))
		}

	case *ast.Declaration:
		result.Value = n.Name
		result.Children = append(result.Children, &ItemNode{Type: "DataType", Value: string(n.Type)})
		if n.Sized {
			result.Children = append(result.Children, &ItemNode{Type: "Size", Value: n.Size})
		}
		if n.Sharing != nil {
			sharing := &ItemNode{Type: "Sharing", Value: n.Sharing.Name}
			for _, o := range n.Sharing.Offsets {
				sharing.Children = append(sharing.Children, &ItemNode{
					Type:  "Offset",
					Value: fmt.Sprintf("%d %s", o.Count, o.Type),
				})
			}
			result.Children = append(result.Children, sharing)
		}

	case *ast.BinaryOp:
		result.Value = n.Op
		result.Children = append(result.Children, refToJSON(n.Dest), operandToJSON(n.Source))

	case *ast.UnaryOp:
		result.Value = n.Op
		result.Children = append(result.Children, refToJSON(n.Dest))

	case *ast.Move:
		result.Children = append(result.Children, refToJSON(n.Dest), operandToJSON(n.Source))

	case *ast.Exchange:
		result.Children = append(result.Children, refToJSON(n.Left), refToJSON(n.Right))

	case *ast.Load:
		result.Children = append(result.Children,
			refToJSON(n.Dest),
			&ItemNode{Type: "Region", Value: n.Source},
			refToJSON(n.Offset))

	case *ast.Store:
		result.Children = append(result.Children,
			&ItemNode{Type: "Region", Value: n.Dest},
			refToJSON(n.Offset),
			operandToJSON(n.Source))

	case *ast.Label:
		result.Value = n.Name

	case *ast.Jump:
		result.Value = n.Target

	case *ast.JumpWhen:
		result.Value = n.Target
		result.Children = append(result.Children, refToJSON(n.Condition))

	case *ast.JumpUnless:
		result.Value = n.Target
		result.Children = append(result.Children, refToJSON(n.Condition))

	case *ast.Halt, *ast.Wait, *ast.Nop:
		// no fields

	case *ast.Reset:
		if n.Qubit != nil {
			result.Children = append(result.Children, qubitToJSON(*n.Qubit))
		}

	case *ast.Pulse:
		if n.NonBlocking {
			result.Value = "NONBLOCKING"
		}
		result.Children = append(result.Children,
			&ItemNode{Type: "Frame", Value: n.Frame.String()},
			waveformToJSON(n.Waveform))

	case *ast.Capture:
		if n.NonBlocking {
			result.Value = "NONBLOCKING"
		}
		result.Children = append(result.Children,
			&ItemNode{Type: "Frame", Value: n.Frame.String()},
			waveformToJSON(n.Waveform),
			refToJSON(n.Target))

	case *ast.RawCapture:
		if n.NonBlocking {
			result.Value = "NONBLOCKING"
		}
		result.Children = append(result.Children,
			&ItemNode{Type: "Frame", Value: n.Frame.String()},
			exprToJSON(n.Duration),
			refToJSON(n.Target))

	case *ast.Delay:
		for _, q := range n.Qubits {
			result.Children = append(result.Children, qubitToJSON(q))
		}
		for _, f := range n.Frames {
			result.Children = append(result.Children, &ItemNode{Type: "Frame", Value: f})
		}
		result.Children = append(result.Children, exprToJSON(n.Duration))

	case *ast.Fence:
		for _, q := range n.Qubits {
			result.Children = append(result.Children, qubitToJSON(q))
		}

	case *ast.Pragma:
		result.Value = n.Name
		for _, arg := range n.Args {
			result.Children = append(result.Children, &ItemNode{Type: "Argument", Value: arg})
		}
		if n.HasData {
			result.Children = append(result.Children, &ItemNode{Type: "Data", Value: n.Data})
		}

	case *ast.GateDefinition:
		result.Value = n.Name
		for _, p := range n.Params {
			result.Children = append(result.Children, &ItemNode{Type: "Parameter", Value: p})
		}
		if n.Kind == ast.PermutationGate {
			result.Children = append(result.Children, &ItemNode{Type: "Permutation", Value: n.Permutation})
		} else {
			for _, row := range n.Matrix {
				rowNode := &ItemNode{Type: "Row"}
				for _, entry := range row {
					rowNode.Children = append(rowNode.Children, exprToJSON(entry))
				}
				result.Children = append(result.Children, rowNode)
			}
		}

	case *ast.CircuitDefinition:
		result.Value = n.Name
		for _, p := range n.Params {
			result.Children = append(result.Children, &ItemNode{Type: "Parameter", Value: p})
		}
		for _, q := range n.Qubits {
			result.Children = append(result.Children, &ItemNode{Type: "QubitArgument", Value: q})
		}
		for _, inst := range n.Body {
			result.Children = append(result.Children, itemToJSON(inst))
		}

	case *ast.Calibration:
		result.Value = n.Name
		for _, m := range n.Modifiers {
			result.Children = append(result.Children, &ItemNode{Type: "Modifier", Value: string(m)})
		}
		for _, p := range n.Params {
			result.Children = append(result.Children, exprToJSON(p))
		}
		for _, q := range n.Qubits {
			result.Children = append(result.Children, qubitToJSON(q))
		}
		for _, inst := range n.Body {
			result.Children = append(result.Children, itemToJSON(inst))
		}

	case *ast.MeasureCalibration:
		if n.Qubit != nil {
			result.Children = append(result.Children, qubitToJSON(*n.Qubit))
		}
		if n.Target != "" {
			result.Children = append(result.Children, &ItemNode{Type: "Target", Value: n.Target})
		}
		for _, inst := range n.Body {
			result.Children = append(result.Children, itemToJSON(inst))
		}

	case *ast.FrameDefinition:
		result.Value = n.Frame.String()
		for _, a := range n.Attributes {
			attr := &ItemNode{Type: "Attribute", Value: a.Name}
			if a.Value != nil {
				attr.Children = append(attr.Children, exprToJSON(a.Value))
			} else {
				attr.Children = append(attr.Children, &ItemNode{Type: "String", Value: a.Text})
			}
			result.Children = append(result.Children, attr)
		}

	case *ast.WaveformDefinition:
		result.Value = n.Name
		for _, p := range n.Params {
			result.Children = append(result.Children, &ItemNode{Type: "Parameter", Value: p})
		}
		for _, s := range n.Samples {
			result.Children = append(result.Children, exprToJSON(s))
		}
	}

	return result
}

func exprToJSON(e expr.Expression) *ItemNode {
	if e == nil {
		return nil
	}

	typeName := reflect.TypeOf(e).Elem().Name()
	result := &ItemNode{Type: typeName}

	switch n := e.(type) {
	case *expr.Number:
		// complex128 has no JSON encoding; use the canonical spelling
		result.Value = expr.FormatComplex(n.Value)

	case *expr.Pi:
		// no fields

	case *expr.Variable:
		result.Value = n.Name

	case *expr.Reference:
		result.Type = "MemoryReference"
		result.Value = n.Ref.String()

	case *expr.Infix:
		result.Value = string(n.Op)
		result.Children = append(result.Children, exprToJSON(n.X), exprToJSON(n.Y))

	case *expr.Prefix:
		result.Value = string(n.Op)
		result.Children = append(result.Children, exprToJSON(n.X))

	case *expr.Call:
		result.Value = string(n.Fn)
		result.Children = append(result.Children, exprToJSON(n.Arg))
	}

	return result
}

func qubitToJSON(q ast.Qubit) *ItemNode {
	if q.IsFixed() {
		return &ItemNode{Type: "Qubit", Value: q.Index}
	}
	return &ItemNode{Type: "Qubit", Value: q.Name}
}

func refToJSON(r expr.MemoryReference) *ItemNode {
	return &ItemNode{Type: "MemoryReference", Value: r.String()}
}

func operandToJSON(o ast.Operand) *ItemNode {
	switch v := o.(type) {
	case ast.RefOperand:
		return refToJSON(v.Ref)
	case ast.IntOperand:
		return &ItemNode{Type: "Int", Value: v.Value}
	case ast.RealOperand:
		return &ItemNode{Type: "Real", Value: v.Value}
	}
	return &ItemNode{Type: "Operand", Value: o.String()}
}

func waveformToJSON(w ast.WaveformInvocation) *ItemNode {
	result := &ItemNode{Type: "Waveform", Value: w.Name}
	for _, p := range w.Params {
		param := &ItemNode{Type: "Parameter", Value: p.Name}
		param.Children = append(param.Children, exprToJSON(p.Value))
		result.Children = append(result.Children, param)
	}
	return result
}

// Color styles for the parse tree display
var (
	nodeStyle    = tui.NewStyle().WithFgRGB(tui.RGB{R: 100, G: 200, B: 255}).WithBold()
	fieldStyle   = tui.NewStyle().WithFgRGB(tui.RGB{R: 180, G: 140, B: 220})
	valueStyle   = tui.NewStyle().WithFgRGB(tui.RGB{R: 150, G: 220, B: 150})
	literalStyle = tui.NewStyle().WithFgRGB(tui.RGB{R: 255, G: 200, B: 100})
	mutedStyle   = tui.NewStyle().WithFgRGB(tui.RGB{R: 120, G: 120, B: 130})
	errorStyle   = tui.NewStyle().WithFgRGB(tui.RGB{R: 255, G: 100, B: 100})
)

func printItems(p *program.Program) {
	printLine(tui.Text("Program").Style(nodeStyle))
	items := p.Items()
	for i, item := range items {
		printItem(item, "  ", i == len(items)-1)
	}
}

func printItem(item ast.Instruction, indent string, isLast bool) {
	if item == nil {
		return
	}

	// Choose connector
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}

	typeName := reflect.TypeOf(item).Elem().Name()
	header := tui.Group(
		tui.Text("%s%s", indent, connector).Style(mutedStyle),
		tui.Text("%s", typeName).Style(nodeStyle),
	)

	switch n := item.(type) {
	case *ast.Gate:
		parts := []tui.View{header}
		for _, m := range n.Modifiers {
			parts = append(parts, tui.Text(" %s", m).Style(fieldStyle))
		}
		parts = append(parts, tui.Text(" %s", n.Name).Style(valueStyle))
		printLine(tui.Group(parts...))
		rest := len(n.Params) + len(n.Qubits)
		for _, p := range n.Params {
			rest--
			printExpr(p, childIndent, rest == 0)
		}
		for _, q := range n.Qubits {
			rest--
			printQubit(q, childIndent, rest == 0)
		}

	case *ast.Measurement:
		printLine(header)
		printQubit(n.Qubit, childIndent, n.Target == nil)
		if n.Target != nil {
			printRef(*n.Target, childIndent, true)
		}

	case *ast.Declaration:
		size := ""
		if n.Sized {
			size = fmt.Sprintf("[%d]", n.Size)
		}
		printLine(tui.Group(
			header,
			tui.Text(" %s", n.Name).Style(valueStyle),
			tui.Text(" %s%s", n.Type, size).Style(literalStyle),
		))
		if n.Sharing != nil {
			line := "Sharing " + n.Sharing.Name
			for _, o := range n.Sharing.Offsets {
				line += fmt.Sprintf(" OFFSET %d %s", o.Count, o.Type)
			}
			printLine(tui.Group(
				tui.Text("%s└─ ", childIndent).Style(mutedStyle),
				tui.Text("%s", line).Style(fieldStyle),
			))
		}

	case *ast.BinaryOp:
		printLine(tui.Group(header, tui.Text(" %s", n.Op).Style(fieldStyle)))
		printRef(n.Dest, childIndent, false)
		printOperand(n.Source, childIndent, true)

	case *ast.UnaryOp:
		printLine(tui.Group(header, tui.Text(" %s", n.Op).Style(fieldStyle)))
		printRef(n.Dest, childIndent, true)

	case *ast.Move:
		printLine(header)
		printRef(n.Dest, childIndent, false)
		printOperand(n.Source, childIndent, true)

	case *ast.Exchange:
		printLine(header)
		printRef(n.Left, childIndent, false)
		printRef(n.Right, childIndent, true)

	case *ast.Load:
		printLine(tui.Group(header, tui.Text(" %s", n.Source).Style(valueStyle)))
		printRef(n.Dest, childIndent, false)
		printRef(n.Offset, childIndent, true)

	case *ast.Store:
		printLine(tui.Group(header, tui.Text(" %s", n.Dest).Style(valueStyle)))
		printRef(n.Offset, childIndent, false)
		printOperand(n.Source, childIndent, true)

	case *ast.Label:
		printLine(tui.Group(header, tui.Text(" @%s", n.Name).Style(valueStyle)))

	case *ast.Jump:
		printLine(tui.Group(header, tui.Text(" @%s", n.Target).Style(valueStyle)))

	case *ast.JumpWhen:
		printLine(tui.Group(header, tui.Text(" @%s", n.Target).Style(valueStyle)))
		printRef(n.Condition, childIndent, true)

	case *ast.JumpUnless:
		printLine(tui.Group(header, tui.Text(" @%s", n.Target).Style(valueStyle)))
		printRef(n.Condition, childIndent, true)

	case *ast.Reset:
		printLine(header)
		if n.Qubit != nil {
			printQubit(*n.Qubit, childIndent, true)
		}

	case *ast.Pulse:
		printPulseHeader(header, n.NonBlocking)
		printFrameLine(n.Frame.String(), childIndent, false)
		printWaveform(n.Waveform, childIndent, true)

	case *ast.Capture:
		printPulseHeader(header, n.NonBlocking)
		printFrameLine(n.Frame.String(), childIndent, false)
		printWaveform(n.Waveform, childIndent, false)
		printRef(n.Target, childIndent, true)

	case *ast.RawCapture:
		printPulseHeader(header, n.NonBlocking)
		printFrameLine(n.Frame.String(), childIndent, false)
		printExpr(n.Duration, childIndent, false)
		printRef(n.Target, childIndent, true)

	case *ast.Delay:
		printLine(header)
		for _, q := range n.Qubits {
			printQubit(q, childIndent, false)
		}
		for _, f := range n.Frames {
			printFrameLine(strconv.Quote(f), childIndent, false)
		}
		printExpr(n.Duration, childIndent, true)

	case *ast.Fence:
		printLine(header)
		for i, q := range n.Qubits {
			printQubit(q, childIndent, i == len(n.Qubits)-1)
		}

	case *ast.Pragma:
		parts := []tui.View{header, tui.Text(" %s", n.Name).Style(valueStyle)}
		for _, arg := range n.Args {
			parts = append(parts, tui.Text(" %s", arg).Style(literalStyle))
		}
		if n.HasData {
			parts = append(parts, tui.Text(" %s", strconv.Quote(n.Data)).Style(literalStyle))
		}
		printLine(tui.Group(parts...))

	case *ast.GateDefinition:
		kind := "MATRIX"
		if n.Kind == ast.PermutationGate {
			kind = "PERMUTATION"
		}
		printLine(tui.Group(
			header,
			tui.Text(" %s", n.Name).Style(valueStyle),
			tui.Text(" %s", kind).Style(fieldStyle),
		))
		for _, p := range n.Params {
			printFieldLine("Parameter", p, childIndent, false)
		}
		if n.Kind == ast.PermutationGate {
			entries := make([]string, len(n.Permutation))
			for i, v := range n.Permutation {
				entries[i] = strconv.FormatUint(v, 10)
			}
			printFieldLine("Permutation", strings.Join(entries, ", "), childIndent, true)
		} else {
			for i, row := range n.Matrix {
				last := i == len(n.Matrix)-1
				rowConnector := "├─ "
				rowIndent := childIndent + "│  "
				if last {
					rowConnector = "└─ "
					rowIndent = childIndent + "   "
				}
				printLine(tui.Group(
					tui.Text("%s%s", childIndent, rowConnector).Style(mutedStyle),
					tui.Text("Row").Style(nodeStyle),
				))
				for j, entry := range row {
					printExpr(entry, rowIndent, j == len(row)-1)
				}
			}
		}

	case *ast.CircuitDefinition:
		printLine(tui.Group(header, tui.Text(" %s", n.Name).Style(valueStyle)))
		rest := len(n.Params) + len(n.Qubits) + len(n.Body)
		for _, p := range n.Params {
			rest--
			printFieldLine("Parameter", p, childIndent, rest == 0)
		}
		for _, q := range n.Qubits {
			rest--
			printFieldLine("QubitArgument", q, childIndent, rest == 0)
		}
		for _, inst := range n.Body {
			rest--
			printItem(inst, childIndent, rest == 0)
		}

	case *ast.Calibration:
		parts := []tui.View{header}
		for _, m := range n.Modifiers {
			parts = append(parts, tui.Text(" %s", m).Style(fieldStyle))
		}
		parts = append(parts, tui.Text(" %s", n.Name).Style(valueStyle))
		printLine(tui.Group(parts...))
		rest := len(n.Params) + len(n.Qubits) + len(n.Body)
		for _, p := range n.Params {
			rest--
			printExpr(p, childIndent, rest == 0)
		}
		for _, q := range n.Qubits {
			rest--
			printQubit(q, childIndent, rest == 0)
		}
		for _, inst := range n.Body {
			rest--
			printItem(inst, childIndent, rest == 0)
		}

	case *ast.MeasureCalibration:
		parts := []tui.View{header}
		if n.Target != "" {
			parts = append(parts, tui.Text(" %s", n.Target).Style(valueStyle))
		}
		printLine(tui.Group(parts...))
		rest := len(n.Body)
		if n.Qubit != nil {
			printQubit(*n.Qubit, childIndent, rest == 0)
		}
		for _, inst := range n.Body {
			rest--
			printItem(inst, childIndent, rest == 0)
		}

	case *ast.FrameDefinition:
		printLine(tui.Group(header, tui.Text(" %s", n.Frame.String()).Style(valueStyle)))
		for i, a := range n.Attributes {
			last := i == len(n.Attributes)-1
			attrConnector := "├─ "
			attrIndent := childIndent + "│  "
			if last {
				attrConnector = "└─ "
				attrIndent = childIndent + "   "
			}
			if a.Value != nil {
				printLine(tui.Group(
					tui.Text("%s%s", childIndent, attrConnector).Style(mutedStyle),
					tui.Text("Attribute").Style(nodeStyle),
					tui.Text(" %s", a.Name).Style(fieldStyle),
				))
				printExpr(a.Value, attrIndent, true)
			} else {
				printLine(tui.Group(
					tui.Text("%s%s", childIndent, attrConnector).Style(mutedStyle),
					tui.Text("Attribute").Style(nodeStyle),
					tui.Text(" %s", a.Name).Style(fieldStyle),
					tui.Text(" %s", strconv.Quote(a.Text)).Style(literalStyle),
				))
			}
		}

	case *ast.WaveformDefinition:
		printLine(tui.Group(header, tui.Text(" %s", n.Name).Style(valueStyle)))
		rest := len(n.Params) + len(n.Samples)
		for _, p := range n.Params {
			rest--
			printFieldLine("Parameter", p, childIndent, rest == 0)
		}
		for _, s := range n.Samples {
			rest--
			printExpr(s, childIndent, rest == 0)
		}

	default:
		printLine(header)
	}
}

func printPulseHeader(header tui.View, nonBlocking bool) {
	if nonBlocking {
		printLine(tui.Group(header, tui.Text(" NONBLOCKING").Style(fieldStyle)))
		return
	}
	printLine(header)
}

func printFrameLine(frame, indent string, isLast bool) {
	connector := "├─ "
	if isLast {
		connector = "└─ "
	}
	printLine(tui.Group(
		tui.Text("%s%s", indent, connector).Style(mutedStyle),
		tui.Text("Frame").Style(nodeStyle),
		tui.Text(" %s", frame).Style(literalStyle),
	))
}

func printFieldLine(name, value, indent string, isLast bool) {
	connector := "├─ "
	if isLast {
		connector = "└─ "
	}
	printLine(tui.Group(
		tui.Text("%s%s", indent, connector).Style(mutedStyle),
		tui.Text("%s", name).Style(nodeStyle),
		tui.Text(" %s", value).Style(valueStyle),
	))
}

func printQubit(q ast.Qubit, indent string, isLast bool) {
	connector := "├─ "
	if isLast {
		connector = "└─ "
	}
	printLine(tui.Group(
		tui.Text("%s%s", indent, connector).Style(mutedStyle),
		tui.Text("Qubit").Style(nodeStyle),
		tui.Text(" %s", q.String()).Style(literalStyle),
	))
}

func printRef(r expr.MemoryReference, indent string, isLast bool) {
	connector := "├─ "
	if isLast {
		connector = "└─ "
	}
	printLine(tui.Group(
		tui.Text("%s%s", indent, connector).Style(mutedStyle),
		tui.Text("MemoryReference").Style(nodeStyle),
		tui.Text(" %s", r.String()).Style(literalStyle),
	))
}

func printOperand(o ast.Operand, indent string, isLast bool) {
	if ref, ok := o.(ast.RefOperand); ok {
		printRef(ref.Ref, indent, isLast)
		return
	}
	connector := "├─ "
	if isLast {
		connector = "└─ "
	}
	typeName := "Int"
	if _, ok := o.(ast.RealOperand); ok {
		typeName = "Real"
	}
	printLine(tui.Group(
		tui.Text("%s%s", indent, connector).Style(mutedStyle),
		tui.Text("%s", typeName).Style(nodeStyle),
		tui.Text(" %s", o.String()).Style(literalStyle),
	))
}

func printWaveform(w ast.WaveformInvocation, indent string, isLast bool) {
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}
	printLine(tui.Group(
		tui.Text("%s%s", indent, connector).Style(mutedStyle),
		tui.Text("Waveform").Style(nodeStyle),
		tui.Text(" %s", w.Name).Style(valueStyle),
	))
	for i, p := range w.Params {
		last := i == len(w.Params)-1
		paramConnector := "├─ "
		paramIndent := childIndent + "│  "
		if last {
			paramConnector = "└─ "
			paramIndent = childIndent + "   "
		}
		printLine(tui.Group(
			tui.Text("%s%s", childIndent, paramConnector).Style(mutedStyle),
			tui.Text("Parameter").Style(nodeStyle),
			tui.Text(" %s", p.Name).Style(fieldStyle),
		))
		printExpr(p.Value, paramIndent, true)
	}
}

func printExpr(e expr.Expression, indent string, isLast bool) {
	if e == nil {
		return
	}

	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}

	prefix := tui.Text("%s%s", indent, connector).Style(mutedStyle)

	switch n := e.(type) {
	case *expr.Number:
		printLine(tui.Group(
			prefix,
			tui.Text("Number").Style(nodeStyle),
			tui.Text(" %s", expr.FormatComplex(n.Value)).Style(literalStyle),
		))

	case *expr.Pi:
		printLine(tui.Group(prefix, tui.Text("Pi").Style(nodeStyle)))

	case *expr.Variable:
		printLine(tui.Group(
			prefix,
			tui.Text("Variable").Style(nodeStyle),
			tui.Text(" %%%s", n.Name).Style(valueStyle),
		))

	case *expr.Reference:
		printLine(tui.Group(
			prefix,
			tui.Text("MemoryReference").Style(nodeStyle),
			tui.Text(" %s", n.Ref.String()).Style(literalStyle),
		))

	case *expr.Infix:
		printLine(tui.Group(
			prefix,
			tui.Text("Infix").Style(nodeStyle),
			tui.Text(" %s", n.Op).Style(fieldStyle),
		))
		printExpr(n.X, childIndent, false)
		printExpr(n.Y, childIndent, true)

	case *expr.Prefix:
		printLine(tui.Group(
			prefix,
			tui.Text("Prefix").Style(nodeStyle),
			tui.Text(" %s", n.Op).Style(fieldStyle),
		))
		printExpr(n.X, childIndent, true)

	case *expr.Call:
		printLine(tui.Group(
			prefix,
			tui.Text("Call").Style(nodeStyle),
			tui.Text(" %s", n.Fn).Style(valueStyle),
		))
		printExpr(n.Arg, childIndent, true)

	default:
		typeName := reflect.TypeOf(e).Elem().Name()
		printLine(tui.Group(prefix, tui.Text("%s", typeName).Style(nodeStyle)))
	}
}
