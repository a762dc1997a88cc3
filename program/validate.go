package program

import (
	"fmt"
	"sort"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/errors"
	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/token"
	"github.com/hashicorp/go-multierror"
)

// Kind represents the category of a validation finding.
type Kind int

const (
	// DuplicateLabel indicates a label defined more than once.
	DuplicateLabel Kind = iota
	// UnresolvedJumpTarget indicates a jump to a label that is never defined.
	UnresolvedJumpTarget
	// UndeclaredMemoryReference indicates a use of a memory region that has
	// no DECLARE.
	UndeclaredMemoryReference
	// ArityMismatch indicates a gate or circuit applied to the wrong number
	// of qubits.
	ArityMismatch
	// DuplicateRegion indicates a memory region declared more than once.
	DuplicateRegion
)

// String returns the string representation of the finding kind.
func (k Kind) String() string {
	switch k {
	case DuplicateLabel:
		return "duplicate label"
	case UnresolvedJumpTarget:
		return "unresolved jump target"
	case UndeclaredMemoryReference:
		return "undeclared memory reference"
	case ArityMismatch:
		return "arity mismatch"
	case DuplicateRegion:
		return "duplicate memory region"
	default:
		return "validation error"
	}
}

// ValidationError is one advisory finding about a program. Findings never
// block parsing or serialization: a program that fails validation still
// serializes, and its analyses still run.
type ValidationError struct {
	Kind     Kind
	Message  string
	Position token.Position
	Related  []token.Position // e.g. the first definition, for duplicates
	Hint     string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

// FriendlyErrorMessage returns a human-friendly rendering of the finding.
func (e *ValidationError) FriendlyErrorMessage() string {
	formatter := errors.NewFormatter(false)
	return formatter.Format(e.ToFormatted())
}

// ToFormatted converts the finding to a FormattedError for display. The
// program does not retain source text, so no source snippet is attached.
func (e *ValidationError) ToFormatted() *errors.FormattedError {
	return &errors.FormattedError{
		Code:     e.Code(),
		Kind:     "validation error",
		Message:  e.Message,
		Filename: e.Position.File,
		Line:     e.Position.LineNumber(),
		Column:   e.Position.ColumnNumber(),
		Hint:     e.Hint,
	}
}

// Code classifies the finding for display and tooling.
func (e *ValidationError) Code() errors.ErrorCode {
	switch e.Kind {
	case DuplicateLabel:
		return errors.E2001
	case UnresolvedJumpTarget:
		return errors.E2002
	case UndeclaredMemoryReference:
		return errors.E2003
	case ArityMismatch:
		return errors.E2004
	case DuplicateRegion:
		return errors.E2005
	default:
		return errors.E2001
	}
}

// Location returns the source location of the finding.
func (e *ValidationError) Location() errors.SourceLocation {
	return errors.SourceLocation{
		Filename: e.Position.File,
		Line:     e.Position.LineNumber(),
		Column:   e.Position.ColumnNumber(),
	}
}

// Validate analyzes the program and reports every finding it can. Unlike
// parsing, validation does not stop at the first problem. Only top-level
// instructions are checked: definition bodies are templates whose qubits
// and memory targets are bound at expansion time, not here.
func (p *Program) Validate() []ValidationError {
	var findings []ValidationError
	findings = append(findings, p.checkRegions()...)
	findings = append(findings, p.checkLabels()...)
	findings = append(findings, p.checkJumps()...)
	findings = append(findings, p.checkMemory()...)
	findings = append(findings, p.checkArity()...)
	return findings
}

// Check runs Validate and joins the findings into a single error, or
// returns nil when the program is clean.
func (p *Program) Check() error {
	var result *multierror.Error
	for _, finding := range p.Validate() {
		result = multierror.Append(result, &finding)
	}
	return result.ErrorOrNil()
}

// checkRegions reports memory regions declared more than once, and SHARING
// clauses naming a region that is never declared.
func (p *Program) checkRegions() []ValidationError {
	var findings []ValidationError
	seen := map[string]token.Position{}
	for _, item := range p.items {
		decl, ok := item.(*ast.Declaration)
		if !ok {
			continue
		}
		if first, dup := seen[decl.Name]; dup {
			findings = append(findings, ValidationError{
				Kind:     DuplicateRegion,
				Message:  fmt.Sprintf("memory region %s declared more than once", decl.Name),
				Position: decl.Pos(),
				Related:  []token.Position{first},
			})
		} else {
			seen[decl.Name] = decl.Pos()
		}
	}
	for _, item := range p.items {
		decl, ok := item.(*ast.Declaration)
		if !ok || decl.Sharing == nil {
			continue
		}
		if _, declared := p.regions[decl.Sharing.Name]; !declared {
			findings = append(findings, ValidationError{
				Kind:     UndeclaredMemoryReference,
				Message:  fmt.Sprintf("region %s shares undeclared region %s", decl.Name, decl.Sharing.Name),
				Position: decl.Pos(),
				Hint:     p.suggestRegion(decl.Sharing.Name),
			})
		}
	}
	return findings
}

// checkLabels reports labels defined more than once. Both positions are
// reported: the duplicate carries the original in Related.
func (p *Program) checkLabels() []ValidationError {
	var findings []ValidationError
	seen := map[string]token.Position{}
	for _, item := range p.items {
		label, ok := item.(*ast.Label)
		if !ok {
			continue
		}
		if first, dup := seen[label.Name]; dup {
			findings = append(findings, ValidationError{
				Kind:     DuplicateLabel,
				Message:  fmt.Sprintf("label @%s defined more than once", label.Name),
				Position: label.Pos(),
				Related:  []token.Position{first},
			})
		} else {
			seen[label.Name] = label.Pos()
		}
	}
	return findings
}

// checkJumps reports jumps whose target label is never defined.
func (p *Program) checkJumps() []ValidationError {
	var findings []ValidationError
	for _, item := range p.items {
		var target string
		switch x := item.(type) {
		case *ast.Jump:
			target = x.Target
		case *ast.JumpWhen:
			target = x.Target
		case *ast.JumpUnless:
			target = x.Target
		default:
			continue
		}
		if _, defined := p.labels[target]; defined {
			continue
		}
		findings = append(findings, ValidationError{
			Kind:     UnresolvedJumpTarget,
			Message:  fmt.Sprintf("jump to undefined label @%s", target),
			Position: item.Pos(),
			Hint:     p.suggestLabel(target),
		})
	}
	return findings
}

// checkMemory reports instructions that reference undeclared memory
// regions. Each instruction reports a given region at most once, so
// ADD ro[0] ro[1] with no DECLARE yields one finding, not two.
func (p *Program) checkMemory() []ValidationError {
	var findings []ValidationError
	for _, item := range p.items {
		if ast.IsDefinition(item) {
			continue
		}
		reported := map[string]bool{}
		for _, name := range regionUses(item) {
			if reported[name] {
				continue
			}
			reported[name] = true
			if _, declared := p.regions[name]; declared {
				continue
			}
			findings = append(findings, ValidationError{
				Kind:     UndeclaredMemoryReference,
				Message:  fmt.Sprintf("reference to undeclared memory region %s", name),
				Position: item.Pos(),
				Hint:     p.suggestRegion(name),
			})
		}
	}
	return findings
}

// regionUses collects the names of every memory region an instruction
// reads or writes, in source order with duplicates preserved.
func regionUses(item ast.Instruction) []string {
	var names []string
	ref := func(r expr.MemoryReference) {
		names = append(names, r.Name)
	}
	operand := func(o ast.Operand) {
		if r, ok := o.(ast.RefOperand); ok {
			ref(r.Ref)
		}
	}
	expressions := func(exprs ...expr.Expression) {
		for _, e := range exprs {
			if e == nil {
				continue
			}
			for _, r := range expr.References(e) {
				ref(r)
			}
		}
	}
	switch x := item.(type) {
	case *ast.Gate:
		expressions(x.Params...)
	case *ast.Measurement:
		if x.Target != nil {
			ref(*x.Target)
		}
	case *ast.BinaryOp:
		ref(x.Dest)
		operand(x.Source)
	case *ast.UnaryOp:
		ref(x.Dest)
	case *ast.Move:
		ref(x.Dest)
		operand(x.Source)
	case *ast.Exchange:
		ref(x.Left)
		ref(x.Right)
	case *ast.Load:
		ref(x.Dest)
		names = append(names, x.Source)
		ref(x.Offset)
	case *ast.Store:
		names = append(names, x.Dest)
		ref(x.Offset)
		operand(x.Source)
	case *ast.JumpWhen:
		ref(x.Condition)
	case *ast.JumpUnless:
		ref(x.Condition)
	case *ast.Pulse:
		for _, param := range x.Waveform.Params {
			expressions(param.Value)
		}
	case *ast.Capture:
		for _, param := range x.Waveform.Params {
			expressions(param.Value)
		}
		ref(x.Target)
	case *ast.RawCapture:
		expressions(x.Duration)
		ref(x.Target)
	case *ast.Delay:
		expressions(x.Duration)
	}
	return names
}

// checkArity reports gate applications whose qubit count does not match
// the in-scope DEFGATE or DEFCIRCUIT. Each CONTROLLED or FORKED modifier
// extends the gate by one qubit. Applications of gates with no in-scope
// definition are not checked: the standard gates live outside the program.
func (p *Program) checkArity() []ValidationError {
	var findings []ValidationError
	for _, item := range p.items {
		gate, ok := item.(*ast.Gate)
		if !ok {
			continue
		}
		extra := 0
		for _, mod := range gate.Modifiers {
			if mod == ast.ModControlled || mod == ast.ModForked {
				extra++
			}
		}
		var want int
		var related token.Position
		var what string
		if def, defined := p.gates[gate.Name]; defined {
			base, known := def.Arity()
			if !known {
				continue
			}
			want = base + extra
			related = def.Pos()
			what = "gate"
		} else if def, defined := p.circuits[gate.Name]; defined {
			want = len(def.Qubits) + extra
			related = def.Pos()
			what = "circuit"
		} else {
			continue
		}
		if got := len(gate.Qubits); got != want {
			findings = append(findings, ValidationError{
				Kind:     ArityMismatch,
				Message:  fmt.Sprintf("%s %s expects %d qubits, got %d", what, gate.Name, want, got),
				Position: gate.Pos(),
				Related:  []token.Position{related},
			})
		}
	}
	return findings
}

// suggestRegion returns a "did you mean" hint drawn from the declared
// region names, or an empty string when nothing is close.
func (p *Program) suggestRegion(name string) string {
	candidates := make([]string, 0, len(p.regions))
	for candidate := range p.regions {
		candidates = append(candidates, candidate)
	}
	sort.Strings(candidates)
	return errors.FormatSuggestions(errors.SuggestSimilar(name, candidates))
}

// suggestLabel returns a "did you mean" hint drawn from the defined label
// names, or an empty string when nothing is close.
func (p *Program) suggestLabel(name string) string {
	candidates := make([]string, 0, len(p.labels))
	for candidate := range p.labels {
		candidates = append(candidates, candidate)
	}
	sort.Strings(candidates)
	return errors.FormatSuggestions(errors.SuggestSimilar(name, candidates))
}
