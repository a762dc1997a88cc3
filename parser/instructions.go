package parser

import (
	"strconv"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/token"
)

// parseInstruction parses one instruction. The current token must be the
// first token of the instruction; on success the current token is the last
// token of the instruction.
func (p *Parser) parseInstruction() ast.Instruction {
	if p.err != nil {
		return nil
	}
	switch p.curToken.Type {
	case token.IDENT, token.CONTROLLED, token.DAGGER, token.FORKED:
		return p.parseGate()
	case token.MEASURE:
		return p.parseMeasurement()
	case token.ADD, token.SUB, token.MUL, token.DIV,
		token.AND, token.IOR, token.XOR:
		return p.parseBinaryOp()
	case token.NEG, token.NOT:
		return p.parseUnaryOp()
	case token.MOVE:
		return p.parseMove()
	case token.EXCHANGE:
		return p.parseExchange()
	case token.LOAD:
		return p.parseLoad()
	case token.STORE:
		return p.parseStore()
	case token.LABEL:
		return p.parseLabel()
	case token.JUMP:
		return p.parseJump()
	case token.JUMPWHEN, token.JUMPUNLESS:
		return p.parseConditionalJump()
	case token.HALT:
		return &ast.Halt{Keyword: p.curToken.StartPosition}
	case token.WAIT:
		return &ast.Wait{Keyword: p.curToken.StartPosition}
	case token.NOP:
		return &ast.Nop{Keyword: p.curToken.StartPosition}
	case token.RESET:
		return p.parseReset()
	case token.PULSE:
		return p.parsePulse(p.curToken.StartPosition, false)
	case token.CAPTURE:
		return p.parseCapture(p.curToken.StartPosition, false)
	case token.RAWCAPTURE:
		return p.parseRawCapture(p.curToken.StartPosition, false)
	case token.NONBLOCKING:
		return p.parseNonBlocking()
	case token.DELAY:
		return p.parseDelay()
	case token.FENCE:
		return p.parseFence()
	case token.PRAGMA:
		return p.parsePragma()
	case token.DECLARE:
		return p.parseDeclaration()
	case token.DEFGATE:
		return p.parseGateDefinition()
	case token.DEFCIRCUIT:
		return p.parseCircuitDefinition()
	case token.DEFCAL:
		return p.parseCalibration()
	case token.DEFFRAME:
		return p.parseFrameDefinition()
	case token.DEFWAVE:
		return p.parseWaveformDefinition()
	}
	p.setTokenError(p.curToken, "unexpected %s at the start of an instruction",
		tokenDescription(p.curToken))
	return nil
}

// parseGate parses a gate application, including any CONTROLLED, DAGGER,
// and FORKED modifiers preceding the gate name.
func (p *Parser) parseGate() ast.Instruction {
	g := &ast.Gate{StartPos: p.curToken.StartPosition}
	for token.IsModifier(p.curToken.Type) {
		g.Modifiers = append(g.Modifiers, ast.Modifier(p.curToken.Literal))
		if token.IsModifier(p.peekToken.Type) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("gate modifiers", token.IDENT) {
			return nil
		}
	}
	g.Name = p.curToken.Literal
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // Move to '('
		g.Params = p.parseParameterList()
		if p.err != nil {
			p.suggestCommand(g.Name)
			return nil
		}
	}
	g.Qubits = p.parseQubitList("gate qubits", 1)
	if p.err != nil {
		p.suggestCommand(g.Name)
		return nil
	}
	g.EndPos = p.curToken.EndPosition
	return g
}

// parseParameterList parses a parenthesized, comma-separated expression
// list. The current token must be '('; on return the current token is ')'.
func (p *Parser) parseParameterList() []expr.Expression {
	var params []expr.Expression
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	for {
		p.nextToken() // Move to the start of the expression
		e := p.parseExpression(LOWEST)
		if p.err != nil {
			return nil
		}
		params = append(params, e)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // Move to ','
	}
	if !p.expectPeek("parameter list", token.RPAREN) {
		return nil
	}
	return params
}

func isQubitToken(t token.Type) bool {
	return t == token.INT || t == token.IDENT || t == token.VARIABLE
}

// parseQubitValue converts the current token to a qubit operand: a fixed
// hardware index, or a named placeholder. The % spelling of a placeholder
// is accepted for calibration headers.
func (p *Parser) parseQubitValue() ast.Qubit {
	if p.curTokenIs(token.INT) {
		index, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
		if err != nil {
			p.setTokenError(p.curToken, "invalid qubit index %q", p.curToken.Literal)
			return ast.Qubit{}
		}
		return ast.Qubit{Index: index}
	}
	return ast.Qubit{Name: p.curToken.Literal}
}

// parseQubitList parses a run of qubit operands. min is the number of
// qubits the instruction requires.
func (p *Parser) parseQubitList(context string, min int) []ast.Qubit {
	var qubits []ast.Qubit
	for isQubitToken(p.peekToken.Type) {
		p.nextToken()
		qubits = append(qubits, p.parseQubitValue())
		if p.err != nil {
			return nil
		}
	}
	if len(qubits) < min {
		p.peekError(context, token.INT, token.IDENT)
		return nil
	}
	return qubits
}

// parseMeasurement parses MEASURE with an optional result target:
// MEASURE 0 or MEASURE 0 ro[1]. Without a target the result is discarded.
func (p *Parser) parseMeasurement() ast.Instruction {
	m := &ast.Measurement{Keyword: p.curToken.StartPosition}
	if !isQubitToken(p.peekToken.Type) {
		p.peekError("MEASURE", token.INT, token.IDENT)
		return nil
	}
	p.nextToken()
	m.Qubit = p.parseQubitValue()
	if p.err != nil {
		return nil
	}
	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		ref := p.parseMemoryReferenceTail()
		if p.err != nil {
			return nil
		}
		m.Target = &ref
	}
	m.EndPos = p.curToken.EndPosition
	return m
}

// parseOperand parses a classical source operand: a memory reference, an
// integer literal, or a real literal. A leading minus is part of the
// literal.
func (p *Parser) parseOperand(context string) ast.Operand {
	neg := false
	if p.peekTokenIs(token.MINUS) {
		neg = true
		p.nextToken()
	}
	switch {
	case !neg && p.peekTokenIs(token.IDENT):
		p.nextToken()
		return ast.RefOperand{Ref: p.parseMemoryReferenceTail()}
	case p.peekTokenIs(token.INT):
		p.nextToken()
		value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			p.setTokenError(p.curToken, "invalid integer literal %q", p.curToken.Literal)
			return nil
		}
		if neg {
			value = -value
		}
		return ast.IntOperand{Value: value}
	case p.peekTokenIs(token.FLOAT):
		p.nextToken()
		value, err := strconv.ParseFloat(p.curToken.Literal, 64)
		if err != nil {
			p.setTokenError(p.curToken, "invalid real literal %q", p.curToken.Literal)
			return nil
		}
		if neg {
			value = -value
		}
		return ast.RealOperand{Value: value}
	}
	if neg {
		p.peekError(context, token.INT, token.FLOAT)
	} else {
		p.peekError(context, token.IDENT, token.INT, token.FLOAT)
	}
	return nil
}

// parseBinaryOp parses the two-operand classical instructions (ADD, SUB,
// MUL, DIV, AND, IOR, XOR). The destination is always a memory reference.
func (p *Parser) parseBinaryOp() ast.Instruction {
	x := &ast.BinaryOp{Keyword: p.curToken.StartPosition, Op: p.curToken.Literal}
	x.Dest = p.expectMemoryReference(x.Op)
	if p.err != nil {
		return nil
	}
	x.Source = p.parseOperand(x.Op)
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

// parseUnaryOp parses NEG and NOT.
func (p *Parser) parseUnaryOp() ast.Instruction {
	x := &ast.UnaryOp{Keyword: p.curToken.StartPosition, Op: p.curToken.Literal}
	x.Dest = p.expectMemoryReference(x.Op)
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

func (p *Parser) parseMove() ast.Instruction {
	x := &ast.Move{Keyword: p.curToken.StartPosition}
	x.Dest = p.expectMemoryReference("MOVE")
	if p.err != nil {
		return nil
	}
	x.Source = p.parseOperand("MOVE")
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

func (p *Parser) parseExchange() ast.Instruction {
	x := &ast.Exchange{Keyword: p.curToken.StartPosition}
	x.Left = p.expectMemoryReference("EXCHANGE")
	if p.err != nil {
		return nil
	}
	x.Right = p.expectMemoryReference("EXCHANGE")
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

// parseLoad parses LOAD dest region offset, where region is a bare name
// and the offset indexes into it.
func (p *Parser) parseLoad() ast.Instruction {
	x := &ast.Load{Keyword: p.curToken.StartPosition}
	x.Dest = p.expectMemoryReference("LOAD")
	if p.err != nil {
		return nil
	}
	if !p.expectPeek("LOAD", token.IDENT) {
		return nil
	}
	x.Source = p.curToken.Literal
	x.Offset = p.expectMemoryReference("LOAD")
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

// parseStore parses STORE region offset source.
func (p *Parser) parseStore() ast.Instruction {
	x := &ast.Store{Keyword: p.curToken.StartPosition}
	if !p.expectPeek("STORE", token.IDENT) {
		return nil
	}
	x.Dest = p.curToken.Literal
	x.Offset = p.expectMemoryReference("STORE")
	if p.err != nil {
		return nil
	}
	x.Source = p.parseOperand("STORE")
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

func (p *Parser) parseLabel() ast.Instruction {
	x := &ast.Label{Keyword: p.curToken.StartPosition}
	if !p.expectPeek("LABEL", token.TARGET) {
		return nil
	}
	x.Name = p.curToken.Literal
	x.EndPos = p.curToken.EndPosition
	return x
}

func (p *Parser) parseJump() ast.Instruction {
	x := &ast.Jump{Keyword: p.curToken.StartPosition}
	if !p.expectPeek("JUMP", token.TARGET) {
		return nil
	}
	x.Target = p.curToken.Literal
	x.EndPos = p.curToken.EndPosition
	return x
}

// parseConditionalJump parses JUMP-WHEN and JUMP-UNLESS, which take a
// label target and a condition bit.
func (p *Parser) parseConditionalJump() ast.Instruction {
	op := p.curToken
	if !p.expectPeek(op.Literal, token.TARGET) {
		return nil
	}
	target := p.curToken.Literal
	condition := p.expectMemoryReference(op.Literal)
	if p.err != nil {
		return nil
	}
	end := p.curToken.EndPosition
	if op.Type == token.JUMPWHEN {
		return &ast.JumpWhen{Keyword: op.StartPosition, EndPos: end, Target: target, Condition: condition}
	}
	return &ast.JumpUnless{Keyword: op.StartPosition, EndPos: end, Target: target, Condition: condition}
}

func (p *Parser) parseReset() ast.Instruction {
	x := &ast.Reset{Keyword: p.curToken.StartPosition, EndPos: p.curToken.EndPosition}
	if isQubitToken(p.peekToken.Type) {
		p.nextToken()
		q := p.parseQubitValue()
		if p.err != nil {
			return nil
		}
		x.Qubit = &q
		x.EndPos = p.curToken.EndPosition
	}
	return x
}

// parseFrameIdentifier parses the qubits and quoted name identifying a
// frame: 0 1 "cz".
func (p *Parser) parseFrameIdentifier(context string) ast.FrameIdentifier {
	var f ast.FrameIdentifier
	for isQubitToken(p.peekToken.Type) {
		p.nextToken()
		f.Qubits = append(f.Qubits, p.parseQubitValue())
		if p.err != nil {
			return f
		}
	}
	if !p.expectPeek(context, token.STRING) {
		return f
	}
	f.Name = p.curToken.Literal
	return f
}

// parseNonBlocking parses the NONBLOCKING prefix on a pulse-level
// operation.
func (p *Parser) parseNonBlocking() ast.Instruction {
	start := p.curToken.StartPosition
	switch p.peekToken.Type {
	case token.PULSE:
		p.nextToken()
		return p.parsePulse(start, true)
	case token.CAPTURE:
		p.nextToken()
		return p.parseCapture(start, true)
	case token.RAWCAPTURE:
		p.nextToken()
		return p.parseRawCapture(start, true)
	}
	p.peekError("NONBLOCKING", token.PULSE, token.CAPTURE, token.RAWCAPTURE)
	return nil
}

func (p *Parser) parsePulse(start token.Position, nonBlocking bool) ast.Instruction {
	x := &ast.Pulse{Keyword: start, NonBlocking: nonBlocking}
	x.Frame = p.parseFrameIdentifier("PULSE")
	if p.err != nil {
		return nil
	}
	x.Waveform = p.parseWaveformInvocation()
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

func (p *Parser) parseCapture(start token.Position, nonBlocking bool) ast.Instruction {
	x := &ast.Capture{Keyword: start, NonBlocking: nonBlocking}
	x.Frame = p.parseFrameIdentifier("CAPTURE")
	if p.err != nil {
		return nil
	}
	x.Waveform = p.parseWaveformInvocation()
	if p.err != nil {
		return nil
	}
	x.Target = p.expectMemoryReference("CAPTURE")
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

func (p *Parser) parseRawCapture(start token.Position, nonBlocking bool) ast.Instruction {
	x := &ast.RawCapture{Keyword: start, NonBlocking: nonBlocking}
	x.Frame = p.parseFrameIdentifier("RAW-CAPTURE")
	if p.err != nil {
		return nil
	}
	p.nextToken() // Move to the duration expression
	x.Duration = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	x.Target = p.expectMemoryReference("RAW-CAPTURE")
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

// parseWaveformInvocation parses a waveform reference with optional named
// parameters: flat(duration: 1e-6, iq: 1).
func (p *Parser) parseWaveformInvocation() ast.WaveformInvocation {
	var w ast.WaveformInvocation
	if !p.expectPeek("waveform", token.IDENT) {
		return w
	}
	w.Name = p.curToken.Literal
	if !p.peekTokenIs(token.LPAREN) {
		return w
	}
	p.nextToken() // Move to '('
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return w
	}
	for {
		if !p.expectPeek("waveform parameters", token.IDENT) {
			return w
		}
		param := ast.NamedParameter{Name: p.curToken.Literal}
		if !p.expectPeek("waveform parameters", token.COLON) {
			return w
		}
		p.nextToken() // Move to the value expression
		param.Value = p.parseExpression(LOWEST)
		if p.err != nil {
			return w
		}
		w.Params = append(w.Params, param)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // Move to ','
	}
	p.expectPeek("waveform parameters", token.RPAREN)
	return w
}

// parseDelay parses DELAY qubits... frames... duration. The qubit list is
// consumed greedily, so the duration must be spelled as a real number or
// a parenthesized expression rather than a bare integer.
func (p *Parser) parseDelay() ast.Instruction {
	x := &ast.Delay{Keyword: p.curToken.StartPosition}
	for isQubitToken(p.peekToken.Type) {
		p.nextToken()
		x.Qubits = append(x.Qubits, p.parseQubitValue())
		if p.err != nil {
			return nil
		}
	}
	for p.peekTokenIs(token.STRING) {
		p.nextToken()
		x.Frames = append(x.Frames, p.curToken.Literal)
	}
	p.nextToken() // Move to the duration expression
	x.Duration = p.parseExpression(LOWEST)
	if p.err != nil {
		return nil
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

func (p *Parser) parseFence() ast.Instruction {
	x := &ast.Fence{Keyword: p.curToken.StartPosition, EndPos: p.curToken.EndPosition}
	for isQubitToken(p.peekToken.Type) {
		p.nextToken()
		x.Qubits = append(x.Qubits, p.parseQubitValue())
		if p.err != nil {
			return nil
		}
		x.EndPos = p.curToken.EndPosition
	}
	return x
}

// parsePragma parses a PRAGMA directive: a name, bare arguments, and an
// optional trailing quoted string. The arguments are kept as raw text.
func (p *Parser) parsePragma() ast.Instruction {
	x := &ast.Pragma{Keyword: p.curToken.StartPosition}
	if !p.expectPeek("PRAGMA", token.IDENT) {
		return nil
	}
	x.Name = p.curToken.Literal
	for p.peekTokenIs(token.IDENT) || p.peekTokenIs(token.INT) {
		p.nextToken()
		x.Args = append(x.Args, p.curToken.Literal)
	}
	if p.peekTokenIs(token.STRING) {
		p.nextToken()
		x.Data = p.curToken.Literal
		x.HasData = true
	}
	x.EndPos = p.curToken.EndPosition
	return x
}
