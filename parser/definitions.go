package parser

import (
	"strconv"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/expr"
	"github.com/deepnoodle-ai/quill/token"
)

// parseDeclaration parses DECLARE name type with an optional size and
// SHARING clause: DECLARE ro BIT[8] SHARING mem OFFSET 16 REAL.
func (p *Parser) parseDeclaration() ast.Instruction {
	x := &ast.Declaration{Keyword: p.curToken.StartPosition, Size: 1}
	if !p.expectPeek("DECLARE", token.IDENT) {
		return nil
	}
	x.Name = p.curToken.Literal
	x.Type = p.parseDataType("DECLARE")
	if p.err != nil {
		return nil
	}
	if p.peekTokenIs(token.LBRACKET) {
		p.nextToken() // Move to '['
		if !p.expectPeek("DECLARE", token.INT) {
			return nil
		}
		size, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
		if err != nil {
			p.setTokenError(p.curToken, "invalid region size %q", p.curToken.Literal)
			return nil
		}
		x.Size = size
		x.Sized = true
		if !p.expectPeek("DECLARE", token.RBRACKET) {
			return nil
		}
	}
	if p.peekTokenIs(token.SHARING) {
		p.nextToken() // Move to SHARING
		if !p.expectPeek("SHARING", token.IDENT) {
			return nil
		}
		sharing := &ast.Sharing{Name: p.curToken.Literal}
		for p.peekTokenIs(token.OFFSET) {
			p.nextToken() // Move to OFFSET
			if !p.expectPeek("OFFSET", token.INT) {
				return nil
			}
			count, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
			if err != nil {
				p.setTokenError(p.curToken, "invalid offset %q", p.curToken.Literal)
				return nil
			}
			off := ast.Offset{Count: count}
			off.Type = p.parseDataType("OFFSET")
			if p.err != nil {
				return nil
			}
			sharing.Offsets = append(sharing.Offsets, off)
		}
		x.Sharing = sharing
	}
	x.EndPos = p.curToken.EndPosition
	return x
}

// parseDataType parses one of the memory data types BIT, OCTET, INTEGER,
// or REAL from the next token.
func (p *Parser) parseDataType(context string) ast.DataType {
	switch p.peekToken.Type {
	case token.BIT, token.OCTET, token.INTEGER, token.REAL:
		p.nextToken()
		return ast.DataType(p.curToken.Literal)
	}
	p.peekError(context, token.BIT, token.OCTET, token.INTEGER, token.REAL)
	return ""
}

// parseGateDefinition parses DEFGATE. The body is a matrix, one indented
// row per line, unless AS PERMUTATION is given, in which case it is a
// single row of basis indices.
func (p *Parser) parseGateDefinition() ast.Instruction {
	x := &ast.GateDefinition{Keyword: p.curToken.StartPosition, Kind: ast.MatrixGate}
	if !p.expectPeek("DEFGATE", token.IDENT) {
		return nil
	}
	x.Name = p.curToken.Literal
	x.Params = p.parseFormalParameters("DEFGATE")
	if p.err != nil {
		return nil
	}
	if p.peekTokenIs(token.AS) {
		p.nextToken() // Move to AS
		switch p.peekToken.Type {
		case token.MATRIX:
			p.nextToken()
		case token.PERMUTATION:
			p.nextToken()
			x.Kind = ast.PermutationGate
		default:
			p.peekError("DEFGATE", token.MATRIX, token.PERMUTATION)
			return nil
		}
	}
	if !p.expectPeek("DEFGATE", token.COLON) {
		return nil
	}
	if x.Kind == ast.PermutationGate {
		x.Permutation = p.parsePermutationBody()
	} else {
		x.Matrix = p.parseMatrixBody()
	}
	if p.err != nil {
		return nil
	}
	x.EndPos = p.prevToken.EndPosition
	return x
}

// parseFormalParameters parses an optional parenthesized list of %name
// parameters in a definition header. The names are stored without the
// sigil.
func (p *Parser) parseFormalParameters(context string) []string {
	if !p.peekTokenIs(token.LPAREN) {
		return nil
	}
	p.nextToken() // Move to '('
	var params []string
	for {
		if !p.expectPeek(context, token.VARIABLE) {
			return nil
		}
		params = append(params, p.curToken.Literal)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // Move to ','
	}
	if !p.expectPeek(context, token.RPAREN) {
		return nil
	}
	return params
}

// startBody consumes the newline ending a definition header line. At the
// end of input the body is empty.
func (p *Parser) startBody(context string) bool {
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) {
		p.nextToken()
		return true
	}
	p.peekError(context, token.NEWLINE)
	return false
}

// parseMatrixBody parses the indented rows of a gate matrix.
func (p *Parser) parseMatrixBody() [][]expr.Expression {
	if !p.startBody("DEFGATE") {
		return nil
	}
	var matrix [][]expr.Expression
	for p.peekTokenIs(token.INDENT) {
		p.nextToken() // Move to the INDENT
		if p.peekTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		var row []expr.Expression
		for {
			p.nextToken() // Move to the entry
			e := p.parseExpression(LOWEST)
			if p.err != nil {
				return nil
			}
			row = append(row, e)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken() // Move to ','
		}
		matrix = append(matrix, row)
		if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) {
			p.nextToken()
			continue
		}
		p.peekError("gate matrix", token.COMMA, token.NEWLINE)
		return nil
	}
	if len(matrix) == 0 {
		p.peekError("gate matrix", token.INDENT)
		return nil
	}
	return matrix
}

// parsePermutationBody parses the single indented row of basis indices of
// a permutation gate.
func (p *Parser) parsePermutationBody() []uint64 {
	if !p.startBody("DEFGATE") {
		return nil
	}
	if !p.expectPeek("permutation", token.INDENT) {
		return nil
	}
	var perm []uint64
	for {
		if !p.expectPeek("permutation", token.INT) {
			return nil
		}
		v, err := strconv.ParseUint(p.curToken.Literal, 10, 64)
		if err != nil {
			p.setTokenError(p.curToken, "invalid permutation entry %q", p.curToken.Literal)
			return nil
		}
		perm = append(perm, v)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // Move to ','
	}
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) {
		p.nextToken()
	}
	return perm
}

// parseIndentedBody parses the indented instruction lines forming a
// definition body. The current token must be the ':' ending the header.
// The body runs to the first unindented line; blank indented lines are
// skipped.
func (p *Parser) parseIndentedBody(context string) []ast.Instruction {
	if !p.startBody(context) {
		return nil
	}
	var body []ast.Instruction
	for p.peekTokenIs(token.INDENT) {
		p.nextToken() // Move to the INDENT
		if p.peekTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		p.nextToken() // Move to the first token of the instruction
		start := p.curToken
		inst := p.parseInstruction()
		if p.err != nil {
			return nil
		}
		if ast.IsDefinition(inst) {
			p.setTokenError(start, "definitions cannot appear inside a definition body")
			return nil
		}
		body = append(body, inst)
		if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) {
			p.nextToken()
			continue
		}
		p.peekError(context, token.NEWLINE, token.EOF)
		return nil
	}
	return body
}

// parseCircuitDefinition parses DEFCIRCUIT. The formal qubit arguments are
// bare names.
func (p *Parser) parseCircuitDefinition() ast.Instruction {
	x := &ast.CircuitDefinition{Keyword: p.curToken.StartPosition}
	if !p.expectPeek("DEFCIRCUIT", token.IDENT) {
		return nil
	}
	x.Name = p.curToken.Literal
	x.Params = p.parseFormalParameters("DEFCIRCUIT")
	if p.err != nil {
		return nil
	}
	for p.peekTokenIs(token.IDENT) {
		p.nextToken()
		x.Qubits = append(x.Qubits, p.curToken.Literal)
	}
	if !p.expectPeek("DEFCIRCUIT", token.COLON) {
		return nil
	}
	x.Body = p.parseIndentedBody("DEFCIRCUIT")
	if p.err != nil {
		return nil
	}
	x.EndPos = p.prevToken.EndPosition
	return x
}

// parseCalibration parses DEFCAL, covering both gate calibrations and
// measure calibrations.
func (p *Parser) parseCalibration() ast.Instruction {
	keyword := p.curToken.StartPosition
	if p.peekTokenIs(token.MEASURE) {
		p.nextToken()
		return p.parseMeasureCalibration(keyword)
	}
	x := &ast.Calibration{Keyword: keyword}
	for token.IsModifier(p.peekToken.Type) {
		p.nextToken()
		x.Modifiers = append(x.Modifiers, ast.Modifier(p.curToken.Literal))
	}
	if !p.expectPeek("DEFCAL", token.IDENT) {
		return nil
	}
	x.Name = p.curToken.Literal
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // Move to '('
		x.Params = p.parseParameterList()
		if p.err != nil {
			return nil
		}
	}
	x.Qubits = p.parseQubitList("DEFCAL", 0)
	if p.err != nil {
		return nil
	}
	if !p.expectPeek("DEFCAL", token.COLON) {
		return nil
	}
	x.Body = p.parseIndentedBody("DEFCAL")
	if p.err != nil {
		return nil
	}
	x.EndPos = p.prevToken.EndPosition
	return x
}

// parseMeasureCalibration parses the DEFCAL MEASURE form. The token just
// before the ':' names the destination; an integer before it is the qubit.
func (p *Parser) parseMeasureCalibration(keyword token.Position) ast.Instruction {
	x := &ast.MeasureCalibration{Keyword: keyword}
	if isQubitToken(p.peekToken.Type) {
		p.nextToken()
		first := p.curToken
		q := p.parseQubitValue()
		if p.err != nil {
			return nil
		}
		if p.peekTokenIs(token.COLON) {
			if first.Type == token.INT {
				x.Qubit = &q
			} else {
				x.Target = first.Literal
			}
		} else {
			x.Qubit = &q
			if !p.peekTokenIs(token.IDENT) && !p.peekTokenIs(token.VARIABLE) {
				p.peekError("DEFCAL MEASURE", token.IDENT, token.COLON)
				return nil
			}
			p.nextToken()
			x.Target = p.curToken.Literal
		}
	}
	if !p.expectPeek("DEFCAL MEASURE", token.COLON) {
		return nil
	}
	x.Body = p.parseIndentedBody("DEFCAL MEASURE")
	if p.err != nil {
		return nil
	}
	x.EndPos = p.prevToken.EndPosition
	return x
}

// parseFrameDefinition parses DEFFRAME with its indented attribute lines:
//
//	DEFFRAME 0 "rx":
//	    INITIAL-FREQUENCY: 2e9
func (p *Parser) parseFrameDefinition() ast.Instruction {
	x := &ast.FrameDefinition{Keyword: p.curToken.StartPosition}
	x.Frame = p.parseFrameIdentifier("DEFFRAME")
	if p.err != nil {
		return nil
	}
	if !p.expectPeek("DEFFRAME", token.COLON) {
		return nil
	}
	if !p.startBody("DEFFRAME") {
		return nil
	}
	for p.peekTokenIs(token.INDENT) {
		p.nextToken() // Move to the INDENT
		if p.peekTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		if !p.expectPeek("frame attribute", token.IDENT) {
			return nil
		}
		attr := ast.FrameAttribute{Name: p.curToken.Literal}
		if !p.expectPeek("frame attribute", token.COLON) {
			return nil
		}
		if p.peekTokenIs(token.STRING) {
			p.nextToken()
			attr.Text = p.curToken.Literal
		} else {
			p.nextToken() // Move to the value expression
			attr.Value = p.parseExpression(LOWEST)
			if p.err != nil {
				return nil
			}
		}
		x.Attributes = append(x.Attributes, attr)
		if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) {
			p.nextToken()
			continue
		}
		p.peekError("frame attribute", token.NEWLINE, token.EOF)
		return nil
	}
	x.EndPos = p.prevToken.EndPosition
	return x
}

// parseWaveformDefinition parses DEFWAVEFORM. Sample rows may span several
// indented lines; they are flattened into a single sample list.
func (p *Parser) parseWaveformDefinition() ast.Instruction {
	x := &ast.WaveformDefinition{Keyword: p.curToken.StartPosition}
	if !p.expectPeek("DEFWAVEFORM", token.IDENT) {
		return nil
	}
	x.Name = p.curToken.Literal
	x.Params = p.parseFormalParameters("DEFWAVEFORM")
	if p.err != nil {
		return nil
	}
	if !p.expectPeek("DEFWAVEFORM", token.COLON) {
		return nil
	}
	if !p.startBody("DEFWAVEFORM") {
		return nil
	}
	for p.peekTokenIs(token.INDENT) {
		p.nextToken() // Move to the INDENT
		if p.peekTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		for {
			p.nextToken() // Move to the sample expression
			e := p.parseExpression(LOWEST)
			if p.err != nil {
				return nil
			}
			x.Samples = append(x.Samples, e)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken() // Move to ','
		}
		if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.EOF) {
			p.nextToken()
			continue
		}
		p.peekError("waveform samples", token.COMMA, token.NEWLINE)
		return nil
	}
	if len(x.Samples) == 0 {
		p.peekError("waveform samples", token.INDENT)
		return nil
	}
	x.EndPos = p.prevToken.EndPosition
	return x
}
