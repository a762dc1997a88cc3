package token

import (
	"strings"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

// Test looking up values succeeds, then fails
func TestLookup(t *testing.T) {
	for key, val := range keywords {

		// Obviously this will pass.
		if LookupIdentifier(key) != val {
			t.Errorf("Lookup of %s failed", key)
		}

		// Commands are case sensitive, so lowercased spellings
		// are plain identifiers.
		if LookupIdentifier(strings.ToLower(key)) != IDENT {
			t.Errorf("Lookup of %s failed", key)
		}
	}
	assert.Equal(t, IDENT, LookupIdentifier("my_gate"))
	assert.Equal(t, IDENT, LookupIdentifier("q0"))
}

func TestPosition(t *testing.T) {
	tok := Token{
		Type:    IDENT,
		Literal: "ro",
		StartPosition: Position{
			Line:   2,
			Column: 0,
		},
	}
	// Switches to 1-indexed
	assert.Equal(t, tok.StartPosition.LineNumber(), 3)
	assert.Equal(t, tok.StartPosition.ColumnNumber(), 1)
}

func TestPositionAdvance(t *testing.T) {
	pos := Position{Char: 10, LineStart: 8, Line: 1, Column: 2, File: "bell.quil"}
	end := pos.Advance(4)
	assert.Equal(t, 14, end.Char)
	assert.Equal(t, 6, end.Column)
	assert.Equal(t, 1, end.Line)
	assert.Equal(t, "bell.quil", end.File)
}

func TestPositionValidity(t *testing.T) {
	assert.False(t, NoPos.IsValid())
	assert.True(t, Position{Char: 3}.IsValid())
	assert.True(t, Position{File: "a.quil"}.IsValid())
}

func TestCommandPredicates(t *testing.T) {
	assert.True(t, IsCommand(MEASURE))
	assert.True(t, IsCommand(JUMPWHEN))
	assert.True(t, IsCommand(NONBLOCKING))
	assert.False(t, IsCommand(IDENT))
	assert.False(t, IsCommand(CONTROLLED))

	assert.True(t, IsModifier(CONTROLLED))
	assert.True(t, IsModifier(DAGGER))
	assert.True(t, IsModifier(FORKED))
	assert.False(t, IsModifier(MEASURE))
}
