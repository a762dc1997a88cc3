package main

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func TestFormatQuil(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already canonical",
			input:    "H 0\nCNOT 0 1\n",
			expected: "H 0\nCNOT 0 1\n",
		},
		{
			name:     "semicolons become newlines",
			input:    "H 0; CNOT 0 1",
			expected: "H 0\nCNOT 0 1\n",
		},
		{
			name:     "blank lines and comments dropped",
			input:    "H 0\n\n# interlude\nX 1\n",
			expected: "H 0\nX 1\n",
		},
		{
			name:     "numbers are canonicalized",
			input:    "RX(1.0e-1) 0",
			expected: "RX(0.1) 0\n",
		},
		{
			name:     "bare references gain an index",
			input:    "MEASURE 0 ro",
			expected: "MEASURE 0 ro[0]\n",
		},
		{
			name:     "extra spacing collapses",
			input:    "DECLARE  ro   BIT[2]",
			expected: "DECLARE ro BIT[2]\n",
		},
		{
			name:     "expressions are parenthesized",
			input:    "RZ(pi/2 + theta[0]) 3",
			expected: "RZ(((pi/2)+theta[0])) 3\n",
		},
		{
			name:     "matrix kind marker is dropped",
			input:    "DEFGATE I2 AS MATRIX:\n\t1, 0\n\t0, 1\n",
			expected: "DEFGATE I2:\n\t1, 0\n\t0, 1\n",
		},
		{
			name:     "circuit body is tab indented",
			input:    "DEFCIRCUIT BELL a b:\n    H a\n    CNOT a b\n",
			expected: "DEFCIRCUIT BELL a b:\n\tH a\n\tCNOT a b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := formatQuil(context.Background(), tt.input, "")
			assert.Nil(t, err)
			assert.Equal(t, result, tt.expected)
		})
	}
}

func TestFormatQuilIdempotent(t *testing.T) {
	input := "DECLARE ro BIT[2]; H 0; CNOT 0 1; MEASURE 0 ro[0]; MEASURE 1 ro[1]"

	once, err := formatQuil(context.Background(), input, "")
	assert.Nil(t, err)

	twice, err := formatQuil(context.Background(), once, "")
	assert.Nil(t, err)
	assert.Equal(t, twice, once)
}

func TestFormatQuilParseError(t *testing.T) {
	_, err := formatQuil(context.Background(), "MOVE", "")
	assert.NotNil(t, err)
	assert.True(t, contains(err.Error(), "MOVE"))
}

// Helper to avoid using strings.Contains directly in assertions
func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
