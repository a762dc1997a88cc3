package errors

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{
			name:     "with filename",
			loc:      SourceLocation{Filename: "main.quil", Line: 10, Column: 5},
			expected: "main.quil:10:5",
		},
		{
			name:     "without filename",
			loc:      SourceLocation{Line: 10, Column: 5},
			expected: "10:5",
		},
		{
			name:     "zero location",
			loc:      SourceLocation{},
			expected: "0:0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.loc.String(), tt.expected)
		})
	}
}

func TestSourceLocation_IsZero(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected bool
	}{
		{
			name:     "zero location",
			loc:      SourceLocation{},
			expected: true,
		},
		{
			name:     "with line only",
			loc:      SourceLocation{Line: 1},
			expected: false,
		},
		{
			name:     "with column only",
			loc:      SourceLocation{Column: 1},
			expected: false,
		},
		{
			name:     "filename doesn't affect IsZero",
			loc:      SourceLocation{Filename: "test.quil"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.loc.IsZero(), tt.expected)
		})
	}
}

func TestErrorCode_Description(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{E1001, "unexpected token"},
		{E1002, "unterminated string literal"},
		{E1005, "expected qubit"},
		{E2001, "duplicate label"},
		{E2003, "undeclared memory reference"},
		{E3002, "division by zero"},
		{ErrorCode("E9999"), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.code.Description(), tt.expected)
		})
	}
}

func TestErrorCode_Category(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{E1001, "parse"},
		{E1009, "parse"},
		{E2001, "validation"},
		{E2005, "validation"},
		{E3001, "evaluation"},
		{E3002, "evaluation"},
		{ErrorCode("E4001"), "unknown"},
		{ErrorCode(""), "unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.code.Category(), tt.expected)
		})
	}
}

func TestSuggestSimilar(t *testing.T) {
	t.Run("close match", func(t *testing.T) {
		suggestions := SuggestSimilar("ro", []string{"rx", "theta", "shots"})
		assert.Equal(t, len(suggestions), 1)
		assert.Equal(t, suggestions[0].Value, "rx")
		assert.Equal(t, suggestions[0].Distance, 1)
	})

	t.Run("exact match excluded", func(t *testing.T) {
		suggestions := SuggestSimilar("ro", []string{"ro"})
		assert.Equal(t, len(suggestions), 0)
	})

	t.Run("case insensitive", func(t *testing.T) {
		suggestions := SuggestSimilar("Theta", []string{"theta2"})
		assert.Equal(t, len(suggestions), 1)
		assert.Equal(t, suggestions[0].Value, "theta2")
	})

	t.Run("distance threshold scales with length", func(t *testing.T) {
		// Short targets only allow one edit.
		assert.Equal(t, len(SuggestSimilar("ro", []string{"abc"})), 0)
		// Longer targets allow up to three.
		suggestions := SuggestSimilar("frequency", []string{"frequencie"})
		assert.Equal(t, len(suggestions), 1)
	})

	t.Run("sorted by distance then value", func(t *testing.T) {
		suggestions := SuggestSimilar("start", []string{"stark", "starts", "sparta"})
		assert.Equal(t, len(suggestions), 3)
		assert.Equal(t, suggestions[0].Value, "stark")
		assert.Equal(t, suggestions[1].Value, "starts")
		assert.Equal(t, suggestions[2].Value, "sparta")
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Equal(t, len(SuggestSimilar("", []string{"a"})), 0)
		assert.Equal(t, len(SuggestSimilar("a", nil)), 0)
	})
}

func TestFormatSuggestions(t *testing.T) {
	tests := []struct {
		name        string
		suggestions []Suggestion
		expected    string
	}{
		{
			name:        "empty",
			suggestions: nil,
			expected:    "",
		},
		{
			name:        "single",
			suggestions: []Suggestion{{Value: "ro", Distance: 1}},
			expected:    "Did you mean 'ro'?",
		},
		{
			name: "multiple",
			suggestions: []Suggestion{
				{Value: "ro", Distance: 1},
				{Value: "rx", Distance: 2},
			},
			expected: "Did you mean one of: 'ro', 'rx'?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, FormatSuggestions(tt.suggestions), tt.expected)
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"a", "", 1},
		{"", "abc", 3},
		{"ro", "rx", 1},
		{"theta", "theta", 0},
		{"flat", "flap", 1},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, levenshteinDistance(tt.a, tt.b), tt.expected)
		})
	}
}
