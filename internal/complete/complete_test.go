package complete

import "testing"

func TestSuggest(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		cursor   int
		language string
		expected string
	}{
		{
			name:     "def suffix",
			code:     "def",
			cursor:   3,
			language: "python",
			expected: " my_function(args):\n    pass",
		},
		{
			name:     "class suffix",
			code:     "class",
			cursor:   5,
			language: "python",
			expected: " MyClass:\n    pass",
		},
		{
			name:     "import suffix",
			code:     "import",
			cursor:   6,
			language: "python",
			expected: " os",
		},
		{
			name:     "for suffix on current line only",
			code:     "x = 1\nfor",
			cursor:   9,
			language: "python",
			expected: " item in items:\n    pass",
		},
		{
			name:     "if suffix",
			code:     "if",
			cursor:   2,
			language: "python",
			expected: " condition:\n    pass",
		},
		{
			name:     "python default",
			code:     "x = 1",
			cursor:   5,
			language: "python",
			expected: "  # Add your code here",
		},
		{
			name:     "javascript default",
			code:     "let x = 1",
			cursor:   9,
			language: "javascript",
			expected: "  // Add your code here",
		},
		{
			name:     "unknown language default",
			code:     "x",
			cursor:   1,
			language: "ruby",
			expected: "  # suggestion",
		},
		{
			name:     "cursor ignores trailing code",
			code:     "def foo",
			cursor:   3,
			language: "python",
			expected: " my_function(args):\n    pass",
		},
		{
			name:     "cursor clamped to code length",
			code:     "if",
			cursor:   100,
			language: "python",
			expected: " condition:\n    pass",
		},
		{
			name:     "negative cursor clamped to zero",
			code:     "def",
			cursor:   -1,
			language: "python",
			expected: "  # Add your code here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(tt.code, tt.cursor, tt.language)
			if got != tt.expected {
				t.Errorf("Suggest(%q, %d, %q) = %q, want %q", tt.code, tt.cursor, tt.language, got, tt.expected)
			}
		})
	}
}
