package complete

import "strings"

// Suggest returns a rule-based completion for the code before cursorPos.
// It looks at how the current line ends and proposes a matching snippet;
// there is no model behind it.
func Suggest(code string, cursorPos int, language string) string {
	if cursorPos < 0 {
		cursorPos = 0
	}
	if cursorPos > len(code) {
		cursorPos = len(code)
	}

	lines := strings.Split(code[:cursorPos], "\n")
	current := strings.TrimSpace(lines[len(lines)-1])

	switch {
	case strings.HasSuffix(current, "def"):
		return " my_function(args):\n    pass"
	case strings.HasSuffix(current, "class"):
		return " MyClass:\n    pass"
	case strings.HasSuffix(current, "import"):
		return " os"
	case strings.HasSuffix(current, "for"):
		return " item in items:\n    pass"
	case strings.HasSuffix(current, "if"):
		return " condition:\n    pass"
	}

	switch language {
	case "python":
		return "  # Add your code here"
	case "javascript":
		return "  // Add your code here"
	default:
		return "  # suggestion"
	}
}
