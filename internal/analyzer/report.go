package analyzer

import (
	"fmt"
	"strings"
)

// NoIssues is the fixed report text for a clean source file. Consumers parse
// the report line by line, so both this sentinel and the per-issue line shape
// are stable contracts.
const NoIssues = "No PyTorch issues found"

// Format renders issues one per line, in the order given, with no trailing
// newline.
func Format(issues []Issue) string {
	if len(issues) == 0 {
		return NoIssues
	}
	lines := make([]string, 0, len(issues))
	for _, is := range issues {
		lines = append(lines, fmt.Sprintf("Line %d: %s: %s", is.Line, is.Message, is.Fix))
	}
	return strings.Join(lines, "\n")
}
