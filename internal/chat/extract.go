package chat

import (
	"regexp"
	"strings"
)

// applyBlockRe matches one apply block: a fenced region whose opening fence
// is tagged apply:<path> and whose body is the replacement file content.
// The body match is non-greedy, so a fence-like substring inside the body
// closes the block early. This is a boundary-scanner, not a markdown parser.
var applyBlockRe = regexp.MustCompile("(?s)```apply:([^\n]*)\n(.*?)```")

// ExtractChanges splits a raw model response into prose and apply blocks.
// Path and body are trimmed; blocks with an empty path or empty body are
// dropped silently. The returned explanation is the input with every matched
// region removed, trimmed. Zero blocks is the normal explanation-only
// outcome, not an error.
func ExtractChanges(response string) (string, []FileChange) {
	matches := applyBlockRe.FindAllStringSubmatchIndex(response, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(response), nil
	}

	var changes []FileChange
	var prose strings.Builder
	last := 0
	for _, m := range matches {
		prose.WriteString(response[last:m[0]])
		last = m[1]
		path := strings.TrimSpace(response[m[2]:m[3]])
		body := strings.TrimSpace(response[m[4]:m[5]])
		if path == "" || body == "" {
			continue
		}
		changes = append(changes, FileChange{FilePath: path, NewContent: body})
	}
	prose.WriteString(response[last:])
	return strings.TrimSpace(prose.String()), changes
}
