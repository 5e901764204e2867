package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractChangesRoundTrip(t *testing.T) {
	response := "Here is the fix.\n\n```apply:train.py\nimport torch\n```\n\nDone."
	explanation, changes := ExtractChanges(response)
	assert.Equal(t, []FileChange{{FilePath: "train.py", NewContent: "import torch"}}, changes)
	assert.Equal(t, "Here is the fix.\n\n\n\nDone.", explanation)
	assert.NotContains(t, explanation, "```")
}

func TestExtractChangesNoFences(t *testing.T) {
	explanation, changes := ExtractChanges("  Just prose, no edits.  ")
	assert.Empty(t, changes)
	assert.Equal(t, "Just prose, no edits.", explanation)
}

func TestExtractChangesTwoFilesInOrder(t *testing.T) {
	response := "Fix both files.\n```apply:a.py\nprint('a')\n```\nand\n```apply:b.py\nprint('b')\n```\n"
	explanation, changes := ExtractChanges(response)
	assert.Equal(t, []FileChange{
		{FilePath: "a.py", NewContent: "print('a')"},
		{FilePath: "b.py", NewContent: "print('b')"},
	}, changes)
	assert.Equal(t, "Fix both files.\n\nand", explanation)
}

func TestExtractChangesDropsEmptyPath(t *testing.T) {
	explanation, changes := ExtractChanges("prose\n```apply:\nsome content\n```\nmore")
	assert.Empty(t, changes)
	// The malformed block is still excised from the explanation.
	assert.Equal(t, "prose\n\nmore", explanation)
}

func TestExtractChangesDropsEmptyContent(t *testing.T) {
	explanation, changes := ExtractChanges("prose\n```apply:a.py\n   \n```\nmore")
	assert.Empty(t, changes)
	assert.Equal(t, "prose\n\nmore", explanation)
}

// The scanner is not a markdown parser: a fence-like substring inside a body
// closes the block early. The truncated body becomes the change and the rest
// of the original body stays in the explanation.
func TestExtractChangesNestedFence(t *testing.T) {
	response := "pre\n```apply:f.py\nhead\n```inner\ntail\n```\npost"
	explanation, changes := ExtractChanges(response)
	assert.Equal(t, []FileChange{{FilePath: "f.py", NewContent: "head"}}, changes)
	assert.Equal(t, "pre\ninner\ntail\n```\npost", explanation)
}
