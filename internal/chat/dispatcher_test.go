package chat

import (
	"context"
	"errors"
	"testing"

	"torchlint/internal/tester"
)

func TestBuildPromptIncludesFilesAndInstructions(t *testing.T) {
	files := []FileContext{
		{FilePath: "train.py", Content: "x = 1"},
		{FilePath: "model.py", Content: "y = 2"},
	}
	prompt := BuildPrompt("make it faster", files)
	tester.Contains(t, prompt, "make it faster")
	tester.Contains(t, prompt, "### train.py\nx = 1")
	tester.Contains(t, prompt, "### model.py\ny = 2")
	tester.Contains(t, prompt, fileDelimiter)
	tester.Contains(t, prompt, "apply:<path>")
}

func TestBuildEnvelopeExplanation(t *testing.T) {
	calls := 0
	env := BuildEnvelope(context.Background(), "why is this slow", nil,
		func(_ context.Context, _ string) (string, error) {
			calls++
			return "  Because of the loop.  ", nil
		})
	tester.Eq(t, calls, 1)
	tester.Eq(t, env, Envelope{Type: TypeExplanation, Content: "Because of the loop."})
}

func TestBuildEnvelopeMultiFileChange(t *testing.T) {
	env := BuildEnvelope(context.Background(), "fix it", nil,
		func(_ context.Context, _ string) (string, error) {
			return "Moved the tensor.\n```apply:train.py\nx = torch.Tensor(d).to(device)\n```", nil
		})
	tester.Eq(t, env.Type, TypeMultiFileChange)
	tester.Eq(t, env.Explanation, "Moved the tensor.")
	tester.Eq(t, env.Changes, []FileChange{
		{FilePath: "train.py", NewContent: "x = torch.Tensor(d).to(device)"},
	})
}

// A failing model call never escapes the dispatcher; it comes back as a
// well-formed error envelope.
func TestBuildEnvelopeNeverFails(t *testing.T) {
	env := BuildEnvelope(context.Background(), "anything", nil,
		func(_ context.Context, _ string) (string, error) {
			return "", errors.New("backend exploded")
		})
	tester.Eq(t, env.Type, TypeError)
	tester.True(t, env.Content != "", "error envelope carries a message")
	tester.Contains(t, env.Content, "backend exploded")
}
