package chat

import "context"

// ModelCall invokes a model backend once with a fully assembled prompt.
// Retry and backoff, if any, live behind this function, not in front of it.
type ModelCall func(ctx context.Context, prompt string) (string, error)

// BuildEnvelope runs one chat request end to end: assemble the prompt,
// invoke the model exactly once, parse the response, pick the variant.
// Failures are converted to an error envelope at this seam and nowhere else;
// the function always returns a well-formed envelope.
func BuildEnvelope(ctx context.Context, userInput string, files []FileContext, call ModelCall) Envelope {
	prompt := BuildPrompt(userInput, files)
	raw, err := call(ctx, prompt)
	if err != nil {
		return Envelope{Type: TypeError, Content: "model call failed: " + err.Error()}
	}
	explanation, changes := ExtractChanges(raw)
	if len(changes) > 0 {
		return Envelope{Type: TypeMultiFileChange, Explanation: explanation, Changes: changes}
	}
	return Envelope{Type: TypeExplanation, Content: explanation}
}
