package llm

import (
	"errors"
	"testing"

	genai "google.golang.org/genai"

	"torchlint/internal/tester"
)

func TestCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "hello"}}}},
		},
	}
	text, err := candidateText(resp)
	tester.NoErr(t, err)
	tester.Eq(t, text, "hello")
}

// A safety-blocked candidate arrives with Content nil; extraction must report
// an empty response instead of dereferencing it.
func TestCandidateTextNilContent(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}
	_, err := candidateText(resp)
	tester.True(t, errors.Is(err, ErrEmptyResponse), "nil content rejected")
}

func TestCandidateTextEmpty(t *testing.T) {
	for _, resp := range []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
	} {
		_, err := candidateText(resp)
		tester.True(t, errors.Is(err, ErrEmptyResponse), "empty response rejected")
	}
}
