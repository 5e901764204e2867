// Package chat turns free-form model responses into structured, applicable
// file edits and assembles the result envelope for every chat request.
package chat

// FileContext is one caller-supplied file. Read-only to this package.
type FileContext struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// FileChange is one full-file rewrite extracted from a model response.
type FileChange struct {
	FilePath   string `json:"file_path"`
	NewContent string `json:"new_content"`
}

// Envelope type discriminators.
const (
	TypeExplanation     = "explanation"
	TypeMultiFileChange = "multi_file_change"
	TypeError           = "error"
)

// Envelope is the single structured result returned for every chat request.
// Type selects the variant: explanation and error carry Content,
// multi_file_change carries Explanation plus a non-empty Changes.
type Envelope struct {
	Type        string       `json:"type"`
	Content     string       `json:"content,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
	Changes     []FileChange `json:"changes,omitempty"`
}
