package chat

import "strings"

const fileDelimiter = "\n\n---\n\n"

// formatInstructions tells the model how to mark a file rewrite so that
// ExtractChanges can pick it up.
const formatInstructions = "When you rewrite a file, emit its complete new content in a fenced block " +
	"whose opening fence is tagged apply:<path>, for example:\n\n" +
	"```apply:train.py\n<full new file content>\n```\n\n" +
	"Use one block per file and keep all explanation outside the blocks."

// BuildPrompt combines the user request, the supplied files and the fixed
// formatting instructions into one outbound prompt.
func BuildPrompt(userInput string, files []FileContext) string {
	var b strings.Builder
	b.WriteString(userInput)
	if len(files) > 0 {
		b.WriteString("\n\n[FILES]\n")
		parts := make([]string, 0, len(files))
		for _, f := range files {
			parts = append(parts, "### "+f.FilePath+"\n"+f.Content)
		}
		b.WriteString(strings.Join(parts, fileDelimiter))
	}
	b.WriteString("\n\n[FORMAT]\n")
	b.WriteString(formatInstructions)
	return b.String()
}
