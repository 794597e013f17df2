package chat

import (
	"fmt"
	"strings"
)

// BuildRequest assembles the text sent to the model for one turn: the recent
// conversation turns as read-only context, a fixed instruction preamble, and
// the user's raw prompt.
func BuildRequest(context []IndexedTurn, promptText string) string {
	var sb strings.Builder

	sb.WriteString("chat history:\n")
	for _, turn := range context {
		fmt.Fprintf(&sb, "[%d] prompt: %s\n", turn.Index, turn.Prompt)
		fmt.Fprintf(&sb, "    response: %s\n", turn.Response)
	}

	sb.WriteString("Instruction:\n")
	sb.WriteString("    1. Always check the 'chat history' for context only.\n")
	sb.WriteString("    2. Return response for current prompt only.\n")
	sb.WriteString("    3. Your knowledge base is the basis for your response.\n")
	sb.WriteString("    4. Do not repeat the chat history in your response.\n")

	fmt.Fprintf(&sb, "prompt: %s", promptText)

	return sb.String()
}
