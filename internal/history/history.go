// Package history defines the durable conversation record and its storage.
package history

// Turn is one prompt/response exchange. The prompt is the full text sent to
// the model, which may embed prior context.
type Turn struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// ConversationHistory is the durable record of one conversation, keyed by
// title. TurnIndex counts completed turns and is never decremented; Turns maps
// each index to its exchange, with insertion order equal to index order.
type ConversationHistory struct {
	Title     string       `json:"title"`
	TurnIndex int          `json:"history_index"`
	Turns     map[int]Turn `json:"turns"`
}

// NewConversationHistory creates an empty history for the given title
func NewConversationHistory(title string) *ConversationHistory {
	return &ConversationHistory{
		Title: title,
		Turns: map[int]Turn{},
	}
}

// Append records a turn at the next index and advances the turn counter
func (h *ConversationHistory) Append(t Turn) {
	h.TurnIndex++
	h.Turns[h.TurnIndex] = t
}

// Store manages persistent storage of conversation histories, one record per
// title
type Store interface {
	// Load returns the history stored under the given title. If no record
	// exists, or the record is empty, it returns a fresh history with the
	// title set and a zero turn index. A malformed record is an error.
	Load(title string) (*ConversationHistory, error)
	// Save replaces the record keyed by the history's title
	Save(h ConversationHistory) error
	// Delete removes the record stored under the given title
	Delete(title string) error
	// RecordName returns the name of the record a title is stored under
	RecordName(title string) string
}
