package chat

import (
	"sort"

	"github.com/rfoley/confab/internal/history"
)

// IndexedTurn pairs a turn with its index in the conversation history
type IndexedTurn struct {
	Index int
	history.Turn
}

// RecentTurns returns the n most recently appended turns of the history,
// oldest to newest. If fewer than n turns exist, all of them are returned.
// Selection is purely positional; a non-positive n selects nothing.
func RecentTurns(h *history.ConversationHistory, n int) []IndexedTurn {
	if h == nil || n <= 0 {
		return nil
	}

	indices := make([]int, 0, len(h.Turns))
	for i := range h.Turns {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	if len(indices) > n {
		indices = indices[len(indices)-n:]
	}

	turns := make([]IndexedTurn, 0, len(indices))
	for _, i := range indices {
		turns = append(turns, IndexedTurn{Index: i, Turn: h.Turns[i]})
	}
	return turns
}
