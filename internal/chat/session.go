// Package chat implements the interactive turn loop of the client: it accepts
// prompts, builds context-augmented requests, invokes the remote model, and
// records each completed turn in the conversation history.
package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rfoley/confab/internal/history"
	"github.com/rfoley/confab/internal/model"
	"github.com/rfoley/confab/internal/telemetry"
)

// ErrSessionEnded signals deliberate, graceful termination of a session. Any
// other error returned by Run is an unexpected failure.
var ErrSessionEnded = errors.New("chat session ended")

// NoResponse substitutes for a response when the model returns nothing
const NoResponse = "No response received."

// exitKeyword ends the session when entered as a prompt, compared
// case-insensitively against the raw prompt text
const exitKeyword = "exit"

// Config holds the per-session settings, immutable for the session's lifetime
type Config struct {
	// ModelID identifies the remote model variant to use
	ModelID string
	// QuestionLimit is the maximum number of turns allowed before forced
	// termination. Values below 1 are coerced to 1.
	QuestionLimit int
	// ContextWindowSize is the number of most-recent turns included as
	// context in each outgoing request
	ContextWindowSize int
	// ResponsePath is the file the latest raw response is written to after
	// every turn, for external inspection
	ResponsePath string
}

// Console is the interactive input/output collaborator of a session
type Console interface {
	// Banner prints the welcome message for a session
	Banner(modelID string, responseFile string)
	// Ask prints a question and reads one line of input
	Ask(question string) (string, error)
	// Say prints a status line
	Say(format string, args ...any)
}

// Session drives one interactive chat run from title entry to termination. It
// owns the in-memory conversation history for the duration of the run and
// persists it through the store after every turn.
type Session struct {
	cfg     Config
	gen     model.Generator
	store   history.Store
	console Console
	tel     *telemetry.Provider // may be nil

	hist       *history.ConversationHistory
	startIndex int // turn index observed at load time; the question limit is relative to it
	convID     string
}

// NewSession creates a session. The telemetry provider may be nil.
func NewSession(cfg Config, gen model.Generator, store history.Store, console Console, tel *telemetry.Provider) *Session {
	if cfg.QuestionLimit < 1 {
		cfg.QuestionLimit = 1
	}
	return &Session{
		cfg:     cfg,
		gen:     gen,
		store:   store,
		console: console,
		tel:     tel,
	}
}

// Run executes the interactive loop. It returns ErrSessionEnded on graceful
// termination (the user typed "exit", or the question limit was reached) and
// a wrapped error on any unexpected failure.
func (s *Session) Run(ctx context.Context) error {
	s.console.Banner(s.cfg.ModelID, filepath.Base(s.cfg.ResponsePath))

	title, err := s.console.Ask("Enter chat title: ")
	if err != nil {
		return fmt.Errorf("failed to read chat title: %w", err)
	}

	s.hist, err = s.store.Load(title)
	if err != nil {
		return fmt.Errorf("failed to load conversation history: %w", err)
	}
	s.startIndex = s.hist.TurnIndex
	s.convID = telemetry.NewConversationID()

	for {
		text, err := s.console.Ask("\nEnter your prompt: ")
		if err != nil {
			return fmt.Errorf("failed to read prompt: %w", err)
		}

		limitReached, err := s.processTurn(ctx, text)
		if err != nil {
			return err
		}

		if limitReached || strings.EqualFold(text, exitKeyword) {
			s.console.Say("Exiting chat...")
			s.console.Say("Chat history saved to [%s]", s.store.RecordName(s.hist.Title))
			return ErrSessionEnded
		}
	}
}

// processTurn runs one full turn: build the context-augmented request, invoke
// the model, record the exchange, and write the response side artifact. It
// reports whether the turn consumed the session's question budget.
func (s *Session) processTurn(ctx context.Context, text string) (bool, error) {
	request := BuildRequest(RecentTurns(s.hist, s.cfg.ContextWindowSize), text)

	response, err := s.gen.Generate(ctx, s.cfg.ModelID, request)
	if err != nil {
		return false, fmt.Errorf("model call failed: %w", err)
	}
	if response == "" {
		response = NoResponse
	}

	limitReached, err := s.updateHistory(request, response)
	if err != nil {
		return false, err
	}

	if err := s.writeResponse(response); err != nil {
		return false, err
	}

	s.tel.RecordTurn(ctx, telemetry.TurnTelemetry{
		ConversationID: s.convID,
		TurnID:         telemetry.NewTurnID(),
		TurnIndex:      s.hist.TurnIndex,
		ModelID:        s.cfg.ModelID,
		PromptBytes:    len(request),
		ResponseBytes:  len(response),
	})

	return limitReached, nil
}

// updateHistory appends the completed turn, persists the history, and checks
// the turn count against the question limit. The limit applies per session:
// a resumed conversation gets a fresh allotment relative to the turn index it
// was loaded with.
func (s *Session) updateHistory(prompt string, response string) (bool, error) {
	s.hist.Append(history.Turn{Prompt: prompt, Response: response})

	if err := s.store.Save(*s.hist); err != nil {
		return false, fmt.Errorf("failed to save conversation history: %w", err)
	}

	if len(s.hist.Turns) == s.cfg.QuestionLimit+s.startIndex {
		s.console.Say("No more questions allowed. Exiting chat. | Max -> [%d]", s.cfg.QuestionLimit)
		return true, nil
	}
	return false, nil
}

// writeResponse overwrites the side artifact with the latest raw response
func (s *Session) writeResponse(response string) error {
	if s.cfg.ResponsePath == "" {
		return nil
	}
	if dir := filepath.Dir(s.cfg.ResponsePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create response directory: %w", err)
		}
	}
	if err := os.WriteFile(s.cfg.ResponsePath, []byte(response), 0666); err != nil {
		return fmt.Errorf("failed to write response file: %w", err)
	}
	return nil
}
