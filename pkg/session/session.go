/*
session implements a conversation with the Modalica chat endpoint which
keeps its own transcript. The transcript always starts with a system turn,
whose content is the current system instruction (empty when there is none),
followed by user and assistant turns in pairs.

A session is safe for concurrent use: calls to Converse are serialised, so
each one observes the transcript left by the previous call. Transcripts can
be persisted in a Store and restored later.
*/
package session

import (
	"context"
	"errors"
	"sync"

	// Packages
	modalica "github.com/mutablelogic/go-modalica"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Session is a conversation with a running transcript
type Session struct {
	mu         sync.Mutex
	gen        modalica.ChatGenerator
	transcript []schema.Turn
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	chatEndpoint = "model_hub/generate_chat"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a session with an empty system instruction, which sends each
// turn to the chat generator
func New(gen modalica.ChatGenerator) *Session {
	return &Session{
		gen:        gen,
		transcript: initial(),
	}
}

// Restore creates a session which continues from a persisted transcript.
// The transcript must start with the only system turn, followed by
// user and assistant turns in pairs.
func Restore(gen modalica.ChatGenerator, turns []schema.Turn) (*Session, error) {
	if err := validate(turns); err != nil {
		return nil, err
	}
	return &Session{
		gen:        gen,
		transcript: schema.CloneTurns(turns),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Converse sends a prompt, together with the transcript so far, and appends
// the prompt and the reply text to the transcript. A non-empty config.System
// replaces the system instruction, which then persists for later turns. The
// system turn is only sent when the instruction is non-empty.
//
// If the call fails the error is returned unchanged and the transcript,
// including the system instruction, is left as it was.
func (s *Session) Converse(ctx context.Context, prompt string, config schema.ChatModelConfig) (*schema.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen == nil {
		return nil, modalica.ErrBadParameter.With("session has no chat generator")
	}

	// Determine the system instruction for this turn
	system := s.transcript[0].Content
	if config.System != "" {
		system = config.System
	}

	// Send the outbound history, which is a copy of the transcript
	reply, err := s.gen.GenerateChat(ctx, prompt, outbound(system, s.transcript[1:]), config)
	if err != nil {
		return nil, err
	} else if reply == nil {
		return nil, modalica.NewMalformedResponseError(chatEndpoint, errors.New("empty reply"))
	}

	// Commit the turn
	s.transcript[0].Content = system
	s.transcript = append(s.transcript, schema.UserTurn(prompt), schema.AssistantTurn(reply.Text()))

	// Return success
	return reply, nil
}

// Reset clears the system instruction and all turns
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = initial()
}

// Transcript returns a copy of the transcript, starting with the system turn
func (s *Session) Transcript() []schema.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return schema.CloneTurns(s.transcript)
}

// System returns the current system instruction, or an empty string
func (s *Session) System() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript[0].Content
}

// Len returns the number of turns in the transcript, including the system turn
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transcript)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func initial() []schema.Turn {
	return []schema.Turn{schema.SystemTurn("")}
}

// outbound returns the message history for a turn, with the system turn
// first when the instruction is non-empty
func outbound(system string, turns []schema.Turn) []schema.Turn {
	result := make([]schema.Turn, 0, len(turns)+1)
	if system != "" {
		result = append(result, schema.SystemTurn(system))
	}
	return append(result, turns...)
}

// validate checks a transcript starts with a system turn followed by
// user and assistant pairs
func validate(turns []schema.Turn) error {
	if len(turns) == 0 {
		return modalica.ErrBadParameter.With("transcript is empty")
	}
	if turns[0].Role != schema.RoleSystem {
		return modalica.ErrBadParameter.Withf("transcript starts with role %q", turns[0].Role)
	}
	if (len(turns)-1)%2 != 0 {
		return modalica.ErrBadParameter.With("transcript has an unanswered turn")
	}
	for i, turn := range turns[1:] {
		want := schema.RoleUser
		if i%2 == 1 {
			want = schema.RoleAssistant
		}
		if turn.Role != want {
			return modalica.ErrBadParameter.Withf("turn %d: expected role %q, got %q", i+1, want, turn.Role)
		}
	}
	return nil
}
