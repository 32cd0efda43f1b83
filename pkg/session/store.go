package session

import (
	"context"
	"time"

	// Packages
	modalica "github.com/mutablelogic/go-modalica"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Store persists conversation transcripts
type Store interface {
	// Create a new transcript with an empty system instruction
	Create(ctx context.Context, meta schema.TranscriptMeta) (*schema.Transcript, error)

	// Get a transcript by ID
	Get(ctx context.Context, id string) (*schema.Transcript, error)

	// List transcripts, most recently modified first
	List(ctx context.Context, req schema.ListTranscriptRequest) (*schema.ListTranscriptResponse, error)

	// Delete a transcript by ID
	Delete(ctx context.Context, id string) error

	// Write the current state of a transcript
	Write(t *schema.Transcript) error
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Load restores the session for a stored transcript
func Load(ctx context.Context, store Store, gen modalica.ChatGenerator, id string) (*Session, *schema.Transcript, error) {
	t, err := store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	s, err := Restore(gen, t.Turns)
	if err != nil {
		return nil, nil, err
	}
	return s, t, nil
}

// Save writes the transcript of a session to the store
func Save(store Store, t *schema.Transcript, s *Session) error {
	t.Turns = s.Transcript()
	t.Modified = time.Now()
	return store.Write(t)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newTranscript(id string, meta schema.TranscriptMeta) *schema.Transcript {
	now := time.Now()
	return &schema.Transcript{
		ID:             id,
		TranscriptMeta: meta,
		Turns:          initial(),
		Created:        now,
		Modified:       now,
	}
}

func cloneTranscript(t *schema.Transcript) *schema.Transcript {
	result := *t
	result.Turns = schema.CloneTurns(t.Turns)
	return &result
}

// paginate returns the page of transcripts for a request
func paginate(result []*schema.Transcript, req schema.ListTranscriptRequest) *schema.ListTranscriptResponse {
	total := uint(len(result))
	start := min(req.Offset, total)
	end := total
	if req.Limit != nil {
		end = min(start+*req.Limit, total)
	}
	return &schema.ListTranscriptResponse{
		Count:  total,
		Offset: req.Offset,
		Limit:  req.Limit,
		Body:   result[start:end],
	}
}
