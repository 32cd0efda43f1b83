package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// TranscriptMeta describes a stored conversation
type TranscriptMeta struct {
	Name  string `json:"name,omitempty" help:"Conversation name" optional:""`
	Model string `json:"model,omitempty" help:"Model name" optional:""`
}

// Transcript is a conversation persisted in a store
type Transcript struct {
	ID string `json:"id"`
	TranscriptMeta
	Turns    []Turn    `json:"turns"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// ListTranscriptRequest represents a request to list transcripts
type ListTranscriptRequest struct {
	Limit  *uint `json:"limit,omitempty" help:"Maximum number of transcripts to return"`
	Offset uint  `json:"offset,omitempty" help:"Offset for pagination"`
}

// ListTranscriptResponse represents a page of transcripts
type ListTranscriptResponse struct {
	Count  uint          `json:"count"`
	Offset uint          `json:"offset,omitzero"`
	Limit  *uint         `json:"limit,omitzero"`
	Body   []*Transcript `json:"body,omitzero"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Transcript) String() string {
	return types.Stringify(t)
}

func (r ListTranscriptResponse) String() string {
	return types.Stringify(r)
}
