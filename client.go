/*
modalica is a client SDK for the Modalica API: generative models (text,
chat, code and image), media corpus management and media processing.

The API clients live in pkg/modelhub, pkg/knowledgehub and
pkg/mediaprocessor. A stateful chat conversation is provided by
pkg/session.
*/
package modalica

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ChatGenerator is the interface which wraps the remote chat endpoint
type ChatGenerator interface {
	// GenerateChat sends a prompt with an explicit message history and returns
	// the reply. The history is forwarded verbatim.
	GenerateChat(ctx context.Context, prompt string, history []schema.Turn, config schema.ChatModelConfig) (*schema.Reply, error)
}

// TextGenerator is the interface which wraps the one-shot generation endpoints
type TextGenerator interface {
	// GenerateText returns text generated for a prompt
	GenerateText(ctx context.Context, prompt string, config schema.ModelConfig) (*schema.Reply, error)

	// GenerateCode returns code generated for a prompt
	GenerateCode(ctx context.Context, prompt string, config schema.ModelConfig) (*schema.Reply, error)
}

// ImageGenerator is the interface which wraps the image generation endpoint
type ImageGenerator interface {
	// GenerateImage returns one or more base64-encoded images for a prompt
	GenerateImage(ctx context.Context, prompt string, config schema.ImageModelConfig) (*schema.ImageReply, error)
}
