/*
modelhub wraps the generative model endpoints of the Modalica API:
text, chat, code and image generation. Every call is stateless; see
pkg/session for a conversation which keeps its own transcript.
*/
package modelhub

import (
	// Packages
	modalica "github.com/mutablelogic/go-modalica"
	invoker "github.com/mutablelogic/go-modalica/pkg/invoker"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client calls the model_hub endpoints
type Client struct {
	*invoker.Invoker
}

var _ modalica.ChatGenerator = (*Client)(nil)
var _ modalica.TextGenerator = (*Client)(nil)
var _ modalica.ImageGenerator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	hub = "model_hub"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a model hub client authenticated with the given API key
func New(apiKey string, opts ...invoker.Opt) (*Client, error) {
	c := new(Client)
	if invoker, err := invoker.New(apiKey, opts...); err != nil {
		return nil, err
	} else {
		c.Invoker = invoker
	}
	return c, nil
}

// NewWithInvoker creates a model hub client which shares an existing invoker
func NewWithInvoker(invoker *invoker.Invoker) *Client {
	return &Client{Invoker: invoker}
}
