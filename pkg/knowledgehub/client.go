/*
knowledgehub manages the media corpus of a Modalica account: creating
the corpus, adding and deleting media files, querying the corpus and
describing its contents.
*/
package knowledgehub

import (
	// Packages
	invoker "github.com/mutablelogic/go-modalica/pkg/invoker"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client calls the knowledge_hub endpoints
type Client struct {
	*invoker.Invoker
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	hub = "knowledge_hub"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a knowledge hub client authenticated with the given API key
func New(apiKey string, opts ...invoker.Opt) (*Client, error) {
	c := new(Client)
	if invoker, err := invoker.New(apiKey, opts...); err != nil {
		return nil, err
	} else {
		c.Invoker = invoker
	}
	return c, nil
}

// NewWithInvoker creates a knowledge hub client which shares an existing invoker
func NewWithInvoker(invoker *invoker.Invoker) *Client {
	return &Client{Invoker: invoker}
}
