/*
mediaprocessor wraps the media processing endpoints of the Modalica API,
which split documents into chunks and compute embeddings for documents,
text snippets and images. Every reply must be JSON.
*/
package mediaprocessor

import (
	"context"
	"encoding/json"
	"io"

	// Packages
	gomultipart "github.com/mutablelogic/go-client/pkg/multipart"
	modalica "github.com/mutablelogic/go-modalica"
	invoker "github.com/mutablelogic/go-modalica/pkg/invoker"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client calls the media_processor endpoints
type Client struct {
	*invoker.Invoker
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	hub = "media_processor"

	// Documents sent for chunking are declared as PDF
	contentTypeDocument = "application/pdf"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a media processor client authenticated with the given API key
func New(apiKey string, opts ...invoker.Opt) (*Client, error) {
	c := new(Client)
	if invoker, err := invoker.New(apiKey, opts...); err != nil {
		return nil, err
	} else {
		c.Invoker = invoker
	}
	return c, nil
}

// NewWithInvoker creates a media processor client which shares an existing invoker
func NewWithInvoker(invoker *invoker.Invoker) *Client {
	return &Client{Invoker: invoker}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ChunkifyText splits a document into chunks of at most
// config.MaxChunkSize, which defaults to 1000
func (c *Client) ChunkifyText(ctx context.Context, name string, content io.Reader, config schema.ChunkConfig) (*schema.Reply, error) {
	return c.upload(ctx, "chunkify_text", name, content, contentTypeDocument, config.WithDefaults())
}

// EmbedText chunks a document and returns the embedding of each chunk
func (c *Client) EmbedText(ctx context.Context, name string, content io.Reader, config schema.ChunkConfig) (*schema.Reply, error) {
	return c.upload(ctx, "embed_text", name, content, contentTypeDocument, config.WithDefaults())
}

// EmbedImage returns the embedding of an image. The embedding model
// defaults to clip-vit-b-32.
func (c *Client) EmbedImage(ctx context.Context, name string, content io.Reader, config schema.EmbedConfig) (*schema.Reply, error) {
	return c.upload(ctx, "embed_image", name, content, "", config.WithDefaults())
}

// EmbedTextSnippets returns the embedding of each snippet
func (c *Client) EmbedTextSnippets(ctx context.Context, snippets []string, config schema.EmbedConfig) (*schema.Reply, error) {
	if len(snippets) == 0 {
		return nil, modalica.ErrBadParameter.With("at least one snippet is required")
	}
	reply, err := c.JSON(ctx, schema.EmbedSnippetsRequest{
		Configs:  config.WithDefaults(),
		Snippets: snippets,
	}, hub, "embed_text_snippets")
	if err != nil {
		return nil, err
	}
	if err := invoker.RequireJSON(reply, hub, "embed_text_snippets"); err != nil {
		return nil, err
	}
	return reply, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// upload sends a file with JSON-encoded configs as multipart/form-data. An
// empty content type is sent as application/octet-stream.
func (c *Client) upload(ctx context.Context, endpoint, name string, content io.Reader, contentType string, config any) (*schema.Reply, error) {
	if name == "" {
		return nil, modalica.ErrBadParameter.With("file name is required")
	} else if content == nil {
		return nil, modalica.ErrBadParameter.Withf("%q: file content is required", name)
	}

	configs, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	reply, err := c.Multipart(ctx, schema.ProcessMediaRequest{
		Configs: string(configs),
		File: gomultipart.File{
			Path:        name,
			Body:        io.NopCloser(content),
			ContentType: contentType,
		},
	}, hub, endpoint)
	if err != nil {
		return nil, err
	}
	if err := invoker.RequireJSON(reply, hub, endpoint); err != nil {
		return nil, err
	}
	return reply, nil
}
