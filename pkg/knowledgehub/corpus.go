package knowledgehub

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
// PUBLIC METHODS

// CreateCorpus creates the corpus. The embedding model defaults to
// clip-vit-b-32.
func (c *Client) CreateCorpus(ctx context.Context, config schema.CorpusConfig) (*schema.Reply, error) {
	configs, err := json.Marshal(config.WithDefaults())
	if err != nil {
		return nil, err
	}
	return c.Multipart(ctx, schema.CreateCorpusRequest{
		Configs: string(configs),
	}, hub, "create_corpus")
}

// AddMedia uploads a media file to the corpus
func (c *Client) AddMedia(ctx context.Context, name string, content io.Reader) (*schema.Reply, error) {
	if name == "" {
		return nil, modalica.ErrBadParameter.With("file name is required")
	} else if content == nil {
		return nil, modalica.ErrBadParameter.Withf("%q: file content is required", name)
	}
	return c.Multipart(ctx, schema.AddMediaRequest{
		File: gomultipart.File{
			Path: name,
			Body: io.NopCloser(content),
		},
	}, hub, "add_media")
}

// QueryMedia executes a query against the media in the corpus. The
// configuration is forwarded verbatim.
func (c *Client) QueryMedia(ctx context.Context, query string, config schema.QueryConfig) (*schema.Reply, error) {
	return c.JSON(ctx, schema.QueryMediaRequest{
		Query:   query,
		Configs: config,
	}, hub, "query_media")
}

// DescribeCorpus returns statistics about the media in the corpus
func (c *Client) DescribeCorpus(ctx context.Context) (*schema.CorpusDescription, error) {
	reply, err := c.Post(ctx, hub, "describe_corpus")
	if err != nil {
		return nil, err
	}
	var description schema.CorpusDescription
	if err := invoker.Decode(reply, &description, hub, "describe_corpus"); err != nil {
		return nil, err
	}
	return &description, nil
}

// DeleteMedia deletes the named media files from the corpus
func (c *Client) DeleteMedia(ctx context.Context, names ...string) (*schema.Reply, error) {
	if len(names) == 0 {
		return nil, modalica.ErrBadParameter.With("at least one file name is required")
	}
	for _, name := range names {
		if name == "" {
			return nil, modalica.ErrBadParameter.With("empty file name")
		}
	}
	return c.Form(ctx, schema.DeleteMediaRequest{
		Files: names,
	}, hub, "delete_media")
}

// DeleteCorpus deletes the corpus and all its media
func (c *Client) DeleteCorpus(ctx context.Context) (*schema.Reply, error) {
	reply, err := c.Post(ctx, hub, "delete_corpus")
	if err != nil {
		return nil, err
	}
	c.Logger().Debugw("corpus deleted",
		"url", c.URL(hub, "delete_corpus"),
		"content_type", reply.ContentType(),
		"body", string(reply.Body),
	)
	return reply, nil
}
