package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	media "github.com/mutablelogic/go-modalica/pkg/media"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ProcessCommands struct {
	Chunkify      ChunkifyCommand      `cmd:"" help:"Split documents into chunks."`
	EmbedText     EmbedTextCommand     `cmd:"" name:"embed-text" help:"Embed the chunks of documents."`
	EmbedSnippets EmbedSnippetsCommand `cmd:"" name:"embed-snippets" help:"Embed text snippets."`
	EmbedImage    EmbedImageCommand    `cmd:"" name:"embed-image" help:"Embed images."`
}

type ChunkFlags struct {
	Files        []string `arg:"" name:"file" help:"Documents to process (between 1 and 100)" type:"existingfile"`
	MaxChunkSize uint     `name:"max-chunk-size" help:"Maximum chunk size" default:"${max_chunk_size}"`
	Parallel     int      `name:"parallel" help:"Number of uploads in parallel" default:"4"`
}

type ChunkifyCommand struct {
	ChunkFlags
}

type EmbedTextCommand struct {
	ChunkFlags
}

type EmbedSnippetsCommand struct {
	Snippets       []string `arg:"" name:"snippet" help:"Snippets to embed; with none, one snippet is read from each line of standard input" optional:""`
	EmbeddingModel string   `name:"embedding-model" help:"Embedding model" default:"${embedding_model}"`
}

type EmbedImageCommand struct {
	Files          []string `arg:"" name:"file" help:"Images to embed (between 1 and 100)" type:"existingfile"`
	EmbeddingModel string   `name:"embedding-model" help:"Embedding model" default:"${embedding_model}"`
	Parallel       int      `name:"parallel" help:"Number of uploads in parallel" default:"4"`
}

// uploadFn processes one file and returns the reply
type uploadFn func(file media.File) (*schema.Reply, error)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChunkifyCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.MediaProcessor()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ChunkifyCommand",
		attribute.StringSlice("files", cmd.Files),
	)
	defer func() { endSpan(err) }()

	config := schema.ChunkConfig{MaxChunkSize: cmd.MaxChunkSize}
	return ctx.process(cmd.Files, cmd.Parallel, func(file media.File) (*schema.Reply, error) {
		return client.ChunkifyText(parent, file.Name, file.Body, config)
	})
}

func (cmd *EmbedTextCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.MediaProcessor()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "EmbedTextCommand",
		attribute.StringSlice("files", cmd.Files),
	)
	defer func() { endSpan(err) }()

	config := schema.ChunkConfig{MaxChunkSize: cmd.MaxChunkSize}
	return ctx.process(cmd.Files, cmd.Parallel, func(file media.File) (*schema.Reply, error) {
		return client.EmbedText(parent, file.Name, file.Body, config)
	})
}

func (cmd *EmbedImageCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.MediaProcessor()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "EmbedImageCommand",
		attribute.StringSlice("files", cmd.Files),
	)
	defer func() { endSpan(err) }()

	config := schema.EmbedConfig{EmbeddingModel: cmd.EmbeddingModel}
	return ctx.process(cmd.Files, cmd.Parallel, func(file media.File) (*schema.Reply, error) {
		return client.EmbedImage(parent, file.Name, file.Body, config)
	})
}

func (cmd *EmbedSnippetsCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.MediaProcessor()
	if err != nil {
		return err
	}

	// Snippets from arguments or standard input
	snippets := cmd.Snippets
	if len(snippets) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				snippets = append(snippets, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "EmbedSnippetsCommand",
		attribute.Int("snippets", len(snippets)),
	)
	defer func() { endSpan(err) }()

	reply, err := client.EmbedTextSnippets(parent, snippets, schema.EmbedConfig{EmbeddingModel: cmd.EmbeddingModel})
	if err != nil {
		return err
	}
	return ctx.printJSON(reply)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// process opens the files and uploads them in parallel, printing each
// reply in the order of the files
func (g *Globals) process(paths []string, parallel int, fn uploadFn) error {
	files, err := media.Open(paths...)
	if err != nil {
		return err
	}
	defer files.Close()

	var mu sync.Mutex
	replies := make([]*schema.Reply, len(files))
	wg := new(errgroup.Group)
	wg.SetLimit(max(parallel, 1))
	for i, file := range files {
		wg.Go(func() error {
			reply, err := fn(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file.Name, err)
			}
			mu.Lock()
			defer mu.Unlock()
			replies[i] = reply
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return err
	}

	for i, reply := range replies {
		if len(replies) > 1 {
			fmt.Println(g.term.Bold(files[i].Name))
		}
		if err := g.printJSON(reply); err != nil {
			return err
		}
	}
	return nil
}
