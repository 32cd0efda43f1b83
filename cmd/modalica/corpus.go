package main

import (
	"fmt"
	"os"
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

type CorpusCommands struct {
	Create      CreateCorpusCommand   `cmd:"" help:"Create the corpus."`
	Add         AddMediaCommand       `cmd:"" help:"Add media files to the corpus."`
	Query       QueryMediaCommand     `cmd:"" help:"Query the media in the corpus."`
	Describe    DescribeCorpusCommand `cmd:"" help:"Describe the media in the corpus."`
	DeleteMedia DeleteMediaCommand    `cmd:"" name:"delete-media" help:"Delete media files from the corpus."`
	Delete      DeleteCorpusCommand   `cmd:"" help:"Delete the corpus."`
}

type CreateCorpusCommand struct {
	EmbeddingModel string `name:"embedding-model" help:"Embedding model" default:"${embedding_model}"`
}

type AddMediaCommand struct {
	Files    []string `arg:"" name:"file" help:"Files to upload (between 1 and 100)" type:"existingfile"`
	Parallel int      `name:"parallel" help:"Number of uploads in parallel" default:"4"`
}

type QueryMediaCommand struct {
	Query    string   `arg:"" help:"Query text"`
	Config   string   `name:"config" type:"existingfile" help:"Query configuration file (YAML or JSON)" optional:""`
	TopK     uint     `name:"top-k" help:"Maximum number of results" optional:""`
	FileType []string `name:"file-type" help:"Only match media of these file types, for example PDF" optional:""`
}

type DescribeCorpusCommand struct{}

type DeleteMediaCommand struct {
	Names []string `arg:"" name:"name" help:"Names of the media files to delete"`
}

type DeleteCorpusCommand struct {
	Force bool `name:"force" help:"Delete without confirmation"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *CreateCorpusCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.KnowledgeHub()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "CreateCorpusCommand",
		attribute.String("embedding_model", cmd.EmbeddingModel),
	)
	defer func() { endSpan(err) }()

	reply, err := client.CreateCorpus(parent, schema.CorpusConfig{EmbeddingModel: cmd.EmbeddingModel})
	if err != nil {
		return err
	}
	return ctx.printReply(reply)
}

func (cmd *AddMediaCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.KnowledgeHub()
	if err != nil {
		return err
	}
	files, err := media.Open(cmd.Files...)
	if err != nil {
		return err
	}
	defer files.Close()

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "AddMediaCommand",
		attribute.StringSlice("files", files.Names()),
	)
	defer func() { endSpan(err) }()

	// Upload in parallel
	var mu sync.Mutex
	wg, child := errgroup.WithContext(parent)
	wg.SetLimit(max(cmd.Parallel, 1))
	for _, file := range files {
		wg.Go(func() error {
			if _, err := client.AddMedia(child, file.Name, file.Body); err != nil {
				return fmt.Errorf("%s: %w", file.Name, err)
			}
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(os.Stderr, "Added %s\n", file.Name)
			return nil
		})
	}
	return wg.Wait()
}

func (cmd *QueryMediaCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.KnowledgeHub()
	if err != nil {
		return err
	}

	// Configuration from file, then flags
	var config schema.QueryConfig
	if err := loadConfig(cmd.Config, &config); err != nil {
		return err
	}
	if cmd.TopK > 0 {
		config.TopK = cmd.TopK
	}
	if len(cmd.FileType) > 0 {
		if config.Filters == nil {
			config.Filters = schema.Filters{}
		}
		config.Filters["file_type"] = schema.In(cmd.FileType...)
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "QueryMediaCommand",
		attribute.String("request", config.String()),
	)
	defer func() { endSpan(err) }()

	reply, err := client.QueryMedia(parent, cmd.Query, config)
	if err != nil {
		return err
	}
	return ctx.printJSON(reply)
}

func (cmd *DescribeCorpusCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.KnowledgeHub()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "DescribeCorpusCommand")
	defer func() { endSpan(err) }()

	description, err := client.DescribeCorpus(parent)
	if err != nil {
		return err
	}
	fmt.Println(description)
	return nil
}

func (cmd *DeleteMediaCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.KnowledgeHub()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "DeleteMediaCommand",
		attribute.StringSlice("names", cmd.Names),
	)
	defer func() { endSpan(err) }()

	reply, err := client.DeleteMedia(parent, cmd.Names...)
	if err != nil {
		return err
	}
	return ctx.printReply(reply)
}

func (cmd *DeleteCorpusCommand) Run(ctx *Globals) (err error) {
	if !cmd.Force {
		return fmt.Errorf("deleting the corpus removes all media: use --force to confirm")
	}
	client, err := ctx.KnowledgeHub()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "DeleteCorpusCommand")
	defer func() { endSpan(err) }()

	reply, err := client.DeleteCorpus(parent)
	if err != nil {
		return err
	}
	return ctx.printReply(reply)
}
