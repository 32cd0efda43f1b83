package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	media "github.com/mutablelogic/go-modalica/pkg/media"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type TextCommand struct {
	Prompt string `arg:"" help:"Prompt text"`
	ModelFlags
}

type CodeCommand struct {
	Prompt string `arg:"" help:"Description of the code to generate"`
	ModelFlags
}

type ImageCommand struct {
	Prompt string `arg:"" help:"Description of the image to generate"`
	Config string `name:"config" type:"existingfile" help:"Image model configuration file (YAML or JSON)" optional:""`
	Model  string `name:"model" help:"Image model name" optional:""`
	Size   string `name:"size" help:"Image size, for example 1024x1024" optional:""`
	Count  uint   `name:"count" help:"Number of images to generate" optional:""`
	Out    string `name:"out" help:"Write images to this path; with more than one image, a number is added before the extension" type:"path" optional:""`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *TextCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.ModelHub()
	if err != nil {
		return err
	}
	config, err := cmd.ModelConfig(ctx.defaults, keyTextModel)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "TextCommand",
		attribute.String("request", types.Stringify(config)),
	)
	defer func() { endSpan(err) }()

	reply, err := client.GenerateText(parent, cmd.Prompt, config)
	if err != nil {
		return err
	}
	return ctx.printReply(reply)
}

func (cmd *CodeCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.ModelHub()
	if err != nil {
		return err
	}
	config, err := cmd.ModelConfig(ctx.defaults, keyCodeModel)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "CodeCommand",
		attribute.String("request", types.Stringify(config)),
	)
	defer func() { endSpan(err) }()

	reply, err := client.GenerateCode(parent, cmd.Prompt, config)
	if err != nil {
		return err
	}
	return ctx.printReply(reply)
}

func (cmd *ImageCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.ModelHub()
	if err != nil {
		return err
	}

	// Configuration from file, then flags
	var config schema.ImageModelConfig
	if err := loadConfig(cmd.Config, &config); err != nil {
		return err
	}
	if cmd.Model != "" {
		config.ModelName = cmd.Model
	} else if config.ModelName == "" {
		config.ModelName = ctx.defaults.GetString(keyImageModel)
	}
	if cmd.Size != "" {
		config.Size = cmd.Size
	}
	if cmd.Count > 0 {
		config.NumberOfImages = cmd.Count
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ImageCommand",
		attribute.String("request", config.String()),
	)
	defer func() { endSpan(err) }()

	reply, err := client.GenerateImage(parent, cmd.Prompt, config)
	if err != nil {
		return err
	}
	images := reply.Images()
	if len(images) == 0 {
		return fmt.Errorf("no images in reply")
	}

	// Without an output path, report the images
	if cmd.Out == "" {
		for i, image := range images {
			if cfg, format, err := media.DecodeConfig(image); err != nil {
				fmt.Printf("[%d] %v\n", i+1, err)
			} else {
				fmt.Printf("[%d] %s %dx%d\n", i+1, format, cfg.Width, cfg.Height)
			}
		}
		return nil
	}

	// Write the images
	for i, image := range images {
		path := imagePath(cmd.Out, i, len(images))
		format, err := media.SaveImage(image, path)
		if err != nil {
			return fmt.Errorf("image %d: %w", i+1, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s image to %s\n", format, path)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// printReply writes the reply text, or the raw reply when debugging
func (g *Globals) printReply(reply *schema.Reply) error {
	if g.Debug {
		return g.term.Println(reply.String())
	}
	return g.term.Markdown(reply.Text())
}

// printJSON writes the reply body, indented when it is JSON
func (g *Globals) printJSON(reply *schema.Reply) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, reply.Body, "", "  "); err != nil {
		return g.term.Println(reply.String())
	}
	return g.term.Println(buf.String())
}

// imagePath returns the output path for image i of n
func imagePath(path string, i, n int) string {
	if n == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}
