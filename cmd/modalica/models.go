package main

import (
	"fmt"
	"os"
	"text/tabwriter"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type DefaultsCommand struct {
	ChatModel  *string `name:"chat-model" help:"Default chat model" optional:""`
	TextModel  *string `name:"text-model" help:"Default text model" optional:""`
	CodeModel  *string `name:"code-model" help:"Default code model" optional:""`
	ImageModel *string `name:"image-model" help:"Default image model" optional:""`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

// Run sets any default models given, which an empty value removes, and
// prints the defaults
func (cmd *DefaultsCommand) Run(ctx *Globals) error {
	for key, value := range map[string]*string{
		keyChatModel:  cmd.ChatModel,
		keyTextModel:  cmd.TextModel,
		keyCodeModel:  cmd.CodeModel,
		keyImageModel: cmd.ImageModel,
	} {
		if value == nil {
			continue
		}
		if err := ctx.defaults.Set(key, *value); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, key := range []string{keyChatModel, keyTextModel, keyCodeModel, keyImageModel, keySession} {
		fmt.Fprintf(w, "%s\t%s\n", key, ctx.defaults.GetString(key))
	}
	return w.Flush()
}
