package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
	session "github.com/mutablelogic/go-modalica/pkg/session"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ChatCommand struct {
	Prompt  string `arg:"" help:"Prompt text; without a prompt, read prompts from standard input" optional:""`
	Session string `name:"session" help:"Session ID (overrides the current session)" optional:""`
	Name    string `name:"name" help:"Session name (used when creating a new session)" optional:""`
	System  string `name:"system" help:"System instruction, which persists for later turns" optional:""`
	New     bool   `name:"new" help:"Start a new session"`
	Reset   bool   `name:"reset" help:"Clear the system instruction and history of the session first"`
	History string `name:"history" type:"existingfile" help:"Send an explicit message history (YAML or JSON) without using a session" optional:""`
	ModelFlags
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	replPrompt = "> "
	cmdReset   = "/reset"
	cmdExit    = "/exit"
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ChatCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.ModelHub()
	if err != nil {
		return err
	}
	config, err := cmd.ChatModelConfig(ctx.defaults, cmd.System)
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ChatCommand",
		attribute.String("request", config.String()),
	)
	defer func() { endSpan(err) }()

	// Explicit history: one stateless call
	if cmd.History != "" {
		var history []schema.Turn
		if err := loadConfig(cmd.History, &history); err != nil {
			return err
		}
		reply, err := client.GenerateChat(parent, cmd.Prompt, history, config)
		if err != nil {
			return err
		}
		return ctx.printReply(reply)
	}

	// Load or create the session
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	id := cmd.Session
	if id == "" && !cmd.New {
		id = ctx.defaults.GetString(keySession)
	}
	var s *session.Session
	var transcript *schema.Transcript
	if id != "" {
		s, transcript, err = session.Load(parent, store, client, id)
		if err != nil && cmd.Session != "" {
			return fmt.Errorf("session %q: %w", id, err)
		} else if err != nil {
			ctx.log.Debugw("current session is not available", "session", id, "error", err)
		}
	}
	if s == nil {
		transcript, err = store.Create(parent, schema.TranscriptMeta{Name: cmd.Name, Model: config.ModelName})
		if err != nil {
			return fmt.Errorf("creating session: %w", err)
		}
		s = session.New(client)
	}
	if err := ctx.defaults.Set(keySession, transcript.ID); err != nil {
		return err
	}

	// Reset the session
	if cmd.Reset {
		s.Reset()
		if err := session.Save(store, transcript, s); err != nil {
			return err
		}
	}

	// One turn
	if cmd.Prompt != "" {
		return ctx.converse(parent, s, store, transcript, cmd.Prompt, config)
	}

	// Read prompts until end of input
	interactive := isTerminal(os.Stdin)
	loop := &repl{
		in:          os.Stdin,
		errs:        os.Stderr,
		interactive: interactive,
		prompt: func() {
			fmt.Print(ctx.term.Bold(replPrompt))
		},
		turn: func(prompt string, config schema.ChatModelConfig) error {
			return ctx.converse(parent, s, store, transcript, prompt, config)
		},
		reset: func() error {
			s.Reset()
			return session.Save(store, transcript, s)
		},
	}
	return loop.Run(parent, config)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// converse sends one turn and saves the transcript
func (g *Globals) converse(ctx context.Context, s *session.Session, store session.Store, transcript *schema.Transcript, prompt string, config schema.ChatModelConfig) error {
	reply, err := s.Converse(ctx, prompt, config)
	if err != nil {
		return err
	}
	if err := session.Save(store, transcript, s); err != nil {
		return err
	}
	return g.printReply(reply)
}

///////////////////////////////////////////////////////////////////////////////
// REPL

// repl reads prompts line by line and sends each as a chat turn
type repl struct {
	in          io.Reader
	errs        io.Writer
	interactive bool
	prompt      func()
	turn        func(prompt string, config schema.ChatModelConfig) error
	reset       func() error
}

// Run reads prompts until end of input or /exit. In interactive mode a
// failed turn is reported and the loop continues.
func (r *repl) Run(ctx context.Context, config schema.ChatModelConfig) error {
	scanner := bufio.NewScanner(r.in)
	for {
		if r.interactive && r.prompt != nil {
			r.prompt()
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		prompt := strings.TrimSpace(scanner.Text())
		switch prompt {
		case "":
			continue
		case cmdExit:
			return nil
		case cmdReset:
			if err := r.reset(); err != nil {
				return err
			}
			continue
		}
		if err := r.turn(prompt, config); err != nil {
			if !r.interactive || ctx.Err() != nil {
				return err
			}
			fmt.Fprintln(r.errs, err)
			continue
		}

		// The system instruction persists in the session once a turn succeeds
		config.System = ""
	}
}
