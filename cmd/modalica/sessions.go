package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type SessionCommands struct {
	ListSessions  ListSessionsCommand  `cmd:"" name:"sessions" help:"List stored chat sessions." group:"SESSION"`
	GetSession    GetSessionCommand    `cmd:"" name:"session" help:"Show a chat session." group:"SESSION"`
	DeleteSession DeleteSessionCommand `cmd:"" name:"delete-session" help:"Delete a stored chat session." group:"SESSION"`
}

type ListSessionsCommand struct {
	Limit  *uint `name:"limit" help:"Maximum number of sessions to return" optional:""`
	Offset uint  `name:"offset" help:"Offset for pagination" default:"0"`
}

type GetSessionCommand struct {
	ID string `arg:"" name:"id" help:"Session ID (defaults to the current session)" optional:""`
}

type DeleteSessionCommand struct {
	ID string `arg:"" name:"id" help:"Session ID"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListSessionsCommand) Run(ctx *Globals) (err error) {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListSessionsCommand")
	defer func() { endSpan(err) }()

	resp, err := store.List(parent, schema.ListTranscriptRequest{Limit: cmd.Limit, Offset: cmd.Offset})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if ctx.Debug {
		fmt.Println(resp)
		return nil
	}

	current := ctx.defaults.GetString(keySession)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODEL\tTURNS\tMODIFIED")
	for _, t := range resp.Body {
		id := t.ID
		if id == current {
			id = "* " + id
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", id, t.Name, t.Model, len(t.Turns)-1, t.Modified.Format(time.DateTime))
	}
	w.Flush()
	fmt.Fprintln(os.Stderr, TableSummary(len(resp.Body), int(resp.Offset), int(resp.Count)))

	return nil
}

func (cmd *GetSessionCommand) Run(ctx *Globals) (err error) {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	id := cmd.ID
	if id == "" {
		id = ctx.defaults.GetString(keySession)
	}
	if id == "" {
		return fmt.Errorf("no current session")
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "GetSessionCommand")
	defer func() { endSpan(err) }()

	t, err := store.Get(parent, id)
	if err != nil {
		return fmt.Errorf("session %q: %w", id, err)
	}

	fmt.Printf("ID:       %s\n", t.ID)
	fmt.Printf("Name:     %s\n", t.Name)
	fmt.Printf("Model:    %s\n", t.Model)
	fmt.Printf("Created:  %s\n", t.Created.Format(time.RFC3339))
	fmt.Printf("Modified: %s\n", t.Modified.Format(time.RFC3339))
	if len(t.Turns) > 0 && t.Turns[0].Content != "" {
		fmt.Printf("System:   %s\n", t.Turns[0].Content)
	}
	if len(t.Turns) > 1 {
		fmt.Println()
		for i, turn := range t.Turns[1:] {
			fmt.Printf("[%d] %s: %s\n", i+1, ctx.term.Bold(string(turn.Role)), turn.Content)
		}
	}
	return nil
}

func (cmd *DeleteSessionCommand) Run(ctx *Globals) (err error) {
	store, err := ctx.Store()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "DeleteSessionCommand")
	defer func() { endSpan(err) }()

	if err := store.Delete(parent, cmd.ID); err != nil {
		return fmt.Errorf("session %q: %w", cmd.ID, err)
	}
	if ctx.defaults.GetString(keySession) == cmd.ID {
		if err := ctx.defaults.Set(keySession, nil); err != nil {
			return err
		}
	}
	fmt.Fprintf(os.Stderr, "Deleted session %s\n", cmd.ID)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// TableSummary returns a human-readable summary of the rows displayed.
// length is the number of rows shown, offset is the starting row index (0-based),
// and total is the total number of matching rows.
func TableSummary(length, offset, total int) string {
	if total == 0 {
		return "No results"
	}
	if offset == 0 && length >= total {
		return fmt.Sprintf("All %d rows displayed", total)
	}
	return fmt.Sprintf("Displaying rows %d-%d of %d", offset+1, offset+length, total)
}
