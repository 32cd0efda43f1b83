package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Term writes replies, rendering markdown when the output is a terminal
type Term struct {
	w        io.Writer
	tty      bool
	renderer *glamour.TermRenderer
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultWidth = 80
	maxWidth     = 120
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTerm returns a terminal writer for w. Markdown is rendered with the
// named glamour style only when w is a terminal and style is not "notty".
func NewTerm(w io.Writer, style string) (*Term, error) {
	t := &Term{w: w}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return t, nil
	}
	t.tty = true
	if style == "notty" {
		return t, nil
	}

	width := defaultWidth
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		width = min(w, maxWidth)
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return nil, err
	}
	t.renderer = renderer

	return t, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsTerminal returns true if output goes to a terminal
func (t *Term) IsTerminal() bool {
	return t.tty
}

// Markdown writes text, rendered as markdown when possible
func (t *Term) Markdown(text string) error {
	if t.renderer != nil {
		if rendered, err := t.renderer.Render(text); err == nil {
			_, err := fmt.Fprint(t.w, rendered)
			return err
		}
	}
	return t.Println(text)
}

// Println writes a line of plain text
func (t *Term) Println(text string) error {
	_, err := fmt.Fprintln(t.w, strings.TrimRight(text, "\n"))
	return err
}

// Bold returns text in bold when output goes to a terminal
func (t *Term) Bold(text string) string {
	if t.tty {
		return "\033[1m" + text + "\033[0m"
	}
	return text
}

// isTerminal returns true if f is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
