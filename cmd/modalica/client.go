package main

import (
	"os"
	"path/filepath"

	// Packages
	client "github.com/mutablelogic/go-client"
	invoker "github.com/mutablelogic/go-modalica/pkg/invoker"
	knowledgehub "github.com/mutablelogic/go-modalica/pkg/knowledgehub"
	mediaprocessor "github.com/mutablelogic/go-modalica/pkg/mediaprocessor"
	modelhub "github.com/mutablelogic/go-modalica/pkg/modelhub"
	session "github.com/mutablelogic/go-modalica/pkg/session"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	sessionsDir = "sessions"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Invoker returns an invoker configured from the global flags
func (g *Globals) Invoker() (*invoker.Invoker, error) {
	opts := []invoker.Opt{
		invoker.OptEndpoint(g.Endpoint),
		invoker.OptTimeout(g.Timeout),
		invoker.OptLogger(g.log),
		invoker.OptTracer(g.tracer),
	}
	if g.Debug || g.Verbose {
		opts = append(opts, invoker.OptClient(client.OptTrace(os.Stderr, g.Verbose)))
	}
	return invoker.New(g.APIKey, opts...)
}

// ModelHub returns a model hub client
func (g *Globals) ModelHub() (*modelhub.Client, error) {
	invoker, err := g.Invoker()
	if err != nil {
		return nil, err
	}
	return modelhub.NewWithInvoker(invoker), nil
}

// KnowledgeHub returns a knowledge hub client
func (g *Globals) KnowledgeHub() (*knowledgehub.Client, error) {
	invoker, err := g.Invoker()
	if err != nil {
		return nil, err
	}
	return knowledgehub.NewWithInvoker(invoker), nil
}

// MediaProcessor returns a media processor client
func (g *Globals) MediaProcessor() (*mediaprocessor.Client, error) {
	invoker, err := g.Invoker()
	if err != nil {
		return nil, err
	}
	return mediaprocessor.NewWithInvoker(invoker), nil
}

// Store returns the transcript store in the user cache directory
func (g *Globals) Store() (*session.FileStore, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(filepath.Join(dir, execName(), sessionsDir))
}
