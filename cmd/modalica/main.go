package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	invoker "github.com/mutablelogic/go-modalica/pkg/invoker"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
	version "github.com/mutablelogic/go-modalica/pkg/version"
	otelapi "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool   `name:"debug" help:"Enable debug logging and trace HTTP requests"`
	Verbose bool   `name:"verbose" help:"Trace HTTP request and response bodies"`
	LogFile string `name:"log-file" env:"MODALICA_LOG_FILE" help:"Also write logs to a rotated file" type:"path" optional:""`

	// Modalica
	Modalica `embed:"" help:"Modalica API configuration"`

	// Output
	Style string `name:"style" enum:"dark,light,notty" default:"dark" help:"Markdown style for terminal output"`

	// Context
	ctx      context.Context
	log      *zap.SugaredLogger
	tracer   trace.Tracer
	defaults *Defaults
	term     *Term
}

type Modalica struct {
	APIKey   string        `name:"api-key" env:"MODALICA_API_KEY" help:"Modalica API key"`
	Endpoint string        `name:"endpoint" env:"MODALICA_ENDPOINT" help:"Modalica API endpoint" default:"${endpoint}"`
	Timeout  time.Duration `name:"timeout" env:"MODALICA_TIMEOUT" help:"Timeout for each request" default:"2m"`
}

type CLI struct {
	Globals

	// Model hub
	Text  TextCommand  `cmd:"" help:"Generate text from a prompt." group:"MODEL HUB"`
	Chat  ChatCommand  `cmd:"" help:"Chat, continuing the current session." group:"MODEL HUB"`
	Code  CodeCommand  `cmd:"" help:"Generate code from a prompt." group:"MODEL HUB"`
	Image ImageCommand `cmd:"" help:"Generate images from a prompt." group:"MODEL HUB"`

	// Sessions
	SessionCommands

	// Knowledge hub
	Corpus CorpusCommands `cmd:"" help:"Manage the media corpus." group:"KNOWLEDGE HUB"`

	// Media processor
	Process ProcessCommands `cmd:"" help:"Chunk and embed media." group:"MEDIA PROCESSOR"`

	// Other
	Defaults DefaultsCommand `cmd:"" help:"Show or set the default models."`
	Version  VersionCommand  `cmd:"" help:"Print version information."`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Environment from .env files
	if err := loadEnv(execName()); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Modalica command line interface"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"endpoint":        invoker.DefaultEndpoint,
			"embedding_model": schema.DefaultEmbeddingModel,
			"max_chunk_size":  fmt.Sprint(schema.DefaultMaxChunkSize),
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Create a logger
	log, err := NewLogger(cli.Debug, cli.LogFile)
	cmd.FatalIfErrorf(err)
	defer log.Sync()
	cli.Globals.log = log

	// Tracer from the global provider, which is a no-op unless one is registered
	cli.Globals.tracer = otelapi.Tracer(execName(), trace.WithInstrumentationVersion(version.Version()))

	// Defaults
	defaults, err := NewDefaults(defaultsPath(execName()))
	cmd.FatalIfErrorf(err)
	cli.Globals.defaults = defaults

	// Create a terminal
	term, err := NewTerm(os.Stdout, cli.Style)
	cmd.FatalIfErrorf(err)
	cli.Globals.term = term

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		log.Debugw("command failed", "command", cmd.Command(), "error", err)
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
