package invoker

import (
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	modalica "github.com/mutablelogic/go-modalica"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring an invoker
type Opt func(*opts) error

type opts struct {
	endpoint   string
	clientOpts []client.ClientOpt
	tracer     trace.Tracer
	logger     *zap.SugaredLogger
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// OptEndpoint sets the base URL of the API, which defaults to
// https://api.modalica.ai/v1
func OptEndpoint(endpoint string) Opt {
	return func(o *opts) error {
		if endpoint == "" {
			return modalica.ErrBadParameter.With("endpoint is required")
		}
		o.endpoint = endpoint
		return nil
	}
}

// OptClient appends options for the underlying HTTP client
func OptClient(clientOpts ...client.ClientOpt) Opt {
	return func(o *opts) error {
		o.clientOpts = append(o.clientOpts, clientOpts...)
		return nil
	}
}

// OptTimeout sets the timeout for each request
func OptTimeout(timeout time.Duration) Opt {
	return func(o *opts) error {
		if timeout < 0 {
			return modalica.ErrBadParameter.Withf("invalid timeout %v", timeout)
		}
		if timeout > 0 {
			o.clientOpts = append(o.clientOpts, client.OptTimeout(timeout))
		}
		return nil
	}
}

// OptTracer sets the tracer used for request spans
func OptTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		if tracer != nil {
			o.tracer = tracer
			o.clientOpts = append(o.clientOpts, client.OptTracer(tracer))
		}
		return nil
	}
}

// OptLogger sets the logger for request diagnostics
func OptLogger(logger *zap.SugaredLogger) Opt {
	return func(o *opts) error {
		if logger == nil {
			return modalica.ErrBadParameter.With("logger is required")
		}
		o.logger = logger
		return nil
	}
}
