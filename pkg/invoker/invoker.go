/*
invoker performs authenticated calls to the Modalica API. It attaches the
X-API-Key header to every request, encodes JSON, multipart and form
payloads, and reports every failure as a *modalica.RemoteError.
*/
package invoker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	modalica "github.com/mutablelogic/go-modalica"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
	version "github.com/mutablelogic/go-modalica/pkg/version"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Invoker calls endpoints of the Modalica API
type Invoker struct {
	*client.Client
	endpoint string
	tracer   trace.Tracer
	log      *zap.SugaredLogger
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultEndpoint = "https://api.modalica.ai/v1"
	HeaderAPIKey    = "X-API-Key"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates an invoker authenticated with the given API key
func New(apiKey string, opt ...Opt) (*Invoker, error) {
	if apiKey == "" {
		return nil, modalica.ErrBadParameter.With("missing API key")
	}

	// Apply options
	o := opts{endpoint: DefaultEndpoint}
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return nil, err
		}
	}
	if o.logger == nil {
		o.logger = zap.NewNop().Sugar()
	}

	// Create the client
	clientOpts := append([]client.ClientOpt{
		client.OptEndpoint(o.endpoint),
		client.OptHeader(HeaderAPIKey, apiKey),
		client.OptHeader("User-Agent", version.UserAgent()),
	}, o.clientOpts...)
	c, err := client.New(clientOpts...)
	if err != nil {
		return nil, err
	}

	// Return success
	return &Invoker{
		Client:   c,
		endpoint: o.endpoint,
		tracer:   o.tracer,
		log:      o.logger,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Endpoint returns the base URL of the API
func (i *Invoker) Endpoint() string {
	return i.endpoint
}

// URL returns the absolute URL for an endpoint path
func (i *Invoker) URL(path ...string) string {
	if u, err := url.JoinPath(i.endpoint, path...); err == nil {
		return u
	}
	return i.endpoint + "/" + strings.Join(path, "/")
}

// Logger returns the logger used for request diagnostics
func (i *Invoker) Logger() *zap.SugaredLogger {
	return i.log
}

// Invoke sends the payload to the endpoint at path and decodes the reply
// into out. Failures are returned as *modalica.RemoteError.
func (i *Invoker) Invoke(ctx context.Context, payload client.Payload, out any, path ...string) (err error) {
	endpoint := strings.Join(path, "/")

	// Otel span
	if i.tracer != nil {
		var endSpan func(error)
		ctx, endSpan = otel.StartSpan(i.tracer, ctx, "Invoke",
			attribute.String("endpoint", endpoint),
		)
		defer func() { endSpan(err) }()
	}

	// Request -> Response
	start := time.Now()
	if err = i.DoWithContext(ctx, payload, out, client.OptPath(segments(path)...)); err != nil {
		err = classify(endpoint, err)
	}

	// Log the call
	if err != nil {
		i.log.Debugw("invoke failed", "endpoint", endpoint, "elapsed", time.Since(start), "error", err)
	} else {
		i.log.Debugw("invoke", "endpoint", endpoint, "elapsed", time.Since(start))
	}

	return err
}

// JSON sends body encoded as JSON and returns the raw reply
func (i *Invoker) JSON(ctx context.Context, body any, path ...string) (*schema.Reply, error) {
	payload, err := client.NewJSONRequest(body)
	if err != nil {
		return nil, err
	}
	var reply schema.Reply
	if err := i.Invoke(ctx, payload, &reply, path...); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Multipart sends body encoded as multipart/form-data and returns the raw
// reply. Fields of type multipart.File are sent as file parts.
func (i *Invoker) Multipart(ctx context.Context, body any, path ...string) (*schema.Reply, error) {
	payload, err := client.NewStreamingMultipartRequest(body, client.ContentTypeJson)
	if err != nil {
		return nil, err
	}
	var reply schema.Reply
	if err := i.Invoke(ctx, payload, &reply, path...); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Form sends body encoded as application/x-www-form-urlencoded and returns
// the raw reply. Slice fields are sent as repeated keys.
func (i *Invoker) Form(ctx context.Context, body any, path ...string) (*schema.Reply, error) {
	payload, err := client.NewFormRequest(body, client.ContentTypeJson)
	if err != nil {
		return nil, err
	}
	var reply schema.Reply
	if err := i.Invoke(ctx, payload, &reply, path...); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Post sends a POST request with an empty body and returns the raw reply
func (i *Invoker) Post(ctx context.Context, path ...string) (*schema.Reply, error) {
	var reply schema.Reply
	if err := i.Invoke(ctx, client.NewRequestEx(http.MethodPost, client.ContentTypeJson), &reply, path...); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Decode decodes a reply body into v, returning a malformed response error
// if the body is not valid for v
func Decode(reply *schema.Reply, v any, path ...string) error {
	if err := reply.JSON(v); err != nil {
		return modalica.NewMalformedResponseError(strings.Join(path, "/"), err)
	}
	return nil
}

// RequireJSON returns a malformed response error if the reply body is not
// well-formed JSON
func RequireJSON(reply *schema.Reply, path ...string) error {
	if !reply.IsJSON() {
		return modalica.NewMalformedResponseError(strings.Join(path, "/"), errors.New("body is not JSON"))
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// classify maps an error from the HTTP client onto a remote error kind
func classify(endpoint string, err error) error {
	var remote *modalica.RemoteError
	var status httpresponse.Err
	var response httpresponse.ErrResponse
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &remote):
		return err
	case errors.As(err, &status):
		return modalica.NewHTTPStatusError(endpoint, int(status), statusBody(err, status), err)
	case errors.As(err, &response):
		data, _ := json.Marshal(response)
		return modalica.NewHTTPStatusError(endpoint, response.Code, string(data), err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		return modalica.NewMalformedResponseError(endpoint, err)
	default:
		return modalica.NewNetworkError(endpoint, err)
	}
}

// statusBody returns the response body attached to a status error. The
// message has the form "<text>: <code> <reason>: <body>", where the body
// part is missing when the response had no body.
func statusBody(err error, status httpresponse.Err) string {
	message, found := strings.CutPrefix(err.Error(), status.Error()+": ")
	if !found {
		return ""
	}
	message, found = strings.CutPrefix(message, strconv.Itoa(int(status))+" ")
	if !found {
		return ""
	}
	if _, body, found := strings.Cut(message, ": "); found {
		return strings.TrimSpace(body)
	}
	return ""
}

// segments converts path elements for client.OptPath
func segments(path []string) []any {
	result := make([]any, len(path))
	for i, elem := range path {
		result[i] = elem
	}
	return result
}
