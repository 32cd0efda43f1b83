package modalica

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrNotFound
	ErrBadParameter
	ErrNotImplemented
	ErrInternalServerError
	ErrRemote
	ErrNetwork
	ErrHTTPStatus
	ErrMalformedResponse
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Errors
type Err int

// Kind of failure reported by the remote invoker
type Kind int

// RemoteError is returned for every failed remote call. It satisfies
// errors.Is for ErrRemote and for the sentinel matching its kind.
type RemoteError struct {
	Kind     Kind   // Network, HTTPStatus or MalformedResponse
	Endpoint string // Endpoint path, e.g. "model_hub/generate_chat"
	Status   int    // HTTP status code, for HTTPStatus failures
	Body     string // Response body or server message, for HTTPStatus failures
	Err      error  // Underlying error
}

const (
	KindNetwork Kind = iota
	KindHTTPStatus
	KindMalformedResponse
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrNotFound:
		return "not found"
	case ErrBadParameter:
		return "bad parameter"
	case ErrNotImplemented:
		return "not implemented"
	case ErrInternalServerError:
		return "internal server error"
	case ErrRemote:
		return "remote error"
	case ErrNetwork:
		return "network error"
	case ErrHTTPStatus:
		return "unexpected http status"
	case ErrMalformedResponse:
		return "malformed response"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http status"
	case KindMalformedResponse:
		return "malformed response"
	}
	return fmt.Sprintf("kind %d", int(k))
}

////////////////////////////////////////////////////////////////////////////////
// REMOTE ERROR

// NewNetworkError wraps a transport-level failure
func NewNetworkError(endpoint string, err error) *RemoteError {
	return &RemoteError{Kind: KindNetwork, Endpoint: endpoint, Err: err}
}

// NewHTTPStatusError wraps a non-2xx response
func NewHTTPStatusError(endpoint string, status int, body string, err error) *RemoteError {
	return &RemoteError{Kind: KindHTTPStatus, Endpoint: endpoint, Status: status, Body: body, Err: err}
}

// NewMalformedResponseError wraps a body which could not be decoded
func NewMalformedResponseError(endpoint string, err error) *RemoteError {
	return &RemoteError{Kind: KindMalformedResponse, Endpoint: endpoint, Err: err}
}

func (e *RemoteError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		if e.Body != "" {
			return fmt.Sprintf("%s: %s: status %d: %s", e.Endpoint, e.sentinel(), e.Status, e.Body)
		}
		return fmt.Sprintf("%s: %s: status %d", e.Endpoint, e.sentinel(), e.Status)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.sentinel(), e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Endpoint, e.sentinel())
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is matches ErrRemote and the sentinel for the kind of failure
func (e *RemoteError) Is(target error) bool {
	var code Err
	if !errors.As(target, &code) {
		return false
	}
	return code == ErrRemote || code == e.sentinel()
}

// StatusCode returns the HTTP status for err, or zero if err is not an
// HTTP status failure
func StatusCode(err error) int {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Kind == KindHTTPStatus {
		return remote.Status
	}
	return 0
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (e *RemoteError) sentinel() Err {
	switch e.Kind {
	case KindNetwork:
		return ErrNetwork
	case KindHTTPStatus:
		return ErrHTTPStatus
	case KindMalformedResponse:
		return ErrMalformedResponse
	}
	return ErrRemote
}
