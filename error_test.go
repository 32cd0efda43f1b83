package modalica_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	// Packages
	modalica "github.com/mutablelogic/go-modalica"
	assert "github.com/stretchr/testify/assert"
)

func Test_error_001(t *testing.T) {
	assert := assert.New(t)
	err := modalica.ErrBadParameter.With("missing API key")
	assert.ErrorIs(err, modalica.ErrBadParameter)
	assert.Equal("bad parameter: missing API key", err.Error())
	assert.Equal("not found: transcript \"x\"", modalica.ErrNotFound.Withf("transcript %q", "x").Error())
}

// Remote errors match their kind
func Test_error_002(t *testing.T) {
	assert := assert.New(t)
	cause := errors.New("connection refused")
	tests := []struct {
		err  *modalica.RemoteError
		kind error
	}{
		{modalica.NewNetworkError("model_hub/generate_chat", cause), modalica.ErrNetwork},
		{modalica.NewHTTPStatusError("model_hub/generate_chat", http.StatusBadGateway, "bad gateway", nil), modalica.ErrHTTPStatus},
		{modalica.NewMalformedResponseError("model_hub/generate_chat", cause), modalica.ErrMalformedResponse},
	}
	for _, test := range tests {
		wrapped := fmt.Errorf("converse: %w", test.err)
		assert.ErrorIs(wrapped, modalica.ErrRemote)
		assert.ErrorIs(wrapped, test.kind)
		assert.NotErrorIs(wrapped, modalica.ErrBadParameter)
		for _, other := range tests {
			if other.kind != test.kind {
				assert.NotErrorIs(wrapped, other.kind)
			}
		}
	}
}

// Error strings and status codes
func Test_error_003(t *testing.T) {
	assert := assert.New(t)
	err := modalica.NewHTTPStatusError("model_hub/generate_text", http.StatusNotFound, "no such model", nil)
	assert.Equal("model_hub/generate_text: unexpected http status: status 404: no such model", err.Error())
	assert.Equal(http.StatusNotFound, modalica.StatusCode(fmt.Errorf("wrapped: %w", err)))

	cause := errors.New("connection refused")
	network := modalica.NewNetworkError("model_hub/generate_text", cause)
	assert.Equal("model_hub/generate_text: network error: connection refused", network.Error())
	assert.ErrorIs(network, cause)
	assert.Zero(modalica.StatusCode(network))
	assert.Zero(modalica.StatusCode(errors.New("other")))
}
