package invoker_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	modalica "github.com/mutablelogic/go-modalica"
	invoker "github.com/mutablelogic/go-modalica/pkg/invoker"
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// newTestServer echoes the API key, method, content type and decoded form
// values of each request, and fails requests to /fail with a 500
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/echo", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"key":    r.Header.Get(invoker.HeaderAPIKey),
			"method": r.Method,
			"type":   r.Header.Get("Content-Type"),
			"form":   r.PostForm,
		})
	})
	mux.HandleFunc("/v1/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/v1/invalid", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"bad prompt"}`, http.StatusUnprocessableEntity)
	})
	mux.HandleFunc("/v1/empty", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/v1/coded", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":403,"reason":"quota exceeded"}`))
	})
	mux.HandleFunc("/v1/text", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`not json`))
	})
	return httptest.NewServer(mux)
}

func newInvoker(t *testing.T, endpoint string) *invoker.Invoker {
	t.Helper()
	i, err := invoker.New("test-key", invoker.OptEndpoint(endpoint+"/v1"))
	if err != nil {
		t.Fatal(err)
	}
	return i
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

// Missing API key is rejected
func Test_invoker_001(t *testing.T) {
	assert := assert.New(t)
	_, err := invoker.New("")
	assert.ErrorIs(err, modalica.ErrBadParameter)
}

// Default endpoint
func Test_invoker_002(t *testing.T) {
	assert := assert.New(t)
	i, err := invoker.New("test-key")
	assert.NoError(err)
	assert.Equal(invoker.DefaultEndpoint, i.Endpoint())
	assert.Equal("https://api.modalica.ai/v1/model_hub/generate_chat", i.URL("model_hub", "generate_chat"))
}

// Empty endpoint option is rejected
func Test_invoker_003(t *testing.T) {
	assert := assert.New(t)
	_, err := invoker.New("test-key", invoker.OptEndpoint(""))
	assert.ErrorIs(err, modalica.ErrBadParameter)
}

// JSON request carries the API key
func Test_invoker_004(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	defer srv.Close()

	reply, err := newInvoker(t, srv.URL).JSON(context.Background(), map[string]string{"hello": "world"}, "echo")
	if !assert.NoError(err) {
		t.FailNow()
	}
	var echo struct {
		Key    string `json:"key"`
		Method string `json:"method"`
		Type   string `json:"type"`
	}
	assert.NoError(invoker.Decode(reply, &echo, "echo"))
	assert.Equal("test-key", echo.Key)
	assert.Equal(http.MethodPost, echo.Method)
	assert.Contains(echo.Type, "application/json")
	assert.Equal("application/json", reply.ContentType())
}

// Form request repeats keys
func Test_invoker_005(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	defer srv.Close()

	body := struct {
		Files []string `json:"listOfFiles"`
	}{Files: []string{"a.pdf", "b.png"}}
	reply, err := newInvoker(t, srv.URL).Form(context.Background(), body, "echo")
	if !assert.NoError(err) {
		t.FailNow()
	}
	var echo struct {
		Type string              `json:"type"`
		Form map[string][]string `json:"form"`
	}
	assert.NoError(invoker.Decode(reply, &echo))
	assert.Equal(types.ContentTypeForm, echo.Type)
	assert.Equal([]string{"a.pdf", "b.png"}, echo.Form["listOfFiles"])
}

// Empty request is a POST
func Test_invoker_006(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	defer srv.Close()

	reply, err := newInvoker(t, srv.URL).Post(context.Background(), "echo")
	if !assert.NoError(err) {
		t.FailNow()
	}
	var echo struct {
		Method string `json:"method"`
	}
	assert.NoError(invoker.Decode(reply, &echo))
	assert.Equal(http.MethodPost, echo.Method)
}

// Non-2xx status is an http status error
func Test_invoker_007(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	defer srv.Close()

	_, err := newInvoker(t, srv.URL).JSON(context.Background(), map[string]string{}, "fail")
	assert.Error(err)
	assert.ErrorIs(err, modalica.ErrRemote)
	assert.ErrorIs(err, modalica.ErrHTTPStatus)
	assert.NotErrorIs(err, modalica.ErrNetwork)
	assert.Equal(http.StatusInternalServerError, modalica.StatusCode(err))

	var remote *modalica.RemoteError
	if assert.True(errors.As(err, &remote)) {
		assert.Equal("fail", remote.Endpoint)
		assert.Equal(modalica.KindHTTPStatus, remote.Kind)
	}
}

// Unreachable server is a network error
func Test_invoker_008(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	i := newInvoker(t, srv.URL)
	srv.Close()

	_, err := i.JSON(context.Background(), map[string]string{}, "echo")
	assert.ErrorIs(err, modalica.ErrRemote)
	assert.ErrorIs(err, modalica.ErrNetwork)
	assert.Zero(modalica.StatusCode(err))
}

// Body which is not JSON is a malformed response when JSON is required
func Test_invoker_009(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	defer srv.Close()

	reply, err := newInvoker(t, srv.URL).JSON(context.Background(), map[string]string{}, "text")
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("not json", reply.Text())
	assert.ErrorIs(invoker.RequireJSON(reply, "text"), modalica.ErrMalformedResponse)
	var v map[string]any
	assert.ErrorIs(invoker.Decode(reply, &v, "text"), modalica.ErrMalformedResponse)
}

// Cancelled context is a network error
func Test_invoker_010(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newInvoker(t, srv.URL).JSON(ctx, map[string]string{}, "echo")
	assert.ErrorIs(err, modalica.ErrNetwork)
}

// Decode into a typed reply
func Test_invoker_011(t *testing.T) {
	assert := assert.New(t)
	reply := &schema.Reply{Body: []byte(`{"embedding_model":"clip-vit-b-32","count":2}`)}
	var desc schema.CorpusDescription
	assert.NoError(invoker.Decode(reply, &desc))
	assert.Equal("clip-vit-b-32", desc.EmbeddingModel)
	assert.Equal(float64(2), desc.Stats["count"])
}

// Status errors carry the response body
func Test_invoker_012(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	defer srv.Close()

	_, err := newInvoker(t, srv.URL).JSON(context.Background(), map[string]string{}, "invalid")
	var remote *modalica.RemoteError
	if assert.True(errors.As(err, &remote)) {
		assert.Equal(modalica.KindHTTPStatus, remote.Kind)
		assert.Equal(http.StatusUnprocessableEntity, remote.Status)
		assert.Equal(`{"detail":"bad prompt"}`, remote.Body)
	}
}

// Status errors without a body have an empty body
func Test_invoker_013(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	defer srv.Close()

	_, err := newInvoker(t, srv.URL).Post(context.Background(), "empty")
	var remote *modalica.RemoteError
	if assert.True(errors.As(err, &remote)) {
		assert.Equal(modalica.KindHTTPStatus, remote.Kind)
		assert.Equal(http.StatusServiceUnavailable, remote.Status)
		assert.Empty(remote.Body)
	}
}

// Structured error responses are status errors
func Test_invoker_014(t *testing.T) {
	assert := assert.New(t)
	srv := newTestServer(t)
	defer srv.Close()

	_, err := newInvoker(t, srv.URL).Post(context.Background(), "coded")
	assert.ErrorIs(err, modalica.ErrHTTPStatus)
	assert.NotErrorIs(err, modalica.ErrNetwork)
	assert.Equal(http.StatusForbidden, modalica.StatusCode(err))
	var remote *modalica.RemoteError
	if assert.True(errors.As(err, &remote)) {
		assert.Contains(remote.Body, "quota exceeded")
	}
}
