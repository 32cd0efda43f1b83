package schema

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Reply is the raw reply to a successful request. The body is kept as
// received so callers can decode any field the server echoes back.
type Reply struct {
	Header http.Header `json:"-"`
	Body   []byte      `json:"-"`
}

// ImageReply is the reply to an image generation request
type ImageReply struct {
	Reply
}

// CorpusDescription is the reply to knowledge_hub/describe_corpus
type CorpusDescription struct {
	EmbeddingModel string         `json:"embedding_model,omitempty"`
	Stats          map[string]any `json:"-"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	// Fields which carry reply text, in order of preference
	textFields = []string{"content", "text", "response", "result", "message"}

	// Fields which carry generated images, in order of preference
	imageFields = []string{"images", "image", "data", "b64_json", "content"}
)

////////////////////////////////////////////////////////////////////////////////
// UNMARSHALER

// Unmarshal reads the response body as-is
func (r *Reply) Unmarshal(header http.Header, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	r.Header = header.Clone()
	r.Body = data
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ContentType returns the media type of the body, without parameters
func (r *Reply) ContentType() string {
	if r.Header == nil {
		return ""
	}
	mimetype, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mimetype
}

// IsJSON returns true if the body is well-formed JSON
func (r *Reply) IsJSON() bool {
	return json.Valid(bytes.TrimSpace(r.Body))
}

// JSON decodes the body into v
func (r *Reply) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Text returns the reply text. This is the first string-valued field in
// content, text, response, result or message (which may also be an object
// with a content field), a JSON string, or otherwise the body itself.
func (r *Reply) Text() string {
	data := bytes.TrimSpace(r.Body)
	if len(data) == 0 {
		return ""
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err == nil {
			return text
		}
	case '{':
		if text, ok := textFrom(data, 0); ok {
			return text
		}
	}
	return string(r.Body)
}

// Images returns the base64-encoded images in the reply. The body may be a
// list of strings, an object with an images, image, data or b64_json field,
// a JSON string, or plain base64 text.
func (r *ImageReply) Images() []string {
	data := bytes.TrimSpace(r.Body)
	if len(data) == 0 {
		return nil
	}
	if !json.Valid(data) {
		return []string{string(data)}
	}
	return imagesFrom(data, 0)
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Reply) String() string {
	return string(r.Body)
}

func (d CorpusDescription) String() string {
	return stringifyMap(d.Stats)
}

////////////////////////////////////////////////////////////////////////////////
// CORPUS DESCRIPTION

// UnmarshalJSON decodes the embedding model and keeps every field as stats
func (d *CorpusDescription) UnmarshalJSON(data []byte) error {
	var stats map[string]any
	if err := json.Unmarshal(data, &stats); err != nil {
		return err
	}
	d.Stats = stats
	if model, ok := stats["embedding_model"].(string); ok {
		d.EmbeddingModel = model
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

const maxDepth = 4

func textFrom(data []byte, depth int) (string, bool) {
	if depth > maxDepth {
		return "", false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", false
	}
	for _, key := range textFields {
		raw, exists := fields[key]
		if !exists {
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return text, true
		}
		if raw = bytes.TrimSpace(raw); len(raw) > 0 && raw[0] == '{' {
			if text, ok := textFrom(raw, depth+1); ok {
				return text, true
			}
		}
	}
	return "", false
}

func imagesFrom(data []byte, depth int) []string {
	if depth > maxDepth || len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var image string
		if err := json.Unmarshal(data, &image); err == nil && image != "" {
			return []string{image}
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		var result []string
		for _, item := range items {
			result = append(result, imagesFrom(bytes.TrimSpace(item), depth+1)...)
		}
		return result
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil
		}
		for _, key := range imageFields {
			if raw, exists := fields[key]; exists {
				if images := imagesFrom(bytes.TrimSpace(raw), depth+1); len(images) > 0 {
					return images
				}
			}
		}
	}
	return nil
}

func stringifyMap(v map[string]any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}
	return strings.TrimSpace(string(data))
}
