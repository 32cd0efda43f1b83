package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ModelConfig holds the parameters for text and code generation
type ModelConfig struct {
	ModelName   string   `json:"model_name,omitempty" yaml:"model_name"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature"`
	MaxTokens   *uint    `json:"max_tokens,omitempty" yaml:"max_tokens"`
}

// ChatModelConfig holds the parameters for a chat turn. A non-empty System
// replaces the system instruction of a conversation session.
type ChatModelConfig struct {
	ModelConfig `yaml:",inline"`
	System      string `json:"system,omitempty" yaml:"system"`
}

// ImageModelConfig holds the parameters for image generation
type ImageModelConfig struct {
	ModelName      string `json:"model_name,omitempty" yaml:"model_name"`
	Size           string `json:"size,omitempty" yaml:"size"`
	NumberOfImages uint   `json:"number_of_images,omitempty" yaml:"number_of_images"`
}

// CorpusConfig holds the parameters for creating a corpus
type CorpusConfig struct {
	EmbeddingModel string `json:"embedding_model" yaml:"embedding_model"`
}

// QueryConfig holds the parameters for querying a corpus. Filters are
// forwarded verbatim, for example {"file_type": {"$in": ["PDF", "TXT"]}}
type QueryConfig struct {
	TopK    uint    `json:"top_k,omitempty" yaml:"top_k"`
	Filters Filters `json:"filters,omitempty" yaml:"filters"`
}

// Filters on media metadata, keyed by field name
type Filters map[string]any

// ChunkConfig holds the parameters for chunking and embedding documents
type ChunkConfig struct {
	MaxChunkSize uint `json:"max_chunk_size" yaml:"max_chunk_size"`
}

// EmbedConfig holds the parameters for embedding snippets and images
type EmbedConfig struct {
	EmbeddingModel string `json:"embedding_model" yaml:"embedding_model"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewModelConfig returns a model configuration for the named model
func NewModelConfig(model string, temperature float64, maxTokens uint) ModelConfig {
	return ModelConfig{
		ModelName:   model,
		Temperature: types.Ptr(temperature),
		MaxTokens:   types.Ptr(maxTokens),
	}
}

// In returns a filter condition matching any of the values
func In(values ...string) map[string]any {
	if values == nil {
		values = []string{}
	}
	return map[string]any{"$in": values}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithDefaults returns the corpus configuration with the default embedding
// model set if none was given
func (c CorpusConfig) WithDefaults() CorpusConfig {
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = DefaultEmbeddingModel
	}
	return c
}

// WithDefaults returns the chunk configuration with the default chunk
// size set if none was given
func (c ChunkConfig) WithDefaults() ChunkConfig {
	if c.MaxChunkSize == 0 {
		c.MaxChunkSize = DefaultMaxChunkSize
	}
	return c
}

// WithDefaults returns the embedding configuration with the default
// embedding model set if none was given
func (c EmbedConfig) WithDefaults() EmbedConfig {
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = DefaultEmbeddingModel
	}
	return c
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c ModelConfig) String() string {
	return types.Stringify(c)
}

func (c ChatModelConfig) String() string {
	return types.Stringify(c)
}

func (c ImageModelConfig) String() string {
	return types.Stringify(c)
}

func (c QueryConfig) String() string {
	return types.Stringify(c)
}
