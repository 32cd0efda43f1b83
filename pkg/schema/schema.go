/*
schema defines the wire types exchanged with the Modalica API: conversation
turns, model configurations, request bodies and replies.
*/
package schema

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Default embedding model for corpora and embeddings
	DefaultEmbeddingModel = "clip-vit-b-32"

	// Default maximum chunk size for text chunking and embedding
	DefaultMaxChunkSize = 1000

	// Maximum number of files accepted by a single upload
	MaxUploadFiles = 100
)
