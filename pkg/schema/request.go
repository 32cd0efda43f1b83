package schema

import (
	// Packages
	gomultipart "github.com/mutablelogic/go-client/pkg/multipart"
)

////////////////////////////////////////////////////////////////////////////////
// MODEL HUB

// GenerateTextRequest is the body of model_hub/generate_text
type GenerateTextRequest struct {
	Prompt     string      `json:"prompt"`
	LLMConfigs ModelConfig `json:"llm_configs"`
}

// GenerateChatRequest is the body of model_hub/generate_chat
type GenerateChatRequest struct {
	Prompt           string          `json:"prompt"`
	MessageHistory   []Turn          `json:"message_history"`
	ChatModelConfigs ChatModelConfig `json:"chat_model_configs"`
}

// GenerateCodeRequest is the body of model_hub/generate_code
type GenerateCodeRequest struct {
	Prompt           string      `json:"prompt"`
	CodeModelConfigs ModelConfig `json:"code_model_configs"`
}

// GenerateImageRequest is the body of model_hub/generate_image
type GenerateImageRequest struct {
	Prompt            string           `json:"prompt"`
	ImageModelConfigs ImageModelConfig `json:"image_model_configs"`
}

////////////////////////////////////////////////////////////////////////////////
// KNOWLEDGE HUB

// CreateCorpusRequest is the multipart body of knowledge_hub/create_corpus.
// Configs holds the JSON-encoded CorpusConfig.
type CreateCorpusRequest struct {
	Configs string `json:"configs"`
}

// AddMediaRequest is the multipart body of knowledge_hub/add_media
type AddMediaRequest struct {
	File gomultipart.File `json:"listOfFiles"`
}

// DeleteMediaRequest is the form body of knowledge_hub/delete_media. Each
// name is sent as a repeated listOfFiles field.
type DeleteMediaRequest struct {
	Files []string `json:"listOfFiles"`
}

// QueryMediaRequest is the body of knowledge_hub/query_media
type QueryMediaRequest struct {
	Query   string      `json:"query"`
	Configs QueryConfig `json:"configs"`
}

////////////////////////////////////////////////////////////////////////////////
// MEDIA PROCESSOR

// ProcessMediaRequest is the multipart body of the media_processor file
// endpoints. Configs holds the JSON-encoded ChunkConfig or EmbedConfig.
type ProcessMediaRequest struct {
	Configs string           `json:"configs"`
	File    gomultipart.File `json:"listOfFiles"`
}

// EmbedSnippetsRequest is the body of media_processor/embed_text_snippets
type EmbedSnippetsRequest struct {
	Configs  EmbedConfig `json:"configs"`
	Snippets []string    `json:"snippets"`
}
