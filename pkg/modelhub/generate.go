package modelhub

import (
	"context"

	// Packages
	schema "github.com/mutablelogic/go-modalica/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GenerateText returns text generated for a prompt
func (c *Client) GenerateText(ctx context.Context, prompt string, config schema.ModelConfig) (*schema.Reply, error) {
	return c.JSON(ctx, schema.GenerateTextRequest{
		Prompt:     prompt,
		LLMConfigs: config,
	}, hub, "generate_text")
}

// GenerateChat sends a prompt with an explicit message history. The history
// is forwarded verbatim and config.System is passed through as-is; no
// conversation state is kept.
func (c *Client) GenerateChat(ctx context.Context, prompt string, history []schema.Turn, config schema.ChatModelConfig) (*schema.Reply, error) {
	return c.JSON(ctx, schema.GenerateChatRequest{
		Prompt:           prompt,
		MessageHistory:   schema.CloneTurns(history),
		ChatModelConfigs: config,
	}, hub, "generate_chat")
}

// GenerateCode returns code generated for a prompt
func (c *Client) GenerateCode(ctx context.Context, prompt string, config schema.ModelConfig) (*schema.Reply, error) {
	return c.JSON(ctx, schema.GenerateCodeRequest{
		Prompt:           prompt,
		CodeModelConfigs: config,
	}, hub, "generate_code")
}

// GenerateImage returns one or more base64-encoded images for a prompt
func (c *Client) GenerateImage(ctx context.Context, prompt string, config schema.ImageModelConfig) (*schema.ImageReply, error) {
	reply, err := c.JSON(ctx, schema.GenerateImageRequest{
		Prompt:            prompt,
		ImageModelConfigs: config,
	}, hub, "generate_image")
	if err != nil {
		return nil, err
	}
	return &schema.ImageReply{Reply: *reply}, nil
}
