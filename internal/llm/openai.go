// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/article-engine/pkg/types"
)

// OpenAIBackend implements Backend and ImageBackend on the official openai-go
// SDK (chat completions and the images API).
type OpenAIBackend struct {
	model       string
	temperature float64
	opts        []option.RequestOption
}

// NewOpenAIBackend builds a backend from cfg. The API key is required; the
// base URL is optional and supports compatible endpoints.
func NewOpenAIBackend(cfg types.AIConfig) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide ai.api_key or .secrets/openai-api-key")
	}
	if cfg.Model == "" {
		return nil, errors.New("ai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIBackend{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		opts:        opts,
	}, nil
}

// Generate issues one chat completion with prompt as the system message.
func (o *OpenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt),
		},
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage requests one 1024x1024 HD image and returns its hosted URL.
func (o *OpenAIBackend) GenerateImage(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:   openai.ImageModelDallE3,
		Prompt:  prompt,
		Size:    openai.ImageGenerateParamsSize1024x1024,
		Quality: openai.ImageGenerateParamsQualityHD,
		N:       openai.Int(1),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", errors.New("openai: empty image data")
	}
	return resp.Data[0].URL, nil
}
