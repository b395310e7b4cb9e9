package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIOracle struct {
	client   *openai.Client
	sampling SamplingConfig
}

func NewOpenAIOracle(apiKey string, sampling SamplingConfig) *OpenAIOracle {
	if sampling.Model == "" {
		sampling.Model = openai.GPT4oMini
	}
	return &OpenAIOracle{client: openai.NewClient(apiKey), sampling: sampling}
}

func (o *OpenAIOracle) Generate(ctx context.Context, req *GenerationRequest) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, 2*len(req.Examples)+1)
	for _, ex := range req.Examples {
		msgs = append(msgs,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: ex.User},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: ex.Model},
		)
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	creq := openai.ChatCompletionRequest{
		Model:       o.sampling.Model,
		Messages:    msgs,
		Temperature: o.sampling.Temperature,
		TopP:        o.sampling.TopP,
		MaxTokens:   int(o.sampling.MaxOutputTokens),
	}
	if req.MaxOutputTokens > 0 {
		creq.MaxTokens = req.MaxOutputTokens
	}
	// json_object mode only admits a top-level object.
	if req.JSONOutput && !req.JSONArray {
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	resp, err := o.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIOracle) Close() error { return nil }
