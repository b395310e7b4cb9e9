package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiOracle struct {
	client   *genai.Client
	sampling SamplingConfig
}

func NewGeminiOracle(ctx context.Context, apiKey string, sampling SamplingConfig) (*GeminiOracle, error) {
	if sampling.Model == "" {
		sampling.Model = "gemini-2.0-flash-exp"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiOracle{client: client, sampling: sampling}, nil
}

func (g *GeminiOracle) Generate(ctx context.Context, req *GenerationRequest) (string, error) {
	m := g.client.GenerativeModel(g.sampling.Model)
	m.SetTemperature(g.sampling.Temperature)
	m.SetTopP(g.sampling.TopP)
	m.SetTopK(g.sampling.TopK)
	maxTokens := g.sampling.MaxOutputTokens
	if req.MaxOutputTokens > 0 {
		maxTokens = int32(req.MaxOutputTokens)
	}
	if maxTokens > 0 {
		m.SetMaxOutputTokens(maxTokens)
	}
	if req.JSONOutput {
		m.ResponseMIMEType = "application/json"
	} else {
		m.ResponseMIMEType = "text/plain"
	}

	cs := m.StartChat()
	for _, ex := range req.Examples {
		cs.History = append(cs.History,
			&genai.Content{Role: "user", Parts: []genai.Part{genai.Text(ex.User)}},
			&genai.Content{Role: "model", Parts: []genai.Part{genai.Text(ex.Model)}},
		)
	}

	resp, err := cs.SendMessage(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: no content")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return b.String(), nil
}

func (g *GeminiOracle) Close() error {
	return g.client.Close()
}
