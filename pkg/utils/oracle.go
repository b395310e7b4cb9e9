package utils

import "context"

// PromptExample is one prior user/model exchange used to steer the output
// format.
type PromptExample struct {
	User  string
	Model string
}

type GenerationRequest struct {
	Prompt          string
	Examples        []PromptExample
	JSONOutput      bool
	// set when the JSON payload is a top-level array
	JSONArray       bool
	MaxOutputTokens int
}

// TextOracle is a text-in, text-out generative model. Returned text may be
// fenced, wrapped in prose, or malformed; callers normalize it.
type TextOracle interface {
	Generate(ctx context.Context, req *GenerationRequest) (string, error)
	Close() error
}

type SamplingConfig struct {
	Model           string
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}
