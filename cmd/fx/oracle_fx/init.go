package oracle_fx

import (
	"context"

	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/utils"
)

var Module = fx.Provide(provideOracle)

func provideOracle(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (utils.TextOracle, error) {
	oc := cfg.Oracle
	sampling := utils.SamplingConfig{
		Temperature:     float32(oc.Temperature),
		TopP:            float32(oc.TopP),
		TopK:            int32(oc.TopK),
		MaxOutputTokens: int32(oc.MaxOutputTokens),
	}

	var oracle utils.TextOracle
	switch oc.Provider {
	case "openai":
		sampling.Model = oc.OpenAIModel
		oracle = utils.NewOpenAIOracle(oc.OpenAIAPIKey, sampling)
	default:
		sampling.Model = oc.GeminiModel
		g, err := utils.NewGeminiOracle(context.Background(), oc.GeminiAPIKey, sampling)
		if err != nil {
			return nil, err
		}
		oracle = g
	}
	log.WithFields(map[string]interface{}{"provider": oc.Provider, "model": sampling.Model}).Info("Text oracle ready")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return oracle.Close()
		},
	})
	return oracle, nil
}
