package config_fx

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/utils"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
	provideLocation,
	provideTokenIssuer,
)

func provideLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	utils.UseLogger(log)
	return log, nil
}

func provideLocation(cfg *config.Config) *time.Location {
	return utils.Location(cfg.App.Timezone)
}

// Outside production a missing secret gets a per-process one, so tokens do
// not survive a restart.
func provideTokenIssuer(cfg *config.Config, log *logger.Logger) *utils.TokenIssuer {
	secret := cfg.Security.JWTSecret
	if secret == "" {
		log.Warn("JWT_SECRET not set, using a random per-process secret")
		secret = uuid.NewString()
	}
	return utils.NewTokenIssuer(secret, cfg.Security.JWTTokenTTL)
}
