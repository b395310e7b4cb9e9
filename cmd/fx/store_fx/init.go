package store_fx

import (
	"context"

	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(provideStore),
	fx.Provide(repositories.NewTripRepository),
	fx.Provide(repositories.NewRideRepository),
	fx.Provide(repositories.NewBookingRepository),
)

func provideStore(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (infra.DocumentStore, error) {
	store, err := infra.NewDocumentStore(context.Background(), cfg.Store)
	if err != nil {
		return nil, err
	}
	log.WithField("backend", cfg.Store.Backend).Info("Document store ready")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}
