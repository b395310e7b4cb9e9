package places_fx

import (
	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/places"
)

var Module = fx.Provide(providePlaces)

type Out struct {
	fx.Out

	Photos places.PhotoFinder
	Routes places.RouteEstimator
}

// Without a Maps key trips keep their placeholder images and ride prompts
// carry no measured route.
func providePlaces(cfg *config.Config, log *logger.Logger) Out {
	if cfg.Maps.APIKey == "" {
		log.Warn("GOOGLE_MAPS_API_KEY not set, place photos and routes disabled")
		return Out{Photos: places.NoPhotos{}, Routes: places.NoRoutes{}}
	}
	g, err := places.NewGooglePlaces(cfg.Maps.APIKey, cfg.Maps.PhotoMaxWidth)
	if err != nil {
		log.WithError(err).Error("Google Maps client unavailable")
		return Out{Photos: places.NoPhotos{}, Routes: places.NoRoutes{}}
	}
	return Out{Photos: g, Routes: g}
}
