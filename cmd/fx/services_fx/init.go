package services_fx

import (
	"time"

	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/internal/itinerary"
	"tripplanner/internal/repositories"
	"tripplanner/internal/services"
	"tripplanner/internal/stats"
	"tripplanner/pkg/logger"
	mem "tripplanner/pkg/memcache"
	"tripplanner/pkg/places"
	"tripplanner/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideNormalizer),
	fx.Provide(provideAggregator),
	fx.Provide(services.NewTripService),
	fx.Provide(provideRideService),
	fx.Provide(provideBookingService),
	fx.Provide(services.NewDashboardService),
	fx.Provide(services.NewChatService),
	fx.Provide(provideAccountService),
)

func provideNormalizer(cfg *config.Config) *itinerary.Normalizer {
	return itinerary.NewNormalizer(itinerary.Options{
		MaxTripDays:    cfg.App.MaxTripDays,
		HotelFeeOffset: cfg.App.HotelFeeOffset,
	})
}

func provideAggregator(cfg *config.Config) *stats.Aggregator {
	return stats.NewAggregator(cfg.App.LuxurySurcharge)
}

func provideRideService(
	oracle utils.TextOracle,
	rideRepo repositories.RideRepositoryInterface,
	routes places.RouteEstimator,
	cache mem.DraftCache,
	cfg *config.Config,
	log *logger.Logger,
) services.RideServiceInterface {
	return services.NewRideService(oracle, rideRepo, routes, cache, cfg.App.RideOptionsTTL, log)
}

func provideBookingService(
	trips services.TripServiceInterface,
	rides services.RideServiceInterface,
	repo repositories.BookingRepositoryInterface,
	payments services.PaymentServiceInterface,
	drafts mem.DraftCache,
	vouchers services.VoucherServiceInterface,
	mailer services.IMailService,
	cfg *config.Config,
	loc *time.Location,
	log *logger.Logger,
) services.BookingServiceInterface {
	return services.NewBookingService(trips, rides, repo, payments, drafts, vouchers, mailer, services.BookingConfig{
		HotelFeeOffset: cfg.App.HotelFeeOffset,
		DraftTTL:       cfg.App.DraftTTL,
		AppBaseURL:     cfg.App.BaseURL,
		Location:       loc,
	}, log)
}

func provideAccountService(tokens *utils.TokenIssuer, log *logger.Logger) services.AccountServiceInterface {
	return services.NewAccountService(services.GoogleUserInfo{}, tokens, log)
}
