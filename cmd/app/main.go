package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"tripplanner/cmd/fx/cache_fx"
	"tripplanner/cmd/fx/config_fx"
	"tripplanner/cmd/fx/controllers_fx"
	"tripplanner/cmd/fx/mail_fx"
	"tripplanner/cmd/fx/oracle_fx"
	"tripplanner/cmd/fx/payment_fx"
	"tripplanner/cmd/fx/places_fx"
	"tripplanner/cmd/fx/services_fx"
	"tripplanner/cmd/fx/store_fx"
	"tripplanner/internal/api/controllers"
	"tripplanner/internal/config"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/middleware"
	"tripplanner/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		store_fx.Module,
		cache_fx.Module,
		oracle_fx.Module,
		places_fx.Module,
		payment_fx.Module,
		mail_fx.Module,
		services_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *logger.Logger) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: middleware.CORS(cfg.Security.CORSAllowedOrigins, engine),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infof("Starting HTTP server at %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.WithError(err).Fatal("Failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			ctx, cancel := context.WithTimeout(ctx, cfg.App.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

type Controllers struct {
	fx.In

	Account   *controllers.AccountController
	Trips     *controllers.TripController
	Bookings  *controllers.BookingController
	Dashboard *controllers.DashboardController
	Payments  *controllers.PaymentController
}

func ProvideRouter(cfg *config.Config, tokens *utils.TokenIssuer, ctrl Controllers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.MetricsMiddleware())

	limiter := middleware.NewRateLimiter(cfg.Security.RateLimitPerMinute, cfg.Security.RateLimitBurst)
	RegisterRoutes(r, middleware.JWTAuthMiddleware(tokens), limiter.Limit(), ctrl)

	return r
}

func RegisterRoutes(r *gin.Engine, auth, limit gin.HandlerFunc, ctrl Controllers) {
	r.GET("/healthz", func(c *gin.Context) { utils.RespondSuccess(c, nil, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/auth")
	authGroup.POST("/google", ctrl.Account.GoogleLogin)
	authGroup.GET("/me", auth, ctrl.Account.Me)

	tripsGroup := r.Group("/trips", auth)
	tripsGroup.POST("", limit, ctrl.Trips.GenerateTrip)
	tripsGroup.GET("", ctrl.Trips.ListTrips)
	tripsGroup.GET("/:tripId", ctrl.Trips.GetTrip)
	tripsGroup.POST("/:tripId/chat", limit, ctrl.Trips.Chat)
	tripsGroup.GET("/:tripId/hotels/:index/quote", ctrl.Trips.QuoteHotel)

	bookingsGroup := r.Group("/bookings", auth)
	bookingsGroup.POST("/hotels/checkout", ctrl.Bookings.HotelCheckout)
	bookingsGroup.POST("/hotels/confirm", ctrl.Bookings.HotelConfirm)
	bookingsGroup.GET("/hotels/:bookingId/voucher", ctrl.Bookings.HotelVoucher)

	ridesGroup := r.Group("/rides", auth)
	ridesGroup.POST("/search", limit, ctrl.Bookings.RideSearch)
	ridesGroup.POST("/checkout", ctrl.Bookings.RideCheckout)
	ridesGroup.POST("/confirm", ctrl.Bookings.RideConfirm)

	r.GET("/dashboard/stats", auth, ctrl.Dashboard.GetStats)

	// Public payment endpoints kept for the existing frontend.
	apiGroup := r.Group("/api")
	apiGroup.POST("/create-checkout-session/", ctrl.Payments.CreateCheckoutSession)
	apiGroup.POST("/create-ride-checkout-session/", ctrl.Payments.CreateRideCheckoutSession)
	apiGroup.POST("/stripe/webhook", ctrl.Payments.StripeWebhook)
}
