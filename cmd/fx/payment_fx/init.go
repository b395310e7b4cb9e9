package payment_fx

import (
	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/internal/services"
	"tripplanner/pkg/logger"
)

var Module = fx.Provide(providePaymentService)

func providePaymentService(cfg *config.Config, log *logger.Logger) services.PaymentServiceInterface {
	pc := cfg.Payment
	if pc.StripeSecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set, checkout sessions will fail")
	}
	return services.NewPaymentService(services.NewStripeProvider(pc.StripeSecretKey), services.PaymentConfig{
		SecretKey:      pc.StripeSecretKey,
		WebhookSecret:  pc.StripeWebhookSecret,
		SuccessURL:     pc.SuccessURL,
		CancelURL:      pc.CancelURL,
		RideSuccessURL: pc.RideSuccessURL,
		RideCancelURL:  pc.RideCancelURL,
		PKRPerUSD:      pc.PKRPerUSD,
	}, log)
}
