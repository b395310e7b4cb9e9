package mail_fx

import (
	"go.uber.org/fx"

	"tripplanner/internal/config"
	"tripplanner/internal/services"
	"tripplanner/pkg/logger"
)

var Module = fx.Provide(provideMailService, provideVoucherService)

func provideMailService(cfg *config.Config, log *logger.Logger) services.IMailService {
	if cfg.SMTP.Host == "" {
		log.Warn("SMTP_HOST not set, booking confirmations will not be mailed")
	}
	return services.NewSMTPMailService(services.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		UseSSL:   cfg.SMTP.UseSSL,
		AppName:  cfg.App.Name,
	})
}

func provideVoucherService(cfg *config.Config) services.VoucherServiceInterface {
	return services.NewVoucherService(cfg.App.Name, cfg.Security.JWTSecret)
}
