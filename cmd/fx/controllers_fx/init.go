package controllers_fx

import (
	"go.uber.org/fx"

	"tripplanner/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewBookingController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewPaymentController),
)
