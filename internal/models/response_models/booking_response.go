package response_models

import (
	"tripplanner/internal/models/db_models"
	"tripplanner/internal/pricing"
)

type RideWarning struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type RideSearchResponse struct {
	RideID  string                 `json:"rideId"`
	Options []db_models.RideOption `json:"options"`
	Warning *RideWarning           `json:"warning,omitempty"`
}

type CheckoutResponse struct {
	SessionID string  `json:"sessionId"`
	URL       string  `json:"url"`
	Total     float64 `json:"totalPrice"`
	AmountUSD float64 `json:"amountUsd"`

	HotelQuote *pricing.HotelQuote `json:"hotelQuote,omitempty"`
	RideQuote  *pricing.RideQuote  `json:"rideQuote,omitempty"`
}

type HotelBookingResponse struct {
	Booking    db_models.HotelBooking `json:"booking"`
	VoucherURL string                 `json:"voucherUrl"`
}

type RideBookingResponse struct {
	Booking db_models.RideBooking `json:"booking"`
}
