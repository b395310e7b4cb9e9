package response_models

import "tripplanner/internal/pricing"

type TripChatResponse struct {
	TripID string `json:"tripId"`
	Reply  string `json:"reply"`
}

type HotelQuoteResponse struct {
	TripID     string             `json:"tripId"`
	HotelIndex int                `json:"hotelIndex"`
	HotelName  string             `json:"hotelName"`
	Guests     int                `json:"guests"`
	Quote      pricing.HotelQuote `json:"quote"`
	TotalText  string             `json:"totalText"`
}
