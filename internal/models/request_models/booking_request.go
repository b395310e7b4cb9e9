package request_models

import (
	"encoding/json"
	"strconv"
	"strings"
)

type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type HotelCheckoutRequest struct {
	TripID     string `json:"tripId" binding:"required"`
	HotelIndex int    `json:"hotelIndex"`
	CheckIn    string `json:"checkIn" binding:"required"`
	CheckOut   string `json:"checkOut" binding:"required"`
	// 0 means the trip's party size
	Guests  int            `json:"guests"`
	Contact ContactRequest `json:"contact"`
}

// ConfirmRequest finalizes the caller's staged draft once the payment
// provider redirects back with the session id.
type ConfirmRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

type RideSearchRequest struct {
	Departure        string     `json:"departure"`
	Destination      string     `json:"destination"`
	NumberOfPeople   int        `json:"numberOfPeople"`
	Budget           FlexString `json:"budget"`
	PreferredVehicle string     `json:"preferredVehicle"`
	TripID           string     `json:"tripId"`
}

type RideCheckoutRequest struct {
	RideID       string         `json:"rideId" binding:"required"`
	RideOptionID string         `json:"rideOptionId" binding:"required"`
	PickupTime   string         `json:"pickupTime" binding:"required"`
	Passengers   int            `json:"passengers"`
	Contact      ContactRequest `json:"contact"`
}

// FlexString accepts a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}
