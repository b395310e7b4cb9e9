package request_models

// CreateCheckoutSessionRequest is the public hotel payment-session payload.
type CreateCheckoutSessionRequest struct {
	TripID     string  `json:"tripId"`
	CheckIn    string  `json:"checkIn"`
	CheckOut   string  `json:"checkOut"`
	Guests     int     `json:"guests"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	TotalPrice float64 `json:"totalPrice"`
}

func (r CreateCheckoutSessionRequest) MissingFields() []string {
	return missing(map[string]bool{
		"tripId":     r.TripID == "",
		"checkIn":    r.CheckIn == "",
		"checkOut":   r.CheckOut == "",
		"guests":     r.Guests == 0,
		"name":       r.Name == "",
		"email":      r.Email == "",
		"totalPrice": r.TotalPrice == 0,
	}, "tripId", "checkIn", "checkOut", "guests", "name", "email", "totalPrice")
}

// CreateRideCheckoutSessionRequest is the public ride payment-session payload.
type CreateRideCheckoutSessionRequest struct {
	RideID       string  `json:"rideId"`
	RideOptionID string  `json:"rideOptionId"`
	PickupTime   string  `json:"pickupTime"`
	Passengers   int     `json:"passengers"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Company      string  `json:"company"`
	VehicleType  string  `json:"vehicleType"`
	TotalPrice   float64 `json:"totalPrice"`
}

func (r CreateRideCheckoutSessionRequest) MissingFields() []string {
	return missing(map[string]bool{
		"rideId":       r.RideID == "",
		"rideOptionId": r.RideOptionID == "",
		"pickupTime":   r.PickupTime == "",
		"passengers":   r.Passengers == 0,
		"name":         r.Name == "",
		"email":        r.Email == "",
		"totalPrice":   r.TotalPrice == 0,
	}, "rideId", "rideOptionId", "pickupTime", "passengers", "name", "email", "totalPrice")
}

func missing(empty map[string]bool, order ...string) []string {
	var out []string
	for _, k := range order {
		if empty[k] {
			out = append(out, k)
		}
	}
	return out
}
