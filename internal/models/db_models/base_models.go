package db_models

// Collection names shared by every store backend.
const (
	CollectionTrips         = "AITrips"
	CollectionRideSessions  = "ride-bookings"
	CollectionBookedRides   = "booked-rides"
	CollectionHotelBookings = "bookings"
)

type GeoCoordinates struct {
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
}

type ContactInfo struct {
	Name  string `json:"name" firestore:"name"`
	Email string `json:"email" firestore:"email"`
	Phone string `json:"phone" firestore:"phone"`
}
