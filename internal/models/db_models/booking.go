package db_models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type HotelBooking struct {
	ID               string      `json:"id" firestore:"id"`
	TripID           string      `json:"tripId" firestore:"tripId"`
	HotelIndex       int         `json:"hotelIndex" firestore:"hotelIndex"`
	HotelName        string      `json:"hotelName" firestore:"hotelName"`
	HotelAddress     string      `json:"hotelAddress" firestore:"hotelAddress"`
	CheckIn          string      `json:"checkIn" firestore:"checkIn"`
	CheckOut         string      `json:"checkOut" firestore:"checkOut"`
	Nights           int         `json:"nights" firestore:"nights"`
	Guests           int         `json:"guests" firestore:"guests"`
	PricePerNight    float64     `json:"pricePerNight" firestore:"pricePerNight"`
	TotalPrice       float64     `json:"totalPrice" firestore:"totalPrice"`
	Contact          ContactInfo `json:"contact" firestore:"contact"`
	PaymentSessionID string      `json:"paymentSessionId" firestore:"paymentSessionId"`
	OwnerEmail       string      `json:"ownerEmail" firestore:"ownerEmail"`
	CreatedAt        time.Time   `json:"createdAt" firestore:"createdAt"`
}

type Vehicle string

const (
	VehicleAny    Vehicle = "any"
	VehicleSedan  Vehicle = "sedan"
	VehicleSUV    Vehicle = "suv"
	VehicleVan    Vehicle = "van"
	VehicleLuxury Vehicle = "luxury"
)

var vehicleCapacity = map[Vehicle]int{
	VehicleSedan:  4,
	VehicleSUV:    7,
	VehicleVan:    12,
	VehicleLuxury: 4,
}

func ParseVehicle(s string) (Vehicle, bool) {
	v := Vehicle(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return VehicleAny, true
	}
	if v == VehicleAny {
		return v, true
	}
	_, ok := vehicleCapacity[v]
	return v, ok
}

// Capacity is the passenger limit for a vehicle type. Unknown types and "any"
// fall back to a sedan's limit.
func (v Vehicle) Capacity() int {
	if c, ok := vehicleCapacity[Vehicle(strings.ToLower(string(v)))]; ok {
		return c
	}
	return vehicleCapacity[VehicleSedan]
}

// MaxCapacity is the largest vehicle on offer.
func MaxCapacity() int {
	return vehicleCapacity[VehicleVan]
}

// RideBudget is a positive PKR amount or the unlimited sentinel.
type RideBudget struct {
	Amount    float64 `json:"-" firestore:"amount"`
	Unlimited bool    `json:"-" firestore:"unlimited"`
}

func UnlimitedBudget() RideBudget { return RideBudget{Unlimited: true} }

// Spend is the amount counted towards dashboard totals.
func (b RideBudget) Spend() float64 {
	if b.Unlimited {
		return 0
	}
	return b.Amount
}

func (b RideBudget) String() string {
	if b.Unlimited {
		return "unlimited"
	}
	return strconv.FormatFloat(b.Amount, 'f', -1, 64)
}

func (b RideBudget) MarshalJSON() ([]byte, error) {
	if b.Unlimited {
		return []byte(`"unlimited"`), nil
	}
	return json.Marshal(b.Amount)
}

func (b *RideBudget) UnmarshalJSON(data []byte) error {
	if string(data) == `"unlimited"` || string(data) == "null" {
		*b = UnlimitedBudget()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*b = RideBudget{Amount: f}
	return nil
}

type RideSearchSession struct {
	ID               string     `json:"id" firestore:"id"`
	Departure        string     `json:"departure" firestore:"departure"`
	Destination      string     `json:"destination" firestore:"destination"`
	NumberOfPeople   int        `json:"numberOfPeople" firestore:"numberOfPeople"`
	Budget           RideBudget `json:"budget" firestore:"budget"`
	PreferredVehicle Vehicle    `json:"preferredVehicle" firestore:"preferredVehicle"`
	TripID           string     `json:"tripId,omitempty" firestore:"tripId,omitempty"`
	OwnerEmail       string     `json:"ownerEmail" firestore:"ownerEmail"`
	Timestamp        time.Time  `json:"timestamp" firestore:"timestamp"`
}

type RideOption struct {
	RideOptionID         string   `json:"rideOptionId"`
	RideID               string   `json:"rideId"`
	Company              string   `json:"company"`
	VehicleType          string   `json:"vehicleType"`
	VehicleModel         string   `json:"vehicleModel"`
	CostText             string   `json:"cost"`
	Fare                 *float64 `json:"fare,omitempty"`
	Duration             string   `json:"duration"`
	Distance             string   `json:"distance"`
	EstimatedArrivalTime string   `json:"estimatedArrivalTime"`
	Amenities            []string `json:"amenities"`
}

type RideBooking struct {
	ID               string      `json:"id" firestore:"id"`
	RideID           string      `json:"rideId" firestore:"rideId"`
	RideOptionID     string      `json:"rideOptionId" firestore:"rideOptionId"`
	Company          string      `json:"company" firestore:"company"`
	VehicleType      string      `json:"vehicleType" firestore:"vehicleType"`
	VehicleModel     string      `json:"vehicleModel" firestore:"vehicleModel"`
	Departure        string      `json:"departure" firestore:"departure"`
	Destination      string      `json:"destination" firestore:"destination"`
	PickupTime       string      `json:"pickupTime" firestore:"pickupTime"`
	Passengers       int         `json:"passengers" firestore:"passengers"`
	TotalPrice       float64     `json:"totalPrice" firestore:"totalPrice"`
	Contact          ContactInfo `json:"contact" firestore:"contact"`
	PaymentSessionID string      `json:"paymentSessionId" firestore:"paymentSessionId"`
	OwnerEmail       string      `json:"ownerEmail" firestore:"ownerEmail"`
	CreatedAt        time.Time   `json:"createdAt" firestore:"createdAt"`
}
