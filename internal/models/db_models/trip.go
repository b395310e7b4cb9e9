package db_models

import (
	"strings"
	"time"
)

type BudgetTier string

const (
	BudgetCheap    BudgetTier = "Cheap"
	BudgetModerate BudgetTier = "Moderate"
	BudgetLuxury   BudgetTier = "Luxury"
)

// ParseBudgetTier matches case-insensitively. ok is false for anything else.
func ParseBudgetTier(s string) (BudgetTier, bool) {
	for _, t := range []BudgetTier{BudgetCheap, BudgetModerate, BudgetLuxury} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// ParseCompanion returns the canonical companion label.
func ParseCompanion(s string) (string, bool) {
	for _, c := range Companions {
		if strings.EqualFold(strings.TrimSpace(s), c.Title) {
			return c.Title, true
		}
	}
	return "", false
}

type Companion struct {
	Title     string
	MinPeople int
	MaxPeople int
}

var Companions = []Companion{
	{Title: "just Me", MinPeople: 1, MaxPeople: 1},
	{Title: "A Couple", MinPeople: 2, MaxPeople: 2},
	{Title: "Family", MinPeople: 3, MaxPeople: 5},
	{Title: "Friends", MinPeople: 5, MaxPeople: 10},
}

// TripPlan is one generated itinerary. It is written once and never edited.
type TripPlan struct {
	ID             string        `json:"id" firestore:"id"`
	TripName       string        `json:"tripName" firestore:"tripName"`
	Destination    string        `json:"destination" firestore:"destination"`
	DurationDays   int           `json:"durationDays" firestore:"durationDays"`
	BudgetTier     BudgetTier    `json:"budgetTier" firestore:"budgetTier"`
	CompanionType  string        `json:"companionType" firestore:"companionType"`
	NumberOfPeople int           `json:"numberOfPeople" firestore:"numberOfPeople"`
	StartDate      string        `json:"startDate,omitempty" firestore:"startDate,omitempty"`
	HotelOptions   []HotelOption `json:"hotelOptions" firestore:"hotelOptions"`
	Itinerary      []DayPlan     `json:"itinerary" firestore:"itinerary"`
	OwnerEmail     string        `json:"ownerEmail" firestore:"ownerEmail"`
	CreatedAt      time.Time     `json:"createdAt" firestore:"createdAt"`
}

// Day returns the plan for day n, or nil.
func (t *TripPlan) Day(n int) *DayPlan {
	for i := range t.Itinerary {
		if t.Itinerary[i].Day == n {
			return &t.Itinerary[i]
		}
	}
	return nil
}

func (t *TripPlan) Hotel(index int) (*HotelOption, bool) {
	if index < 0 || index >= len(t.HotelOptions) {
		return nil, false
	}
	return &t.HotelOptions[index], true
}

type HotelOption struct {
	Name           string          `json:"hotelName" firestore:"hotelName"`
	Address        string          `json:"hotelAddress" firestore:"hotelAddress"`
	PriceRangeText string          `json:"price" firestore:"price"`
	NightlyRate    *float64        `json:"nightlyRate,omitempty" firestore:"nightlyRate,omitempty"`
	ImageURL       string          `json:"hotelImageUrl" firestore:"hotelImageUrl"`
	Geo            *GeoCoordinates `json:"geoCoordinates,omitempty" firestore:"geoCoordinates,omitempty"`
	Rating         Rating          `json:"rating" firestore:"rating"`
	Description    string          `json:"description" firestore:"description"`
}

type DayPlan struct {
	Day             int        `json:"day" firestore:"day"`
	Theme           string     `json:"theme" firestore:"theme"`
	BestTimeToVisit string     `json:"bestTimeToVisit" firestore:"bestTimeToVisit"`
	Activities      []Activity `json:"activities" firestore:"activities"`
}

type Activity struct {
	PlaceName       string          `json:"placeName" firestore:"placeName"`
	PlaceDetails    string          `json:"placeDetails" firestore:"placeDetails"`
	ImageURL        string          `json:"placeImageUrl" firestore:"placeImageUrl"`
	Geo             *GeoCoordinates `json:"geoCoordinates,omitempty" firestore:"geoCoordinates,omitempty"`
	TicketPricing   string          `json:"ticketPricing" firestore:"ticketPricing"`
	Rating          Rating          `json:"rating" firestore:"rating"`
	TravelTime      string          `json:"travelTimeFromHotel" firestore:"travelTimeFromHotel"`
	BestTimeToVisit string          `json:"bestTimeToVisit" firestore:"bestTimeToVisit"`
	MapsURL         string          `json:"mapsUrl" firestore:"mapsUrl"`
}
