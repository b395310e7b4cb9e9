package pricing

import (
	"errors"
	"time"
)

var ErrInvalidDateRange = errors.New("check-out must be after check-in")

const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

type HotelQuote struct {
	CheckIn       string  `json:"checkIn"`
	CheckOut      string  `json:"checkOut"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	TotalPrice    float64 `json:"totalPrice"`
}

type RideQuote struct {
	Fare       float64 `json:"fare"`
	TotalPrice float64 `json:"totalPrice"`
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Nights counts calendar days between two YYYY-MM-DD dates. Both dates are
// taken as UTC midnight, so the difference is always a whole number of days.
func Nights(checkIn, checkOut string) (int, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return 0, ErrInvalidDateRange
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return 0, ErrInvalidDateRange
	}
	// Unix seconds, not time.Sub: a Duration saturates after about 292 years.
	nights := int((out.Unix() - in.Unix()) / secondsPerDay)
	if nights <= 0 {
		return 0, ErrInvalidDateRange
	}
	return nights, nil
}

func QuoteHotel(checkIn, checkOut string, pricePerNight float64) (HotelQuote, error) {
	if !IsValidAmount(pricePerNight) {
		return HotelQuote{}, ErrUnparseablePrice
	}
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return HotelQuote{}, err
	}
	total := float64(nights) * pricePerNight
	if !IsValidAmount(total) {
		return HotelQuote{}, ErrUnparseablePrice
	}
	return HotelQuote{
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		PricePerNight: pricePerNight,
		TotalPrice:    total,
	}, nil
}

func QuoteRide(fare float64) (RideQuote, error) {
	if !IsValidAmount(fare) {
		return RideQuote{}, ErrUnparseablePrice
	}
	return RideQuote{Fare: fare, TotalPrice: fare}, nil
}
