package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"tripplanner/internal/itinerary"
	"tripplanner/internal/pricing"
)

func TestFormatNumberWithCommas(t *testing.T) {
	cases := map[float64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		127500:   "127,500",
		1234567:  "1,234,567",
		-42500.4: "-42,500",
	}
	for in, want := range cases {
		if got := FormatNumberWithCommas(in); got != want {
			t.Fatalf("FormatNumberWithCommas(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: name is required", ErrInvalidInput), http.StatusBadRequest},
		{pricing.ErrInvalidDateRange, http.StatusBadRequest},
		{fmt.Errorf("parse: %w", itinerary.ErrMalformedJSON), http.StatusBadGateway},
		{ErrTripNotFound, http.StatusNotFound},
		{ErrRequestInFlight, http.StatusConflict},
		{ErrRideOptionExpired, http.StatusGone},
		{ErrPaymentNotCompleted, http.StatusPaymentRequired},
		{fmt.Errorf("%w: timeout", ErrDatabaseError), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if code, _ := StatusFor(tc.err); code != tc.code {
			t.Fatalf("StatusFor(%v) = %d, want %d", tc.err, code, tc.code)
		}
	}
	if _, msg := StatusFor(fmt.Errorf("%w: email is required", ErrInvalidInput)); msg != "invalid input: email is required" {
		t.Fatalf("validation message = %q", msg)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, exp, err := issuer.CreateToken("sara@example.com", "Sara")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry %v is not in the future", exp)
	}
	claims, err := issuer.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "sara@example.com" || claims.Name != "Sara" {
		t.Fatalf("claims = %+v", claims)
	}
	if _, err := NewTokenIssuer("other-secret", time.Hour).ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestToday(t *testing.T) {
	d := Today(Location("Asia/Karachi"))
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Fatalf("Today = %v, want UTC midnight", d)
	}
}
