package services

import (
	"bytes"
	"strings"
	"testing"

	"tripplanner/internal/models/db_models"
)

func TestVoucherQRPayloadIsSigned(t *testing.T) {
	v := NewVoucherService("TripPlanner", "secret").(*VoucherService)
	got := v.QRPayload("hotel", "b1")
	if !strings.HasPrefix(got, "hotel|b1|") {
		t.Fatalf("payload = %q", got)
	}
	if got != v.QRPayload("hotel", "b1") {
		t.Fatal("payload is not deterministic")
	}
	other := NewVoucherService("TripPlanner", "other").(*VoucherService)
	if other.QRPayload("hotel", "b1") == got {
		t.Fatal("signature does not depend on the secret")
	}
}

func TestVoucherRendersPDF(t *testing.T) {
	v := NewVoucherService("TripPlanner", "secret")
	hotel, err := v.HotelVoucher(&db_models.HotelBooking{
		ID: "b1", HotelName: "Pearl Continental", CheckIn: "2026-11-01", CheckOut: "2026-11-04",
		Nights: 3, Guests: 2, PricePerNight: 42500, TotalPrice: 127500,
		Contact: db_models.ContactInfo{Name: "Sara", Email: "sara@example.com"},
	})
	if err != nil {
		t.Fatalf("HotelVoucher: %v", err)
	}
	if !bytes.HasPrefix(hotel, []byte("%PDF-")) {
		t.Fatalf("hotel voucher is not a PDF: %q", hotel[:min(len(hotel), 16)])
	}

	ride, err := v.RideVoucher(&db_models.RideBooking{ID: "r1", Company: "Careem", Passengers: 2, TotalPrice: 1500})
	if err != nil {
		t.Fatalf("RideVoucher: %v", err)
	}
	if !bytes.HasPrefix(ride, []byte("%PDF-")) {
		t.Fatal("ride voucher is not a PDF")
	}
}
