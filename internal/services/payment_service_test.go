package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tripplanner/internal/models/request_models"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/utils"
)

func TestConvertPKRToUSDCents(t *testing.T) {
	cents, usd, err := ConvertPKRToUSDCents(127500, 291)
	if err != nil || cents != 43814 || usd != 438.14 {
		t.Fatalf("ConvertPKRToUSDCents = %d, %v, %v", cents, usd, err)
	}
	for _, v := range []float64{0, -10, 1} {
		if _, _, err := ConvertPKRToUSDCents(v, 291); !errors.Is(err, utils.ErrInvalidInput) {
			t.Fatalf("ConvertPKRToUSDCents(%v) err = %v", v, err)
		}
	}
}

func TestCreateHotelCheckoutRequiresFields(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewPaymentService(provider, PaymentConfig{SuccessURL: "https://app.test/success?ref=mail"}, logger.NewNop())
	ctx := context.Background()

	_, err := svc.CreateHotelCheckout(ctx, request_models.CreateCheckoutSessionRequest{TripID: "1", CheckIn: "2026-11-01"})
	if !errors.Is(err, utils.ErrInvalidInput) || !strings.Contains(err.Error(), "missing required field: checkOut") {
		t.Fatalf("err = %v", err)
	}

	sess, err := svc.CreateHotelCheckout(ctx, request_models.CreateCheckoutSessionRequest{
		TripID: "1730000000000", CheckIn: "2026-11-01", CheckOut: "2026-11-04", Guests: 2,
		Name: "Sara Khan", Email: "sara@example.com", TotalPrice: 127500,
	})
	if err != nil {
		t.Fatalf("CreateHotelCheckout: %v", err)
	}
	if sess.AmountUSD != 438.14 {
		t.Fatalf("amount = %v", sess.AmountUSD)
	}
	req := provider.created[0]
	if req.ProductName != "Booking for Hotel ID: 1730000000000" || req.Description != "Stay from 2026-11-01 to 2026-11-04 - 2 guests" {
		t.Fatalf("line item = %q / %q", req.ProductName, req.Description)
	}
	if req.SuccessURL != "https://app.test/success?ref=mail&session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("success url = %q", req.SuccessURL)
	}
	if req.Metadata["totalPricePKR"] != "127500" || req.Metadata["totalPriceUSD"] != "438.14" {
		t.Fatalf("metadata = %v", req.Metadata)
	}
}

func TestCreateRideCheckoutNames(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewPaymentService(provider, PaymentConfig{}, logger.NewNop())
	req := request_models.CreateRideCheckoutSessionRequest{
		RideID: "r1", RideOptionID: "o1", PickupTime: "2026-11-01T09:30", Passengers: 3,
		Name: "Ali", Email: "ali@example.com", TotalPrice: 2910,
	}
	if _, err := svc.CreateRideCheckout(context.Background(), req); err != nil {
		t.Fatalf("CreateRideCheckout: %v", err)
	}
	if got := provider.created[0]; got.ProductName != "Ride Booking: o1" || got.UnitAmount != 1000 {
		t.Fatalf("request = %+v", got)
	}
}

func TestVerifyPaid(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewPaymentService(provider, PaymentConfig{}, logger.NewNop())
	if err := svc.VerifyPaid(context.Background(), "cs_1"); !errors.Is(err, utils.ErrPaymentNotCompleted) {
		t.Fatalf("err = %v", err)
	}
	provider.markPaid("cs_1")
	if err := svc.VerifyPaid(context.Background(), "cs_1"); err != nil {
		t.Fatalf("paid session: %v", err)
	}
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc := NewPaymentService(&fakeProvider{}, PaymentConfig{WebhookSecret: "whsec_test"}, logger.NewNop())
	if err := svc.HandleWebhook([]byte(`{"type":"checkout.session.completed"}`), "t=1,v1=bad"); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("err = %v", err)
	}
}
