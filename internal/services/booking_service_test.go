package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/pricing"
	"tripplanner/pkg/utils"
)

func hotelCheckout(tripID string) request_models.HotelCheckoutRequest {
	return request_models.HotelCheckoutRequest{
		TripID:   tripID,
		CheckIn:  dateFromToday(10),
		CheckOut: dateFromToday(13),
		Contact:  request_models.ContactRequest{Phone: "+92 300 1234567"},
	}
}

func TestQuoteHotel(t *testing.T) {
	f := newFixture(t)
	trip := f.seedTrip(t)
	ctx := context.Background()

	q, err := f.bookings.QuoteHotel(ctx, sara, trip.ID, 0, "2025-06-01", "2025-06-04", 0)
	if err != nil {
		t.Fatalf("QuoteHotel: %v", err)
	}
	if q.Quote.Nights != 3 || q.Quote.PricePerNight != 42500 || q.Quote.TotalPrice != 127500 {
		t.Fatalf("quote = %+v", q.Quote)
	}
	if q.Guests != 2 || q.TotalText != "Rs. 127,500" {
		t.Fatalf("guests/total text = %d/%q", q.Guests, q.TotalText)
	}

	if _, err := f.bookings.QuoteHotel(ctx, sara, trip.ID, 1, "2025-06-01", "2025-06-04", 0); !errors.Is(err, pricing.ErrUnparseablePrice) {
		t.Fatalf("unpriced hotel: err = %v", err)
	}
	if _, err := f.bookings.QuoteHotel(ctx, sara, trip.ID, 0, "2025-06-04", "2025-06-04", 0); !errors.Is(err, pricing.ErrInvalidDateRange) {
		t.Fatalf("zero nights: err = %v", err)
	}
	if _, err := f.bookings.QuoteHotel(ctx, sara, trip.ID, 7, "2025-06-01", "2025-06-04", 0); !errors.Is(err, utils.ErrHotelNotFound) {
		t.Fatalf("bad index: err = %v", err)
	}
	if _, err := f.bookings.QuoteHotel(ctx, ali, trip.ID, 0, "2025-06-01", "2025-06-04", 0); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("other user: err = %v", err)
	}
}

func TestHotelCheckoutAndConfirm(t *testing.T) {
	f := newFixture(t)
	trip := f.seedTrip(t)
	ctx := context.Background()

	co, err := f.bookings.HotelCheckout(ctx, sara, hotelCheckout(trip.ID))
	if err != nil {
		t.Fatalf("HotelCheckout: %v", err)
	}
	if co.SessionID != "cs_test_1" || co.Total != 127500 || co.HotelQuote.Nights != 3 {
		t.Fatalf("checkout = %+v", co)
	}
	created := f.provider.created[0]
	if created.UnitAmount != 43814 || created.Metadata["tripId"] != trip.ID || created.CustomerEmail != sara.Email {
		t.Fatalf("payment request = %+v", created)
	}
	if !strings.Contains(created.SuccessURL, "session_id={CHECKOUT_SESSION_ID}") {
		t.Fatalf("success url = %q", created.SuccessURL)
	}

	if _, err := f.bookings.HotelConfirm(ctx, sara, request_models.ConfirmRequest{SessionID: "cs_test_1"}); !errors.Is(err, utils.ErrPaymentNotCompleted) {
		t.Fatalf("unpaid confirm: err = %v", err)
	}
	// the draft was consumed by the failed attempt
	f.provider.markPaid("cs_test_1")
	if _, err := f.bookings.HotelConfirm(ctx, sara, request_models.ConfirmRequest{SessionID: "cs_test_1"}); !errors.Is(err, utils.ErrDraftNotFound) {
		t.Fatalf("second confirm: err = %v", err)
	}

	co, err = f.bookings.HotelCheckout(ctx, sara, hotelCheckout(trip.ID))
	if err != nil {
		t.Fatalf("HotelCheckout again: %v", err)
	}
	f.provider.markPaid(co.SessionID)
	res, err := f.bookings.HotelConfirm(ctx, sara, request_models.ConfirmRequest{SessionID: co.SessionID})
	if err != nil {
		t.Fatalf("HotelConfirm: %v", err)
	}
	b := res.Booking
	if b.ID == "" || b.HotelName != "Pearl Continental" || b.TotalPrice != 127500 || b.Contact.Name != sara.Name || b.PaymentSessionID != co.SessionID {
		t.Fatalf("booking = %+v", b)
	}
	if res.VoucherURL != "/bookings/hotels/"+b.ID+"/voucher" {
		t.Fatalf("voucher url = %q", res.VoucherURL)
	}

	stored, _ := f.bookingRepo.ListHotelBookingsByOwner(ctx, sara.Email)
	if len(stored) != 1 {
		t.Fatalf("stored bookings = %d, want 1", len(stored))
	}
	if len(f.mailer.sent) != 1 || f.mailer.sent[0].to != sara.Email || len(f.mailer.sent[0].attachments) != 1 {
		t.Fatalf("mail = %+v", f.mailer.sent)
	}
	if f.mailer.sent[0].attachments[0].ContentType != "application/pdf" {
		t.Fatalf("attachment = %+v", f.mailer.sent[0].attachments[0])
	}

	pdf, err := f.bookings.HotelVoucher(ctx, sara, b.ID)
	if err != nil || string(pdf) != "%PDF hotel "+b.ID {
		t.Fatalf("HotelVoucher = %q, %v", pdf, err)
	}
	if _, err := f.bookings.HotelVoucher(ctx, ali, b.ID); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("other user voucher: err = %v", err)
	}
	if _, err := f.bookings.HotelVoucher(ctx, sara, "missing"); !errors.Is(err, utils.ErrBookingNotFound) {
		t.Fatalf("missing voucher: err = %v", err)
	}
}

func TestHotelConfirmRejectsForeignSession(t *testing.T) {
	f := newFixture(t)
	trip := f.seedTrip(t)
	ctx := context.Background()

	co, err := f.bookings.HotelCheckout(ctx, sara, hotelCheckout(trip.ID))
	if err != nil {
		t.Fatalf("HotelCheckout: %v", err)
	}
	f.provider.markPaid(co.SessionID)
	f.provider.markPaid("cs_someone_else")
	if _, err := f.bookings.HotelConfirm(ctx, sara, request_models.ConfirmRequest{SessionID: "cs_someone_else"}); !errors.Is(err, utils.ErrDraftNotFound) {
		t.Fatalf("err = %v, want ErrDraftNotFound", err)
	}
	if _, err := f.bookings.HotelConfirm(ctx, ali, request_models.ConfirmRequest{SessionID: co.SessionID}); !errors.Is(err, utils.ErrDraftNotFound) {
		t.Fatalf("other user: err = %v, want ErrDraftNotFound", err)
	}
}

func TestHotelCheckoutValidation(t *testing.T) {
	f := newFixture(t)
	trip := f.seedTrip(t)
	ctx := context.Background()

	past := hotelCheckout(trip.ID)
	past.CheckIn, past.CheckOut = dateFromToday(-2), dateFromToday(1)
	if _, err := f.bookings.HotelCheckout(ctx, sara, past); !errors.Is(err, utils.ErrDateInPast) {
		t.Fatalf("past check-in: err = %v", err)
	}
	badEmail := hotelCheckout(trip.ID)
	badEmail.Contact.Email = "not-an-email"
	if _, err := f.bookings.HotelCheckout(ctx, sara, badEmail); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("bad email: err = %v", err)
	}
	guests := hotelCheckout(trip.ID)
	guests.Guests = -1
	if _, err := f.bookings.HotelCheckout(ctx, sara, guests); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("negative guests: err = %v", err)
	}
	if len(f.provider.created) != 0 {
		t.Fatalf("payment created for invalid checkout: %d", len(f.provider.created))
	}

	f.provider.err = errors.New("card network down")
	if _, err := f.bookings.HotelCheckout(ctx, sara, hotelCheckout(trip.ID)); !errors.Is(err, utils.ErrPaymentFailed) {
		t.Fatalf("provider failure: err = %v", err)
	}
	if _, err := f.drafts.Get(ctx, draftKey("hotel", sara.Email)); err == nil {
		t.Fatal("draft must be removed when the payment session fails")
	}
}

func pickupIn(d time.Duration) string {
	return time.Now().In(utils.Location("")).Add(d).Format(PickupTimeLayout)
}

func TestRideCheckoutAndConfirm(t *testing.T) {
	f := newFixture(t)
	f.oracle.replies = []string{rideReply}
	ctx := context.Background()

	search, err := f.rides.Search(ctx, sara, rideRequest())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	careem, indrive := search.Options[0], search.Options[1]
	req := request_models.RideCheckoutRequest{
		RideID:       search.RideID,
		RideOptionID: careem.RideOptionID,
		PickupTime:   pickupIn(3 * time.Hour),
	}

	over := req
	over.Passengers = 5
	if _, err := f.bookings.RideCheckout(ctx, sara, over); !errors.Is(err, utils.ErrCapacityExceeded) {
		t.Fatalf("overfull sedan: err = %v", err)
	}
	late := req
	late.PickupTime = pickupIn(-time.Hour)
	if _, err := f.bookings.RideCheckout(ctx, sara, late); !errors.Is(err, utils.ErrDateInPast) {
		t.Fatalf("past pickup: err = %v", err)
	}
	unpriced := req
	unpriced.RideOptionID = indrive.RideOptionID
	if _, err := f.bookings.RideCheckout(ctx, sara, unpriced); !errors.Is(err, pricing.ErrUnparseablePrice) {
		t.Fatalf("unpriced option: err = %v", err)
	}

	co, err := f.bookings.RideCheckout(ctx, sara, req)
	if err != nil {
		t.Fatalf("RideCheckout: %v", err)
	}
	if co.Total != 1500 || co.RideQuote == nil || co.RideQuote.Fare != 1500 {
		t.Fatalf("checkout = %+v", co)
	}
	if name := f.provider.created[0].ProductName; name != "Ride with Careem (Sedan)" {
		t.Fatalf("product name = %q", name)
	}

	f.provider.markPaid(co.SessionID)
	res, err := f.bookings.RideConfirm(ctx, sara, request_models.ConfirmRequest{SessionID: co.SessionID})
	if err != nil {
		t.Fatalf("RideConfirm: %v", err)
	}
	if res.Booking.Passengers != 2 || res.Booking.Departure != "Lahore Airport" || res.Booking.TotalPrice != 1500 {
		t.Fatalf("booking = %+v", res.Booking)
	}
	rides, _ := f.bookingRepo.ListRideBookingsByOwner(ctx, sara.Email)
	if len(rides) != 1 || len(f.mailer.sent) != 1 {
		t.Fatalf("stored rides = %d, mails = %d", len(rides), len(f.mailer.sent))
	}
}

func TestConfirmKeepsDraftWhenPaymentLookupFails(t *testing.T) {
	f := newFixture(t)
	trip := f.seedTrip(t)
	ctx := context.Background()

	co, err := f.bookings.HotelCheckout(ctx, sara, hotelCheckout(trip.ID))
	if err != nil {
		t.Fatalf("HotelCheckout: %v", err)
	}
	f.provider.markPaid(co.SessionID)
	f.provider.failLookups(errors.New("stripe: connection reset"))
	if _, err := f.bookings.HotelConfirm(ctx, sara, request_models.ConfirmRequest{SessionID: co.SessionID}); !errors.Is(err, utils.ErrPaymentFailed) {
		t.Fatalf("lookup failure: err = %v", err)
	}

	f.provider.failLookups(nil)
	res, err := f.bookings.HotelConfirm(ctx, sara, request_models.ConfirmRequest{SessionID: co.SessionID})
	if err != nil {
		t.Fatalf("retry after lookup failure: %v", err)
	}
	if res.Booking.PaymentSessionID != co.SessionID {
		t.Fatalf("booking = %+v", res.Booking)
	}

	f.oracle.replies = []string{rideReply}
	search, err := f.rides.Search(ctx, sara, rideRequest())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	rideCo, err := f.bookings.RideCheckout(ctx, sara, request_models.RideCheckoutRequest{
		RideID:       search.RideID,
		RideOptionID: search.Options[0].RideOptionID,
		PickupTime:   pickupIn(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("RideCheckout: %v", err)
	}
	f.provider.markPaid(rideCo.SessionID)
	f.provider.failLookups(errors.New("stripe: timeout"))
	if _, err := f.bookings.RideConfirm(ctx, sara, request_models.ConfirmRequest{SessionID: rideCo.SessionID}); !errors.Is(err, utils.ErrPaymentFailed) {
		t.Fatalf("ride lookup failure: err = %v", err)
	}
	f.provider.failLookups(nil)
	if _, err := f.bookings.RideConfirm(ctx, sara, request_models.ConfirmRequest{SessionID: rideCo.SessionID}); err != nil {
		t.Fatalf("ride retry after lookup failure: %v", err)
	}
}
