package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripplanner/internal/models/db_models"
	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/pricing"
	"tripplanner/internal/repositories"
	"tripplanner/pkg/logger"
	mem "tripplanner/pkg/memcache"
	"tripplanner/pkg/metrics"
	"tripplanner/pkg/utils"
)

const PickupTimeLayout = "2006-01-02T15:04"

type BookingServiceInterface interface {
	QuoteHotel(ctx context.Context, session request_models.Session, tripID string, hotelIndex int, checkIn, checkOut string, guests int) (*response_models.HotelQuoteResponse, error)
	HotelCheckout(ctx context.Context, session request_models.Session, req request_models.HotelCheckoutRequest) (*response_models.CheckoutResponse, error)
	HotelConfirm(ctx context.Context, session request_models.Session, req request_models.ConfirmRequest) (*response_models.HotelBookingResponse, error)
	HotelVoucher(ctx context.Context, session request_models.Session, bookingID string) ([]byte, error)

	RideCheckout(ctx context.Context, session request_models.Session, req request_models.RideCheckoutRequest) (*response_models.CheckoutResponse, error)
	RideConfirm(ctx context.Context, session request_models.Session, req request_models.ConfirmRequest) (*response_models.RideBookingResponse, error)
}

type BookingConfig struct {
	HotelFeeOffset float64
	DraftTTL       time.Duration
	AppBaseURL     string
	Location       *time.Location
}

type BookingService struct {
	trips    TripServiceInterface
	rides    RideServiceInterface
	repo     repositories.BookingRepositoryInterface
	payments PaymentServiceInterface
	drafts   mem.DraftCache
	vouchers VoucherServiceInterface
	mailer   IMailService
	cfg      BookingConfig
	log      *logger.Logger
	now      func() time.Time
}

func NewBookingService(
	trips TripServiceInterface,
	rides RideServiceInterface,
	repo repositories.BookingRepositoryInterface,
	payments PaymentServiceInterface,
	drafts mem.DraftCache,
	vouchers VoucherServiceInterface,
	mailer IMailService,
	cfg BookingConfig,
	log *logger.Logger,
) BookingServiceInterface {
	if cfg.DraftTTL <= 0 {
		cfg.DraftTTL = 2 * time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = utils.Location("")
	}
	return &BookingService{
		trips:    trips,
		rides:    rides,
		repo:     repo,
		payments: payments,
		drafts:   drafts,
		vouchers: vouchers,
		mailer:   mailer,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Drafts are keyed by owner and kind, so a new checkout replaces any pending
// one of the same kind.
func draftKey(kind, email string) string { return kind + ":" + strings.ToLower(email) }

type hotelDraft struct {
	Booking   db_models.HotelBooking `json:"booking"`
	SessionID string                 `json:"sessionId"`
}

type rideDraft struct {
	Booking   db_models.RideBooking `json:"booking"`
	SessionID string                `json:"sessionId"`
}

func (b *BookingService) QuoteHotel(ctx context.Context, session request_models.Session, tripID string, hotelIndex int, checkIn, checkOut string, guests int) (*response_models.HotelQuoteResponse, error) {
	trip, err := b.trips.GetTrip(ctx, session, tripID)
	if err != nil {
		return nil, err
	}
	hotel, ok := trip.Hotel(hotelIndex)
	if !ok {
		return nil, utils.ErrHotelNotFound
	}
	if guests == 0 {
		guests = trip.NumberOfPeople
	}
	if guests < 1 {
		return nil, fmt.Errorf("%w: guests must be at least 1", utils.ErrInvalidInput)
	}

	quote, err := b.quote(hotel, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return &response_models.HotelQuoteResponse{
		TripID:     trip.ID,
		HotelIndex: hotelIndex,
		HotelName:  hotel.Name,
		Guests:     guests,
		Quote:      quote,
		TotalText:  utils.FormatPKR(quote.TotalPrice),
	}, nil
}

func (b *BookingService) quote(hotel *db_models.HotelOption, checkIn, checkOut string) (pricing.HotelQuote, error) {
	var rate float64
	if hotel.NightlyRate != nil {
		rate = *hotel.NightlyRate
	} else {
		v, err := pricing.HotelRates(b.cfg.HotelFeeOffset).ExtractWithFallback(hotel.PriceRangeText)
		if err != nil {
			return pricing.HotelQuote{}, err
		}
		rate = v
	}
	return pricing.QuoteHotel(checkIn, checkOut, rate)
}

func contactFor(session request_models.Session, c request_models.ContactRequest) (db_models.ContactInfo, error) {
	out := db_models.ContactInfo{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
	if out.Name == "" {
		out.Name = session.Name
	}
	if out.Email == "" {
		out.Email = session.Email
	}
	if out.Name == "" {
		return out, fmt.Errorf("%w: missing required field: name", utils.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(out.Email); err != nil {
		return out, fmt.Errorf("%w: invalid email address", utils.ErrInvalidInput)
	}
	return out, nil
}

func (b *BookingService) HotelCheckout(ctx context.Context, session request_models.Session, req request_models.HotelCheckoutRequest) (*response_models.CheckoutResponse, error) {
	contact, err := contactFor(session, req.Contact)
	if err != nil {
		return nil, err
	}
	q, err := b.QuoteHotel(ctx, session, req.TripID, req.HotelIndex, req.CheckIn, req.CheckOut, req.Guests)
	if err != nil {
		return nil, err
	}
	checkIn, _ := pricing.ParseDate(q.Quote.CheckIn)
	if checkIn.Before(utils.Today(b.cfg.Location)) {
		return nil, fmt.Errorf("%w: check-in %s", utils.ErrDateInPast, q.Quote.CheckIn)
	}

	trip, err := b.trips.GetTrip(ctx, session, req.TripID)
	if err != nil {
		return nil, err
	}
	hotel, _ := trip.Hotel(req.HotelIndex)

	draft := hotelDraft{Booking: db_models.HotelBooking{
		TripID:        trip.ID,
		HotelIndex:    req.HotelIndex,
		HotelName:     hotel.Name,
		HotelAddress:  hotel.Address,
		CheckIn:       q.Quote.CheckIn,
		CheckOut:      q.Quote.CheckOut,
		Nights:        q.Quote.Nights,
		Guests:        q.Guests,
		PricePerNight: q.Quote.PricePerNight,
		TotalPrice:    q.Quote.TotalPrice,
		Contact:       contact,
		OwnerEmail:    session.Email,
	}}
	key := draftKey("hotel", session.Email)
	if err := b.stage(ctx, key, draft); err != nil {
		return nil, err
	}

	sess, err := b.payments.CreateHotelCheckout(ctx, request_models.CreateCheckoutSessionRequest{
		TripID:     trip.ID,
		CheckIn:    draft.Booking.CheckIn,
		CheckOut:   draft.Booking.CheckOut,
		Guests:     draft.Booking.Guests,
		Name:       contact.Name,
		Email:      contact.Email,
		Phone:      contact.Phone,
		TotalPrice: draft.Booking.TotalPrice,
	})
	if err != nil {
		_ = b.drafts.Delete(ctx, key)
		return nil, err
	}

	draft.SessionID = sess.ID
	if err := b.stage(ctx, key, draft); err != nil {
		return nil, err
	}
	b.log.WithUser(session.Email).WithField("session_id", sess.ID).Info("Hotel checkout started")

	return &response_models.CheckoutResponse{
		SessionID:  sess.ID,
		URL:        sess.URL,
		Total:      draft.Booking.TotalPrice,
		AmountUSD:  sess.AmountUSD,
		HotelQuote: &q.Quote,
	}, nil
}

func (b *BookingService) HotelConfirm(ctx context.Context, session request_models.Session, req request_models.ConfirmRequest) (*response_models.HotelBookingResponse, error) {
	if session.IsZero() {
		return nil, utils.ErrUnauthorized
	}
	key := draftKey("hotel", session.Email)
	var draft hotelDraft
	if err := b.take(ctx, key, &draft); err != nil {
		return nil, err
	}
	if draft.SessionID == "" || draft.SessionID != req.SessionID {
		return nil, utils.ErrDraftNotFound
	}
	if _, err := pricing.QuoteHotel(draft.Booking.CheckIn, draft.Booking.CheckOut, draft.Booking.PricePerNight); err != nil {
		return nil, err
	}
	if err := b.payments.VerifyPaid(ctx, req.SessionID); err != nil {
		b.restageAfter(ctx, key, draft, err)
		return nil, err
	}

	booking := draft.Booking
	booking.ID = uuid.NewString()
	booking.PaymentSessionID = req.SessionID
	booking.CreatedAt = b.now().UTC()
	if err := b.repo.SaveHotelBooking(ctx, &booking); err != nil {
		b.log.WithError(err).WithField("session_id", req.SessionID).Error("Paid hotel booking could not be stored")
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	metrics.BookingsTotal.WithLabelValues("hotel").Inc()

	voucherPath := fmt.Sprintf("/bookings/hotels/%s/voucher", booking.ID)
	b.sendVoucher(booking.Contact.Email, "Your hotel booking is confirmed",
		fmt.Sprintf("Your stay at %s from %s to %s is confirmed. Your voucher is attached.", booking.HotelName, booking.CheckIn, booking.CheckOut),
		"hotel-voucher-"+booking.ID+".pdf",
		func() ([]byte, error) { return b.vouchers.HotelVoucher(&booking) })

	return &response_models.HotelBookingResponse{Booking: booking, VoucherURL: voucherPath}, nil
}

func (b *BookingService) HotelVoucher(ctx context.Context, session request_models.Session, bookingID string) ([]byte, error) {
	if session.IsZero() {
		return nil, utils.ErrUnauthorized
	}
	booking, err := b.repo.GetHotelBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if booking == nil {
		return nil, utils.ErrBookingNotFound
	}
	if booking.OwnerEmail != session.Email {
		return nil, utils.ErrForbidden
	}
	return b.vouchers.HotelVoucher(booking)
}

func (b *BookingService) RideCheckout(ctx context.Context, session request_models.Session, req request_models.RideCheckoutRequest) (*response_models.CheckoutResponse, error) {
	contact, err := contactFor(session, req.Contact)
	if err != nil {
		return nil, err
	}
	pickup, err := time.ParseInLocation(PickupTimeLayout, strings.TrimSpace(req.PickupTime), b.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: pickupTime must be YYYY-MM-DDTHH:MM", utils.ErrInvalidInput)
	}
	if pickup.Before(b.now()) {
		return nil, fmt.Errorf("%w: pickup %s", utils.ErrDateInPast, req.PickupTime)
	}

	opt, search, err := b.rides.GetOption(ctx, session, req.RideID, req.RideOptionID)
	if err != nil {
		return nil, err
	}
	passengers := req.Passengers
	if passengers == 0 {
		passengers = search.NumberOfPeople
	}
	if passengers < 1 {
		return nil, fmt.Errorf("%w: passengers must be at least 1", utils.ErrInvalidInput)
	}
	if limit := db_models.Vehicle(opt.VehicleType).Capacity(); passengers > limit {
		return nil, fmt.Errorf("%w: %d passengers for %s (max %d)", utils.ErrCapacityExceeded, passengers, opt.VehicleType, limit)
	}
	if opt.Fare == nil {
		return nil, pricing.ErrUnparseablePrice
	}
	quote, err := pricing.QuoteRide(*opt.Fare)
	if err != nil {
		return nil, err
	}

	draft := rideDraft{Booking: db_models.RideBooking{
		RideID:       search.ID,
		RideOptionID: opt.RideOptionID,
		Company:      opt.Company,
		VehicleType:  opt.VehicleType,
		VehicleModel: opt.VehicleModel,
		Departure:    search.Departure,
		Destination:  search.Destination,
		PickupTime:   pickup.Format(PickupTimeLayout),
		Passengers:   passengers,
		TotalPrice:   quote.TotalPrice,
		Contact:      contact,
		OwnerEmail:   session.Email,
	}}
	key := draftKey("ride", session.Email)
	if err := b.stage(ctx, key, draft); err != nil {
		return nil, err
	}

	sess, err := b.payments.CreateRideCheckout(ctx, request_models.CreateRideCheckoutSessionRequest{
		RideID:       search.ID,
		RideOptionID: opt.RideOptionID,
		PickupTime:   draft.Booking.PickupTime,
		Passengers:   passengers,
		Name:         contact.Name,
		Email:        contact.Email,
		Phone:        contact.Phone,
		Company:      opt.Company,
		VehicleType:  opt.VehicleType,
		TotalPrice:   quote.TotalPrice,
	})
	if err != nil {
		_ = b.drafts.Delete(ctx, key)
		return nil, err
	}

	draft.SessionID = sess.ID
	if err := b.stage(ctx, key, draft); err != nil {
		return nil, err
	}
	b.log.WithUser(session.Email).WithField("session_id", sess.ID).Info("Ride checkout started")

	return &response_models.CheckoutResponse{
		SessionID: sess.ID,
		URL:       sess.URL,
		Total:     quote.TotalPrice,
		AmountUSD: sess.AmountUSD,
		RideQuote: &quote,
	}, nil
}

func (b *BookingService) RideConfirm(ctx context.Context, session request_models.Session, req request_models.ConfirmRequest) (*response_models.RideBookingResponse, error) {
	if session.IsZero() {
		return nil, utils.ErrUnauthorized
	}
	key := draftKey("ride", session.Email)
	var draft rideDraft
	if err := b.take(ctx, key, &draft); err != nil {
		return nil, err
	}
	if draft.SessionID == "" || draft.SessionID != req.SessionID {
		return nil, utils.ErrDraftNotFound
	}
	if !pricing.IsValidAmount(draft.Booking.TotalPrice) {
		return nil, pricing.ErrUnparseablePrice
	}
	if err := b.payments.VerifyPaid(ctx, req.SessionID); err != nil {
		b.restageAfter(ctx, key, draft, err)
		return nil, err
	}

	booking := draft.Booking
	booking.ID = uuid.NewString()
	booking.PaymentSessionID = req.SessionID
	booking.CreatedAt = b.now().UTC()
	if err := b.repo.SaveRideBooking(ctx, &booking); err != nil {
		b.log.WithError(err).WithField("session_id", req.SessionID).Error("Paid ride booking could not be stored")
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	metrics.BookingsTotal.WithLabelValues("ride").Inc()

	b.sendVoucher(booking.Contact.Email, "Your ride is booked",
		fmt.Sprintf("Your %s ride from %s to %s is booked for %s.", booking.Company, booking.Departure, booking.Destination, booking.PickupTime),
		"ride-voucher-"+booking.ID+".pdf",
		func() ([]byte, error) { return b.vouchers.RideVoucher(&booking) })

	return &response_models.RideBookingResponse{Booking: booking}, nil
}

func (b *BookingService) stage(ctx context.Context, key string, draft any) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	if err := b.drafts.Put(ctx, key, payload, b.cfg.DraftTTL); err != nil {
		return fmt.Errorf("%w: stage draft: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

// restageAfter puts a taken draft back when the payment provider could not
// be reached, so a paid checkout can still be confirmed on retry. An unpaid
// session stays consumed.
func (b *BookingService) restageAfter(ctx context.Context, key string, draft any, cause error) {
	if !errors.Is(cause, utils.ErrPaymentFailed) {
		return
	}
	if err := b.stage(ctx, key, draft); err != nil {
		b.log.WithError(err).WithField("draft", key).Error("Draft could not be restored after a payment lookup failure")
	}
}

func (b *BookingService) take(ctx context.Context, key string, dest any) error {
	payload, err := b.drafts.Take(ctx, key)
	if errors.Is(err, mem.ErrMiss) {
		return utils.ErrDraftNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: read draft: %v", utils.ErrDatabaseError, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return utils.ErrDraftNotFound
	}
	return nil
}

// sendVoucher mails the rendered voucher. The booking is already stored, so
// failures are logged and not returned.
func (b *BookingService) sendVoucher(to, subject, intro, filename string, render func() ([]byte, error)) {
	log := b.log.WithField("to", to)
	pdf, err := render()
	if err != nil {
		log.WithError(err).Error("Failed to render voucher")
		return
	}
	err = b.mailer.SendBookingConfirmation(to, subject, intro, "View your bookings", strings.TrimRight(b.cfg.AppBaseURL, "/")+"/dashboard",
		Attachment{Filename: filename, ContentType: "application/pdf", Data: pdf})
	if err != nil {
		log.WithError(err).Error("Failed to send booking confirmation")
	}
}
