package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/pricing"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/utils"
)

type PaymentConfig struct {
	SecretKey      string
	WebhookSecret  string
	SuccessURL     string
	CancelURL      string
	RideSuccessURL string
	RideCancelURL  string
	PKRPerUSD      float64
}

// CheckoutRequest describes a single-item card payment.
type CheckoutRequest struct {
	ProductName   string
	Description   string
	CustomerEmail string
	UnitAmount    int64 // USD cents
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type CheckoutSession struct {
	ID        string
	URL       string
	AmountUSD float64
}

// PaymentProvider is the hosted checkout API.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)
	IsSessionPaid(ctx context.Context, sessionID string) (bool, error)
}

type StripeProvider struct{}

func NewStripeProvider(secretKey string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{}
}

func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.ProductName),
						Description: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (s *StripeProvider) IsSessionPaid(ctx context.Context, sessionID string) (bool, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := session.Get(sessionID, params)
	if err != nil {
		return false, err
	}
	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}

type PaymentServiceInterface interface {
	CreateHotelCheckout(ctx context.Context, req request_models.CreateCheckoutSessionRequest) (*CheckoutSession, error)
	CreateRideCheckout(ctx context.Context, req request_models.CreateRideCheckoutSessionRequest) (*CheckoutSession, error)
	// VerifyPaid returns ErrPaymentNotCompleted unless the session is paid.
	VerifyPaid(ctx context.Context, sessionID string) error
	HandleWebhook(payload []byte, signature string) error
}

type PaymentService struct {
	provider PaymentProvider
	cfg      PaymentConfig
	log      *logger.Logger
}

func NewPaymentService(provider PaymentProvider, cfg PaymentConfig, log *logger.Logger) PaymentServiceInterface {
	if cfg.PKRPerUSD <= 0 {
		cfg.PKRPerUSD = 291
	}
	return &PaymentService{provider: provider, cfg: cfg, log: log}
}

// ConvertPKRToUSDCents converts a PKR total into the USD cents charged. Amounts
// that round down to zero cents are rejected.
func ConvertPKRToUSDCents(totalPKR, pkrPerUSD float64) (int64, float64, error) {
	if !pricing.IsValidAmount(totalPKR) {
		return 0, 0, fmt.Errorf("%w: total price must be a positive number", utils.ErrInvalidInput)
	}
	usd := totalPKR / pkrPerUSD
	cents := int64(usd * 100)
	if cents <= 0 {
		return 0, 0, fmt.Errorf("%w: total price is below the minimum charge", utils.ErrInvalidInput)
	}
	return cents, math.Round(usd*100) / 100, nil
}

func (p *PaymentService) CreateHotelCheckout(ctx context.Context, req request_models.CreateCheckoutSessionRequest) (*CheckoutSession, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required field: %s", utils.ErrInvalidInput, missing[0])
	}
	cents, usd, err := ConvertPKRToUSDCents(req.TotalPrice, p.cfg.PKRPerUSD)
	if err != nil {
		return nil, err
	}
	p.log.WithField("trip_id", req.TripID).Infof("Converted %.2f PKR to %.2f USD (cents: %d)", req.TotalPrice, usd, cents)

	return p.create(ctx, &CheckoutRequest{
		ProductName:   fmt.Sprintf("Booking for Hotel ID: %s", req.TripID),
		Description:   fmt.Sprintf("Stay from %s to %s - %d guests", req.CheckIn, req.CheckOut, req.Guests),
		CustomerEmail: req.Email,
		UnitAmount:    cents,
		SuccessURL:    withSessionID(p.cfg.SuccessURL),
		CancelURL:     p.cfg.CancelURL,
		Metadata: map[string]string{
			"kind":          "hotel",
			"tripId":        req.TripID,
			"checkIn":       req.CheckIn,
			"checkOut":      req.CheckOut,
			"guests":        strconv.Itoa(req.Guests),
			"name":          req.Name,
			"email":         req.Email,
			"phone":         req.Phone,
			"totalPricePKR": strconv.FormatFloat(req.TotalPrice, 'f', -1, 64),
			"totalPriceUSD": strconv.FormatFloat(usd, 'f', 2, 64),
		},
	}, usd)
}

func (p *PaymentService) CreateRideCheckout(ctx context.Context, req request_models.CreateRideCheckoutSessionRequest) (*CheckoutSession, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required field: %s", utils.ErrInvalidInput, missing[0])
	}
	cents, usd, err := ConvertPKRToUSDCents(req.TotalPrice, p.cfg.PKRPerUSD)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("Ride Booking: %s", req.RideOptionID)
	if req.Company != "" {
		name = fmt.Sprintf("Ride with %s (%s)", req.Company, orNA(req.VehicleType))
	}
	return p.create(ctx, &CheckoutRequest{
		ProductName:   name,
		Description:   fmt.Sprintf("Pickup at %s - %d passengers", req.PickupTime, req.Passengers),
		CustomerEmail: req.Email,
		UnitAmount:    cents,
		SuccessURL:    withSessionID(p.cfg.RideSuccessURL),
		CancelURL:     p.cfg.RideCancelURL,
		Metadata: map[string]string{
			"kind":          "ride",
			"rideId":        req.RideID,
			"rideOptionId":  req.RideOptionID,
			"pickupTime":    req.PickupTime,
			"passengers":    strconv.Itoa(req.Passengers),
			"name":          req.Name,
			"email":         req.Email,
			"phone":         req.Phone,
			"totalPricePKR": strconv.FormatFloat(req.TotalPrice, 'f', -1, 64),
			"totalPriceUSD": strconv.FormatFloat(usd, 'f', 2, 64),
		},
	}, usd)
}

func (p *PaymentService) create(ctx context.Context, req *CheckoutRequest, usd float64) (*CheckoutSession, error) {
	sess, err := p.provider.CreateCheckoutSession(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrPaymentFailed, err)
	}
	sess.AmountUSD = usd
	p.log.WithField("session_id", sess.ID).Info("Stripe session created successfully")
	return sess, nil
}

func (p *PaymentService) VerifyPaid(ctx context.Context, sessionID string) error {
	paid, err := p.provider.IsSessionPaid(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrPaymentFailed, err)
	}
	if !paid {
		return utils.ErrPaymentNotCompleted
	}
	return nil
}

func (p *PaymentService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return fmt.Errorf("%w: invalid webhook signature", utils.ErrInvalidInput)
	}
	if string(event.Type) != "checkout.session.completed" {
		return nil
	}
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("%w: malformed checkout session event", utils.ErrInvalidInput)
	}
	p.log.WithFields(map[string]interface{}{
		"session_id":     sess.ID,
		"payment_status": string(sess.PaymentStatus),
		"kind":           sess.Metadata["kind"],
	}).Info("Checkout session completed")
	return nil
}

func withSessionID(u string) string {
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "session_id={CHECKOUT_SESSION_ID}"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
