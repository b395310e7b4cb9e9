package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/models/response_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/logger"
	"tripplanner/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
	log            *logger.Logger
}

func NewPaymentController(paymentService services.PaymentServiceInterface, log *logger.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		log:            log,
	}
}

// CreateCheckoutSession godoc
// @Summary Create a hotel checkout session
// @Description Public payment-session endpoint. Converts the PKR total to USD and opens a Stripe checkout session.
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateCheckoutSessionRequest true "Hotel payment"
// @Success 200 {object} response_models.CheckoutSessionResponse
// @Failure 400 {object} response_models.CheckoutSessionResponse
// @Failure 500 {object} response_models.CheckoutSessionResponse
// @Router /api/create-checkout-session/ [post]
func (p *PaymentController) CreateCheckoutSession(c *gin.Context) {
	var req request_models.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response_models.CheckoutSessionResponse{Error: "Invalid totalPrice format"})
		return
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, response_models.CheckoutSessionResponse{Error: "Missing required field: " + missing[0]})
		return
	}

	sess, err := p.paymentService.CreateHotelCheckout(c.Request.Context(), req)
	if err != nil {
		p.respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response_models.CheckoutSessionResponse{ID: sess.ID})
}

// CreateRideCheckoutSession godoc
// @Summary Create a ride checkout session
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreateRideCheckoutSessionRequest true "Ride payment"
// @Success 200 {object} response_models.CheckoutSessionResponse
// @Failure 400 {object} response_models.CheckoutSessionResponse
// @Router /api/create-ride-checkout-session/ [post]
func (p *PaymentController) CreateRideCheckoutSession(c *gin.Context) {
	var req request_models.CreateRideCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response_models.CheckoutSessionResponse{Error: "Invalid totalPrice format"})
		return
	}
	if missing := req.MissingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, response_models.CheckoutSessionResponse{Error: "Missing required field: " + missing[0]})
		return
	}

	sess, err := p.paymentService.CreateRideCheckout(c.Request.Context(), req)
	if err != nil {
		p.respondPaymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, response_models.CheckoutSessionResponse{ID: sess.ID})
}

func (p *PaymentController) respondPaymentError(c *gin.Context, err error) {
	p.log.WithTraceID(c.GetString("trace_id")).WithError(err).Warn("Checkout session failed")
	switch {
	case errors.Is(err, utils.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, response_models.CheckoutSessionResponse{Error: "Invalid totalPrice format"})
	case errors.Is(err, utils.ErrPaymentFailed):
		msg := strings.TrimPrefix(err.Error(), utils.ErrPaymentFailed.Error()+": ")
		c.JSON(http.StatusBadRequest, response_models.CheckoutSessionResponse{Error: "Stripe error: " + msg})
	default:
		c.JSON(http.StatusInternalServerError, response_models.CheckoutSessionResponse{Error: "Server error: " + err.Error()})
	}
}

// StripeWebhook godoc
// @Summary Stripe webhook
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/stripe/webhook [post]
func (p *PaymentController) StripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unreadable payload")
		return
	}
	if err := p.paymentService.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "ok")
}
