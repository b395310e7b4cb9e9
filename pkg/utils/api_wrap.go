package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/itinerary"
	"tripplanner/internal/pricing"
	"tripplanner/pkg/logger"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

var log = logger.NewNop()

// UseLogger sets the logger used when reporting unexpected service errors.
func UseLogger(l *logger.Logger) {
	if l != nil {
		log = l
	}
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

type errorMapping struct {
	target  error
	code    int
	message string
}

// An empty message means the wrapped error text is shown to the client.
var errorTable = []errorMapping{
	{ErrInvalidInput, http.StatusBadRequest, ""},
	{itinerary.ErrInvalidInput, http.StatusBadRequest, ""},
	{pricing.ErrUnparseablePrice, http.StatusBadRequest, "Price could not be determined for this booking"},
	{pricing.ErrInvalidDateRange, http.StatusBadRequest, "Check-out date must be after check-in date"},
	{ErrCapacityExceeded, http.StatusBadRequest, ""},
	{ErrDateInPast, http.StatusBadRequest, ""},
	{ErrUnauthorized, http.StatusUnauthorized, "Authentication required"},
	{ErrPaymentNotCompleted, http.StatusPaymentRequired, "Payment has not been completed"},
	{ErrForbidden, http.StatusForbidden, "You do not have access to this resource"},
	{ErrTripNotFound, http.StatusNotFound, "Trip not found"},
	{ErrHotelNotFound, http.StatusNotFound, "Hotel option not found"},
	{ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{ErrRideNotFound, http.StatusNotFound, "Ride search not found"},
	{ErrDraftNotFound, http.StatusNotFound, "No pending booking found for this payment"},
	{ErrRequestInFlight, http.StatusConflict, "A trip is already being generated, please wait"},
	{ErrRideOptionExpired, http.StatusGone, "Ride option expired, please search again"},
	{itinerary.ErrMalformedJSON, http.StatusBadGateway, "The AI returned an unreadable plan, please try again"},
	{itinerary.ErrMissingField, http.StatusBadGateway, "The AI returned an incomplete plan, please try again"},
	{itinerary.ErrInvalidDay, http.StatusBadGateway, "The AI returned an invalid day plan, please try again"},
	{ErrOracleUnavailable, http.StatusBadGateway, "The AI service is unavailable, please try again"},
	{ErrPaymentFailed, http.StatusBadGateway, "Payment session could not be created"},
}

// StatusFor reports the HTTP status and client message for err.
func StatusFor(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			if m.message == "" {
				return m.code, err.Error()
			}
			return m.code, m.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func HandleServiceError(c *gin.Context, err error) {
	code, message := StatusFor(err)
	entry := log.WithTraceID(c.GetString("trace_id")).WithError(err).WithField("path", c.FullPath())
	if code >= http.StatusInternalServerError {
		entry.Error("Service error")
	} else {
		entry.Warn("Request rejected")
	}
	RespondError(c, code, message)
}
