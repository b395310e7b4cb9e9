package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
	rideService    services.RideServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface, rideService services.RideServiceInterface) *BookingController {
	return &BookingController{
		bookingService: bookingService,
		rideService:    rideService,
	}
}

// HotelCheckout godoc
// @Summary Start paying for a hotel stay
// @Description Quotes the stay, stages a booking draft and returns a Stripe checkout URL
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.HotelCheckoutRequest true "Hotel checkout"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/hotels/checkout [post]
func (b *BookingController) HotelCheckout(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req request_models.HotelCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	res, err := b.bookingService.HotelCheckout(c.Request.Context(), session, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, "Checkout session created")
}

// HotelConfirm godoc
// @Summary Confirm a paid hotel booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body request_models.ConfirmRequest true "Checkout session"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/hotels/confirm [post]
func (b *BookingController) HotelConfirm(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req request_models.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "sessionId is required")
		return
	}

	res, err := b.bookingService.HotelConfirm(c.Request.Context(), session, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, "Booking confirmed")
}

// HotelVoucher godoc
// @Summary Download a hotel voucher
// @Tags Bookings
// @Produce application/pdf
// @Param bookingId path string true "Booking ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bookings/hotels/{bookingId}/voucher [get]
func (b *BookingController) HotelVoucher(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingId")
	pdf, err := b.bookingService.HotelVoucher(c.Request.Context(), session, bookingID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "hotel-voucher-"+bookingID+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// RideSearch godoc
// @Summary Search ride options
// @Description Suggests ride-hailing options in Pakistan for a route
// @Tags Rides
// @Accept json
// @Produce json
// @Param request body request_models.RideSearchRequest true "Ride search"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /rides/search [post]
func (b *BookingController) RideSearch(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req request_models.RideSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	res, err := b.rideService.Search(c.Request.Context(), session, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	message := ""
	if res.Warning != nil {
		message = res.Warning.Title
	}
	utils.RespondSuccess(c, res, message)
}

// RideCheckout godoc
// @Summary Start paying for a ride
// @Tags Rides
// @Accept json
// @Produce json
// @Param request body request_models.RideCheckoutRequest true "Ride checkout"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 410 {object} utils.APIResponse
// @Security BearerAuth
// @Router /rides/checkout [post]
func (b *BookingController) RideCheckout(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req request_models.RideCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	res, err := b.bookingService.RideCheckout(c.Request.Context(), session, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, "Checkout session created")
}

// RideConfirm godoc
// @Summary Confirm a paid ride booking
// @Tags Rides
// @Accept json
// @Produce json
// @Param request body request_models.ConfirmRequest true "Checkout session"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /rides/confirm [post]
func (b *BookingController) RideConfirm(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req request_models.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "sessionId is required")
		return
	}

	res, err := b.bookingService.RideConfirm(c.Request.Context(), session, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, "Ride booked")
}
