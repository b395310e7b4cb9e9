package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/models/request_models"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type TripController struct {
	tripService    services.TripServiceInterface
	chatService    services.ChatServiceInterface
	bookingService services.BookingServiceInterface
}

func NewTripController(
	tripService services.TripServiceInterface,
	chatService services.ChatServiceInterface,
	bookingService services.BookingServiceInterface,
) *TripController {
	return &TripController{
		tripService:    tripService,
		chatService:    chatService,
		bookingService: bookingService,
	}
}

// GenerateTrip godoc
// @Summary Generate a trip plan
// @Description Ask the AI model for a PKR-priced itinerary and store it
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.GenerateTripRequest true "Trip preferences"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) GenerateTrip(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req request_models.GenerateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	trip, err := t.tripService.GenerateTrip(c.Request.Context(), session, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "Trip generated successfully")
}

// ListTrips godoc
// @Summary List my trips
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	trips, err := t.tripService.ListTrips(c.Request.Context(), session)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trips, "")
}

// GetTrip godoc
// @Summary Get a trip
// @Tags Trips
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	trip, err := t.tripService.GetTrip(c.Request.Context(), session, c.Param("tripId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "")
}

// Chat godoc
// @Summary Ask the travel assistant about a trip
// @Tags Trips
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.TripChatRequest true "Question"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/chat [post]
func (t *TripController) Chat(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req request_models.TripChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Message is required")
		return
	}

	res, err := t.chatService.Ask(c.Request.Context(), session, c.Param("tripId"), req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, "")
}

// QuoteHotel godoc
// @Summary Price a hotel stay
// @Tags Trips
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param index path int true "Hotel option index"
// @Param checkIn query string true "YYYY-MM-DD"
// @Param checkOut query string true "YYYY-MM-DD"
// @Param guests query int false "Guests, defaults to the trip's party size"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/hotels/{index}/quote [get]
func (t *TripController) QuoteHotel(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Hotel index must be a number")
		return
	}
	guests := 0
	if g := c.Query("guests"); g != "" {
		if guests, err = strconv.Atoi(g); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Guests must be a number")
			return
		}
	}

	quote, err := t.bookingService.QuoteHotel(c.Request.Context(), session, c.Param("tripId"), index, c.Query("checkIn"), c.Query("checkOut"), guests)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, quote, "")
}
