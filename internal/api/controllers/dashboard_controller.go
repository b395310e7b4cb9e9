package controllers

import (
	"github.com/gin-gonic/gin"

	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

type DashboardController struct {
	svc services.DashboardServiceInterface
}

func NewDashboardController(svc services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{svc: svc}
}

// GetStats godoc
// @Summary Dashboard figures for the caller
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardController) GetStats(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	report, err := h.svc.BuildDashboard(c.Request.Context(), session)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, report, "")
}
