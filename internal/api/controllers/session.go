package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/models/request_models"
	"tripplanner/pkg/middleware"
	"tripplanner/pkg/utils"
)

// requireSession writes a 401 and returns false when the caller is anonymous.
func requireSession(c *gin.Context) (request_models.Session, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return session, false
	}
	return session, true
}
