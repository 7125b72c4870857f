package handlers

import (
	"net/http"
	"strconv"

	"tripbook/internal/http/middleware"
	"tripbook/internal/repositories"
	"tripbook/internal/utils"

	"github.com/gin-gonic/gin"
)

// DELETE /api/passengers/:id
func (a *API) DeletePassenger(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid passenger id", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "passengers", "delete", "passenger_id="+c.Param("id"))

	deleted, err := repositories.PassengerRepository{R: a.Store}.Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "passenger not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "passenger removed"})
}
