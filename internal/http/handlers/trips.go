package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tripbook/internal/http/middleware"
	"tripbook/internal/repositories"
	"tripbook/internal/services"
	"tripbook/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/trips
func (a *API) GetTrips(c *gin.Context) {
	list, err := repositories.TripRepository{R: a.Store}.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": list})
}

// GET /api/trips/:code
func (a *API) GetTripByCode(c *gin.Context) {
	ctx := c.Request.Context()
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	trips := repositories.TripRepository{R: a.Store}
	trip, found, err := trips.GetByCode(ctx, code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !found {
		RespondError(c, http.StatusNotFound, "trip not found", nil)
		return
	}

	passengers, err := repositories.PassengerRepository{R: a.Store}.ListByTrip(ctx, trip.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	seatsLeft, err := trips.SeatsLeft(ctx, trip.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip":       trip,
		"passengers": passengers,
		"seatsLeft":  seatsLeft,
	})
}

// DELETE /api/trips/:id
// The trip and its passengers go together, atomically.
func (a *API) DeleteTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid trip id", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "trips", "delete", "trip_id="+c.Param("id"))

	deleted, err := repositories.TripRepository{R: a.Store}.Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "trip not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}

// GET /api/trips/:code/manifest
func (a *API) GetTripManifest(c *gin.Context) {
	svc := services.DocsService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateManifest(c.Request.Context(), c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
