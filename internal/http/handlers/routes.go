package handlers

import (
	"net/http"

	"tripbook/internal/http/middleware"
	"tripbook/internal/repositories"
	"tripbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/routes
func (a *API) GetRoutes(c *gin.Context) {
	list, err := repositories.RouteRepository{R: a.Store}.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": list})
}

// POST /api/routes
// Saves both directions; the reverse route always carries the same fares.
func (a *API) SaveRoute(c *gin.Context) {
	var in services.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}

	svc := services.RouteService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
	forward, reverse, err := svc.SaveRoute(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forward": forward, "reverse": reverse})
}
