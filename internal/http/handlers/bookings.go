package handlers

import (
	"net/http"

	"tripbook/internal/http/middleware"
	"tripbook/internal/services"
	"tripbook/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
// A missing code means "open a new trip": one is generated server-side.
func (a *API) BookTrip(c *gin.Context) {
	var in services.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	in.Code = utils.FirstNonEmpty(in.Code, services.NewBookingCode(utils.NowUTC()))

	svc := services.BookingService{Store: a.Store, RequestID: middleware.GetRequestID(c)}
	out, err := svc.BookTrip(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := http.StatusCreated
	if !out.Success {
		// A full vehicle is a normal business outcome.
		status = http.StatusOK
	}
	c.JSON(status, out)
}

// GET /api/bookings/new-code
func (a *API) NewBookingCode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": services.NewBookingCode(utils.NowUTC())})
}
