package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tripbook/internal/repositories"

	"github.com/gin-gonic/gin"
)

type vehiclePayload struct {
	Type     string `json:"type" binding:"required"`
	Capacity int    `json:"capacity" binding:"required"`
}

// GET /api/vehicles
func (a *API) GetVehicles(c *gin.Context) {
	list, err := repositories.VehicleRepository{R: a.Store}.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": list})
}

// POST /api/vehicles
func (a *API) CreateVehicle(c *gin.Context) {
	var p vehiclePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	p.Type = strings.TrimSpace(p.Type)
	if p.Type == "" || p.Capacity <= 0 {
		RespondError(c, http.StatusBadRequest, "type and a positive capacity are required", nil)
		return
	}

	id, err := repositories.VehicleRepository{R: a.Store}.Create(c.Request.Context(), p.Type, p.Capacity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/vehicles/:id
func (a *API) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid vehicle id", err)
		return
	}
	var p vehiclePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	p.Type = strings.TrimSpace(p.Type)
	if p.Type == "" || p.Capacity <= 0 {
		RespondError(c, http.StatusBadRequest, "type and a positive capacity are required", nil)
		return
	}

	updated, err := repositories.VehicleRepository{R: a.Store}.Update(c.Request.Context(), id, p.Type, p.Capacity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !updated {
		RespondError(c, http.StatusNotFound, "vehicle not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle updated"})
}

// DELETE /api/vehicles/:id
func (a *API) DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid vehicle id", err)
		return
	}
	deleted, err := repositories.VehicleRepository{R: a.Store}.Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "vehicle not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
