package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tripbook/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/places
func (a *API) GetPlaces(c *gin.Context) {
	list, err := repositories.PlaceRepository{R: a.Store}.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": list})
}

// POST /api/places
func (a *API) CreatePlace(c *gin.Context) {
	var p struct {
		Name    string `json:"name" binding:"required"`
		StateID int64  `json:"stateId" binding:"required"`
	}
	if !BindJSONOrError(c, &p) {
		return
	}
	id, err := repositories.PlaceRepository{R: a.Store}.Create(c.Request.Context(), strings.TrimSpace(p.Name), p.StateID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DELETE /api/places/:id
func (a *API) DeletePlace(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid place id", err)
		return
	}
	deleted, err := repositories.PlaceRepository{R: a.Store}.Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "place not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "place deleted"})
}

// GET /api/companies
func (a *API) GetCompanies(c *gin.Context) {
	list, err := repositories.CompanyRepository{R: a.Store}.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": list})
}

// POST /api/companies
func (a *API) CreateCompany(c *gin.Context) {
	var p struct {
		Name string `json:"name" binding:"required"`
	}
	if !BindJSONOrError(c, &p) {
		return
	}
	id, err := repositories.CompanyRepository{R: a.Store}.Create(c.Request.Context(), strings.TrimSpace(p.Name))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/drivers
func (a *API) GetDrivers(c *gin.Context) {
	list, err := repositories.DriverRepository{R: a.Store}.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": list})
}
