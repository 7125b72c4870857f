package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tripbook/internal/config"
	h "tripbook/internal/http/handlers"
	"tripbook/internal/http/middleware"
	"tripbook/internal/store"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, st *store.Store) *gin.Engine {
	a := &h.API{Store: st, Env: env}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.RequireAuth([]byte(env.JWTSecret))

	api := r.Group("/api")
	{
		api.GET("/health", a.Health)
		api.GET("/store-check", a.StoreCheck)

		// Auth
		api.POST("/auth/login", a.Login)
		api.POST("/auth/register", a.Register)

		// Bookings
		api.POST("/bookings", a.BookTrip)
		api.GET("/bookings/new-code", a.NewBookingCode)

		// Trips
		trips := api.Group("/trips")
		trips.GET("", a.GetTrips)
		trips.GET("/:code", a.GetTripByCode)
		trips.GET("/:code/manifest", a.GetTripManifest)
		trips.DELETE("/:id", auth, a.DeleteTrip)

		// Passengers
		api.DELETE("/passengers/:id", auth, a.DeletePassenger)

		// Reference data
		vehicles := api.Group("/vehicles")
		vehicles.GET("", a.GetVehicles)
		vehicles.POST("", auth, a.CreateVehicle)
		vehicles.PUT("/:id", auth, a.UpdateVehicle)
		vehicles.DELETE("/:id", auth, a.DeleteVehicle)

		routes := api.Group("/routes")
		routes.GET("", a.GetRoutes)
		routes.POST("", auth, a.SaveRoute)

		places := api.Group("/places")
		places.GET("", a.GetPlaces)
		places.POST("", auth, a.CreatePlace)
		places.DELETE("/:id", auth, a.DeletePlace)

		companies := api.Group("/companies")
		companies.GET("", a.GetCompanies)
		companies.POST("", auth, a.CreateCompany)

		api.GET("/drivers", a.GetDrivers)

		// Manual backup
		api.GET("/snapshot", auth, a.ExportSnapshot)
		api.POST("/snapshot", auth, a.ImportSnapshot)
	}

	return r
}
