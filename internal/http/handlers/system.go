package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "tripbook backend running"})
}

// StoreCheck verifies the engine image is loaded and queryable.
func (a *API) StoreCheck(c *gin.Context) {
	rows, err := a.Store.Query(c.Request.Context(), "SELECT COUNT(*) FROM trips")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	defer rows.Close()

	var trips int
	if rows.Next() {
		if err := rows.Scan(&trips); err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan store check", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "store OK", "trips_in_store": trips})
}
