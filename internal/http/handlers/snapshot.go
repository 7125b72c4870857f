package handlers

import (
	"io"
	"net/http"

	"tripbook/internal/http/middleware"
	"tripbook/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxSnapshotBytes caps uploads; the whole image travels in one request.
const maxSnapshotBytes = 64 << 20

// GET /api/snapshot
// Downloads the full engine image as an opaque backup file, bypassing
// the backing store.
func (a *API) ExportSnapshot(c *gin.Context) {
	utils.LogEvent(middleware.GetRequestID(c), "snapshot", "export", "role="+middleware.GetAuthRole(c))

	data, err := a.Store.ExportSnapshot(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="tripbook-backup.db"`)
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// POST /api/snapshot
// Replaces the entire image with the uploaded backup. Destructive, no
// merge; the new image is persisted before the call returns.
func (a *API) ImportSnapshot(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxSnapshotBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "failed to read snapshot body", err)
		return
	}
	if len(data) == 0 {
		RespondError(c, http.StatusBadRequest, "empty snapshot", nil)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "snapshot", "import", "role="+middleware.GetAuthRole(c))

	if err := a.Store.ImportSnapshot(c.Request.Context(), data); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "snapshot restored"})
}
