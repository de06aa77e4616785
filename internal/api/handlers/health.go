package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gridironlabs/league-archive/internal/services"
	"github.com/gridironlabs/league-archive/pkg/utils"
)

type HealthHandler struct {
	archive   *services.ArchiveService
	refresher *services.RefresherService
	startTime time.Time
}

func NewHealthHandler(archive *services.ArchiveService, refresher *services.RefresherService) *HealthHandler {
	return &HealthHandler{
		archive:   archive,
		refresher: refresher,
		startTime: time.Now(),
	}
}

// HealthCheck is the liveness probe; it succeeds even before the first
// snapshot load completes
// GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "league-archive",
		"uptime":  time.Since(h.startTime).String(),
	})
}

// GetStatus reports what data is loaded and when the refresher last ran
// GET /api/v1/status
func (h *HealthHandler) GetStatus(c *gin.Context) {
	payload := gin.H{
		"refresher": h.refresher.GetStatus(),
	}

	status, err := h.archive.Status()
	if err != nil {
		payload["loaded"] = false
	} else {
		payload["loaded"] = true
		payload["dataset"] = status
	}
	utils.SendSuccess(c, payload)
}

// TriggerRefresh forces an immediate snapshot reload
// POST /api/v1/refresh
func (h *HealthHandler) TriggerRefresh(c *gin.Context) {
	ds := h.refresher.Refresh()
	if ds == nil {
		utils.SendUnavailable(c, "Snapshot reload failed or was superseded")
		return
	}
	utils.SendSuccess(c, gin.H{
		"generation": ds.Generation,
		"seasons":    ds.Seasons,
		"partial":    ds.Partial(),
	})
}
