package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gridironlabs/league-archive/internal/services"
	"github.com/gridironlabs/league-archive/pkg/utils"
)

type PreferencesHandler struct {
	prefs   *services.PreferencesService
	archive *services.ArchiveService
}

func NewPreferencesHandler(prefs *services.PreferencesService, archive *services.ArchiveService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs, archive: archive}
}

// latestSeason picks the default season for new preference records. Zero is
// fine when nothing is loaded yet.
func (h *PreferencesHandler) latestSeason() int {
	seasons, err := h.archive.Seasons()
	if err != nil || len(seasons) == 0 {
		return 0
	}
	return seasons[len(seasons)-1]
}

// GetPreferences returns the stored view preferences for a client
// GET /api/v1/preferences/:clientId
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	clientID := c.Param("clientId")
	if clientID == "" {
		utils.SendValidationError(c, "Missing client ID", "clientId path parameter is required")
		return
	}

	prefs := h.prefs.Get(c.Request.Context(), clientID, h.latestSeason())
	utils.SendSuccess(c, prefs)
}

// UpdatePreferences applies a partial update and returns the merged record
// PUT /api/v1/preferences/:clientId
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	clientID := c.Param("clientId")
	if clientID == "" {
		utils.SendValidationError(c, "Missing client ID", "clientId path parameter is required")
		return
	}

	var update services.PreferencesUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	prefs, err := h.prefs.Update(c.Request.Context(), clientID, h.latestSeason(), update)
	if err != nil {
		utils.SendInternalError(c, "Failed to save preferences")
		return
	}
	utils.SendSuccess(c, prefs)
}

// ResetPreferences restores the defaults for a client
// DELETE /api/v1/preferences/:clientId
func (h *PreferencesHandler) ResetPreferences(c *gin.Context) {
	clientID := c.Param("clientId")
	if clientID == "" {
		utils.SendValidationError(c, "Missing client ID", "clientId path parameter is required")
		return
	}

	prefs, err := h.prefs.Reset(c.Request.Context(), clientID, h.latestSeason())
	if err != nil {
		utils.SendInternalError(c, "Failed to reset preferences")
		return
	}
	utils.SendSuccess(c, prefs)
}
