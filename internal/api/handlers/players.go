package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gridironlabs/league-archive/internal/services"
	"github.com/gridironlabs/league-archive/pkg/utils"
)

type PlayerHandler struct {
	archive *services.ArchiveService
}

func NewPlayerHandler(archive *services.ArchiveService) *PlayerHandler {
	return &PlayerHandler{archive: archive}
}

// datasetMeta builds the partial-data meta block for responses, or nil when
// the dataset is fully loaded.
func datasetMeta(archive *services.ArchiveService) *utils.Meta {
	status, err := archive.Status()
	if err != nil || !status.Partial {
		return nil
	}
	return &utils.Meta{
		Partial:    true,
		Degraded:   status.Degraded,
		Generation: status.Generation,
	}
}

func sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoData):
		utils.SendUnavailable(c, "No data loaded yet")
	case errors.Is(err, services.ErrPlayerNotFound):
		utils.SendNotFound(c, "Player not found")
	case errors.Is(err, services.ErrSeasonNotFound):
		utils.SendNotFound(c, "Season not found")
	default:
		utils.SendInternalError(c, "Failed to compute result")
	}
}

// GetPlayer resolves any known identifier or name to the canonical record
// GET /api/v1/players/:id
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	player, err := h.archive.ResolvePlayer(c.Param("id"))
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, player)
}

// GetPlayerSeasons returns per-season aggregates
// GET /api/v1/players/:id/seasons
func (h *PlayerHandler) GetPlayerSeasons(c *gin.Context) {
	seasons, err := h.archive.PlayerSeasons(c.Param("id"))
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, seasons, datasetMeta(h.archive))
}

// GetPlayerCareer returns career totals
// GET /api/v1/players/:id/career
func (h *PlayerHandler) GetPlayerCareer(c *gin.Context) {
	career, err := h.archive.PlayerCareer(c.Param("id"))
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, career, datasetMeta(h.archive))
}

// GetPlayerBoomBust returns the weekly variability summary; season=0 (or
// omitted) uses the full career series
// GET /api/v1/players/:id/boombust?season=2023
func (h *PlayerHandler) GetPlayerBoomBust(c *gin.Context) {
	season, err := optionalSeason(c)
	if err != nil {
		utils.SendValidationError(c, "Invalid season", err.Error())
		return
	}

	summary, err := h.archive.PlayerBoomBust(c.Param("id"), season)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, summary, datasetMeta(h.archive))
}

// GetPlayerGameLog returns one season's normalized weekly rows
// GET /api/v1/players/:id/gamelog?season=2023
func (h *PlayerHandler) GetPlayerGameLog(c *gin.Context) {
	season, err := requiredSeason(c)
	if err != nil {
		utils.SendValidationError(c, "Invalid season", err.Error())
		return
	}

	rows, err := h.archive.PlayerGameLog(c.Param("id"), season)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, rows, datasetMeta(h.archive))
}

// GetPlayerTransactions returns the add/drop/trade history for a player
// GET /api/v1/players/:id/transactions
func (h *PlayerHandler) GetPlayerTransactions(c *gin.Context) {
	entries, err := h.archive.PlayerTransactions(c.Param("id"))
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, entries, datasetMeta(h.archive))
}

// ListPlayers returns a filtered season leaderboard
// GET /api/v1/players?season=2023&position=RB&search=smith
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	season, err := requiredSeason(c)
	if err != nil {
		utils.SendValidationError(c, "Invalid season", err.Error())
		return
	}

	rows, err := h.archive.Leaderboard(season, c.Query("position"), c.Query("search"))
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, rows, datasetMeta(h.archive))
}

func optionalSeason(c *gin.Context) (int, error) {
	raw := c.Query("season")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func requiredSeason(c *gin.Context) (int, error) {
	raw := c.Query("season")
	if raw == "" {
		return 0, errors.New("season parameter required")
	}
	return strconv.Atoi(raw)
}
