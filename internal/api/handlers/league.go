package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gridironlabs/league-archive/internal/services"
	"github.com/gridironlabs/league-archive/pkg/utils"
)

type LeagueHandler struct {
	archive *services.ArchiveService
}

func NewLeagueHandler(archive *services.ArchiveService) *LeagueHandler {
	return &LeagueHandler{archive: archive}
}

// ListSeasons returns every season present in the archive, ascending
// GET /api/v1/league/seasons
func (h *LeagueHandler) ListSeasons(c *gin.Context) {
	seasons, err := h.archive.Seasons()
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccess(c, seasons)
}

// GetSeasonSummary returns the champion/runner-up summary for one season
// GET /api/v1/league/seasons/:season
func (h *LeagueHandler) GetSeasonSummary(c *gin.Context) {
	season, err := pathSeason(c)
	if err != nil {
		utils.SendValidationError(c, "Invalid season", err.Error())
		return
	}

	summary, err := h.archive.SeasonSummary(season)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, summary, datasetMeta(h.archive))
}

// GetStandings returns the all-time owner standings across every season
// GET /api/v1/league/standings
func (h *LeagueHandler) GetStandings(c *gin.Context) {
	standings, err := h.archive.AllTimeStandings()
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, standings, datasetMeta(h.archive))
}

// GetHeadToHead returns the full matchup record between two owners
// GET /api/v1/league/headtohead?a=Alice&b=Bob
func (h *LeagueHandler) GetHeadToHead(c *gin.Context) {
	ownerA := c.Query("a")
	ownerB := c.Query("b")
	if ownerA == "" || ownerB == "" {
		utils.SendValidationError(c, "Missing owners", "Both 'a' and 'b' query parameters are required")
		return
	}

	record, err := h.archive.HeadToHead(ownerA, ownerB)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, record, datasetMeta(h.archive))
}

func pathSeason(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("season"))
}
