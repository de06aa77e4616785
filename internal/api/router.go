package api

import (
	"github.com/gin-gonic/gin"

	"github.com/gridironlabs/league-archive/internal/api/handlers"
	"github.com/gridironlabs/league-archive/internal/api/middleware"
	"github.com/gridironlabs/league-archive/internal/services"
	"github.com/gridironlabs/league-archive/pkg/config"
)

// SetupRouter wires the middleware chain and every API route.
func SetupRouter(
	cfg *config.Config,
	archive *services.ArchiveService,
	prefs *services.PreferencesService,
	refresher *services.RefresherService,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))
	router.Use(middleware.RateLimit(cfg.RequestsPerSecond, cfg.RequestBurst))

	playerHandler := handlers.NewPlayerHandler(archive)
	leagueHandler := handlers.NewLeagueHandler(archive)
	prefsHandler := handlers.NewPreferencesHandler(prefs, archive)
	healthHandler := handlers.NewHealthHandler(archive, refresher)

	router.GET("/health", healthHandler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", healthHandler.GetStatus)
		v1.POST("/refresh", healthHandler.TriggerRefresh)

		players := v1.Group("/players")
		{
			players.GET("", playerHandler.ListPlayers)
			players.GET("/:id", playerHandler.GetPlayer)
			players.GET("/:id/seasons", playerHandler.GetPlayerSeasons)
			players.GET("/:id/career", playerHandler.GetPlayerCareer)
			players.GET("/:id/boombust", playerHandler.GetPlayerBoomBust)
			players.GET("/:id/gamelog", playerHandler.GetPlayerGameLog)
			players.GET("/:id/transactions", playerHandler.GetPlayerTransactions)
		}

		league := v1.Group("/league")
		{
			league.GET("/seasons", leagueHandler.ListSeasons)
			league.GET("/seasons/:season", leagueHandler.GetSeasonSummary)
			league.GET("/standings", leagueHandler.GetStandings)
			league.GET("/headtohead", leagueHandler.GetHeadToHead)
		}

		preferences := v1.Group("/preferences")
		{
			preferences.GET("/:clientId", prefsHandler.GetPreferences)
			preferences.PUT("/:clientId", prefsHandler.UpdatePreferences)
			preferences.DELETE("/:clientId", prefsHandler.ResetPreferences)
		}
	}

	return router
}
