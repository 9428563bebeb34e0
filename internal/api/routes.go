package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/snooker/internal/api/handlers"
	"github.com/playmatatu/snooker/internal/config"
	"github.com/playmatatu/snooker/internal/game"
	"github.com/playmatatu/snooker/internal/middleware"
	"github.com/playmatatu/snooker/internal/table"
	"github.com/playmatatu/snooker/internal/ws"
)

// Deps are the long-lived objects the routes are bound to.
type Deps struct {
	Config *config.Config
	Layout *table.Layout
	Shot   game.ShotConfig
	Runner *game.Runner
	Hub    *ws.Hub
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, d Deps) {
	router.Use(middleware.CORSMiddleware(d.Config))

	if d.Config.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(d.Hub))
		v1.GET("/config", handlers.GetConfig(d.Config, d.Shot))

		// Table endpoints
		t := v1.Group("/table")
		{
			t.GET("", handlers.GetTableState(d.Runner))
			t.GET("/layout", handlers.GetLayout(d.Layout))
			t.GET("/settings", handlers.GetSettings(d.Runner))
			t.PUT("/settings", handlers.UpdateSettings(d.Runner))
			t.POST("/reset", handlers.ResetGame(d.Runner))
			t.POST("/cue-ball/reset", handlers.ResetCueBall(d.Runner))
			t.POST("/cue-ball/place", handlers.PlaceCueBall(d.Runner))
			t.GET("/ws", handlers.HandleTableWebSocket(d.Hub, d.Runner, d.Config))
		}
	}
}
