package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/snooker/internal/config"
	"github.com/playmatatu/snooker/internal/game"
)

// GetConfig returns the values the renderer needs to draw the aim line and
// power meter.
func GetConfig(cfg *config.Config, shot game.ShotConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tick_rate":      cfg.TickRate,
			"capture_radius": shot.CaptureRadius,
			"max_pull":       shot.MaxPull,
			"min_pull":       shot.MinPull,
			"max_force":      shot.MaxForce,
		})
	}
}
