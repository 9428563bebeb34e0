package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/snooker/internal/ws"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck reports uptime and how many table viewers are connected.
func HealthCheck(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "snooker-table",
			"version": version,
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"clients": hub.ClientCount(),
		})
	}
}
