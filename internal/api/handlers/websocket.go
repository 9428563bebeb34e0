package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/snooker/internal/config"
	"github.com/playmatatu/snooker/internal/game"
	"github.com/playmatatu/snooker/internal/middleware"
	"github.com/playmatatu/snooker/internal/ws"
)

// HandleTableWebSocket handles real-time table communication
func HandleTableWebSocket(hub *ws.Hub, runner *game.Runner, cfg *config.Config) gin.HandlerFunc {
	return ws.Handler(hub, runner, middleware.WebSocketOriginCheck(cfg))
}
