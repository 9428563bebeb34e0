package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/snooker/internal/game"
)

const commandTimeout = 5 * time.Second

// runCommand runs fn on the table goroutine and writes a 503 if the table is
// not running. It reports whether fn ran.
func runCommand(c *gin.Context, runner *game.Runner, fn func(*game.Session)) bool {
	ctx, cancel := context.WithTimeout(c.Request.Context(), commandTimeout)
	defer cancel()

	if err := runner.Do(ctx, fn); err != nil {
		log.Printf("[API] Table command failed for %s %s: %v", c.Request.Method, c.FullPath(), err)
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": "Table unavailable"})
		return false
	}
	return true
}
