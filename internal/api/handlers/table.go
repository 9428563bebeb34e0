package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/snooker/internal/game"
	"github.com/playmatatu/snooker/internal/physics"
	"github.com/playmatatu/snooker/internal/table"
)

// GetTableState returns the current snapshot.
func GetTableState(runner *game.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var snap game.Snapshot
		if !runCommand(c, runner, func(s *game.Session) { snap = s.Snapshot() }) {
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// GetLayout returns the table geometry. It never changes, so no round trip
// to the table goroutine is needed.
func GetLayout(layout *table.Layout) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, layout)
	}
}

// GetSettings returns the global physics coefficients.
func GetSettings(runner *game.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings physics.Settings
		if !runCommand(c, runner, func(s *game.Session) { settings = s.Settings() }) {
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// UpdateSettings replaces the global physics coefficients.
func UpdateSettings(runner *game.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FrictionAir     *float64 `json:"friction_air" binding:"required"`
			RollingFriction *float64 `json:"rolling_friction" binding:"required"`
			Density         *float64 `json:"density" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request. friction_air, rolling_friction and density required.",
			})
			return
		}

		settings := physics.Settings{
			FrictionAir:     *req.FrictionAir,
			RollingFriction: *req.RollingFriction,
			Density:         *req.Density,
		}
		if msg := validateSettings(settings); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		if !runCommand(c, runner, func(s *game.Session) { s.SetPhysics(settings) }) {
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// validateSettings rejects values the settings sliders could never produce.
func validateSettings(s physics.Settings) string {
	switch {
	case s.FrictionAir < 0 || s.FrictionAir >= 1:
		return "friction_air must be in [0, 1)"
	case s.RollingFriction < 0:
		return "rolling_friction must not be negative"
	case s.Density <= 0:
		return "density must be positive"
	}
	return ""
}

// ResetGame re-racks the table.
func ResetGame(runner *game.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var snap game.Snapshot
		if !runCommand(c, runner, func(s *game.Session) {
			s.ResetGame()
			snap = s.Snapshot()
		}) {
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// ResetCueBall returns the cue ball to its start spot.
func ResetCueBall(runner *game.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var snap game.Snapshot
		if !runCommand(c, runner, func(s *game.Session) {
			s.ResetCueBall()
			snap = s.Snapshot()
		}) {
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// PlaceCueBall places the cue ball in hand.
func PlaceCueBall(runner *game.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			X *float64 `json:"x" binding:"required"`
			Y *float64 `json:"y" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. x and y required."})
			return
		}

		var (
			snap     game.Snapshot
			placeErr error
		)
		if !runCommand(c, runner, func(s *game.Session) {
			placeErr = s.PlaceCueBall(physics.Vec2{*req.X, *req.Y})
			snap = s.Snapshot()
		}) {
			return
		}

		switch {
		case errors.Is(placeErr, game.ErrCueBallInPlay):
			c.JSON(http.StatusConflict, gin.H{"error": placeErr.Error()})
		case errors.Is(placeErr, game.ErrInvalidPlacement):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": placeErr.Error()})
		case placeErr != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": placeErr.Error()})
		default:
			c.JSON(http.StatusOK, snap)
		}
	}
}
