package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/playmatatu/snooker/internal/physics"
)

type Config struct {
	// Environment
	Environment string

	// Redis (empty disables event publishing)
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Simulation
	TickRate        int // ticks per second
	FrictionAir     float64
	RollingFriction float64
	BallDensity     float64

	// Shot
	MaxShotForce    float64
	MaxPullDistance float64
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	defaults := physics.DefaultSettings()
	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Simulation
		TickRate:        getEnvInt("TICK_RATE", 60),
		FrictionAir:     getEnvFloat("FRICTION_AIR", defaults.FrictionAir),
		RollingFriction: getEnvFloat("ROLLING_FRICTION", defaults.RollingFriction),
		BallDensity:     getEnvFloat("BALL_DENSITY", defaults.Density),

		// Shot
		MaxShotForce:    getEnvFloat("MAX_SHOT_FORCE", 6),
		MaxPullDistance: getEnvFloat("MAX_PULL_DISTANCE", 200),
	}
}

// TickInterval is the wall-clock time between simulation ticks.
func (c *Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// PhysicsSettings returns the initial global coefficients.
func (c *Config) PhysicsSettings() physics.Settings {
	return physics.Settings{
		FrictionAir:     c.FrictionAir,
		RollingFriction: c.RollingFriction,
		Density:         c.BallDensity,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
