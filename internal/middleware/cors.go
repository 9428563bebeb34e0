package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/snooker/internal/config"
)

// CORSMiddleware returns a CORS middleware configured for the environment
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	log.Printf("[CORS] Environment: %s, FrontendURL: %s", cfg.Environment, cfg.FrontendURL)

	corsConfig := cors.Config{
		AllowMethods: []string{
			"GET", "POST", "PUT", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Accept",
			"Cache-Control", "X-Requested-With",
		},
		MaxAge: 12 * time.Hour, // Cache preflight responses
	}

	corsConfig.AllowOrigins = AllowedOrigins(cfg)
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		log.Println("[CORS] No frontend configured; allowing all origins")
	} else {
		log.Printf("[CORS] Allowed origins: %v", corsConfig.AllowOrigins)
	}

	return cors.New(corsConfig)
}

// AllowedOrigins lists the browser origins that may drive the table.
func AllowedOrigins(cfg *config.Config) []string {
	var origins []string
	if cfg.Environment == "development" {
		origins = []string{
			"http://localhost:5173", // Vite dev server
			"http://127.0.0.1:5173",
		}
	}
	if cfg.FrontendURL != "" && !contains(origins, cfg.FrontendURL) {
		origins = append(origins, cfg.FrontendURL)
	}
	return origins
}

// WebSocketOriginCheck returns an origin check for the websocket upgrader.
func WebSocketOriginCheck(cfg *config.Config) func(r *http.Request) bool {
	allowed := AllowedOrigins(cfg)
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // non-browser clients
		}
		if cfg.Environment == "development" &&
			(strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")) {
			return true
		}
		return contains(allowed, origin)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
