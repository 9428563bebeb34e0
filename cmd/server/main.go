package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/playmatatu/snooker/internal/api"
	"github.com/playmatatu/snooker/internal/config"
	"github.com/playmatatu/snooker/internal/game"
	"github.com/playmatatu/snooker/internal/redis"
	"github.com/playmatatu/snooker/internal/table"
	"github.com/playmatatu/snooker/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build the table
	layout := table.StandardLayout()
	shot := game.DefaultShotConfig(layout.BallRadius)
	shot.MaxForce = cfg.MaxShotForce
	shot.MaxPull = cfg.MaxPullDistance
	session := game.NewSession(layout, cfg.PhysicsSettings(), shot)

	// Initialize Redis (optional)
	var publisher game.Publisher
	hub := ws.NewHub()
	if cfg.RedisURL != "" {
		rdb, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		publisher = redis.NewEventPublisher(rdb)
		ws.StartEventRelay(ctx, rdb, hub)
	} else {
		log.Println("[EVENTS] REDIS_URL not set; table events will not be published")
	}

	events := make(chan game.Event, game.EventQueueSize)
	game.StartEventWorker(ctx, publisher, events)

	runner := game.NewRunner(session, cfg.TickInterval(), hub, events)
	go hub.Run(ctx)
	go runner.Run(ctx)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	api.SetupRoutes(router, api.Deps{
		Config: cfg,
		Layout: layout,
		Shot:   shot,
		Runner: runner,
		Hub:    hub,
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	go func() {
		log.Printf("Starting snooker table server on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
}
