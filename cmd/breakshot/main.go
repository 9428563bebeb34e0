// Command breakshot plays a single break shot without a browser and logs what
// was potted. Useful for tuning the physics settings from the environment.
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/playmatatu/snooker/internal/config"
	"github.com/playmatatu/snooker/internal/game"
	"github.com/playmatatu/snooker/internal/physics"
	"github.com/playmatatu/snooker/internal/table"
)

func main() {
	pull := flag.Float64("pull", 200, "pull-back distance")
	target := flag.String("target", "red-11", "ball to aim at")
	offset := flag.Float64("offset", 0, "vertical aim offset at the target")
	maxTicks := flag.Int("ticks", 10000, "give up after this many ticks")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	layout := table.StandardLayout()
	shot := game.DefaultShotConfig(layout.BallRadius)
	shot.MaxForce = cfg.MaxShotForce
	shot.MaxPull = cfg.MaxPullDistance
	s := game.NewSession(layout, cfg.PhysicsSettings(), shot)

	id, err := table.ParseBallID(*target)
	if err != nil || id.IsCue() {
		log.Fatalf("Invalid target %q", *target)
	}
	var aim physics.Vec2
	for _, spot := range layout.Rack() {
		if spot.Ball == id {
			aim = spot.Position.Add(physics.Vec2{0, *offset})
		}
	}

	// Pull back along the line from the target through the cue ball.
	cue := s.CueBall().Position
	dir := aim.Sub(cue).Normalize()
	pointer := cue.Sub(dir.Mul(*pull))

	if !s.PointerDown(cue) {
		log.Fatal("Table is not ready for a shot")
	}
	s.PointerMove(pointer)
	j, ok := s.PointerUp(pointer)
	if !ok {
		log.Fatalf("Shot cancelled (pull=%.1f)", *pull)
	}
	log.Printf("Break at %s: impulse=(%.3f, %.3f)", id, j[0], j[1])

	ticks := 0
	for s.Moving() && ticks < *maxTicks {
		s.Step()
		ticks++
	}
	if s.Moving() {
		log.Printf("Table still moving after %d ticks", ticks)
	} else {
		log.Printf("Table settled after %d ticks", ticks)
	}

	for _, e := range s.DrainEvents() {
		switch e.Type {
		case game.EventBallPotted, game.EventCuePotted:
			log.Printf("  tick %5d  %-8s -> %s", e.Tick, e.Ball, e.Pocket.Name)
		}
	}
	log.Printf("Potted: %v  cue ball in hand: %v", s.Potted(), s.CueBallInHand())
}
