package game

import (
	"log"

	"github.com/playmatatu/snooker/internal/physics"
)

// ShotState is the state of the aim-and-shoot gesture.
type ShotState string

const (
	ShotIdle   ShotState = "IDLE"
	ShotAiming ShotState = "AIMING"
)

// ShotConfig tunes how a drag gesture maps to an impulse.
type ShotConfig struct {
	CaptureRadius float64 // max pointer distance from the cue ball to start aiming
	MaxPull       float64 // pull-back distance at full power
	MinPull       float64 // releases at or below this distance are cancelled
	MaxForce      float64 // impulse at full power
}

// DefaultShotConfig returns the shot tuning for a ball of the given radius.
func DefaultShotConfig(ballRadius float64) ShotConfig {
	return ShotConfig{
		CaptureRadius: 4 * ballRadius,
		MaxPull:       200,
		MinPull:       5,
		MaxForce:      6,
	}
}

// Gesture is the transient aiming state between press and release.
type Gesture struct {
	Origin   physics.Vec2 `json:"origin"`
	Pointer  physics.Vec2 `json:"pointer"`
	Pull     physics.Vec2 `json:"pull"`
	Distance float64      `json:"distance"`
	Power    float64      `json:"power"`
}

// ShotController turns press, drag and release into a single cue impulse.
type ShotController struct {
	cfg     ShotConfig
	state   ShotState
	gesture *Gesture
}

// NewShotController creates an idle controller.
func NewShotController(cfg ShotConfig) *ShotController {
	return &ShotController{cfg: cfg, state: ShotIdle}
}

func (c *ShotController) State() ShotState  { return c.state }
func (c *ShotController) Config() ShotConfig { return c.cfg }

// Gesture returns a copy of the current gesture, or nil when idle.
func (c *ShotController) Gesture() *Gesture {
	if c.gesture == nil {
		return nil
	}
	g := *c.gesture
	return &g
}

// Begin starts aiming if every ball is at rest and the pointer is close to
// the cue ball. Anything else is ignored.
func (c *ShotController) Begin(pointer, cuePos physics.Vec2, atRest bool) bool {
	if c.state != ShotIdle || !atRest {
		return false
	}
	if pointer.Sub(cuePos).Len() > c.cfg.CaptureRadius {
		return false
	}
	c.state = ShotAiming
	c.gesture = &Gesture{Origin: cuePos, Pointer: cuePos}
	c.Move(pointer)
	return true
}

// Move updates the pull-back vector and power while aiming.
func (c *ShotController) Move(pointer physics.Vec2) {
	if c.state != ShotAiming || c.gesture == nil {
		return
	}
	g := c.gesture
	g.Pointer = pointer
	pull := g.Origin.Sub(pointer)
	dist := pull.Len()
	if dist > c.cfg.MaxPull {
		pull = pull.Mul(c.cfg.MaxPull / dist)
		dist = c.cfg.MaxPull
	}
	g.Pull = pull
	g.Distance = dist
	g.Power = 0
	if c.cfg.MaxPull > 0 {
		g.Power = 100 * dist / c.cfg.MaxPull
	}
}

// Release ends the gesture. It returns the impulse to apply to the cue ball,
// pointing away from the pointer, or false when the pull was too short.
func (c *ShotController) Release(pointer physics.Vec2) (physics.Vec2, bool) {
	if c.state != ShotAiming || c.gesture == nil {
		return physics.Vec2{}, false
	}
	c.Move(pointer)
	g := *c.gesture
	c.Cancel()

	if g.Distance <= c.cfg.MinPull || c.cfg.MaxPull <= 0 {
		log.Printf("[SHOT] Cancelled (pull=%.1f)", g.Distance)
		return physics.Vec2{}, false
	}
	magnitude := g.Distance / c.cfg.MaxPull * c.cfg.MaxForce
	impulse := g.Pull.Mul(magnitude / g.Distance)
	log.Printf("[SHOT] Released power=%.0f%% impulse=(%.3f, %.3f)", g.Power, impulse[0], impulse[1])
	return impulse, true
}

// Cancel discards any gesture in progress.
func (c *ShotController) Cancel() {
	c.state = ShotIdle
	c.gesture = nil
}
