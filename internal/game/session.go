package game

import (
	"errors"
	"log"
	"time"

	"github.com/playmatatu/snooker/internal/physics"
	"github.com/playmatatu/snooker/internal/table"
)

// RestSpeed is the speed below which a ball counts as stopped for shot gating.
const RestSpeed = physics.StopSpeed

var (
	ErrCueBallInPlay    = errors.New("cue ball is not in hand")
	ErrInvalidPlacement = errors.New("invalid cue ball position")
)

// Session is one table: the world, its balls, the cue and the pot history.
// It is not safe for concurrent use; Runner serialises access to it.
type Session struct {
	layout  *table.Layout
	world   *physics.World
	shot    *ShotController
	pockets *Pocketing
	cue     *physics.Body

	moving  bool
	pending []Event
}

// NewSession builds the table from layout and racks the balls.
func NewSession(layout *table.Layout, settings physics.Settings, shot ShotConfig) *Session {
	s := &Session{
		layout: layout,
		world:  physics.NewWorld(settings),
		shot:   NewShotController(shot),
	}
	s.pockets = NewPocketing(s.world, s.emit)

	for _, r := range layout.Rails {
		s.world.AddBody(physics.NewStaticRect(r.Name, r))
	}
	for _, r := range layout.Cushions {
		s.world.AddBody(physics.NewStaticRect(r.Name, r))
	}
	for _, p := range layout.Pockets {
		s.pockets.AddPocket(p)
	}
	s.rack()
	return s
}

func (s *Session) Layout() *table.Layout      { return s.layout }
func (s *Session) World() *physics.World      { return s.world }
func (s *Session) Shot() *ShotController      { return s.shot }
func (s *Session) CueBall() *physics.Body     { return s.cue }
func (s *Session) Settings() physics.Settings { return s.world.Settings() }

func (s *Session) rack() {
	for _, spot := range s.layout.Rack() {
		b := physics.NewBall(spot.Ball, spot.Position, s.layout.BallRadius)
		if spot.Ball.IsCue() {
			s.cue = b
		}
		s.world.AddBody(b)
	}
}

func (s *Session) emit(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	if e.Tick == 0 {
		e.Tick = s.world.Tick()
	}
	s.pending = append(s.pending, e)
}

// DrainEvents returns and clears the events raised since the last call.
func (s *Session) DrainEvents() []Event {
	out := s.pending
	s.pending = nil
	return out
}

// Step advances the simulation by one tick.
func (s *Session) Step() {
	s.world.Step()
	if s.moving && s.AllAtRest() {
		s.moving = false
		s.emit(Event{Type: EventTableSettled})
	}
}

// Moving reports whether a shot is still settling.
func (s *Session) Moving() bool { return s.moving }

// AllAtRest reports whether every ball on the table is slower than RestSpeed.
func (s *Session) AllAtRest() bool {
	return s.world.AllAtRest(RestSpeed)
}

// PointerDown starts aiming when the table is at rest and the pointer is near
// the cue ball. It reports whether aiming started.
func (s *Session) PointerDown(p physics.Vec2) bool {
	if !s.world.Contains(s.cue) {
		return false
	}
	return s.shot.Begin(p, s.cue.Position, s.AllAtRest())
}

func (s *Session) PointerMove(p physics.Vec2) {
	s.shot.Move(p)
}

// PointerUp releases the shot and strikes the cue ball. It returns the applied
// impulse, or false when the shot was cancelled.
func (s *Session) PointerUp(p physics.Vec2) (physics.Vec2, bool) {
	j, ok := s.shot.Release(p)
	if !ok {
		return physics.Vec2{}, false
	}
	if !s.world.ApplyImpulse(s.cue, j) {
		return physics.Vec2{}, false
	}
	s.moving = true
	power := 0.0
	if f := s.shot.Config().MaxForce; f > 0 {
		power = 100 * j.Len() / f
	}
	s.emit(Event{Type: EventShot, Power: power})
	return j, true
}

// ResetCueBall puts the cue ball back on its start spot at rest. It can be
// called whether or not the cue ball is on the table. If another ball covers
// the spot, the cue ball goes to the nearest free point along the baulk line
// inside the D.
func (s *Session) ResetCueBall() {
	s.cue.Position = s.freeCueSpot()
	s.cue.Stop()
	s.cue.Angle = 0
	s.shot.Cancel()
	s.world.AddBody(s.cue)
	s.pockets.clearCueInHand()
	s.emit(Event{Type: EventCueReset})
	log.Printf("[TABLE] Cue ball reset to (%.0f, %.0f)", s.cue.Position[0], s.cue.Position[1])
}

// ResetGame removes every ball and re-racks the table.
func (s *Session) ResetGame() {
	for _, b := range s.world.Bodies() {
		if b.Dynamic() {
			s.world.RemoveBody(b)
		}
	}
	s.shot.Cancel()
	s.pockets.reset()
	s.rack()
	s.moving = false
	s.emit(Event{Type: EventGameReset})
	log.Printf("[TABLE] Game reset")
}

// PlaceCueBall puts the cue ball in hand back on the cloth at p.
func (s *Session) PlaceCueBall(p physics.Vec2) error {
	if !s.pockets.CueBallInHand() || s.world.Contains(s.cue) {
		return ErrCueBallInPlay
	}
	if !s.layout.OnCloth(p, s.cue.Radius) || s.layout.NearPocket(p, s.cue.Radius) {
		return ErrInvalidPlacement
	}
	if s.overlapsBall(p) {
		return ErrInvalidPlacement
	}

	s.cue.Position = p
	s.cue.Stop()
	s.world.AddBody(s.cue)
	s.pockets.clearCueInHand()
	s.emit(Event{Type: EventCuePlaced})
	log.Printf("[TABLE] Cue ball placed at (%.0f, %.0f)", p[0], p[1])
	return nil
}

// overlapsBall reports whether the cue ball at p would overlap another ball.
func (s *Session) overlapsBall(p physics.Vec2) bool {
	for _, b := range s.world.Bodies() {
		if !b.Dynamic() || b == s.cue {
			continue
		}
		if p.Sub(b.Position).Len() < s.cue.Radius+b.Radius {
			return true
		}
	}
	return false
}

// freeCueSpot returns the cue spot, or the closest clear point to it on a
// line through the spot parallel to the baulk line, staying inside the D.
func (s *Session) freeCueSpot() physics.Vec2 {
	spot := s.layout.CueSpot
	if !s.overlapsBall(spot) {
		return spot
	}
	step := 2.2 * s.cue.Radius
	for k := 1; float64(k)*step <= 2*s.layout.DRadius; k++ {
		for _, dir := range []float64{1, -1} {
			p := spot.Add(physics.Vec2{0, dir * float64(k) * step})
			if !s.layout.InD(p) || !s.layout.OnCloth(p, s.cue.Radius) {
				continue
			}
			if !s.overlapsBall(p) {
				return p
			}
		}
	}
	return spot
}

// SetPhysics applies new global coefficients to every ball.
func (s *Session) SetPhysics(settings physics.Settings) {
	s.world.SetGlobalPhysics(settings.FrictionAir, settings.RollingFriction, settings.Density)
	s.emit(Event{Type: EventSettings})
	log.Printf("[TABLE] Physics updated: frictionAir=%.4f rollingFriction=%.4f density=%.4f",
		settings.FrictionAir, settings.RollingFriction, settings.Density)
}

// Potted returns the potted object balls in pot order.
func (s *Session) Potted() []table.BallID { return s.pockets.Potted() }

func (s *Session) CueBallInHand() bool { return s.pockets.CueBallInHand() }

// Snapshot returns a copy of everything a renderer needs.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:          s.world.Tick(),
		Balls:         []BallState{},
		ShotState:     s.shot.State(),
		Gesture:       s.shot.Gesture(),
		Potted:        s.Potted(),
		CueBallInHand: s.CueBallInHand(),
		AtRest:        s.AllAtRest(),
		Settings:      s.world.Settings(),
	}
	if snap.Gesture != nil {
		snap.Power = snap.Gesture.Power
	}
	for _, b := range s.world.Bodies() {
		if !b.Dynamic() {
			continue
		}
		snap.Balls = append(snap.Balls, BallState{
			Ball:            b.Ball,
			Position:        b.Position,
			Velocity:        b.Velocity,
			Angle:           b.Angle,
			AngularVelocity: b.AngularVelocity,
			Radius:          b.Radius,
		})
	}
	return snap
}
