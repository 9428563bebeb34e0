package physics

import "math"

// applyFriction runs once per tick after notifications. Slow balls are
// snapped to rest; faster balls lose a constant amount of speed.
func (w *World) applyFriction() {
	rolling := w.settings.RollingFriction
	for _, b := range w.bodies {
		if !b.Dynamic() {
			continue
		}
		speed := b.Speed()
		switch {
		case speed > 0 && speed < w.StopSpeed:
			b.Stop()
		case rolling > 0 && speed >= w.StopSpeed:
			next := math.Max(speed-rolling, 0)
			if next == 0 {
				b.Stop()
				continue
			}
			b.Velocity = b.Velocity.Mul(next / speed)
		}
	}
}
