package physics

import "math"

// Step advances the world by one tick: integrate, resolve collisions, notify
// sensor contacts, then apply the friction pass.
func (w *World) Step() {
	w.tick++
	w.applyDrag()

	n := w.substeps()
	h := 1 / float64(n)

	var hits []ContactEvent
	seen := make(map[sensorPair]bool)
	for i := 0; i < n; i++ {
		w.integrate(h)
		solid, sensors := detect(w.bodies)
		resolve(solid)
		for _, c := range sensors {
			ev := sensorEvent(c, w.tick)
			key := sensorPair{sensor: ev.Sensor.id, body: ev.Body.id}
			if seen[key] {
				continue
			}
			seen[key] = true
			hits = append(hits, ev)
		}
	}

	w.notify(hits, seen)
	w.applyFriction()
}

// applyDrag scales each dynamic body's velocities by (1 - frictionAir).
func (w *World) applyDrag() {
	for _, b := range w.bodies {
		if !b.Dynamic() {
			continue
		}
		k := 1 - b.FrictionAir
		b.Velocity = b.Velocity.Mul(k)
		b.AngularVelocity *= k
	}
}

// substeps splits the tick so no ball travels more than half its radius per substep.
func (w *World) substeps() int {
	maxSpeed, minRadius := 0.0, math.Inf(1)
	for _, b := range w.bodies {
		if !b.Dynamic() {
			continue
		}
		maxSpeed = math.Max(maxSpeed, b.Speed())
		if b.Radius > 0 {
			minRadius = math.Min(minRadius, b.Radius)
		}
	}
	if maxSpeed == 0 || math.IsInf(minRadius, 1) {
		return 1
	}
	n := int(math.Ceil(maxSpeed / (0.5 * minRadius)))
	return max(1, min(n, MaxSubsteps))
}

func (w *World) integrate(h float64) {
	for _, b := range w.bodies {
		if !b.Dynamic() {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Mul(h))
		b.Angle += b.AngularVelocity * h
	}
}

func sensorEvent(c contact, tick uint64) ContactEvent {
	if c.A.Sensor {
		return ContactEvent{Sensor: c.A, Body: c.B, Tick: tick}
	}
	return ContactEvent{Sensor: c.B, Body: c.A, Tick: tick}
}

// notify raises contact-start for sensor pairs that were not touching on the
// previous tick. Listeners may remove bodies; events for bodies removed by an
// earlier listener call are dropped.
func (w *World) notify(hits []ContactEvent, current map[sensorPair]bool) {
	var started []ContactEvent
	for _, ev := range hits {
		if !w.touching[sensorPair{sensor: ev.Sensor.id, body: ev.Body.id}] {
			started = append(started, ev)
		}
	}
	w.touching = current

	for _, ev := range started {
		if !w.Contains(ev.Body) {
			continue
		}
		for _, fn := range w.listeners {
			fn(ev)
		}
	}
}
