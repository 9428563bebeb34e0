package physics

// Settings are the global coefficients applied to every dynamic body.
type Settings struct {
	FrictionAir     float64 `json:"friction_air"`
	RollingFriction float64 `json:"rolling_friction"`
	Density         float64 `json:"density"`
}

// DefaultSettings returns the coefficients the table starts with.
func DefaultSettings() Settings {
	return Settings{
		FrictionAir:     0.01,
		RollingFriction: 0.02,
		Density:         0.001,
	}
}

const (
	// StopSpeed is the speed below which a ball is snapped to rest.
	StopSpeed = 0.15

	MaxSubsteps      = 8
	SolverIterations = 4

	penetrationSlop    = 0.01
	penetrationPercent = 0.8
)

// ContactEvent is raised when a body starts touching a sensor.
type ContactEvent struct {
	Sensor *Body
	Body   *Body
	Tick   uint64
}

// ContactListener receives contact-start events synchronously during Step.
type ContactListener func(ContactEvent)

type sensorPair struct {
	sensor, body int
}

// World holds every body and advances them one tick at a time.
// It is not safe for concurrent use.
type World struct {
	bodies    []*Body
	nextID    int
	settings  Settings
	tick      uint64
	touching  map[sensorPair]bool
	listeners []ContactListener

	// StopSpeed is the rest threshold used by the friction pass.
	StopSpeed float64
}

// NewWorld creates an empty world with the given settings.
func NewWorld(s Settings) *World {
	return &World{
		settings:  s,
		touching:  make(map[sensorPair]bool),
		StopSpeed: StopSpeed,
	}
}

// AddBody adds b to the world, applying the global settings to it if it is
// dynamic. Adding a body that is already present does nothing.
func (w *World) AddBody(b *Body) bool {
	if b == nil || w.Contains(b) {
		return false
	}
	if b.id == 0 {
		w.nextID++
		b.id = w.nextID
	}
	if b.Dynamic() {
		b.FrictionAir = w.settings.FrictionAir
	}
	b.setDensity(w.settings.Density)
	w.bodies = append(w.bodies, b)
	return true
}

// RemoveBody removes b. Removing an absent body does nothing.
func (w *World) RemoveBody(b *Body) bool {
	for i, other := range w.bodies {
		if other != b {
			continue
		}
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		for pair := range w.touching {
			if pair.body == b.id || pair.sensor == b.id {
				delete(w.touching, pair)
			}
		}
		return true
	}
	return false
}

// Contains reports whether b is currently in the world.
func (w *World) Contains(b *Body) bool {
	for _, other := range w.bodies {
		if other == b {
			return true
		}
	}
	return false
}

// Bodies returns the bodies in insertion order. The slice is a copy.
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Settings returns the current global coefficients.
func (w *World) Settings() Settings { return w.settings }

// Tick returns the number of steps taken.
func (w *World) Tick() uint64 { return w.tick }

// SetGlobalPhysics applies new coefficients to every dynamic body at once,
// re-deriving mass from density x area. Values are not validated.
func (w *World) SetGlobalPhysics(frictionAir, rollingFriction, density float64) {
	w.settings = Settings{
		FrictionAir:     frictionAir,
		RollingFriction: rollingFriction,
		Density:         density,
	}
	for _, b := range w.bodies {
		if !b.Dynamic() {
			continue
		}
		b.FrictionAir = frictionAir
		b.setDensity(density)
	}
}

// OnContactStart registers a listener for sensor contact-start events.
func (w *World) OnContactStart(fn ContactListener) {
	w.listeners = append(w.listeners, fn)
}

// ApplyImpulse changes the body's momentum by j, applied at its centre.
func (w *World) ApplyImpulse(b *Body, j Vec2) bool {
	if b == nil || !b.Dynamic() || !w.Contains(b) {
		return false
	}
	if !finite(j[0]) || !finite(j[1]) {
		return false
	}
	b.Velocity = b.Velocity.Add(j.Mul(b.InvMass))
	return true
}

// AllAtRest reports whether every dynamic body moves slower than threshold.
func (w *World) AllAtRest(threshold float64) bool {
	for _, b := range w.bodies {
		if b.Dynamic() && b.Speed() >= threshold {
			return false
		}
	}
	return true
}
