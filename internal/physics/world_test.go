package physics

import (
	"math"
	"testing"

	"github.com/playmatatu/snooker/internal/table"
)

// frictionless returns settings with no drag and no rolling friction.
func frictionless() Settings {
	return Settings{FrictionAir: 0, RollingFriction: 0, Density: 0.001}
}

// newTableWorld builds a world with rails, cushions, pocket sensors and the full rack.
func newTableWorld(s Settings) (*World, *table.Layout, map[string]*Body) {
	l := table.StandardLayout()
	w := NewWorld(s)
	for _, r := range l.Rails {
		w.AddBody(NewStaticRect(r.Name, r))
	}
	for _, c := range l.Cushions {
		w.AddBody(NewStaticRect(c.Name, c))
	}
	for _, p := range l.Pockets {
		w.AddBody(NewSensorCircle("pocket-"+p.Name, p.Position, p.Radius))
	}
	balls := make(map[string]*Body)
	for _, spot := range l.Rack() {
		b := NewBall(spot.Ball, spot.Position, l.BallRadius)
		w.AddBody(b)
		balls[b.Label()] = b
	}
	return w, l, balls
}

func momentum(bodies ...*Body) Vec2 {
	var p Vec2
	for _, b := range bodies {
		p = p.Add(b.Velocity.Mul(b.Mass))
	}
	return p
}

func kineticEnergy(w *World) float64 {
	e := 0.0
	for _, b := range w.Bodies() {
		if !b.Dynamic() {
			continue
		}
		e += 0.5*b.Mass*b.Velocity.LenSqr() + 0.5*b.Inertia*b.AngularVelocity*b.AngularVelocity
	}
	return e
}

func TestBallBallMomentumConserved(t *testing.T) {
	w := NewWorld(frictionless())
	a := NewBall(table.Cue(), Vec2{100, 100}, 10)
	b := NewBall(table.Red(1), Vec2{119, 104}, 10)
	a.Friction, b.Friction = 0, 0
	a.Restitution, b.Restitution = 1, 1
	w.AddBody(a)
	w.AddBody(b)
	a.Velocity = Vec2{6, 1}
	b.Velocity = Vec2{-1, 0.5}

	solid, _ := detect(w.bodies)
	if len(solid) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(solid))
	}

	before := momentum(a, b)
	resolveVelocity(solid[0])
	after := momentum(a, b)

	if !before.ApproxEqualThreshold(after, 1e-9) {
		t.Errorf("momentum changed: before=%v after=%v", before, after)
	}
}

func TestMomentumConservedUnequalMasses(t *testing.T) {
	w := NewWorld(frictionless())
	a := NewBall(table.Cue(), Vec2{0, 0}, 10)
	b := NewBall(table.Red(2), Vec2{24.5, 0}, 15)
	a.Friction, b.Friction = 0, 0
	w.AddBody(a)
	w.AddBody(b)
	a.Velocity = Vec2{5, 0}

	solid, _ := detect(w.bodies)
	if len(solid) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(solid))
	}
	before := momentum(a, b)
	resolveVelocity(solid[0])
	after := momentum(a, b)
	if !before.ApproxEqualThreshold(after, 1e-9) {
		t.Errorf("momentum changed: before=%v after=%v", before, after)
	}
	if a.Velocity[0] >= 0 {
		t.Errorf("lighter ball should rebound off the heavier one, got vx=%.4f", a.Velocity[0])
	}
}

func TestRestitutionBound(t *testing.T) {
	for _, angle := range []float64{0, 0.3, 0.8, 1.2, -0.6} {
		w := NewWorld(DefaultSettings())
		a := NewBall(table.Cue(), Vec2{0, 0}, 10)
		b := NewBall(table.Red(1), Vec2{19 * math.Cos(angle), 19 * math.Sin(angle)}, 10)
		w.AddBody(a)
		w.AddBody(b)
		a.Velocity = Vec2{8, 0}
		b.AngularVelocity = 0.2

		solid, _ := detect(w.bodies)
		if len(solid) != 1 {
			t.Fatalf("angle %.1f: expected 1 contact, got %d", angle, len(solid))
		}
		c := solid[0]
		pre := b.Velocity.Sub(a.Velocity).Dot(c.Normal)
		resolveVelocity(c)
		post := b.Velocity.Sub(a.Velocity).Dot(c.Normal)

		e := combineRestitution(a, b)
		if math.Abs(post) > e*math.Abs(pre)+1e-9 {
			t.Errorf("angle %.1f: post normal speed %.6f exceeds %.3f x %.6f", angle, post, e, pre)
		}
		if post < 0 {
			t.Errorf("angle %.1f: bodies still approaching after resolution (vn=%.6f)", angle, post)
		}
	}
}

func TestFrictionImpulseRespectsCoulombBound(t *testing.T) {
	w := NewWorld(frictionless())
	a := NewBall(table.Cue(), Vec2{0, 0}, 10)
	b := NewBall(table.Red(1), Vec2{14, 14}, 10)
	a.Friction, b.Friction = 0.2, 0.2
	w.AddBody(a)
	w.AddBody(b)
	a.Velocity = Vec2{10, 0}

	solid, _ := detect(w.bodies)
	c := solid[0]
	tangent := Vec2{-c.Normal[1], c.Normal[0]}
	before := momentum(a, b)
	preN := b.Velocity.Sub(a.Velocity).Dot(c.Normal)

	resolveVelocity(c)

	// Impulse delivered to b, split into normal and tangential parts.
	delta := b.Velocity.Mul(b.Mass)
	jn := delta.Dot(c.Normal)
	jt := math.Abs(delta.Dot(tangent))
	if jt > 0.2*jn+1e-9 {
		t.Errorf("tangential impulse %.6f exceeds mu x normal impulse %.6f", jt, 0.2*jn)
	}
	if jn <= 0 || preN >= 0 {
		t.Errorf("expected an approaching pair and a positive normal impulse, got vn=%.4f jn=%.4f", preN, jn)
	}
	if after := momentum(a, b); !before.ApproxEqualThreshold(after, 1e-9) {
		t.Errorf("momentum changed: before=%v after=%v", before, after)
	}
	if b.AngularVelocity == 0 {
		t.Error("an oblique hit with friction should spin the object ball")
	}
}

func TestRollingFrictionStopsBall(t *testing.T) {
	const speed, rolling = 5.0, 0.1
	w := NewWorld(Settings{FrictionAir: 0, RollingFriction: rolling, Density: 0.001})
	b := NewBall(table.Cue(), Vec2{0, 0}, 10)
	w.AddBody(b)
	b.Velocity = Vec2{speed * 0.6, speed * 0.8}

	limit := int(math.Ceil(speed / rolling))
	stoppedAt := -1
	for i := 1; i <= limit; i++ {
		w.Step()
		if b.Speed() == 0 {
			stoppedAt = i
			break
		}
	}
	if stoppedAt < 0 {
		t.Fatalf("ball still moving after %d ticks: speed=%.6f", limit, b.Speed())
	}

	for i := 0; i < 100; i++ {
		w.Step()
		if b.Speed() != 0 || b.AngularVelocity != 0 {
			t.Fatalf("ball crept after stopping: v=%v w=%.6f", b.Velocity, b.AngularVelocity)
		}
	}
}

func TestRollingFrictionIsConstantDeceleration(t *testing.T) {
	w := NewWorld(Settings{FrictionAir: 0, RollingFriction: 0.05, Density: 0.001})
	b := NewBall(table.Cue(), Vec2{0, 0}, 10)
	w.AddBody(b)
	b.Velocity = Vec2{3, 0}

	w.Step()
	first := 3 - b.Speed()
	w.Step()
	second := 3 - first - b.Speed()
	if math.Abs(first-0.05) > 1e-12 || math.Abs(second-0.05) > 1e-12 {
		t.Errorf("expected a constant 0.05 loss per tick, got %.6f then %.6f", first, second)
	}
	if b.Velocity[1] != 0 {
		t.Errorf("direction should be preserved, got %v", b.Velocity)
	}
}

func TestStopThresholdZeroesSlowBall(t *testing.T) {
	w := NewWorld(frictionless())
	b := NewBall(table.Cue(), Vec2{0, 0}, 10)
	w.AddBody(b)
	b.Velocity = Vec2{0.1, 0}
	b.AngularVelocity = 0.3

	w.Step()
	if b.Speed() != 0 || b.AngularVelocity != 0 {
		t.Errorf("expected ball snapped to rest, v=%v w=%.3f", b.Velocity, b.AngularVelocity)
	}
}

func TestAirDragScalesVelocity(t *testing.T) {
	w := NewWorld(Settings{FrictionAir: 0.1, RollingFriction: 0, Density: 0.001})
	b := NewBall(table.Cue(), Vec2{0, 0}, 10)
	w.AddBody(b)
	b.Velocity = Vec2{4, 0}

	w.Step()
	if math.Abs(b.Velocity[0]-3.6) > 1e-12 {
		t.Errorf("expected vx=3.6 after one tick of 10%% drag, got %.6f", b.Velocity[0])
	}
	if math.Abs(b.Position[0]-3.6) > 1e-9 {
		t.Errorf("expected ball to travel 3.6, got x=%.6f", b.Position[0])
	}
}

func TestCushionBounce(t *testing.T) {
	w := NewWorld(frictionless())
	cushion := NewStaticRect("cushion", table.Rect{Min: Vec2{100, -50}, Max: Vec2{115, 50}})
	w.AddBody(cushion)
	b := NewBall(table.Cue(), Vec2{80, 0}, 10)
	w.AddBody(b)
	b.Velocity = Vec2{4, 0}

	for i := 0; i < 20; i++ {
		w.Step()
	}
	if b.Velocity[0] >= 0 {
		t.Fatalf("ball should have rebounded, v=%v", b.Velocity)
	}
	want := 4 * combineRestitution(b, cushion)
	if math.Abs(-b.Velocity[0]-want) > 1e-6 {
		t.Errorf("rebound speed %.6f, want %.6f", -b.Velocity[0], want)
	}
	if b.Position[0]+b.Radius > 100+penetrationSlop+1e-6 {
		t.Errorf("ball left inside cushion at x=%.3f", b.Position[0])
	}
	if cushion.Position != (Vec2{107.5, 0}) {
		t.Errorf("cushion moved to %v", cushion.Position)
	}
}

func TestSensorContactStartFiresOnce(t *testing.T) {
	w := NewWorld(frictionless())
	pocket := NewSensorCircle("pocket", Vec2{50, 0}, 18)
	w.AddBody(pocket)
	b := NewBall(table.Red(3), Vec2{0, 0}, 10)
	w.AddBody(b)
	b.Velocity = Vec2{2, 0}

	var events []ContactEvent
	w.OnContactStart(func(ev ContactEvent) { events = append(events, ev) })

	for i := 0; i < 40; i++ {
		w.Step()
	}

	if len(events) != 1 {
		t.Fatalf("expected exactly one contact-start, got %d", len(events))
	}
	if events[0].Sensor != pocket || events[0].Body != b {
		t.Errorf("unexpected event %+v", events[0])
	}
	if b.Velocity != (Vec2{2, 0}) {
		t.Errorf("sensor must not affect velocity, got %v", b.Velocity)
	}
	if pocket.Position != (Vec2{50, 0}) {
		t.Errorf("sensor moved to %v", pocket.Position)
	}
}

func TestSensorContactRestartsAfterLeaving(t *testing.T) {
	w := NewWorld(frictionless())
	w.AddBody(NewSensorCircle("pocket", Vec2{0, 0}, 5))
	b := NewBall(table.Red(1), Vec2{0, 0}, 1)
	w.AddBody(b)

	count := 0
	w.OnContactStart(func(ContactEvent) { count++ })

	w.Step()
	b.Position = Vec2{100, 0}
	w.Step()
	b.Position = Vec2{0, 0}
	w.Step()

	if count != 2 {
		t.Errorf("expected contact to start twice, got %d", count)
	}
}

func TestSetGlobalPhysicsRederivesMass(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := NewBall(table.Cue(), Vec2{0, 0}, 10)
	cushion := NewStaticRect("c", table.Rect{Max: Vec2{10, 10}})
	w.AddBody(b)
	w.AddBody(cushion)

	w.SetGlobalPhysics(0.05, 0.3, 0.004)

	want := 0.004 * math.Pi * 100
	if math.Abs(b.Mass-want) > 1e-12 || math.Abs(b.InvMass-1/want) > 1e-9 {
		t.Errorf("mass=%.6f inv=%.6f, want %.6f", b.Mass, b.InvMass, want)
	}
	if b.FrictionAir != 0.05 {
		t.Errorf("frictionAir not applied: %.3f", b.FrictionAir)
	}
	if cushion.InvMass != 0 || cushion.FrictionAir != 0 {
		t.Errorf("static body picked up dynamic settings: %+v", cushion)
	}
	if s := w.Settings(); s.RollingFriction != 0.3 {
		t.Errorf("settings not stored: %+v", s)
	}
}

func TestAddRemoveBodyIdempotent(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := NewBall(table.Cue(), Vec2{0, 0}, 10)

	if !w.AddBody(b) || w.AddBody(b) {
		t.Fatal("second add should be a no-op")
	}
	id := b.ID()
	if !w.RemoveBody(b) || w.RemoveBody(b) {
		t.Fatal("second remove should be a no-op")
	}
	if len(w.Bodies()) != 0 {
		t.Errorf("expected empty world, got %d bodies", len(w.Bodies()))
	}
	w.AddBody(b)
	if b.ID() != id {
		t.Errorf("re-added body changed id %d -> %d", id, b.ID())
	}
	if w.ApplyImpulse(NewBall(table.Red(1), Vec2{}, 10), Vec2{1, 0}) {
		t.Error("impulse on a body outside the world should be rejected")
	}
}

func TestAllAtRest(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := NewBall(table.Cue(), Vec2{0, 0}, 10)
	w.AddBody(b)

	if !w.AllAtRest(StopSpeed) {
		t.Error("AllAtRest should be true when nothing moves")
	}
	w.ApplyImpulse(b, Vec2{0.1, 0})
	if w.AllAtRest(StopSpeed) {
		t.Errorf("AllAtRest should be false at speed %.3f", b.Speed())
	}
}

func TestBreakShotScattersAndSettles(t *testing.T) {
	w, l, balls := newTableWorld(DefaultSettings())
	cue := balls["cue"]
	apex := balls["red-1"]

	// The pink sits on the line between the baulk end and the apex.
	w.RemoveBody(balls["pink"])
	delete(balls, "pink")
	cue.Position = apex.Position.Sub(Vec2{200, 0})

	dir := normalize(apex.Position.Sub(cue.Position))
	w.ApplyImpulse(cue, dir.Mul(18*cue.Mass))

	energy := kineticEnergy(w)
	settled := false
	for i := 0; i < 5000; i++ {
		w.Step()
		e := kineticEnergy(w)
		if e > energy*(1+1e-9)+1e-12 {
			t.Fatalf("tick %d: kinetic energy grew from %.9f to %.9f", i, energy, e)
		}
		energy = e
		if w.AllAtRest(StopSpeed) {
			settled = true
			break
		}
	}
	if !settled {
		t.Fatal("balls did not come to rest")
	}

	moved := 0
	for _, spot := range l.Reds {
		b := balls[spot.Ball.String()]
		if b.Position.Sub(spot.Position).Len() > l.BallRadius {
			moved++
		}
	}
	if moved < 3 {
		t.Errorf("expected the break to scatter at least 3 reds, got %d", moved)
	}

	for label, b := range balls {
		p := b.Position
		if p[0] < 0 || p[0] > l.Width || p[1] < 0 || p[1] > l.Height {
			t.Errorf("%s escaped the table at %v", label, p)
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() map[string]Vec2 {
		w, _, balls := newTableWorld(DefaultSettings())
		w.ApplyImpulse(balls["cue"], Vec2{15 * balls["cue"].Mass, 0.7 * balls["cue"].Mass})
		for i := 0; i < 600; i++ {
			w.Step()
		}
		out := make(map[string]Vec2)
		for label, b := range balls {
			out[label] = b.Position
		}
		return out
	}

	first, second := run(), run()
	for label, p := range first {
		if second[label] != p {
			t.Errorf("non-deterministic: %s run1=%v run2=%v", label, p, second[label])
		}
	}
}
