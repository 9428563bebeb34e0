package physics

import (
	"math"

	"github.com/playmatatu/snooker/internal/table"
)

// Shape is the collision shape of a body.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeRect
)

// Default material coefficients.
const (
	BallRestitution    = 0.95
	BallFriction       = 0.05
	CushionRestitution = 0.8
	CushionFriction    = 0.1
)

// Body is a rigid disc or a static axis-aligned rectangle.
type Body struct {
	id   int
	Name string
	Ball table.BallID

	Shape       Shape
	Radius      float64
	HalfExtents Vec2

	Position        Vec2
	Velocity        Vec2
	Angle           float64
	AngularVelocity float64

	Mass       float64
	InvMass    float64
	Inertia    float64
	InvInertia float64

	Restitution float64
	Friction    float64
	FrictionAir float64

	Static bool
	Sensor bool
}

// NewBall creates a dynamic ball body. Mass is derived when it is added to a world.
func NewBall(id table.BallID, pos Vec2, radius float64) *Body {
	return &Body{
		Name:        id.String(),
		Ball:        id,
		Shape:       ShapeCircle,
		Radius:      radius,
		Position:    pos,
		Restitution: BallRestitution,
		Friction:    BallFriction,
	}
}

// NewStaticRect creates an immovable rectangle, such as a cushion or rail.
func NewStaticRect(name string, r table.Rect) *Body {
	return &Body{
		Name:        name,
		Shape:       ShapeRect,
		HalfExtents: r.HalfExtents(),
		Position:    r.Center(),
		Restitution: CushionRestitution,
		Friction:    CushionFriction,
		Static:      true,
	}
}

// NewSensorCircle creates a circle that reports contacts but never collides.
func NewSensorCircle(name string, pos Vec2, radius float64) *Body {
	return &Body{
		Name:     name,
		Shape:    ShapeCircle,
		Radius:   radius,
		Position: pos,
		Static:   true,
		Sensor:   true,
	}
}

// ID is the handle assigned by the world, or 0 if the body was never added.
func (b *Body) ID() int { return b.id }

// Label is the ball label for balls and the name for everything else.
func (b *Body) Label() string {
	if !b.Ball.IsZero() {
		return b.Ball.String()
	}
	return b.Name
}

// Dynamic reports whether the body moves and receives forces.
func (b *Body) Dynamic() bool { return !b.Static && !b.Sensor }

// Speed is the magnitude of the linear velocity.
func (b *Body) Speed() float64 { return b.Velocity.Len() }

// Area of the body's shape.
func (b *Body) Area() float64 {
	if b.Shape == ShapeRect {
		return 4 * b.HalfExtents[0] * b.HalfExtents[1]
	}
	return math.Pi * b.Radius * b.Radius
}

// setDensity re-derives mass and inertia from density x area.
func (b *Body) setDensity(density float64) {
	if !b.Dynamic() {
		b.Mass, b.InvMass, b.Inertia, b.InvInertia = 0, 0, 0, 0
		return
	}
	b.Mass = density * b.Area()
	b.Inertia = 0.5 * b.Mass * b.Radius * b.Radius
	b.InvMass, b.InvInertia = 0, 0
	if b.Mass > 0 {
		b.InvMass = 1 / b.Mass
	}
	if b.Inertia > 0 {
		b.InvInertia = 1 / b.Inertia
	}
}

// Stop zeroes linear and angular velocity.
func (b *Body) Stop() {
	b.Velocity = Vec2{}
	b.AngularVelocity = 0
}

// aabb returns the bounding box of the body.
func (b *Body) aabb() (min, max Vec2) {
	ext := b.HalfExtents
	if b.Shape == ShapeCircle {
		ext = Vec2{b.Radius, b.Radius}
	}
	return b.Position.Sub(ext), b.Position.Add(ext)
}
