package physics

import "math"

// combineRestitution and combineFriction use the geometric mean of the two
// bodies' coefficients.
func combineRestitution(a, b *Body) float64 {
	return math.Sqrt(a.Restitution * b.Restitution)
}

func combineFriction(a, b *Body) float64 {
	return math.Sqrt(a.Friction * b.Friction)
}

// relativeVelocity is the velocity of B's contact point relative to A's.
func relativeVelocity(c contact, rA, rB Vec2) Vec2 {
	vA := c.A.Velocity.Add(crossScalar(c.A.AngularVelocity, rA))
	vB := c.B.Velocity.Add(crossScalar(c.B.AngularVelocity, rB))
	return vB.Sub(vA)
}

func applyImpulse(b *Body, j, r Vec2) {
	b.Velocity = b.Velocity.Add(j.Mul(b.InvMass))
	b.AngularVelocity += b.InvInertia * cross2(r, j)
}

// resolveVelocity applies the normal and friction impulses for one contact.
// After the normal impulse the relative normal velocity is -e times what it
// was; the friction impulse is capped at mu times the normal impulse.
func resolveVelocity(c contact) {
	a, b := c.A, c.B
	rA := c.Point.Sub(a.Position)
	rB := c.Point.Sub(b.Position)

	rv := relativeVelocity(c, rA, rB)
	vn := rv.Dot(c.Normal)
	if vn >= 0 {
		return
	}

	rAn := cross2(rA, c.Normal)
	rBn := cross2(rB, c.Normal)
	invSum := a.InvMass + b.InvMass + rAn*rAn*a.InvInertia + rBn*rBn*b.InvInertia
	if invSum == 0 {
		return
	}

	e := combineRestitution(a, b)
	j := -(1 + e) * vn / invSum
	impulse := c.Normal.Mul(j)
	applyImpulse(a, impulse.Mul(-1), rA)
	applyImpulse(b, impulse, rB)

	rv = relativeVelocity(c, rA, rB)
	tangent := normalize(rv.Sub(c.Normal.Mul(rv.Dot(c.Normal))))
	if isZero(tangent) {
		return
	}

	rAt := cross2(rA, tangent)
	rBt := cross2(rB, tangent)
	invSumT := a.InvMass + b.InvMass + rAt*rAt*a.InvInertia + rBt*rBt*b.InvInertia
	if invSumT == 0 {
		return
	}

	jt := -rv.Dot(tangent) / invSumT
	limit := combineFriction(a, b) * j
	jt = math.Max(-limit, math.Min(jt, limit))
	if jt == 0 {
		return
	}

	friction := tangent.Mul(jt)
	applyImpulse(a, friction.Mul(-1), rA)
	applyImpulse(b, friction, rB)
}

// correctPosition pushes the pair apart along the normal, split by inverse mass.
func correctPosition(c contact) {
	a, b := c.A, c.B
	invSum := a.InvMass + b.InvMass
	if invSum == 0 {
		return
	}
	amount := math.Max(c.Penetration-penetrationSlop, 0) / invSum * penetrationPercent
	correction := c.Normal.Mul(amount)
	a.Position = a.Position.Sub(correction.Mul(a.InvMass))
	b.Position = b.Position.Add(correction.Mul(b.InvMass))
}

// resolve runs the sequential impulse solver over the solid contacts.
func resolve(contacts []contact) {
	for i := 0; i < SolverIterations; i++ {
		for _, c := range contacts {
			resolveVelocity(c)
		}
	}
	for _, c := range contacts {
		correctPosition(c)
	}
}
