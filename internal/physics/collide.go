package physics

import (
	"math"
	"sort"
)

// contact is a single overlapping pair. Normal points from A to B.
type contact struct {
	A, B        *Body
	Normal      Vec2
	Penetration float64
	Point       Vec2
}

// broadPhase returns candidate pairs whose bounding boxes overlap, using a
// sweep along x. Pairs of two non-dynamic bodies are skipped.
func broadPhase(bodies []*Body) [][2]*Body {
	type entry struct {
		body     *Body
		min, max Vec2
		order    int
	}
	entries := make([]entry, len(bodies))
	for i, b := range bodies {
		min, max := b.aabb()
		entries[i] = entry{body: b, min: min, max: max, order: i}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].min[0] < entries[j].min[0]
	})

	var pairs [][2]*Body
	for i := range entries {
		a := entries[i]
		for j := i + 1; j < len(entries); j++ {
			b := entries[j]
			if b.min[0] > a.max[0] {
				break
			}
			if !a.body.Dynamic() && !b.body.Dynamic() {
				continue
			}
			if b.min[1] > a.max[1] || a.min[1] > b.max[1] {
				continue
			}
			if a.order < b.order {
				pairs = append(pairs, [2]*Body{a.body, b.body})
			} else {
				pairs = append(pairs, [2]*Body{b.body, a.body})
			}
		}
	}
	return pairs
}

// narrowPhase tests a candidate pair. Rectangles are always static, so a
// rectangle pair is ordered with the circle first.
func narrowPhase(a, b *Body) (contact, bool) {
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return circleCircle(a, b)
	case a.Shape == ShapeCircle && b.Shape == ShapeRect:
		return circleRect(a, b)
	case a.Shape == ShapeRect && b.Shape == ShapeCircle:
		return circleRect(b, a)
	}
	return contact{}, false
}

func circleCircle(a, b *Body) (contact, bool) {
	d := b.Position.Sub(a.Position)
	radii := a.Radius + b.Radius
	distSq := d.LenSqr()
	if distSq >= radii*radii {
		return contact{}, false
	}

	dist := math.Sqrt(distSq)
	c := contact{A: a, B: b}
	if dist == 0 {
		c.Normal = Vec2{1, 0}
		c.Penetration = a.Radius
		c.Point = a.Position
		return c, true
	}
	c.Normal = d.Mul(1 / dist)
	c.Penetration = radii - dist
	c.Point = a.Position.Add(c.Normal.Mul(a.Radius))
	return c, true
}

// circleRect tests circle a against axis-aligned rectangle r.
func circleRect(a, r *Body) (contact, bool) {
	min := r.Position.Sub(r.HalfExtents)
	max := r.Position.Add(r.HalfExtents)
	p := a.Position

	closest := Vec2{
		math.Max(min[0], math.Min(p[0], max[0])),
		math.Max(min[1], math.Min(p[1], max[1])),
	}
	delta := p.Sub(closest)
	distSq := delta.LenSqr()

	if distSq > 0 {
		if distSq >= a.Radius*a.Radius {
			return contact{}, false
		}
		dist := math.Sqrt(distSq)
		return contact{
			A:           a,
			B:           r,
			Normal:      delta.Mul(-1 / dist),
			Penetration: a.Radius - dist,
			Point:       closest,
		}, true
	}

	// Centre inside the rectangle: push out through the nearest face.
	faces := [4]struct {
		depth  float64
		normal Vec2
	}{
		{p[0] - min[0], Vec2{1, 0}},
		{max[0] - p[0], Vec2{-1, 0}},
		{p[1] - min[1], Vec2{0, 1}},
		{max[1] - p[1], Vec2{0, -1}},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.depth < best.depth {
			best = f
		}
	}
	return contact{
		A:           a,
		B:           r,
		Normal:      best.normal,
		Penetration: best.depth + a.Radius,
		Point:       p,
	}, true
}

// detect runs both phases. Contacts involving a sensor are returned separately
// and never resolved.
func detect(bodies []*Body) (solid []contact, sensors []contact) {
	for _, pair := range broadPhase(bodies) {
		a, b := pair[0], pair[1]
		if a.Sensor && b.Sensor {
			continue
		}
		if (a.Sensor && !b.Dynamic()) || (b.Sensor && !a.Dynamic()) {
			continue
		}
		c, ok := narrowPhase(a, b)
		if !ok {
			continue
		}
		if a.Sensor || b.Sensor {
			sensors = append(sensors, c)
			continue
		}
		solid = append(solid, c)
	}
	return solid, sensors
}
