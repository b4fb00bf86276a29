package physics

import "math"

// ContactSlop is how far apart two faces may be and still count as touching
const ContactSlop = 0.5

// Contact is the minimum translation resolving an AABB overlap
// Normal points from A towards B, Depth is negative for resting contacts within slop
type Contact struct {
	Normal Vec2
	Depth  float64
}

// Overlap tests two axis-aligned rectangles given by center and size
func Overlap(pa Vec2, wa, ha float64, pb Vec2, wb, hb float64) (Contact, bool) {
	dx := pb.X - pa.X
	px := (wa+wb)/2 - math.Abs(dx)
	if px <= -ContactSlop {
		return Contact{}, false
	}
	dy := pb.Y - pa.Y
	py := (ha+hb)/2 - math.Abs(dy)
	if py <= -ContactSlop {
		return Contact{}, false
	}
	// Corner proximity on both axes is not a contact
	if px <= 0 && py <= 0 {
		return Contact{}, false
	}

	if px < py {
		return Contact{Normal: Vec2{X: sign(dx)}, Depth: px}, true
	}
	return Contact{Normal: Vec2{Y: sign(dy)}, Depth: py}, true
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// resolveContact separates two bodies and exchanges normal velocity
// Static bodies have zero inverse mass and never move
func resolveContact(a, b *body, c Contact, restingSpeed float64) {
	invA, invB := a.invMass(), b.invMass()
	total := invA + invB
	if total == 0 {
		return
	}

	// Positional correction, split by inverse mass
	corr := c.Normal.Scale(c.Depth / total)
	a.pos = a.pos.Sub(corr.Scale(invA))
	b.pos = b.pos.Add(corr.Scale(invB))

	rel := b.vel.Sub(a.vel)
	vn := rel.X*c.Normal.X + rel.Y*c.Normal.Y
	if vn >= 0 {
		return // Already separating
	}

	e := math.Max(a.def.Restitution, b.def.Restitution)
	if -vn < restingSpeed {
		e = 0
	}

	j := -(1 + e) * vn / total
	impulse := c.Normal.Scale(j)
	a.vel = a.vel.Sub(impulse.Scale(invA))
	b.vel = b.vel.Add(impulse.Scale(invB))

	// Coulomb-ish friction on the tangent
	tangent := Vec2{X: -c.Normal.Y, Y: c.Normal.X}
	vt := rel.X*tangent.X + rel.Y*tangent.Y
	mu := math.Sqrt(math.Max(0, a.def.Friction*b.def.Friction))
	jt := -vt / total
	maxJt := mu * math.Abs(j)
	jt = math.Max(-maxJt, math.Min(maxJt, jt))
	ft := tangent.Scale(jt)
	a.vel = a.vel.Sub(ft.Scale(invA))
	b.vel = b.vel.Add(ft.Scale(invB))

	// Glancing hits spin free bodies
	if !a.def.FixedRotation && invA > 0 {
		a.angVel -= vt * 0.002
	}
	if !b.def.FixedRotation && invB > 0 {
		b.angVel += vt * 0.002
	}
}
