package physics

import (
	"sort"
	"time"
)

// MockBody is the recorded state of a body in a MockWorld
type MockBody struct {
	Def      BodyDef
	Position Vec2
	Velocity Vec2
	Angle    float64
	Force    Vec2 // Sum of all forces applied since creation
}

// MockWorld is a World that records calls and never moves anything on its own
// Tests place bodies with SetPosition and raise collisions with Collide
type MockWorld struct {
	bodies      map[BodyID]*MockBody
	constraints map[ConstraintID]ConstraintDef
	nextBody    BodyID
	nextCons    ConstraintID
	listeners   []func(Pair)

	Steps   int
	Elapsed time.Duration
}

// NewMockWorld creates an empty mock world
func NewMockWorld() *MockWorld {
	return &MockWorld{
		bodies:      make(map[BodyID]*MockBody),
		constraints: make(map[ConstraintID]ConstraintDef),
	}
}

func (m *MockWorld) AddBody(def BodyDef) BodyID {
	m.nextBody++
	m.bodies[m.nextBody] = &MockBody{Def: def, Position: def.Position}
	return m.nextBody
}

// RemoveBody deletes the body and every constraint attached to it, like a real engine would
func (m *MockWorld) RemoveBody(id BodyID) {
	if _, ok := m.bodies[id]; !ok {
		return
	}
	delete(m.bodies, id)
	for cid, c := range m.constraints {
		if c.BodyA == id || c.BodyB == id {
			delete(m.constraints, cid)
		}
	}
}

func (m *MockWorld) Exists(id BodyID) bool {
	_, ok := m.bodies[id]
	return ok
}

func (m *MockWorld) Kind(id BodyID) Kind {
	if b, ok := m.bodies[id]; ok {
		return b.Def.Kind
	}
	return 0
}

func (m *MockWorld) AddConstraint(def ConstraintDef) ConstraintID {
	m.nextCons++
	m.constraints[m.nextCons] = def
	return m.nextCons
}

func (m *MockWorld) RemoveConstraint(id ConstraintID) {
	delete(m.constraints, id)
}

func (m *MockWorld) Position(id BodyID) Vec2 {
	if b, ok := m.bodies[id]; ok {
		return b.Position
	}
	return Vec2{}
}

func (m *MockWorld) SetPosition(id BodyID, p Vec2) {
	if b, ok := m.bodies[id]; ok {
		b.Position = p
	}
}

func (m *MockWorld) Angle(id BodyID) float64 {
	if b, ok := m.bodies[id]; ok {
		return b.Angle
	}
	return 0
}

// SetAngle rotates a body, test helper
func (m *MockWorld) SetAngle(id BodyID, angle float64) {
	if b, ok := m.bodies[id]; ok {
		b.Angle = angle
	}
}

func (m *MockWorld) Velocity(id BodyID) Vec2 {
	if b, ok := m.bodies[id]; ok {
		return b.Velocity
	}
	return Vec2{}
}

func (m *MockWorld) SetVelocity(id BodyID, v Vec2) {
	if b, ok := m.bodies[id]; ok {
		b.Velocity = v
	}
}

func (m *MockWorld) ApplyForce(id BodyID, f Vec2) {
	if b, ok := m.bodies[id]; ok {
		b.Force = b.Force.Add(f)
	}
}

func (m *MockWorld) SetStatic(id BodyID, static bool) {
	if b, ok := m.bodies[id]; ok {
		b.Def.Static = static
	}
}

func (m *MockWorld) Friction(id BodyID) float64 {
	if b, ok := m.bodies[id]; ok {
		return b.Def.Friction
	}
	return 0
}

func (m *MockWorld) SetFriction(id BodyID, friction float64) {
	if b, ok := m.bodies[id]; ok {
		b.Def.Friction = friction
	}
}

func (m *MockWorld) SetCollisionFilter(id BodyID, category, mask Category) {
	if b, ok := m.bodies[id]; ok {
		b.Def.Category = category
		b.Def.Mask = mask
	}
}

func (m *MockWorld) SetFixedRotation(id BodyID, fixed bool) {
	if b, ok := m.bodies[id]; ok {
		b.Def.FixedRotation = fixed
	}
}

func (m *MockWorld) OnCollisionStart(fn func(Pair)) {
	m.listeners = append(m.listeners, fn)
}

// Step records the call, bodies stay where tests put them
func (m *MockWorld) Step(dt time.Duration) {
	m.Steps++
	m.Elapsed += dt
}

// Collide raises a collision-start event for two existing bodies
func (m *MockWorld) Collide(a, b BodyID) {
	if !m.Exists(a) || !m.Exists(b) {
		return
	}
	p := NewPair(a, b)
	for _, fn := range m.listeners {
		fn(p)
	}
}

// Body returns the recorded state of a body
func (m *MockWorld) Body(id BodyID) (*MockBody, bool) {
	b, ok := m.bodies[id]
	return b, ok
}

// BodyCount returns the number of live bodies
func (m *MockWorld) BodyCount() int {
	return len(m.bodies)
}

// BodiesOfKind returns live body ids of a kind in creation order
func (m *MockWorld) BodiesOfKind(kind Kind) []BodyID {
	var ids []BodyID
	for id, b := range m.bodies {
		if b.Def.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ConstraintCount returns the number of live constraints
func (m *MockWorld) ConstraintCount() int {
	return len(m.constraints)
}

// Constraint returns a live constraint definition
func (m *MockWorld) Constraint(id ConstraintID) (ConstraintDef, bool) {
	c, ok := m.constraints[id]
	return c, ok
}

// Constraints returns every live constraint definition
func (m *MockWorld) Constraints() []ConstraintDef {
	ids := make([]ConstraintID, 0, len(m.constraints))
	for id := range m.constraints {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]ConstraintDef, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.constraints[id])
	}
	return out
}
