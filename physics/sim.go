package physics

import (
	"math"
	"sort"
	"time"

	"github.com/solarlune/resolv"

	"github.com/lixenwraith/spell-smash/parameter"
)

const (
	// broadphase cell size in pixels
	cellSize = 32

	// share of a constraint correction fed back into velocity, the rest is absorbed
	constraintVelocityShare = 0.5
)

type body struct {
	id   BodyID
	def  BodyDef
	mass float64

	pos    Vec2
	vel    Vec2
	force  Vec2
	angle  float64
	angVel float64

	obj *resolv.Object
}

func (b *body) invMass() float64 {
	if b.def.Static || b.mass <= 0 || math.IsInf(b.mass, 1) {
		return 0
	}
	return 1 / b.mass
}

func (b *body) syncObject() {
	b.obj.X = b.pos.X - b.def.Width/2
	b.obj.Y = b.pos.Y - b.def.Height/2
	b.obj.Update()
}

type constraint struct {
	id  ConstraintID
	def ConstraintDef
}

// Sim is a small AABB rigid-body world with a resolv spatial hash as broadphase
// Bodies never rotate their collision box; Angle is integrated for presentation only
type Sim struct {
	space *resolv.Space

	bodies      map[BodyID]*body
	constraints map[ConstraintID]*constraint
	nextBody    BodyID
	nextCons    ConstraintID

	contacts  map[Pair]bool
	listeners []func(Pair)
}

// NewSim creates a simulation covering the given area
// Bodies outside the area still integrate but never collide
func NewSim(width, height int) *Sim {
	return &Sim{
		space:       resolv.NewSpace(width, height, cellSize, cellSize),
		bodies:      make(map[BodyID]*body),
		constraints: make(map[ConstraintID]*constraint),
		contacts:    make(map[Pair]bool),
	}
}

func (s *Sim) AddBody(def BodyDef) BodyID {
	s.nextBody++
	b := &body{
		id:   s.nextBody,
		def:  def,
		mass: Mass(def),
		pos:  def.Position,
	}
	b.obj = resolv.NewObject(def.Position.X-def.Width/2, def.Position.Y-def.Height/2, def.Width, def.Height, def.Kind.String())
	b.obj.Data = b.id
	s.space.Add(b.obj)
	s.bodies[b.id] = b
	return b.id
}

func (s *Sim) RemoveBody(id BodyID) {
	b, ok := s.bodies[id]
	if !ok {
		return
	}
	s.space.Remove(b.obj)
	delete(s.bodies, id)

	for cid, c := range s.constraints {
		if c.def.BodyA == id || c.def.BodyB == id {
			delete(s.constraints, cid)
		}
	}
	for p := range s.contacts {
		if p.A == id || p.B == id {
			delete(s.contacts, p)
		}
	}
}

func (s *Sim) Exists(id BodyID) bool {
	_, ok := s.bodies[id]
	return ok
}

func (s *Sim) Kind(id BodyID) Kind {
	if b, ok := s.bodies[id]; ok {
		return b.def.Kind
	}
	return 0
}

func (s *Sim) AddConstraint(def ConstraintDef) ConstraintID {
	s.nextCons++
	s.constraints[s.nextCons] = &constraint{id: s.nextCons, def: def}
	return s.nextCons
}

func (s *Sim) RemoveConstraint(id ConstraintID) {
	delete(s.constraints, id)
}

func (s *Sim) Position(id BodyID) Vec2 {
	if b, ok := s.bodies[id]; ok {
		return b.pos
	}
	return Vec2{}
}

func (s *Sim) SetPosition(id BodyID, p Vec2) {
	if b, ok := s.bodies[id]; ok {
		b.pos = p
		b.syncObject()
	}
}

func (s *Sim) Angle(id BodyID) float64 {
	if b, ok := s.bodies[id]; ok {
		return b.angle
	}
	return 0
}

func (s *Sim) Velocity(id BodyID) Vec2 {
	if b, ok := s.bodies[id]; ok {
		return b.vel
	}
	return Vec2{}
}

func (s *Sim) SetVelocity(id BodyID, v Vec2) {
	if b, ok := s.bodies[id]; ok && !b.def.Static {
		b.vel = v
	}
}

func (s *Sim) ApplyForce(id BodyID, f Vec2) {
	if b, ok := s.bodies[id]; ok && !b.def.Static {
		b.force = b.force.Add(f)
	}
}

func (s *Sim) SetStatic(id BodyID, static bool) {
	b, ok := s.bodies[id]
	if !ok || b.def.Static == static {
		return
	}
	b.def.Static = static
	b.mass = Mass(b.def)
	if static {
		b.vel, b.force, b.angVel = Vec2{}, Vec2{}, 0
	}
}

func (s *Sim) Friction(id BodyID) float64 {
	if b, ok := s.bodies[id]; ok {
		return b.def.Friction
	}
	return 0
}

func (s *Sim) SetFriction(id BodyID, friction float64) {
	if b, ok := s.bodies[id]; ok {
		b.def.Friction = friction
	}
}

func (s *Sim) SetCollisionFilter(id BodyID, category, mask Category) {
	if b, ok := s.bodies[id]; ok {
		b.def.Category = category
		b.def.Mask = mask
	}
}

func (s *Sim) SetFixedRotation(id BodyID, fixed bool) {
	if b, ok := s.bodies[id]; ok {
		b.def.FixedRotation = fixed
		if fixed {
			b.angVel = 0
		}
	}
}

func (s *Sim) OnCollisionStart(fn func(Pair)) {
	s.listeners = append(s.listeners, fn)
}

// Step advances the simulation, dt is capped at parameter.MaxStep
func (s *Sim) Step(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if dt > parameter.MaxStep {
		dt = parameter.MaxStep
	}
	dtMs := float64(dt) / float64(time.Millisecond)

	ids := s.sortedBodies()

	// 1. Forces and gravity
	g := GravityStep(dtMs)
	for _, id := range ids {
		b := s.bodies[id]
		if b.def.Static {
			continue
		}
		b.vel = b.vel.Add(ForceStep(b.force, b.mass, dtMs))
		b.vel.Y += g
		b.vel = b.vel.Scale(parameter.LinearDamping)
		b.force = Vec2{}

		if b.def.FixedRotation {
			b.angVel = 0
		} else {
			b.angVel *= parameter.AngularDamping
		}
	}

	// 2. Integrate
	for _, id := range ids {
		b := s.bodies[id]
		if b.def.Static {
			continue
		}
		b.pos = b.pos.Add(Displacement(b.vel, dtMs))
		b.angle += b.angVel * dtMs / parameter.StepBaseMs
	}

	// 3. Constraints and contacts
	ratio := dtMs / parameter.StepBaseMs
	for i := 0; i < parameter.SolverIterations; i++ {
		s.solveConstraints(ratio)
	}
	touching := s.solveContacts(ids)

	// 4. Collision start events, after all bodies settled for this step
	var started []Pair
	for p := range touching {
		if !s.contacts[p] {
			started = append(started, p)
		}
	}
	s.contacts = touching

	sort.Slice(started, func(i, j int) bool {
		if started[i].A != started[j].A {
			return started[i].A < started[j].A
		}
		return started[i].B < started[j].B
	})
	for _, p := range started {
		for _, fn := range s.listeners {
			fn(p)
		}
	}
}

func (s *Sim) sortedBodies() []BodyID {
	ids := make([]BodyID, 0, len(s.bodies))
	for id := range s.bodies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// solveConstraints runs one relaxation pass, corrections feed back into velocity
func (s *Sim) solveConstraints(ratio float64) {
	cids := make([]ConstraintID, 0, len(s.constraints))
	for id := range s.constraints {
		cids = append(cids, id)
	}
	sort.Slice(cids, func(i, j int) bool { return cids[i] < cids[j] })

	passes := float64(parameter.SolverIterations)
	for _, cid := range cids {
		c := s.constraints[cid]
		a, okA := s.bodies[c.def.BodyA]
		b, okB := s.bodies[c.def.BodyB]
		if !okA || !okB {
			continue
		}

		invA, invB := a.invMass(), b.invMass()
		total := invA + invB
		if total == 0 {
			continue
		}

		delta := b.pos.Sub(a.pos)
		dist := delta.Len()
		var dir Vec2
		if dist > 1e-9 {
			dir = delta.Scale(1 / dist)
		}
		diff := dist - c.def.Length
		corr := dir.Scale(diff * c.def.Stiffness / passes / total)

		moveA := corr.Scale(invA)
		moveB := corr.Scale(-invB)
		a.pos = a.pos.Add(moveA)
		b.pos = b.pos.Add(moveB)
		if ratio > 0 {
			a.vel = a.vel.Add(moveA.Scale(constraintVelocityShare / ratio))
			b.vel = b.vel.Add(moveB.Scale(constraintVelocityShare / ratio))
		}
	}
}

// solveContacts resolves overlaps found through the broadphase and returns touching pairs
func (s *Sim) solveContacts(ids []BodyID) map[Pair]bool {
	for _, id := range ids {
		s.bodies[id].syncObject()
	}

	touching := make(map[Pair]bool)
	for _, id := range ids {
		a, ok := s.bodies[id]
		if !ok || a.def.Static || a.def.Mask == CategoryNone {
			continue
		}

		coll := a.obj.Check(0, 0)
		if coll == nil {
			continue
		}

		others := make([]*body, 0, len(coll.Objects))
		for _, obj := range coll.Objects {
			oid, ok := obj.Data.(BodyID)
			if !ok || oid == id {
				continue
			}
			if o, ok := s.bodies[oid]; ok {
				others = append(others, o)
			}
		}
		sort.Slice(others, func(i, j int) bool { return others[i].id < others[j].id })

		for _, b := range others {
			if !b.def.Static && b.id < a.id {
				continue // Dynamic pairs are handled from the lower id
			}
			if !Accepts(a.def.Category, a.def.Mask, b.def.Category, b.def.Mask) {
				continue
			}
			c, hit := Overlap(a.pos, a.def.Width, a.def.Height, b.pos, b.def.Width, b.def.Height)
			if !hit {
				continue
			}
			if c.Depth > 0 {
				resolveContact(a, b, c, parameter.RestingSpeed)
				a.syncObject()
				b.syncObject()
			}
			touching[NewPair(a.id, b.id)] = true
		}
	}
	return touching
}

// BodyCount returns the number of live bodies
func (s *Sim) BodyCount() int {
	return len(s.bodies)
}

// ConstraintCount returns the number of live constraints
func (s *Sim) ConstraintCount() int {
	return len(s.constraints)
}
