package physics

import "time"

// World is the rigid-body simulation the game logic is written against
// All methods are called from the game loop; implementations need no locking
// Operations on unknown ids are no-ops and queries return zero values
type World interface {
	AddBody(def BodyDef) BodyID
	RemoveBody(id BodyID)
	Exists(id BodyID) bool
	Kind(id BodyID) Kind

	AddConstraint(def ConstraintDef) ConstraintID
	RemoveConstraint(id ConstraintID)

	Position(id BodyID) Vec2
	SetPosition(id BodyID, p Vec2)
	Angle(id BodyID) float64
	Velocity(id BodyID) Vec2
	SetVelocity(id BodyID, v Vec2)

	// ApplyForce accumulates a force consumed by the next Step
	ApplyForce(id BodyID, f Vec2)

	SetStatic(id BodyID, static bool)
	Friction(id BodyID) float64
	SetFriction(id BodyID, friction float64)
	SetCollisionFilter(id BodyID, category, mask Category)
	SetFixedRotation(id BodyID, fixed bool)

	// OnCollisionStart registers a callback for pairs that begin touching
	// Callbacks run after the step has resolved, never mid-iteration
	OnCollisionStart(fn func(Pair))

	Step(dt time.Duration)
}

var (
	_ World = (*Sim)(nil)
	_ World = (*MockWorld)(nil)
)
