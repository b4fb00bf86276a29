package parameter

import "time"

// Simulation
const (
	// Gravity is the downward acceleration scale, in the same units as the step-based integrator
	Gravity = 0.5

	// GravityScale converts Gravity into pixels per squared millisecond
	GravityScale = 0.001

	// StepBaseMs is the reference step length that velocities are expressed against
	StepBaseMs = 1000.0 / 60.0

	// MaxStep caps a single integration step so a stalled frame doesn't tunnel bodies through the ground
	MaxStep = 50 * time.Millisecond

	// SolverIterations is the number of constraint relaxation passes per step
	SolverIterations = 4

	// LinearDamping is the per-step velocity retention for dynamic bodies
	LinearDamping = 0.999

	// AngularDamping is the per-step angular velocity retention
	AngularDamping = 0.98

	// RestingSpeed is the speed below which a contact no longer bounces
	RestingSpeed = 0.3
)

// Projectile bodies
const (
	// WordDensity is the density of letter bodies
	WordDensity = 0.008

	// LetterFriction is the friction of letter bodies
	LetterFriction = 0.5

	// LetterRestitution is the restitution of letter bodies
	LetterRestitution = 0.2

	// PinStiffness is the soft pin stiffness holding staged letters to their pad slot
	PinStiffness = 0.15

	// LinkStiffness is the stiffness of the distance constraint between adjacent letters
	LinkStiffness = 0.9
)

// Building bodies
const (
	// DefaultRestitution is the block restitution default
	DefaultRestitution = 0.4

	// DensityRowBonus is the extra density fraction given to the bottom row, tapering to zero at the top row
	DensityRowBonus = 0.3

	// FallenFriction is the friction assigned to blocks that dropped below the pedestal surface
	FallenFriction = 0.05

	// FallenEpsilon is how far below the pedestal surface a block center must be to count as fallen
	FallenEpsilon = 5.0

	// ThresholdRatio is the fraction of the destructible block height that must be knocked below
	ThresholdRatio = 0.4
)

// Scatter and blast forces
const (
	// ClearScatterX is the max horizontal scatter force on a wrong submit
	ClearScatterX = 0.01

	// ClearScatterY is the downward scatter force on a wrong submit
	ClearScatterY = 0.01

	// ShatterScatterX is the max horizontal scatter force on impact, before power scaling
	ShatterScatterX = 0.02

	// ShatterScatterY is the max upward scatter force on impact, before power scaling
	ShatterScatterY = 0.03

	// BlastRadius is the distance from the impact point within which blocks receive a radial push
	BlastRadius = 120.0

	// BlastForce is the radial push magnitude at the impact point, before power scaling
	BlastForce = 0.02
)

// Power multipliers, indexed by fire/super bonus
const (
	FireSpeedMultiplier  = 1.5
	SuperSpeedMultiplier = 1.8
	FireForceMultiplier  = 2.0
	SuperForceMultiplier = 3.0
)
