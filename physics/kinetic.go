package physics

import (
	"math"

	"github.com/lixenwraith/spell-smash/parameter"
)

// Velocities are pixels per reference step (parameter.StepBaseMs)
// Forces follow the same units: a force f on mass m accelerates by f/m px per ms²

// Mass returns the mass of a body definition, static bodies are infinite
func Mass(def BodyDef) float64 {
	if def.Static {
		return math.Inf(1)
	}
	density := def.Density
	if density <= 0 {
		density = 0.001
	}
	return density * def.Width * def.Height
}

// GravityStep returns the velocity gained from gravity over dtMs
func GravityStep(dtMs float64) float64 {
	return parameter.Gravity * parameter.GravityScale * dtMs * parameter.StepBaseMs
}

// ForceStep returns the velocity change a force produces on mass over dtMs
func ForceStep(f Vec2, mass, dtMs float64) Vec2 {
	if mass <= 0 || math.IsInf(mass, 1) {
		return Vec2{}
	}
	return f.Scale(dtMs * parameter.StepBaseMs / mass)
}

// Displacement converts a step-based velocity into movement over dtMs
func Displacement(v Vec2, dtMs float64) Vec2 {
	return v.Scale(dtMs / parameter.StepBaseMs)
}

// TopEdge returns the highest point of a rectangle centered at y rotated by angle
func TopEdge(y, width, height, angle float64) float64 {
	return y - (height/2*math.Abs(math.Cos(angle)) + width/2*math.Abs(math.Sin(angle)))
}
