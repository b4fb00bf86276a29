package projectile

import "github.com/lixenwraith/spell-smash/parameter"

// Power is the streak bonus applied to a launch
type Power int

const (
	PowerNormal Power = iota
	PowerFire
	PowerSuper // Implies fire
)

func (p Power) String() string {
	switch p {
	case PowerFire:
		return "fire"
	case PowerSuper:
		return "super"
	default:
		return "normal"
	}
}

// OnFire reports whether the fire bonus applies, super included
func (p Power) OnFire() bool {
	return p >= PowerFire
}

// SpeedMultiplier scales the launch velocity
func (p Power) SpeedMultiplier() float64 {
	switch p {
	case PowerSuper:
		return parameter.SuperSpeedMultiplier
	case PowerFire:
		return parameter.FireSpeedMultiplier
	default:
		return 1
	}
}

// ForceMultiplier scales shatter scatter and the impact blast
func (p Power) ForceMultiplier() float64 {
	switch p {
	case PowerSuper:
		return parameter.SuperForceMultiplier
	case PowerFire:
		return parameter.FireForceMultiplier
	default:
		return 1
	}
}
