package render

import (
	"math"

	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/projectile"
)

// tiltedAngle is the rotation past which a block is drawn as tumbling
const tiltedAngle = 0.35

// SceneLayer draws the ground, pedestals and blocks
type SceneLayer struct{}

func (SceneLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	p := ctx.Palette

	_, gy := ctx.Project(0, ctx.View.GroundY)
	buf.Fill(0, gy, ctx.Width, ctx.Height-gy, '█', p.Ground)

	for _, r := range ctx.View.Pedestals {
		x, y, w, h := ctx.ProjectRect(r)
		buf.Fill(x, y, w, h, '▓', p.Pedestal)
	}
	for _, r := range ctx.View.Blocks {
		x, y, w, h := ctx.ProjectRect(r)
		ch := '█'
		if math.Abs(math.Remainder(r.Angle, math.Pi/2)) > tiltedAngle {
			ch = '▞'
		}
		buf.Fill(x, y, w, h, ch, p.Block)
	}
}

// ProjectileLayer draws letters, the aim guide and the impact marker
type ProjectileLayer struct{}

const (
	aimDots    = 5
	aimSpacing = 40.0
)

func (ProjectileLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	v := ctx.View
	p := ctx.Palette

	if v.Phase == "ShowingWord" || v.Phase == "WaitingForInput" {
		rad := v.AimAngle * math.Pi / 180
		for i := 1; i <= aimDots; i++ {
			d := aimSpacing * float64(i)
			x, y := ctx.Project(
				parameter.LaunchOriginX+v.Camera+d*math.Cos(rad),
				parameter.LaunchOriginY-parameter.LetterHeight-d*math.Sin(rad),
			)
			buf.Set(x, y, '·', p.Aim)
		}
	}

	style := p.Letter
	switch v.Power {
	case projectile.PowerFire:
		style = p.LetterFire
	case projectile.PowerSuper:
		style = p.LetterSuper
	}
	for _, l := range v.Letters {
		x, y := ctx.Project(l.X, l.Y)
		if l.Rubble {
			buf.Set(x, y, l.Char, p.Rubble)
			continue
		}
		buf.Set(x, y, l.Char, style)
	}

	if v.Impact != nil && v.Phase == "WatchingImpact" {
		x, y := ctx.Project(v.Impact.X, v.Impact.Y)
		buf.Set(x, y, '✶', p.Impact)
	}
}
