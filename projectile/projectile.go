package projectile

import (
	"math/rand"
	"strings"
	"time"

	"github.com/lixenwraith/spell-smash/engine"
	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/physics"
)

// Params positions a projectile on screen
type Params struct {
	PadX, PadY     float64 // Center of the staged word on the launch pad
	InputX, InputY float64 // Top-left of the input box letters drop from
	LetterWidth    float64
	LetterHeight   float64
	Gap            float64
}

// DefaultParams returns the standard pad layout for an input box position
func DefaultParams(inputX, inputY float64) Params {
	return Params{
		PadX:         parameter.LaunchOriginX,
		PadY:         parameter.LaunchOriginY,
		InputX:       inputX,
		InputY:       inputY,
		LetterWidth:  parameter.LetterWidth,
		LetterHeight: parameter.LetterHeight,
		Gap:          parameter.LetterGap,
	}
}

// Letter is one staged or flying character
type Letter struct {
	Char   rune
	Body   physics.BodyID
	Pin    physics.ConstraintID // Soft point constraint to the anchor, zero after launch
	Anchor physics.BodyID       // Static pad slot, zero after launch
	Link   physics.ConstraintID // Distance constraint to the previous letter, zero for the first
}

// Projectile is the chained word built from typed letters
type Projectile struct {
	world  physics.World
	sched  *engine.Scheduler
	rng    *rand.Rand
	params Params

	letters []*Letter
	owned   map[physics.BodyID]bool
	power   Power

	launched  bool
	cleared   bool
	shattered bool
	destroyed bool
	cleanup   *engine.Timer
}

// New creates an empty projectile
func New(world physics.World, sched *engine.Scheduler, rng *rand.Rand, params Params) *Projectile {
	return &Projectile{
		world:  world,
		sched:  sched,
		rng:    rng,
		params: params,
		owned:  make(map[physics.BodyID]bool),
	}
}

// slotX returns the pad position of letter i in a word of total letters
func (p *Projectile) slotX(i, total int) float64 {
	lw, gap := p.params.LetterWidth, p.params.Gap
	width := float64(total)*lw + float64(total-1)*gap
	return p.params.PadX - width/2 + lw/2 + float64(i)*(lw+gap)
}

// Staged reports whether letters can still be added or removed
func (p *Projectile) Staged() bool {
	return !p.launched && !p.cleared && !p.destroyed
}

// AddLetter drops a letter body from the input box and pins it to its pad slot
func (p *Projectile) AddLetter(ch rune, index int) bool {
	if !p.Staged() {
		return false
	}

	drop := physics.Vec2{
		X: p.params.InputX + parameter.LetterDropInset + float64(index)*parameter.LetterDropStep,
		Y: p.params.InputY,
	}
	body := p.world.AddBody(physics.BodyDef{
		Kind:          physics.KindLetter,
		Position:      drop,
		Width:         p.params.LetterWidth,
		Height:        p.params.LetterHeight,
		Density:       parameter.WordDensity,
		Friction:      parameter.LetterFriction,
		Restitution:   parameter.LetterRestitution,
		Category:      physics.CategoryLetter,
		Mask:          physics.MaskLetter,
		FixedRotation: true,
	})

	total := len(p.letters) + 1
	anchor := p.world.AddBody(physics.BodyDef{
		Kind:     physics.KindAnchor,
		Position: physics.Vec2{X: p.slotX(total-1, total), Y: p.params.PadY},
		Width:    1,
		Height:   1,
		Static:   true,
		Category: physics.CategoryNone,
		Mask:     physics.CategoryNone,
	})
	pin := p.world.AddConstraint(physics.ConstraintDef{
		BodyA:     body,
		BodyB:     anchor,
		Length:    0,
		Stiffness: parameter.PinStiffness,
	})

	l := &Letter{Char: ch, Body: body, Pin: pin, Anchor: anchor}
	if n := len(p.letters); n > 0 {
		l.Link = p.world.AddConstraint(physics.ConstraintDef{
			BodyA:     p.letters[n-1].Body,
			BodyB:     body,
			Length:    p.params.LetterWidth + p.params.Gap,
			Stiffness: parameter.LinkStiffness,
		})
	}

	p.letters = append(p.letters, l)
	p.owned[body] = true
	p.recenter()
	return true
}

// RemoveLetter undoes the last AddLetter
func (p *Projectile) RemoveLetter() bool {
	if !p.Staged() || len(p.letters) == 0 {
		return false
	}

	last := p.letters[len(p.letters)-1]
	p.removeConstraint(&last.Link)
	p.removeConstraint(&last.Pin)
	if last.Anchor != 0 {
		p.world.RemoveBody(last.Anchor)
	}
	p.world.RemoveBody(last.Body)
	delete(p.owned, last.Body)

	p.letters = p.letters[:len(p.letters)-1]
	p.recenter()
	return true
}

// recenter moves every anchor so the staged word stays centered on the pad
func (p *Projectile) recenter() {
	total := len(p.letters)
	for i, l := range p.letters {
		if l.Anchor != 0 {
			p.world.SetPosition(l.Anchor, physics.Vec2{X: p.slotX(i, total), Y: p.params.PadY})
		}
	}
}

func (p *Projectile) removeConstraint(id *physics.ConstraintID) {
	if *id != 0 {
		p.world.RemoveConstraint(*id)
		*id = 0
	}
}

func (p *Projectile) unpin() {
	for _, l := range p.letters {
		p.removeConstraint(&l.Pin)
		if l.Anchor != 0 {
			p.world.RemoveBody(l.Anchor)
			l.Anchor = 0
		}
	}
}

func (p *Projectile) unlink() {
	for _, l := range p.letters {
		p.removeConstraint(&l.Link)
	}
}

func (p *Projectile) toRubble() {
	for _, l := range p.letters {
		p.world.SetCollisionFilter(l.Body, physics.CategoryRubble, physics.MaskRubble)
		p.world.SetFixedRotation(l.Body, false)
	}
}

// Launch frees the letters and gives each the same initial velocity
func (p *Projectile) Launch(base physics.Vec2, speedMultiplier float64) bool {
	if !p.Staged() || len(p.letters) == 0 {
		return false
	}
	p.unpin()
	v := base.Scale(speedMultiplier)
	for _, l := range p.letters {
		p.world.SetFixedRotation(l.Body, false)
		p.world.SetVelocity(l.Body, v)
	}
	p.launched = true
	return true
}

// Clear discards a wrong answer: letters scatter as rubble and are removed after a delay
func (p *Projectile) Clear() {
	if p.cleared || p.destroyed {
		return
	}
	p.unlink()
	p.unpin()
	for _, l := range p.letters {
		p.world.ApplyForce(l.Body, physics.Vec2{
			X: (p.rng.Float64()*2 - 1) * parameter.ClearScatterX,
			Y: parameter.ClearScatterY,
		})
	}
	p.toRubble()
	p.cleared = true
	p.RetireAfter(parameter.ClearCleanupDelay)
}

// Shatter breaks the word apart on impact, force scales with power
func (p *Projectile) Shatter() bool {
	if p.shattered || p.destroyed {
		return false
	}
	p.unlink()
	p.unpin()
	fm := p.power.ForceMultiplier()
	for _, l := range p.letters {
		p.world.ApplyForce(l.Body, physics.Vec2{
			X: (p.rng.Float64()*2 - 1) * parameter.ShatterScatterX * fm,
			Y: -p.rng.Float64() * parameter.ShatterScatterY * fm,
		})
	}
	p.toRubble()
	p.shattered = true
	return true
}

// RetireAfter schedules Destroy, replacing any earlier schedule
func (p *Projectile) RetireAfter(d time.Duration) {
	if p.destroyed {
		return
	}
	p.cleanup.Stop()
	p.cleanup = p.sched.After(d, p.Destroy)
}

// Destroy removes every body and constraint immediately
func (p *Projectile) Destroy() {
	if p.destroyed {
		return
	}
	p.cleanup.Stop()
	for _, l := range p.letters {
		p.removeConstraint(&l.Link)
		p.removeConstraint(&l.Pin)
		if l.Anchor != 0 {
			p.world.RemoveBody(l.Anchor)
		}
		p.world.RemoveBody(l.Body)
	}
	p.letters = nil
	p.owned = make(map[physics.BodyID]bool)
	p.destroyed = true
}

// SetPower sets the bonus applied at shatter time
func (p *Projectile) SetPower(power Power) {
	p.power = power
}

func (p *Projectile) Power() Power { return p.power }

func (p *Projectile) Launched() bool { return p.launched }

func (p *Projectile) Cleared() bool { return p.cleared }

func (p *Projectile) Shattered() bool { return p.shattered }

func (p *Projectile) Destroyed() bool { return p.destroyed }

// Owns reports whether id is one of the letter bodies
func (p *Projectile) Owns(id physics.BodyID) bool {
	return p.owned[id]
}

// Len returns the number of letters
func (p *Projectile) Len() int {
	return len(p.letters)
}

// Letters returns a copy of the letters in order
func (p *Projectile) Letters() []Letter {
	out := make([]Letter, len(p.letters))
	for i, l := range p.letters {
		out[i] = *l
	}
	return out
}

// Text returns the staged characters
func (p *Projectile) Text() string {
	var sb strings.Builder
	for _, l := range p.letters {
		sb.WriteRune(l.Char)
	}
	return sb.String()
}
