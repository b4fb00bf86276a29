package game

import (
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/spell-smash/event"
	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/physics"
)

// onCollision filters collision-start pairs down to the first letter-vs-block contact of a launch
// Runs inside the physics step, so only flags change here and the outcome is deferred
func (s *Session) onCollision(pair physics.Pair) {
	if s.impactHandled || s.projectile == nil || s.building == nil {
		return
	}
	if !s.machine.IsIn(s.id.watchingImpact) {
		return
	}

	var block physics.BodyID
	switch {
	case s.projectile.Owns(pair.A) && s.building.Owns(pair.B):
		block = pair.B
	case s.projectile.Owns(pair.B) && s.building.Owns(pair.A):
		block = pair.A
	default:
		return
	}

	s.impactHandled = true
	s.missTimer.Stop()
	s.impactPoint = s.world.Position(block)

	point := s.impactPoint
	s.after(0, func() { s.applyImpact(point) })
}

// applyImpact releases the building and breaks the word apart
func (s *Session) applyImpact(point physics.Vec2) {
	if s.building == nil || !s.machine.IsIn(s.id.watchingImpact) {
		return
	}

	s.building.Release()
	s.hasHadImpact = true
	s.blast(point, s.power.ForceMultiplier())

	if s.projectile != nil {
		s.projectile.Shatter()
		s.retire(parameter.RetireDelay)
	}
	s.stats.CompleteWord(s.clean)

	s.queue.Emit(event.EventImpact, &event.ImpactPayload{X: point.X, Y: point.Y, Power: int(s.power)})
	s.log.Debug("impact",
		zap.Float64("x", point.X),
		zap.Float64("y", point.Y),
		zap.Stringer("power", s.power),
	)

	s.settleTimer = s.after(parameter.SettleDelay, s.onSettle)
}

// blast pushes blocks near the impact point away from it with linear falloff
func (s *Session) blast(point physics.Vec2, forceMultiplier float64) {
	for _, blk := range s.building.Blocks() {
		pos := s.world.Position(blk.Body)
		delta := pos.Sub(point)
		d := delta.Len()
		if d >= parameter.BlastRadius {
			continue
		}
		dir := physics.Vec2{X: 0, Y: -1}
		if d > 0 {
			dir = delta.Scale(1 / d)
		}
		falloff := 1 - d/parameter.BlastRadius
		s.world.ApplyForce(blk.Body, dir.Scale(parameter.BlastForce*falloff*forceMultiplier))
	}
}

// onSettle evaluates the building after the impact has played out
func (s *Session) onSettle() {
	if !s.machine.IsIn(s.id.watchingImpact) {
		return
	}
	// The poll already scheduled the level end
	if s.thresholdCrossed {
		return
	}
	if s.building != nil && s.building.IsDestroyed(s.building.Threshold()) {
		s.markThresholdCrossed()
	}
	s.fire(event.EventSettled)
}

// pollThreshold ends the level as soon as the live height drops below the threshold
// Runs every tick after positions are synced, once per building
func (s *Session) pollThreshold() {
	if !s.hasHadImpact || s.thresholdCrossed || s.building == nil {
		return
	}
	if !s.building.IsDestroyed(s.building.Threshold()) {
		return
	}
	s.markThresholdCrossed()

	if !s.machine.IsIn(s.id.playing) {
		return
	}
	s.setInput(false)
	if s.machine.IsIn(s.id.showingWord) || s.machine.IsIn(s.id.waitingForInput) {
		s.carryOver = true
		s.wordTimer.Stop()
	}
	s.after(parameter.ThresholdDelay, func() {
		if s.machine.IsIn(s.id.playing) {
			s.fire(event.EventBuildingDown)
		}
	})
}

func (s *Session) markThresholdCrossed() {
	s.thresholdCrossed = true
	s.queue.Emit(event.EventThresholdCrossed, &event.RoundPayload{
		BuildingIndex: s.stats.BuildingIndex,
		SessionLength: s.cfg.Session.Length,
		Pattern:       s.building.Config().Pattern.String(),
	})
	s.log.Debug("threshold crossed",
		zap.Float64("height", s.building.CurrentHeight()),
		zap.Float64("threshold", s.building.Threshold()),
	)
}

func (s *Session) updateDestruction() {
	if s.building == nil || s.thresholdCrossed {
		if s.thresholdCrossed {
			s.destructionPercent = 100
		}
		return
	}
	s.destructionPercent = DestructionPercent(
		s.building.InitialHeight(),
		s.building.CurrentHeight(),
		s.building.Threshold(),
		s.hasHadImpact,
	)
}

// DestructionPercent maps the knocked-down height onto 0..100, where 100 is at the threshold
// Heights above the initial one and overshoots below the threshold are clamped
func DestructionPercent(initial, current, threshold float64, impacted bool) int {
	if !impacted {
		return 0
	}
	span := initial - threshold
	if span <= 0 {
		if current < threshold {
			return 100
		}
		return 0
	}
	pct := math.Round((initial - current) / span * 100)
	return int(math.Max(0, math.Min(100, pct)))
}

// DestructionPercent returns the live destruction of the current building
func (s *Session) DestructionPercent() int {
	return s.destructionPercent
}
