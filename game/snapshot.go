package game

import (
	"github.com/lixenwraith/spell-smash/building"
	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/physics"
	"github.com/lixenwraith/spell-smash/projectile"
)

// Rect is a rotated body in world coordinates, centered on X/Y
type Rect struct {
	X, Y, W, H float64
	Angle      float64
}

// LetterView is one projectile letter
type LetterView struct {
	Rect
	Char   rune
	Rubble bool
}

// View is everything a frontend needs to draw one frame
type View struct {
	Phase       string
	Word        string // Empty unless the word may be shown
	Hint        string
	Typed       string
	WrongShown  bool
	Streak      int
	BestStreak  int
	Words       int
	Perfect     int
	Wrong       int
	Accuracy    int
	Destruction int
	Building    int
	Length      int
	Power       projectile.Power
	AimAngle    float64
	Camera      float64
	InputOpen   bool
	Finished    bool
	ShowWord    bool

	GroundY   float64
	Blocks    []Rect
	Pedestals []Rect
	Letters   []LetterView
	Impact    *physics.Vec2
}

// Snapshot captures the presentation state
func (s *Session) Snapshot() View {
	now := s.sched.Now()
	revealing := now < s.revealUntil

	v := View{
		Phase:       s.Phase(),
		Streak:      s.stats.Streak,
		BestStreak:  s.stats.BestStreak,
		Words:       s.stats.WordsCompleted,
		Perfect:     s.stats.PerfectWords,
		Wrong:       s.stats.TotalWrongAttempts,
		Accuracy:    s.stats.Accuracy(),
		Destruction: s.destructionPercent,
		Building:    s.stats.BuildingIndex,
		Length:      s.cfg.Session.Length,
		Power:       s.power,
		AimAngle:    s.aimAngle,
		Camera:      s.camera,
		InputOpen:   s.inputOpen,
		Finished:    s.finished,
		ShowWord:    s.showWord,
		WrongShown:  now < s.feedbackTill,
		GroundY:     parameter.GroundY,
	}

	if s.showWord && (s.machine.IsIn(s.id.showingWord) || revealing) {
		v.Word = s.word
	}
	if !revealing {
		v.Hint = s.hint
	}
	if s.projectile != nil {
		v.Typed = s.projectile.Text()
	}
	if s.hasHadImpact {
		p := s.impactPoint
		v.Impact = &p
	}

	for _, b := range []*building.Building{s.building, s.incoming} {
		if b == nil {
			continue
		}
		for _, blk := range b.Blocks() {
			v.Blocks = append(v.Blocks, s.rect(blk.Body, blk.Width, blk.Height))
		}
		if id := b.Pedestal(); id != 0 {
			v.Pedestals = append(v.Pedestals, s.rect(id, b.PedestalWidth(), b.Config().PedestalHeight))
		}
	}

	v.Letters = s.letterViews(s.projectile, false, v.Letters)
	for _, p := range s.retired {
		v.Letters = s.letterViews(p, true, v.Letters)
	}
	return v
}

func (s *Session) rect(id physics.BodyID, w, h float64) Rect {
	pos := s.world.Position(id)
	return Rect{X: pos.X, Y: pos.Y, W: w, H: h, Angle: s.world.Angle(id)}
}

func (s *Session) letterViews(p *projectile.Projectile, retired bool, out []LetterView) []LetterView {
	if p == nil || p.Destroyed() {
		return out
	}
	rubble := retired || p.Shattered() || p.Cleared()
	for _, l := range p.Letters() {
		out = append(out, LetterView{
			Rect:   s.rect(l.Body, parameter.LetterWidth, parameter.LetterHeight),
			Char:   l.Char,
			Rubble: rubble,
		})
	}
	return out
}
