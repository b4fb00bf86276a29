package building

import (
	"fmt"
	"math"

	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/physics"
)

// Config fully determines one building
type Config struct {
	TotalBlocks    int
	Columns        int
	BlockWidth     float64
	BlockHeight    float64
	OriginX        float64 // Horizontal center
	GroundY        float64 // Top surface of the ground
	Pattern        Pattern
	PedestalHeight float64 // 0 = no pedestal

	Density     float64
	Friction    float64
	Restitution float64
}

// EffectiveGround is the surface the first row rests on
func (c Config) EffectiveGround() float64 {
	return c.GroundY - c.PedestalHeight
}

// Block is one destructible body of a building
type Block struct {
	Body   physics.BodyID
	Row    int
	Col    float64
	Units  int
	Width  float64
	Height float64

	fallen bool
}

// Building owns the blocks and pedestal of one round's structure
type Building struct {
	world physics.World
	cfg   Config

	blocks   []*Block
	owned    map[physics.BodyID]*Block
	pedestal physics.BodyID

	totalRows     int
	initialHeight float64
	frozen        bool
	released      bool
}

// Generate lays out and creates the bodies of a building, frozen
func Generate(world physics.World, cfg Config) (*Building, error) {
	if cfg.TotalBlocks < 1 {
		return nil, fmt.Errorf("building needs at least one block, got %d", cfg.TotalBlocks)
	}
	cfg.Columns = max(1, cfg.Columns)
	if cfg.Pattern == PatternWall {
		cfg.TotalBlocks = min(cfg.TotalBlocks, WallRowCap(cfg.EffectiveGround(), cfg.BlockHeight))
	}

	slots, err := Layout(cfg.Pattern, cfg.TotalBlocks, cfg.Columns)
	if err != nil {
		return nil, err
	}
	rows, err := PredictRows(cfg.Pattern, cfg.TotalBlocks, cfg.Columns)
	if err != nil {
		return nil, err
	}

	b := &Building{
		world:         world,
		cfg:           cfg,
		owned:         make(map[physics.BodyID]*Block, len(slots)),
		totalRows:     rows,
		initialHeight: float64(rows)*cfg.BlockHeight + cfg.PedestalHeight,
	}

	if cfg.PedestalHeight > 0 {
		b.pedestal = world.AddBody(physics.BodyDef{
			Kind:     physics.KindPedestal,
			Position: physics.Vec2{X: cfg.OriginX, Y: cfg.GroundY - cfg.PedestalHeight/2},
			Width:    b.PedestalWidth(),
			Height:   cfg.PedestalHeight,
			Static:   true,
			Friction: 0.8,
			Category: physics.CategoryDefault,
			Mask:     physics.MaskPedestal,
		})
	}

	spanCols := footprint(slots)
	left := cfg.OriginX - spanCols*cfg.BlockWidth/2
	base := cfg.EffectiveGround()

	for _, s := range slots {
		w := s.Width() * cfg.BlockWidth
		h := cfg.BlockHeight
		pos := physics.Vec2{
			X: left + s.Col*cfg.BlockWidth + w/2,
			Y: base - float64(s.Row)*h - h/2,
		}
		id := world.AddBody(physics.BodyDef{
			Kind:        physics.KindBlock,
			Position:    pos,
			Width:       w,
			Height:      h,
			Static:      true,
			Density:     cfg.Density * densityScale(s.Row, rows),
			Friction:    cfg.Friction,
			Restitution: cfg.Restitution,
			Category:    physics.CategoryBlock,
			Mask:        physics.MaskBlock,
		})
		blk := &Block{Body: id, Row: s.Row, Col: s.Col, Units: s.Units, Width: w, Height: h}
		b.blocks = append(b.blocks, blk)
		b.owned[id] = blk
	}
	b.frozen = true

	return b, nil
}

// densityScale makes the base heavier, tapering to 1.0 at the top row
func densityScale(row, rows int) float64 {
	if rows <= 1 {
		return 1
	}
	return 1 + parameter.DensityRowBonus*(1-float64(row)/float64(rows-1))
}

// footprint returns the layout width in block widths
func footprint(slots []Slot) float64 {
	w := 0.0
	for _, s := range slots {
		w = math.Max(w, s.Col+s.Width())
	}
	return w
}

// Config returns the configuration the building was generated from
func (b *Building) Config() Config {
	return b.cfg
}

// TotalRows is the predicted row count, fixed at generation
func (b *Building) TotalRows() int {
	return b.totalRows
}

// InitialHeight is totalRows × blockHeight + pedestalHeight, never recomputed
func (b *Building) InitialHeight() float64 {
	return b.initialHeight
}

// Threshold is the height below which the building counts as destroyed
func (b *Building) Threshold() float64 {
	return b.cfg.PedestalHeight + parameter.ThresholdRatio*float64(b.totalRows)*b.cfg.BlockHeight
}

// CurrentHeight measures from ground to the top edge of the highest block
func (b *Building) CurrentHeight() float64 {
	if len(b.blocks) == 0 {
		return 0
	}
	top := math.Inf(1)
	for _, blk := range b.blocks {
		pos := b.world.Position(blk.Body)
		edge := physics.TopEdge(pos.Y, blk.Width, blk.Height, b.world.Angle(blk.Body))
		top = math.Min(top, edge)
	}
	return math.Max(0, b.cfg.GroundY-top)
}

// IsDestroyed reports whether the live height is below threshold
func (b *Building) IsDestroyed(threshold float64) bool {
	return b.CurrentHeight() < threshold
}

// Freeze locks every block in place
// A released building belongs to the simulation and cannot be frozen again
func (b *Building) Freeze() bool {
	if b.frozen || b.released {
		return false
	}
	for _, blk := range b.blocks {
		b.world.SetStatic(blk.Body, true)
	}
	b.frozen = true
	return true
}

// Release hands the blocks to the simulation, only the first call has effect
func (b *Building) Release() bool {
	if b.released {
		return false
	}
	for _, blk := range b.blocks {
		b.world.SetStatic(blk.Body, false)
	}
	b.frozen = false
	b.released = true
	return true
}

// Frozen reports whether blocks are kinematically locked
func (b *Building) Frozen() bool {
	return b.frozen
}

// Released reports whether the first impact has released the building
func (b *Building) Released() bool {
	return b.released
}

// Update lowers friction on blocks that dropped below the support surface
func (b *Building) Update() {
	limit := b.cfg.EffectiveGround() + parameter.FallenEpsilon
	for _, blk := range b.blocks {
		if blk.fallen {
			continue
		}
		if b.world.Position(blk.Body).Y > limit {
			b.world.SetFriction(blk.Body, parameter.FallenFriction)
			blk.fallen = true
		}
	}
}

// Offset shifts every body horizontally
func (b *Building) Offset(dx float64) {
	for _, blk := range b.blocks {
		p := b.world.Position(blk.Body)
		b.world.SetPosition(blk.Body, physics.Vec2{X: p.X + dx, Y: p.Y})
	}
	if b.pedestal != 0 {
		p := b.world.Position(b.pedestal)
		b.world.SetPosition(b.pedestal, physics.Vec2{X: p.X + dx, Y: p.Y})
	}
	b.cfg.OriginX += dx
}

// Destroy removes every body the building owns
func (b *Building) Destroy() {
	for _, blk := range b.blocks {
		b.world.RemoveBody(blk.Body)
	}
	if b.pedestal != 0 {
		b.world.RemoveBody(b.pedestal)
		b.pedestal = 0
	}
	b.blocks = nil
	b.owned = make(map[physics.BodyID]*Block)
}

// Owns reports whether id is one of the building's blocks
func (b *Building) Owns(id physics.BodyID) bool {
	_, ok := b.owned[id]
	return ok
}

// Blocks returns the live blocks
func (b *Building) Blocks() []Block {
	out := make([]Block, len(b.blocks))
	for i, blk := range b.blocks {
		out[i] = *blk
	}
	return out
}

// Units returns the total block units, equal to TotalBlocks
func (b *Building) Units() int {
	n := 0
	for _, blk := range b.blocks {
		n += blk.Units
	}
	return n
}

// Pedestal returns the pedestal body, zero if none
func (b *Building) Pedestal() physics.BodyID {
	return b.pedestal
}

// PedestalWidth is the footprint scaled and padded
func (b *Building) PedestalWidth() float64 {
	return float64(b.cfg.Columns)*b.cfg.BlockWidth*parameter.PedestalWidthScale + parameter.PedestalPadding
}
