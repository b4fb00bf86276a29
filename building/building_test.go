package building

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spell-smash/asset"
	"github.com/lixenwraith/spell-smash/config"
	"github.com/lixenwraith/spell-smash/parameter"
	"github.com/lixenwraith/spell-smash/physics"
)

func testConfig(p Pattern, n, cols int) Config {
	return Config{
		TotalBlocks:    n,
		Columns:        cols,
		BlockWidth:     35,
		BlockHeight:    20,
		OriginX:        880,
		GroundY:        660,
		Pattern:        p,
		PedestalHeight: 80,
		Density:        0.012,
		Friction:       0.2,
		Restitution:    0.4,
	}
}

func TestScenarioStackTenByThree(t *testing.T) {
	world := physics.NewMockWorld()
	b, err := Generate(world, testConfig(PatternStack, 10, 3))
	require.NoError(t, err)

	assert.Equal(t, 4, b.TotalRows())
	assert.Equal(t, 4*20.0+80, b.InitialHeight())
	assert.Equal(t, 10, b.Units())
	assert.InDelta(t, b.InitialHeight(), b.CurrentHeight(), 1e-9, "resting building measures its full height")
	assert.InDelta(t, 80+0.4*4*20, b.Threshold(), 1e-9)
	assert.False(t, b.IsDestroyed(b.Threshold()))
}

func TestGenerateWallCapsRowsToScreen(t *testing.T) {
	world := physics.NewMockWorld()
	b, err := Generate(world, testConfig(PatternWall, 40, 3))
	require.NoError(t, err)

	// (660 - 80 - 20) / 20
	assert.Equal(t, 28, b.TotalRows())
	assert.Equal(t, 28, b.Units())
	assert.Equal(t, 28, b.Config().TotalBlocks)
	assert.InDelta(t, 28*20.0+80, b.InitialHeight(), 1e-9)

	short, err := Generate(physics.NewMockWorld(), testConfig(PatternWall, 5, 3))
	require.NoError(t, err)
	assert.Equal(t, 5, short.TotalRows())
}

func TestGenerateBodies(t *testing.T) {
	world := physics.NewMockWorld()
	b, err := Generate(world, testConfig(PatternStack, 10, 3))
	require.NoError(t, err)

	assert.Len(t, world.BodiesOfKind(physics.KindBlock), 8, "two doubles per base row save bodies")
	require.NotZero(t, b.Pedestal())

	ped, _ := world.Body(b.Pedestal())
	assert.True(t, ped.Def.Static)
	assert.InDelta(t, 3*35*1.5+20, ped.Def.Width, 1e-9)
	assert.InDelta(t, 620, ped.Position.Y, 1e-9)

	for _, blk := range b.Blocks() {
		body, ok := world.Body(blk.Body)
		require.True(t, ok)
		assert.True(t, body.Def.Static, "blocks start frozen")
		assert.Equal(t, physics.CategoryBlock, body.Def.Category)
		assert.True(t, b.Owns(blk.Body))

		// Bottom row sits on the pedestal
		if blk.Row == 0 {
			assert.InDelta(t, 580-10, body.Position.Y, 1e-9)
		}
	}
	assert.False(t, b.Owns(b.Pedestal()))
}

func TestDensityTapersUpward(t *testing.T) {
	world := physics.NewMockWorld()
	b, err := Generate(world, testConfig(PatternTower, 6, 2))
	require.NoError(t, err)

	for _, blk := range b.Blocks() {
		body, _ := world.Body(blk.Body)
		switch blk.Row {
		case 0:
			assert.InDelta(t, 0.012*1.3, body.Def.Density, 1e-9)
		case b.TotalRows() - 1:
			assert.InDelta(t, 0.012, body.Def.Density, 1e-9)
		}
	}

	single, err := Generate(physics.NewMockWorld(), testConfig(PatternStack, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, single.TotalRows())
	assert.Equal(t, 1.0, densityScale(0, 1))
}

func TestReleaseOnce(t *testing.T) {
	world := physics.NewMockWorld()
	b, err := Generate(world, testConfig(PatternPyramid, 6, 3))
	require.NoError(t, err)
	require.True(t, b.Frozen())

	assert.True(t, b.Release())
	assert.False(t, b.Release(), "second release is a no-op")
	assert.True(t, b.Released())
	assert.False(t, b.Frozen())

	for _, blk := range b.Blocks() {
		body, _ := world.Body(blk.Body)
		assert.False(t, body.Def.Static)
	}

	assert.False(t, b.Freeze(), "released buildings stay dynamic")
	assert.False(t, b.Frozen())
	for _, blk := range b.Blocks() {
		body, _ := world.Body(blk.Body)
		assert.False(t, body.Def.Static)
	}
}

func TestFreezeOnlyBeforeRelease(t *testing.T) {
	b, err := Generate(physics.NewMockWorld(), testConfig(PatternStack, 4, 2))
	require.NoError(t, err)
	assert.False(t, b.Freeze(), "generated frozen")
	assert.True(t, b.Frozen())
	assert.False(t, b.Released())
}

func TestHeightTracking(t *testing.T) {
	world := physics.NewMockWorld()
	b, err := Generate(world, testConfig(PatternTower, 6, 2))
	require.NoError(t, err)
	b.Release()

	initial := b.InitialHeight()
	prev := b.CurrentHeight()

	// Lower the blocks row by row, as if the tower collapsed from the top
	blocks := b.Blocks()
	for row := b.TotalRows() - 1; row >= 0; row-- {
		for _, blk := range blocks {
			if blk.Row == row {
				p := world.Position(blk.Body)
				world.SetPosition(blk.Body, physics.Vec2{X: p.X + 100, Y: 650})
			}
		}
		h := b.CurrentHeight()
		assert.LessOrEqual(t, h, prev+1e-9)
		prev = h
		assert.Equal(t, initial, b.InitialHeight(), "initial height never changes")
	}
	assert.InDelta(t, 20, b.CurrentHeight(), 1e-9, "rubble on the ground is one block tall")
	assert.True(t, b.IsDestroyed(b.Threshold()))
}

func TestCurrentHeightUsesRotatedExtent(t *testing.T) {
	world := physics.NewMockWorld()
	b, err := Generate(world, testConfig(PatternStack, 1, 1))
	require.NoError(t, err)

	blk := b.Blocks()[0]
	p := world.Position(blk.Body)
	assert.InDelta(t, 100, b.CurrentHeight(), 1e-9)

	world.SetAngle(blk.Body, math.Pi/2)
	// Standing on end: the half width (17.5) replaces the half height (10)
	assert.InDelta(t, 660-(p.Y-17.5), b.CurrentHeight(), 1e-9)
}

func TestUpdateLowersFallenFriction(t *testing.T) {
	world := physics.NewMockWorld()
	b, err := Generate(world, testConfig(PatternStack, 3, 3))
	require.NoError(t, err)

	blk := b.Blocks()[0]
	b.Update()
	assert.Equal(t, 0.2, world.Friction(blk.Body))

	world.SetPosition(blk.Body, physics.Vec2{X: 700, Y: 660 - 80 + parameter.FallenEpsilon + 1})
	b.Update()
	assert.Equal(t, parameter.FallenFriction, world.Friction(blk.Body))
}

func TestOffsetAndDestroy(t *testing.T) {
	world := physics.NewMockWorld()
	b, err := Generate(world, testConfig(PatternOffset, 5, 2))
	require.NoError(t, err)

	before := world.Position(b.Blocks()[0].Body)
	pedBefore := world.Position(b.Pedestal())
	b.Offset(-1280)
	assert.InDelta(t, before.X-1280, world.Position(b.Blocks()[0].Body).X, 1e-9)
	assert.InDelta(t, pedBefore.X-1280, world.Position(b.Pedestal()).X, 1e-9)
	assert.InDelta(t, 880-1280, b.Config().OriginX, 1e-9)

	b.Destroy()
	assert.Zero(t, world.BodyCount())
	assert.Empty(t, b.Blocks())
	assert.Zero(t, b.CurrentHeight())
}

func TestGenerateRejectsEmpty(t *testing.T) {
	_, err := Generate(physics.NewMockWorld(), testConfig(PatternStack, 0, 3))
	assert.Error(t, err)
}

func TestTiers(t *testing.T) {
	tiers, err := LoadTiers(asset.Levels)
	require.NoError(t, err)
	require.Len(t, tiers, 8)

	assert.Equal(t, 3, tiers[0].Blocks)
	assert.Equal(t, []Pattern{PatternStack}, tiers[0].Patterns)
	assert.Equal(t, tiers[7], TierFor(tiers, 30), "last tier repeats")
	assert.Equal(t, tiers[0], TierFor(tiers, -1))

	rng := rand.New(rand.NewSource(1))
	blocks := config.Default().Blocks
	cfg := NewConfig(2, tiers, blocks, rng)
	assert.Equal(t, 8, cfg.TotalBlocks)
	assert.Contains(t, []Pattern{PatternStack, PatternPyramid}, cfg.Pattern)
	assert.Equal(t, float64(parameter.PedestalHeight), cfg.PedestalHeight)

	blocks.CountOverride = 13
	cfg = NewConfig(0, tiers, blocks, rng)
	assert.Equal(t, 13, cfg.TotalBlocks)
}

func TestLoadTiersErrors(t *testing.T) {
	_, err := LoadTiers([]byte("- blocks: 3\n  columns: 1\n  patterns: [spire]\n"))
	assert.ErrorIs(t, err, ErrUnknownPattern)

	_, err = LoadTiers([]byte("- blocks: 0\n  columns: 1\n  patterns: [stack]\n"))
	assert.Error(t, err)

	_, err = LoadTiers([]byte("[]"))
	assert.Error(t, err)
}
