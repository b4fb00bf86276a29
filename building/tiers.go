package building

import (
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/spell-smash/config"
	"github.com/lixenwraith/spell-smash/parameter"
)

// Tier is one row of the difficulty table
type Tier struct {
	Blocks   int
	Columns  int
	Patterns []Pattern
}

type tierDoc struct {
	Blocks   int      `yaml:"blocks"`
	Columns  int      `yaml:"columns"`
	Patterns []string `yaml:"patterns"`
}

// LoadTiers parses the YAML tier table
func LoadTiers(data []byte) ([]Tier, error) {
	var docs []tierDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse building tiers: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("building tiers: empty table")
	}

	tiers := make([]Tier, 0, len(docs))
	for i, d := range docs {
		if d.Blocks < 1 || d.Columns < 1 || len(d.Patterns) == 0 {
			return nil, fmt.Errorf("building tier %d: blocks, columns and patterns are required", i+1)
		}
		t := Tier{Blocks: d.Blocks, Columns: d.Columns}
		for _, name := range d.Patterns {
			p, err := ParsePattern(name)
			if err != nil {
				return nil, fmt.Errorf("building tier %d: %w", i+1, err)
			}
			t.Patterns = append(t.Patterns, p)
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}

// TierFor returns the tier of a building index, the last tier repeats
func TierFor(tiers []Tier, index int) Tier {
	index = max(0, min(index, len(tiers)-1))
	return tiers[index]
}

// NewConfig derives a building configuration from the tier table and session knobs
func NewConfig(index int, tiers []Tier, blocks config.BlockConfig, rng *rand.Rand) Config {
	tier := TierFor(tiers, index)

	total := tier.Blocks
	if blocks.CountOverride > 0 {
		total = blocks.CountOverride
	}

	return Config{
		TotalBlocks:    total,
		Columns:        tier.Columns,
		BlockWidth:     blocks.Width,
		BlockHeight:    blocks.Height,
		OriginX:        parameter.BuildingX,
		GroundY:        parameter.GroundY,
		Pattern:        tier.Patterns[rng.Intn(len(tier.Patterns))],
		PedestalHeight: parameter.PedestalHeight,
		Density:        blocks.Density,
		Friction:       blocks.Friction,
		Restitution:    blocks.Restitution,
	}
}
