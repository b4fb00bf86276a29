package building

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPattern is returned for pattern names outside the closed set
var ErrUnknownPattern = errors.New("building: unknown pattern")

// Pattern selects a block layout
type Pattern uint8

const (
	PatternStack Pattern = iota
	PatternPyramid
	PatternTower
	PatternOffset
	PatternBridge
	PatternCastle
	PatternOverhang
	PatternWall
	patternCount
)

var patternNames = [patternCount]string{
	"stack", "pyramid", "tower", "offset", "bridge", "castle", "overhang", "wall",
}

func (p Pattern) String() string {
	if p < patternCount {
		return patternNames[p]
	}
	return fmt.Sprintf("pattern(%d)", p)
}

// ParsePattern resolves a pattern name, case-insensitive
func ParsePattern(name string) (Pattern, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range patternNames {
		if n == name {
			return Pattern(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
}

// Patterns returns every pattern in declaration order
func Patterns() []Pattern {
	out := make([]Pattern, patternCount)
	for i := range out {
		out[i] = Pattern(i)
	}
	return out
}

// layout is the two-function contract every pattern implements
// slots places exactly n units, rows predicts the distinct rows slots uses
type layout struct {
	slots func(n, cols int) []Slot
	rows  func(n, cols int) int
}

var layouts = [patternCount]layout{
	PatternStack:    {slots: stackSlots, rows: stackRows},
	PatternPyramid:  {slots: pyramidSlots, rows: pyramidRows},
	PatternTower:    {slots: towerSlots, rows: towerRows},
	PatternOffset:   {slots: offsetSlots, rows: offsetRows},
	PatternBridge:   {slots: bridgeSlots, rows: bridgeRows},
	PatternCastle:   {slots: castleSlots, rows: castleRows},
	PatternOverhang: {slots: overhangSlots, rows: overhangRows},
	PatternWall:     {slots: wallSlots, rows: wallRows},
}

// Layout returns the slots of a pattern for n block units over cols columns
func Layout(p Pattern, n, cols int) ([]Slot, error) {
	if p >= patternCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPattern, p)
	}
	if n <= 0 {
		return nil, nil
	}
	return layouts[p].slots(n, max(1, cols)), nil
}

// PredictRows returns the row count of a layout without placing blocks
func PredictRows(p Pattern, n, cols int) (int, error) {
	if p >= patternCount {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPattern, p)
	}
	if n <= 0 {
		return 0, nil
	}
	return layouts[p].rows(n, max(1, cols)), nil
}
