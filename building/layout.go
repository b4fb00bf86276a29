package building

import "math"

// Slot is one block position in grid units
// Col is the left edge in block widths and may be fractional for shifted rows
type Slot struct {
	Row   int
	Col   float64
	Units int // 1 = single, 2 = double width
}

// Width returns the slot width in block widths
func (s Slot) Width() float64 {
	return float64(s.Units)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// fillRow places up to cols columns of units starting at row, returns units left
// With doubles set, even columns that have a right neighbour take a double block while 2+ units remain
func fillRow(out []Slot, row, cols int, shift float64, remaining int, doubles bool) ([]Slot, int) {
	for c := 0; c < cols && remaining > 0; {
		if doubles && c%2 == 0 && c+1 < cols && remaining >= 2 {
			out = append(out, Slot{Row: row, Col: float64(c) + shift, Units: 2})
			c += 2
			remaining -= 2
			continue
		}
		out = append(out, Slot{Row: row, Col: float64(c) + shift, Units: 1})
		c++
		remaining--
	}
	return out, remaining
}

// centeredRow places count singles centered within cols
func centeredRow(out []Slot, row, cols, count int) []Slot {
	start := float64(cols-count) / 2
	for i := 0; i < count; i++ {
		out = append(out, Slot{Row: row, Col: start + float64(i), Units: 1})
	}
	return out
}

// stack: row-major, bottom two rows prefer doubles
// A double covers two columns for two units, so every full row costs cols units
func stackSlots(n, cols int) []Slot {
	var out []Slot
	for row, remaining := 0, n; remaining > 0; row++ {
		out, remaining = fillRow(out, row, cols, 0, remaining, row < 2)
	}
	return out
}

func stackRows(n, cols int) int {
	return ceilDiv(n, cols)
}

// pyramid: each row one column narrower, wrapping to full width at zero (stepped ziggurat)
func pyramidSlots(n, cols int) []Slot {
	var out []Slot
	width := cols
	for row, remaining := 0, n; remaining > 0; row++ {
		count := min(width, remaining)
		out = centeredRow(out, row, cols, count)
		remaining -= count
		width = nextPyramidWidth(width, cols)
	}
	return out
}

func pyramidRows(n, cols int) int {
	rows := 0
	width := cols
	for remaining := n; remaining > 0; rows++ {
		remaining -= min(width, remaining)
		width = nextPyramidWidth(width, cols)
	}
	return rows
}

func nextPyramidWidth(width, cols int) int {
	width--
	if width <= 0 {
		return cols
	}
	return width
}

// tower: at most two columns wide, centered
func towerSlots(n, cols int) []Slot {
	tw := min(2, cols)
	var out []Slot
	for row, remaining := 0, n; remaining > 0; row++ {
		count := min(tw, remaining)
		shift := float64(cols-tw) / 2
		for i := 0; i < count; i++ {
			out = append(out, Slot{Row: row, Col: shift + float64(i), Units: 1})
		}
		remaining -= count
	}
	return out
}

func towerRows(n, cols int) int {
	return ceilDiv(n, min(2, cols))
}

// wall: one block per row regardless of columns
// Height is bounded by WallRowCap before layout
func wallSlots(n, _ int) []Slot {
	out := make([]Slot, n)
	for row := range out {
		out[row] = Slot{Row: row, Units: 1}
	}
	return out
}

func wallRows(n, _ int) int {
	return n
}

// wallTopMargin is the space kept above the highest wall block
const wallTopMargin = 20

// WallRowCap is the most rows a wall can stack above ground without leaving the screen
func WallRowCap(ground, blockHeight float64) int {
	if blockHeight <= 0 {
		return 1
	}
	return max(1, int(math.Floor((ground-wallTopMargin)/blockHeight)))
}

// offset: full-width rows, odd rows shifted half a block (brick bond)
func offsetSlots(n, cols int) []Slot {
	var out []Slot
	for row, remaining := 0, n; remaining > 0; row++ {
		shift := 0.0
		if row%2 == 1 {
			shift = 0.5
		}
		out, remaining = fillRow(out, row, cols, shift, remaining, false)
	}
	return out
}

func offsetRows(n, cols int) int {
	return ceilDiv(n, cols)
}

// bridge geometry shared by slots and rows
type bridgeShape struct {
	spanCols    int
	pillarUnits int
	spanUnits   int
}

func bridgeFor(n, cols int) bridgeShape {
	spanCols := max(cols, 6)
	spanRows := max(1, int(math.Floor(float64(n)*0.15)))
	pillar := max(0, n-spanRows*spanCols)
	return bridgeShape{
		spanCols:    spanCols,
		pillarUnits: pillar,
		spanUnits:   n - pillar,
	}
}

// bridge: two 2-wide pillars on the outer columns, then a double-wide span on top
func bridgeSlots(n, cols int) []Slot {
	b := bridgeFor(n, cols)
	pillarCols := []int{0, 1, b.spanCols - 2, b.spanCols - 1}

	var out []Slot
	row := 0
	for remaining := b.pillarUnits; remaining > 0; row++ {
		for _, c := range pillarCols {
			if remaining == 0 {
				break
			}
			out = append(out, Slot{Row: row, Col: float64(c), Units: 1})
			remaining--
		}
	}
	for remaining := b.spanUnits; remaining > 0; row++ {
		out, remaining = fillRow(out, row, b.spanCols, 0, remaining, true)
	}
	return out
}

func bridgeRows(n, cols int) int {
	b := bridgeFor(n, cols)
	return ceilDiv(b.pillarUnits, 4) + ceilDiv(b.spanUnits, b.spanCols)
}

// castle geometry shared by slots and rows
type castleShape struct {
	baseUnits   int
	turretUnits int
	turretCols  int
}

func castleFor(n, cols int) castleShape {
	baseRows := max(2, int(math.Floor(float64(ceilDiv(n, cols))*0.4)))
	base := min(n, baseRows*cols)
	return castleShape{
		baseUnits:   base,
		turretUnits: n - base,
		turretCols:  ceilDiv(cols, 2),
	}
}

// castle: full-width base wall with doubles, turrets on even columns above it
func castleSlots(n, cols int) []Slot {
	c := castleFor(n, cols)

	var out []Slot
	row := 0
	for remaining := c.baseUnits; remaining > 0; row++ {
		out, remaining = fillRow(out, row, cols, 0, remaining, true)
	}
	for remaining := c.turretUnits; remaining > 0; row++ {
		for col := 0; col < cols && remaining > 0; col += 2 {
			out = append(out, Slot{Row: row, Col: float64(col), Units: 1})
			remaining--
		}
	}
	return out
}

func castleRows(n, cols int) int {
	c := castleFor(n, cols)
	return ceilDiv(c.baseUnits, cols) + ceilDiv(c.turretUnits, c.turretCols)
}

// overhang: narrow base widening upward, centered so both sides overhang
func overhangSlots(n, cols int) []Slot {
	widths := overhangWidths(n, cols)
	var out []Slot
	remaining := n
	for row, w := range widths {
		count := min(w, remaining)
		out = centeredRow(out, row, cols, count)
		remaining -= count
	}
	return out
}

func overhangRows(n, cols int) int {
	return len(overhangWidths(n, cols))
}

func overhangWidths(n, cols int) []int {
	minCols := min(2, cols)
	avgCols := float64(minCols+cols) / 2
	estRows := int(math.Ceil(float64(n) / avgCols))

	var widths []int
	for row, remaining := 0, n; remaining > 0; row++ {
		progress := math.Min(1, float64(row)/float64(max(1, estRows-1)))
		w := int(math.Round(float64(minCols) + float64(cols-minCols)*progress))
		w = max(1, w)
		widths = append(widths, w)
		remaining -= min(w, remaining)
	}
	return widths
}
