package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lixenwraith/spell-smash/building"
)

// cellWidth is the number of characters per block unit
const cellWidth = 2

var (
	blocksFlag  = flag.Int("blocks", 24, "Block units to place")
	columnsFlag = flag.Int("columns", 6, "Columns of the building")
	patternFlag = flag.String("pattern", "", "Single pattern to print, empty for all")
)

func main() {
	flag.Parse()

	patterns := building.Patterns()
	if *patternFlag != "" {
		p, err := building.ParsePattern(*patternFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		patterns = []building.Pattern{p}
	}

	for _, p := range patterns {
		if err := preview(os.Stdout, p, *blocksFlag, *columnsFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// preview prints one pattern with its predicted and actual row count
func preview(w io.Writer, p building.Pattern, n, cols int) error {
	slots, err := building.Layout(p, n, cols)
	if err != nil {
		return err
	}
	predicted, err := building.PredictRows(p, n, cols)
	if err != nil {
		return err
	}

	units := 0
	for _, s := range slots {
		units += s.Units
	}
	lines := draw(slots)

	fmt.Fprintf(w, "=== %s: %d units, %d columns ===\n", p, n, cols)
	fmt.Fprintf(w, "Rows: predicted %d, drawn %d   Units placed: %d\n", predicted, len(lines), units)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
	return nil
}

// draw renders slots as text rows, top row first
// Single blocks are [] and doubles [==], half-column shifts move one character
func draw(slots []building.Slot) []string {
	rows := 0
	left, right := 0.0, 0.0
	for i, s := range slots {
		if i == 0 || s.Col < left {
			left = s.Col
		}
		right = max(right, s.Col+s.Width())
		rows = max(rows, s.Row+1)
	}
	width := int((right-left)*cellWidth + 0.5)

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	for _, s := range slots {
		x := int((s.Col-left)*cellWidth + 0.5)
		glyph := "[]"
		if s.Units == 2 {
			glyph = "[==]"
		}
		row := grid[rows-1-s.Row]
		for i, r := range glyph {
			if x+i >= 0 && x+i < len(row) {
				row[x+i] = r
			}
		}
	}

	out := make([]string, rows)
	for i, r := range grid {
		out[i] = strings.TrimRight(string(r), " ")
	}
	return out
}
