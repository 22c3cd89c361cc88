package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// tilePadding is the horizontal padding tileStyle adds to each letter.
const tilePadding = 2

// wrapTiles splits letters into rows whose rendered width fits within width.
// A width of zero or less keeps everything on one row.
func wrapTiles(letters []rune, width int) [][]rune {
	if len(letters) == 0 {
		return nil
	}
	if width <= 0 {
		return [][]rune{letters}
	}
	var rows [][]rune
	row := make([]rune, 0, len(letters))
	rowWidth := 0
	for _, r := range letters {
		w := runewidth.RuneWidth(r) + tilePadding
		gap := 0
		if len(row) > 0 {
			gap = 1
		}
		if len(row) > 0 && rowWidth+gap+w > width {
			rows = append(rows, row)
			row = make([]rune, 0, len(letters))
			rowWidth, gap = 0, 0
		}
		row = append(row, r)
		rowWidth += gap + w
	}
	return append(rows, row)
}

func renderTiles(letters []rune, width int) string {
	rows := wrapTiles(letters, width)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, r := range row {
			cells = append(cells, tileStyle.Render(string(r)))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}
