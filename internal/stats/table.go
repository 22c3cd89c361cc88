package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// formatTable lays out rows in columns sized by terminal display width.
// Columns listed in rightAlign are padded on the left.
func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) []string {
	all := rows
	if len(headers) > 0 {
		all = append([][]string{headers}, rows...)
	}

	var widths []int
	for _, row := range all {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	if len(widths) == 0 {
		return nil
	}

	lines := make([]string, 0, len(all))
	cells := make([]string, len(widths))
	for _, row := range all {
		for i, width := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if rightAlign[i] {
				cells[i] = runewidth.FillLeft(cell, width)
			} else {
				cells[i] = runewidth.FillRight(cell, width)
			}
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}
