package markup

import (
	"strings"

	"github.com/matzehuels/mdslides/pkg/deck"
)

// ParseTable builds a table from pipe-table lines. Line 0 holds the headers
// and line 1 the divider, which is discarded. Body rows shorter than the
// header are padded with blank cells; longer rows keep their extra cells.
func ParseTable(lines []string) deck.Table {
	if len(lines) == 0 {
		return deck.Table{}
	}
	headers := splitCells(lines[0])
	table := deck.Table{Headers: headers}
	if len(lines) < 3 {
		return table
	}
	for _, line := range lines[2:] {
		cells := splitCells(line)
		for len(cells) < len(headers) {
			cells = append(cells, "")
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func splitCells(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), columnSep)
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if n := len(parts); n > 0 && strings.TrimSpace(parts[n-1]) == "" {
		parts = parts[:n-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func isTableStart(lines []string, i int) bool {
	return strings.Contains(lines[i], columnSep) &&
		i+1 < len(lines) &&
		patterns.tableDivider.MatchString(lines[i+1])
}
