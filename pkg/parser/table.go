package parser

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
)

var separatorCell = regexp.MustCompile(`^-+$`)

// ExtractTable turns a run of pipe rows into a table. Separator rows are
// dropped, the first remaining row is the header. A run with no content rows
// falls back to a single raw cell holding the lines verbatim.
func ExtractTable(rows []string) models.Table {
	var table models.Table
	haveHeader := false

	for _, raw := range rows {
		cells := splitRow(raw)
		if isSeparatorRow(cells) {
			continue
		}
		if !haveHeader {
			table.Headers = cells
			haveHeader = true
			continue
		}
		table.Rows = append(table.Rows, cells)
	}

	if !haveHeader {
		return models.Table{
			Headers: []string{strings.Join(rows, "\n")},
			Raw:     true,
		}
	}
	return table
}

// splitRow splits a pipe row into trimmed cells. The segment before the
// leading pipe is dropped, as is the segment after a closing pipe.
// Escaped pipes (\|) stay inside their cell.
func splitRow(raw string) []string {
	trimmed := strings.TrimSpace(raw)

	var segments []string
	var cur strings.Builder
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == '\\' && i+1 < len(trimmed) && trimmed[i+1] == '|' {
			cur.WriteByte('|')
			i++
			continue
		}
		if c == '|' {
			segments = append(segments, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	segments = append(segments, cur.String())

	if len(segments) > 0 {
		segments = segments[1:]
	}
	// Without a closing pipe the last segment is a real cell, so it stays.
	if strings.HasSuffix(trimmed, "|") && !strings.HasSuffix(trimmed, `\|`) && len(segments) > 0 {
		segments = segments[:len(segments)-1]
	}

	cells := make([]string, len(segments))
	for i, s := range segments {
		cells[i] = strings.TrimSpace(s)
	}
	return cells
}

// isSeparatorRow reports whether every cell is a markdown divider such as "---" or ":--:".
func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if !separatorCell.MatchString(strings.ReplaceAll(cell, ":", "")) {
			return false
		}
	}
	return true
}
