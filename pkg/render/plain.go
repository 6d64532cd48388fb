package render

import (
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
)

// PlainText joins every visual line of the blocks with newlines.
// Tables come out as pipe-joined rows; no styling survives.
func PlainText(blocks []models.Block) string {
	var lines []string
	for _, b := range blocks {
		switch b.Type {
		case models.BlockHeading, models.BlockParagraph:
			lines = append(lines, b.Text)
		case models.BlockTable:
			lines = append(lines, b.Table.Flatten()...)
		}
	}
	return strings.Join(lines, "\n")
}
