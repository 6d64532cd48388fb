package parser

import (
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/detector"
)

// blankText keeps one child per visual line for blank input lines.
const blankText = " "

// Compose walks the lines once and produces the ordered block sequence.
// Consecutive table rows, separators included, become a single table block.
func Compose(lines []string) []models.Block {
	blocks := make([]models.Block, 0, len(lines))

	for i := 0; i < len(lines); {
		cl := detector.Classify(lines[i])

		if cl.Role == models.RoleTableRow {
			end := i + 1
			for end < len(lines) && detector.Classify(lines[end]).Role == models.RoleTableRow {
				end++
			}
			blocks = append(blocks, models.NewTableBlock(ExtractTable(lines[i:end])))
			i = end
			continue
		}

		blocks = append(blocks, blockFor(cl))
		i++
	}

	return blocks
}

// ComposeText splits text on newlines and composes it.
func ComposeText(text string) []models.Block {
	return Compose(SplitLines(text))
}

// SplitLines splits on \n, dropping \r from CRLF input.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

func blockFor(cl models.ClassifiedLine) models.Block {
	switch cl.Role {
	case models.RoleBanner:
		return models.NewHeading(cl.Display, models.LevelBanner)
	case models.RoleSection:
		return models.NewHeading(cl.Display, models.LevelSection)
	case models.RoleMetadata:
		b := models.NewParagraph(cl.Text)
		b.Metadata = true
		return b
	default:
		if cl.Blank() {
			return models.NewParagraph(blankText)
		}
		return models.NewParagraph(cl.Text)
	}
}
