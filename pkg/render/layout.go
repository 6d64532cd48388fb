package render

import (
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
)

// PlacedLine is one line of text at a vertical offset from the top edge.
type PlacedLine struct {
	Text string
	Y    float64
	Size float64
	Bold bool
}

// Page holds the lines placed on a single page.
type Page struct {
	Lines []PlacedLine
}

type lineStyle struct {
	size float64
	bold bool
}

// Layout wraps block text to the configured width and distributes the lines
// over pages. Before a line is placed, a new page starts if the running
// offset is past PageBreakAt; the offset then resets to the top margin.
// Tables are flattened to rows first, header row in bold.
func Layout(blocks []models.Block, cfg models.PDFConfig) []Page {
	pages := []Page{{}}
	y := cfg.MarginTop

	place := func(text string, st lineStyle) {
		cur := &pages[len(pages)-1]
		if y > cfg.PageBreakAt && len(cur.Lines) > 0 {
			pages = append(pages, Page{})
			cur = &pages[len(pages)-1]
			y = cfg.MarginTop
		}
		cur.Lines = append(cur.Lines, PlacedLine{Text: text, Y: y, Size: st.size, Bold: st.bold})
		y += cfg.LineHeight * st.size / cfg.BodySize
	}

	for _, b := range blocks {
		switch b.Type {
		case models.BlockHeading:
			st := lineStyle{size: cfg.SectionSize, bold: true}
			if b.Level == models.LevelBanner {
				st.size = cfg.BannerSize
			}
			for _, l := range Wrap(b.Text, charsAt(cfg, st.size)) {
				place(l, st)
			}
		case models.BlockParagraph:
			st := lineStyle{size: cfg.BodySize, bold: b.Metadata}
			for _, l := range Wrap(b.Text, cfg.MaxChars) {
				place(l, st)
			}
		case models.BlockTable:
			for i, row := range b.Table.Flatten() {
				st := lineStyle{size: cfg.BodySize, bold: i == 0 && !b.Table.Raw}
				for _, l := range Wrap(row, cfg.MaxChars) {
					place(l, st)
				}
			}
		}
	}

	return pages
}

// charsAt scales the wrap width for a larger font; Courier advance is fixed.
func charsAt(cfg models.PDFConfig, size float64) int {
	n := int(float64(cfg.MaxChars) * cfg.BodySize / size)
	if n < 1 {
		return 1
	}
	return n
}

// Wrap breaks text into lines of at most width runes at word boundaries.
// Words longer than width are split. Whitespace-only text yields one
// empty line so blank paragraphs keep their vertical slot.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur []rune
	for _, w := range words {
		wr := []rune(w)
		for len(wr) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = cur[:0]
			}
			lines = append(lines, string(wr[:width]))
			wr = wr[width:]
		}

		switch {
		case len(cur) == 0:
			cur = append(cur, wr...)
		case len(cur)+1+len(wr) <= width:
			cur = append(cur, ' ')
			cur = append(cur, wr...)
		default:
			lines = append(lines, string(cur))
			cur = append(cur[:0], wr...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}

	return lines
}
