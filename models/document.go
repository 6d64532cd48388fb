package models

import "strings"

// BlockType tags the variant held by a Block.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockTable     BlockType = "table"
)

// Heading levels carried by heading blocks.
const (
	LevelBanner  = 1
	LevelSection = 2
)

// Table is a rectangular-ish grid extracted from pipe rows.
// Headers is row 0; Rows holds the body. Ragged rows are kept as-is.
type Table struct {
	Headers []string   `json:"headers,omitempty" yaml:"headers,omitempty"`
	Rows    [][]string `json:"rows" yaml:"rows"`
	// Raw marks the degenerate fallback: a single cell holding the source lines verbatim.
	Raw bool `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Flatten renders the table back into pipe rows, header first.
func (t *Table) Flatten() []string {
	if t == nil {
		return nil
	}
	if t.Raw {
		var lines []string
		for _, cell := range t.Headers {
			lines = append(lines, strings.Split(cell, "\n")...)
		}
		return lines
	}

	lines := make([]string, 0, len(t.Rows)+1)
	if len(t.Headers) > 0 {
		lines = append(lines, pipeRow(t.Headers))
	}
	for _, row := range t.Rows {
		lines = append(lines, pipeRow(row))
	}
	return lines
}

// Columns returns the widest row length, header included.
func (t *Table) Columns() int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func pipeRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

// Block is one structural unit of a composed document.
type Block struct {
	Type  BlockType `json:"type" yaml:"type"`
	Text  string    `json:"text,omitempty" yaml:"text,omitempty"`
	Level int       `json:"level,omitempty" yaml:"level,omitempty"` // headings only
	// Metadata marks paragraphs that came from a metadata label line.
	Metadata bool   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Table    *Table `json:"table,omitempty" yaml:"table,omitempty"`
}

// NewHeading builds a heading block.
func NewHeading(text string, level int) Block {
	return Block{Type: BlockHeading, Text: text, Level: level}
}

// NewParagraph builds a paragraph block.
func NewParagraph(text string) Block {
	return Block{Type: BlockParagraph, Text: text}
}

// NewTableBlock wraps a table.
func NewTableBlock(t Table) Block {
	return Block{Type: BlockTable, Table: &t}
}

// Lines returns the visual lines of a block: one for headings and
// paragraphs, one per row for tables.
func (b Block) Lines() []string {
	switch b.Type {
	case BlockTable:
		return b.Table.Flatten()
	case BlockHeading, BlockParagraph:
		return []string{b.Text}
	default:
		return nil
	}
}

// Document is an ordered block sequence with a title used for artifact metadata.
type Document struct {
	Title  string  `json:"title" yaml:"title"`
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// ToPlainText concatenates readable text from all blocks, one visual line per row.
func (d *Document) ToPlainText() string {
	var sb strings.Builder

	for _, block := range d.Blocks {
		for _, line := range block.Lines() {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
