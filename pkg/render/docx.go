package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
		`</Types>`

	relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
		`</Relationships>`

	wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	// A4 portrait in twips.
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
)

type runStyle struct {
	size   int
	bold   bool
	italic bool
}

type paraStyle struct {
	before, after int
	rule          bool
}

// DOCX builds a WordprocessingML package. Headings are bold at their own
// sizes with spacing around them and section headings get a bottom rule.
// Tables span the full text width with a bold header row.
func DOCX(blocks []models.Block, cfg models.DOCXConfig) ([]byte, error) {
	var body strings.Builder
	d := docxWriter{cfg: cfg, b: &body}

	for i, blk := range blocks {
		switch blk.Type {
		case models.BlockHeading:
			if blk.Level == models.LevelBanner {
				d.paragraph(blk.Text, paraStyle{before: 360, after: 160}, runStyle{size: cfg.BannerSize, bold: true})
			} else {
				d.paragraph(blk.Text, paraStyle{before: 240, after: 120, rule: true}, runStyle{size: cfg.SectionSize, bold: true})
			}
		case models.BlockParagraph:
			d.paragraph(blk.Text, paraStyle{after: 60}, runStyle{size: cfg.BodySize, italic: blk.Metadata})
		case models.BlockTable:
			d.table(blk.Table)
			// a body must not end on a table
			if i == len(blocks)-1 {
				d.paragraph("", paraStyle{}, runStyle{size: cfg.BodySize})
			}
		}
	}

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	fmt.Fprintf(&doc, `<w:document xmlns:w="%s"><w:body>`, wordNS)
	doc.WriteString(body.String())
	fmt.Fprintf(&doc,
		`<w:sectPr><w:pgSz w:w="%d" w:h="%d"/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>`,
		pageWidthTwips, pageHeightTwips, cfg.Margin, cfg.Margin, cfg.Margin, cfg.Margin)
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, data string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", doc.String()},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.data)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish docx archive: %w", err)
	}

	return buf.Bytes(), nil
}

type docxWriter struct {
	cfg models.DOCXConfig
	b   *strings.Builder
}

func (d docxWriter) paragraph(text string, ps paraStyle, rs runStyle) {
	d.b.WriteString(`<w:p><w:pPr>`)
	if ps.rule {
		d.b.WriteString(`<w:pBdr><w:bottom w:val="single" w:sz="4" w:space="1" w:color="808080"/></w:pBdr>`)
	}
	fmt.Fprintf(d.b, `<w:spacing w:before="%d" w:after="%d"/></w:pPr>`, ps.before, ps.after)
	d.run(text, rs)
	d.b.WriteString(`</w:p>`)
}

func (d docxWriter) run(text string, rs runStyle) {
	d.b.WriteString(`<w:r><w:rPr>`)
	fmt.Fprintf(d.b, `<w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:cs="%[1]s"/>`, escapeAttr(d.cfg.Font))
	if rs.bold {
		d.b.WriteString(`<w:b/>`)
	}
	if rs.italic {
		d.b.WriteString(`<w:i/>`)
	}
	fmt.Fprintf(d.b, `<w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">`, rs.size)
	_ = xml.EscapeText(d.b, []byte(text)) // strings.Builder never fails
	d.b.WriteString(`</w:t></w:r>`)
}

func (d docxWriter) table(t *models.Table) {
	cols := t.Columns()
	if cols == 0 {
		return
	}
	textWidth := pageWidthTwips - 2*d.cfg.Margin
	colWidth := textWidth / cols

	d.b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>`)
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(d.b, `<w:%s w:val="single" w:sz="4" w:space="0" w:color="808080"/>`, edge)
	}
	d.b.WriteString(`</w:tblBorders><w:tblLayout w:type="fixed"/></w:tblPr><w:tblGrid>`)
	for range cols {
		fmt.Fprintf(d.b, `<w:gridCol w:w="%d"/>`, colWidth)
	}
	d.b.WriteString(`</w:tblGrid>`)

	if t.Raw {
		d.b.WriteString(`<w:tr>`)
		d.cell(strings.Split(strings.Join(t.Headers, "\n"), "\n"), colWidth*cols, false)
		d.b.WriteString(`</w:tr></w:tbl>`)
		return
	}

	if len(t.Headers) > 0 {
		d.row(t.Headers, cols, colWidth, true)
	}
	for _, r := range t.Rows {
		d.row(r, cols, colWidth, false)
	}
	d.b.WriteString(`</w:tbl>`)
}

// row pads ragged rows with empty cells so the grid stays rectangular.
func (d docxWriter) row(cells []string, cols, width int, header bool) {
	d.b.WriteString(`<w:tr>`)
	if header {
		d.b.WriteString(`<w:trPr><w:tblHeader/></w:trPr>`)
	}
	for i := range cols {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		d.cell([]string{text}, width, header)
	}
	d.b.WriteString(`</w:tr>`)
}

func (d docxWriter) cell(lines []string, width int, bold bool) {
	fmt.Fprintf(d.b, `<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/></w:tcPr>`, width)
	for _, l := range lines {
		d.paragraph(l, paraStyle{}, runStyle{size: d.cfg.BodySize, bold: bold})
	}
	d.b.WriteString(`</w:tc>`)
}

func escapeAttr(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
