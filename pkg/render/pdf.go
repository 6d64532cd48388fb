package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

const (
	fontRegular = "Courier"
	fontBold    = "Courier-Bold"
)

// pdfDoc mirrors the subset of pdfcpu's JSON page description we use:
// positioned text boxes on numbered pages, origin at the upper left.
type pdfDoc struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfContent struct {
	Text []pdfText `json:"text,omitempty"`
}

type pdfText struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  pdfFont    `json:"font"`
}

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// EncodePDF builds laid-out pages with pdfcpu using the core Courier faces,
// which pdfcpu encodes as WinAnsi. Runes outside Windows-1252 become '?'.
func EncodePDF(pages []Page, cfg models.PDFConfig) ([]byte, error) {
	if len(pages) == 0 {
		pages = []Page{{}}
	}

	doc := pdfDoc{
		Paper:  cfg.Paper,
		Origin: "UpperLeft",
		Pages:  make(map[string]pdfPage, len(pages)),
	}
	for i, page := range pages {
		doc.Pages[strconv.Itoa(i+1)] = pdfPage{Content: pageContent(page, cfg)}
	}

	desc, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode page description: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &buf, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("pdfcpu create: %w", err)
	}
	return buf.Bytes(), nil
}

func pageContent(page Page, cfg models.PDFConfig) pdfContent {
	var c pdfContent
	for _, l := range page.Lines {
		if strings.TrimSpace(l.Text) == "" {
			continue
		}
		font := fontRegular
		if l.Bold {
			font = fontBold
		}
		c.Text = append(c.Text, pdfText{
			Value: pdfValue(l.Text),
			// pos is the bottom edge of the line box
			Pos:  [2]float64{cfg.MarginLeft, l.Y + l.Size},
			Font: pdfFont{Name: font, Size: int(math.Round(l.Size))},
		})
	}
	return c
}

// pdfValue maps text onto Windows-1252 and doubles '%', which pdfcpu reads
// as the start of a page-number or timestamp placeholder.
func pdfValue(s string) string {
	enc := charmap.Windows1252
	var b strings.Builder
	for _, r := range s {
		if _, ok := enc.EncodeRune(r); !ok {
			r = '?'
		}
		if r == '%' {
			b.WriteByte('%')
		}
		b.WriteRune(r)
	}
	return b.String()
}
