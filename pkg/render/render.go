// Package render turns composed blocks into export artifacts.
//
// Every renderer is a pure function of the blocks and its format settings,
// so several formats of the same document can be produced side by side.
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
	"golang.org/x/sync/errgroup"
)

// Format identifies an export format.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// AllFormats returns the supported formats in export order.
func AllFormats() []Format {
	return []Format{FormatTXT, FormatPDF, FormatDOCX}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTXT, FormatPDF, FormatDOCX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want txt, pdf or docx)", s)
	}
}

// ParseFormats parses a comma-separated list, dropping duplicates.
// An empty list means every format.
func ParseFormats(csv string) ([]Format, error) {
	if strings.TrimSpace(csv) == "" {
		return AllFormats(), nil
	}

	var formats []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(csv, ",") {
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string {
	return string(f)
}

// MIME returns the media type served for the format.
func (f Format) MIME() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Artifact is one rendered output.
type Artifact struct {
	Format Format `json:"format"`
	Data   []byte `json:"-"`
	// Pages is the laid-out page count for paginated formats, 0 otherwise.
	Pages int `json:"pages,omitempty"`
}

// Size returns the artifact length in bytes.
func (a *Artifact) Size() int {
	return len(a.Data)
}

// Render renders blocks in a single format.
func Render(blocks []models.Block, format Format, cfg models.RenderConfig) (*Artifact, error) {
	switch format {
	case FormatTXT:
		return &Artifact{Format: format, Data: []byte(PlainText(blocks))}, nil
	case FormatPDF:
		pages := Layout(blocks, cfg.PDF)
		data, err := EncodePDF(pages, cfg.PDF)
		if err != nil {
			return nil, fmt.Errorf("failed to encode pdf: %w", err)
		}
		return &Artifact{Format: format, Data: data, Pages: len(pages)}, nil
	case FormatDOCX:
		data, err := DOCX(blocks, cfg.DOCX)
		if err != nil {
			return nil, fmt.Errorf("failed to encode docx: %w", err)
		}
		return &Artifact{Format: format, Data: data}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// RenderAll renders the same blocks in several formats concurrently.
// Results keep the order of formats; the first failure cancels the rest.
func RenderAll(ctx context.Context, blocks []models.Block, formats []Format, cfg models.RenderConfig) ([]*Artifact, error) {
	artifacts := make([]*Artifact, len(formats))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(len(AllFormats()))

	for i, format := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := Render(blocks, format, cfg)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			artifacts[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
