package parser

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// Parser turns HTML source material into the line format the composer reads.
type Parser struct {
	logger      *slog.Logger
	policy      *bluemonday.Policy
	mdConverter *converter.Converter
}

// NewParser creates a Parser. A nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger: logger,
		policy: bluemonday.UGCPolicy(),
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Source is an HTML document converted to lines.
type Source struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// ParseHTML extracts the readable part of an HTML page. Headings become
// "=== text ===" section lines and tables become pipe rows. When readability
// finds no article the sanitised HTML is converted through markdown instead.
func (p *Parser) ParseHTML(rawURL, html string) (*Source, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}

	title := pageTitle(html)
	clean := p.policy.Sanitize(html)

	rp := readability.NewParser()
	article, err := rp.Parse(strings.NewReader(clean), parsedURL)
	if err == nil && strings.TrimSpace(article.Content) != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
		if err != nil {
			return nil, fmt.Errorf("failed to read article content: %w", err)
		}
		lines := linesFromDocument(doc)
		if len(lines) > 0 {
			if title == "" {
				title = normalizeText(article.Title)
			}
			return &Source{Title: title, Lines: lines}, nil
		}
	} else if err != nil {
		p.logger.Debug("readability found no article, converting fragment", "url", rawURL, "error", err)
	}

	md, err := p.mdConverter.ConvertString(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return &Source{Title: title, Lines: linesFromMarkdown(md)}, nil
}

func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return normalizeText(doc.Find("title").First().Text())
}

// linesFromDocument walks content tags in document order.
func linesFromDocument(doc *goquery.Document) []string {
	var lines []string

	doc.Find("h1,h2,h3,h4,p,li,table").Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		if tag != "table" && s.ParentsFiltered("table").Length() > 0 {
			return
		}
		if tag == "p" && s.ParentsFiltered("li").Length() > 0 {
			return
		}

		switch tag {
		case "table":
			lines = append(lines, tableRows(s)...)
		case "h1", "h2", "h3", "h4":
			if text := normalizeText(s.Text()); text != "" {
				lines = append(lines, "=== "+text+" ===")
			}
		case "li":
			if text := normalizeText(s.Text()); text != "" {
				lines = append(lines, "- "+text)
			}
		default:
			if text := normalizeText(s.Text()); text != "" {
				lines = append(lines, text)
			}
		}
	})

	return lines
}

// tableRows renders an HTML table as pipe rows with a divider after the first row.
func tableRows(s *goquery.Selection) []string {
	var rows []string
	s.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th,td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.ReplaceAll(normalizeText(cell.Text()), "|", `\|`))
		})
		if len(cells) == 0 {
			return
		}
		rows = append(rows, "| "+strings.Join(cells, " | ")+" |")
		if len(rows) == 1 {
			rows = append(rows, "|"+strings.Repeat(" --- |", len(cells)))
		}
	})
	return rows
}

// linesFromMarkdown maps ATX headings onto section lines and keeps everything else.
func linesFromMarkdown(md string) []string {
	var lines []string
	for _, line := range SplitLines(md) {
		trimmed := strings.TrimSpace(line)
		if rest := strings.TrimLeft(trimmed, "#"); rest != trimmed && strings.HasPrefix(rest, " ") {
			text := strings.TrimSpace(strings.TrimRight(rest, "#"))
			if text != "" {
				lines = append(lines, "=== "+text+" ===")
				continue
			}
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return trimBlankEdges(lines)
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// normalizeText collapses all whitespace runs into single spaces.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
