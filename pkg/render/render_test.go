package render

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func sampleBlocks() []models.Block {
	meta := models.NewParagraph("Level: B1")
	meta.Metadata = true
	return []models.Block{
		models.NewHeading("WORKSHEET", models.LevelBanner),
		meta,
		models.NewParagraph(" "),
		models.NewHeading("Vocabulary", models.LevelSection),
		models.NewTableBlock(models.Table{
			Headers: []string{"Word", "Meaning"},
			Rows:    [][]string{{"fast", "quick"}, {"slow"}},
		}),
		models.NewParagraph("Café (naïve) costs 5€ \\ 中"),
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText(sampleBlocks())
	want := strings.Join([]string{
		"WORKSHEET",
		"Level: B1",
		" ",
		"Vocabulary",
		"| Word | Meaning |",
		"| fast | quick |",
		"| slow |",
		"Café (naïve) costs 5€ \\ 中",
	}, "\n")
	if got != want {
		t.Errorf("PlainText() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []Format
		wantErr bool
	}{
		{"empty means all", "", AllFormats(), false},
		{"single", "pdf", []Format{FormatPDF}, false},
		{"case and spaces", " TXT , docx", []Format{FormatTXT, FormatDOCX}, false},
		{"duplicates", "pdf,pdf", []Format{FormatPDF}, false},
		{"unknown", "odt", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFormats() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPDFValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "Level: B1", "Level: B1"},
		{"latin and euro", "café 5€", "café 5€"},
		{"outside cp1252", "Beijing 北京", "Beijing ??"},
		{"percent", "50% off", "50%% off"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pdfValue(tt.in); got != tt.want {
				t.Errorf("pdfValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func pageStream(t *testing.T, data []byte, pageNr int) string {
	t.Helper()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		t.Fatalf("ReadValidateAndOptimize() error = %v", err)
	}
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		t.Fatalf("ExtractPageContent(%d) error = %v", pageNr, err)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read page content: %v", err)
	}
	return string(content)
}

func TestRender_PDFText(t *testing.T) {
	blocks := append(sampleBlocks(), models.NewParagraph("Score 50% or more"))
	a, err := Render(blocks, FormatPDF, models.DefaultConfig().Render)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	content := pageStream(t, a.Data, 1)
	for _, want := range []string{"(WORKSHEET) Tj", "(Vocabulary) Tj", "(Level: B1) Tj", "(Score 50% or more) Tj"} {
		if !strings.Contains(content, want) {
			t.Errorf("page 1 content missing %q", want)
		}
	}
}

func TestRender_PDFValidates(t *testing.T) {
	cfg := models.DefaultConfig().Render

	tests := []struct {
		name   string
		blocks []models.Block
		pages  int
	}{
		{"empty document", nil, 1},
		{"sample", sampleBlocks(), 1},
		{"two pages", bodyLines(53), 2},
		{"long document", bodyLines(52 * 4), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Render(tt.blocks, FormatPDF, cfg)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if a.Pages != tt.pages {
				t.Errorf("Artifact.Pages = %d, want %d", a.Pages, tt.pages)
			}
			if !bytes.HasPrefix(a.Data, []byte("%PDF-")) {
				t.Errorf("missing PDF header")
			}

			n, err := CheckPDF(a.Data)
			if err != nil {
				t.Fatalf("CheckPDF() error = %v", err)
			}
			if n != tt.pages {
				t.Errorf("CheckPDF() pages = %d, want %d", n, tt.pages)
			}
		})
	}
}

func TestCheckPDF_RejectsGarbage(t *testing.T) {
	if _, err := CheckPDF([]byte("not a pdf")); err == nil {
		t.Error("CheckPDF() expected error")
	}
}

// docxSummary walks word/document.xml and collects what the tests assert on.
type docxSummary struct {
	paragraphs []string
	tables     int
	rows       int
	cells      int
	rules      int
	boldTexts  []string
	tableWidth string
}

func readDOCX(t *testing.T, data []byte) docxSummary {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}

	names := make(map[string]*zip.File)
	for _, f := range zr.File {
		names[f.Name] = f
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if names[want] == nil {
			t.Fatalf("docx missing part %s", want)
		}
	}

	rc, err := names["word/document.xml"].Open()
	if err != nil {
		t.Fatalf("open document.xml: %v", err)
	}
	defer rc.Close()

	var s docxSummary
	var text strings.Builder
	var bold, inText bool
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("document.xml is not well-formed: %v", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				text.Reset()
			case "r":
				bold = false
			case "b":
				bold = true
			case "t":
				inText = true
			case "tbl":
				s.tables++
			case "tr":
				s.rows++
			case "tc":
				s.cells++
			case "pBdr":
				s.rules++
			case "tblW":
				for _, a := range el.Attr {
					if a.Name.Local == "type" {
						s.tableWidth = a.Value
					}
				}
			}
		case xml.CharData:
			if inText {
				text.Write(el)
				if bold {
					s.boldTexts = append(s.boldTexts, string(el))
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				s.paragraphs = append(s.paragraphs, text.String())
			}
		}
	}
	return s
}

func TestRender_DOCX(t *testing.T) {
	a, err := Render(sampleBlocks(), FormatDOCX, models.DefaultConfig().Render)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	s := readDOCX(t, a.Data)

	if s.tables != 1 {
		t.Errorf("tables = %d, want 1", s.tables)
	}
	if s.rows != 3 {
		t.Errorf("rows = %d, want 3", s.rows)
	}
	// ragged row padded to two cells
	if s.cells != 6 {
		t.Errorf("cells = %d, want 6", s.cells)
	}
	if s.rules != 1 {
		t.Errorf("section rules = %d, want 1", s.rules)
	}
	if s.tableWidth != "pct" {
		t.Errorf("table width type = %q, want pct", s.tableWidth)
	}

	wantBold := []string{"WORKSHEET", "Vocabulary", "Word", "Meaning"}
	if !reflect.DeepEqual(s.boldTexts, wantBold) {
		t.Errorf("bold texts = %q, want %q", s.boldTexts, wantBold)
	}

	joined := strings.Join(s.paragraphs, "\n")
	for _, want := range []string{"Level: B1", "fast", "quick", "slow", "Café (naïve) costs 5€ \\ 中"} {
		if !strings.Contains(joined, want) {
			t.Errorf("docx text missing %q", want)
		}
	}
}

func TestRender_DOCXRawTable(t *testing.T) {
	blocks := []models.Block{
		models.NewTableBlock(models.Table{Headers: []string{"| --- |\n| :-: |"}, Raw: true}),
	}
	a, err := Render(blocks, FormatDOCX, models.DefaultConfig().Render)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	s := readDOCX(t, a.Data)
	if s.cells != 1 {
		t.Errorf("cells = %d, want 1", s.cells)
	}
	if len(s.boldTexts) != 0 {
		t.Errorf("raw table has bold text %q", s.boldTexts)
	}
	// two cell lines plus the trailing body paragraph
	want := []string{"| --- |", "| :-: |", ""}
	if !reflect.DeepEqual(s.paragraphs, want) {
		t.Errorf("paragraphs = %q, want %q", s.paragraphs, want)
	}
}

func TestRenderAll(t *testing.T) {
	blocks := sampleBlocks()
	cfg := models.DefaultConfig().Render

	artifacts, err := RenderAll(context.Background(), blocks, AllFormats(), cfg)
	if err != nil {
		t.Fatalf("RenderAll() error = %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("RenderAll() returned %d artifacts, want 3", len(artifacts))
	}

	for i, f := range AllFormats() {
		if artifacts[i].Format != f {
			t.Errorf("artifacts[%d].Format = %s, want %s", i, artifacts[i].Format, f)
		}
		single, err := Render(blocks, f, cfg)
		if err != nil {
			t.Fatalf("Render(%s) error = %v", f, err)
		}
		// the pdf info dictionary carries timestamps
		if f == FormatPDF {
			if single.Pages != artifacts[i].Pages {
				t.Errorf("pdf pages differ between Render and RenderAll")
			}
			continue
		}
		// zip entries carry timestamps, so compare sizes for docx
		if f == FormatDOCX {
			if single.Size() != artifacts[i].Size() {
				t.Errorf("%s size differs between Render and RenderAll", f)
			}
			continue
		}
		if !bytes.Equal(single.Data, artifacts[i].Data) {
			t.Errorf("%s output differs between Render and RenderAll", f)
		}
	}
}

func TestRenderAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RenderAll(ctx, sampleBlocks(), AllFormats(), models.DefaultConfig().Render); err == nil {
		t.Error("RenderAll() expected error for cancelled context")
	}
}
