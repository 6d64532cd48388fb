package export

import (
	"testing"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/render"
)

func testPack() *models.LessonPack {
	return &models.LessonPack{
		Title:    "The Lighthouse",
		Level:    "B1",
		Language: "en",
		Standard: "The keeper climbed the stairs.",
		Adapted:  "The keeper goes up.",
		Exercises: []models.ExerciseItem{
			{ID: 1, Type: models.ExerciseGist, Answer: models.Answer{Value: "keeper"}},
		},
	}
}

func TestPackJobs(t *testing.T) {
	jobs, err := PackJobs(testPack(), models.AllDocKinds(), models.ModeStandard)
	if err != nil {
		t.Fatalf("PackJobs() error = %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(jobs))
	}

	tests := []struct {
		doc  string
		mode string
		file string
	}{
		{"texts", "", "the-lighthouse-texts-b1-en.pdf"},
		{"exercises", "standard", "the-lighthouse-exercises-standard-b1-en.pdf"},
		{"key", "standard", "the-lighthouse-key-standard-b1-en.pdf"},
	}
	for i, tt := range tests {
		j := jobs[i]
		if j.Doc != tt.doc || j.Mode != tt.mode {
			t.Errorf("jobs[%d] = %s/%s, want %s/%s", i, j.Doc, j.Mode, tt.doc, tt.mode)
		}
		if got := j.FileName(render.FormatPDF); got != tt.file {
			t.Errorf("jobs[%d].FileName() = %q, want %q", i, got, tt.file)
		}
		if len(j.Blocks) == 0 {
			t.Errorf("jobs[%d] has no blocks", i)
		}
	}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ComposeRequest
		doc     string
		blocks  int
		wantErr bool
	}{
		{
			name:   "lines",
			req:    models.ComposeRequest{Title: "Sheet", Lines: []string{"WORKSHEET", "| A | B |", "| - | - |", "| 1 | 2 |"}},
			doc:    DocLines,
			blocks: 2,
		},
		{
			name:   "text",
			req:    models.ComposeRequest{Text: "=== Part ===\r\nbody"},
			doc:    DocLines,
			blocks: 2,
		},
		{
			name: "pack key",
			req:  models.ComposeRequest{Pack: testPack(), Doc: models.DocKey, Mode: models.ModeAdapted},
			doc:  "key",
		},
		{
			name:    "empty",
			req:     models.ComposeRequest{Text: "  "},
			wantErr: true,
		},
		{
			name:    "bad doc",
			req:     models.ComposeRequest{Pack: testPack(), Doc: "slides"},
			wantErr: true,
		},
		{
			name:    "bad mode",
			req:     models.ComposeRequest{Pack: testPack(), Mode: "simplified"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := FromRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if job.Doc != tt.doc {
				t.Errorf("Doc = %q, want %q", job.Doc, tt.doc)
			}
			if tt.blocks > 0 && len(job.Blocks) != tt.blocks {
				t.Errorf("got %d blocks, want %d", len(job.Blocks), tt.blocks)
			}
		})
	}
}
