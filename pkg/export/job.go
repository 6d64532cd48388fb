// Package export turns packs, line lists and API requests into render jobs.
package export

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/artifact_manager"
	"github.com/dtnitsch/worksheet-kit/pkg/detector"
	"github.com/dtnitsch/worksheet-kit/pkg/lesson"
	"github.com/dtnitsch/worksheet-kit/pkg/parser"
	"github.com/dtnitsch/worksheet-kit/pkg/render"
)

// DocLines names documents composed from free-form lines.
const DocLines = "lines"

// Job is one composed document waiting to be rendered.
type Job struct {
	Title    string
	Doc      string
	Mode     string
	Language string
	Tags     []string
	Blocks   []models.Block
}

// FileName returns the artifact name for a format: "<title>-<tags>.<ext>".
func (j Job) FileName(f render.Format) string {
	return artifact_manager.FileName(j.Title, j.Tags, f.Ext())
}

// PackJobs builds one job per requested document of a pack.
func PackJobs(pack *models.LessonPack, kinds []models.DocKind, mode models.Mode) ([]Job, error) {
	jobs := make([]Job, 0, len(kinds))
	for _, kind := range kinds {
		doc, err := lesson.Document(pack, kind, mode)
		if err != nil {
			return nil, err
		}
		job := Job{
			Title:    pack.Title,
			Doc:      string(kind),
			Language: pack.Language,
			Tags:     lesson.Tags(pack, kind, mode),
			Blocks:   doc.Blocks,
		}
		if kind != models.DocTexts {
			job.Mode = string(mode)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// LinesJob composes free-form lines. The language tag is detected from the text.
func LinesJob(title string, lines []string) Job {
	lang := detector.DetectLanguage(strings.Join(lines, "\n"))
	return Job{
		Title:    title,
		Doc:      DocLines,
		Language: lang,
		Tags:     []string{DocLines, lang},
		Blocks:   parser.Compose(lines),
	}
}

// FromRequest resolves a compose request: a pack document when a pack is
// given, otherwise the lines (or text split on newlines).
func FromRequest(req models.ComposeRequest) (Job, error) {
	if req.Pack != nil {
		if err := lesson.Validate(req.Pack); err != nil {
			return Job{}, err
		}
		if req.Pack.Language == "" {
			req.Pack.Language = detector.DetectLanguage(req.Pack.Adapted)
		}
		kind := req.Doc
		if kind == "" {
			kind = models.DocTexts
		}
		kind, err := lesson.ParseDocKind(string(kind))
		if err != nil {
			return Job{}, err
		}
		mode, err := models.ParseMode(string(req.Mode))
		if err != nil {
			return Job{}, err
		}
		jobs, err := PackJobs(req.Pack, []models.DocKind{kind}, mode)
		if err != nil {
			return Job{}, err
		}
		return jobs[0], nil
	}

	lines := req.Lines
	if len(lines) == 0 {
		if strings.TrimSpace(req.Text) == "" {
			return Job{}, fmt.Errorf("request has no pack, lines or text")
		}
		lines = parser.SplitLines(req.Text)
	}
	return LinesJob(req.Title, lines), nil
}
