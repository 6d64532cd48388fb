package export

import (
	"github.com/dtnitsch/worksheet-kit/pkg/export"
	"github.com/dtnitsch/worksheet-kit/pkg/render"
)

type Job struct {
	Index int
	Job   export.Job
}

// Result holds the outcome of one rendered artifact.
type Result struct {
	JobIndex    int
	Job         export.Job
	Format      render.Format
	FilePath    string
	SizeBytes   int64
	Pages       int
	ContentHash string
	Error       error
	ErrorType   string
}

// ResultOutput is the structured output for a single artifact.
type ResultOutput struct {
	Doc       string `json:"doc" yaml:"doc"`
	Mode      string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Format    string `json:"format" yaml:"format"`
	FilePath  string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	Status    string `json:"status" yaml:"status"`
	Pages     int    `json:"pages,omitempty" yaml:"pages,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty" yaml:"error_type,omitempty"`
}

// FinalOutput is the structured output for the entire run.
type FinalOutput struct {
	Status       string         `json:"status" yaml:"status"`
	ManifestPath string         `json:"manifest_path,omitempty" yaml:"manifest_path,omitempty"`
	Results      []ResultOutput `json:"results" yaml:"results"`
	Stats        Stats          `json:"stats" yaml:"stats"`
}

// Stats provides summary statistics for the run.
type Stats struct {
	Documents        int      `json:"documents" yaml:"documents"`
	Artifacts        int      `json:"artifacts" yaml:"artifacts"`
	Successful       int      `json:"successful" yaml:"successful"`
	Failed           int      `json:"failed" yaml:"failed"`
	TotalTimeSeconds float64  `json:"total_time_seconds" yaml:"total_time_seconds"`
	TopKeywords      []string `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
}

func toOutput(r Result) ResultOutput {
	out := ResultOutput{
		Doc:       r.Job.Doc,
		Mode:      r.Job.Mode,
		Format:    string(r.Format),
		FilePath:  r.FilePath,
		Status:    "success",
		Pages:     r.Pages,
		SizeBytes: r.SizeBytes,
	}
	if r.Error != nil {
		out.Status = "failed"
		out.Error = r.Error.Error()
		out.ErrorType = r.ErrorType
	}
	return out
}
