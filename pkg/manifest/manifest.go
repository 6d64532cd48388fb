package manifest

import "github.com/dtnitsch/worksheet-kit/pkg/analytics"

// ExportManifest summarises one export run: what was written where, plus
// word statistics for the reading texts.
type ExportManifest struct {
	GeneratedAt       string                       `json:"generated_at" yaml:"generated_at"`
	Title             string                       `json:"title" yaml:"title"`
	Language          string                       `json:"language,omitempty" yaml:"language,omitempty"`
	OutputDir         string                       `json:"output_dir" yaml:"output_dir"`
	TotalArtifacts    int                          `json:"total_artifacts" yaml:"total_artifacts"`
	Texts             map[string]analytics.Summary `json:"texts,omitempty" yaml:"texts,omitempty"`
	AggregateKeywords []string                     `json:"aggregate_keywords,omitempty" yaml:"aggregate_keywords,omitempty"`
	Artifacts         []ArtifactSummary            `json:"artifacts" yaml:"artifacts"`
}

// ArtifactSummary describes one written file.
type ArtifactSummary struct {
	Doc         string `json:"doc" yaml:"doc"`
	Format      string `json:"format" yaml:"format"`
	Mode        string `json:"mode,omitempty" yaml:"mode,omitempty"`
	FilePath    string `json:"file_path" yaml:"file_path"`
	SizeBytes   int64  `json:"size_bytes" yaml:"size_bytes"`
	Pages       int    `json:"pages,omitempty" yaml:"pages,omitempty"`
	ContentHash string `json:"content_hash" yaml:"content_hash"`
}
