package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration. Values come from an optional YAML file;
// CLI flags override the top-level paths.
type Config struct {
	OutputDir  string           `yaml:"output_dir"`
	DBPath     string           `yaml:"db_path"`
	Render     RenderConfig     `yaml:"render"`
	Similarity SimilarityConfig `yaml:"similarity"`
}

// RenderConfig groups the per-format layout settings.
type RenderConfig struct {
	PDF  PDFConfig  `yaml:"pdf"`
	DOCX DOCXConfig `yaml:"docx"`
}

// PDFConfig drives the paginated fixed-width renderer. Units are PDF points;
// the vertical offset grows downwards from the top edge.
type PDFConfig struct {
	Paper       string  `yaml:"paper"` // named paper size, e.g. A4 or Letter
	MarginLeft  float64 `yaml:"margin_left"`
	MarginTop   float64 `yaml:"margin_top"`
	PageBreakAt float64 `yaml:"page_break_at"` // offset past which a new page starts
	LineHeight  float64 `yaml:"line_height"`
	MaxChars    int     `yaml:"max_chars"` // wrap width at body size
	BodySize    float64 `yaml:"body_size"`
	BannerSize  float64 `yaml:"banner_size"`
	SectionSize float64 `yaml:"section_size"`
}

// DOCXConfig drives the styled page-flow renderer. Sizes are in half-points,
// margins in twentieths of a point, as WordprocessingML expects.
type DOCXConfig struct {
	Font        string `yaml:"font"`
	Margin      int    `yaml:"margin"`
	BodySize    int    `yaml:"body_size"`
	BannerSize  int    `yaml:"banner_size"`
	SectionSize int    `yaml:"section_size"`
}

// SimilarityConfig holds the pronunciation feedback tiers (lower bounds).
type SimilarityConfig struct {
	Excellent float64 `yaml:"excellent"`
	Good      float64 `yaml:"good"`
	Close     float64 `yaml:"close"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Defaults fills zero values.
func (c *Config) Defaults() {
	if c.OutputDir == "" {
		c.OutputDir = "wsk-exports"
	}
	c.Render.PDF.defaults()
	c.Render.DOCX.defaults()
	c.Similarity.defaults()
}

func (p *PDFConfig) defaults() {
	if p.Paper == "" {
		p.Paper = "A4P"
	}
	if p.MarginLeft <= 0 {
		p.MarginLeft = 56.7
	}
	if p.MarginTop <= 0 {
		p.MarginTop = 56.7
	}
	if p.PageBreakAt <= 0 {
		p.PageBreakAt = 780
	}
	if p.LineHeight <= 0 {
		p.LineHeight = 14
	}
	if p.MaxChars <= 0 {
		p.MaxChars = 80
	}
	if p.BodySize <= 0 {
		p.BodySize = 10
	}
	if p.BannerSize <= 0 {
		p.BannerSize = 15
	}
	if p.SectionSize <= 0 {
		p.SectionSize = 12
	}
}

func (d *DOCXConfig) defaults() {
	if d.Font == "" {
		d.Font = "Calibri"
	}
	if d.Margin <= 0 {
		d.Margin = 1134 // 2 cm
	}
	if d.BodySize <= 0 {
		d.BodySize = 22
	}
	if d.BannerSize <= 0 {
		d.BannerSize = 32
	}
	if d.SectionSize <= 0 {
		d.SectionSize = 26
	}
}

func (s *SimilarityConfig) defaults() {
	if s.Excellent <= 0 {
		s.Excellent = 0.9
	}
	if s.Good <= 0 {
		s.Good = 0.75
	}
	if s.Close <= 0 {
		s.Close = 0.5
	}
}

// LoadConfig reads a YAML config file. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.Defaults()
	return &c, nil
}
