package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dtnitsch/worksheet-kit/pkg/analytics"
	"github.com/dtnitsch/worksheet-kit/pkg/storage"
)

// keywordsPerText caps the keyword lists in a manifest.
const keywordsPerText = 15

// Input is everything an export run knows about its outputs.
type Input struct {
	Title     string
	Language  string
	OutputDir string
	// Texts maps a label ("standard", "adapted") to the reading text.
	Texts     map[string]string
	Artifacts []ArtifactSummary
}

// Build computes text statistics and assembles the manifest.
func Build(in Input, now time.Time) ExportManifest {
	a := &analytics.Analytics{}

	m := ExportManifest{
		GeneratedAt:    now.Format(time.RFC3339),
		Title:          in.Title,
		Language:       in.Language,
		OutputDir:      in.OutputDir,
		TotalArtifacts: len(in.Artifacts),
		Artifacts:      in.Artifacts,
	}

	labels := make([]string, 0, len(in.Texts))
	for label := range in.Texts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var freqs []map[string]int
	for _, label := range labels {
		text := in.Texts[label]
		if text == "" {
			continue
		}
		if m.Texts == nil {
			m.Texts = make(map[string]analytics.Summary)
		}
		m.Texts[label] = a.Summarize(text, keywordsPerText)
		freqs = append(freqs, a.WordFrequency(text))
	}
	if len(freqs) > 0 {
		m.AggregateKeywords = a.TopKeywords(a.Reduce(freqs...), keywordsPerText)
	}

	return m
}

// Write saves the manifest as indented JSON.
func Write(m ExportManifest, path string, s *storage.Storage) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling manifest: %w", err)
	}
	if err := s.SaveFile(path, data); err != nil {
		return fmt.Errorf("error saving manifest: %w", err)
	}
	return nil
}
