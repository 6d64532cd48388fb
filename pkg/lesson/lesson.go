// Package lesson loads lesson packs and lays them out as classifiable lines.
package lesson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/detector"
	"gopkg.in/yaml.v3"
)

// Load reads a pack from a .json, .yaml or .yml file.
func Load(path string) (*models.LessonPack, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read pack: %w", err)
	}

	pack, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pack, nil
}

// Parse decodes and validates a pack. Language is detected from the texts
// when the pack does not name one.
func Parse(data []byte, isJSON bool) (*models.LessonPack, error) {
	var pack models.LessonPack
	if isJSON {
		if err := json.Unmarshal(data, &pack); err != nil {
			return nil, fmt.Errorf("failed to parse pack JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &pack); err != nil {
			return nil, fmt.Errorf("failed to parse pack YAML: %w", err)
		}
	}

	if err := Validate(&pack); err != nil {
		return nil, err
	}
	if pack.Language == "" {
		pack.Language = detector.DetectLanguage(pack.Adapted)
		if pack.Language == "" {
			pack.Language = detector.DetectLanguage(pack.Standard)
		}
	}
	return &pack, nil
}

// Validate checks the parts every export needs.
func Validate(pack *models.LessonPack) error {
	if strings.TrimSpace(pack.Standard) == "" && strings.TrimSpace(pack.Adapted) == "" {
		return fmt.Errorf("pack has neither a standard nor an adapted text")
	}
	if err := models.ValidateIDs(pack.Exercises); err != nil {
		return fmt.Errorf("invalid exercises: %w", err)
	}
	return nil
}
