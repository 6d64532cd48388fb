package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExerciseType is the kind of task an item asks for.
type ExerciseType string

const (
	ExerciseGist      ExerciseType = "gist"
	ExerciseDetail    ExerciseType = "detail"
	ExerciseTrueFalse ExerciseType = "trueFalse"
	ExerciseVocab     ExerciseType = "vocab"
	ExerciseCloze     ExerciseType = "cloze"
	ExerciseOrdering  ExerciseType = "ordering"
)

// Mode selects which side of an exercise set is presented.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeAdapted  Mode = "adapted"
)

// ParseMode maps a flag value onto a Mode, defaulting to adapted.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "adapted":
		return ModeAdapted, nil
	case "standard":
		return ModeStandard, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want standard or adapted)", s)
	}
}

// Side is one presentation of an item: the prompt and optional choices.
type Side struct {
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Choices []string `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Answer is the expected answer: a single value or an ordered list of blanks.
// It decodes from either a string or a list in both JSON and YAML.
type Answer struct {
	Value  string
	Blanks []string
}

// IsMulti reports whether the answer is a multi-blank sequence.
func (a Answer) IsMulti() bool {
	return a.Blanks != nil
}

// String joins blanks with " / " for display.
func (a Answer) String() string {
	if a.IsMulti() {
		return strings.Join(a.Blanks, " / ")
	}
	return a.Value
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsMulti() {
		return json.Marshal(a.Blanks)
	}
	return json.Marshal(a.Value)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		a.Value, a.Blanks = "", nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		a.Value, a.Blanks = "", list
		if a.Blanks == nil {
			a.Blanks = []string{}
		}
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("answer must be a string or a list of strings: %w", err)
	}
	a.Value, a.Blanks = single, nil
	return nil
}

func (a Answer) MarshalYAML() (interface{}, error) {
	if a.IsMulti() {
		return a.Blanks, nil
	}
	return a.Value, nil
}

func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		blanks := []string{}
		if err := node.Decode(&blanks); err != nil {
			return err
		}
		a.Value, a.Blanks = "", blanks
		return nil
	case yaml.ScalarNode:
		a.Value, a.Blanks = node.Value, nil
		if node.Tag == "!!null" {
			a.Value = ""
		}
		return nil
	default:
		return fmt.Errorf("line %d: answer must be a string or a list of strings", node.Line)
	}
}

// ExerciseItem is one generated exercise with its two parallel sides.
type ExerciseItem struct {
	ID   int          `json:"id" yaml:"id"`
	Type ExerciseType `json:"type" yaml:"type"`
	// Skill is the free-text skill label from the generator, e.g. "Matching headings".
	Skill    string `json:"skill,omitempty" yaml:"skill,omitempty"`
	Answer   Answer `json:"answer" yaml:"answer"`
	Standard Side   `json:"standard" yaml:"standard"`
	Adapted  Side   `json:"adapted" yaml:"adapted"`
}

// Side returns the presentation for the given mode.
func (e ExerciseItem) Side(mode Mode) Side {
	if mode == ModeStandard {
		return e.Standard
	}
	return e.Adapted
}

// ValidateIDs checks that item ids are unique and consecutive from 1.
func ValidateIDs(items []ExerciseItem) error {
	for i, item := range items {
		if item.ID != i+1 {
			return fmt.Errorf("exercise %d has id %d, want %d", i+1, item.ID, i+1)
		}
	}
	return nil
}
