package lesson

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/analytics"
	"github.com/dtnitsch/worksheet-kit/pkg/grading"
	"github.com/dtnitsch/worksheet-kit/pkg/parser"
)

const (
	bannerTexts     = "ADAPTED READING PACK"
	bannerExercises = "EXERCISE SHEET"
	bannerKey       = "TEACHER KEY"

	teacherChecked = "teacher-checked"
	blankMarker    = "________"
)

// ParseDocKind validates a document kind name.
func ParseDocKind(s string) (models.DocKind, error) {
	switch k := models.DocKind(strings.ToLower(strings.TrimSpace(s))); k {
	case models.DocTexts, models.DocExercises, models.DocKey:
		return k, nil
	default:
		return "", fmt.Errorf("unknown document %q (want texts, exercises or key)", s)
	}
}

// ParseDocKinds parses a comma-separated list; empty means every kind.
func ParseDocKinds(csv string) ([]models.DocKind, error) {
	if strings.TrimSpace(csv) == "" {
		return models.AllDocKinds(), nil
	}
	var kinds []models.DocKind
	for _, part := range strings.Split(csv, ",") {
		k, err := ParseDocKind(part)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Lines lays out one document of the pack. Mode selects the exercise side
// and is ignored for the reading texts.
func Lines(pack *models.LessonPack, kind models.DocKind, mode models.Mode) ([]string, error) {
	switch kind {
	case models.DocTexts:
		return textLines(pack), nil
	case models.DocExercises:
		return exerciseLines(pack, mode), nil
	case models.DocKey:
		return keyLines(pack, mode), nil
	default:
		return nil, fmt.Errorf("unknown document %q", kind)
	}
}

// Document composes one document of the pack into blocks.
func Document(pack *models.LessonPack, kind models.DocKind, mode models.Mode) (*models.Document, error) {
	lines, err := Lines(pack, kind, mode)
	if err != nil {
		return nil, err
	}
	title := pack.Title
	if title == "" {
		title = string(kind)
	}
	return &models.Document{Title: title, Blocks: parser.Compose(lines)}, nil
}

func metadataLines(pack *models.LessonPack) []string {
	var lines []string
	add := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			lines = append(lines, label+" "+value)
		}
	}
	add("Source:", pack.Source)
	add("Level:", pack.Level)
	add("Text type:", pack.TextType)
	add("Language:", pack.Language)
	return lines
}

func textLines(pack *models.LessonPack) []string {
	a := &analytics.Analytics{}
	std, adp := a.WordCount(pack.Standard), a.WordCount(pack.Adapted)

	lines := []string{bannerTexts + titleSuffix(pack)}
	lines = append(lines, metadataLines(pack)...)
	lines = append(lines, fmt.Sprintf("Length: %d words (standard) / %d words (adapted)", std, adp))

	for _, t := range []struct{ label, text string }{
		{"STANDARD", pack.Standard},
		{"ADAPTED", pack.Adapted},
	} {
		if strings.TrimSpace(t.text) == "" {
			continue
		}
		lines = append(lines, "", fmt.Sprintf("=== Reading text (%s version) ===", t.label))
		lines = append(lines, parser.SplitLines(strings.TrimSpace(t.text))...)
	}
	return lines
}

func exerciseLines(pack *models.LessonPack, mode models.Mode) []string {
	lines := []string{bannerExercises + titleSuffix(pack)}
	lines = append(lines, "Mode: "+modeLabel(mode))
	if pack.Level != "" {
		lines = append(lines, "Level: "+pack.Level)
	}

	lines = append(lines, "", "=== Exercises ===")
	for _, item := range pack.Exercises {
		side := item.Side(mode)
		lines = append(lines, "", fmt.Sprintf("%d. [%s] %s", item.ID, typeLabel(item), strings.TrimSpace(side.Prompt)))

		switch {
		case len(side.Choices) > 0:
			for i, c := range side.Choices {
				lines = append(lines, fmt.Sprintf("   %c) %s", 'a'+rune(i%26), c))
			}
		case item.Answer.IsMulti():
			marks := make([]string, len(item.Answer.Blanks))
			for i := range marks {
				marks[i] = fmt.Sprintf("(%d) %s", i+1, blankMarker)
			}
			lines = append(lines, "   "+strings.Join(marks, "  "))
		default:
			lines = append(lines, "   Answer: "+blankMarker+blankMarker)
		}
	}
	return lines
}

func keyLines(pack *models.LessonPack, mode models.Mode) []string {
	lines := []string{bannerKey + titleSuffix(pack)}
	lines = append(lines, "Mode: "+modeLabel(mode))

	lines = append(lines, "", "=== Answer key ===")
	if len(pack.Exercises) == 0 {
		return append(lines, "No exercises.")
	}

	lines = append(lines, "| # | Type | Answer |", "| --- | --- | --- |")
	for _, item := range pack.Exercises {
		answer := item.Answer.String()
		if grading.TeacherChecked(item) {
			answer += " (" + teacherChecked + ")"
		}
		lines = append(lines, fmt.Sprintf("| %d | %s | %s |", item.ID, cell(typeLabel(item)), cell(answer)))
	}
	return lines
}

func titleSuffix(pack *models.LessonPack) string {
	if t := strings.TrimSpace(pack.Title); t != "" {
		return ": " + t
	}
	return ""
}

func typeLabel(item models.ExerciseItem) string {
	if item.Skill != "" {
		return item.Skill
	}
	return string(item.Type)
}

func modeLabel(mode models.Mode) string {
	if mode == models.ModeStandard {
		return "Standard"
	}
	return "Adapted"
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Tags returns the context tags used in artifact names: document kind, mode
// (exercise documents only), level and language.
func Tags(pack *models.LessonPack, kind models.DocKind, mode models.Mode) []string {
	tags := []string{string(kind)}
	if kind != models.DocTexts {
		tags = append(tags, string(mode))
	}
	return append(tags, pack.Level, pack.Language)
}
