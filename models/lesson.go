package models

// LessonPack is the output of the upstream generation service: a source text
// in two versions plus the exercises built on it.
type LessonPack struct {
	Title     string         `json:"title" yaml:"title"`
	Source    string         `json:"source,omitempty" yaml:"source,omitempty"`
	Level     string         `json:"level,omitempty" yaml:"level,omitempty"`         // e.g. "A2"
	TextType  string         `json:"text_type,omitempty" yaml:"text_type,omitempty"` // e.g. "narrative"
	Language  string         `json:"language,omitempty" yaml:"language,omitempty"`   // ISO 639-1, detected when empty
	Standard  string         `json:"standard_text" yaml:"standard_text"`
	Adapted   string         `json:"adapted_text" yaml:"adapted_text"`
	Exercises []ExerciseItem `json:"exercises,omitempty" yaml:"exercises,omitempty"`
}

// DocKind names the documents a pack can be exported as.
type DocKind string

const (
	DocTexts     DocKind = "texts"
	DocExercises DocKind = "exercises"
	DocKey       DocKind = "key"
)

// AllDocKinds returns every document kind in export order.
func AllDocKinds() []DocKind {
	return []DocKind{DocTexts, DocExercises, DocKey}
}
