package worksheet

import (
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/lesson"
	"github.com/gdamore/tcell/v2"
)

func newTestSession(t *testing.T, mode models.Mode) *Session {
	t.Helper()
	pack, err := lesson.Load("../../pkg/lesson/testdata/lighthouse.yaml")
	if err != nil {
		t.Fatalf("lesson.Load() error = %v", err)
	}
	s, err := NewSession(pack, mode, models.DefaultConfig().Similarity)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func typeText(s *Session, text string) {
	for _, r := range text {
		s.Type(r)
	}
}

func clearInput(s *Session) {
	for s.Input() != "" {
		s.Backspace()
	}
}

func TestSession_WalkThrough(t *testing.T) {
	s := newTestSession(t, models.ModeAdapted)

	typeText(s, "Keeper")
	if v := s.Check(); v.Verdict != models.VerdictCorrect {
		t.Fatalf("item 1 verdict = %s, want correct", v.Verdict)
	}

	s.Next()
	if s.Input() != "" {
		t.Errorf("input not cleared on Next: %q", s.Input())
	}
	if !s.Choose(0) || s.Input() != "lamp" {
		t.Fatalf("Choose(0) input = %q, want lamp", s.Input())
	}
	if s.Choose(5) {
		t.Error("Choose(5) should fail with two options")
	}
	if v := s.Check(); v.Verdict != models.VerdictCorrect {
		t.Errorf("item 2 verdict = %s, want correct", v.Verdict)
	}

	s.Next()
	typeText(s, "stairs / boat")
	if v := s.Check(); v.Verdict != models.VerdictIncorrect {
		t.Errorf("item 3 verdict = %s, want incorrect", v.Verdict)
	}
	if !strings.Contains(s.Message(), "stairs") {
		t.Errorf("message = %q, want the expected answer", s.Message())
	}

	s.Next()
	if v := s.Check(); v.Verdict != models.VerdictUngraded {
		t.Errorf("ordering item verdict = %s, want ungraded", v.Verdict)
	}

	want := models.Score{Correct: 2, Graded: 3, Ungraded: 1, Percent: 200.0 / 3}
	if got := s.Score(); got != want {
		t.Errorf("Score() = %+v, want %+v", got, want)
	}

	// Going back restores the answer; re-checking replaces the old verdict.
	s.Prev()
	if s.Input() != "stairs / boat" {
		t.Errorf("restored input = %q", s.Input())
	}
	clearInput(s)
	typeText(s, "Stairs/boats")
	if v := s.Check(); v.Verdict != models.VerdictCorrect {
		t.Errorf("re-check verdict = %s, want correct", v.Verdict)
	}
	want = models.Score{Correct: 3, Graded: 3, Ungraded: 1, Percent: 100}
	if got := s.Score(); got != want {
		t.Errorf("Score() after re-check = %+v, want %+v", got, want)
	}

	subs, verdicts := s.Results()
	if len(verdicts) != 4 || len(subs) != 4 {
		t.Fatalf("Results() = %d verdicts, %d submissions", len(verdicts), len(subs))
	}
	for i, v := range verdicts {
		if v.ItemID != i+1 {
			t.Errorf("verdict %d has id %d", i, v.ItemID)
		}
	}
	if !reflect.DeepEqual(subs[2].Blanks, []string{"Stairs", "boats"}) {
		t.Errorf("item 3 blanks = %q", subs[2].Blanks)
	}
}

func TestSession_NavigationClamps(t *testing.T) {
	s := newTestSession(t, models.ModeAdapted)
	s.Prev()
	if s.Position() != 1 {
		t.Errorf("Position() after Prev at start = %d", s.Position())
	}
	for range 10 {
		s.Next()
	}
	if s.Position() != s.ItemCount() {
		t.Errorf("Position() = %d, want %d", s.Position(), s.ItemCount())
	}
}

func TestSession_ToggleModeResetsScore(t *testing.T) {
	s := newTestSession(t, models.ModeAdapted)
	typeText(s, "keeper")
	s.Check()

	s.ToggleMode()
	if s.Mode() != models.ModeStandard {
		t.Fatalf("Mode() = %s, want standard", s.Mode())
	}
	if got := s.Score(); got != (models.Score{}) {
		t.Errorf("Score() after toggle = %+v, want zero", got)
	}
	if _, ok := s.Verdict(); ok {
		t.Error("verdict survived the mode switch")
	}
	if s.Side().Prompt != "Who is the main character?" {
		t.Errorf("standard prompt = %q", s.Side().Prompt)
	}

	// The standard choices never match the key "lamp" exactly.
	s.Next()
	s.Choose(1)
	if v := s.Check(); v.Verdict != models.VerdictUngraded {
		t.Errorf("standard item 2 verdict = %s, want ungraded", v.Verdict)
	}
}

func TestSession_Practice(t *testing.T) {
	s := newTestSession(t, models.ModeAdapted)
	s.TogglePractice()
	if !s.Practice() {
		t.Fatal("Practice() = false after toggle")
	}
	if s.Choose(0) {
		t.Error("Choose() should be ignored in practice mode")
	}

	want := []string{
		"Every evening the keeper goes up the stairs.",
		"He lights the lamp.",
		"The boats come back.",
	}
	if !reflect.DeepEqual(s.Sentences(), want) {
		t.Fatalf("Sentences() = %q, want %q", s.Sentences(), want)
	}

	typeText(s, "every evening the keeper goes up the stairs")
	s.Submit()
	res := s.LastSimilarity()
	if res == nil || res.Score != 1 || res.Feedback != "excellent" {
		t.Errorf("LastSimilarity() = %+v, want perfect score", res)
	}

	s.Next()
	if s.SentenceIndex() != 1 || s.LastSimilarity() != nil {
		t.Errorf("Next() in practice: index %d, last %v", s.SentenceIndex(), s.LastSimilarity())
	}
	if got := s.SubmitTranscript("he likes the lamb"); got.Score >= 1 || got.Score <= 0 {
		t.Errorf("near miss score = %v", got.Score)
	}

	// Exercise scores are untouched by practice.
	if got := s.Score(); got != (models.Score{}) {
		t.Errorf("Score() = %+v after practice", got)
	}
}

func TestSession_NoExercises(t *testing.T) {
	pack := &models.LessonPack{Title: "Reading only", Adapted: "One. Two."}
	s, err := NewSession(pack, models.ModeAdapted, models.DefaultConfig().Similarity)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	s.Next()
	s.Submit()
	if _, ok := s.Verdict(); ok {
		t.Error("Verdict() reported a result without exercises")
	}
	lines, _ := View(s, 80)
	if !strings.Contains(strings.Join(lines, "\n"), "no exercises") {
		t.Errorf("view = %q", lines)
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"punctuation", "Hi! How are you? Fine.", []string{"Hi!", "How are you?", "Fine."}},
		{"line breaks", "First line\nsecond line", []string{"First line", "second line"}},
		{"no letters dropped", "1. ... Done", []string{"Done"}},
		{"empty", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sentences(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sentences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		key     tcell.Key
		wantCmd command
		wantArg int
	}{
		{tcell.KeyEscape, cmdQuit, 0},
		{tcell.KeyCtrlC, cmdQuit, 0},
		{tcell.KeyEnter, cmdSubmit, 0},
		{tcell.KeyTab, cmdNext, 0},
		{tcell.KeyBacktab, cmdPrev, 0},
		{tcell.KeyCtrlT, cmdMode, 0},
		{tcell.KeyCtrlP, cmdPractice, 0},
		{tcell.KeyBackspace2, cmdBackspace, 0},
		{tcell.KeyF1, cmdChoose, 0},
		{tcell.KeyF3, cmdChoose, 2},
		{tcell.KeyRune, cmdType, 0},
		{tcell.KeyF12, cmdNone, 0},
	}
	for _, tt := range tests {
		cmd, arg := keyCommand(tt.key, 'x')
		if cmd != tt.wantCmd || arg != tt.wantArg {
			t.Errorf("keyCommand(%v) = (%v, %d), want (%v, %d)", tt.key, cmd, arg, tt.wantCmd, tt.wantArg)
		}
	}
}

func TestApply(t *testing.T) {
	s := newTestSession(t, models.ModeAdapted)
	for _, r := range "keeper" {
		apply(s, cmdType, 0, r)
	}
	apply(s, cmdSubmit, 0, 0)
	if v, ok := s.Verdict(); !ok || v.Verdict != models.VerdictCorrect {
		t.Errorf("Verdict() = %+v, %v", v, ok)
	}
	if apply(s, cmdQuit, 0, 0) {
		t.Error("apply(cmdQuit) should stop the loop")
	}
}

func TestView(t *testing.T) {
	s := newTestSession(t, models.ModeAdapted)
	s.Next()
	s.Choose(1)

	lines, styles := View(s, 80)
	if len(lines) != len(styles) {
		t.Fatalf("%d lines but %d styles", len(lines), len(styles))
	}
	text := strings.Join(lines, "\n")
	for _, want := range []string{
		"The Lighthouse | mode: adapted | score 0/0",
		"Exercise 2/4 [detail]",
		"What does he light?",
		"  F1  a) lamp",
		"  F2  b) fire",
		"Answer: fire_",
		helpLine,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("view missing %q:\n%s", want, text)
		}
	}

	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > 80 {
			t.Errorf("line %q is %d columns wide, want <= 80", l, n)
		}
	}

	s.Check()
	lines, styles = View(s, 80)
	for i, l := range lines {
		if strings.HasPrefix(l, "Not quite") && styles[i] != styleIncorrect {
			t.Errorf("verdict line style = %v, want incorrect style", styles[i])
		}
	}
}

func TestWrapIndented(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits keeps spacing", "  F1  a) lamp", 20, []string{"  F1  a) lamp"}},
		{"exact width", "abcd", 4, []string{"abcd"}},
		{"wraps with indent", "  F1  a) the great lamp", 14, []string{"  F1 a) the", "  great lamp"}},
		{"no indent", "one two three", 7, []string{"one two", "three"}},
		{"empty", "", 10, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapIndented(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapIndented(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestFinish(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s := newTestSession(t, models.ModeAdapted)

	sum := Finish(logger, s, nil)
	if sum.SessionID != "" || len(sum.Verdicts) != 0 {
		t.Errorf("Finish() without checks = %+v", sum)
	}

	typeText(s, "keeper")
	s.Check()
	sum = Finish(logger, s, nil)
	if len(sum.Verdicts) != 1 || sum.Score.Correct != 1 || sum.Title != "The Lighthouse" {
		t.Errorf("Finish() = %+v", sum)
	}
}
