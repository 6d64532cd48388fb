package worksheet

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/grading"
	"github.com/dtnitsch/worksheet-kit/pkg/render"
	"github.com/dtnitsch/worksheet-kit/pkg/similarity"
	"github.com/gdamore/tcell/v2"
)

const helpLine = "Enter check | Tab/S-Tab move | F1-F9 pick | ^T mode | ^P practice | Esc quit"

type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdSubmit
	cmdNext
	cmdPrev
	cmdMode
	cmdPractice
	cmdBackspace
	cmdType
	cmdChoose
)

var (
	styleTitle     = tcell.StyleDefault.Bold(true)
	styleDim       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleInput     = tcell.StyleDefault.Reverse(true)
	styleCorrect   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleIncorrect = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleUngraded  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// keyCommand maps a key press onto a session command. arg is the option
// index for cmdChoose.
func keyCommand(k tcell.Key, r rune) (cmd command, arg int) {
	switch {
	case k == tcell.KeyEscape || k == tcell.KeyCtrlC:
		return cmdQuit, 0
	case k == tcell.KeyEnter:
		return cmdSubmit, 0
	case k == tcell.KeyTab:
		return cmdNext, 0
	case k == tcell.KeyBacktab:
		return cmdPrev, 0
	case k == tcell.KeyCtrlT:
		return cmdMode, 0
	case k == tcell.KeyCtrlP:
		return cmdPractice, 0
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return cmdBackspace, 0
	case k >= tcell.KeyF1 && k <= tcell.KeyF9:
		return cmdChoose, int(k - tcell.KeyF1)
	case k == tcell.KeyRune:
		return cmdType, 0
	}
	return cmdNone, 0
}

// apply runs a command against the session. It returns false on quit.
func apply(s *Session, cmd command, arg int, r rune) bool {
	switch cmd {
	case cmdQuit:
		return false
	case cmdSubmit:
		s.Submit()
	case cmdNext:
		s.Next()
	case cmdPrev:
		s.Prev()
	case cmdMode:
		s.ToggleMode()
	case cmdPractice:
		s.TogglePractice()
	case cmdBackspace:
		s.Backspace()
	case cmdChoose:
		s.Choose(arg)
	case cmdType:
		s.Type(r)
	}
	return true
}

// Run drives the session on screen until the learner quits.
func Run(screen tcell.Screen, s *Session) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	draw(screen, s)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			cmd, arg := keyCommand(ev.Key(), ev.Rune())
			if !apply(s, cmd, arg, ev.Rune()) {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		}
		draw(screen, s)
	}
}

// View returns the lines drawn for the session at the given width, with
// their styles. It is kept separate from the screen for testing.
func View(s *Session, width int) ([]string, []tcell.Style) {
	var lines []string
	var styles []tcell.Style
	add := func(style tcell.Style, text string) {
		for _, l := range wrapIndented(text, width) {
			lines = append(lines, l)
			styles = append(styles, style)
		}
	}

	score := s.Score()
	header := fmt.Sprintf("%s | mode: %s | score %d/%d", s.Title(), s.Mode(), score.Correct, score.Graded)
	if score.Graded > 0 {
		header += fmt.Sprintf(" (%.0f%%)", score.Percent)
	}
	if score.Ungraded > 0 {
		header += fmt.Sprintf(" | teacher-checked %d", score.Ungraded)
	}
	add(styleTitle, header)
	add(tcell.StyleDefault, "")

	if s.Practice() {
		sentences := s.Sentences()
		if len(sentences) == 0 {
			add(styleDim, "No reading text to practise.")
		} else {
			add(styleDim, fmt.Sprintf("Pronunciation practice %d/%d", s.SentenceIndex()+1, len(sentences)))
			add(tcell.StyleDefault, sentences[s.SentenceIndex()])
		}
		add(tcell.StyleDefault, "")
		add(styleInput, "Heard: "+s.Input()+"_")
		if res := s.LastSimilarity(); res != nil {
			add(tierStyle(res.Feedback), s.Message())
		} else if s.Message() != "" {
			add(styleDim, s.Message())
		}
	} else if !s.HasItems() {
		add(styleDim, "This pack has no exercises. Press Ctrl-P for pronunciation practice.")
	} else {
		item := s.Item()
		side := s.Side()
		label := string(item.Type)
		if item.Skill != "" {
			label = item.Skill + "|" + label
		}
		add(styleDim, fmt.Sprintf("Exercise %d/%d [%s]", s.Position(), s.ItemCount(), label))
		add(tcell.StyleDefault, side.Prompt)
		for i, c := range side.Choices {
			add(tcell.StyleDefault, fmt.Sprintf("  F%d  %c) %s", i+1, 'a'+i, c))
		}
		if item.Answer.IsMulti() {
			add(styleDim, fmt.Sprintf("Type %d answers separated by %q.", len(item.Answer.Blanks), blankSeparator))
		}
		add(tcell.StyleDefault, "")
		add(styleInput, "Answer: "+s.Input()+"_")
		if v, ok := s.Verdict(); ok {
			add(verdictStyle(v.Verdict), s.Message())
		} else if s.Message() != "" {
			add(styleDim, s.Message())
		}
	}

	add(tcell.StyleDefault, "")
	add(styleDim, helpLine)
	return lines, styles
}

// wrapIndented leaves lines that fit untouched. Longer lines are wrapped
// with their leading spaces repeated on every row.
func wrapIndented(text string, width int) []string {
	if utf8.RuneCountInString(text) <= width {
		return []string{text}
	}
	body := strings.TrimLeft(text, " ")
	indent := text[:len(text)-len(body)]
	lines := render.Wrap(body, max(width-len(indent), 1))
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return lines
}

func draw(screen tcell.Screen, s *Session) {
	screen.Clear()
	width, height := screen.Size()
	lines, styles := View(s, max(width-2, 20))
	for y, line := range lines {
		if y >= height {
			break
		}
		drawText(screen, 1, y, styles[y], line)
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func verdictStyle(v models.Verdict) tcell.Style {
	switch v {
	case models.VerdictCorrect:
		return styleCorrect
	case models.VerdictIncorrect:
		return styleIncorrect
	default:
		return styleUngraded
	}
}

func tierStyle(tier string) tcell.Style {
	switch tier {
	case similarity.TierExcellent, similarity.TierGood:
		return styleCorrect
	case similarity.TierClose:
		return styleUngraded
	default:
		return styleIncorrect
	}
}

// Summary is printed once the terminal is released.
type Summary struct {
	Title     string                  `json:"title" yaml:"title"`
	Mode      models.Mode             `json:"mode" yaml:"mode"`
	SessionID string                  `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Score     models.Score            `json:"score" yaml:"score"`
	Verdicts  []models.GradingVerdict `json:"verdicts" yaml:"verdicts"`
}

// Finish builds the summary and stores the checked items when r is non-nil.
func Finish(logger *slog.Logger, s *Session, r grading.Recorder) Summary {
	subs, verdicts := s.Results()
	sum := Summary{Title: s.Title(), Mode: s.Mode(), Score: s.Score(), Verdicts: verdicts}
	if r != nil && len(verdicts) > 0 {
		sum.SessionID = grading.RecordRun(logger, r, s.Title(), s.Mode(), subs, verdicts, sum.Score)
	}
	return sum
}
