// Package analytics computes word statistics for lesson texts.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// wordsPerMinute is the reading speed assumed for language learners.
const wordsPerMinute = 150

type Analytics struct{}

// Summary is the per-text statistics shown in metadata lines and manifests.
type Summary struct {
	Words          int      `json:"words" yaml:"words"`
	ReadingMinutes int      `json:"reading_minutes" yaml:"reading_minutes"`
	Keywords       []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// tokens splits text into lowercase words, trimming anything that is not a
// letter or digit from both ends. Inner apostrophes and hyphens are kept.
func tokens(text string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// WordCount counts words, ignoring punctuation-only tokens such as pipes.
func (a *Analytics) WordCount(text string) int {
	return len(tokens(text))
}

// ReadingMinutes estimates reading time, at least one minute for any text.
func (a *Analytics) ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// WordFrequency counts content words, skipping stopwords and numbers.
func (a *Analytics) WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)

	for _, word := range tokens(text) {
		if _, exists := stopwords[word]; exists || !hasLetter(word) {
			continue
		}
		frequencies[word]++
	}

	return frequencies
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Reduce aggregates several frequency maps into one.
func (a *Analytics) Reduce(maps ...map[string]int) map[string]int {
	total := make(map[string]int)
	for _, counts := range maps {
		for word, count := range counts {
			total[word] += count
		}
	}
	return total
}

type wordCount struct {
	Word  string
	Count int
}

// ranked sorts by count descending, then alphabetically.
func ranked(frequencies map[string]int, n int) []wordCount {
	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if n < 0 {
		n = 0
	}
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// TopNWords returns the n most frequent content words.
func (a *Analytics) TopNWords(text string, n int) []string {
	counts := ranked(a.WordFrequency(text), n)
	topN := make([]string, len(counts))
	for i, c := range counts {
		topN[i] = c.Word
	}
	return topN
}

// TopKeywords formats the n most frequent words as "word:count".
func (a *Analytics) TopKeywords(frequencies map[string]int, n int) []string {
	counts := ranked(frequencies, n)
	keywords := make([]string, len(counts))
	for i, c := range counts {
		keywords[i] = fmt.Sprintf("%s:%d", c.Word, c.Count)
	}
	return keywords
}

// Summarize computes word count, reading time and the top n keywords.
func (a *Analytics) Summarize(text string, n int) Summary {
	words := a.WordCount(text)
	return Summary{
		Words:          words,
		ReadingMinutes: a.ReadingMinutes(words),
		Keywords:       a.TopKeywords(a.WordFrequency(text), n),
	}
}
