// Package detector assigns semantic roles to generated text lines and detects
// the language of a text.
package detector

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/worksheet-kit/models"
)

// BannerPrefixes are the literal titles that open a document or sheet.
var BannerPrefixes = []string{
	"ADAPTED READING PACK",
	"READING TEXTS",
	"EXERCISE SHEET",
	"WORKSHEET",
	"TEACHER KEY",
	"ANSWER KEY",
}

// MetadataLabels are the literal labels of metadata lines.
var MetadataLabels = []string{
	"Source:",
	"Level:",
	"Text type:",
	"Type:",
	"Length:",
	"Language:",
	"Mode:",
	"Date:",
}

var sectionPattern = regexp.MustCompile(`^={3,}\s*(.*?)\s*={3,}$`)

// Classify determines the role of a single line. It depends only on the
// trimmed text of that line.
func Classify(line string) models.ClassifiedLine {
	trimmed := strings.TrimSpace(line)
	cl := models.ClassifiedLine{Role: models.RoleBody, Text: trimmed, Display: trimmed}

	if trimmed == "" {
		return cl
	}

	if hasAnyPrefix(trimmed, BannerPrefixes) {
		cl.Role = models.RoleBanner
		return cl
	}

	if display, ok := sectionText(trimmed); ok {
		cl.Role = models.RoleSection
		cl.Display = display
		return cl
	}

	if hasAnyPrefix(trimmed, MetadataLabels) {
		cl.Role = models.RoleMetadata
		return cl
	}

	if IsTableRow(trimmed) {
		cl.Role = models.RoleTableRow
		return cl
	}

	return cl
}

// IsTableRow reports whether the trimmed text starts with a pipe and has a second one.
func IsTableRow(trimmed string) bool {
	return strings.HasPrefix(trimmed, "|") && strings.Contains(trimmed[1:], "|")
}

// sectionText strips the "=== text ===" decoration. Text made only of
// equals signs is not a heading.
func sectionText(trimmed string) (string, bool) {
	m := sectionPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	text := strings.TrimSpace(m[1])
	if strings.Trim(text, "= ") == "" {
		return "", false
	}
	return text, true
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
