// Package lookup builds dictionary and translation links for a word or phrase.
package lookup

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultTarget is the translation target when none is given.
const DefaultTarget = "en"

// Link is one external reference.
type Link struct {
	Service string `json:"service" yaml:"service"`
	URL     string `json:"url" yaml:"url"`
}

// Result groups the links for one query.
type Result struct {
	Query        string `json:"query" yaml:"query"`
	Language     string `json:"language" yaml:"language"`
	Target       string `json:"target" yaml:"target"`
	Dictionaries []Link `json:"dictionaries" yaml:"dictionaries"`
	Translations []Link `json:"translations" yaml:"translations"`
}

// wordReference pairs use the two-letter codes joined, e.g. "fren".
var wordReferenceLangs = map[string]bool{
	"en": true, "fr": true, "es": true, "it": true, "pt": true, "de": true,
}

// Build returns dictionary and translation links. lang is the ISO 639-1
// code of the query text; target defaults to English.
func Build(query, lang, target string) (*Result, error) {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return nil, fmt.Errorf("empty lookup query")
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, fmt.Errorf("lookup language is required")
	}
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		target = DefaultTarget
	}

	r := &Result{Query: query, Language: lang, Target: target}
	r.Dictionaries = append(r.Dictionaries, Link{
		Service: "wiktionary",
		URL:     fmt.Sprintf("https://%s.wiktionary.org/wiki/%s", lang, wikiTitle(query)),
	})
	if wordReferenceLangs[lang] && wordReferenceLangs[target] && lang != target {
		r.Dictionaries = append(r.Dictionaries, Link{
			Service: "wordreference",
			URL:     fmt.Sprintf("https://www.wordreference.com/%s%s/%s", lang, target, url.PathEscape(query)),
		})
	}

	if lang != target {
		q := url.Values{}
		q.Set("sl", lang)
		q.Set("tl", target)
		q.Set("text", query)
		q.Set("op", "translate")
		r.Translations = append(r.Translations,
			Link{Service: "google", URL: "https://translate.google.com/?" + q.Encode()},
			Link{Service: "deepl", URL: fmt.Sprintf("https://www.deepl.com/translator#%s/%s/%s", lang, target, url.PathEscape(query))},
		)
	}

	return r, nil
}

// wikiTitle follows MediaWiki page naming: spaces become underscores.
func wikiTitle(s string) string {
	return url.PathEscape(strings.ReplaceAll(s, " ", "_"))
}
