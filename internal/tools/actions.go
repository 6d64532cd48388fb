// Package tools holds the small one-shot commands: pronunciation scoring and lookups.
package tools

import (
	"fmt"

	"github.com/dtnitsch/worksheet-kit/internal/common"
	"github.com/dtnitsch/worksheet-kit/pkg/detector"
	"github.com/dtnitsch/worksheet-kit/pkg/lookup"
	"github.com/dtnitsch/worksheet-kit/pkg/similarity"
	"github.com/urfave/cli/v2"
)

func SimilarityAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	expected := c.String("expected")
	if expected == "" {
		return fmt.Errorf("--expected is required")
	}
	return common.WriteOutput(c.String("format"), similarity.Compare(expected, c.String("transcript"), cfg.Similarity))
}

func LookupAction(c *cli.Context) error {
	word := c.String("word")
	if word == "" && c.Args().Present() {
		word = c.Args().First()
	}

	lang := c.String("lang")
	if lang == "" {
		lang = detector.DetectLanguage(word)
		common.NewLogger(c).Debug("Detected lookup language", "word", word, "lang", lang)
	}

	res, err := lookup.Build(word, lang, c.String("target"))
	if err != nil {
		return err
	}
	return common.WriteOutput(c.String("format"), res)
}
