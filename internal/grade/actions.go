package grade

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/worksheet-kit/internal/common"
	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/grading"
	"github.com/dtnitsch/worksheet-kit/pkg/lesson"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// answersFile is the learner's answers, one entry per exercise id.
type answersFile struct {
	Answers []models.Submission `json:"answers" yaml:"answers"`
}

// Output is what the grade command prints.
type Output struct {
	Title string `json:"title" yaml:"title"`
	Mode  string `json:"mode" yaml:"mode"`

	models.GradeResponse `yaml:",inline"`
}

func GradeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	pack, err := lesson.Load(c.String("pack"))
	if err != nil {
		return err
	}
	mode, err := models.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	data, err := common.ReadInput(c.String("answers"))
	if err != nil {
		return err
	}
	subs, err := parseAnswers(data, strings.EqualFold(filepath.Ext(c.String("answers")), ".json"))
	if err != nil {
		return err
	}

	verdicts, score := grading.GradeAll(pack.Exercises, mode, subs)
	out := Output{
		Title:         pack.Title,
		Mode:          string(mode),
		GradeResponse: models.GradeResponse{Verdicts: verdicts, Score: score},
	}

	database, err := common.OpenHistory(c, cfg)
	if err != nil {
		logger.Warn("history disabled", "error", err)
	}
	if database != nil {
		defer database.Close()
		out.SessionID = grading.RecordRun(logger, database, pack.Title, mode, subs, verdicts, score)
	}

	logger.Info("Graded answers", "title", pack.Title, "mode", mode, "correct", score.Correct, "graded", score.Graded)
	return common.WriteOutput(c.String("format"), out)
}

// parseAnswers accepts either {answers: [...]} or a bare list.
func parseAnswers(data []byte, isJSON bool) ([]models.Submission, error) {
	var f answersFile
	var list []models.Submission

	if isJSON {
		if err := json.Unmarshal(data, &f); err == nil && f.Answers != nil {
			return f.Answers, nil
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to parse answers: %w", err)
		}
		return list, nil
	}

	if err := yaml.Unmarshal(data, &f); err == nil && f.Answers != nil {
		return f.Answers, nil
	}
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	return list, nil
}
