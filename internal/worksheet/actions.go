package worksheet

import (
	"github.com/dtnitsch/worksheet-kit/internal/common"
	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/grading"
	"github.com/dtnitsch/worksheet-kit/pkg/lesson"
	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v2"
)

func WorksheetAction(c *cli.Context) error {
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

	session, err := NewSession(pack, mode, cfg.Similarity)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := Run(screen, session); err != nil {
		return err
	}

	var recorder grading.Recorder
	database, err := common.OpenHistory(c, cfg)
	if err != nil {
		logger.Warn("history disabled", "error", err)
	}
	if database != nil {
		defer database.Close()
		recorder = database
	}

	return common.WriteOutput(c.String("format"), Finish(logger, session, recorder))
}
