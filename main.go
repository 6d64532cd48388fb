package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/worksheet-kit/internal/export"
	"github.com/dtnitsch/worksheet-kit/internal/grade"
	"github.com/dtnitsch/worksheet-kit/internal/history"
	"github.com/dtnitsch/worksheet-kit/internal/serve"
	"github.com/dtnitsch/worksheet-kit/internal/tools"
	"github.com/dtnitsch/worksheet-kit/internal/worksheet"
	"github.com/dtnitsch/worksheet-kit/pkg/artifact_manager"
	"github.com/dtnitsch/worksheet-kit/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "wsk",
		Usage: "Compose, export and grade paired standard/adapted reading worksheets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file (page geometry, fonts, similarity thresholds)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug messages",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "json",
				Usage: "Output format: json or yaml",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "History database path (default: next to the binary)",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record exports or grading sessions",
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Value: artifact_manager.DefaultBaseDir,
				Usage: "Directory for exported artifacts",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "export",
				Usage:  "Render a lesson pack, a line file or an HTML page to txt, pdf and docx",
				Action: export.ExportAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pack", Usage: "Lesson pack file (.yaml or .json)"},
					&cli.StringFlag{Name: "lines", Usage: "Text file with one line per visual line (- for stdin)"},
					&cli.StringFlag{Name: "html", Usage: "HTML file to convert (- for stdin)"},
					&cli.StringFlag{Name: "url", Usage: "Page to fetch, or the source URL of --html"},
					&cli.BoolFlag{Name: "refetch", Usage: "Ignore cached copies of --url"},
					&cli.StringFlag{Name: "title", Usage: "Title for --lines/--html exports"},
					&cli.StringFlag{Name: "formats", Usage: "Comma-separated formats (txt,pdf,docx); empty means all"},
					&cli.StringFlag{Name: "docs", Usage: "Pack documents (texts,exercises,key); empty means all"},
					&cli.StringFlag{Name: "mode", Value: "adapted", Usage: "Exercise side: standard or adapted"},
					&cli.IntFlag{Name: "workers", Value: 3, Usage: "Documents rendered in parallel"},
				},
			},
			{
				Name:   "grade",
				Usage:  "Grade an answers file against a pack's exercises",
				Action: grade.GradeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pack", Required: true, Usage: "Lesson pack file"},
					&cli.StringFlag{Name: "answers", Required: true, Usage: "Answers file (.yaml or .json, - for stdin)"},
					&cli.StringFlag{Name: "mode", Value: "adapted", Usage: "Exercise side: standard or adapted"},
				},
			},
			{
				Name:   "worksheet",
				Usage:  "Work through a pack's exercises in the terminal",
				Action: worksheet.WorksheetAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pack", Required: true, Usage: "Lesson pack file"},
					&cli.StringFlag{Name: "mode", Value: "adapted", Usage: "Starting side: standard or adapted"},
				},
			},
			{
				Name:   "similarity",
				Usage:  "Score a spoken transcript against the expected phrase",
				Action: tools.SimilarityAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "expected", Usage: "Phrase the learner should say"},
					&cli.StringFlag{Name: "transcript", Usage: "What the recogniser heard"},
				},
			},
			{
				Name:      "lookup",
				Usage:     "Build dictionary and translation links for a word",
				ArgsUsage: "[word]",
				Action:    tools.LookupAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "word", Usage: "Word or phrase"},
					&cli.StringFlag{Name: "lang", Usage: "ISO 639-1 code of the word (detected when empty)"},
					&cli.StringFlag{Name: "target", Usage: "Translation target language (default en)"},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the compose, render and grading API over HTTP",
				Action: serve.ServeAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "Listen address"},
				},
			},
			{
				Name:  "history",
				Usage: "Show recorded exports and grading sessions",
				Subcommands: []*cli.Command{
					{
						Name:   "exports",
						Usage:  "List exported artifacts",
						Action: history.ExportsAction,
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum rows (0 for all)"},
						},
					},
					{
						Name:   "sessions",
						Usage:  "List grading sessions",
						Action: history.SessionsAction,
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum rows (0 for all)"},
						},
					},
					{
						Name:      "session",
						Usage:     "Show the verdicts of one grading session",
						ArgsUsage: "<session-id>",
						Action:    history.SessionAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a YAML cheat sheet",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
