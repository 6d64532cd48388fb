package history

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/worksheet-kit/internal/common"
	"github.com/dtnitsch/worksheet-kit/pkg/db"
	"github.com/urfave/cli/v2"
)

func openDB(c *cli.Context) (*db.DB, error) {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return nil, err
	}
	if cfg.DBPath != "" {
		return db.OpenAt(cfg.DBPath)
	}
	return db.Open()
}

func ExportsAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	exports, err := database.ListExports(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list exports: %w", err)
	}

	if len(exports) == 0 {
		fmt.Println("No exports found")
		return nil
	}

	if c.IsSet("format") {
		return common.WriteOutput(c.String("format"), exports)
	}

	fmt.Printf("%-6s %-20s %-10s %-9s %-6s %-6s %-10s %-40s\n",
		"ID", "Created", "Doc", "Mode", "Format", "Pages", "Size", "File")
	fmt.Println(strings.Repeat("-", 112))

	for _, e := range exports {
		pages := "-"
		if e.PageCount > 0 {
			pages = fmt.Sprintf("%d", e.PageCount)
		}
		mode := e.Mode
		if mode == "" {
			mode = "-"
		}
		fmt.Printf("%-6d %-20s %-10s %-9s %-6s %-6s %-10d %-40s\n",
			e.ExportID,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.DocKind,
			mode,
			e.Format,
			pages,
			e.SizeBytes,
			e.FilePath,
		)
	}

	fmt.Printf("\nTotal: %d exports\n", len(exports))
	return nil
}

func SessionsAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	sessions, err := database.ListGradingSessions(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list grading sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No grading sessions found")
		return nil
	}

	if c.IsSet("format") {
		return common.WriteOutput(c.String("format"), sessions)
	}

	fmt.Printf("%-36s %-20s %-24s %-9s %-6s %-8s %-8s\n",
		"Session", "Created", "Pack", "Mode", "Items", "Score", "Ungraded")
	fmt.Println(strings.Repeat("-", 117))

	for _, s := range sessions {
		score := "-"
		if s.GradedCount > 0 {
			score = fmt.Sprintf("%d/%d", s.CorrectCount, s.GradedCount)
		}
		fmt.Printf("%-36s %-20s %-24s %-9s %-6d %-8s %-8d\n",
			s.SessionID,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			truncate(s.PackTitle, 24),
			s.Mode,
			s.ItemCount,
			score,
			s.UngradedCount,
		)
	}

	fmt.Printf("\nTotal: %d sessions\n", len(sessions))
	fmt.Printf("\nTip: Use 'wsk history session <id>' to see item verdicts\n")
	return nil
}

// SessionAction shows the verdicts of one grading session.
func SessionAction(c *cli.Context) error {
	database, err := openDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("session id is required")
	}

	session, err := database.GetGradingSession(id)
	if err != nil {
		return err
	}
	results, err := database.GetGradingResults(id)
	if err != nil {
		return err
	}

	if c.IsSet("format") {
		return common.WriteOutput(c.String("format"), struct {
			*db.GradingSession `yaml:",inline"`
			Results            []db.GradingResult `json:"results" yaml:"results"`
		}{session, results})
	}

	fmt.Printf("Session %s\n", session.SessionID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:   %s\n", session.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Pack:      %s\n", session.PackTitle)
	fmt.Printf("Mode:      %s\n", session.Mode)
	fmt.Printf("Score:     %d/%d correct, %d teacher-checked\n",
		session.CorrectCount, session.GradedCount, session.UngradedCount)

	fmt.Printf("\nResults (%d):\n", len(results))
	fmt.Println(strings.Repeat("-", 60))
	for _, r := range results {
		fmt.Printf("%2d. [%s] %s\n", r.ItemID, r.Verdict, r.Submitted)
		if r.Verdict != "correct" {
			fmt.Printf("    Expected: %s\n", r.Expected)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
