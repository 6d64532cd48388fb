package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/worksheet-kit/internal/common"
	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/artifact_manager"
	"github.com/dtnitsch/worksheet-kit/pkg/caching"
	"github.com/dtnitsch/worksheet-kit/pkg/export"
	"github.com/dtnitsch/worksheet-kit/pkg/fetcher"
	"github.com/dtnitsch/worksheet-kit/pkg/lesson"
	"github.com/dtnitsch/worksheet-kit/pkg/manifest"
	"github.com/dtnitsch/worksheet-kit/pkg/parser"
	"github.com/dtnitsch/worksheet-kit/pkg/render"
	"github.com/dtnitsch/worksheet-kit/pkg/storage"
	"github.com/urfave/cli/v2"
)

// source is what an export run reads: the documents plus the texts the
// manifest summarises.
type source struct {
	title    string
	language string
	jobs     []export.Job
	texts    map[string]string
}

func ExportAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	startTime := time.Now()

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	formats, err := render.ParseFormats(c.String("formats"))
	if err != nil {
		return err
	}

	src, err := loadSource(c, logger, cfg.OutputDir)
	if err != nil {
		return err
	}

	manager, err := artifact_manager.NewManager(cfg.OutputDir)
	if err != nil {
		return err
	}

	database, err := common.OpenHistory(c, cfg)
	if err != nil {
		// History is best-effort; the export itself still runs.
		logger.Warn("history disabled", "error", err)
	}
	if database != nil {
		defer database.Close()
	}

	results, runErr := run(c.Context, logger, runConfig{
		formats:     formats,
		render:      cfg.Render,
		workerCount: c.Int("workers"),
		manager:     manager,
		database:    database,
	}, src.jobs)

	finalOutput := buildOutput(results)
	finalOutput.Stats.Documents = len(src.jobs)

	m := manifest.Build(manifest.Input{
		Title:     src.title,
		Language:  src.language,
		OutputDir: manager.BaseDir(),
		Texts:     src.texts,
		Artifacts: manifestArtifacts(results),
	}, time.Now())
	finalOutput.Stats.TopKeywords = m.AggregateKeywords

	manifestPath := manager.Path(artifact_manager.FileName(src.title, []string{"manifest"}, "json"))
	if err := manifest.Write(m, manifestPath, &storage.Storage{}); err != nil {
		logger.Error("failed to write manifest", "error", err)
	} else {
		finalOutput.ManifestPath = manifestPath
	}

	finalOutput.Stats.TotalTimeSeconds = time.Since(startTime).Seconds()
	if err := common.WriteOutput(c.String("format"), finalOutput); err != nil {
		return err
	}

	if runErr != nil {
		return cli.Exit(runErr.Error(), 1)
	}
	return nil
}

func loadSource(c *cli.Context, logger *slog.Logger, outputDir string) (*source, error) {
	set := 0
	for _, name := range []string{"pack", "lines", "html"} {
		if c.IsSet(name) {
			set++
		}
	}
	if set > 1 || (set == 0 && !c.IsSet("url")) {
		return nil, fmt.Errorf("exactly one of --pack, --lines, --html or --url is required")
	}

	switch {
	case c.IsSet("pack"):
		return packSource(c.String("pack"), c.String("docs"), c.String("mode"))
	case c.IsSet("lines"):
		data, err := common.ReadInput(c.String("lines"))
		if err != nil {
			return nil, err
		}
		title := c.String("title")
		if title == "" {
			title = titleFromPath(c.String("lines"))
		}
		return linesSource(title, parser.SplitLines(string(data))), nil
	}

	var data []byte
	var err error
	if c.IsSet("html") {
		data, err = common.ReadInput(c.String("html"))
	} else {
		data, err = fetchPage(c, logger, outputDir)
	}
	if err != nil {
		return nil, err
	}
	src, err := parser.NewParser(logger).ParseHTML(c.String("url"), string(data))
	if err != nil {
		return nil, err
	}
	title := c.String("title")
	if title == "" {
		title = src.Title
	}
	return linesSource(title, src.Lines), nil
}

// fetchPage downloads --url, caching pages under the output directory.
func fetchPage(c *cli.Context, logger *slog.Logger, outputDir string) ([]byte, error) {
	ttl := caching.DefaultTTL
	if c.Bool("refetch") {
		ttl = 0
	}
	cache, err := caching.NewCache(filepath.Join(outputDir, ".cache"), ttl)
	if err != nil {
		logger.Warn("page cache disabled", "error", err)
	}
	logger.Info("Fetching source page", "url", c.String("url"))
	return fetcher.NewFetcher(cache, logger).GetHTML(c.Context, c.String("url"))
}

func packSource(path, docs, mode string) (*source, error) {
	pack, err := lesson.Load(path)
	if err != nil {
		return nil, err
	}
	kinds, err := lesson.ParseDocKinds(docs)
	if err != nil {
		return nil, err
	}
	m, err := models.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	jobs, err := export.PackJobs(pack, kinds, m)
	if err != nil {
		return nil, err
	}
	return &source{
		title:    pack.Title,
		language: pack.Language,
		jobs:     jobs,
		texts:    map[string]string{"standard": pack.Standard, "adapted": pack.Adapted},
	}, nil
}

func linesSource(title string, lines []string) *source {
	job := export.LinesJob(title, lines)
	return &source{
		title:    title,
		language: job.Language,
		jobs:     []export.Job{job},
		texts:    map[string]string{export.DocLines: strings.Join(lines, "\n")},
	}
}

func titleFromPath(path string) string {
	if path == "-" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func buildOutput(results []Result) *FinalOutput {
	out := &FinalOutput{Status: "success"}
	out.Results = make([]ResultOutput, 0, len(results))
	for _, r := range results {
		out.Results = append(out.Results, toOutput(r))
		if r.Error != nil {
			out.Stats.Failed++
		} else {
			out.Stats.Successful++
		}
	}
	out.Stats.Artifacts = len(results)
	switch {
	case out.Stats.Failed > 0 && out.Stats.Successful > 0:
		out.Status = "partial_success"
	case out.Stats.Failed > 0:
		out.Status = "failed"
	}
	return out
}

func manifestArtifacts(results []Result) []manifest.ArtifactSummary {
	var summaries []manifest.ArtifactSummary
	for _, r := range results {
		if r.Error != nil {
			continue
		}
		summaries = append(summaries, manifest.ArtifactSummary{
			Doc:         r.Job.Doc,
			Format:      string(r.Format),
			Mode:        r.Job.Mode,
			FilePath:    r.FilePath,
			SizeBytes:   r.SizeBytes,
			Pages:       r.Pages,
			ContentHash: r.ContentHash,
		})
	}
	return summaries
}
