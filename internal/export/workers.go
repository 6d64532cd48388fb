package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/dtnitsch/worksheet-kit/internal/common"
	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/artifact_manager"
	"github.com/dtnitsch/worksheet-kit/pkg/db"
	"github.com/dtnitsch/worksheet-kit/pkg/export"
	"github.com/dtnitsch/worksheet-kit/pkg/render"
)

// runConfig carries what every worker shares.
type runConfig struct {
	formats     []render.Format
	render      models.RenderConfig
	workerCount int
	manager     *artifact_manager.Manager
	database    *db.DB // nil when history is off
}

// run renders every job in every format and saves the artifacts. Results are
// ordered by job, then format, whatever order the workers finish in.
func run(ctx context.Context, logger *slog.Logger, cfg runConfig, exportJobs []export.Job) ([]Result, error) {
	workerCount := min(max(cfg.workerCount, 1), len(exportJobs))

	logger.Info("Starting export phase", "documents", len(exportJobs), "formats", cfg.formats, "workers", workerCount)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(exportJobs))
	results := make(chan Result, len(exportJobs)*len(cfg.formats))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, cfg, &wg, jobs, results)
	}

	for i, j := range exportJobs {
		jobs <- Job{Index: i, Job: j}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All export workers finished")

	allResults := make([]Result, 0, len(exportJobs)*len(cfg.formats))
	var runErr error
	for result := range results {
		allResults = append(allResults, result)
		if result.Error != nil {
			runErr = fmt.Errorf("one or more artifacts failed")
		}
	}

	formatRank := make(map[render.Format]int, len(cfg.formats))
	for i, f := range cfg.formats {
		formatRank[f] = i
	}
	sort.SliceStable(allResults, func(i, j int) bool {
		if allResults[i].JobIndex != allResults[j].JobIndex {
			return allResults[i].JobIndex < allResults[j].JobIndex
		}
		return formatRank[allResults[i].Format] < formatRank[allResults[j].Format]
	})

	return allResults, runErr
}

func worker(ctx context.Context, id int, logger *slog.Logger, cfg runConfig, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "doc", job.Job.Doc, "title", job.Job.Title)

		artifacts, err := render.RenderAll(ctx, job.Job.Blocks, cfg.formats, cfg.render)
		if err != nil {
			logger.Error("Error rendering document", "worker_id", id, "doc", job.Job.Doc, "error", err)
			for _, f := range cfg.formats {
				results <- Result{JobIndex: job.Index, Job: job.Job, Format: f, Error: err, ErrorType: "render_error"}
			}
			continue
		}

		for _, a := range artifacts {
			results <- saveArtifact(id, logger, cfg, job, a)
		}
		logger.Info("Worker finished job", "worker_id", id, "doc", job.Job.Doc)
	}
}

func saveArtifact(id int, logger *slog.Logger, cfg runConfig, job Job, a *render.Artifact) Result {
	result := Result{
		JobIndex:  job.Index,
		Job:       job.Job,
		Format:    a.Format,
		SizeBytes: int64(a.Size()),
		Pages:     a.Pages,
	}

	if a.Format == render.FormatPDF {
		pages, err := render.CheckPDF(a.Data)
		if err != nil {
			logger.Error("Generated PDF failed validation", "worker_id", id, "doc", job.Job.Doc, "error", err)
			result.Error = err
			result.ErrorType = "validation_error"
			return result
		}
		if pages != a.Pages {
			logger.Warn("PDF page count differs from layout", "doc", job.Job.Doc, "layout", a.Pages, "pdf", pages)
			result.Pages = pages
		}
	}

	path, err := cfg.manager.Save(job.Job.FileName(a.Format), a.Data)
	if err != nil {
		logger.Error("Error saving artifact", "worker_id", id, "doc", job.Job.Doc, "format", a.Format, "error", err)
		result.Error = err
		result.ErrorType = "write_error"
		return result
	}
	result.FilePath = path
	result.ContentHash = common.ContentHash(a.Data)

	if cfg.database != nil {
		_, err := cfg.database.InsertExport(db.ExportRecord{
			Title:       job.Job.Title,
			DocKind:     job.Job.Doc,
			Mode:        job.Job.Mode,
			Format:      string(a.Format),
			FilePath:    path,
			ContentHash: result.ContentHash,
			SizeBytes:   result.SizeBytes,
			PageCount:   result.Pages,
			Language:    job.Job.Language,
		})
		if err != nil {
			logger.Warn("Failed to record export in history", "path", path, "error", err)
		}
	}

	return result
}
