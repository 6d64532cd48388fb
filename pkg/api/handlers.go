package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dtnitsch/worksheet-kit/models"
	"github.com/dtnitsch/worksheet-kit/pkg/detector"
	"github.com/dtnitsch/worksheet-kit/pkg/export"
	"github.com/dtnitsch/worksheet-kit/pkg/grading"
	"github.com/dtnitsch/worksheet-kit/pkg/lookup"
	"github.com/dtnitsch/worksheet-kit/pkg/render"
	"github.com/dtnitsch/worksheet-kit/pkg/similarity"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ComposeResponse is the composed document plus its suggested base name.
type ComposeResponse struct {
	Document models.Document `json:"document"`
	Language string          `json:"language,omitempty"`
	BaseName string          `json:"base_name"`
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req models.ComposeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	job, err := export.FromRequest(req)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid_document", err.Error(),
			"send lines, text, or a pack with doc texts|exercises|key")
		return
	}

	s.writeJSON(w, http.StatusOK, ComposeResponse{
		Document: models.Document{Title: job.Title, Blocks: job.Blocks},
		Language: job.Language,
		BaseName: job.FileName(""),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "unknown_format", err.Error())
		return
	}

	var req models.ComposeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	job, err := export.FromRequest(req)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid_document", err.Error())
		return
	}

	artifact, err := render.Render(job.Blocks, format, s.cfg.Render)
	if err != nil {
		s.logger.Error("render failed", "format", format, "error", err)
		s.writeError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", format.MIME())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.FileName(format)))
	w.Header().Set("Content-Length", strconv.Itoa(artifact.Size()))
	if artifact.Pages > 0 {
		w.Header().Set("X-Page-Count", strconv.Itoa(artifact.Pages))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		s.logger.Error("failed to write artifact", "error", err)
	}
}

// IngestRequest carries an HTML page to convert into lines.
type IngestRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.HTML == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "html is required")
		return
	}

	src, err := s.parser.ParseHTML(req.URL, req.HTML)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "parse_failed", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, src)
}

func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	var req models.GradeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	mode, err := models.ParseMode(string(req.Mode))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_mode", err.Error())
		return
	}
	if err := models.ValidateIDs(req.Exercises); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid_exercises", err.Error(),
			"number exercises consecutively from 1")
		return
	}

	verdicts, score := grading.GradeAll(req.Exercises, mode, req.Submissions)
	s.writeJSON(w, http.StatusOK, models.GradeResponse{Verdicts: verdicts, Score: score})
}

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	var req models.SimilarityRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, similarity.Compare(req.Expected, req.Transcript, s.cfg.Similarity))
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang := q.Get("lang")
	if lang == "" {
		lang = detector.DetectLanguage(q.Get("q"))
	}

	res, err := lookup.Build(q.Get("q"), lang, q.Get("target"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_lookup", err.Error(),
			"pass ?q=<word>&lang=<iso code>")
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}
