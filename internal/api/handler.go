package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"datasuite/app"
	"datasuite/domain/core"
	"datasuite/internal"
	"datasuite/internal/session"
)

// maxUploadBytes caps the multipart form memory before spooling to disk.
const maxUploadBytes = 64 << 20

// Handler serves the session-based report API.
type Handler struct {
	service   *app.ReportService
	sessions  *session.Manager
	uploadDir string
	logger    *internal.Logger
}

// NewHandler creates an API handler. Uploaded datasets are spooled into
// uploadDir before validation.
func NewHandler(service *app.ReportService, sessions *session.Manager, uploadDir string) *Handler {
	return &Handler{
		service:   service,
		sessions:  sessions,
		uploadDir: uploadDir,
		logger:    internal.DefaultLogger,
	}
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.sessions.Count(),
	})
}

// CreateSession starts a new analysis session.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": s.ID.String(),
		"created_at": s.CreatedAt,
	})
}

// GetSession returns the session's current state.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":  s.ID.String(),
		"created_at":  s.CreatedAt,
		"has_dataset": s.HasDataset(),
		"source_file": filepath.Base(s.SourceFile),
		"excel_path":  s.ExcelPath,
		"pdf_path":    s.PDFPath,
	})
}

// DeleteSession removes a session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetSession discards the session's dataset and artifacts.
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	s.Reset()
	writeJSON(w, http.StatusOK, map[string]any{"session_id": s.ID.String(), "has_dataset": false})
}

// UploadDataset accepts a multipart "file" field, spools it to disk, and
// loads it into the session's processor. A re-upload replaces the
// previous dataset.
func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer file.Close()

	path, err := h.spoolUpload(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	proc, err := h.service.LoadProcessor(path)
	if err != nil {
		os.Remove(path)
		writeError(w, statusForError(err), err)
		return
	}

	s.Reset()
	s.SourceFile = path
	s.Processor = proc
	h.logger.Info("session %s loaded dataset %s", s.ID, header.Filename)

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id":  s.ID.String(),
		"source_file": header.Filename,
		"rows":        proc.Raw().NumRows(),
		"columns":     proc.Raw().NumColumns(),
	})
}

// GetAnalysis returns the full analysis report for the session's dataset.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	if !s.HasDataset() {
		writeError(w, http.StatusConflict, core.ErrNoDataset)
		return
	}
	writeJSON(w, http.StatusOK, s.Processor.Analyze())
}

// GetDigest returns the plain-text insight digest.
func (h *Handler) GetDigest(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	if !s.HasDataset() {
		writeError(w, http.StatusConflict, core.ErrNoDataset)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"digest": s.Processor.Summarize()})
}

// GenerateReports renders the Excel and PDF artifacts for the session's
// dataset and records their paths on the session.
func (h *Handler) GenerateReports(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	if !s.HasDataset() {
		writeError(w, http.StatusConflict, core.ErrNoDataset)
		return
	}

	result, err := h.service.Generate(r.Context(), app.GenerateRequest{FilePath: s.SourceFile})
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	s.ExcelPath = result.ExcelPath
	s.PDFPath = result.PDFPath

	writeJSON(w, http.StatusOK, map[string]any{
		"report_id":  result.ReportID.String(),
		"excel_path": result.ExcelPath,
		"pdf_path":   result.PDFPath,
		"runtime_ms": result.RuntimeMs,
	})
}

type notifyRequest struct {
	Recipients string `json:"recipients"`
	Subject    string `json:"subject"`
}

// Notify emails the session's rendered reports.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	if s.ExcelPath == "" || s.PDFPath == "" {
		writeError(w, http.StatusConflict, errors.New("no reports generated yet"))
		return
	}

	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	result := &app.GenerateResult{
		ExcelPath: s.ExcelPath,
		PDFPath:   s.PDFPath,
		Digest:    s.Processor.Summarize(),
	}
	delivery, err := h.service.Notify(result, req.Recipients, req.Subject)
	if err != nil {
		writeJSON(w, statusForError(err), map[string]any{
			"error":    err.Error(),
			"delivery": delivery,
		})
		return
	}
	writeJSON(w, http.StatusOK, delivery)
}

func (h *Handler) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := core.ParseSessionID(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) spoolUpload(src io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	// Keep the original extension so format detection still works.
	ext := strings.ToLower(filepath.Ext(filename))
	dst, err := os.CreateTemp(h.uploadDir, "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return dst.Name(), nil
}

func statusForError(err error) int {
	switch {
	case core.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrSMTPNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
