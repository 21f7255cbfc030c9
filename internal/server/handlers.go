package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avolkov/claimlens/internal/model"
	"github.com/avolkov/claimlens/internal/pdftext"
)

type errorResponse struct {
	Error string `json:"error"`
}

type claimsResponse struct {
	Document model.Document `json:"document"`
	Claims   []model.Claim  `json:"claims"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCheck runs the full pipeline: upload, extract, verify, report
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	report, err := s.checker.CheckPDF(r.Context(), filename, data)
	if err != nil {
		s.writeCheckError(w, r, err)
		return
	}

	s.log.Info("document checked",
		slog.String("file", filename),
		slog.Int("claims", report.Summary.Total),
		slog.Int("accuracy", report.Summary.AccuracyIndex),
	)
	writeJSON(w, http.StatusOK, report)
}

// handleClaims extracts claims without verification (the preview stage)
func (s *Server) handleClaims(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	doc, claims, err := s.checker.ClaimsPreview(r.Context(), filename, data)
	if err != nil {
		s.writeCheckError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, claimsResponse{Document: doc, Claims: claims})
}

// readUpload parses the multipart form and returns the PDF bytes.
// Writes the error response itself when the upload is unusable.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid upload: " + err.Error()})
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: `missing "file" form field`})
		return "", nil, false
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(ext(header.Filename), ".pdf") {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "only PDF uploads are supported"})
		return "", nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read upload: " + err.Error()})
		return "", nil, false
	}

	return header.Filename, data, true
}

// writeCheckError maps pipeline errors to HTTP statuses: client problems
// (bad PDF) are 400, upstream API failures are 502
func (s *Server) writeCheckError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pdftext.ErrNoText):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "could not extract text from PDF; ensure it contains readable text (not scanned images)",
		})
	case errors.Is(err, pdftext.ErrTooLarge):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.log.Error("check failed", slog.Any("err", err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ext(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[idx:]
	}
	return ""
}
