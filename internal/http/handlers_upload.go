package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mailmeter/internal/mailbox"
)

type uploadResponse struct {
	DatasetID string `json:"dataset_id"`
	Message   string `json:"message"`
	Records   int    `json:"records"`
	Excluded  int    `json:"excluded"`
}

// handleUpload is the dashboard upload path: form fields `filename` and
// `content` where content is a data-URL style "<type>,<base64>" payload.
// Only CSV is accepted here; PST goes through /upload/stream.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.uploadMaxBytes)
	if err := r.ParseForm(); err != nil {
		s.logger.ErrorContext(r.Context(), "Parse form error", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filename := strings.TrimSpace(r.Form.Get("filename"))
	content := r.Form.Get("content")
	if filename == "" || content == "" {
		writeError(w, http.StatusBadRequest, "filename and content are required")
		return
	}
	if !strings.Contains(strings.ToLower(filename), ".csv") {
		writeError(w, http.StatusUnsupportedMediaType, "Unsupported file format. Please upload a CSV file.")
		return
	}

	// Strip the data-URL prefix when present.
	if i := strings.IndexByte(content, ','); i >= 0 {
		content = content[i+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File %s failed to upload: invalid base64 content", filename))
		return
	}

	s.ingest(w, r, filename, decoded)
}

// handleUploadStream is the byte-stream upload path: the raw file in the
// request body, filename in the query string. Accepts CSV and PST.
func (s *Server) handleUploadStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		writeError(w, http.StatusBadRequest, "filename query parameter is required")
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.uploadMaxBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File %s failed to upload: %v", filename, err))
		return
	}

	s.ingest(w, r, filename, data)
}

// ingest decodes, auto-applies the persisted unwanted list, and stores the
// dataset.
func (s *Server) ingest(w http.ResponseWriter, r *http.Request, filename string, data []byte) {
	ctx := r.Context()

	unwanted := mailbox.LoadUnwantedList(s.unwantedFile)
	reader, err := mailbox.NewFromBytes(filename, data, unwanted)
	if err != nil {
		s.logger.WarnContext(ctx, "Upload decode failed", "filename", filename, "error", err)
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("File %s failed to upload: %v", filename, err))
		return
	}
	excluded := reader.ApplyUnwantedList()

	id, err := s.writer.Save(ctx, filename, reader.Records())
	if err != nil {
		s.logger.ErrorContext(ctx, "Dataset save failed", "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("File %s failed to upload: storage error", filename))
		return
	}

	s.logger.InfoContext(ctx, "Dataset ingested",
		"dataset_id", id,
		"filename", filename,
		"records", reader.Len(),
		"excluded", excluded)

	writeJSON(w, http.StatusOK, uploadResponse{
		DatasetID: id,
		Message:   fmt.Sprintf("File %q uploaded successfully!", filename),
		Records:   reader.Len(),
		Excluded:  excluded,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
