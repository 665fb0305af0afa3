package handlers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/intakehq/document-router-api/internal/dispatcher"
	"github.com/intakehq/document-router-api/internal/extractor"
	"github.com/intakehq/document-router-api/internal/memory"
	"github.com/intakehq/document-router-api/internal/models"
	"github.com/intakehq/document-router-api/internal/storage"
	"github.com/intakehq/document-router-api/internal/utils"
)

type DocumentHandler struct {
	dispatcher  *dispatcher.Dispatcher
	memory      *memory.Store
	storage     storage.Storage // nil when archiving is disabled
	logger      *utils.Logger
	maxFileSize int64
}

func NewDocumentHandler(disp *dispatcher.Dispatcher, store *memory.Store, archive storage.Storage, maxFileSize int64, logger *utils.Logger) *DocumentHandler {
	return &DocumentHandler{
		dispatcher:  disp,
		memory:      store,
		storage:     archive,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

// ClassifyDocument accepts a multipart upload, runs it through the
// dispatcher and logs the outcome. Handler and validation errors stay
// embedded in the result envelope; only adapter failures (no file,
// oversize, persistence breakage) map to error statuses.
func (h *DocumentHandler) ClassifyDocument(w http.ResponseWriter, r *http.Request) {
	// Check Content-Length header first to reject oversized requests early
	if r.ContentLength > h.maxFileSize {
		h.respondError(w, utils.NewBadRequestError("File size exceeds the upload limit"))
		return
	}

	// Limit the request body size to prevent memory exhaustion
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.respondError(w, utils.NewBadRequestError("File size exceeds the upload limit"))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file"))
		return
	}

	if int64(len(data)) > h.maxFileSize {
		h.respondError(w, utils.NewBadRequestError("File size exceeds the upload limit"))
		return
	}

	if len(data) == 0 {
		h.respondError(w, utils.NewBadRequestError("Uploaded file is empty"))
		return
	}

	doc := models.Document{
		Filename: header.Filename,
		Data:     data,
	}

	format, intent, result := h.dispatcher.ClassifyAndRoute(r.Context(), doc)

	docID := utils.GenerateID()

	if h.storage != nil {
		key := storage.ArchiveKey(docID, header.Filename)
		if err := h.storage.Upload(r.Context(), key, data, contentTypeFor(header.Filename)); err != nil {
			h.logger.Warn("Raw document archive skipped", "error", err, "key", key)
		}
	}

	entry, err := h.memory.Log(r.Context(), models.LogEntry{
		ThreadID:  r.FormValue("thread_id"),
		Source:    header.Filename,
		Format:    format,
		Intent:    intent,
		Extracted: result,
	}, "")
	if err != nil {
		h.logger.Error("Failed to log classification", "error", err, "filename", header.Filename)
		h.respondError(w, utils.NewInternalError("Failed to persist classification result"))
		return
	}

	h.respondJSON(w, http.StatusOK, models.ClassifyResponse{
		ID:            entry.ID,
		Filename:      header.Filename,
		Format:        format,
		Intent:        intent,
		Result:        result,
		ThreadID:      entry.ThreadID,
		ContentSample: contentSample(data),
	})
}

// GetThreadHistory returns all logged entries for one thread.
func (h *DocumentHandler) GetThreadHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	threadID := vars["id"]

	if threadID == "" {
		h.respondError(w, utils.NewBadRequestError("Thread ID is required"))
		return
	}

	entries, err := h.memory.ThreadHistory(r.Context(), threadID)
	if err != nil {
		h.logger.Error("Failed to load thread history", "error", err, "thread_id", threadID)
		h.respondError(w, utils.NewInternalError("Failed to load thread history"))
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"thread_id": threadID,
		"entries":   entries,
	})
}

// contentSample decodes the upload and returns its first 100 characters.
// Binary content yields the decode placeholder.
func contentSample(data []byte) string {
	text := extractor.DecodeText(data)
	runes := []rune(text)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return text
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (h *DocumentHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *DocumentHandler) respondError(w http.ResponseWriter, err error) {
	var status int
	var message string

	switch e := err.(type) {
	case *utils.AppError:
		status = e.StatusCode
		message = e.Message
	default:
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	h.logger.Error("Request error", "status", status, "error", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
