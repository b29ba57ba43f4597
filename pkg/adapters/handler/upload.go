package handler

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/naruebet/teachshare/pkg/ports"
)

// maxUploadBytes caps the in-memory multipart buffer.
const maxUploadBytes = 32 << 20

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

type FileHandler struct {
	storage ports.ObjectStorage
	logger  *zap.Logger
}

func NewFileHandler(storage ports.ObjectStorage, logger *zap.Logger) *FileHandler {
	return &FileHandler{storage: storage, logger: logger}
}

// Upload stores a multipart file and returns its public URL. The object key
// is the upload timestamp plus the sanitized original filename, so repeated
// uploads of the same file never collide.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	safe := unsafeChars.ReplaceAllString(header.Filename, "_")
	key := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), safe)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.storage.Upload(r.Context(), key, file, header.Size, contentType); err != nil {
		h.logger.Error("upload failed", zap.String("key", key), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	h.logger.Info("file uploaded", zap.String("key", key), zap.Int64("size", header.Size))
	writeJSON(w, http.StatusOK, map[string]string{"url": h.storage.PublicURL(key)})
}

// Download streams an object's bytes back to the caller.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("filename")

	body, contentType, err := h.storage.Get(r.Context(), key)
	if err != nil {
		h.logger.Error("download failed", zap.String("key", key), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Download error")
		return
	}
	defer body.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("download interrupted", zap.String("key", key), zap.Error(err))
	}
}
