package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/naruebet/teachshare/pkg/core/domain"
	"github.com/naruebet/teachshare/pkg/ports"
)

type LinkHandler struct {
	service ports.LinkService
	logger  *zap.Logger
}

func NewLinkHandler(service ports.LinkService, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{service: service, logger: logger}
}

// LinkRequest payload for create and update
type LinkRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	FileURL     string `json:"fileUrl"`
	Domain      string `json:"domain"`
}

// List returns every link, newest first.
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.ListLinks(r.Context())
	if err != nil {
		h.logger.Error("failed to list links", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error listing links")
		return
	}
	if links == nil {
		links = []domain.Link{}
	}
	writeJSON(w, http.StatusOK, links)
}

// Create persists a new link. Field presence is the client's concern; the
// server stores whatever it is given.
func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.CreateLink(r.Context(), req.Title, req.Description, req.URL, req.FileURL, req.Domain); err != nil {
		h.logger.Error("failed to create link", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error creating link")
		return
	}

	writeMessage(w, http.StatusOK, "Link created")
}

// Update overwrites all provided fields, cleaning up a replaced upload first.
func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	linkID := r.PathValue("id")

	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.UpdateLink(r.Context(), linkID, req.Title, req.Description, req.URL, req.FileURL, req.Domain); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Link not found")
			return
		}
		h.logger.Error("failed to update link", zap.String("id", linkID), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error updating link")
		return
	}

	writeMessage(w, http.StatusOK, "Link updated")
}

// Delete removes a link and, best effort, its stored file.
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	linkID := r.PathValue("id")

	cleanupFailed, err := h.service.DeleteLink(r.Context(), linkID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("failed to delete link", zap.String("id", linkID), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error deleting link")
		return
	}

	if cleanupFailed {
		writeMessage(w, http.StatusOK, "Link deleted with warning")
		return
	}
	writeMessage(w, http.StatusOK, "Link (and file if present) deleted")
}
