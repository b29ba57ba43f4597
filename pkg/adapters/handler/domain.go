package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/naruebet/teachshare/pkg/core/domain"
	"github.com/naruebet/teachshare/pkg/ports"
)

type DomainHandler struct {
	service ports.DomainService
	logger  *zap.Logger
}

func NewDomainHandler(service ports.DomainService, logger *zap.Logger) *DomainHandler {
	return &DomainHandler{service: service, logger: logger}
}

// DomainRequest payload
type DomainRequest struct {
	Name string `json:"name"`
}

func (h *DomainHandler) List(w http.ResponseWriter, r *http.Request) {
	domains, err := h.service.ListDomains(r.Context())
	if err != nil {
		h.logger.Error("failed to list domains", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error listing domains")
		return
	}
	if domains == nil {
		domains = []domain.Domain{}
	}
	writeJSON(w, http.StatusOK, domains)
}

func (h *DomainHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req DomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.CreateDomain(r.Context(), req.Name); err != nil {
		if errors.Is(err, domain.ErrInvalid) {
			writeMessage(w, http.StatusBadRequest, "Name is required")
			return
		}
		// Duplicates and store failures both answer 400 here; the client
		// treats them the same.
		h.logger.Warn("failed to create domain", zap.String("name", req.Name), zap.Error(err))
		writeMessage(w, http.StatusBadRequest, "Domain exists or error")
		return
	}

	writeMessage(w, http.StatusOK, "Domain created")
}

// Update renames a domain in place. Links keep the old name; a rename does
// not cascade.
func (h *DomainHandler) Update(w http.ResponseWriter, r *http.Request) {
	domainID := r.PathValue("id")

	var req DomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateDomain(r.Context(), domainID, req.Name); err != nil {
		h.logger.Error("failed to update domain", zap.String("id", domainID), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error updating domain")
		return
	}

	writeMessage(w, http.StatusOK, "Domain updated")
}

// Delete cascades: stored files, then the domain's links, then the domain.
func (h *DomainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	domainID := r.PathValue("id")

	if err := h.service.DeleteDomain(r.Context(), domainID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Domain not found")
			return
		}
		h.logger.Error("failed to delete domain", zap.String("id", domainID), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Error deleting domain and its posts")
		return
	}

	writeMessage(w, http.StatusOK, "Domain and all related posts deleted")
}
