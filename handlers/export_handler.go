package handlers

import (
	"net/http"

	"github.com/alex-adamant/volley/services"
	"github.com/go-chi/chi/v5"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportRatingHandler uploads the current rating table as CSV and
// responds with the public link. Returns 503 when no uploader is
// configured.
func (h *ExportHandler) ExportRatingHandler(w http.ResponseWriter, r *http.Request) {
	if h.exportService == nil {
		errorResponse(w, r, http.StatusServiceUnavailable, "export storage is not configured")
		return
	}

	result, err := h.exportService.ExportRating(r.Context(), chi.URLParam(r, "slug"), r.URL.Query().Get("range"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
