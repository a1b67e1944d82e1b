package handlers

import (
	"net/http"

	"github.com/alex-adamant/volley/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// RecordMatchHandler godoc
// @Summary Record a finished match
// @Tags matches
// @Accept json
// @Produce json
// @Param slug path string true "Chat slug"
// @Param match body services.RecordMatchInput true "Match result"
// @Success 201 {object} models.Match
// @Security BearerAuth
// @Router /chats/{slug}/matches [post]
func (h *MatchHandler) RecordMatchHandler(w http.ResponseWriter, r *http.Request) {
	var input services.RecordMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordMatch(r.Context(), chi.URLParam(r, "slug"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) DeleteMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), chi.URLParam(r, "slug"), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
