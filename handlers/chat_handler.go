package handlers

import (
	"net/http"

	"github.com/alex-adamant/volley/services"
	"github.com/go-chi/chi/v5"
)

// ChatHandler serves the chat directory and the read-only views: rating
// table, elo statistics, team table, day results, league summary and
// player cards.
type ChatHandler struct {
	chatService   services.ChatService
	ratingService services.RatingService
	statsService  services.StatsService
}

func NewChatHandler(chatService services.ChatService, ratingService services.RatingService, statsService services.StatsService) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		ratingService: ratingService,
		statsService:  statsService,
	}
}

func (h *ChatHandler) ListChatsHandler(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatService.ListChats(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"chats": chats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateChatHandler godoc
// @Summary Register a chat
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body services.CreateChatInput true "Chat identity"
// @Success 201 {object} models.Chat
// @Router /chats [post]
func (h *ChatHandler) CreateChatHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateChatInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	chat, err := h.chatService.CreateChat(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"chat": chat}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RatingHandler godoc
// @Summary Rating table for a chat
// @Tags chats
// @Produce json
// @Param slug path string true "Chat slug"
// @Param range query string false "all or season:<id>"
// @Param status query string false "active or all"
// @Param seasonBoost query string false "boosted or base"
// @Success 200 {object} services.RatingView
// @Router /chats/{slug}/rating [get]
func (h *ChatHandler) RatingHandler(w http.ResponseWriter, r *http.Request) {
	query := services.RatingQuery{
		RangeKey:           r.URL.Query().Get("range"),
		Status:             r.URL.Query().Get("status"),
		DisableSeasonBoost: r.URL.Query().Get("seasonBoost") == "base",
	}

	view, err := h.ratingService.GetRating(r.Context(), chi.URLParam(r, "slug"), query)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EloStatsHandler serves the favorite/underdog breakdown.
func (h *ChatHandler) EloStatsHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.ratingService.GetEloStats(r.Context(), chi.URLParam(r, "slug"), r.URL.Query().Get("range"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChatHandler) TeamStatsHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.statsService.GetTeamStats(r.Context(), chi.URLParam(r, "slug"), r.URL.Query().Get("range"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChatHandler) DayResultsHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.statsService.GetDayResults(
		r.Context(),
		chi.URLParam(r, "slug"),
		r.URL.Query().Get("day"),
		r.URL.Query().Get("range"),
		r.URL.Query().Get("status"),
	)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChatHandler) LeagueStatsHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.statsService.GetLeagueStats(r.Context(), chi.URLParam(r, "slug"), r.URL.Query().Get("range"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChatHandler) PlayerCardHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.statsService.GetPlayerCard(r.Context(), chi.URLParam(r, "slug"), userID, r.URL.Query().Get("range"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
