package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/alex-adamant/volley/docs"
	"github.com/alex-adamant/volley/handlers"
	"github.com/alex-adamant/volley/middleware"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Chat      *handlers.ChatHandler
	Season    *handlers.SeasonHandler
	Match     *handlers.MatchHandler
	Roster    *handlers.RosterHandler
	Schedule  *handlers.ScheduleHandler
	Export    *handlers.ExportHandler
	WebSocket *handlers.WebSocketHandler
}

func InitRoutes(h Handlers, jwtSecret []byte) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/login", h.Auth.LoginHandler)

	router.Get("/chats", h.Chat.ListChatsHandler)
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize("admin"))

		r.Post("/chats", h.Chat.CreateChatHandler)
	})

	router.Route("/chats/{slug}", func(r chi.Router) {
		r.Get("/rating", h.Chat.RatingHandler)
		r.Get("/elo-stats", h.Chat.EloStatsHandler)
		r.Get("/team-stats", h.Chat.TeamStatsHandler)
		r.Get("/day-results", h.Chat.DayResultsHandler)
		r.Get("/league-stats", h.Chat.LeagueStatsHandler)
		r.Get("/players", h.Roster.ListPlayersHandler)
		r.Get("/players/{userID}", h.Chat.PlayerCardHandler)
		r.Get("/seasons", h.Season.ListSeasonsHandler)
		r.Get("/seasons/{seasonID}", h.Season.GetSeasonHandler)
		r.Get("/ws", h.WebSocket.ServeWs)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize("admin"))

			r.Post("/matches", h.Match.RecordMatchHandler)
			r.Delete("/matches/{matchID}", h.Match.DeleteMatchHandler)
			r.Post("/players", h.Roster.AddPlayerHandler)
			r.Patch("/players/{userID}", h.Roster.UpdatePlayerHandler)
			r.Delete("/players/{userID}", h.Roster.RemovePlayerHandler)
			r.Post("/seasons", h.Season.CreateSeasonHandler)
			r.Post("/schedule", h.Schedule.GenerateScheduleHandler)
			r.Post("/export", h.Export.ExportRatingHandler)
		})
	})

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return router
}
