package routes

import (
	"net/http"

	"github.com/clubnight/shuttlecup/handlers"
	"github.com/clubnight/shuttlecup/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires all handlers onto the router. Reads and the websocket
// subscription are public; everything that mutates tournament state sits
// behind the organizer token.
func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	authHandler *handlers.AuthHandler,
	rosterHandler *handlers.RosterHandler,
	webSocketHandler *handlers.WebSocketHandler,
	jwtSecret string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/login", authHandler.Login)
	router.Get("/roster", rosterHandler.GetRoster)
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Route("/tournaments/{tournamentID}", func(r chi.Router) {
		r.Get("/", tournamentHandler.GetState)
		r.Get("/standings/{pool}", tournamentHandler.GetStandings)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Put("/teams/{pool}/{teamID}", tournamentHandler.UpdateTeam)
			r.Post("/schedule", tournamentHandler.GenerateSchedule)
			r.Put("/matches/{matchID}/games/{gameID}", tournamentHandler.ScoreMatchGame)
			r.Put("/knockout/{key}/games/{gameID}", tournamentHandler.ScoreKnockoutGame)
			r.Post("/reset", tournamentHandler.Reset)
		})
	})
}
