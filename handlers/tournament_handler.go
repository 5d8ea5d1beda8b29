package handlers

import (
	"net/http"

	"github.com/clubnight/shuttlecup/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TournamentHandler exposes the tournament engine over HTTP. Every mutating
// request may carry a correlation token; one is generated when absent and
// echoed both in the response and the resulting websocket broadcast, so the
// submitting client can discard its own echo.
type TournamentHandler struct {
	service services.TournamentService
}

func NewTournamentHandler(service services.TournamentService) *TournamentHandler {
	return &TournamentHandler{service: service}
}

type updateTeamRequest struct {
	Name    string    `json:"name"`
	Players [3]string `json:"players"`
	Token   string    `json:"token,omitempty"`
}

type scoreRequest struct {
	Team1Score int    `json:"team1Score"`
	Team2Score int    `json:"team2Score"`
	Token      string `json:"token,omitempty"`
}

type generateRequest struct {
	Token string `json:"token,omitempty"`
}

func ensureToken(token string) string {
	if token == "" {
		return uuid.NewString()
	}
	return token
}

func (h *TournamentHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.State(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *TournamentHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var input updateTeamRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	token := ensureToken(input.Token)
	state, err := h.service.UpdateTeam(r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "pool"),
		chi.URLParam(r, "teamID"),
		input.Name, input.Players, token)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"token": token, "state": state})
}

func (h *TournamentHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var input generateRequest
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, err)
			return
		}
	}

	token := ensureToken(input.Token)
	state, err := h.service.GenerateSchedule(r.Context(), chi.URLParam(r, "tournamentID"), token)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"token": token, "state": state})
}

func (h *TournamentHandler) ScoreMatchGame(w http.ResponseWriter, r *http.Request) {
	var input scoreRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	token := ensureToken(input.Token)
	state, err := h.service.ScoreMatchGame(r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "matchID"),
		chi.URLParam(r, "gameID"),
		input.Team1Score, input.Team2Score, token)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"token": token, "state": state})
}

func (h *TournamentHandler) ScoreKnockoutGame(w http.ResponseWriter, r *http.Request) {
	var input scoreRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	token := ensureToken(input.Token)
	state, err := h.service.ScoreKnockoutGame(r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "key"),
		chi.URLParam(r, "gameID"),
		input.Team1Score, input.Team2Score, token)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"token": token, "state": state})
}

func (h *TournamentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var input generateRequest
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, err)
			return
		}
	}

	token := ensureToken(input.Token)
	state, err := h.service.Reset(r.Context(), chi.URLParam(r, "tournamentID"), token)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"token": token, "state": state})
}

func (h *TournamentHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(r.Context(),
		chi.URLParam(r, "tournamentID"),
		chi.URLParam(r, "pool"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"standings": standings})
}
