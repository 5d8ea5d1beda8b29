package handlers

import (
	"net/http"

	"github.com/clubnight/shuttlecup/repositories"
)

// RosterHandler serves the read-only list of eligible player names.
type RosterHandler struct {
	roster *repositories.Roster
}

func NewRosterHandler(roster *repositories.Roster) *RosterHandler {
	return &RosterHandler{roster: roster}
}

func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jsonResponse{"players": h.roster.Names()})
}
