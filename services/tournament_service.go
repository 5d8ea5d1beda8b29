package services

import (
	"context"
	"fmt"

	"github.com/clubnight/shuttlecup/brackets"
	"github.com/clubnight/shuttlecup/models"
	"github.com/clubnight/shuttlecup/repositories"
)

// Broadcaster republishes the full tournament state to all observers of a
// room. Satisfied by *brackets.Hub; tests substitute a recorder.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// TournamentService owns every state transition of a tournament. All
// mutating operations work on a copy of the stored state and persist before
// anything is served or broadcast, so a failed persistence attempt never
// leaves clients looking at state the store does not hold.
//
// The token on mutating operations is the request-correlation id echoed in
// the resulting broadcast; clients use it to discard their own echo.
type TournamentService interface {
	State(ctx context.Context, tournamentID string) (*models.TournamentState, error)
	UpdateTeam(ctx context.Context, tournamentID, pool, teamID, name string, players [3]string, token string) (*models.TournamentState, error)
	GenerateSchedule(ctx context.Context, tournamentID, token string) (*models.TournamentState, error)
	ScoreMatchGame(ctx context.Context, tournamentID, matchID, gameID string, team1Score, team2Score int, token string) (*models.TournamentState, error)
	ScoreKnockoutGame(ctx context.Context, tournamentID, key, gameID string, team1Score, team2Score int, token string) (*models.TournamentState, error)
	Reset(ctx context.Context, tournamentID, token string) (*models.TournamentState, error)
	Standings(ctx context.Context, tournamentID, pool string) ([]models.Standing, error)
}

type tournamentService struct {
	repo repositories.TournamentRepository
	hub  Broadcaster
}

func NewTournamentService(repo repositories.TournamentRepository, hub Broadcaster) TournamentService {
	return &tournamentService{repo: repo, hub: hub}
}

// RoomID names the websocket room of a tournament.
func RoomID(tournamentID string) string {
	return "tournament_" + tournamentID
}

func (s *tournamentService) broadcast(tournamentID, token string, state *models.TournamentState) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(RoomID(tournamentID), brackets.StateMessage{
		Type:    brackets.MessageTypeStateUpdated,
		Token:   token,
		RoomID:  RoomID(tournamentID),
		Payload: state,
	})
}

// State returns the stored record with knockout slots re-derived from the
// group results. Derivations are recomputed on every read, never cached.
func (s *tournamentService) State(ctx context.Context, tournamentID string) (*models.TournamentState, error) {
	state, err := s.repo.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	brackets.ResolveKnockout(state)
	return state, nil
}

func (s *tournamentService) UpdateTeam(ctx context.Context, tournamentID, pool, teamID, name string, players [3]string, token string) (*models.TournamentState, error) {
	if pool != models.PoolA && pool != models.PoolB {
		return nil, ErrInvalidPool
	}

	state, err := s.repo.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if state.ScheduleGenerated {
		return nil, ErrSetupLocked
	}

	var team *models.Team
	pt := state.PoolTeams(pool)
	for i := range pt {
		if pt[i].ID == teamID {
			team = &pt[i]
			break
		}
	}
	if team == nil {
		return nil, fmt.Errorf("%w: %s in pool %s", ErrTeamNotFound, teamID, pool)
	}
	team.Name = name
	team.Players = players

	if err := s.repo.Replace(ctx, tournamentID, state); err != nil {
		return nil, err
	}
	s.broadcast(tournamentID, token, state)
	return state, nil
}

// GenerateSchedule validates the setup, builds all group matches and the
// knockout bracket, and freezes team composition. Everything happens on a
// copy: a persistence failure leaves the served state exactly as before.
func (s *tournamentService) GenerateSchedule(ctx context.Context, tournamentID, token string) (*models.TournamentState, error) {
	state, err := s.repo.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if state.ScheduleGenerated {
		return nil, ErrScheduleAlreadyGenerated
	}

	matches, bracket, err := brackets.GenerateSchedule(state.Teams)
	if err != nil {
		return nil, err
	}
	state.Matches = matches
	state.KnockoutMatches = bracket
	state.ScheduleGenerated = true

	if err := s.repo.Replace(ctx, tournamentID, state); err != nil {
		return nil, err
	}
	brackets.ResolveKnockout(state)
	s.broadcast(tournamentID, token, state)
	return state, nil
}

func (s *tournamentService) ScoreMatchGame(ctx context.Context, tournamentID, matchID, gameID string, team1Score, team2Score int, token string) (*models.TournamentState, error) {
	if !brackets.ValidScore(team1Score) || !brackets.ValidScore(team2Score) {
		return nil, ErrScoreOutOfRange
	}

	state, err := s.repo.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	match := state.MatchByID(matchID)
	if match == nil {
		return nil, repositories.ErrMatchNotFound
	}
	game := findGame(match.Games, gameID)
	if game == nil {
		return nil, fmt.Errorf("%w: %s in match %s", ErrGameNotFound, gameID, matchID)
	}
	game.Team1Score = &team1Score
	game.Team2Score = &team2Score
	brackets.RecomputeMatch(match)

	if err := s.repo.PatchMatch(ctx, tournamentID, *match); err != nil {
		return nil, err
	}
	brackets.ResolveKnockout(state)
	s.broadcast(tournamentID, token, state)
	return state, nil
}

func (s *tournamentService) ScoreKnockoutGame(ctx context.Context, tournamentID, key, gameID string, team1Score, team2Score int, token string) (*models.TournamentState, error) {
	if !brackets.ValidScore(team1Score) || !brackets.ValidScore(team2Score) {
		return nil, ErrScoreOutOfRange
	}

	state, err := s.repo.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	// Resolving first materializes the match's games once its slots are
	// determined, so the first score entry finds them in place.
	brackets.ResolveKnockout(state)

	knockout := state.KnockoutByKey(key)
	if knockout == nil {
		return nil, repositories.ErrKnockoutMatchNotFound
	}
	if knockout.Team1 == nil || knockout.Team2 == nil {
		return nil, ErrKnockoutNotReady
	}
	game := findGame(knockout.Games, gameID)
	if game == nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrGameNotFound, gameID, key)
	}
	game.Team1Score = &team1Score
	game.Team2Score = &team2Score
	brackets.RecomputeKnockoutMatch(knockout)

	if err := s.repo.PatchKnockoutMatch(ctx, tournamentID, key, *knockout); err != nil {
		return nil, err
	}
	// A completed semifinal may just have seeded the final.
	brackets.ResolveKnockout(state)
	s.broadcast(tournamentID, token, state)
	return state, nil
}

func (s *tournamentService) Reset(ctx context.Context, tournamentID, token string) (*models.TournamentState, error) {
	state, err := s.repo.Reset(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.broadcast(tournamentID, token, state)
	return state, nil
}

func (s *tournamentService) Standings(ctx context.Context, tournamentID, pool string) ([]models.Standing, error) {
	if pool != models.PoolA && pool != models.PoolB {
		return nil, ErrInvalidPool
	}
	state, err := s.repo.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return brackets.ComputeStandings(state, pool), nil
}

func findGame(games []models.Game, gameID string) *models.Game {
	for i := range games {
		if games[i].ID == gameID {
			return &games[i]
		}
	}
	return nil
}
