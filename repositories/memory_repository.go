package repositories

import (
	"context"
	"sync"

	"github.com/clubnight/shuttlecup/models"
)

// MemoryTournamentRepository keeps tournament states in a mutex-guarded map.
// It is the default store and the one the tests run against.
type MemoryTournamentRepository struct {
	mu          sync.RWMutex
	tournaments map[string]*models.TournamentState
}

func NewMemoryTournamentRepository() *MemoryTournamentRepository {
	return &MemoryTournamentRepository{
		tournaments: make(map[string]*models.TournamentState),
	}
}

func (r *MemoryTournamentRepository) Get(_ context.Context, tournamentID string) (*models.TournamentState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.tournaments[tournamentID]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return state.Clone(), nil
}

func (r *MemoryTournamentRepository) Replace(_ context.Context, tournamentID string, state *models.TournamentState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tournaments[tournamentID] = state.Clone()
	return nil
}

func (r *MemoryTournamentRepository) Reset(_ context.Context, tournamentID string) (*models.TournamentState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := models.NewDefaultState()
	r.tournaments[tournamentID] = state
	return state.Clone(), nil
}

func (r *MemoryTournamentRepository) PatchMatch(_ context.Context, tournamentID string, match models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.tournaments[tournamentID]
	if !ok {
		return ErrTournamentNotFound
	}
	return applyMatchPatch(state, match)
}

func (r *MemoryTournamentRepository) PatchKnockoutMatch(_ context.Context, tournamentID string, key string, match models.KnockoutMatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.tournaments[tournamentID]
	if !ok {
		return ErrTournamentNotFound
	}
	return applyKnockoutPatch(state, key, match)
}
