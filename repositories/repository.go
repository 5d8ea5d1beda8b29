package repositories

import (
	"context"
	"errors"

	"github.com/clubnight/shuttlecup/models"
)

var (
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrMatchNotFound         = errors.New("match not found")
	ErrKnockoutMatchNotFound = errors.New("knockout match not found")
)

// TournamentRepository stores whole TournamentState records keyed by
// tournament id. Only one instance is typically ever used, but the key keeps
// the store free of process-wide singletons and lets tests run isolated
// tournaments side by side.
//
// Concurrent writers follow last-write-wins; there is no optimistic
// concurrency token. Implementations must hand out deep copies.
type TournamentRepository interface {
	// Get returns the stored state, or ErrTournamentNotFound.
	Get(ctx context.Context, tournamentID string) (*models.TournamentState, error)

	// Replace stores the full state, creating the tournament if needed.
	Replace(ctx context.Context, tournamentID string, state *models.TournamentState) error

	// Reset stores the default state and returns it, creating the
	// tournament if needed.
	Reset(ctx context.Context, tournamentID string) (*models.TournamentState, error)

	// PatchMatch replaces a single group match by id. Returns
	// ErrMatchNotFound when the id is absent from the stored state.
	PatchMatch(ctx context.Context, tournamentID string, match models.Match) error

	// PatchKnockoutMatch replaces a single bracket entry by key
	// (semi1, semi2 or final). Returns ErrKnockoutMatchNotFound for an
	// unknown key or an ungenerated bracket.
	PatchKnockoutMatch(ctx context.Context, tournamentID string, key string, match models.KnockoutMatch) error
}

// applyMatchPatch swaps one group match into a state in place.
func applyMatchPatch(state *models.TournamentState, match models.Match) error {
	for i := range state.Matches {
		if state.Matches[i].ID == match.ID {
			state.Matches[i] = match.Clone()
			return nil
		}
	}
	return ErrMatchNotFound
}

// applyKnockoutPatch swaps one bracket entry into a state in place.
func applyKnockoutPatch(state *models.TournamentState, key string, match models.KnockoutMatch) error {
	patched := match.Clone()
	switch key {
	case models.KnockoutSemi1:
		if state.KnockoutMatches.Semi1 == nil {
			return ErrKnockoutMatchNotFound
		}
		state.KnockoutMatches.Semi1 = &patched
	case models.KnockoutSemi2:
		if state.KnockoutMatches.Semi2 == nil {
			return ErrKnockoutMatchNotFound
		}
		state.KnockoutMatches.Semi2 = &patched
	case models.KnockoutFinal:
		if state.KnockoutMatches.Final == nil {
			return ErrKnockoutMatchNotFound
		}
		state.KnockoutMatches.Final = &patched
	default:
		return ErrKnockoutMatchNotFound
	}
	return nil
}
