package brackets

import (
	"github.com/clubnight/shuttlecup/models"
)

// poolComplete reports whether every group match of the pool has been played
// to completion, which is when the pool's ranking becomes final.
func poolComplete(state *models.TournamentState, pool string) bool {
	found := false
	for i := range state.Matches {
		if state.Matches[i].Pool != pool {
			continue
		}
		found = true
		if !state.Matches[i].Completed {
			return false
		}
	}
	return found
}

// rankedTeam returns the team occupying the given standings position of a
// pool, or nil when the ranking is not yet determinable.
func rankedTeam(state *models.TournamentState, pool string, rank int) *models.Team {
	if !poolComplete(state, pool) {
		return nil
	}
	standings := ComputeStandings(state, pool)
	if rank >= len(standings) {
		return nil
	}
	return state.TeamByID(standings[rank].TeamID)
}

// resolveSlots sets a knockout match's team slots and lazily initializes its
// games the first time both slots are resolved. Existing games are never
// regenerated, so re-derived slots do not wipe entered scores.
func resolveSlots(k *models.KnockoutMatch, team1, team2 *models.Team) {
	k.Team1 = team1
	k.Team2 = team2
	if k.Team1 != nil && k.Team2 != nil && len(k.Games) == 0 {
		k.Games = NewGames(k.ID, *k.Team1, *k.Team2)
	}
}

// winnerTeam returns the team that won a completed knockout match, or nil.
func winnerTeam(k *models.KnockoutMatch) *models.Team {
	if k == nil || !k.Completed || k.Winner == nil {
		return nil
	}
	if k.Team1 != nil && k.Team1.ID == *k.Winner {
		return k.Team1
	}
	if k.Team2 != nil && k.Team2.ID == *k.Winner {
		return k.Team2
	}
	return nil
}

// ResolveKnockout re-derives the bracket's team slots from current group
// results: semi1 gets pool A's winner against pool B's runner-up, semi2 pool
// B's winner against pool A's runner-up, and the final the two semifinal
// winners. Slots whose source ranking or semifinal is not yet settled stay
// unresolved. Runs after every state read and mutation; it is idempotent.
func ResolveKnockout(state *models.TournamentState) {
	bracket := &state.KnockoutMatches
	if bracket.Semi1 == nil || bracket.Semi2 == nil || bracket.Final == nil {
		return
	}

	resolveSlots(bracket.Semi1,
		rankedTeam(state, models.PoolA, 0),
		rankedTeam(state, models.PoolB, 1))
	resolveSlots(bracket.Semi2,
		rankedTeam(state, models.PoolB, 0),
		rankedTeam(state, models.PoolA, 1))
	resolveSlots(bracket.Final,
		winnerTeam(bracket.Semi1),
		winnerTeam(bracket.Semi2))
}
