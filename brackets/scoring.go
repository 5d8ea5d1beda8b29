package brackets

import (
	"github.com/clubnight/shuttlecup/models"
)

// MaxGameScore is the hard cap: a game cannot go past 30 points.
const MaxGameScore = 30

// ValidScore reports whether a raw score is inside the allowed range.
func ValidScore(s int) bool {
	return s >= 0 && s <= MaxGameScore
}

// IsGameWinner applies the badminton win rule to one side's view of a score
// pair. At most one side can satisfy it for any pair.
func IsGameWinner(score, opponent int) bool {
	if score <= opponent {
		return false
	}
	if score == MaxGameScore {
		return true
	}
	if score >= 21 && opponent < 20 {
		return true
	}
	// Deuce: past 20-all a two point lead is required.
	if score >= 21 && opponent >= 20 && score-opponent >= 2 {
		return true
	}
	return false
}

// decideGame derives the game's winner from its raw scores. A game with both
// scores present but neither side satisfying the win rule stays undecided.
func decideGame(g *models.Game) {
	g.Winner = nil
	if g.Team1Score == nil || g.Team2Score == nil {
		return
	}
	s1, s2 := *g.Team1Score, *g.Team2Score
	switch {
	case IsGameWinner(s1, s2):
		w := 1
		g.Winner = &w
	case IsGameWinner(s2, s1):
		w := 2
		g.Winner = &w
	}
}

// recomputeGames refreshes every game's winner and tallies games won per
// side. allDecided is true only when every game has produced a winner.
func recomputeGames(games []models.Game) (team1Won, team2Won int, allDecided bool) {
	allDecided = len(games) > 0
	for i := range games {
		decideGame(&games[i])
		switch {
		case games[i].Winner == nil:
			allDecided = false
		case *games[i].Winner == 1:
			team1Won++
		default:
			team2Won++
		}
	}
	return team1Won, team2Won, allDecided
}

// RecomputeMatch re-derives a group match's per-game winners, games-won
// counts, completion flag and overall winner from the raw scores. The match
// is completed only when every game is decided; equal games-won counts on a
// completed match leave the winner unset (a drawn match).
func RecomputeMatch(m *models.Match) {
	w1, w2, allDecided := recomputeGames(m.Games)
	m.Team1GamesWon = w1
	m.Team2GamesWon = w2
	m.Completed = allDecided
	m.Winner = nil
	if !m.Completed {
		return
	}
	switch {
	case w1 > w2:
		id := m.Team1ID
		m.Winner = &id
	case w2 > w1:
		id := m.Team2ID
		m.Winner = &id
	}
}

// RecomputeKnockoutMatch is RecomputeMatch for a bracket entry. It only runs
// once both team slots are resolved, since games exist only from that point.
func RecomputeKnockoutMatch(k *models.KnockoutMatch) {
	w1, w2, allDecided := recomputeGames(k.Games)
	k.Team1GamesWon = w1
	k.Team2GamesWon = w2
	k.Completed = allDecided
	k.Winner = nil
	if !k.Completed || k.Team1 == nil || k.Team2 == nil {
		return
	}
	switch {
	case w1 > w2:
		id := k.Team1.ID
		k.Winner = &id
	case w2 > w1:
		id := k.Team2.ID
		k.Winner = &id
	}
}
