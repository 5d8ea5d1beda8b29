package brackets

import (
	"sort"

	"github.com/clubnight/shuttlecup/models"
)

// Points awarded per completed group match.
const (
	pointsWin  = 2
	pointsDraw = 1
)

// ComputeStandings derives the ranked table for one pool from the completed
// group matches. Incomplete matches contribute nothing. The result is ordered
// by points, then game difference, both descending; teams still level keep
// their original pool order. The table is rebuilt from scratch on every call;
// the match list stays the only source of truth.
func ComputeStandings(state *models.TournamentState, pool string) []models.Standing {
	teams := state.PoolTeams(pool)
	standings := make([]models.Standing, len(teams))
	index := make(map[string]*models.Standing, len(teams))
	for i, t := range teams {
		standings[i] = models.Standing{TeamID: t.ID, TeamName: t.Name}
		index[t.ID] = &standings[i]
	}

	for i := range state.Matches {
		m := &state.Matches[i]
		if m.Pool != pool || !m.Completed {
			continue
		}
		s1, ok1 := index[m.Team1ID]
		s2, ok2 := index[m.Team2ID]
		if !ok1 || !ok2 {
			continue
		}
		s1.Played++
		s2.Played++
		s1.GamesWon += m.Team1GamesWon
		s1.GamesLost += m.Team2GamesWon
		s2.GamesWon += m.Team2GamesWon
		s2.GamesLost += m.Team1GamesWon

		switch {
		case m.Winner == nil:
			// A completed match without a winner is a draw.
			s1.Points += pointsDraw
			s2.Points += pointsDraw
		case *m.Winner == m.Team1ID:
			s1.Points += pointsWin
			s1.MatchesWon++
			s2.MatchesLost++
		default:
			s2.Points += pointsWin
			s2.MatchesWon++
			s1.MatchesLost++
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].GameDifference() > standings[j].GameDifference()
	})
	return standings
}
