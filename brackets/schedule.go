package brackets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clubnight/shuttlecup/models"
)

// Schedule generation preconditions. These surface to the user unchanged.
var (
	ErrTeamNameRequired   = errors.New("every team needs a name before the schedule can be generated")
	ErrPlayerNameRequired = errors.New("every player slot must be filled before the schedule can be generated")
	ErrPlayerDuplicated   = errors.New("a player may only be listed on one team")
)

// gamePairings enumerates the 2-of-3 player index combinations used for the
// three games of every match, applied to each side independently.
var gamePairings = [3][2]int{{0, 1}, {0, 2}, {1, 2}}

// teamPairings enumerates the round-robin team index pairs per pool, in
// fixed, non-randomized order.
var teamPairings = [3][2]int{{0, 1}, {0, 2}, {1, 2}}

// ValidateSetup checks the schedule generation preconditions: no blank team
// name, no blank player slot, no player name shared between two teams across
// either pool. It never mutates anything.
func ValidateSetup(teams models.PoolTeams) error {
	seen := make(map[string]string, 2*models.TeamsPerPool*models.PlayersPerTeam)
	for _, pool := range [][]models.Team{teams.A, teams.B} {
		for _, t := range pool {
			if strings.TrimSpace(t.Name) == "" {
				return fmt.Errorf("%w: team %s", ErrTeamNameRequired, t.ID)
			}
			for _, p := range t.Players {
				name := strings.TrimSpace(p)
				if name == "" {
					return fmt.Errorf("%w: team %s", ErrPlayerNameRequired, t.ID)
				}
				if other, ok := seen[name]; ok {
					return fmt.Errorf("%w: %s is on both %s and %s", ErrPlayerDuplicated, name, other, t.ID)
				}
				seen[name] = t.ID
			}
		}
	}
	return nil
}

// NewGames builds the three games of a match between two teams, pairing
// player indices (0,1), (0,2), (1,2) on each side. Game k always uses index
// pairing k for both sides; the sides' player identities are independent.
func NewGames(matchID string, team1, team2 models.Team) []models.Game {
	games := make([]models.Game, 0, len(gamePairings))
	for k, pair := range gamePairings {
		games = append(games, models.Game{
			ID:           fmt.Sprintf("%s-g%d", matchID, k+1),
			Team1Players: [2]string{team1.Players[pair[0]], team1.Players[pair[1]]},
			Team2Players: [2]string{team2.Players[pair[0]], team2.Players[pair[1]]},
		})
	}
	return games
}

// GenerateSchedule builds the full group schedule and a fresh knockout
// bracket from validated teams. Per pool it produces the three matches
// covering team pairs (0,1), (0,2), (1,2). The bracket starts with all team
// slots unresolved: semi1 seeded A1 vs B2, semi2 seeded B1 vs A2, the final
// seeded from the semifinal winners.
func GenerateSchedule(teams models.PoolTeams) ([]models.Match, models.KnockoutBracket, error) {
	if err := ValidateSetup(teams); err != nil {
		return nil, models.KnockoutBracket{}, err
	}

	matches := make([]models.Match, 0, 2*len(teamPairings))
	for _, pool := range []struct {
		id    string
		teams []models.Team
	}{
		{models.PoolA, teams.A},
		{models.PoolB, teams.B},
	} {
		for n, pair := range teamPairings {
			t1, t2 := pool.teams[pair[0]], pool.teams[pair[1]]
			id := fmt.Sprintf("%s-%d", pool.id, n+1)
			m := models.Match{
				ID:        id,
				Pool:      pool.id,
				Team1ID:   t1.ID,
				Team2ID:   t2.ID,
				Team1Name: t1.Name,
				Team2Name: t2.Name,
				Games:     NewGames(id, t1, t2),
			}
			matches = append(matches, m)
		}
	}

	bracket := models.KnockoutBracket{
		Semi1: &models.KnockoutMatch{
			ID:    models.KnockoutSemi1,
			Seed1: models.SeedA1,
			Seed2: models.SeedB2,
			Games: []models.Game{},
		},
		Semi2: &models.KnockoutMatch{
			ID:    models.KnockoutSemi2,
			Seed1: models.SeedB1,
			Seed2: models.SeedA2,
			Games: []models.Game{},
		},
		Final: &models.KnockoutMatch{
			ID:    models.KnockoutFinal,
			Seed1: models.SeedW1,
			Seed2: models.SeedW2,
			Games: []models.Game{},
		},
	}

	return matches, bracket, nil
}
