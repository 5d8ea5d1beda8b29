package models

// Pool identifiers. The tournament always runs exactly two pools.
const (
	PoolA = "A"
	PoolB = "B"
)

// Seed labels used by the knockout bracket before its team slots resolve.
const (
	SeedA1 = "A1"
	SeedA2 = "A2"
	SeedB1 = "B1"
	SeedB2 = "B2"
	SeedW1 = "W1" // winner of semi1
	SeedW2 = "W2" // winner of semi2
)

// Bracket keys for the three knockout matches.
const (
	KnockoutSemi1 = "semi1"
	KnockoutSemi2 = "semi2"
	KnockoutFinal = "final"
)

const (
	TeamsPerPool   = 3
	PlayersPerTeam = 3
)

// Team is one pool entry with exactly three player slots. Player slots may be
// blank until setup is finished; schedule generation rejects blanks.
type Team struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Players [3]string `json:"players"`
}

// PoolTeams holds both pools' teams, keyed A and B on the wire.
type PoolTeams struct {
	A []Team `json:"A"`
	B []Team `json:"B"`
}

// Game is a single doubles sub-contest. Scores stay nil until entered and
// Winner stays nil until the raw scores resolve a winner under badminton
// rules; both scores being set with no winner is a valid stable state.
type Game struct {
	ID           string    `json:"id"`
	Team1Players [2]string `json:"team1Players"`
	Team2Players [2]string `json:"team2Players"`
	Team1Score   *int      `json:"team1Score"`
	Team2Score   *int      `json:"team2Score"`
	Winner       *int      `json:"winner"` // 1 or 2
}

// Match is a group-stage contest of three games between two teams of the
// same pool. Winner holds the winning team's id, or nil for a draw or an
// unfinished match.
type Match struct {
	ID            string  `json:"id"`
	Pool          string  `json:"pool"`
	Team1ID       string  `json:"team1Id"`
	Team2ID       string  `json:"team2Id"`
	Team1Name     string  `json:"team1Name"`
	Team2Name     string  `json:"team2Name"`
	Games         []Game  `json:"games"`
	Team1GamesWon int     `json:"team1GamesWon"`
	Team2GamesWon int     `json:"team2GamesWon"`
	Winner        *string `json:"winner"`
	Completed     bool    `json:"completed"`
}

// KnockoutMatch is a semifinal or final. Seed1/Seed2 are the symbolic slot
// labels; Team1/Team2 stay nil until standings or a prior knockout result
// determine them. Games stay empty until both slots resolve.
type KnockoutMatch struct {
	ID            string  `json:"id"`
	Seed1         string  `json:"seed1"`
	Seed2         string  `json:"seed2"`
	Team1         *Team   `json:"team1"`
	Team2         *Team   `json:"team2"`
	Games         []Game  `json:"games"`
	Team1GamesWon int     `json:"team1GamesWon"`
	Team2GamesWon int     `json:"team2GamesWon"`
	Winner        *string `json:"winner"`
	Completed     bool    `json:"completed"`
}

// KnockoutBracket holds the two semifinals and the final. All three are nil
// until a schedule is generated.
type KnockoutBracket struct {
	Semi1 *KnockoutMatch `json:"semi1"`
	Semi2 *KnockoutMatch `json:"semi2"`
	Final *KnockoutMatch `json:"final"`
}

// TournamentState is the single server-held record the whole system revolves
// around. Group matches are the authoritative source for all results;
// standings and knockout slots are derived from them on every read.
type TournamentState struct {
	Teams             PoolTeams       `json:"teams"`
	Matches           []Match         `json:"matches"`
	KnockoutMatches   KnockoutBracket `json:"knockoutMatches"`
	ScheduleGenerated bool            `json:"scheduleGenerated"`
}

// NewDefaultState returns the unpopulated default: six empty teams with fixed
// ids, no matches, no bracket, schedule not generated.
func NewDefaultState() *TournamentState {
	return &TournamentState{
		Teams: PoolTeams{
			A: []Team{{ID: "A1"}, {ID: "A2"}, {ID: "A3"}},
			B: []Team{{ID: "B1"}, {ID: "B2"}, {ID: "B3"}},
		},
		Matches: []Match{},
	}
}

// PoolTeams returns the teams of the given pool, or nil for an unknown pool.
func (s *TournamentState) PoolTeams(pool string) []Team {
	switch pool {
	case PoolA:
		return s.Teams.A
	case PoolB:
		return s.Teams.B
	}
	return nil
}

// TeamByID looks a team up across both pools.
func (s *TournamentState) TeamByID(id string) *Team {
	for i := range s.Teams.A {
		if s.Teams.A[i].ID == id {
			return &s.Teams.A[i]
		}
	}
	for i := range s.Teams.B {
		if s.Teams.B[i].ID == id {
			return &s.Teams.B[i]
		}
	}
	return nil
}

// MatchByID returns the group match with the given id.
func (s *TournamentState) MatchByID(id string) *Match {
	for i := range s.Matches {
		if s.Matches[i].ID == id {
			return &s.Matches[i]
		}
	}
	return nil
}

// KnockoutByKey returns the bracket entry for semi1, semi2 or final.
func (s *TournamentState) KnockoutByKey(key string) *KnockoutMatch {
	switch key {
	case KnockoutSemi1:
		return s.KnockoutMatches.Semi1
	case KnockoutSemi2:
		return s.KnockoutMatches.Semi2
	case KnockoutFinal:
		return s.KnockoutMatches.Final
	}
	return nil
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a deep copy of the game.
func (g Game) Clone() Game {
	g.Team1Score = copyIntPtr(g.Team1Score)
	g.Team2Score = copyIntPtr(g.Team2Score)
	g.Winner = copyIntPtr(g.Winner)
	return g
}

// Clone returns a deep copy of the match.
func (m Match) Clone() Match {
	games := make([]Game, len(m.Games))
	for i, g := range m.Games {
		games[i] = g.Clone()
	}
	m.Games = games
	m.Winner = copyStringPtr(m.Winner)
	return m
}

// Clone returns a deep copy of the knockout match.
func (k KnockoutMatch) Clone() KnockoutMatch {
	games := make([]Game, len(k.Games))
	for i, g := range k.Games {
		games[i] = g.Clone()
	}
	k.Games = games
	if k.Team1 != nil {
		t := *k.Team1
		k.Team1 = &t
	}
	if k.Team2 != nil {
		t := *k.Team2
		k.Team2 = &t
	}
	k.Winner = copyStringPtr(k.Winner)
	return k
}

// Clone returns a deep copy of the whole state. Repositories hand out clones
// so callers can never mutate stored state through aliasing.
func (s *TournamentState) Clone() *TournamentState {
	out := &TournamentState{ScheduleGenerated: s.ScheduleGenerated}
	out.Teams.A = append([]Team(nil), s.Teams.A...)
	out.Teams.B = append([]Team(nil), s.Teams.B...)
	out.Matches = make([]Match, len(s.Matches))
	for i, m := range s.Matches {
		out.Matches[i] = m.Clone()
	}
	if s.KnockoutMatches.Semi1 != nil {
		k := s.KnockoutMatches.Semi1.Clone()
		out.KnockoutMatches.Semi1 = &k
	}
	if s.KnockoutMatches.Semi2 != nil {
		k := s.KnockoutMatches.Semi2.Clone()
		out.KnockoutMatches.Semi2 = &k
	}
	if s.KnockoutMatches.Final != nil {
		k := s.KnockoutMatches.Final.Clone()
		out.KnockoutMatches.Final = &k
	}
	return out
}
