package models

// Standing is the derived per-team aggregate for one pool's table. It is
// never persisted; the standings calculator rebuilds it from the group
// matches on every read.
type Standing struct {
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	Played      int    `json:"played"`
	MatchesWon  int    `json:"matchesWon"`
	MatchesLost int    `json:"matchesLost"`
	GamesWon    int    `json:"gamesWon"`
	GamesLost   int    `json:"gamesLost"`
	Points      int    `json:"points"`
}

// GameDifference is the standings tie-break after points.
func (s Standing) GameDifference() int {
	return s.GamesWon - s.GamesLost
}
