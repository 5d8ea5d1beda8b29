package brackets_test

import (
	"testing"

	"github.com/clubnight/shuttlecup/brackets"
	"github.com/clubnight/shuttlecup/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullTeams() models.PoolTeams {
	return models.PoolTeams{
		A: []models.Team{
			{ID: "A1", Name: "Smash Bros", Players: [3]string{"Anna", "Ben", "Clara"}},
			{ID: "A2", Name: "Net Gains", Players: [3]string{"David", "Emma", "Finn"}},
			{ID: "A3", Name: "Drop Shots", Players: [3]string{"Greta", "Henry", "Ida"}},
		},
		B: []models.Team{
			{ID: "B1", Name: "Shuttle Crew", Players: [3]string{"Jonas", "Karla", "Liam"}},
			{ID: "B2", Name: "Feather Weight", Players: [3]string{"Mia", "Noah", "Olivia"}},
			{ID: "B3", Name: "Court Jesters", Players: [3]string{"Paul", "Quinn", "Rosa"}},
		},
	}
}

func TestGenerateScheduleRoundRobinPairs(t *testing.T) {
	teams := fullTeams()
	matches, _, err := brackets.GenerateSchedule(teams)
	require.NoError(t, err)
	require.Len(t, matches, 6)

	wantPairs := []struct {
		pool, t1, t2 string
	}{
		{"A", "A1", "A2"},
		{"A", "A1", "A3"},
		{"A", "A2", "A3"},
		{"B", "B1", "B2"},
		{"B", "B1", "B3"},
		{"B", "B2", "B3"},
	}
	for i, want := range wantPairs {
		assert.Equal(t, want.pool, matches[i].Pool)
		assert.Equal(t, want.t1, matches[i].Team1ID)
		assert.Equal(t, want.t2, matches[i].Team2ID)
		assert.False(t, matches[i].Completed)
		assert.Nil(t, matches[i].Winner)
	}
	assert.Equal(t, "Smash Bros", matches[0].Team1Name)
	assert.Equal(t, "Net Gains", matches[0].Team2Name)
}

func TestGenerateScheduleGamePairings(t *testing.T) {
	teams := fullTeams()
	matches, _, err := brackets.GenerateSchedule(teams)
	require.NoError(t, err)

	// Game k uses player index pairing k on both sides independently:
	// (0,1), (0,2), (1,2).
	m := matches[0] // A1 (Anna,Ben,Clara) vs A2 (David,Emma,Finn)
	require.Len(t, m.Games, 3)
	assert.Equal(t, [2]string{"Anna", "Ben"}, m.Games[0].Team1Players)
	assert.Equal(t, [2]string{"David", "Emma"}, m.Games[0].Team2Players)
	assert.Equal(t, [2]string{"Anna", "Clara"}, m.Games[1].Team1Players)
	assert.Equal(t, [2]string{"David", "Finn"}, m.Games[1].Team2Players)
	assert.Equal(t, [2]string{"Ben", "Clara"}, m.Games[2].Team1Players)
	assert.Equal(t, [2]string{"Emma", "Finn"}, m.Games[2].Team2Players)

	for _, g := range m.Games {
		assert.Nil(t, g.Team1Score)
		assert.Nil(t, g.Team2Score)
		assert.Nil(t, g.Winner)
	}
}

func TestGenerateScheduleBracketSeeds(t *testing.T) {
	_, bracket, err := brackets.GenerateSchedule(fullTeams())
	require.NoError(t, err)

	require.NotNil(t, bracket.Semi1)
	require.NotNil(t, bracket.Semi2)
	require.NotNil(t, bracket.Final)

	assert.Equal(t, models.SeedA1, bracket.Semi1.Seed1)
	assert.Equal(t, models.SeedB2, bracket.Semi1.Seed2)
	assert.Equal(t, models.SeedB1, bracket.Semi2.Seed1)
	assert.Equal(t, models.SeedA2, bracket.Semi2.Seed2)
	assert.Equal(t, models.SeedW1, bracket.Final.Seed1)
	assert.Equal(t, models.SeedW2, bracket.Final.Seed2)

	for _, k := range []*models.KnockoutMatch{bracket.Semi1, bracket.Semi2, bracket.Final} {
		assert.Nil(t, k.Team1)
		assert.Nil(t, k.Team2)
		assert.Empty(t, k.Games)
		assert.Zero(t, k.Team1GamesWon)
		assert.Zero(t, k.Team2GamesWon)
		assert.Nil(t, k.Winner)
		assert.False(t, k.Completed)
	}
}

func TestGenerateScheduleValidation(t *testing.T) {
	t.Run("blank team name", func(t *testing.T) {
		teams := fullTeams()
		teams.B[2].Name = "  "
		_, _, err := brackets.GenerateSchedule(teams)
		assert.ErrorIs(t, err, brackets.ErrTeamNameRequired)
	})

	t.Run("blank player slot", func(t *testing.T) {
		teams := fullTeams()
		teams.A[1].Players[2] = ""
		_, _, err := brackets.GenerateSchedule(teams)
		assert.ErrorIs(t, err, brackets.ErrPlayerNameRequired)
	})

	t.Run("player on two teams in the same pool", func(t *testing.T) {
		teams := fullTeams()
		teams.A[2].Players[0] = "Anna"
		_, _, err := brackets.GenerateSchedule(teams)
		assert.ErrorIs(t, err, brackets.ErrPlayerDuplicated)
	})

	t.Run("player on two teams across pools", func(t *testing.T) {
		teams := fullTeams()
		teams.B[0].Players[1] = "Anna"
		_, _, err := brackets.GenerateSchedule(teams)
		assert.ErrorIs(t, err, brackets.ErrPlayerDuplicated)
	})
}
