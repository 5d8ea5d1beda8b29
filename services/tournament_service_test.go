package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/clubnight/shuttlecup/brackets"
	"github.com/clubnight/shuttlecup/models"
	"github.com/clubnight/shuttlecup/repositories"
	"github.com/clubnight/shuttlecup/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tournamentID = "default"

// recordingBroadcaster captures broadcast messages for assertions.
type recordingBroadcaster struct {
	rooms    []string
	messages []brackets.StateMessage
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.rooms = append(b.rooms, roomID)
	b.messages = append(b.messages, message.(brackets.StateMessage))
}

func (b *recordingBroadcaster) last() brackets.StateMessage {
	return b.messages[len(b.messages)-1]
}

func setupService(t *testing.T) (services.TournamentService, *recordingBroadcaster) {
	t.Helper()
	repo := repositories.NewMemoryTournamentRepository()
	_, err := repo.Reset(context.Background(), tournamentID)
	require.NoError(t, err)

	hub := &recordingBroadcaster{}
	return services.NewTournamentService(repo, hub), hub
}

type teamSetup struct {
	pool, id, name string
	players        [3]string
}

var fullSetup = []teamSetup{
	{"A", "A1", "Smash Bros", [3]string{"Anna", "Ben", "Clara"}},
	{"A", "A2", "Net Gains", [3]string{"David", "Emma", "Finn"}},
	{"A", "A3", "Drop Shots", [3]string{"Greta", "Henry", "Ida"}},
	{"B", "B1", "Shuttle Crew", [3]string{"Jonas", "Karla", "Liam"}},
	{"B", "B2", "Feather Weight", [3]string{"Mia", "Noah", "Olivia"}},
	{"B", "B3", "Court Jesters", [3]string{"Paul", "Quinn", "Rosa"}},
}

func populateTeams(t *testing.T, svc services.TournamentService) {
	t.Helper()
	ctx := context.Background()
	for _, ts := range fullSetup {
		_, err := svc.UpdateTeam(ctx, tournamentID, ts.pool, ts.id, ts.name, ts.players, "tok")
		require.NoError(t, err)
	}
}

// winAll plays every game of a group match as a 3-0 for team1.
func winAll(t *testing.T, svc services.TournamentService, matchID string) {
	t.Helper()
	ctx := context.Background()
	for _, game := range []string{matchID + "-g1", matchID + "-g2", matchID + "-g3"} {
		_, err := svc.ScoreMatchGame(ctx, tournamentID, matchID, game, 21, 15, "tok")
		require.NoError(t, err)
	}
}

func completeGroupStage(t *testing.T, svc services.TournamentService) {
	t.Helper()
	for _, id := range []string{"A-1", "A-2", "A-3", "B-1", "B-2", "B-3"} {
		winAll(t, svc, id)
	}
}

func TestUpdateTeamAndGenerateSchedule(t *testing.T) {
	svc, hub := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)

	state, err := svc.GenerateSchedule(ctx, tournamentID, "gen-token")
	require.NoError(t, err)
	assert.True(t, state.ScheduleGenerated)
	assert.Len(t, state.Matches, 6)
	require.NotNil(t, state.KnockoutMatches.Semi1)

	// The persisted state matches the returned one.
	stored, err := svc.State(ctx, tournamentID)
	require.NoError(t, err)
	assert.Equal(t, state, stored)

	// Broadcast carries the correlation token and the full state.
	msg := hub.last()
	assert.Equal(t, brackets.MessageTypeStateUpdated, msg.Type)
	assert.Equal(t, "gen-token", msg.Token)
	assert.Equal(t, services.RoomID(tournamentID), hub.rooms[len(hub.rooms)-1])
}

func TestUpdateTeamRejectedAfterGeneration(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	require.NoError(t, err)

	_, err = svc.UpdateTeam(ctx, tournamentID, "A", "A1", "Renamed", [3]string{"X", "Y", "Z"}, "tok")
	assert.ErrorIs(t, err, services.ErrSetupLocked)
}

func TestUpdateTeamValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.UpdateTeam(ctx, tournamentID, "C", "C1", "Nope", [3]string{}, "tok")
	assert.ErrorIs(t, err, services.ErrInvalidPool)

	_, err = svc.UpdateTeam(ctx, tournamentID, "A", "A9", "Nope", [3]string{}, "tok")
	assert.ErrorIs(t, err, services.ErrTeamNotFound)
}

func TestGenerateScheduleValidatesSetup(t *testing.T) {
	svc, hub := setupService(t)
	ctx := context.Background()

	// Teams still blank: generation must fail and mutate nothing.
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	assert.ErrorIs(t, err, brackets.ErrTeamNameRequired)

	state, err := svc.State(ctx, tournamentID)
	require.NoError(t, err)
	assert.False(t, state.ScheduleGenerated)
	assert.Empty(t, state.Matches)
	assert.Empty(t, hub.messages, "no broadcast for a failed mutation")
}

func TestGenerateScheduleTwiceRejected(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	require.NoError(t, err)

	_, err = svc.GenerateSchedule(ctx, tournamentID, "tok")
	assert.ErrorIs(t, err, services.ErrScheduleAlreadyGenerated)
}

type replaceFailingRepo struct {
	repositories.TournamentRepository
}

var errStoreDown = errors.New("store down")

func (r *replaceFailingRepo) Replace(ctx context.Context, id string, state *models.TournamentState) error {
	return errStoreDown
}

func TestGenerateScheduleRollsBackOnPersistenceFailure(t *testing.T) {
	inner := repositories.NewMemoryTournamentRepository()
	ctx := context.Background()
	_, err := inner.Reset(ctx, tournamentID)
	require.NoError(t, err)

	hub := &recordingBroadcaster{}
	okSvc := services.NewTournamentService(inner, hub)
	populateTeams(t, okSvc)

	failing := services.NewTournamentService(&replaceFailingRepo{inner}, hub)
	_, err = failing.GenerateSchedule(ctx, tournamentID, "tok")
	assert.ErrorIs(t, err, errStoreDown)

	// The stored state keeps the pre-generation shape.
	state, err := okSvc.State(ctx, tournamentID)
	require.NoError(t, err)
	assert.False(t, state.ScheduleGenerated)
	assert.Empty(t, state.Matches)
}

func TestScoreMatchGame(t *testing.T) {
	svc, hub := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	require.NoError(t, err)

	state, err := svc.ScoreMatchGame(ctx, tournamentID, "A-1", "A-1-g1", 21, 15, "score-token")
	require.NoError(t, err)

	m := state.MatchByID("A-1")
	require.NotNil(t, m.Games[0].Winner)
	assert.Equal(t, 1, *m.Games[0].Winner)
	assert.Equal(t, 1, m.Team1GamesWon)
	assert.False(t, m.Completed)
	assert.Equal(t, "score-token", hub.last().Token)

	// Completing the match settles the winner.
	_, err = svc.ScoreMatchGame(ctx, tournamentID, "A-1", "A-1-g2", 21, 12, "tok")
	require.NoError(t, err)
	state, err = svc.ScoreMatchGame(ctx, tournamentID, "A-1", "A-1-g3", 19, 21, "tok")
	require.NoError(t, err)

	m = state.MatchByID("A-1")
	assert.True(t, m.Completed)
	require.NotNil(t, m.Winner)
	assert.Equal(t, "A1", *m.Winner)
}

func TestScoreMatchGameErrors(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	require.NoError(t, err)

	_, err = svc.ScoreMatchGame(ctx, tournamentID, "A-1", "A-1-g1", 31, 15, "tok")
	assert.ErrorIs(t, err, services.ErrScoreOutOfRange)

	_, err = svc.ScoreMatchGame(ctx, tournamentID, "A-1", "A-1-g1", -1, 15, "tok")
	assert.ErrorIs(t, err, services.ErrScoreOutOfRange)

	_, err = svc.ScoreMatchGame(ctx, tournamentID, "Z-1", "Z-1-g1", 21, 15, "tok")
	assert.ErrorIs(t, err, repositories.ErrMatchNotFound)

	_, err = svc.ScoreMatchGame(ctx, tournamentID, "A-1", "A-1-g9", 21, 15, "tok")
	assert.ErrorIs(t, err, services.ErrGameNotFound)
}

func TestStandings(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	require.NoError(t, err)
	winAll(t, svc, "A-1")

	standings, err := svc.Standings(ctx, tournamentID, "A")
	require.NoError(t, err)
	require.Len(t, standings, 3)
	assert.Equal(t, "A1", standings[0].TeamID)
	assert.Equal(t, 2, standings[0].Points)

	_, err = svc.Standings(ctx, tournamentID, "C")
	assert.ErrorIs(t, err, services.ErrInvalidPool)
}

func TestKnockoutFlow(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	require.NoError(t, err)

	// Knockout scoring is rejected while the pools are still running.
	_, err = svc.ScoreKnockoutGame(ctx, tournamentID, "semi1", "semi1-g1", 21, 15, "tok")
	assert.ErrorIs(t, err, services.ErrKnockoutNotReady)

	completeGroupStage(t, svc)

	state, err := svc.State(ctx, tournamentID)
	require.NoError(t, err)
	semi1 := state.KnockoutMatches.Semi1
	require.NotNil(t, semi1.Team1)
	assert.Equal(t, "A1", semi1.Team1.ID)
	assert.Equal(t, "B2", semi1.Team2.ID)
	require.Len(t, semi1.Games, 3)

	// Semi 1: A1 wins.
	for _, game := range []string{"semi1-g1", "semi1-g2", "semi1-g3"} {
		_, err = svc.ScoreKnockoutGame(ctx, tournamentID, "semi1", game, 21, 15, "tok")
		require.NoError(t, err)
	}
	// Semi 2: B1 wins.
	var afterSemis *models.TournamentState
	for _, game := range []string{"semi2-g1", "semi2-g2", "semi2-g3"} {
		afterSemis, err = svc.ScoreKnockoutGame(ctx, tournamentID, "semi2", game, 21, 15, "tok")
		require.NoError(t, err)
	}

	final := afterSemis.KnockoutMatches.Final
	require.NotNil(t, final.Team1)
	require.NotNil(t, final.Team2)
	assert.Equal(t, "A1", final.Team1.ID)
	assert.Equal(t, "B1", final.Team2.ID)
	require.Len(t, final.Games, 3)

	var afterFinal *models.TournamentState
	for _, game := range []string{"final-g1", "final-g2", "final-g3"} {
		afterFinal, err = svc.ScoreKnockoutGame(ctx, tournamentID, "final", game, 15, 21, "tok")
		require.NoError(t, err)
	}
	won := afterFinal.KnockoutMatches.Final
	assert.True(t, won.Completed)
	require.NotNil(t, won.Winner)
	assert.Equal(t, "B1", *won.Winner)
}

func TestScoreKnockoutGameUnknownKey(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	require.NoError(t, err)

	_, err = svc.ScoreKnockoutGame(ctx, tournamentID, "quarterfinal", "q-g1", 21, 15, "tok")
	assert.ErrorIs(t, err, repositories.ErrKnockoutMatchNotFound)
}

func TestResetIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	require.NoError(t, err)
	completeGroupStage(t, svc)

	first, err := svc.Reset(ctx, tournamentID, "tok")
	require.NoError(t, err)
	second, err := svc.Reset(ctx, tournamentID, "tok")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, models.NewDefaultState(), second)
	assert.False(t, second.ScheduleGenerated)
}

func TestStateResolvesKnockoutOnEveryRead(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	populateTeams(t, svc)
	_, err := svc.GenerateSchedule(ctx, tournamentID, "tok")
	require.NoError(t, err)
	completeGroupStage(t, svc)

	// The slot resolution is a derivation: it shows up on a plain read
	// without any knockout write having happened.
	state, err := svc.State(ctx, tournamentID)
	require.NoError(t, err)
	require.NotNil(t, state.KnockoutMatches.Semi2.Team1)
	assert.Equal(t, "B1", state.KnockoutMatches.Semi2.Team1.ID)
	assert.Equal(t, "A2", state.KnockoutMatches.Semi2.Team2.ID)
}
