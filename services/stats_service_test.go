package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-adamant/volley/models"
)

func newTestStatsService(seasons []models.Season) (StatsService, *fakeMatchRepo) {
	chatRepo := &fakeChatRepo{chats: []models.Chat{{ID: 1, Slug: "beach"}}}
	rosterRepo := &fakeRosterRepo{entries: []models.RosterEntry{
		{ChatID: 1, UserID: 1, Name: "Ann", IsActive: true},
		{ChatID: 1, UserID: 2, Name: "Ben", IsActive: true},
		{ChatID: 1, UserID: 3, Name: "Cal", IsActive: true},
		{ChatID: 1, UserID: 4, Name: "Dee", IsActive: true},
		{ChatID: 1, UserID: 5, Name: "Eve", IsActive: false},
	}}
	matchRepo := &fakeMatchRepo{}
	seasonRepo := &fakeSeasonRepo{seasons: seasons}
	ratings := NewRatingService(chatRepo, rosterRepo, matchRepo, seasonRepo, discardLogger())
	return NewStatsService(ratings, discardLogger()), matchRepo
}

func dayResultsFixture(t *testing.T) []models.Match {
	t.Helper()
	return []models.Match{
		{ID: 1, ChatID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: mustDay(t, "2025-06-01")},
		{ID: 2, ChatID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 18, Day: mustDay(t, "2025-06-08")},
		// Eve is retired: this day only exists in the status=all view.
		{ID: 3, ChatID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 5, TeamAScore: 21, TeamBScore: 12, Day: mustDay(t, "2025-06-15")},
	}
}

func TestGetDayResults_ActiveStatusDropsRetiredPlayersDays(t *testing.T) {
	svc, matchRepo := newTestStatsService(nil)
	matchRepo.matches = dayResultsFixture(t)

	view, err := svc.GetDayResults(context.Background(), "beach", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, "active", view.Status)
	require.Len(t, view.Days, 2)
	assert.Equal(t, "2025-06-08", view.Days[0].Key)
	assert.Equal(t, "2025-06-01", view.Days[1].Key)
	assert.Equal(t, "2025-06-08", view.ActiveDay)
	require.Len(t, view.Matches, 1)
	assert.Equal(t, 2, view.Matches[0].ID)
}

func TestGetDayResults_AllStatusKeepsEveryDay(t *testing.T) {
	svc, matchRepo := newTestStatsService(nil)
	matchRepo.matches = dayResultsFixture(t)

	view, err := svc.GetDayResults(context.Background(), "beach", "", "", "all")
	require.NoError(t, err)

	assert.Equal(t, "all", view.Status)
	require.Len(t, view.Days, 3)
	assert.Equal(t, "2025-06-15", view.ActiveDay)
}

func TestGetDayResults_RangeWindowsDays(t *testing.T) {
	end := mustDay(t, "2025-06-30")
	svc, matchRepo := newTestStatsService([]models.Season{
		{ID: 7, ChatID: 1, Name: "Mid June", StartDate: mustDay(t, "2025-06-05"), EndDate: &end},
	})
	matchRepo.matches = dayResultsFixture(t)

	view, err := svc.GetDayResults(context.Background(), "beach", "", "season:7", "all")
	require.NoError(t, err)

	assert.Equal(t, "season:7", view.ActiveRange.Key)
	require.Len(t, view.Days, 2)
	assert.Equal(t, "2025-06-15", view.Days[0].Key)
	assert.Equal(t, "2025-06-08", view.Days[1].Key)
}

func TestGetDayResults_ExplicitDaySelectsStandings(t *testing.T) {
	svc, matchRepo := newTestStatsService(nil)
	matchRepo.matches = dayResultsFixture(t)

	view, err := svc.GetDayResults(context.Background(), "beach", "2025-06-01", "", "")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", view.ActiveDay)
	require.Len(t, view.Matches, 1)
	assert.Equal(t, 1, view.Matches[0].ID)
	require.NotEmpty(t, view.Standings)
	assert.Equal(t, 1, view.Standings[0].Wins)
}
