package stats

import (
	"testing"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLeagueSummary(t *testing.T) {
	roster := []models.RosterEntry{
		{UserID: 1, Name: "Ann", IsActive: true},
		{UserID: 2, Name: "Ben", IsActive: true},
		{UserID: 3, Name: "Cal", IsActive: false},
		{UserID: 4, Name: "Dee", IsActive: true, IsHidden: true},
	}
	results := []*rating.PlayerResult{
		{UserID: 1, Name: "Ann", Rating: 1560, Games: 8, Wins: 6, Losses: 2, PointDiff: 30},
		{UserID: 2, Name: "Ben", Rating: 1480, Games: 12, Wins: 5, Losses: 7, PointDiff: -12},
		{UserID: 3, Name: "Cal", Rating: 1440, Games: 2, Wins: 2, Losses: 0, PointDiff: 8},
	}
	matches := []models.Match{
		{ID: 1, TeamAScore: 21, TeamBScore: 10, Day: day(t, "2025-06-01")},
		{ID: 2, TeamAScore: 19, TeamBScore: 21, Day: day(t, "2025-06-08")},
	}

	summary := BuildLeagueSummary(roster, results, matches)

	assert.Equal(t, 4, summary.PlayersTotal)
	assert.Equal(t, 2, summary.PlayersActive)
	assert.Equal(t, 3, summary.PlayersShown)
	assert.Equal(t, 2, summary.MatchesTotal)
	require.NotNil(t, summary.LastMatchDay)
	assert.Equal(t, day(t, "2025-06-08"), *summary.LastMatchDay)

	require.NotNil(t, summary.RatingHigh)
	assert.Equal(t, 1560, *summary.RatingHigh)
	require.NotNil(t, summary.RatingLow)
	assert.Equal(t, 1440, *summary.RatingLow)
	require.NotNil(t, summary.AverageRating)
	assert.Equal(t, 1493, *summary.AverageRating)

	assert.Equal(t, 22, summary.TotalGames)
	assert.Equal(t, 71, summary.TotalPoints)
	require.NotNil(t, summary.AverageMargin)
	assert.InDelta(t, 6.5, *summary.AverageMargin, 1e-9)

	require.NotNil(t, summary.BiggestMargin)
	assert.Equal(t, 11, summary.BiggestMargin.Value)
	assert.Equal(t, day(t, "2025-06-01"), summary.BiggestMargin.Day)
	require.NotNil(t, summary.ClosestMatch)
	assert.Equal(t, 2, summary.ClosestMatch.Value)
	assert.Equal(t, day(t, "2025-06-08"), summary.ClosestMatch.Day)

	require.NotNil(t, summary.TopRating)
	assert.Equal(t, "Ann", summary.TopRating.Name)
	require.NotNil(t, summary.MostActivePlayer)
	assert.Equal(t, "Ben", summary.MostActivePlayer.Name)
	require.NotNil(t, summary.BestPointDiff)
	assert.Equal(t, "Ann", summary.BestPointDiff.Name)

	// Cal is unbeaten but two games do not reach the winrate pool.
	require.NotNil(t, summary.BestWinrate)
	assert.Equal(t, "Ann", summary.BestWinrate.Name)
	assert.InDelta(t, 0.75, summary.BestWinrate.Value, 1e-9)
}

func TestBuildLeagueSummary_WinratePoolFallback(t *testing.T) {
	roster := []models.RosterEntry{{UserID: 1, Name: "Ann", IsActive: true}}
	results := []*rating.PlayerResult{
		{UserID: 1, Name: "Ann", Rating: 1510, Games: 2, Wins: 1, Losses: 1},
	}

	summary := BuildLeagueSummary(roster, results, nil)

	// Nobody reaches the pool threshold, so everyone is eligible.
	require.NotNil(t, summary.BestWinrate)
	assert.Equal(t, "Ann", summary.BestWinrate.Name)
	assert.InDelta(t, 0.5, summary.BestWinrate.Value, 1e-9)
}

func TestBuildLeagueSummary_Empty(t *testing.T) {
	summary := BuildLeagueSummary(nil, nil, nil)

	assert.Zero(t, summary.PlayersTotal)
	assert.Zero(t, summary.MatchesTotal)
	assert.Nil(t, summary.RatingHigh)
	assert.Nil(t, summary.LastMatchDay)
	assert.Nil(t, summary.BiggestMargin)
	assert.Nil(t, summary.TopRating)
}

func TestWinrate(t *testing.T) {
	assert.Equal(t, 0.0, Winrate(0, 0))
	assert.Equal(t, 1.0, Winrate(3, 0))
	assert.Equal(t, 0.25, Winrate(1, 3))
}
