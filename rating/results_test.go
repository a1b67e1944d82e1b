package rating

import (
	"testing"
	"time"

	"github.com/alex-adamant/volley/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func testRoster(ids ...int) []models.RosterEntry {
	roster := make([]models.RosterEntry, 0, len(ids))
	for _, id := range ids {
		roster = append(roster, models.RosterEntry{
			UserID:        id,
			Name:          "Player " + string(rune('A'+id-1)),
			IsActive:      true,
			InitialRating: BaseRating,
		})
	}
	return roster
}

func byUserID(t *testing.T, results []*PlayerResult, userID int) *PlayerResult {
	t.Helper()
	for _, r := range results {
		if r.UserID == userID {
			return r
		}
	}
	t.Fatalf("player %d not in results", userID)
	return nil
}

func TestCalculateResults_SingleMatch(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
	}

	results, err := CalculateResults(roster, matches, nil)
	require.NoError(t, err)
	require.Len(t, results, 4)

	winner := byUserID(t, results, 1)
	assert.Equal(t, 1521, winner.Rating)
	assert.Equal(t, 1, winner.Games)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 0, winner.Losses)
	assert.Equal(t, 21, winner.PointsFor)
	assert.Equal(t, 15, winner.PointsAgainst)
	assert.Equal(t, 6, winner.PointDiff)
	assert.Equal(t, []int{1500, 1521}, winner.RatingHistory)

	loser := byUserID(t, results, 4)
	assert.Equal(t, 1479, loser.Rating)
	assert.Equal(t, 0, loser.Wins)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 15, loser.PointsFor)
	assert.Equal(t, 21, loser.PointsAgainst)
}

func TestCalculateResults_SortedByRatingDescending(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
	}

	results, err := CalculateResults(roster, matches, nil)
	require.NoError(t, err)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Rating, results[i].Rating)
	}
}

func TestCalculateResults_Deterministic(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
		{ID: 2, PlayerA1ID: 1, PlayerA2ID: 3, PlayerB1ID: 2, PlayerB2ID: 4, TeamAScore: 18, TeamBScore: 21, Day: day(t, "2025-06-01")},
		{ID: 3, PlayerA1ID: 1, PlayerA2ID: 4, PlayerB1ID: 2, PlayerB2ID: 3, TeamAScore: 21, TeamBScore: 19, Day: day(t, "2025-06-08")},
	}

	first, err := CalculateResults(roster, matches, nil)
	require.NoError(t, err)
	second, err := CalculateResults(roster, matches, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateResults_ReplayOrderIsDayThenID(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	ordered := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
		{ID: 2, PlayerA1ID: 1, PlayerA2ID: 3, PlayerB1ID: 2, PlayerB2ID: 4, TeamAScore: 15, TeamBScore: 21, Day: day(t, "2025-06-01")},
		{ID: 3, PlayerA1ID: 1, PlayerA2ID: 4, PlayerB1ID: 2, PlayerB2ID: 3, TeamAScore: 21, TeamBScore: 12, Day: day(t, "2025-06-08")},
	}
	shuffled := []models.Match{ordered[2], ordered[0], ordered[1]}

	fromOrdered, err := CalculateResults(roster, ordered, nil)
	require.NoError(t, err)
	fromShuffled, err := CalculateResults(roster, shuffled, nil)
	require.NoError(t, err)

	assert.Equal(t, fromOrdered, fromShuffled)
}

func TestCalculateResults_UnknownPlayerAborts(t *testing.T) {
	roster := testRoster(1, 2, 3)
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 99, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
	}

	results, err := CalculateResults(roster, matches, nil)
	assert.Nil(t, results)
	assert.EqualError(t, err, "player not found: 99")
}

func TestCalculateResults_Streaks(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	// Player 1's sequence: W, W, L, W.
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
		{ID: 2, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 18, Day: day(t, "2025-06-01")},
		{ID: 3, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 12, TeamBScore: 21, Day: day(t, "2025-06-01")},
		{ID: 4, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 19, Day: day(t, "2025-06-01")},
	}

	results, err := CalculateResults(roster, matches, nil)
	require.NoError(t, err)

	player := byUserID(t, results, 1)
	assert.Equal(t, 1, player.WinStreak)
	assert.Equal(t, 0, player.LossStreak)
	assert.Equal(t, 2, player.LongestWinStreak)
	assert.Equal(t, 1, player.LongestLossStreak)
}

func TestCalculateResults_DayBoundarySnapshots(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
		{ID: 2, PlayerA1ID: 1, PlayerA2ID: 3, PlayerB1ID: 2, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 18, Day: day(t, "2025-06-08")},
	}

	results, err := CalculateResults(roster, matches, nil)
	require.NoError(t, err)

	// After day one: 1 and 2 at 1521, 3 and 4 at 1479. Day two moves
	// player 1 to 1542, evens 2 and 3 at 1500, drops 4 to 1458.
	one := byUserID(t, results, 1)
	assert.Equal(t, 1542, one.Rating)
	assert.Equal(t, 21, one.RatingChange)
	assert.Equal(t, 0, one.PlaceChange)
	assert.Equal(t, 1, one.PlaceHighest)
	assert.Equal(t, 1, one.PlaceLowest)
	require.NotNil(t, one.PreviousPlace)
	assert.Equal(t, 1, *one.PreviousPlace)

	three := byUserID(t, results, 3)
	assert.Equal(t, 1500, three.Rating)
	assert.Equal(t, 21, three.RatingChange)
	assert.Equal(t, 3, three.PlaceHighest)
	assert.Equal(t, 3, three.PlaceLowest)

	four := byUserID(t, results, 4)
	assert.Equal(t, -21, four.RatingChange)
	assert.Equal(t, 4, four.PlaceLowest)
}

func TestCalculateResults_SameDayMatchesSnapshotOnce(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	// Players 1 and 2 lose the first match of the day and win the second:
	// a mid-day dip to the bottom half that the evening recovers from.
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 3, PlayerA2ID: 4, PlayerB1ID: 1, PlayerB2ID: 2, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
		{ID: 2, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 18, Day: day(t, "2025-06-01")},
		{ID: 3, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 19, Day: day(t, "2025-06-08")},
	}

	results, err := CalculateResults(roster, matches, nil)
	require.NoError(t, err)

	// Standings snapshot at the end of the day, not after every match: the
	// mid-day dip never becomes player 1's lowest recorded place.
	one := byUserID(t, results, 1)
	assert.LessOrEqual(t, one.PlaceLowest, 2)
	assert.Equal(t, 1, one.PlaceHighest)

	three := byUserID(t, results, 3)
	assert.GreaterOrEqual(t, three.PlaceLowest, 3)
}

func TestCalculateResults_HiddenPlayersSkipStandings(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	roster[3].IsHidden = true

	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
	}

	results, err := CalculateResults(roster, matches, nil)
	require.NoError(t, err)

	hiddenPlayer := byUserID(t, results, 4)
	// Still rated, never ranked.
	assert.Equal(t, 1479, hiddenPlayer.Rating)
	assert.Nil(t, hiddenPlayer.PreviousPlace)
	assert.Equal(t, initialPlaceHighest, hiddenPlayer.PlaceHighest)
	assert.Equal(t, initialPlaceLowest, hiddenPlayer.PlaceLowest)
}

func TestCalculateResults_SeasonSeeding(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	roster[0].InitialRating = 1700
	roster[0].InitialGames = 80

	start := day(t, "2025-06-01")
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
	}

	results, err := CalculateResults(roster, matches, &Options{SeasonStart: &start})
	require.NoError(t, err)

	// Season mode ignores stored seeds: everyone restarts at base with
	// zero games, so the full graduated boost applies.
	player := byUserID(t, results, 1)
	assert.Equal(t, []int{1500, 1521}, player.RatingHistory)
	assert.Equal(t, 1, player.Games)
}

func TestCalculateResults_SeasonWindowFiltersMatches(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	start := day(t, "2025-06-01")
	end := day(t, "2025-06-30")

	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-05-20")},
		{ID: 2, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 18, Day: day(t, "2025-06-15")},
		{ID: 3, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 12, Day: day(t, "2025-07-03")},
	}

	results, err := CalculateResults(roster, matches, &Options{SeasonStart: &start, SeasonEnd: &end})
	require.NoError(t, err)

	player := byUserID(t, results, 1)
	assert.Equal(t, 1, player.Games)
	assert.Equal(t, 21, player.PointsFor)
}

func TestCalculateResults_LifetimeSeedsFromRoster(t *testing.T) {
	roster := testRoster(1, 2, 3, 4)
	roster[0].InitialRating = 1700
	roster[0].InitialGames = 80

	results, err := CalculateResults(roster, nil, nil)
	require.NoError(t, err)

	player := byUserID(t, results, 1)
	assert.Equal(t, 1700, player.Rating)
	assert.Equal(t, 80, player.Games)
	// And the table leads with the highest seed.
	assert.Equal(t, 1, results[0].UserID)
}
