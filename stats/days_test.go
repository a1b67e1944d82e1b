package stats

import (
	"testing"

	"github.com/alex-adamant/volley/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2025-06-01", DayKey(day(t, "2025-06-01")))
}

func TestListDays_NewestFirstDeduplicated(t *testing.T) {
	matches := []models.Match{
		{ID: 1, Day: day(t, "2025-06-01")},
		{ID: 2, Day: day(t, "2025-06-08")},
		{ID: 3, Day: day(t, "2025-06-01")},
		{ID: 4, Day: day(t, "2025-05-25")},
	}

	days := ListDays(matches)

	require.Len(t, days, 3)
	assert.Equal(t, "2025-06-08", days[0].Key)
	assert.Equal(t, "2025-06-01", days[1].Key)
	assert.Equal(t, "2025-05-25", days[2].Key)
}

func TestBuildDayStandings(t *testing.T) {
	roster := testRoster(map[int]string{1: "Ann", 2: "Ben", 3: "Cal", 4: "Dee"})
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
		{ID: 2, PlayerA1ID: 1, PlayerA2ID: 3, PlayerB1ID: 2, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 18, Day: day(t, "2025-06-01")},
		// Different day, must not leak in.
		{ID: 3, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 12, TeamBScore: 21, Day: day(t, "2025-06-08")},
	}

	standings := BuildDayStandings(roster, matches, "2025-06-01")
	require.Len(t, standings, 4)

	// Player 1 won both matches that day.
	leader := standings[0]
	assert.Equal(t, 1, leader.UserID)
	assert.Equal(t, "Ann", leader.Name)
	assert.Equal(t, 2, leader.Wins)
	assert.Equal(t, 0, leader.Losses)
	assert.Equal(t, 2, leader.Games)
	assert.Equal(t, 42, leader.PointsFor)
	assert.Equal(t, 33, leader.PointsAgainst)
	assert.Equal(t, 9, leader.PointDiff)

	// Player 4 lost both.
	last := standings[len(standings)-1]
	assert.Equal(t, 4, last.UserID)
	assert.Equal(t, 0, last.Wins)
	assert.Equal(t, 2, last.Losses)
}

func TestBuildDayStandings_TiesBreakByPointDiffThenUserID(t *testing.T) {
	roster := testRoster(map[int]string{1: "Ann", 2: "Ben", 3: "Cal", 4: "Dee"})
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
	}

	standings := BuildDayStandings(roster, matches, "2025-06-01")
	require.Len(t, standings, 4)

	// 1 and 2 tie on wins and diff; lower user id first.
	assert.Equal(t, 1, standings[0].UserID)
	assert.Equal(t, 2, standings[1].UserID)
	assert.Equal(t, 3, standings[2].UserID)
	assert.Equal(t, 4, standings[3].UserID)
}

func TestBuildDayStandings_HiddenPlayersExcluded(t *testing.T) {
	roster := testRoster(map[int]string{1: "Ann", 2: "Ben", 3: "Cal", 4: "Dee"})
	for i := range roster {
		if roster[i].UserID == 4 {
			roster[i].IsHidden = true
		}
	}
	matches := []models.Match{
		{ID: 1, PlayerA1ID: 1, PlayerA2ID: 2, PlayerB1ID: 3, PlayerB2ID: 4, TeamAScore: 21, TeamBScore: 15, Day: day(t, "2025-06-01")},
	}

	standings := BuildDayStandings(roster, matches, "2025-06-01")

	require.Len(t, standings, 3)
	for _, s := range standings {
		assert.NotEqual(t, 4, s.UserID)
	}
}

func TestBuildDayStandings_EmptyDay(t *testing.T) {
	roster := testRoster(map[int]string{1: "Ann"})

	standings := BuildDayStandings(roster, nil, "2025-06-01")

	assert.Empty(t, standings)
}
