package stats

import (
	"sort"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/rating"
)

const recentFormLimit = 6

// TeamStats aggregates every match a fixed pairing played together.
type TeamStats struct {
	Key           string     `json:"key"`
	Player1ID     int        `json:"player1_id"`
	Player2ID     int        `json:"player2_id"`
	Player1Name   string     `json:"player1_name"`
	Player2Name   string     `json:"player2_name"`
	Games         int        `json:"games"`
	Wins          int        `json:"wins"`
	Losses        int        `json:"losses"`
	PointsFor     int        `json:"points_for"`
	PointsAgainst int        `json:"points_against"`
	Winrate       float64    `json:"winrate"`
	AvgPointDiff  float64    `json:"avg_point_diff"`
	RecentForm    []FormMark `json:"recent_form"`
	CurrentStreak Streak     `json:"current_streak"`
}

// BuildTeamStats groups matches by pairing and derives the team table,
// sorted by winrate, then average point differential, then games.
func BuildTeamStats(roster []models.RosterEntry, matches []models.Match) []*TeamStats {
	names := make(map[int]string, len(roster))
	for _, entry := range roster {
		names[entry.UserID] = entry.Name
	}

	teams := make(map[string]*TeamStats)
	ensure := func(p1, p2 int) *TeamStats {
		key := pairKey(p1, p2)
		if t, ok := teams[key]; ok {
			return t
		}
		if p2 < p1 {
			p1, p2 = p2, p1
		}
		t := &TeamStats{
			Key:         key,
			Player1ID:   p1,
			Player2ID:   p2,
			Player1Name: names[p1],
			Player2Name: names[p2],
		}
		teams[key] = t
		return t
	}

	for _, match := range matches {
		teamA := ensure(match.PlayerA1ID, match.PlayerA2ID)
		teamB := ensure(match.PlayerB1ID, match.PlayerB2ID)

		teamA.Games++
		teamB.Games++
		teamA.PointsFor += match.TeamAScore
		teamA.PointsAgainst += match.TeamBScore
		teamB.PointsFor += match.TeamBScore
		teamB.PointsAgainst += match.TeamAScore

		if match.TeamAWon() {
			teamA.Wins++
			teamB.Losses++
		} else {
			teamB.Wins++
			teamA.Losses++
		}
	}

	teamForm := BuildTeamForm(matches, 0)

	table := make([]*TeamStats, 0, len(teams))
	for key, t := range teams {
		if t.Games == 0 {
			continue
		}
		t.Winrate = float64(t.Wins) / float64(t.Games)
		t.AvgPointDiff = float64(t.PointsFor-t.PointsAgainst) / float64(t.Games)

		form := teamForm[key]
		t.CurrentStreak = CurrentStreak(form)
		if len(form) > recentFormLimit {
			form = form[len(form)-recentFormLimit:]
		}
		t.RecentForm = form

		table = append(table, t)
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Winrate != b.Winrate {
			return a.Winrate > b.Winrate
		}
		if a.AvgPointDiff != b.AvgPointDiff {
			return a.AvgPointDiff > b.AvgPointDiff
		}
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.Key < b.Key
	})
	return table
}

func pairKey(p1, p2 int) string {
	return rating.TeamKey(p1, p2)
}
