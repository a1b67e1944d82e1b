package stats

import (
	"sort"
	"time"

	"github.com/alex-adamant/volley/models"
)

const dayKeyLayout = "2006-01-02"

// DayKey is the calendar-date key used to group matches into play days.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

type Day struct {
	Key  string    `json:"key"`
	Date time.Time `json:"date"`
}

// ListDays returns every calendar day with at least one match, newest
// first.
func ListDays(matches []models.Match) []Day {
	seen := make(map[string]time.Time)
	for _, match := range matches {
		key := DayKey(match.Day)
		if _, ok := seen[key]; !ok {
			seen[key] = match.Day
		}
	}

	days := make([]Day, 0, len(seen))
	for key, date := range seen {
		days = append(days, Day{Key: key, Date: date})
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Key > days[j].Key
	})
	return days
}

type DayStanding struct {
	UserID        int    `json:"user_id"`
	Name          string `json:"name"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Games         int    `json:"games"`
	PointsFor     int    `json:"points_for"`
	PointsAgainst int    `json:"points_against"`
	PointDiff     int    `json:"point_diff"`
}

// BuildDayStandings restricts the standings to matches of one calendar
// day. Hidden players are excluded entirely; everyone else who played
// that day appears, active or not.
func BuildDayStandings(roster []models.RosterEntry, matches []models.Match, dayKey string) []*DayStanding {
	names := make(map[int]string, len(roster))
	hidden := make(map[int]bool)
	for _, entry := range roster {
		names[entry.UserID] = entry.Name
		if entry.IsHidden {
			hidden[entry.UserID] = true
		}
	}

	standings := make(map[int]*DayStanding)
	ensure := func(id int) *DayStanding {
		if hidden[id] {
			return nil
		}
		if s, ok := standings[id]; ok {
			return s
		}
		s := &DayStanding{UserID: id, Name: names[id]}
		standings[id] = s
		return s
	}

	for _, match := range matches {
		if DayKey(match.Day) != dayKey {
			continue
		}
		teamAWon := match.TeamAWon()

		for _, id := range []int{match.PlayerA1ID, match.PlayerA2ID} {
			s := ensure(id)
			if s == nil {
				continue
			}
			s.PointsFor += match.TeamAScore
			s.PointsAgainst += match.TeamBScore
			if teamAWon {
				s.Wins++
			} else {
				s.Losses++
			}
		}
		for _, id := range []int{match.PlayerB1ID, match.PlayerB2ID} {
			s := ensure(id)
			if s == nil {
				continue
			}
			s.PointsFor += match.TeamBScore
			s.PointsAgainst += match.TeamAScore
			if teamAWon {
				s.Losses++
			} else {
				s.Wins++
			}
		}
	}

	table := make([]*DayStanding, 0, len(standings))
	for _, s := range standings {
		s.Games = s.Wins + s.Losses
		s.PointDiff = s.PointsFor - s.PointsAgainst
		table = append(table, s)
	}

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.PointDiff != b.PointDiff {
			return a.PointDiff > b.PointDiff
		}
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.UserID < b.UserID
	})
	return table
}
