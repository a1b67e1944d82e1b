package stats

import (
	"math"
	"time"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/rating"
)

// winratePoolMinGames keeps players with a tiny sample out of the "best
// winrate" leader unless nobody qualifies.
const winratePoolMinGames = 5

type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type NamedRate struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type MarginRecord struct {
	Value int       `json:"value"`
	Day   time.Time `json:"day"`
}

// LeagueSummary is the chat-wide overview table.
type LeagueSummary struct {
	PlayersTotal  int        `json:"players_total"`
	PlayersActive int        `json:"players_active"`
	PlayersShown  int        `json:"players_shown"`
	MatchesTotal  int        `json:"matches_total"`
	LastMatchDay  *time.Time `json:"last_match_day,omitempty"`

	RatingHigh    *int `json:"rating_high,omitempty"`
	RatingLow     *int `json:"rating_low,omitempty"`
	AverageRating *int `json:"average_rating,omitempty"`

	TotalGames    int      `json:"total_games"`
	AverageGames  *float64 `json:"average_games,omitempty"`
	TotalPoints   int      `json:"total_points"`
	AveragePoints *float64 `json:"average_points,omitempty"`
	AverageMargin *float64 `json:"average_margin,omitempty"`

	BiggestMargin *MarginRecord `json:"biggest_margin,omitempty"`
	ClosestMatch  *MarginRecord `json:"closest_match,omitempty"`

	TopRating        *NamedCount `json:"top_rating,omitempty"`
	MostActivePlayer *NamedCount `json:"most_active_player,omitempty"`
	BestWinrate      *NamedRate  `json:"best_winrate,omitempty"`
	BestPointDiff    *NamedCount `json:"best_point_diff,omitempty"`
}

// BuildLeagueSummary derives the overview from already-computed results
// (assumed sorted by descending rating and pre-filtered for visibility).
func BuildLeagueSummary(roster []models.RosterEntry, results []*rating.PlayerResult, matches []models.Match) *LeagueSummary {
	summary := &LeagueSummary{
		PlayersTotal: len(roster),
		PlayersShown: len(results),
		MatchesTotal: len(matches),
	}
	for _, entry := range roster {
		if entry.IsActive && !entry.IsHidden {
			summary.PlayersActive++
		}
	}

	if len(results) > 0 {
		high, low, sum := results[0].Rating, results[0].Rating, 0
		for _, r := range results {
			if r.Rating > high {
				high = r.Rating
			}
			if r.Rating < low {
				low = r.Rating
			}
			sum += r.Rating
			summary.TotalGames += r.Games
		}
		avg := int(math.Round(float64(sum) / float64(len(results))))
		summary.RatingHigh, summary.RatingLow, summary.AverageRating = &high, &low, &avg

		avgGames := float64(summary.TotalGames) / float64(len(results))
		summary.AverageGames = &avgGames

		top := NamedCount{Name: results[0].Name, Value: results[0].Rating}
		summary.TopRating = &top

		summary.MostActivePlayer = mostActive(results)
		summary.BestWinrate = bestWinrate(results)
		summary.BestPointDiff = bestPointDiff(results)
	}

	if len(matches) > 0 {
		last := matches[0].Day
		marginSum := 0
		for _, match := range matches {
			if match.Day.After(last) {
				last = match.Day
			}
			summary.TotalPoints += match.TeamAScore + match.TeamBScore

			margin := match.TeamAScore - match.TeamBScore
			if margin < 0 {
				margin = -margin
			}
			marginSum += margin

			if summary.BiggestMargin == nil || margin > summary.BiggestMargin.Value {
				summary.BiggestMargin = &MarginRecord{Value: margin, Day: match.Day}
			}
			if summary.ClosestMatch == nil || margin < summary.ClosestMatch.Value {
				summary.ClosestMatch = &MarginRecord{Value: margin, Day: match.Day}
			}
		}
		summary.LastMatchDay = &last

		avgPoints := float64(summary.TotalPoints) / float64(len(matches))
		avgMargin := float64(marginSum) / float64(len(matches))
		summary.AveragePoints, summary.AverageMargin = &avgPoints, &avgMargin
	}

	return summary
}

func mostActive(results []*rating.PlayerResult) *NamedCount {
	var best *NamedCount
	for _, r := range results {
		if best == nil || r.Games > best.Value {
			best = &NamedCount{Name: r.Name, Value: r.Games}
		}
	}
	return best
}

func bestWinrate(results []*rating.PlayerResult) *NamedRate {
	pool := make([]*rating.PlayerResult, 0, len(results))
	for _, r := range results {
		if r.Games >= winratePoolMinGames {
			pool = append(pool, r)
		}
	}
	if len(pool) == 0 {
		pool = results
	}

	var best *NamedRate
	for _, r := range pool {
		winrate := Winrate(r.Wins, r.Losses)
		if best == nil || winrate > best.Value {
			best = &NamedRate{Name: r.Name, Value: winrate}
		}
	}
	return best
}

func bestPointDiff(results []*rating.PlayerResult) *NamedCount {
	var best *NamedCount
	for _, r := range results {
		if best == nil || r.PointDiff > best.Value {
			best = &NamedCount{Name: r.Name, Value: r.PointDiff}
		}
	}
	return best
}

// Winrate is wins over games played, zero for an empty record.
func Winrate(wins, losses int) float64 {
	games := wins + losses
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games)
}
