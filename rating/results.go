package rating

import (
	"fmt"
	"sort"
	"time"

	"github.com/alex-adamant/volley/models"
)

// Options selects the replay window and seeding mode. A non-nil
// SeasonStart switches to season seeding (BaseRating, zero games) and the
// graduated K boost; without it players seed from their stored
// initialRating/initialGames.
type Options struct {
	SeasonStart        *time.Time
	SeasonEnd          *time.Time
	DisableSeasonBoost bool
}

func (o *Options) season() bool {
	return o != nil && o.SeasonStart != nil
}

// PlayerResult is the accumulator state for one roster entry. It is
// derived, never stored: every read replays the full match list.
type PlayerResult struct {
	UserID   int    `json:"user_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
	IsHidden bool   `json:"is_hidden"`
	IsAdmin  bool   `json:"is_admin"`

	Rating        int   `json:"rating"`
	Games         int   `json:"games"`
	RatingHistory []int `json:"rating_history"`

	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	PointsFor     int `json:"points_for"`
	PointsAgainst int `json:"points_against"`
	PointDiff     int `json:"point_diff"`

	AvgPointsFor     float64 `json:"avg_points_for"`
	AvgPointsAgainst float64 `json:"avg_points_against"`

	PreviousPlace  *int `json:"previous_place,omitempty"`
	PreviousRating *int `json:"previous_rating,omitempty"`
	PlaceHighest   int  `json:"place_highest"`
	PlaceLowest    int  `json:"place_lowest"`
	PlaceChange    int  `json:"place_change"`
	RatingChange   int  `json:"rating_change"`

	WinStreak         int `json:"win_streak"`
	LossStreak        int `json:"loss_streak"`
	LongestWinStreak  int `json:"longest_win_streak"`
	LongestLossStreak int `json:"longest_loss_streak"`
}

// CalculateResults replays matches in day-then-id order and returns the
// final per-player state sorted by descending rating.
//
// A match referencing a player absent from the roster aborts the whole
// computation: a skipped match would silently corrupt every later rating,
// so there are no partial results.
func CalculateResults(roster []models.RosterEntry, matches []models.Match, opts *Options) ([]*PlayerResult, error) {
	season := opts.season()

	results := make([]*PlayerResult, 0, len(roster))
	byID := make(map[int]*PlayerResult, len(roster))
	for _, entry := range roster {
		seedRating, seedGames := entry.InitialRating, entry.InitialGames
		if season {
			seedRating, seedGames = BaseRating, 0
		}
		r := &PlayerResult{
			UserID:        entry.UserID,
			Name:          entry.Name,
			IsActive:      entry.IsActive,
			IsHidden:      entry.IsHidden,
			IsAdmin:       entry.IsAdmin,
			Rating:        seedRating,
			Games:         seedGames,
			RatingHistory: []int{seedRating},
			PlaceHighest:  initialPlaceHighest,
			PlaceLowest:   initialPlaceLowest,
		}
		results = append(results, r)
		byID[entry.UserID] = r
	}

	timeline := orderedWindow(matches, opts)

	for i, match := range timeline {
		a1, ok := byID[match.PlayerA1ID]
		if !ok {
			return nil, fmt.Errorf("player not found: %d", match.PlayerA1ID)
		}
		a2, ok := byID[match.PlayerA2ID]
		if !ok {
			return nil, fmt.Errorf("player not found: %d", match.PlayerA2ID)
		}
		b1, ok := byID[match.PlayerB1ID]
		if !ok {
			return nil, fmt.Errorf("player not found: %d", match.PlayerB1ID)
		}
		b2, ok := byID[match.PlayerB2ID]
		if !ok {
			return nil, fmt.Errorf("player not found: %d", match.PlayerB2ID)
		}

		teamAResult := 0
		if match.TeamAWon() {
			teamAResult = 1
		}
		teamBResult := 1 - teamAResult

		capPoints := CapPoints(match.TeamAScore, match.TeamBScore)
		ratingDiff := a1.Rating + a2.Rating - b1.Rating - b2.Rating

		applyMatch(a1, -ratingDiff, teamAResult, capPoints, match, true, season, opts)
		applyMatch(a2, -ratingDiff, teamAResult, capPoints, match, true, season, opts)
		applyMatch(b1, ratingDiff, teamBResult, capPoints, match, false, season, opts)
		applyMatch(b2, ratingDiff, teamBResult, capPoints, match, false, season, opts)

		dayEnds := i == len(timeline)-1 || !sameDay(match.Day, timeline[i+1].Day)
		if dayEnds {
			snapshotStandings(results)
		}
	}

	for _, r := range results {
		r.PointDiff = r.PointsFor - r.PointsAgainst
		played := r.Wins + r.Losses
		if played > 0 {
			r.AvgPointsFor = float64(r.PointsFor) / float64(played)
			r.AvgPointsAgainst = float64(r.PointsAgainst) / float64(played)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rating > results[j].Rating
	})
	return results, nil
}

func applyMatch(r *PlayerResult, ratingDiff, score, capPoints int, match models.Match, teamA bool, season bool, opts *Options) {
	disableBoost := opts != nil && opts.DisableSeasonBoost

	r.Rating = UpdateRating(r.Rating, ratingDiff, score, capPoints, r.Games, season, disableBoost)
	r.RatingHistory = append(r.RatingHistory, r.Rating)
	r.Games++

	if teamA {
		r.PointsFor += match.TeamAScore
		r.PointsAgainst += match.TeamBScore
	} else {
		r.PointsFor += match.TeamBScore
		r.PointsAgainst += match.TeamAScore
	}

	if score == 1 {
		r.Wins++
		r.WinStreak++
		r.LossStreak = 0
		if r.WinStreak > r.LongestWinStreak {
			r.LongestWinStreak = r.WinStreak
		}
	} else {
		r.Losses++
		r.LossStreak++
		r.WinStreak = 0
		if r.LossStreak > r.LongestLossStreak {
			r.LongestLossStreak = r.LossStreak
		}
	}
}

// snapshotStandings runs at each day boundary: rank visible active players
// by rating and fold the 1-based place into the placement extremes and the
// day-over-day deltas.
func snapshotStandings(results []*PlayerResult) {
	ranked := make([]*PlayerResult, 0, len(results))
	for _, r := range results {
		if r.IsActive && !r.IsHidden {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	for i, r := range ranked {
		place := i + 1
		if place > r.PlaceLowest {
			r.PlaceLowest = place
		}
		if place < r.PlaceHighest {
			r.PlaceHighest = place
		}

		if r.PreviousPlace != nil {
			r.PlaceChange = *r.PreviousPlace - place
		} else {
			r.PlaceChange = 0
		}
		if r.PreviousRating != nil {
			r.RatingChange = r.Rating - *r.PreviousRating
		} else {
			r.RatingChange = 0
		}

		p, rt := place, r.Rating
		r.PreviousPlace, r.PreviousRating = &p, &rt
	}
}

// orderedWindow sorts a copy of matches by day then id and trims it to the
// season window when one is set (inclusive on both ends).
func orderedWindow(matches []models.Match, opts *Options) []models.Match {
	timeline := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if opts != nil && opts.SeasonStart != nil && m.Day.Before(*opts.SeasonStart) {
			continue
		}
		if opts != nil && opts.SeasonEnd != nil && m.Day.After(*opts.SeasonEnd) {
			continue
		}
		timeline = append(timeline, m)
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		if !timeline[i].Day.Equal(timeline[j].Day) {
			return timeline[i].Day.Before(timeline[j].Day)
		}
		return timeline[i].ID < timeline[j].ID
	})
	return timeline
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
