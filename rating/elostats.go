package rating

import (
	"fmt"
	"sort"

	"github.com/alex-adamant/volley/models"
)

type FavoriteSide string

const (
	FavoriteA FavoriteSide = "A"
	FavoriteB FavoriteSide = "B"
)

type TeamRole string

const (
	RoleFavorite TeamRole = "favorite"
	RoleUnderdog TeamRole = "underdog"
	RoleEven     TeamRole = "even"
)

// EloMatchView is the pre-match snapshot kept per match id.
type EloMatchView struct {
	TeamAWinProbability   float64       `json:"team_a_win_probability"`
	TeamBWinProbability   float64       `json:"team_b_win_probability"`
	TeamAAvgRatingBefore  float64       `json:"team_a_avg_rating_before"`
	TeamBAvgRatingBefore  float64       `json:"team_b_avg_rating_before"`
	PlayerA1RatingBefore  int           `json:"player_a1_rating_before"`
	PlayerA2RatingBefore  int           `json:"player_a2_rating_before"`
	PlayerB1RatingBefore  int           `json:"player_b1_rating_before"`
	PlayerB2RatingBefore  int           `json:"player_b2_rating_before"`
	FavoriteSide          *FavoriteSide `json:"favorite_side,omitempty"`
	UnderdogWon           bool          `json:"underdog_won"`
	TeamARole             TeamRole      `json:"team_a_role"`
	TeamBRole             TeamRole      `json:"team_b_role"`
}

// RoleStats counts matches conditioned on the pre-match role of the
// player's (or pairing's) side. Even matches are not tallied.
type RoleStats struct {
	FavoriteMatches int `json:"favorite_matches"`
	FavoriteWins    int `json:"favorite_wins"`
	FavoriteLosses  int `json:"favorite_losses"`
	UnderdogMatches int `json:"underdog_matches"`
	UnderdogWins    int `json:"underdog_wins"`
	UnderdogLosses  int `json:"underdog_losses"`
}

func (s *RoleStats) apply(role TeamRole, didWin bool) {
	switch role {
	case RoleFavorite:
		s.FavoriteMatches++
		if didWin {
			s.FavoriteWins++
		} else {
			s.FavoriteLosses++
		}
	case RoleUnderdog:
		s.UnderdogMatches++
		if didWin {
			s.UnderdogWins++
		} else {
			s.UnderdogLosses++
		}
	}
}

type EloStatsParams struct {
	Roster             []models.RosterEntry
	Matches            []models.Match
	IsSeason           bool
	DisableSeasonBoost bool
}

type EloStats struct {
	MatchViews      map[int]EloMatchView  `json:"match_views"`
	PlayerRoleStats map[int]*RoleStats    `json:"player_role_stats"`
	TeamRoleStats   map[string]*RoleStats `json:"team_role_stats"`
}

type playerEloState struct {
	rating int
	games  int
}

// TeamKey is the canonical key of a pairing: both member ids in ascending
// numeric order.
func TeamKey(p1, p2 int) string {
	if p2 < p1 {
		p1, p2 = p2, p1
	}
	return fmt.Sprintf("%d,%d", p1, p2)
}

// BuildEloStats runs the same rating replay as CalculateResults but keeps
// pre-match views and favorite/underdog tallies instead of roster results.
//
// Unlike CalculateResults, a player missing from the roster is not fatal:
// this is an analytics-only view, so unseen ids get a BaseRating fallback
// state and the replay continues.
func BuildEloStats(params EloStatsParams) EloStats {
	states := make(map[int]*playerEloState, len(params.Roster))
	playerRoles := make(map[int]*RoleStats, len(params.Roster))
	for _, entry := range params.Roster {
		seedRating, seedGames := entry.InitialRating, entry.InitialGames
		if params.IsSeason {
			seedRating, seedGames = BaseRating, 0
		}
		states[entry.UserID] = &playerEloState{rating: seedRating, games: seedGames}
		playerRoles[entry.UserID] = &RoleStats{}
	}

	teamRoles := make(map[string]*RoleStats)
	matchViews := make(map[int]EloMatchView, len(params.Matches))

	ensureState := func(id int) *playerEloState {
		if s, ok := states[id]; ok {
			return s
		}
		s := &playerEloState{rating: BaseRating}
		states[id] = s
		if _, ok := playerRoles[id]; !ok {
			playerRoles[id] = &RoleStats{}
		}
		return s
	}
	ensurePlayerRole := func(id int) *RoleStats {
		if s, ok := playerRoles[id]; ok {
			return s
		}
		s := &RoleStats{}
		playerRoles[id] = s
		return s
	}
	ensureTeamRole := func(key string) *RoleStats {
		if s, ok := teamRoles[key]; ok {
			return s
		}
		s := &RoleStats{}
		teamRoles[key] = s
		return s
	}

	timeline := make([]models.Match, len(params.Matches))
	copy(timeline, params.Matches)
	sort.SliceStable(timeline, func(i, j int) bool {
		if !timeline[i].Day.Equal(timeline[j].Day) {
			return timeline[i].Day.Before(timeline[j].Day)
		}
		return timeline[i].ID < timeline[j].ID
	})

	for _, match := range timeline {
		a1 := ensureState(match.PlayerA1ID)
		a2 := ensureState(match.PlayerA2ID)
		b1 := ensureState(match.PlayerB1ID)
		b2 := ensureState(match.PlayerB2ID)

		teamARating := a1.rating + a2.rating
		teamBRating := b1.rating + b2.rating
		ratingDiff := teamARating - teamBRating

		teamAWinProbability := WinProbability(ratingDiff)
		teamBWinProbability := 1 - teamAWinProbability

		var favoriteSide *FavoriteSide
		teamARole, teamBRole := RoleEven, RoleEven
		switch {
		case teamAWinProbability >= FavoriteMinWinProbability:
			side := FavoriteA
			favoriteSide = &side
			teamARole, teamBRole = RoleFavorite, RoleUnderdog
		case teamBWinProbability >= FavoriteMinWinProbability:
			side := FavoriteB
			favoriteSide = &side
			teamARole, teamBRole = RoleUnderdog, RoleFavorite
		}

		teamAWon := match.TeamAWon()
		teamBWon := !teamAWon
		underdogWon := false
		if favoriteSide != nil {
			if *favoriteSide == FavoriteA {
				underdogWon = teamBWon
			} else {
				underdogWon = teamAWon
			}
		}

		ensureTeamRole(TeamKey(match.PlayerA1ID, match.PlayerA2ID)).apply(teamARole, teamAWon)
		ensureTeamRole(TeamKey(match.PlayerB1ID, match.PlayerB2ID)).apply(teamBRole, teamBWon)
		ensurePlayerRole(match.PlayerA1ID).apply(teamARole, teamAWon)
		ensurePlayerRole(match.PlayerA2ID).apply(teamARole, teamAWon)
		ensurePlayerRole(match.PlayerB1ID).apply(teamBRole, teamBWon)
		ensurePlayerRole(match.PlayerB2ID).apply(teamBRole, teamBWon)

		matchViews[match.ID] = EloMatchView{
			TeamAWinProbability:  teamAWinProbability,
			TeamBWinProbability:  teamBWinProbability,
			TeamAAvgRatingBefore: float64(teamARating) / 2,
			TeamBAvgRatingBefore: float64(teamBRating) / 2,
			PlayerA1RatingBefore: a1.rating,
			PlayerA2RatingBefore: a2.rating,
			PlayerB1RatingBefore: b1.rating,
			PlayerB2RatingBefore: b2.rating,
			FavoriteSide:         favoriteSide,
			UnderdogWon:          underdogWon,
			TeamARole:            teamARole,
			TeamBRole:            teamBRole,
		}

		capPoints := CapPoints(match.TeamAScore, match.TeamBScore)
		teamAResult, teamBResult := 0, 1
		if teamAWon {
			teamAResult, teamBResult = 1, 0
		}

		// Mirror CalculateResults so the state one match later reflects
		// this match's outcome.
		a1.rating = UpdateRating(a1.rating, -ratingDiff, teamAResult, capPoints, a1.games, params.IsSeason, params.DisableSeasonBoost)
		a1.games++
		a2.rating = UpdateRating(a2.rating, -ratingDiff, teamAResult, capPoints, a2.games, params.IsSeason, params.DisableSeasonBoost)
		a2.games++
		b1.rating = UpdateRating(b1.rating, ratingDiff, teamBResult, capPoints, b1.games, params.IsSeason, params.DisableSeasonBoost)
		b1.games++
		b2.rating = UpdateRating(b2.rating, ratingDiff, teamBResult, capPoints, b2.games, params.IsSeason, params.DisableSeasonBoost)
		b2.games++
	}

	return EloStats{
		MatchViews:      matchViews,
		PlayerRoleStats: playerRoles,
		TeamRoleStats:   teamRoles,
	}
}
