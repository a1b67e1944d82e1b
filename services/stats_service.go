package services

import (
	"context"
	"log/slog"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/rating"
	"github.com/alex-adamant/volley/stats"
)

type TeamStatsView struct {
	Chat        *models.Chat       `json:"chat"`
	Teams       []*stats.TeamStats `json:"teams"`
	ActiveRange RangeOption        `json:"active_range"`
}

type DayResultsView struct {
	Chat        *models.Chat         `json:"chat"`
	Days        []stats.Day          `json:"days"`
	ActiveDay   string               `json:"active_day"`
	Standings   []*stats.DayStanding `json:"standings"`
	Matches     []models.Match       `json:"matches"`
	Status      string               `json:"status"`
	ActiveRange RangeOption          `json:"active_range"`
}

type LeagueStatsView struct {
	Chat    *models.Chat         `json:"chat"`
	Summary *stats.LeagueSummary `json:"summary"`
}

type PlayerCardView struct {
	Chat     *models.Chat          `json:"chat"`
	Player   *rating.PlayerResult  `json:"player"`
	Winrate  float64               `json:"winrate"`
	Form     []stats.FormMark      `json:"form"`
	Streak   stats.Streak          `json:"streak"`
	Pairings *stats.PlayerPairings `json:"pairings"`
	Matches  []NamedMatchDetail    `json:"matches"`
}

// NamedMatchDetail is a PlayerMatchDetail with ids resolved to names.
type NamedMatchDetail struct {
	Result    stats.FormMark `json:"result"`
	Score     string         `json:"score"`
	Teammates []string       `json:"teammates"`
	Opponents []string       `json:"opponents"`
}

type StatsService interface {
	GetTeamStats(ctx context.Context, slug string, rangeKey string) (*TeamStatsView, error)
	GetDayResults(ctx context.Context, slug string, dayKey, rangeKey, status string) (*DayResultsView, error)
	GetLeagueStats(ctx context.Context, slug string, rangeKey string) (*LeagueStatsView, error)
	GetPlayerCard(ctx context.Context, slug string, userID int, rangeKey string) (*PlayerCardView, error)
}

type statsService struct {
	ratings RatingService
	logger  *slog.Logger
}

func NewStatsService(ratings RatingService, logger *slog.Logger) StatsService {
	return &statsService{ratings: ratings, logger: logger}
}

func (s *statsService) GetTeamStats(ctx context.Context, slug string, rangeKey string) (*TeamStatsView, error) {
	chat, roster, matches, activeRange, err := s.loadWindowed(ctx, slug, rangeKey)
	if err != nil {
		return nil, err
	}
	return &TeamStatsView{
		Chat:        chat,
		Teams:       stats.BuildTeamStats(roster, matches),
		ActiveRange: activeRange,
	}, nil
}

func (s *statsService) GetDayResults(ctx context.Context, slug string, dayKey, rangeKey, status string) (*DayResultsView, error) {
	chat, roster, matches, activeRange, err := s.loadWindowed(ctx, slug, rangeKey)
	if err != nil {
		return nil, err
	}

	status = normalizeStatus(status)
	if status == "active" {
		matches = activeOnlyMatches(roster, matches)
	}

	days := stats.ListDays(matches)
	if dayKey == "" && len(days) > 0 {
		dayKey = days[0].Key
	}

	view := &DayResultsView{
		Chat:        chat,
		Days:        days,
		ActiveDay:   dayKey,
		Standings:   stats.BuildDayStandings(roster, matches, dayKey),
		Status:      status,
		ActiveRange: activeRange,
	}
	for _, match := range matches {
		if stats.DayKey(match.Day) == dayKey {
			view.Matches = append(view.Matches, match)
		}
	}
	return view, nil
}

// activeOnlyMatches keeps only matches whose four participants are all
// active and visible. A retired or hidden player's games still shape the
// ratings, but the day views drop them.
func activeOnlyMatches(roster []models.RosterEntry, matches []models.Match) []models.Match {
	visible := make(map[int]bool, len(roster))
	for _, entry := range roster {
		if entry.IsActive && !entry.IsHidden {
			visible[entry.UserID] = true
		}
	}

	filtered := make([]models.Match, 0, len(matches))
	for _, match := range matches {
		keep := true
		for _, id := range match.PlayerIDs() {
			if !visible[id] {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, match)
		}
	}
	return filtered
}

func (s *statsService) GetLeagueStats(ctx context.Context, slug string, rangeKey string) (*LeagueStatsView, error) {
	chat, roster, matches, activeRange, err := s.loadWindowed(ctx, slug, rangeKey)
	if err != nil {
		return nil, err
	}

	opts, _ := engineOptions(activeRange, false)
	results, err := rating.CalculateResults(roster, matches, opts)
	if err != nil {
		return nil, err
	}

	visible := make([]*rating.PlayerResult, 0, len(results))
	for _, result := range results {
		if !result.IsHidden {
			visible = append(visible, result)
		}
	}

	return &LeagueStatsView{
		Chat:    chat,
		Summary: stats.BuildLeagueSummary(roster, visible, matches),
	}, nil
}

func (s *statsService) GetPlayerCard(ctx context.Context, slug string, userID int, rangeKey string) (*PlayerCardView, error) {
	chat, roster, matches, activeRange, err := s.loadWindowed(ctx, slug, rangeKey)
	if err != nil {
		return nil, err
	}

	opts, _ := engineOptions(activeRange, false)
	results, err := rating.CalculateResults(roster, matches, opts)
	if err != nil {
		return nil, err
	}

	var player *rating.PlayerResult
	for _, result := range results {
		if result.UserID == userID {
			player = result
			break
		}
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	names := rosterNames(roster)
	form := stats.BuildPlayerForm(matches, 0)[userID]

	view := &PlayerCardView{
		Chat:     chat,
		Player:   player,
		Winrate:  stats.Winrate(player.Wins, player.Losses),
		Form:     form,
		Streak:   stats.CurrentStreak(form),
		Pairings: stats.BuildPlayerPairings(roster, matches, userID),
	}
	for _, detail := range stats.BuildPlayerMatchDetails(matches, 0)[userID] {
		view.Matches = append(view.Matches, NamedMatchDetail{
			Result:    detail.Result,
			Score:     detail.Score,
			Teammates: resolveNames(names, detail.TeammateIDs),
			Opponents: resolveNames(names, detail.OpponentIDs),
		})
	}
	return view, nil
}

func (s *statsService) loadWindowed(ctx context.Context, slug string, rangeKey string) (*models.Chat, []models.RosterEntry, []models.Match, RangeOption, error) {
	chat, roster, matches, err := s.ratings.LoadChatData(ctx, slug)
	if err != nil {
		return nil, nil, nil, RangeOption{}, err
	}
	_, activeRange, err := s.ratings.ResolveRange(ctx, chat.ID, rangeKey)
	if err != nil {
		return nil, nil, nil, RangeOption{}, err
	}
	return chat, roster, windowMatches(matches, activeRange), activeRange, nil
}

func rosterNames(roster []models.RosterEntry) map[int]string {
	names := make(map[int]string, len(roster))
	for _, entry := range roster {
		names[entry.UserID] = entry.Name
	}
	return names
}
