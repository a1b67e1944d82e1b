package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/rating"
	"github.com/alex-adamant/volley/repositories"
	"github.com/alex-adamant/volley/stats"
	"golang.org/x/sync/errgroup"
)

const (
	rangeKeyAll        = "all"
	rangeKeySeason     = "season"
	seasonRangePrefix  = "season:"
	defaultSeasonSpan  = 6 * 30 * 24 * time.Hour
	recentMatchesLimit = 6
)

// RangeOption is one selectable replay window: all time, or a season.
type RangeOption struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Note  string     `json:"note,omitempty"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

func (o RangeOption) isSeason() bool {
	return strings.HasPrefix(o.Key, rangeKeySeason)
}

type RatingQuery struct {
	RangeKey           string
	Status             string // "active" (default) or "all"
	DisableSeasonBoost bool   // season ranges only
}

type RecentMatch struct {
	Result    stats.FormMark `json:"result"`
	Score     string         `json:"score"`
	Teammates []string       `json:"teammates"`
	Opponents []string       `json:"opponents"`
}

// RatedPlayer is a PlayerResult enriched with presentation fields.
type RatedPlayer struct {
	*rating.PlayerResult
	Winrate       float64          `json:"winrate"`
	RecentForm    []stats.FormMark `json:"recent_form"`
	CurrentStreak stats.Streak     `json:"current_streak"`
	RecentMatches []RecentMatch    `json:"recent_matches"`
	PlayedLastDay bool             `json:"played_last_day"`
}

type RatingView struct {
	Chat         *models.Chat   `json:"chat"`
	Results      []*RatedPlayer `json:"results"`
	Status       string         `json:"status"`
	RangeOptions []RangeOption  `json:"range_options"`
	ActiveRange  RangeOption    `json:"active_range"`
	SeasonBoost  string         `json:"season_boost"`
}

type EloStatsView struct {
	Chat        *models.Chat    `json:"chat"`
	Stats       rating.EloStats `json:"stats"`
	ActiveRange RangeOption     `json:"active_range"`
}

type RatingService interface {
	GetRating(ctx context.Context, slug string, query RatingQuery) (*RatingView, error)
	GetEloStats(ctx context.Context, slug string, rangeKey string) (*EloStatsView, error)
	GetChat(ctx context.Context, slug string) (*models.Chat, error)
	LoadChatData(ctx context.Context, slug string) (*models.Chat, []models.RosterEntry, []models.Match, error)
	ResolveRange(ctx context.Context, chatID int64, rangeKey string) ([]RangeOption, RangeOption, error)
}

type ratingService struct {
	chatRepo   repositories.ChatRepository
	rosterRepo repositories.RosterRepository
	matchRepo  repositories.MatchRepository
	seasonRepo repositories.SeasonRepository
	logger     *slog.Logger
}

func NewRatingService(
	chatRepo repositories.ChatRepository,
	rosterRepo repositories.RosterRepository,
	matchRepo repositories.MatchRepository,
	seasonRepo repositories.SeasonRepository,
	logger *slog.Logger,
) RatingService {
	return &ratingService{
		chatRepo:   chatRepo,
		rosterRepo: rosterRepo,
		matchRepo:  matchRepo,
		seasonRepo: seasonRepo,
		logger:     logger,
	}
}

func (s *ratingService) GetChat(ctx context.Context, slug string) (*models.Chat, error) {
	chat, err := s.chatRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to load chat %q: %w", slug, err)
	}
	return chat, nil
}

// LoadChatData fetches the chat, its roster and its full match history.
// Roster and matches load in parallel, they are independent queries.
func (s *ratingService) LoadChatData(ctx context.Context, slug string) (*models.Chat, []models.RosterEntry, []models.Match, error) {
	chat, err := s.GetChat(ctx, slug)
	if err != nil {
		return nil, nil, nil, err
	}

	var (
		roster  []models.RosterEntry
		matches []models.Match
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.rosterRepo.ListByChat(gCtx, chat.ID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByChat(gCtx, chat.ID, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load chat data: %w", err)
	}
	return chat, roster, matches, nil
}

// ResolveRange builds the selectable windows for a chat and picks the one
// matching rangeKey. The bare "season" key resolves to the newest season;
// a chat without stored seasons gets a rolling six-month window.
func (s *ratingService) ResolveRange(ctx context.Context, chatID int64, rangeKey string) ([]RangeOption, RangeOption, error) {
	seasons, err := s.seasonRepo.ListByChat(ctx, chatID)
	if err != nil {
		return nil, RangeOption{}, fmt.Errorf("failed to list seasons: %w", err)
	}

	options := []RangeOption{{Key: rangeKeyAll, Label: "All time"}}

	if len(seasons) > 0 {
		now := time.Now()
		for _, season := range seasons {
			end := now
			if season.EndDate != nil {
				end = *season.EndDate
			}
			start := season.StartDate
			options = append(options, RangeOption{
				Key:   seasonRangePrefix + strconv.Itoa(season.ID),
				Label: season.Name,
				Note:  formatRange(start, end),
				Start: &start,
				End:   &end,
			})
		}
	} else {
		end := time.Now()
		start := end.Add(-defaultSeasonSpan)
		options = append(options, RangeOption{
			Key:   seasonRangePrefix + "current",
			Label: "Season",
			Note:  formatRange(start, end),
			Start: &start,
			End:   &end,
		})
	}

	resolved := rangeKey
	if rangeKey == rangeKeySeason {
		for _, option := range options {
			if option.isSeason() {
				resolved = option.Key
				break
			}
		}
	}
	for _, option := range options {
		if option.Key == resolved {
			return options, option, nil
		}
	}
	return options, options[0], nil
}

func (s *ratingService) GetRating(ctx context.Context, slug string, query RatingQuery) (*RatingView, error) {
	chat, roster, matches, err := s.LoadChatData(ctx, slug)
	if err != nil {
		return nil, err
	}

	rangeOptions, activeRange, err := s.ResolveRange(ctx, chat.ID, query.RangeKey)
	if err != nil {
		return nil, err
	}

	opts, disableBoost := engineOptions(activeRange, query.DisableSeasonBoost)

	results, err := rating.CalculateResults(roster, matches, opts)
	if err != nil {
		// The replay hit a match whose player is missing from the roster.
		// Stale partial numbers are worse than no numbers.
		s.logger.Error("rating replay aborted",
			slog.String("chat", slug),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	status := normalizeStatus(query.Status)
	windowed := windowMatches(matches, activeRange)

	view := &RatingView{
		Chat:         chat,
		Status:       status,
		RangeOptions: rangeOptions,
		ActiveRange:  activeRange,
		SeasonBoost:  boostLabel(disableBoost),
	}

	names := rosterNames(roster)
	forms := stats.BuildPlayerForm(windowed, 0)
	details := stats.BuildPlayerMatchDetails(windowed, recentMatchesLimit)
	lastDayPlayers := lastDaySet(windowed)

	for _, result := range results {
		if result.IsHidden {
			continue
		}
		if status == "active" && !result.IsActive {
			continue
		}

		player := &RatedPlayer{
			PlayerResult:  result,
			Winrate:       stats.Winrate(result.Wins, result.Losses),
			CurrentStreak: stats.CurrentStreak(forms[result.UserID]),
			PlayedLastDay: lastDayPlayers[result.UserID],
		}
		for _, detail := range details[result.UserID] {
			player.RecentForm = append(player.RecentForm, detail.Result)
			player.RecentMatches = append(player.RecentMatches, RecentMatch{
				Result:    detail.Result,
				Score:     detail.Score,
				Teammates: resolveNames(names, detail.TeammateIDs),
				Opponents: resolveNames(names, detail.OpponentIDs),
			})
		}
		view.Results = append(view.Results, player)
	}

	return view, nil
}

func (s *ratingService) GetEloStats(ctx context.Context, slug string, rangeKey string) (*EloStatsView, error) {
	chat, roster, matches, err := s.LoadChatData(ctx, slug)
	if err != nil {
		return nil, err
	}

	_, activeRange, err := s.ResolveRange(ctx, chat.ID, rangeKey)
	if err != nil {
		return nil, err
	}

	eloStats := rating.BuildEloStats(rating.EloStatsParams{
		Roster:   roster,
		Matches:  windowMatches(matches, activeRange),
		IsSeason: activeRange.isSeason(),
	})

	return &EloStatsView{
		Chat:        chat,
		Stats:       eloStats,
		ActiveRange: activeRange,
	}, nil
}

func engineOptions(activeRange RangeOption, disableSeasonBoost bool) (*rating.Options, bool) {
	if !activeRange.isSeason() || activeRange.Start == nil {
		return nil, false
	}
	return &rating.Options{
		SeasonStart:        activeRange.Start,
		SeasonEnd:          activeRange.End,
		DisableSeasonBoost: disableSeasonBoost,
	}, disableSeasonBoost
}

func windowMatches(matches []models.Match, activeRange RangeOption) []models.Match {
	if activeRange.Start == nil && activeRange.End == nil {
		return matches
	}
	windowed := make([]models.Match, 0, len(matches))
	for _, match := range matches {
		if activeRange.Start != nil && match.Day.Before(*activeRange.Start) {
			continue
		}
		if activeRange.End != nil && match.Day.After(*activeRange.End) {
			continue
		}
		windowed = append(windowed, match)
	}
	return windowed
}

func lastDaySet(matches []models.Match) map[int]bool {
	players := make(map[int]bool)
	if len(matches) == 0 {
		return players
	}
	lastKey := stats.DayKey(matches[len(matches)-1].Day)
	for _, match := range matches {
		if stats.DayKey(match.Day) != lastKey {
			continue
		}
		for _, id := range match.PlayerIDs() {
			players[id] = true
		}
	}
	return players
}

func resolveNames(names map[int]string, ids []int) []string {
	resolved := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			resolved = append(resolved, name)
		} else {
			resolved = append(resolved, fmt.Sprintf("Player %d", id))
		}
	}
	return resolved
}

func normalizeStatus(status string) string {
	if status == "all" {
		return "all"
	}
	return "active"
}

func boostLabel(disabled bool) string {
	if disabled {
		return "base"
	}
	return "boosted"
}

func formatRange(start, end time.Time) string {
	return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
}
