package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/repositories"
)

const maxSetScore = 50

// Notifier pushes chat-scoped events to connected clients.
type Notifier interface {
	Notify(chatSlug string, event string, payload any)
}

type RecordMatchInput struct {
	PlayerA1ID int        `json:"player_a1_id"`
	PlayerA2ID int        `json:"player_a2_id"`
	PlayerB1ID int        `json:"player_b1_id"`
	PlayerB2ID int        `json:"player_b2_id"`
	TeamAScore int        `json:"team_a_score"`
	TeamBScore int        `json:"team_b_score"`
	Day        *time.Time `json:"day,omitempty"`
	League     int        `json:"league"`
}

type MatchService interface {
	RecordMatch(ctx context.Context, slug string, input RecordMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, slug string, matchID int) error
}

type matchService struct {
	chatRepo   repositories.ChatRepository
	rosterRepo repositories.RosterRepository
	matchRepo  repositories.MatchRepository
	notifier   Notifier
	logger     *slog.Logger
}

func NewMatchService(
	chatRepo repositories.ChatRepository,
	rosterRepo repositories.RosterRepository,
	matchRepo repositories.MatchRepository,
	notifier Notifier,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		chatRepo:   chatRepo,
		rosterRepo: rosterRepo,
		matchRepo:  matchRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

func (s *matchService) RecordMatch(ctx context.Context, slug string, input RecordMatchInput) (*models.Match, error) {
	if err := validateMatchInput(input); err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to load chat %q: %w", slug, err)
	}

	roster, err := s.rosterRepo.ListByChat(ctx, chat.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	onRoster := make(map[int]bool, len(roster))
	for _, entry := range roster {
		onRoster[entry.UserID] = true
	}

	day := time.Now()
	if input.Day != nil {
		day = *input.Day
	}

	match := &models.Match{
		ChatID:     chat.ID,
		PlayerA1ID: input.PlayerA1ID,
		PlayerA2ID: input.PlayerA2ID,
		PlayerB1ID: input.PlayerB1ID,
		PlayerB2ID: input.PlayerB2ID,
		TeamAScore: input.TeamAScore,
		TeamBScore: input.TeamBScore,
		Day:        day,
		League:     input.League,
	}

	for _, id := range match.PlayerIDs() {
		if !onRoster[id] {
			return nil, fmt.Errorf("%w: player %d", ErrPlayerNotOnRoster, id)
		}
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchPlayerInvalid) {
			return nil, ErrPlayerNotOnRoster
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.logger.Info("match recorded",
		slog.String("chat", slug),
		slog.Int("match_id", match.ID),
		slog.String("score", fmt.Sprintf("%d-%d", match.TeamAScore, match.TeamBScore)),
	)

	if s.notifier != nil {
		s.notifier.Notify(slug, "MATCH_RECORDED", match)
	}
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, slug string, matchID int) error {
	chat, err := s.chatRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return ErrChatNotFound
		}
		return fmt.Errorf("failed to load chat %q: %w", slug, err)
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	if match.ChatID != chat.ID {
		return ErrMatchNotFound
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", matchID, err)
	}

	s.logger.Info("match deleted",
		slog.String("chat", slug),
		slog.Int("match_id", matchID),
	)

	if s.notifier != nil {
		s.notifier.Notify(slug, "MATCH_DELETED", map[string]int{"match_id": matchID})
	}
	return nil
}

func validateMatchInput(input RecordMatchInput) error {
	players := [4]int{input.PlayerA1ID, input.PlayerA2ID, input.PlayerB1ID, input.PlayerB2ID}
	seen := make(map[int]bool, 4)
	for _, id := range players {
		if id <= 0 {
			return fmt.Errorf("%w: player ids must be positive", ErrValidationFailed)
		}
		if seen[id] {
			return fmt.Errorf("%w: player %d appears twice", ErrPlayersNotDistinct, id)
		}
		seen[id] = true
	}

	if input.TeamAScore < 0 || input.TeamBScore < 0 ||
		input.TeamAScore > maxSetScore || input.TeamBScore > maxSetScore {
		return fmt.Errorf("%w: scores must be between 0 and %d", ErrScoreInvalid, maxSetScore)
	}
	if input.TeamAScore == input.TeamBScore {
		return ErrDrawNotAllowed
	}
	return nil
}
