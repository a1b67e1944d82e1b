package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alex-adamant/volley/repositories"
	"github.com/alex-adamant/volley/schedule"
)

type GenerateScheduleInput struct {
	PlayerIDs []int `json:"player_ids"`
	Points    *int  `json:"points,omitempty"`
}

type ScheduleView struct {
	Schedule string   `json:"schedule"`
	Players  []string `json:"players"`
	Points   int      `json:"points"`
}

type ScheduleService interface {
	Generate(ctx context.Context, slug string, input GenerateScheduleInput) (*ScheduleView, error)
}

type scheduleService struct {
	chatRepo   repositories.ChatRepository
	rosterRepo repositories.RosterRepository
	logger     *slog.Logger
}

func NewScheduleService(chatRepo repositories.ChatRepository, rosterRepo repositories.RosterRepository, logger *slog.Logger) ScheduleService {
	return &scheduleService{chatRepo: chatRepo, rosterRepo: rosterRepo, logger: logger}
}

func (s *scheduleService) Generate(ctx context.Context, slug string, input GenerateScheduleInput) (*ScheduleView, error) {
	if len(input.PlayerIDs) < schedule.MinPlayers || len(input.PlayerIDs) > schedule.MaxPlayers {
		return nil, fmt.Errorf("%w: got %d players, want %d to %d",
			ErrSchedulePlayerCount, len(input.PlayerIDs), schedule.MinPlayers, schedule.MaxPlayers)
	}

	points := schedule.PointsOptions[len(schedule.PointsOptions)-1]
	if input.Points != nil {
		points = *input.Points
		valid := false
		for _, option := range schedule.PointsOptions {
			if option == points {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("%w: points must be one of %v", ErrValidationFailed, schedule.PointsOptions)
		}
	}

	chat, err := s.chatRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to load chat %q: %w", slug, err)
	}

	names := make([]string, 0, len(input.PlayerIDs))
	seen := make(map[int]bool, len(input.PlayerIDs))
	for _, userID := range input.PlayerIDs {
		if seen[userID] {
			return nil, fmt.Errorf("%w: player %d listed twice", ErrPlayersNotDistinct, userID)
		}
		seen[userID] = true

		entry, err := s.rosterRepo.Get(ctx, chat.ID, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrRosterEntryNotFound) {
				return nil, fmt.Errorf("%w: player %d", ErrPlayerNotOnRoster, userID)
			}
			return nil, fmt.Errorf("failed to load player %d: %w", userID, err)
		}
		names = append(names, entry.Name)
	}

	generator := schedule.NewGenerator(time.Now().UnixNano())
	rendered, err := generator.Generate(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchedulePlayerCount, err)
	}

	s.logger.Info("schedule generated",
		slog.String("chat", slug),
		slog.Int("players", len(names)),
		slog.Int("points", points),
	)
	return &ScheduleView{Schedule: rendered, Players: names, Points: points}, nil
}
