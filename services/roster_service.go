package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/rating"
	"github.com/alex-adamant/volley/repositories"
)

type AddPlayerInput struct {
	UserID        int    `json:"user_id"`
	Name          string `json:"name"`
	InitialRating *int   `json:"initial_rating,omitempty"`
	InitialGames  *int   `json:"initial_games,omitempty"`
}

// UpdatePlayerInput carries partial updates; nil means leave unchanged.
type UpdatePlayerInput struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	IsHidden *bool   `json:"is_hidden,omitempty"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

type RosterService interface {
	AddPlayer(ctx context.Context, slug string, input AddPlayerInput) (*models.RosterEntry, error)
	UpdatePlayer(ctx context.Context, slug string, userID int, input UpdatePlayerInput) (*models.RosterEntry, error)
	RemovePlayer(ctx context.Context, slug string, userID int) error
	ListPlayers(ctx context.Context, slug string) ([]models.RosterEntry, error)
}

type rosterService struct {
	chatRepo   repositories.ChatRepository
	rosterRepo repositories.RosterRepository
	logger     *slog.Logger
}

func NewRosterService(chatRepo repositories.ChatRepository, rosterRepo repositories.RosterRepository, logger *slog.Logger) RosterService {
	return &rosterService{chatRepo: chatRepo, rosterRepo: rosterRepo, logger: logger}
}

func (s *rosterService) AddPlayer(ctx context.Context, slug string, input AddPlayerInput) (*models.RosterEntry, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", ErrValidationFailed)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}

	chat, err := s.getChat(ctx, slug)
	if err != nil {
		return nil, err
	}

	entry := &models.RosterEntry{
		ChatID:        chat.ID,
		UserID:        input.UserID,
		Name:          name,
		IsActive:      true,
		InitialRating: rating.BaseRating,
	}
	if input.InitialRating != nil {
		entry.InitialRating = *input.InitialRating
	}
	if input.InitialGames != nil {
		if *input.InitialGames < 0 {
			return nil, fmt.Errorf("%w: initial games cannot be negative", ErrValidationFailed)
		}
		entry.InitialGames = *input.InitialGames
	}

	if err := s.rosterRepo.Add(ctx, entry); err != nil {
		if errors.Is(err, repositories.ErrRosterConflict) {
			return nil, ErrPlayerOnRoster
		}
		return nil, fmt.Errorf("failed to add player: %w", err)
	}

	s.logger.Info("player added",
		slog.String("chat", slug),
		slog.Int("user_id", entry.UserID),
		slog.String("name", entry.Name),
	)
	return entry, nil
}

func (s *rosterService) UpdatePlayer(ctx context.Context, slug string, userID int, input UpdatePlayerInput) (*models.RosterEntry, error) {
	chat, err := s.getChat(ctx, slug)
	if err != nil {
		return nil, err
	}

	entry, err := s.rosterRepo.Get(ctx, chat.ID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRosterEntryNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %d: %w", userID, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidationFailed)
		}
		entry.Name = name
	}
	if input.IsActive != nil {
		entry.IsActive = *input.IsActive
	}
	if input.IsHidden != nil {
		entry.IsHidden = *input.IsHidden
	}
	if input.IsAdmin != nil {
		entry.IsAdmin = *input.IsAdmin
	}

	if err := s.rosterRepo.Update(ctx, entry); err != nil {
		if errors.Is(err, repositories.ErrRosterEntryNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player %d: %w", userID, err)
	}
	return entry, nil
}

func (s *rosterService) RemovePlayer(ctx context.Context, slug string, userID int) error {
	chat, err := s.getChat(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.rosterRepo.Remove(ctx, chat.ID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRosterEntryNotFound):
			return ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerReferenced):
			// Deleting a player with recorded matches would corrupt the
			// replay. Hide them instead.
			return ErrPlayerHasMatches
		}
		return fmt.Errorf("failed to remove player %d: %w", userID, err)
	}

	s.logger.Info("player removed",
		slog.String("chat", slug),
		slog.Int("user_id", userID),
	)
	return nil
}

func (s *rosterService) ListPlayers(ctx context.Context, slug string) ([]models.RosterEntry, error) {
	chat, err := s.getChat(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.rosterRepo.ListByChat(ctx, chat.ID)
}

func (s *rosterService) getChat(ctx context.Context, slug string) (*models.Chat, error) {
	chat, err := s.chatRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to load chat %q: %w", slug, err)
	}
	return chat, nil
}
