package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/repositories"
)

type CreateSeasonInput struct {
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// SeasonView is one season together with the matches its window covers.
type SeasonView struct {
	Season  *models.Season `json:"season"`
	Matches []models.Match `json:"matches"`
}

type SeasonService interface {
	CreateSeason(ctx context.Context, slug string, input CreateSeasonInput) (*models.Season, error)
	GetSeason(ctx context.Context, slug string, seasonID int) (*SeasonView, error)
	ListSeasons(ctx context.Context, slug string) ([]models.Season, error)
}

type seasonService struct {
	chatRepo   repositories.ChatRepository
	seasonRepo repositories.SeasonRepository
	matchRepo  repositories.MatchRepository
	logger     *slog.Logger
}

func NewSeasonService(
	chatRepo repositories.ChatRepository,
	seasonRepo repositories.SeasonRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) SeasonService {
	return &seasonService{
		chatRepo:   chatRepo,
		seasonRepo: seasonRepo,
		matchRepo:  matchRepo,
		logger:     logger,
	}
}

func (s *seasonService) CreateSeason(ctx context.Context, slug string, input CreateSeasonInput) (*models.Season, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: season name is required", ErrValidationFailed)
	}
	if input.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrValidationFailed)
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, ErrSeasonWindowInvalid
	}

	chat, err := s.getChat(ctx, slug)
	if err != nil {
		return nil, err
	}

	season := &models.Season{
		ChatID:    chat.ID,
		Name:      name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		IsActive:  input.IsActive,
	}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}

	s.logger.Info("season created",
		slog.String("chat", slug),
		slog.Int("season_id", season.ID),
		slog.String("name", season.Name),
	)
	return season, nil
}

func (s *seasonService) GetSeason(ctx context.Context, slug string, seasonID int) (*SeasonView, error) {
	chat, err := s.getChat(ctx, slug)
	if err != nil {
		return nil, err
	}

	season, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		if errors.Is(err, repositories.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to load season %d: %w", seasonID, err)
	}
	// A season reached through the wrong chat does not exist.
	if season.ChatID != chat.ID {
		return nil, ErrSeasonNotFound
	}

	matches, err := s.matchRepo.ListByChat(ctx, chat.ID, &repositories.MatchFilter{
		From: &season.StartDate,
		To:   season.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load season matches: %w", err)
	}

	return &SeasonView{Season: season, Matches: matches}, nil
}

func (s *seasonService) ListSeasons(ctx context.Context, slug string) ([]models.Season, error) {
	chat, err := s.getChat(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.seasonRepo.ListByChat(ctx, chat.ID)
}

func (s *seasonService) getChat(ctx context.Context, slug string) (*models.Chat, error) {
	chat, err := s.chatRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to load chat %q: %w", slug, err)
	}
	return chat, nil
}
