package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/repositories"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CreateChatInput carries the external chat identity: the id comes from
// the messenger group the chat mirrors, it is not generated here.
type CreateChatInput struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// ChatSummary is one directory row: the chat plus its recorded volume.
type ChatSummary struct {
	models.Chat
	Matches int `json:"matches"`
}

type ChatService interface {
	CreateChat(ctx context.Context, input CreateChatInput) (*models.Chat, error)
	ListChats(ctx context.Context) ([]ChatSummary, error)
}

type chatService struct {
	chatRepo  repositories.ChatRepository
	matchRepo repositories.MatchRepository
	logger    *slog.Logger
}

func NewChatService(chatRepo repositories.ChatRepository, matchRepo repositories.MatchRepository, logger *slog.Logger) ChatService {
	return &chatService{chatRepo: chatRepo, matchRepo: matchRepo, logger: logger}
}

func (s *chatService) CreateChat(ctx context.Context, input CreateChatInput) (*models.Chat, error) {
	if input.ID == 0 {
		return nil, fmt.Errorf("%w: chat id is required", ErrValidationFailed)
	}
	slug := strings.TrimSpace(input.Slug)
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase letters, digits and dashes", ErrValidationFailed)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidationFailed)
	}

	chat := &models.Chat{
		ID:    input.ID,
		Slug:  slug,
		Title: title,
	}
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		if errors.Is(err, repositories.ErrChatSlugConflict) {
			return nil, ErrChatSlugTaken
		}
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	s.logger.Info("chat created",
		slog.String("slug", chat.Slug),
		slog.Int64("chat_id", chat.ID),
	)
	return chat, nil
}

func (s *chatService) ListChats(ctx context.Context) ([]ChatSummary, error) {
	chats, err := s.chatRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	summaries := make([]ChatSummary, 0, len(chats))
	for _, chat := range chats {
		count, err := s.matchRepo.CountByChat(ctx, chat.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count matches for chat %q: %w", chat.Slug, err)
		}
		summaries = append(summaries, ChatSummary{Chat: chat, Matches: count})
	}
	return summaries, nil
}
