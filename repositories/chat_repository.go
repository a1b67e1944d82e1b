package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alex-adamant/volley/models"
	"github.com/lib/pq"
)

var (
	ErrChatNotFound     = errors.New("chat not found")
	ErrChatSlugConflict = errors.New("chat slug conflict")
)

type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat) error
	GetBySlug(ctx context.Context, slug string) (*models.Chat, error)
	List(ctx context.Context) ([]models.Chat, error)
}

type postgresChatRepository struct {
	db *sql.DB
}

func NewPostgresChatRepository(db *sql.DB) ChatRepository {
	return &postgresChatRepository{db: db}
}

func (r *postgresChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	query := `
		INSERT INTO chats (id, slug, title)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, chat.ID, chat.Slug, chat.Title).Scan(&chat.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrChatSlugConflict
		}
		return err
	}
	return nil
}

func (r *postgresChatRepository) GetBySlug(ctx context.Context, slug string) (*models.Chat, error) {
	query := `
		SELECT id, slug, title, created_at
		FROM chats
		WHERE slug = $1`
	return r.scanChat(ctx, query, slug)
}

func (r *postgresChatRepository) List(ctx context.Context) ([]models.Chat, error) {
	query := `
		SELECT id, slug, title, created_at
		FROM chats
		ORDER BY title ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := make([]models.Chat, 0)
	for rows.Next() {
		var chat models.Chat
		if err := rows.Scan(&chat.ID, &chat.Slug, &chat.Title, &chat.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

func (r *postgresChatRepository) scanChat(ctx context.Context, query string, args ...interface{}) (*models.Chat, error) {
	chat := &models.Chat{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&chat.ID, &chat.Slug, &chat.Title, &chat.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return chat, nil
}
