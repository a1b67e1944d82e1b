package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alex-adamant/volley/models"
	"github.com/lib/pq"
)

var (
	ErrRosterEntryNotFound = errors.New("roster entry not found")
	ErrRosterConflict      = errors.New("player already on the roster")
	// ErrPlayerReferenced surfaces the FK guard: a player with recorded
	// matches cannot be removed, the rating replay would lose its inputs.
	ErrPlayerReferenced = errors.New("player is referenced by recorded matches")
)

type RosterRepository interface {
	Add(ctx context.Context, entry *models.RosterEntry) error
	Get(ctx context.Context, chatID int64, userID int) (*models.RosterEntry, error)
	ListByChat(ctx context.Context, chatID int64) ([]models.RosterEntry, error)
	Update(ctx context.Context, entry *models.RosterEntry) error
	Remove(ctx context.Context, chatID int64, userID int) error
}

type postgresRosterRepository struct {
	db *sql.DB
}

func NewPostgresRosterRepository(db *sql.DB) RosterRepository {
	return &postgresRosterRepository{db: db}
}

func (r *postgresRosterRepository) Add(ctx context.Context, entry *models.RosterEntry) error {
	query := `
		INSERT INTO chat_users (chat_id, user_id, name, is_active, is_hidden, is_admin, initial_rating, initial_games)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ChatID,
		entry.UserID,
		entry.Name,
		entry.IsActive,
		entry.IsHidden,
		entry.IsAdmin,
		entry.InitialRating,
		entry.InitialGames,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrRosterConflict
		}
		return fmt.Errorf("failed to add roster entry: %w", err)
	}
	return nil
}

func (r *postgresRosterRepository) Get(ctx context.Context, chatID int64, userID int) (*models.RosterEntry, error) {
	query := `
		SELECT chat_id, user_id, name, is_active, is_hidden, is_admin, initial_rating, initial_games
		FROM chat_users
		WHERE chat_id = $1 AND user_id = $2`

	entry := &models.RosterEntry{}
	err := r.db.QueryRowContext(ctx, query, chatID, userID).Scan(
		&entry.ChatID,
		&entry.UserID,
		&entry.Name,
		&entry.IsActive,
		&entry.IsHidden,
		&entry.IsAdmin,
		&entry.InitialRating,
		&entry.InitialGames,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRosterEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// ListByChat returns the full roster ordered by user id, which keeps the
// replay deterministic for equal ratings.
func (r *postgresRosterRepository) ListByChat(ctx context.Context, chatID int64) ([]models.RosterEntry, error) {
	query := `
		SELECT chat_id, user_id, name, is_active, is_hidden, is_admin, initial_rating, initial_games
		FROM chat_users
		WHERE chat_id = $1
		ORDER BY user_id ASC`

	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.RosterEntry, 0)
	for rows.Next() {
		var entry models.RosterEntry
		scanErr := rows.Scan(
			&entry.ChatID,
			&entry.UserID,
			&entry.Name,
			&entry.IsActive,
			&entry.IsHidden,
			&entry.IsAdmin,
			&entry.InitialRating,
			&entry.InitialGames,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *postgresRosterRepository) Update(ctx context.Context, entry *models.RosterEntry) error {
	query := `
		UPDATE chat_users SET
			name = $1,
			is_active = $2,
			is_hidden = $3,
			is_admin = $4,
			initial_rating = $5,
			initial_games = $6
		WHERE chat_id = $7 AND user_id = $8`

	result, err := r.db.ExecContext(ctx, query,
		entry.Name,
		entry.IsActive,
		entry.IsHidden,
		entry.IsAdmin,
		entry.InitialRating,
		entry.InitialGames,
		entry.ChatID,
		entry.UserID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRosterEntryNotFound)
}

func (r *postgresRosterRepository) Remove(ctx context.Context, chatID int64, userID int) error {
	query := `DELETE FROM chat_users WHERE chat_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, chatID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrPlayerReferenced
		}
		return err
	}
	return checkAffectedRows(result, ErrRosterEntryNotFound)
}
