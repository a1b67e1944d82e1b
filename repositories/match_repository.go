package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alex-adamant/volley/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchPlayerInvalid covers the FK on the four player columns.
	ErrMatchPlayerInvalid = errors.New("match references an unknown player")
)

type MatchFilter struct {
	From *time.Time
	To   *time.Time
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// ListByChat returns matches ordered by day then id: the replay order.
	ListByChat(ctx context.Context, chatID int64, filter *MatchFilter) ([]models.Match, error)
	Delete(ctx context.Context, id int) error
	CountByChat(ctx context.Context, chatID int64) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (chat_id, player_a1_id, player_a2_id, player_b1_id, player_b2_id, team_a_score, team_b_score, day, league)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		match.ChatID,
		match.PlayerA1ID,
		match.PlayerA2ID,
		match.PlayerB1ID,
		match.PlayerB2ID,
		match.TeamAScore,
		match.TeamBScore,
		match.Day,
		match.League,
	).Scan(&match.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrMatchPlayerInvalid
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, chat_id, player_a1_id, player_a2_id, player_b1_id, player_b2_id, team_a_score, team_b_score, day, league
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.ChatID,
		&match.PlayerA1ID,
		&match.PlayerA2ID,
		&match.PlayerB1ID,
		&match.PlayerB2ID,
		&match.TeamAScore,
		&match.TeamBScore,
		&match.Day,
		&match.League,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByChat(ctx context.Context, chatID int64, filter *MatchFilter) ([]models.Match, error) {
	query := `
		SELECT id, chat_id, player_a1_id, player_a2_id, player_b1_id, player_b2_id, team_a_score, team_b_score, day, league
		FROM matches
		WHERE chat_id = $1`
	args := []interface{}{chatID}

	if filter != nil && filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND day >= $%d", len(args))
	}
	if filter != nil && filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND day <= $%d", len(args))
	}
	query += " ORDER BY day ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		scanErr := rows.Scan(
			&match.ID,
			&match.ChatID,
			&match.PlayerA1ID,
			&match.PlayerA2ID,
			&match.PlayerB1ID,
			&match.PlayerB2ID,
			&match.TeamAScore,
			&match.TeamBScore,
			&match.Day,
			&match.League,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) CountByChat(ctx context.Context, chatID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE chat_id = $1`, chatID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
