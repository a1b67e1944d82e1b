package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alex-adamant/volley/models"
)

var ErrSeasonNotFound = errors.New("season not found")

type SeasonRepository interface {
	Create(ctx context.Context, season *models.Season) error
	GetByID(ctx context.Context, id int) (*models.Season, error)
	// ListByChat orders active seasons first, then by start date descending.
	ListByChat(ctx context.Context, chatID int64) ([]models.Season, error)
}

type postgresSeasonRepository struct {
	db *sql.DB
}

func NewPostgresSeasonRepository(db *sql.DB) SeasonRepository {
	return &postgresSeasonRepository{db: db}
}

func (r *postgresSeasonRepository) Create(ctx context.Context, season *models.Season) error {
	query := `
		INSERT INTO seasons (chat_id, name, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		season.ChatID,
		season.Name,
		season.StartDate,
		season.EndDate,
		season.IsActive,
	).Scan(&season.ID)
}

func (r *postgresSeasonRepository) GetByID(ctx context.Context, id int) (*models.Season, error) {
	query := `
		SELECT id, chat_id, name, start_date, end_date, is_active
		FROM seasons
		WHERE id = $1`

	season := &models.Season{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&season.ID,
		&season.ChatID,
		&season.Name,
		&season.StartDate,
		&season.EndDate,
		&season.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	return season, nil
}

func (r *postgresSeasonRepository) ListByChat(ctx context.Context, chatID int64) ([]models.Season, error) {
	query := `
		SELECT id, chat_id, name, start_date, end_date, is_active
		FROM seasons
		WHERE chat_id = $1
		ORDER BY is_active DESC, start_date DESC`

	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := make([]models.Season, 0)
	for rows.Next() {
		var season models.Season
		scanErr := rows.Scan(
			&season.ID,
			&season.ChatID,
			&season.Name,
			&season.StartDate,
			&season.EndDate,
			&season.IsActive,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}
