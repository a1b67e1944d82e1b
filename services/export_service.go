package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/alex-adamant/volley/storage"
)

type ExportResult struct {
	URL     string `json:"url"`
	Key     string `json:"key"`
	Players int    `json:"players"`
}

type ExportService interface {
	ExportRating(ctx context.Context, slug string, rangeKey string) (*ExportResult, error)
}

type exportService struct {
	ratings  RatingService
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewExportService(ratings RatingService, uploader storage.FileUploader, logger *slog.Logger) ExportService {
	return &exportService{ratings: ratings, uploader: uploader, logger: logger}
}

// ExportRating renders the current rating table as CSV and uploads it,
// returning the public link.
func (s *exportService) ExportRating(ctx context.Context, slug string, rangeKey string) (*ExportResult, error) {
	view, err := s.ratings.GetRating(ctx, slug, RatingQuery{RangeKey: rangeKey, Status: "all"})
	if err != nil {
		return nil, err
	}
	if len(view.Results) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	header := []string{
		"place", "name", "rating", "games", "wins", "losses",
		"winrate", "points_for", "points_against", "point_diff",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i, player := range view.Results {
		row := []string{
			strconv.Itoa(i + 1),
			player.Name,
			strconv.Itoa(player.Rating),
			strconv.Itoa(player.Games),
			strconv.Itoa(player.Wins),
			strconv.Itoa(player.Losses),
			strconv.FormatFloat(player.Winrate, 'f', 3, 64),
			strconv.Itoa(player.PointsFor),
			strconv.Itoa(player.PointsAgainst),
			strconv.Itoa(player.PointDiff),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	key := fmt.Sprintf("exports/%s/rating-%s.csv", slug, time.Now().Format("20060102-150405"))
	result, err := s.uploader.Upload(ctx, key, "text/csv", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	s.logger.Info("rating exported",
		slog.String("chat", slug),
		slog.String("key", result.Key),
		slog.Int("players", len(view.Results)),
	)
	return &ExportResult{
		URL:     result.Location,
		Key:     result.Key,
		Players: len(view.Results),
	}, nil
}
