package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/repositories"
)

type fakeSeasonRepo struct {
	seasons []models.Season
	nextID  int
}

func (f *fakeSeasonRepo) Create(ctx context.Context, season *models.Season) error {
	f.nextID++
	season.ID = f.nextID
	f.seasons = append(f.seasons, *season)
	return nil
}

func (f *fakeSeasonRepo) GetByID(ctx context.Context, id int) (*models.Season, error) {
	for i := range f.seasons {
		if f.seasons[i].ID == id {
			return &f.seasons[i], nil
		}
	}
	return nil, repositories.ErrSeasonNotFound
}

func (f *fakeSeasonRepo) ListByChat(ctx context.Context, chatID int64) ([]models.Season, error) {
	var out []models.Season
	for _, s := range f.seasons {
		if s.ChatID == chatID {
			out = append(out, s)
		}
	}
	return out, nil
}

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func newTestSeasonService() (SeasonService, *fakeSeasonRepo, *fakeMatchRepo) {
	chatRepo := &fakeChatRepo{chats: []models.Chat{{ID: 1, Slug: "beach"}, {ID: 2, Slug: "hall"}}}
	seasonRepo := &fakeSeasonRepo{}
	matchRepo := &fakeMatchRepo{}
	svc := NewSeasonService(chatRepo, seasonRepo, matchRepo, discardLogger())
	return svc, seasonRepo, matchRepo
}

func TestCreateSeason(t *testing.T) {
	svc, seasonRepo, _ := newTestSeasonService()

	end := mustDay(t, "2025-08-31")
	season, err := svc.CreateSeason(context.Background(), "beach", CreateSeasonInput{
		Name:      "Summer 2025",
		StartDate: mustDay(t, "2025-06-01"),
		EndDate:   &end,
		IsActive:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, season.ID)
	assert.Equal(t, int64(1), season.ChatID)
	assert.Len(t, seasonRepo.seasons, 1)
}

func TestCreateSeason_Validation(t *testing.T) {
	svc, _, _ := newTestSeasonService()
	start := mustDay(t, "2025-06-01")
	endBeforeStart := mustDay(t, "2025-05-01")

	_, err := svc.CreateSeason(context.Background(), "beach", CreateSeasonInput{StartDate: start})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateSeason(context.Background(), "beach", CreateSeasonInput{Name: "Summer"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateSeason(context.Background(), "beach", CreateSeasonInput{
		Name:      "Summer",
		StartDate: start,
		EndDate:   &endBeforeStart,
	})
	assert.ErrorIs(t, err, ErrSeasonWindowInvalid)
}

func TestGetSeason_WindowsMatches(t *testing.T) {
	svc, _, matchRepo := newTestSeasonService()

	end := mustDay(t, "2025-06-30")
	season, err := svc.CreateSeason(context.Background(), "beach", CreateSeasonInput{
		Name:      "June",
		StartDate: mustDay(t, "2025-06-01"),
		EndDate:   &end,
	})
	require.NoError(t, err)

	matchRepo.matches = []models.Match{
		{ID: 1, ChatID: 1, Day: mustDay(t, "2025-05-20")},
		{ID: 2, ChatID: 1, Day: mustDay(t, "2025-06-15")},
		{ID: 3, ChatID: 1, Day: mustDay(t, "2025-07-03")},
	}

	view, err := svc.GetSeason(context.Background(), "beach", season.ID)
	require.NoError(t, err)

	assert.Equal(t, "June", view.Season.Name)
	require.Len(t, view.Matches, 1)
	assert.Equal(t, 2, view.Matches[0].ID)
}

func TestGetSeason_WrongChat(t *testing.T) {
	svc, _, _ := newTestSeasonService()

	season, err := svc.CreateSeason(context.Background(), "beach", CreateSeasonInput{
		Name:      "Summer",
		StartDate: mustDay(t, "2025-06-01"),
	})
	require.NoError(t, err)

	// A season reached through another chat's slug must read as missing.
	_, err = svc.GetSeason(context.Background(), "hall", season.ID)
	assert.ErrorIs(t, err, ErrSeasonNotFound)
}

func TestGetSeason_Missing(t *testing.T) {
	svc, _, _ := newTestSeasonService()

	_, err := svc.GetSeason(context.Background(), "beach", 42)
	assert.ErrorIs(t, err, ErrSeasonNotFound)
}

func TestListSeasons(t *testing.T) {
	svc, _, _ := newTestSeasonService()

	_, err := svc.CreateSeason(context.Background(), "beach", CreateSeasonInput{
		Name:      "Summer",
		StartDate: mustDay(t, "2025-06-01"),
	})
	require.NoError(t, err)
	_, err = svc.CreateSeason(context.Background(), "hall", CreateSeasonInput{
		Name:      "Indoor",
		StartDate: mustDay(t, "2025-10-01"),
	})
	require.NoError(t, err)

	seasons, err := svc.ListSeasons(context.Background(), "beach")
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.Equal(t, "Summer", seasons[0].Name)
}
