package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-adamant/volley/models"
	"github.com/alex-adamant/volley/repositories"
)

type fakeChatRepo struct {
	chats []models.Chat
}

func (f *fakeChatRepo) Create(ctx context.Context, chat *models.Chat) error {
	for _, existing := range f.chats {
		if existing.Slug == chat.Slug {
			return repositories.ErrChatSlugConflict
		}
	}
	f.chats = append(f.chats, *chat)
	return nil
}

func (f *fakeChatRepo) GetBySlug(ctx context.Context, slug string) (*models.Chat, error) {
	for i := range f.chats {
		if f.chats[i].Slug == slug {
			return &f.chats[i], nil
		}
	}
	return nil, repositories.ErrChatNotFound
}

func (f *fakeChatRepo) List(ctx context.Context) ([]models.Chat, error) {
	return append([]models.Chat(nil), f.chats...), nil
}

type fakeRosterRepo struct {
	entries []models.RosterEntry
}

func (f *fakeRosterRepo) Add(ctx context.Context, entry *models.RosterEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeRosterRepo) Get(ctx context.Context, chatID int64, userID int) (*models.RosterEntry, error) {
	for i := range f.entries {
		if f.entries[i].ChatID == chatID && f.entries[i].UserID == userID {
			return &f.entries[i], nil
		}
	}
	return nil, repositories.ErrRosterEntryNotFound
}

func (f *fakeRosterRepo) ListByChat(ctx context.Context, chatID int64) ([]models.RosterEntry, error) {
	var out []models.RosterEntry
	for _, e := range f.entries {
		if e.ChatID == chatID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRosterRepo) Update(ctx context.Context, entry *models.RosterEntry) error { return nil }

func (f *fakeRosterRepo) Remove(ctx context.Context, chatID int64, userID int) error { return nil }

type fakeMatchRepo struct {
	matches []models.Match
	nextID  int
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	f.nextID++
	match.ID = f.nextID
	f.matches = append(f.matches, *match)
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	for i := range f.matches {
		if f.matches[i].ID == id {
			return &f.matches[i], nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) ListByChat(ctx context.Context, chatID int64, filter *repositories.MatchFilter) ([]models.Match, error) {
	var out []models.Match
	for _, m := range f.matches {
		if m.ChatID != chatID {
			continue
		}
		if filter != nil && filter.From != nil && m.Day.Before(*filter.From) {
			continue
		}
		if filter != nil && filter.To != nil && m.Day.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	for i := range f.matches {
		if f.matches[i].ID == id {
			f.matches = append(f.matches[:i], f.matches[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) CountByChat(ctx context.Context, chatID int64) (int, error) {
	count := 0
	for _, m := range f.matches {
		if m.ChatID == chatID {
			count++
		}
	}
	return count, nil
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Notify(chatSlug string, event string, payload any) {
	n.events = append(n.events, event)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMatchService() (MatchService, *fakeMatchRepo, *recordingNotifier) {
	chatRepo := &fakeChatRepo{chats: []models.Chat{{ID: 1, Slug: "beach"}}}
	rosterRepo := &fakeRosterRepo{entries: []models.RosterEntry{
		{ChatID: 1, UserID: 1, Name: "Ann", IsActive: true},
		{ChatID: 1, UserID: 2, Name: "Ben", IsActive: true},
		{ChatID: 1, UserID: 3, Name: "Cal", IsActive: true},
		{ChatID: 1, UserID: 4, Name: "Dee", IsActive: true},
	}}
	matchRepo := &fakeMatchRepo{}
	notifier := &recordingNotifier{}
	svc := NewMatchService(chatRepo, rosterRepo, matchRepo, notifier, discardLogger())
	return svc, matchRepo, notifier
}

func validInput() RecordMatchInput {
	return RecordMatchInput{
		PlayerA1ID: 1, PlayerA2ID: 2,
		PlayerB1ID: 3, PlayerB2ID: 4,
		TeamAScore: 21, TeamBScore: 15,
	}
}

func TestRecordMatch(t *testing.T) {
	svc, matchRepo, notifier := newTestMatchService()

	match, err := svc.RecordMatch(context.Background(), "beach", validInput())
	require.NoError(t, err)

	assert.Equal(t, 1, match.ID)
	assert.Equal(t, int64(1), match.ChatID)
	assert.False(t, match.Day.IsZero())
	assert.Len(t, matchRepo.matches, 1)
	assert.Equal(t, []string{"MATCH_RECORDED"}, notifier.events)
}

func TestRecordMatch_UnknownChat(t *testing.T) {
	svc, _, _ := newTestMatchService()

	_, err := svc.RecordMatch(context.Background(), "nope", validInput())
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestRecordMatch_PlayerNotOnRoster(t *testing.T) {
	svc, _, _ := newTestMatchService()

	input := validInput()
	input.PlayerB2ID = 99
	_, err := svc.RecordMatch(context.Background(), "beach", input)
	assert.ErrorIs(t, err, ErrPlayerNotOnRoster)
}

func TestRecordMatch_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RecordMatchInput)
		wantErr error
	}{
		{
			name:    "duplicate player",
			mutate:  func(in *RecordMatchInput) { in.PlayerB1ID = in.PlayerA1ID },
			wantErr: ErrPlayersNotDistinct,
		},
		{
			name:    "non-positive id",
			mutate:  func(in *RecordMatchInput) { in.PlayerA2ID = 0 },
			wantErr: ErrValidationFailed,
		},
		{
			name:    "negative score",
			mutate:  func(in *RecordMatchInput) { in.TeamBScore = -1 },
			wantErr: ErrScoreInvalid,
		},
		{
			name:    "score above cap",
			mutate:  func(in *RecordMatchInput) { in.TeamAScore = 51 },
			wantErr: ErrScoreInvalid,
		},
		{
			name:    "draw",
			mutate:  func(in *RecordMatchInput) { in.TeamBScore = 21 },
			wantErr: ErrDrawNotAllowed,
		},
	}

	svc, matchRepo, _ := newTestMatchService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := svc.RecordMatch(context.Background(), "beach", input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, matchRepo.matches)
}

func TestDeleteMatch(t *testing.T) {
	svc, matchRepo, notifier := newTestMatchService()

	match, err := svc.RecordMatch(context.Background(), "beach", validInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMatch(context.Background(), "beach", match.ID))
	assert.Empty(t, matchRepo.matches)
	assert.Equal(t, []string{"MATCH_RECORDED", "MATCH_DELETED"}, notifier.events)
}

func TestDeleteMatch_WrongChat(t *testing.T) {
	svc, matchRepo, _ := newTestMatchService()

	match, err := svc.RecordMatch(context.Background(), "beach", validInput())
	require.NoError(t, err)

	// Same match id through a different chat must look like it does not exist.
	matchRepo.matches[0].ChatID = 2
	err = svc.DeleteMatch(context.Background(), "beach", match.ID)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestDeleteMatch_Missing(t *testing.T) {
	svc, _, _ := newTestMatchService()

	err := svc.DeleteMatch(context.Background(), "beach", 123)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
