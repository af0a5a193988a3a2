package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmod24/moodboard/internal/core/domain"
	"github.com/kmod24/moodboard/internal/core/ports"
)

func newTestJournal(repo *mockMoodRepo, quota *mockQuota) *Journal {
	var j *Journal
	if quota == nil {
		j = NewJournal(NewOrchestrator(nil, nil, nil), repo, nil, nil)
	} else {
		j = NewJournal(NewOrchestrator(nil, nil, nil), repo, quota, nil)
	}
	j.now = func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }
	return j
}

func TestJournal_Create(t *testing.T) {
	tests := []struct {
		name        string
		word        string
		repo        *mockMoodRepo
		quota       *mockQuota
		wantErr     error
		wantErrText string
		wantSaved   bool
	}{
		{
			name:      "Happy Path",
			word:      " happy ",
			repo:      &mockMoodRepo{},
			wantSaved: true,
		},
		{
			name:      "whitespace-only mood uses placeholder",
			word:      "   ",
			repo:      &mockMoodRepo{},
			wantSaved: true,
		},
		{
			name:    "empty mood",
			word:    "",
			repo:    &mockMoodRepo{},
			wantErr: domain.ErrInvalidMood,
		},
		{
			name:    "mood too long",
			word:    strings.Repeat("x", 31),
			repo:    &mockMoodRepo{},
			wantErr: domain.ErrInvalidMood,
		},
		{
			name:    "quota exhausted",
			word:    "sad",
			repo:    &mockMoodRepo{},
			quota:   &mockQuota{allowed: false},
			wantErr: domain.ErrQuotaExceeded,
		},
		{
			name:      "quota backend error fails open",
			word:      "sad",
			repo:      &mockMoodRepo{},
			quota:     &mockQuota{err: errors.New("redis down")},
			wantSaved: true,
		},
		{
			name:        "Repository save error",
			word:        "chill",
			repo:        &mockMoodRepo{saveErr: errors.New("save failed")},
			wantErrText: "service: failed to save mood",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			j := newTestJournal(tc.repo, tc.quota)

			entry, err := j.Create(context.Background(), "u1", tc.word, " first day ")

			switch {
			case tc.wantErr != nil:
				require.ErrorIs(t, err, tc.wantErr)
			case tc.wantErrText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErrText)
			default:
				require.NoError(t, err)
			}

			if !tc.wantSaved {
				assert.Empty(t, tc.repo.entries)
				return
			}
			saved, ok := tc.repo.entries[entry.ID]
			require.True(t, ok, "entry not saved")
			assert.Equal(t, entry, saved)
			assert.Equal(t, "u1", saved.UserID)
			assert.Equal(t, domain.NormalizeMood(tc.word), saved.MoodWord)
			assert.Equal(t, "first day", saved.Note)
			assert.Len(t, saved.ID, 26)
			assert.Equal(t, domain.SeedBundle(domain.NormalizeMood(tc.word)), saved.Bundle)
		})
	}
}

func TestJournal_Get(t *testing.T) {
	repo := &mockMoodRepo{entries: map[string]domain.MoodEntry{
		"m1": {ID: "m1", UserID: "u1", MoodWord: "happy"},
	}}
	j := newTestJournal(repo, nil)

	got, err := j.Get(context.Background(), "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "happy", got.MoodWord)

	_, err = j.Get(context.Background(), "u2", "m1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "other users' entries must look missing")

	_, err = j.Get(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = j.Get(context.Background(), "u1", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.getErr = errors.New("db gone")
	_, err = j.Get(context.Background(), "u1", "m1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service: failed to load mood")
}

func TestJournal_List(t *testing.T) {
	repo := &mockMoodRepo{}
	j := newTestJournal(repo, nil)

	first, err := j.Create(context.Background(), "u1", "happy", "")
	require.NoError(t, err)
	second, err := j.Create(context.Background(), "u1", "sad", "")
	require.NoError(t, err)
	_, err = j.Create(context.Background(), "u2", "chill", "")
	require.NoError(t, err)

	list, err := j.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	repo.listErr = errors.New("boom")
	_, err = j.List(context.Background(), "u1")
	assert.Error(t, err)
}

func TestJournal_Remaining(t *testing.T) {
	tests := []struct {
		name   string
		quota  ports.GenerationQuota
		wantN  int
		wantOK bool
	}{
		{name: "unmetered default", quota: nil},
		{name: "quota cannot report", quota: &mockQuota{allowed: true}},
		{name: "reports remaining", quota: &reportingQuota{left: 7}, wantN: 7, wantOK: true},
		{name: "reports exhausted", quota: &reportingQuota{left: 0}, wantN: 0, wantOK: true},
		{name: "disabled limit", quota: &reportingQuota{left: -1}},
		{name: "backend error", quota: &reportingQuota{leftErr: errors.New("redis down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewJournal(NewOrchestrator(nil, nil, nil), &mockMoodRepo{}, tt.quota, nil)

			n, ok := j.Remaining(context.Background(), "user-1")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantN, n)
		})
	}
}
