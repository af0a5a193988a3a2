package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/kmod24/moodboard/internal/core/domain"
	"github.com/kmod24/moodboard/internal/core/ports"
)

// NoQuota lets every generation through.
type NoQuota struct{}

func (NoQuota) Consume(ctx context.Context, userID string) (bool, error) { return true, nil }

// Journal records moods and the dayboards generated for them.
type Journal struct {
	dayboard *Orchestrator
	moods    ports.MoodRepository
	quota    ports.GenerationQuota
	now      func() time.Time
	newID    func() string
	logger   *zap.Logger
}

func NewJournal(dayboard *Orchestrator, moods ports.MoodRepository, quota ports.GenerationQuota, logger *zap.Logger) *Journal {
	if quota == nil {
		quota = NoQuota{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{
		dayboard: dayboard,
		moods:    moods,
		quota:    quota,
		now:      time.Now,
		newID:    func() string { return ulid.Make().String() },
		logger:   logger,
	}
}

// Create validates the mood word, builds its dayboard and stores the entry.
func (j *Journal) Create(ctx context.Context, userID, word, note string) (domain.MoodEntry, error) {
	word, err := domain.ValidateMoodWord(word)
	if err != nil {
		return domain.MoodEntry{}, err
	}

	allowed, err := j.quota.Consume(ctx, userID)
	switch {
	case err != nil:
		// quota backend down: keep serving rather than locking users out
		j.logger.Warn("generation quota unavailable", zap.String("user_id", userID), zap.Error(err))
	case !allowed:
		return domain.MoodEntry{}, domain.ErrQuotaExceeded
	}

	entry := domain.MoodEntry{
		ID:        j.newID(),
		UserID:    userID,
		MoodWord:  word,
		Note:      strings.TrimSpace(note),
		CreatedAt: j.now().UTC(),
		Bundle:    j.dayboard.BuildDayboard(ctx, word),
	}

	if err := j.moods.SaveMood(ctx, entry); err != nil {
		return domain.MoodEntry{}, fmt.Errorf("service: failed to save mood: %w", err)
	}
	return entry, nil
}

// Remaining reports how many generations the user has left today. ok is false
// when the quota is unmetered or cannot report.
func (j *Journal) Remaining(ctx context.Context, userID string) (int, bool) {
	reporter, isReporter := j.quota.(ports.QuotaReporter)
	if !isReporter {
		return 0, false
	}
	left, err := reporter.Remaining(ctx, userID)
	if err != nil {
		j.logger.Warn("generation quota unavailable", zap.String("user_id", userID), zap.Error(err))
		return 0, false
	}
	if left < 0 {
		return 0, false
	}
	return left, true
}

// List returns the user's entries, newest first.
func (j *Journal) List(ctx context.Context, userID string) ([]domain.MoodSummary, error) {
	moods, err := j.moods.ListMoods(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list moods: %w", err)
	}
	return moods, nil
}

// Get returns one entry. Entries owned by someone else are reported as not
// found.
func (j *Journal) Get(ctx context.Context, userID, id string) (domain.MoodEntry, error) {
	if strings.TrimSpace(id) == "" {
		return domain.MoodEntry{}, domain.ErrNotFound
	}
	entry, err := j.moods.GetMood(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.MoodEntry{}, domain.ErrNotFound
		}
		return domain.MoodEntry{}, fmt.Errorf("service: failed to load mood: %w", err)
	}
	if entry.UserID != userID {
		return domain.MoodEntry{}, domain.ErrNotFound
	}
	return entry, nil
}
