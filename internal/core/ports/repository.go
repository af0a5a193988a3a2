package ports

import (
	"context"

	"github.com/kmod24/moodboard/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u domain.User) error
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type MoodRepository interface {
	SaveMood(ctx context.Context, m domain.MoodEntry) error
	ListMoods(ctx context.Context, userID string) ([]domain.MoodSummary, error)
	GetMood(ctx context.Context, id string) (domain.MoodEntry, error)
}
