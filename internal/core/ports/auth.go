package ports

import "context"

// TokenIssuer mints and verifies access tokens for user IDs.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// GenerationQuota meters how many dayboards a user may generate.
type GenerationQuota interface {
	Consume(ctx context.Context, userID string) (bool, error)
}

// QuotaReporter is implemented by quotas that can report what is left today.
// A negative count means unmetered.
type QuotaReporter interface {
	Remaining(ctx context.Context, userID string) (int, error)
}
