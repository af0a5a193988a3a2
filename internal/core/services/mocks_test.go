package services

import (
	"context"
	"sort"
	"sync"

	"github.com/kmod24/moodboard/internal/core/domain"
)

// --- Mocks ---

// mockText is a canned TextRecommender.
type mockText struct {
	bundle domain.Bundle
	ok     bool

	mu    sync.Mutex
	calls []string
}

func (m *mockText) FetchText(ctx context.Context, mood string) (domain.Bundle, bool) {
	m.mu.Lock()
	m.calls = append(m.calls, mood)
	m.mu.Unlock()
	return m.bundle, m.ok
}

// mockImages is a canned ImageRecommender.
type mockImages struct {
	images []string

	mu        sync.Mutex
	calls     int
	lastCount int
	lastSize  string
}

func (m *mockImages) FetchImages(ctx context.Context, mood string, count int, size string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastCount = count
	m.lastSize = size
	return m.images
}

// mockMoodRepo keeps entries in memory.
type mockMoodRepo struct {
	saveErr error
	getErr  error
	listErr error

	entries map[string]domain.MoodEntry
}

func (m *mockMoodRepo) SaveMood(ctx context.Context, e domain.MoodEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.entries == nil {
		m.entries = map[string]domain.MoodEntry{}
	}
	m.entries[e.ID] = e
	return nil
}

func (m *mockMoodRepo) ListMoods(ctx context.Context, userID string) ([]domain.MoodSummary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []domain.MoodSummary{}
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, domain.MoodSummary{ID: e.ID, MoodWord: e.MoodWord, CreatedAt: e.CreatedAt})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockMoodRepo) GetMood(ctx context.Context, id string) (domain.MoodEntry, error) {
	if m.getErr != nil {
		return domain.MoodEntry{}, m.getErr
	}
	e, ok := m.entries[id]
	if !ok {
		return domain.MoodEntry{}, domain.ErrNotFound
	}
	return e, nil
}

// mockUserRepo keeps users in memory keyed by email.
type mockUserRepo struct {
	createErr error
	users     map[string]domain.User
}

func (m *mockUserRepo) CreateUser(ctx context.Context, u domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.users == nil {
		m.users = map[string]domain.User{}
	}
	if _, exists := m.users[u.Email]; exists {
		return domain.ErrEmailTaken
	}
	m.users[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

// mockTokens issues "token-<userID>".
type mockTokens struct {
	issueErr error
}

func (m *mockTokens) Issue(userID string) (string, error) {
	if m.issueErr != nil {
		return "", m.issueErr
	}
	return "token-" + userID, nil
}

func (m *mockTokens) Verify(token string) (string, error) {
	if len(token) > len("token-") {
		return token[len("token-"):], nil
	}
	return "", domain.ErrInvalidCredentials
}

// mockQuota answers Consume with fixed values.
type mockQuota struct {
	allowed bool
	err     error
	calls   int
}

func (m *mockQuota) Consume(ctx context.Context, userID string) (bool, error) {
	m.calls++
	return m.allowed, m.err
}

// reportingQuota is a mockQuota that also reports what is left.
type reportingQuota struct {
	mockQuota
	left    int
	leftErr error
}

func (m *reportingQuota) Remaining(ctx context.Context, userID string) (int, error) {
	return m.left, m.leftErr
}
