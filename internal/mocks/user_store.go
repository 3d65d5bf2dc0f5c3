package mocks

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	mu sync.Mutex

	// Function fields for customizable behavior
	CreateFn                    func(ctx context.Context, user *domain.User) error
	GetByIDFn                   func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn                func(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameFn             func(ctx context.Context, username string) (*domain.User, error)
	SetActiveLearningLanguageFn func(ctx context.Context, userID, proficiencyID uuid.UUID) error

	// Data for the default in-memory implementation, keyed by user ID.
	Users map[uuid.UUID]*domain.User

	// Errors returned by the default implementation when set.
	CreateError error

	// Call counters for test verification.
	CreateCalls int
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[uuid.UUID]*domain.User),
	}
}

// AddUser seeds the in-memory store with an existing user.
func (m *MockUserStore) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.ID] = user
}

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Users {
		if strings.EqualFold(existing.Email, user.Email) {
			return store.ErrEmailExists
		}
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	m.Users[user.ID] = user
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements store.UserStore.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByUsername implements store.UserStore.
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// SetActiveLearningLanguage implements store.UserStore.
func (m *MockUserStore) SetActiveLearningLanguage(ctx context.Context, userID, proficiencyID uuid.UUID) error {
	if m.SetActiveLearningLanguageFn != nil {
		return m.SetActiveLearningLanguageFn(ctx, userID, proficiencyID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	id := proficiencyID
	user.ActiveLearningLanguageID = &id
	return nil
}

// WithTx implements store.UserStore. The mock has no real transactions, so
// it returns itself; transactional tests verify rollback by checking that
// failed operations left no state behind.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
