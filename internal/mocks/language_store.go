package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/store"
)

// MockLanguageProficiencyStore implements store.LanguageProficiencyStore
// for testing.
type MockLanguageProficiencyStore struct {
	mu sync.Mutex

	// Function fields for customizable behavior
	CreateFn               func(ctx context.Context, proficiency *domain.LanguageProficiency) error
	GetByUserAndLanguageFn func(ctx context.Context, userID uuid.UUID, language domain.Language) (*domain.LanguageProficiency, error)
	UpdateLevelFn          func(ctx context.Context, id uuid.UUID, level domain.LanguageLevel) error
	ListByUserFn           func(ctx context.Context, userID uuid.UUID) ([]*domain.LanguageProficiency, error)
	DeleteFn               func(ctx context.Context, id uuid.UUID) error

	// Records backs the default in-memory implementation in insertion
	// order, which stands in for the real store's creation-time ordering.
	Records []*domain.LanguageProficiency

	// Errors returned by the default implementation when set.
	CreateError error

	// Call counters for test verification.
	CreateCalls      int
	UpdateLevelCalls int
}

var _ store.LanguageProficiencyStore = (*MockLanguageProficiencyStore)(nil)

// NewMockLanguageProficiencyStore creates a mock store with initialized defaults.
func NewMockLanguageProficiencyStore() *MockLanguageProficiencyStore {
	return &MockLanguageProficiencyStore{}
}

// AddRecord seeds the in-memory store with an existing record.
func (m *MockLanguageProficiencyStore) AddRecord(record *domain.LanguageProficiency) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, record)
}

// Create implements store.LanguageProficiencyStore.
func (m *MockLanguageProficiencyStore) Create(ctx context.Context, proficiency *domain.LanguageProficiency) error {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, proficiency)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Records {
		if existing.UserID == proficiency.UserID && existing.Language == proficiency.Language {
			return store.ErrLanguageRecordExists
		}
	}
	m.Records = append(m.Records, proficiency)
	return nil
}

// GetByUserAndLanguage implements store.LanguageProficiencyStore.
func (m *MockLanguageProficiencyStore) GetByUserAndLanguage(ctx context.Context, userID uuid.UUID, language domain.Language) (*domain.LanguageProficiency, error) {
	if m.GetByUserAndLanguageFn != nil {
		return m.GetByUserAndLanguageFn(ctx, userID, language)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.Records {
		if record.UserID == userID && record.Language == language {
			return record, nil
		}
	}
	return nil, store.ErrLanguageRecordNotFound
}

// UpdateLevel implements store.LanguageProficiencyStore.
func (m *MockLanguageProficiencyStore) UpdateLevel(ctx context.Context, id uuid.UUID, level domain.LanguageLevel) error {
	m.mu.Lock()
	m.UpdateLevelCalls++
	m.mu.Unlock()

	if m.UpdateLevelFn != nil {
		return m.UpdateLevelFn(ctx, id, level)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.Records {
		if record.ID == id {
			record.Level = level
			return nil
		}
	}
	return store.ErrLanguageRecordNotFound
}

// ListByUser implements store.LanguageProficiencyStore.
func (m *MockLanguageProficiencyStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LanguageProficiency, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]*domain.LanguageProficiency, 0)
	for _, record := range m.Records {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

// Delete implements store.LanguageProficiencyStore.
func (m *MockLanguageProficiencyStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, record := range m.Records {
		if record.ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return store.ErrLanguageRecordNotFound
}

// WithTx implements store.LanguageProficiencyStore. The mock has no real
// transactions, so it returns itself.
func (m *MockLanguageProficiencyStore) WithTx(tx *sql.Tx) store.LanguageProficiencyStore {
	return m
}
