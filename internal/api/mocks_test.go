package api

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/service"
)

// stubRegistrationService implements RegistrationService with function
// fields, in the manner of the mocks package.
type stubRegistrationService struct {
	RegisterFn             func(ctx context.Context, params service.RegisterParams) (*domain.User, error)
	RegisterWithLanguageFn func(ctx context.Context, params service.RegisterWithLanguageParams) (*domain.User, *domain.LanguageProficiency, error)
	LoginFn                func(ctx context.Context, email, password string) (*domain.User, string, error)
}

func (s *stubRegistrationService) Register(ctx context.Context, params service.RegisterParams) (*domain.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, params)
	}
	return nil, errors.New("Register not stubbed")
}

func (s *stubRegistrationService) RegisterWithLanguage(ctx context.Context, params service.RegisterWithLanguageParams) (*domain.User, *domain.LanguageProficiency, error) {
	if s.RegisterWithLanguageFn != nil {
		return s.RegisterWithLanguageFn(ctx, params)
	}
	return nil, nil, errors.New("RegisterWithLanguage not stubbed")
}

func (s *stubRegistrationService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return nil, "", errors.New("Login not stubbed")
}

// stubLanguageService implements LanguageService with function fields.
type stubLanguageService struct {
	UpsertFn     func(ctx context.Context, params service.UpsertLanguageParams) (*service.UpsertLanguageResult, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.LanguageProficiency, error)
	DeleteFn     func(ctx context.Context, user *domain.User, language domain.Language) error
	GetActiveFn  func(ctx context.Context, user *domain.User) (*domain.LanguageProficiency, error)
}

func (s *stubLanguageService) Upsert(ctx context.Context, params service.UpsertLanguageParams) (*service.UpsertLanguageResult, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, params)
	}
	return nil, errors.New("Upsert not stubbed")
}

func (s *stubLanguageService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LanguageProficiency, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return []*domain.LanguageProficiency{}, nil
}

func (s *stubLanguageService) Delete(ctx context.Context, user *domain.User, language domain.Language) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, user, language)
	}
	return errors.New("Delete not stubbed")
}

func (s *stubLanguageService) GetActive(ctx context.Context, user *domain.User) (*domain.LanguageProficiency, error) {
	if s.GetActiveFn != nil {
		return s.GetActiveFn(ctx, user)
	}
	return nil, nil
}
