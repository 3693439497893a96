package auth

import (
	"context"
	"errors"

	"airclient/api"
	"airclient/internal/authtoken"
	"airclient/internal/domain"
	"airclient/internal/session"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*domain.AuthData, error)
	Register(ctx context.Context, name, email, password string) error
	Logout() error
	Current() (*domain.AuthData, error)
	Expired() bool
}

// AuthAPI is the slice of the REST client this service needs.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*domain.AuthData, error)
	Register(ctx context.Context, req api.RegisterRequest) error
}

// AuthService owns the session lifecycle: construction on login, teardown
// on logout, expiry checks in between.
type AuthService struct {
	api      AuthAPI
	sessions *session.Store
}

func NewAuthService(authAPI AuthAPI, sessions *session.Store) *AuthService {
	return &AuthService{api: authAPI, sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthData, error) {
	data, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(*data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	return s.api.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: password})
}

func (s *AuthService) Logout() error {
	return s.sessions.Clear()
}

func (s *AuthService) Current() (*domain.AuthData, error) {
	data, err := s.sessions.Load()
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotAuthenticated
	}
	return data, nil
}

// Expired reports whether the stored session's token is past its expiry.
// No session counts as expired.
func (s *AuthService) Expired() bool {
	data, err := s.sessions.Load()
	if err != nil || data == nil {
		return true
	}
	return authtoken.IsExpired(data.Token)
}

var _ AuthUseCase = (*AuthService)(nil)
