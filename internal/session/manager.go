package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FransManlangit/jicus-pos/internal/domain"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// LoginAPI is the slice of the backend client the manager needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Manager owns the login/logout lifecycle and turns the stored token into an
// explicit Session value for callers.
type Manager struct {
	api   LoginAPI
	store TokenStore
}

func NewManager(api LoginAPI, store TokenStore) *Manager {
	return &Manager{api: api, store: store}
}

// Login exchanges credentials for a token and persists it. A failed login
// clears any partial session so the user is back at the login form with a
// clean slate.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		_ = m.store.Delete(ctx)
		return nil, err
	}
	sess, err := sessionFromToken(token)
	if err != nil {
		_ = m.store.Delete(ctx)
		return nil, err
	}
	if err := m.store.Set(ctx, token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return sess, nil
}

// Current rebuilds the session from the stored token, if any.
func (m *Manager) Current(ctx context.Context) (*domain.Session, error) {
	token, err := m.store.Get(ctx)
	if errors.Is(err, ErrNoToken) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	return sessionFromToken(token)
}

func (m *Manager) Logout(ctx context.Context) error {
	return m.store.Delete(ctx)
}

// sessionFromToken decodes the identity claims without verifying the
// signature; verification is the backend's job, the client only needs the
// userId baked into the token it was handed.
func sessionFromToken(token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	id, _ := claims["userId"].(string)
	if id == "" {
		return nil, errors.New("token carries no userId claim")
	}
	return &domain.Session{UserID: id, Token: token, IsAuthenticated: true}, nil
}
