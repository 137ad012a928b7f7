package session

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLoginAPI struct {
	token string
	err   error
}

func (m *mockLoginAPI) Login(context.Context, string, string) (string, error) {
	return m.token, m.err
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestLogin_StoresTokenAndBuildsSession(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"userId": "u42"})
	m := NewManager(&mockLoginAPI{token: token}, NewMemoryStore())

	sess, err := m.Login(context.Background(), "cashier@jicus.ph", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "u42", sess.UserID)
	assert.Equal(t, token, sess.Token)
	assert.True(t, sess.IsAuthenticated)

	current, err := m.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u42", current.UserID)
}

func TestLogin_FailureClearsPartialSession(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "stale-token"))

	m := NewManager(&mockLoginAPI{err: errors.New("bad credentials")}, store)

	_, err := m.Login(context.Background(), "cashier@jicus.ph", "wrong")
	require.Error(t, err)

	_, err = store.Get(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestLogin_TokenWithoutUserIDClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "someone"})
	store := NewMemoryStore()
	m := NewManager(&mockLoginAPI{token: token}, store)

	_, err := m.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)

	_, err = store.Get(context.Background())
	assert.ErrorIs(t, err, ErrNoToken, "a token we cannot use must not be persisted")
}

func TestCurrent_NoToken(t *testing.T) {
	m := NewManager(&mockLoginAPI{}, NewMemoryStore())

	_, err := m.Current(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogout(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"userId": "u1"})
	m := NewManager(&mockLoginAPI{token: token}, NewMemoryStore())

	_, err := m.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	require.NoError(t, m.Logout(context.Background()))

	_, err = m.Current(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
