// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwieland/staffdir/internal/auth"
	"github.com/nwieland/staffdir/internal/platform/apperr"
	"github.com/nwieland/staffdir/internal/platform/sec"
)

// fakeUserRepository is an in-memory UserRepository keyed by ID.
type fakeUserRepository struct {
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (f *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperr.NotFound("Account")
	}
	user.PasswordHash = newHash
	return nil
}

func (f *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

// fakeSessionRepository keeps sessions by token hash.
type fakeSessionRepository struct {
	sessions map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*auth.Session)}
}

func (f *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	f.sessions[session.TokenHash] = session
	return nil
}

func (f *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	if session, ok := f.sessions[tokenHash]; ok {
		return session, nil
	}
	return nil, apperr.NotFound("Session")
}

func (f *fakeSessionRepository) Revoke(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for hash, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, hash)
		}
	}
	return nil
}

// fakeResetTokens keeps reset tokens by hash.
type fakeResetTokens struct {
	tokens map[string]string
}

func newFakeResetTokens() *fakeResetTokens {
	return &fakeResetTokens{tokens: make(map[string]string)}
}

func (f *fakeResetTokens) Set(_ context.Context, token, userID string, _ time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeResetTokens) Get(_ context.Context, token string) (string, error) {
	if userID, ok := f.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Token")
}

func (f *fakeResetTokens) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

// stubTokenProvider returns a fixed access token.
type stubTokenProvider struct{}

func (stubTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "jwt-for-" + userID, nil
}

type testEnv struct {
	users    *fakeUserRepository
	sessions *fakeSessionRepository
	resets   *fakeResetTokens
	service  *auth.Service
}

func newTestEnv() *testEnv {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	resets := newFakeResetTokens()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &testEnv{
		users:    users,
		sessions: sessions,
		resets:   resets,
		service:  auth.NewService(users, sessions, resets, stubTokenProvider{}, logger),
	}
}

/*
TestService_Register checks account creation and the uniqueness rules.
*/
func TestService_Register(t *testing.T) {
	env := newTestEnv()

	user, err := env.service.Register(context.Background(), auth.RegisterInput{
		Username: "nwieland",
		Email:    "nils@staffdir.app",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	_, err = env.service.Register(context.Background(), auth.RegisterInput{
		Username: "someone-else",
		Email:    "nils@staffdir.app",
		Password: "irrelevant-password",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_Login covers the credential checks and that a successful login
creates exactly one refresh session.
*/
func TestService_Login(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Username: "nwieland",
		Email:    "nils@staffdir.app",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	t.Run("wrong_password", func(t *testing.T) {
		_, err := env.service.Login(context.Background(), auth.LoginInput{
			Login:    "nwieland",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	})

	t.Run("by_username", func(t *testing.T) {
		session, err := env.service.Login(context.Background(), auth.LoginInput{
			Login:    "nwieland",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Len(t, env.sessions.sessions, 1)
	})

	t.Run("by_email", func(t *testing.T) {
		_, err := env.service.Login(context.Background(), auth.LoginInput{
			Login:    "nils@staffdir.app",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
	})
}

/*
TestService_RefreshSession checks token rotation: the presented refresh token
is revoked and the new one is a different, working token.
*/
func TestService_RefreshSession(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Username: "nwieland",
		Email:    "nils@staffdir.app",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	first, err := env.service.Login(context.Background(), auth.LoginInput{
		Login:    "nwieland",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	second, err := env.service.RefreshSession(context.Background(), first.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Replaying the rotated-out token must fail.
	_, err = env.service.RefreshSession(context.Background(), first.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Logout checks revocation and that logout is idempotent.
*/
func TestService_Logout(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Username: "nwieland",
		Email:    "nils@staffdir.app",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	session, err := env.service.Login(context.Background(), auth.LoginInput{
		Login:    "nwieland",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, env.sessions.sessions)

	// Second logout with the same token is a no-op, not an error.
	require.NoError(t, env.service.Logout(context.Background(), session.RefreshToken))
}

/*
TestService_PasswordReset walks the full forgot/reset flow and checks that a
reset kills every active session of the account.
*/
func TestService_PasswordReset(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Register(context.Background(), auth.RegisterInput{
		Username: "nwieland",
		Email:    "nils@staffdir.app",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Login:    "nwieland",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	t.Run("unknown_email_is_silent", func(t *testing.T) {
		token, err := env.service.ForgotPassword(context.Background(), "nobody@staffdir.app")
		require.NoError(t, err)
		assert.Empty(t, token)
		assert.Empty(t, env.resets.tokens)
	})

	token, err := env.service.ForgotPassword(context.Background(), "nils@staffdir.app")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, env.service.ResetPassword(context.Background(), token, "a brand new password"))

	// Old password no longer works, new one does, old sessions are gone.
	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Login:    "nwieland",
		Password: "correct horse battery",
	})
	require.Error(t, err)

	_, err = env.service.Login(context.Background(), auth.LoginInput{
		Login:    "nwieland",
		Password: "a brand new password",
	})
	require.NoError(t, err)
	assert.Len(t, env.sessions.sessions, 1)

	// The token is single use.
	err = env.service.ResetPassword(context.Background(), token, "another password")
	require.Error(t, err)
}
