package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/notes-auth-service/internal/config"
	"github.com/spec-kit/notes-auth-service/internal/domain"
	apperrors "github.com/spec-kit/notes-auth-service/pkg/util/errorutil"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			AccessTokenSecret:     "access-secret",
			RefreshTokenSecret:    "refresh-secret",
			AccessTokenTTLMinutes: 60,
			RefreshTokenTTLDays:   30,
			BcryptCost:            bcrypt.MinCost,
		},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo:  users,
		TokenRepo: tokens,
		Logger:    zap.NewNop(),
	})
	return svc, users, tokens
}

func TestSignup_IssuesPairWithExpiryWindows(t *testing.T) {
	t.Parallel()
	svc, _, tokens := newTestAuthService(t)

	user, pair, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice",
		Password: "p@ss1234",
		Email:    "a@x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.DefaultPermissions(), user.Permissions)
	assert.NotEqual(t, "p@ss1234", user.PasswordHash)

	now := time.Now()
	accessExp := time.UnixMilli(pair.AccessToken.ExpiresAt)
	refreshExp := time.UnixMilli(pair.RefreshToken.ExpiresAt)
	assert.WithinDuration(t, now.Add(time.Hour), accessExp, 5*time.Second)
	assert.WithinDuration(t, now.Add(30*24*time.Hour), refreshExp, 5*time.Second)
	assert.Less(t, pair.AccessToken.ExpiresAt, pair.RefreshToken.ExpiresAt)

	stored, err := tokens.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.AccessToken.Token, stored.AccessToken.Token)
	assert.Equal(t, 1, tokens.creates)
}

func TestSignup_UsernameTaken(t *testing.T) {
	t.Parallel()
	svc, _, tokens := newTestAuthService(t)

	_, _, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "p@ss1234", Email: "a@x.com"})
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "other", Email: "b@x.com"})
	assert.Equal(t, ErrUsernameTaken, err)
	assert.Equal(t, "Username already taken", apperrors.ToDomainError(err).Message)

	// no second pair was created
	assert.Equal(t, 1, tokens.creates)
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuthService(t)

	_, _, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "p@ss1234", Email: "a@x.com"})
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), "alice", "wrong")
	_, _, unknownUser := svc.Login(context.Background(), "nobody", "p@ss1234")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)

	// wrong password and unknown username are externally indistinguishable
	assert.Equal(t, "Wrong username or password", apperrors.ToDomainError(wrongPassword).Message)
	assert.Equal(t,
		apperrors.ToDomainError(wrongPassword).Message,
		apperrors.ToDomainError(unknownUser).Message)
}

func TestLogin_ReplacesStoredPair(t *testing.T) {
	t.Parallel()
	svc, _, tokens := newTestAuthService(t)

	user, signupPair, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "p@ss1234", Email: "a@x.com"})
	require.NoError(t, err)

	_, loginPair, err := svc.Login(context.Background(), "alice", "p@ss1234")
	require.NoError(t, err)
	assert.Equal(t, 1, tokens.upserts)

	stored, err := tokens.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, loginPair.RefreshToken.Token, stored.RefreshToken.Token)

	// the earlier pair is gone from the store, but the old access token
	// remains cryptographically valid until its own expiry
	claims, err := svc.TokenManager().VerifyAccessToken(signupPair.AccessToken.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestRefresh_IssuesFreshAccessToken(t *testing.T) {
	t.Parallel()
	svc, _, tokens := newTestAuthService(t)

	user, pair, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "p@ss1234", Email: "a@x.com"})
	require.NoError(t, err)
	upsertsBefore := tokens.upserts

	record, err := svc.Refresh(context.Background(), pair.RefreshToken.Token)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(time.Hour), time.UnixMilli(record.ExpiresAt), 5*time.Second)

	claims, err := svc.TokenManager().VerifyAccessToken(record.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	// refresh neither rotates the refresh token nor rewrites the store
	_, err = svc.TokenManager().VerifyRefreshToken(pair.RefreshToken.Token)
	require.NoError(t, err)
	assert.Equal(t, upsertsBefore, tokens.upserts)

	stored, err := tokens.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, pair.AccessToken.Token, stored.AccessToken.Token)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuthService(t)

	_, pair, err := svc.Signup(context.Background(), SignupInput{Username: "alice", Password: "p@ss1234", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.AccessToken.Token)
	require.Error(t, err)
	assert.Equal(t, "Invalid token", apperrors.ToDomainError(err).Message)
}

func TestRefresh_RejectsMalformedToken(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Refresh(context.Background(), "not.a.jwt")
	require.Error(t, err)
	assert.Equal(t, "Invalid token", apperrors.ToDomainError(err).Message)
}
