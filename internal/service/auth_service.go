package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/notes-auth-service/internal/auth"
	"github.com/spec-kit/notes-auth-service/internal/config"
	"github.com/spec-kit/notes-auth-service/internal/domain"
	"github.com/spec-kit/notes-auth-service/internal/events"
	"github.com/spec-kit/notes-auth-service/internal/repository"
	apperrors "github.com/spec-kit/notes-auth-service/pkg/util/errorutil"
)

// External auth failures. "no such user" and "wrong password" share one
// message so usernames cannot be enumerated through login.
var (
	ErrInvalidCredentials = apperrors.NewUnauthorized("Wrong username or password")
	ErrUsernameTaken      = apperrors.NewConflict("Username already taken", nil)
	ErrInvalidToken       = apperrors.NewUnauthorized("Invalid token")
	ErrTokenNotFound      = apperrors.NewUnauthorized("Token not found")
)

// SignupInput carries a new account request.
type SignupInput struct {
	Username    string
	Password    string
	Email       string
	Permissions []domain.Permission
}

// AuthService orchestrates the signup, login and refresh flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     repository.TokenRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	TokenRepo  repository.TokenRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.TokenRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a new account and its initial token pair.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.User, *domain.TokenPair, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, nil, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	permissions := input.Permissions
	if len(permissions) == 0 {
		permissions = domain.DefaultPermissions()
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Permissions:  permissions,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.tokens.Create(ctx, pair); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventUserRegistered,
		UserID:   user.ID,
		Username: user.Username,
		Payload:  events.UserRegisteredPayload{Email: user.Email},
	})

	return user, pair, nil
}

// Login authenticates a user and replaces the stored token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *domain.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Info("login failed: unknown username", zap.String("username", username))
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Info("login failed: wrong password", zap.String("username", username))
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.tokens.Upsert(ctx, pair); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventUserLoggedIn,
		UserID:   user.ID,
		Username: user.Username,
	})

	return user, pair, nil
}

// Refresh verifies a refresh token and issues a new access token. The stored
// pair is not updated and the refresh token is not reissued, so a refresh
// never invalidates the presented token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenRecord, error) {
	claims, err := s.tokenMgr.VerifyRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			s.logger.Info("refresh failed: token expired")
		} else {
			s.logger.Info("refresh failed", zap.Error(err))
		}
		return nil, ErrInvalidToken
	}

	token, expiresAt, err := s.tokenMgr.IssueAccessToken(claims.Username)
	if err != nil {
		return nil, err
	}
	record := domain.NewTokenRecord(token, expiresAt)

	s.publish(ctx, events.Event{
		Type:     events.EventTokenRefreshed,
		Username: claims.Username,
		Payload:  events.TokenRefreshedPayload{AccessExpiresAt: record.ExpiresAt},
	})

	return &record, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issuePair(user *domain.User) (*domain.TokenPair, error) {
	accessToken, accessExp, err := s.tokenMgr.IssueAccessToken(user.Username)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.tokenMgr.IssueRefreshToken(user.Username)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		UserID:       user.ID,
		AccessToken:  domain.NewTokenRecord(accessToken, accessExp),
		RefreshToken: domain.NewTokenRecord(refreshToken, refreshExp),
	}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
