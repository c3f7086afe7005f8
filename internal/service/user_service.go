package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
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

// UserCreateInput carries an administrative account creation.
type UserCreateInput struct {
	Username    string
	Password    string
	Email       string
	Permissions []domain.Permission
}

// UserUpdateInput carries a profile update. Nil fields are left unchanged.
type UserUpdateInput struct {
	Username    *string
	Password    *string
	Email       *string
	Permissions []domain.Permission
}

// UserService is the CRUD collaborator behind the guard.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Get returns the account with the given id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return user, nil
}

// Create adds an account administratively. The password is hashed before it
// is stored, same as signup.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
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
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. When the email becomes absent or changes,
// permissions fall back to the default set.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, err
	}

	previousEmail := user.Email

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if len(input.Permissions) > 0 {
		user.Permissions = input.Permissions
	}

	if user.Email == "" || user.Email != previousEmail {
		user.Permissions = domain.DefaultPermissions()
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventUserUpdated,
		UserID:   user.ID,
		Username: user.Username,
	})

	return user, nil
}

// Delete removes the account with the given id.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventUserDeleted,
		UserID:   user.ID,
		Username: user.Username,
	})

	return user, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func notFound(id string) error {
	return apperrors.NewDomainError("NOT_FOUND", fmt.Sprintf("Cannot find user with id: %s", id), http.StatusNotFound, nil)
}
