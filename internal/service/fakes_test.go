package service

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/notes-auth-service/internal/domain"
)

type fakeUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	f.nextID++
	user.ID = "user-" + strconv.Itoa(f.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(f.users))
	for _, user := range f.users {
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

type fakeTokenRepo struct {
	pairs   map[string]*domain.TokenPair // keyed by user id
	creates int
	upserts int
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{pairs: make(map[string]*domain.TokenPair)}
}

func (f *fakeTokenRepo) Create(ctx context.Context, pair *domain.TokenPair) error {
	f.creates++
	pair.ID = "pair-" + pair.UserID
	pair.CreatedAt = time.Now()
	pair.UpdatedAt = pair.CreatedAt
	stored := *pair
	f.pairs[pair.UserID] = &stored
	return nil
}

func (f *fakeTokenRepo) Upsert(ctx context.Context, pair *domain.TokenPair) error {
	f.upserts++
	pair.ID = "pair-" + pair.UserID
	pair.UpdatedAt = time.Now()
	stored := *pair
	f.pairs[pair.UserID] = &stored
	return nil
}

func (f *fakeTokenRepo) GetByUserID(ctx context.Context, userID string) (*domain.TokenPair, error) {
	pair, ok := f.pairs[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *pair
	return &copied, nil
}
