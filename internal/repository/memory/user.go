package memory

import (
	"context"
	"sync"

	"examplar-api/internal/domain/user"
	apperrors "examplar-api/pkg/errors"
)

// UserRepository keeps users in process memory. Ids are dense and assigned
// as count+1 under the write lock.
type UserRepository struct {
	mu    sync.RWMutex
	users []user.User
}

func NewUserRepository(seed []user.User) *UserRepository {
	users := make([]user.User, len(seed))
	copy(users, seed)
	return &UserRepository{users: users}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.NotFound(errUserNotFound)
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u := user.User{
		ID:       int64(len(r.users)) + 1,
		Username: input.Username,
		Email:    input.Email,
	}
	r.users = append(r.users, u)
	return &u, nil
}
