package memory

import (
	"context"
	"fmt"
	"sync"

	"tasknotes-be/internal/entity"
	"tasknotes-be/internal/repository/contract"
	"tasknotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
	order []uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[uuid.UUID]*entity.User),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}
	cp := *user
	r.users[user.Id] = &cp
	r.order = append(r.order, user.Id)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Id]; !exists {
		return fmt.Errorf("user %s does not exist", user.Id)
	}
	cp := *user
	r.users[user.Id] = &cp
	return nil
}

func (r *UserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *UserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.User
	for _, id := range r.order {
		u := r.users[id]
		matched := true
		for _, spec := range specs {
			ok, err := userMatches(spec, u)
			if err != nil {
				return nil, err
			}
			if !ok {
				matched = false
				break
			}
		}
		if matched {
			cp := *u
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *UserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func userMatches(spec specification.Specification, u *entity.User) (bool, error) {
	switch s := spec.(type) {
	case specification.ByID:
		return u.Id == s.ID, nil
	case specification.ByIDs:
		for _, id := range s.IDs {
			if u.Id == id {
				return true, nil
			}
		}
		return false, nil
	case specification.ByEmail:
		return u.Email == s.Email, nil
	case specification.OrderBy:
		return true, nil
	default:
		return false, fmt.Errorf("memory user repository: unsupported specification %T", spec)
	}
}

var _ contract.UserRepository = (*UserRepository)(nil)
