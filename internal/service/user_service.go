package service

import (
	"context"
	"time"

	"tasknotes-be/internal/dto"
	"tasknotes-be/internal/pkg/apperror"
	"tasknotes-be/internal/repository/specification"
	"tasknotes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const directoryCacheKey = "user_directory"

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
	ListUsers(ctx context.Context) ([]dto.DirectoryUserDTO, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	// directory caches the assignee picker listing. Registration is rare
	// compared to board loads, so a short TTL is enough.
	directory *cache.Cache
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
		directory:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("Unauthorized, no user found")
	}

	return &dto.UserDTO{
		Id:        user.Id,
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedOn: user.CreatedOn,
	}, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]dto.DirectoryUserDTO, error) {
	if cached, found := s.directory.Get(directoryCacheKey); found {
		return cached.([]dto.DirectoryUserDTO), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "full_name"})
	if err != nil {
		return nil, err
	}

	listing := make([]dto.DirectoryUserDTO, 0, len(users))
	for _, user := range users {
		listing = append(listing, dto.DirectoryUserDTO{
			Id:       user.Id,
			FullName: user.FullName,
			Email:    user.Email,
		})
	}

	s.directory.Set(directoryCacheKey, listing, cache.DefaultExpiration)
	return listing, nil
}
