package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/vibast-solutions/ms-go-records/app/entity"
	"github.com/vibast-solutions/ms-go-records/app/meta"
	"github.com/vibast-solutions/ms-go-records/app/metrics"
	"github.com/vibast-solutions/ms-go-records/app/repository"
)

const (
	DefaultNameMaxLength = 100
	DefaultMetaMaxLength = 1000
)

const usersStore = "users"

// Limits bounds user fields. Values over a limit are rejected, never
// truncated.
type Limits struct {
	NameMaxLength int
	MetaMaxLength int
}

func DefaultLimits() Limits {
	return Limits{NameMaxLength: DefaultNameMaxLength, MetaMaxLength: DefaultMetaMaxLength}
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	ListByOwner(ctx context.Context, owner string) ([]*entity.User, error)
	FindByIDAndOwner(ctx context.Context, id, owner string) (*entity.User, error)
	Update(ctx context.Context, id, owner string, changes repository.UserChanges) (int64, error)
	Delete(ctx context.Context, id, owner string) (int64, error)
}

// UserUpdate carries the fields to change. A nil field is left untouched.
type UserUpdate struct {
	Name *string
	Meta *meta.Pairs
}

type UserService interface {
	CreateUser(ctx context.Context, owner, name string, pairs meta.Pairs) (string, error)
	ListUsers(ctx context.Context, owner string) ([]*entity.User, error)
	GetUser(ctx context.Context, owner, userID string) (*entity.User, error)
	UpdateUser(ctx context.Context, owner, userID string, update UserUpdate) error
	DeleteUser(ctx context.Context, owner, userID string) error
}

type userService struct {
	userRepo UserRepository
	limits   Limits
}

func NewUserService(userRepo UserRepository, limits Limits) UserService {
	return &userService{userRepo: userRepo, limits: limits}
}

func (s *userService) CreateUser(ctx context.Context, owner, name string, pairs meta.Pairs) (userID string, err error) {
	defer func() { metrics.RecordStoreOperation(usersStore, "create", outcomeOf(err)) }()

	if owner == "" {
		return "", ErrUnauthorized
	}
	if err = s.validateName(name); err != nil {
		return "", err
	}
	if pairs == nil {
		pairs = meta.Pairs{}
	}
	if err = s.validateMeta(pairs); err != nil {
		return "", err
	}

	user := &entity.User{
		ID:    ulid.Make().String(),
		Name:  name,
		Meta:  pairs,
		Owner: owner,
	}
	if err = s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	return user.ID, nil
}

func (s *userService) ListUsers(ctx context.Context, owner string) (users []*entity.User, err error) {
	defer func() { metrics.RecordStoreOperation(usersStore, "list", outcomeOf(err)) }()

	if owner == "" {
		return nil, ErrUnauthorized
	}
	return s.userRepo.ListByOwner(ctx, owner)
}

func (s *userService) GetUser(ctx context.Context, owner, userID string) (user *entity.User, err error) {
	defer func() { metrics.RecordStoreOperation(usersStore, "get", outcomeOf(err)) }()

	if owner == "" {
		return nil, ErrUnauthorized
	}
	user, err = s.userRepo.FindByIDAndOwner(ctx, userID, owner)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, owner, userID string, update UserUpdate) (err error) {
	defer func() { metrics.RecordStoreOperation(usersStore, "update", outcomeOf(err)) }()

	if owner == "" {
		return ErrUnauthorized
	}
	if update.Name == nil && update.Meta == nil {
		return fmt.Errorf("%w: name or meta is required", ErrValidation)
	}
	if update.Name != nil {
		if err = s.validateName(*update.Name); err != nil {
			return err
		}
	}
	if update.Meta != nil {
		if err = s.validateMeta(*update.Meta); err != nil {
			return err
		}
	}

	rows, err := s.userRepo.Update(ctx, userID, owner, repository.UserChanges{
		Name: update.Name,
		Meta: update.Meta,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, owner, userID string) (err error) {
	defer func() { metrics.RecordStoreOperation(usersStore, "delete", outcomeOf(err)) }()

	if owner == "" {
		return ErrUnauthorized
	}
	rows, err := s.userRepo.Delete(ctx, userID, owner)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *userService) validateName(name string) error {
	if n := utf8.RuneCountInString(name); n > s.limits.NameMaxLength {
		return fmt.Errorf("%w: name must be at most %d characters, got %d", ErrValidation, s.limits.NameMaxLength, n)
	}
	return nil
}

func (s *userService) validateMeta(pairs meta.Pairs) error {
	if n := utf8.RuneCountInString(pairs.Encode()); n > s.limits.MetaMaxLength {
		return fmt.Errorf("%w: meta must be at most %d characters, got %d", ErrValidation, s.limits.MetaMaxLength, n)
	}
	return nil
}
