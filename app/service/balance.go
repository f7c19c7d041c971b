package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/vibast-solutions/ms-go-records/app/entity"
	"github.com/vibast-solutions/ms-go-records/app/metrics"
)

const balancesStore = "balances"

type BalanceRepository interface {
	Create(ctx context.Context, balance *entity.Balance) error
	ListByOwner(ctx context.Context, owner string) ([]*entity.Balance, error)
	ListByOwnerAndUser(ctx context.Context, owner, userID string) ([]*entity.Balance, error)
	FindByIDAndOwner(ctx context.Context, id, owner string) (*entity.Balance, error)
	UpdateAmount(ctx context.Context, id, owner string, amount int64) (int64, error)
	Delete(ctx context.Context, id, owner string) (int64, error)
}

// BalanceService stores independent signed amounts. It never sums rows and
// never checks that the referenced user exists.
type BalanceService interface {
	CreateBalance(ctx context.Context, owner, userID string, amount int64) (string, error)
	// ListBalances returns every balance of the owner, or only those
	// referencing userID when it is not empty.
	ListBalances(ctx context.Context, owner, userID string) ([]*entity.Balance, error)
	GetBalance(ctx context.Context, owner, balanceID string) (*entity.Balance, error)
	UpdateBalance(ctx context.Context, owner, balanceID string, amount int64) error
	DeleteBalance(ctx context.Context, owner, balanceID string) error
}

type balanceService struct {
	balanceRepo BalanceRepository
}

func NewBalanceService(balanceRepo BalanceRepository) BalanceService {
	return &balanceService{balanceRepo: balanceRepo}
}

func (s *balanceService) CreateBalance(ctx context.Context, owner, userID string, amount int64) (balanceID string, err error) {
	defer func() { metrics.RecordStoreOperation(balancesStore, "create", outcomeOf(err)) }()

	if owner == "" {
		return "", ErrUnauthorized
	}
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	balance := &entity.Balance{
		ID:     ulid.Make().String(),
		Owner:  owner,
		UserID: userID,
		Amount: amount,
	}
	if err = s.balanceRepo.Create(ctx, balance); err != nil {
		return "", err
	}

	return balance.ID, nil
}

func (s *balanceService) ListBalances(ctx context.Context, owner, userID string) (balances []*entity.Balance, err error) {
	defer func() { metrics.RecordStoreOperation(balancesStore, "list", outcomeOf(err)) }()

	if owner == "" {
		return nil, ErrUnauthorized
	}
	if userID != "" {
		return s.balanceRepo.ListByOwnerAndUser(ctx, owner, userID)
	}
	return s.balanceRepo.ListByOwner(ctx, owner)
}

func (s *balanceService) GetBalance(ctx context.Context, owner, balanceID string) (balance *entity.Balance, err error) {
	defer func() { metrics.RecordStoreOperation(balancesStore, "get", outcomeOf(err)) }()

	if owner == "" {
		return nil, ErrUnauthorized
	}
	balance, err = s.balanceRepo.FindByIDAndOwner(ctx, balanceID, owner)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, ErrNotFound
	}
	return balance, nil
}

func (s *balanceService) UpdateBalance(ctx context.Context, owner, balanceID string, amount int64) (err error) {
	defer func() { metrics.RecordStoreOperation(balancesStore, "update", outcomeOf(err)) }()

	if owner == "" {
		return ErrUnauthorized
	}
	rows, err := s.balanceRepo.UpdateAmount(ctx, balanceID, owner, amount)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *balanceService) DeleteBalance(ctx context.Context, owner, balanceID string) (err error) {
	defer func() { metrics.RecordStoreOperation(balancesStore, "delete", outcomeOf(err)) }()

	if owner == "" {
		return ErrUnauthorized
	}
	rows, err := s.balanceRepo.Delete(ctx, balanceID, owner)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
