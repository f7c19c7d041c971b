package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vibast-solutions/ms-go-records/app/entity"
)

type BalanceRepository struct {
	db DBTX
}

func NewBalanceRepository(db DBTX) *BalanceRepository {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) Create(ctx context.Context, balance *entity.Balance) error {
	query := `
		INSERT INTO balances (balance_id, api_key, user_id, balance)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		balance.ID,
		balance.Owner,
		balance.UserID,
		balance.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}

func (r *BalanceRepository) ListByOwner(ctx context.Context, owner string) ([]*entity.Balance, error) {
	query := `
		SELECT balance_id, api_key, user_id, balance
		FROM balances WHERE api_key = ?
		ORDER BY balance_id
	`
	return r.list(ctx, query, owner)
}

func (r *BalanceRepository) ListByOwnerAndUser(ctx context.Context, owner, userID string) ([]*entity.Balance, error) {
	query := `
		SELECT balance_id, api_key, user_id, balance
		FROM balances WHERE api_key = ? AND user_id = ?
		ORDER BY balance_id
	`
	return r.list(ctx, query, owner, userID)
}

// FindByIDAndOwner returns nil, nil when the row is missing or belongs to a
// different key.
func (r *BalanceRepository) FindByIDAndOwner(ctx context.Context, id, owner string) (*entity.Balance, error) {
	query := `
		SELECT balance_id, api_key, user_id, balance
		FROM balances WHERE balance_id = ? AND api_key = ?
	`
	balance := &entity.Balance{}
	err := sqlx.GetContext(ctx, r.db, balance, r.db.Rebind(query), id, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find balance: %w", err)
	}
	return balance, nil
}

func (r *BalanceRepository) UpdateAmount(ctx context.Context, id, owner string, amount int64) (int64, error) {
	query := `UPDATE balances SET balance = ? WHERE balance_id = ? AND api_key = ?`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), amount, id, owner)
	if err != nil {
		return 0, fmt.Errorf("update balance: %w", err)
	}
	return result.RowsAffected()
}

func (r *BalanceRepository) Delete(ctx context.Context, id, owner string) (int64, error) {
	query := `DELETE FROM balances WHERE balance_id = ? AND api_key = ?`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id, owner)
	if err != nil {
		return 0, fmt.Errorf("delete balance: %w", err)
	}
	return result.RowsAffected()
}

func (r *BalanceRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Balance, error) {
	balances := make([]*entity.Balance, 0)
	if err := sqlx.SelectContext(ctx, r.db, &balances, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	return balances, nil
}
