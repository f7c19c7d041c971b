package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/vibast-solutions/ms-go-records/app/entity"
	"github.com/vibast-solutions/ms-go-records/app/meta"
)

// UserChanges lists the columns an update touches. Nil fields are left as
// they are.
type UserChanges struct {
	Name *string
	Meta *meta.Pairs
}

func (c UserChanges) Empty() bool {
	return c.Name == nil && c.Meta == nil
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (user_id, name, meta, owner)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		user.ID,
		user.Name,
		user.Meta,
		user.Owner,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) ListByOwner(ctx context.Context, owner string) ([]*entity.User, error) {
	query := `
		SELECT user_id, name, meta, owner
		FROM users WHERE owner = ?
		ORDER BY user_id
	`
	users := make([]*entity.User, 0)
	if err := sqlx.SelectContext(ctx, r.db, &users, r.db.Rebind(query), owner); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindByIDAndOwner returns nil, nil when the row is missing or belongs to a
// different key.
func (r *UserRepository) FindByIDAndOwner(ctx context.Context, id, owner string) (*entity.User, error) {
	query := `
		SELECT user_id, name, meta, owner
		FROM users WHERE user_id = ? AND owner = ?
	`
	user := &entity.User{}
	err := sqlx.GetContext(ctx, r.db, user, r.db.Rebind(query), id, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Update writes the supplied columns in a single statement and reports how
// many rows matched.
func (r *UserRepository) Update(ctx context.Context, id, owner string, changes UserChanges) (int64, error) {
	if changes.Empty() {
		return 0, errors.New("update user: no columns to update")
	}

	sets := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if changes.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *changes.Name)
	}
	if changes.Meta != nil {
		sets = append(sets, "meta = ?")
		args = append(args, *changes.Meta)
	}
	args = append(args, id, owner)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE user_id = ? AND owner = ?`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	return result.RowsAffected()
}

func (r *UserRepository) Delete(ctx context.Context, id, owner string) (int64, error) {
	query := `DELETE FROM users WHERE user_id = ? AND owner = ?`
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), id, owner)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return result.RowsAffected()
}
