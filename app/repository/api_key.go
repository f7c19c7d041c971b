package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vibast-solutions/ms-go-records/app/entity"
)

type APIKeyRepository struct {
	db DBTX
}

func NewAPIKeyRepository(db DBTX) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

func (r *APIKeyRepository) Create(ctx context.Context, key *entity.APIKey) error {
	query := `INSERT INTO api_keys (key_hash) VALUES (?)`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), key.KeyHash); err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

// FindByHash returns nil, nil when no key with that digest was issued.
func (r *APIKeyRepository) FindByHash(ctx context.Context, keyHash string) (*entity.APIKey, error) {
	query := `SELECT key_hash FROM api_keys WHERE key_hash = ?`

	key := &entity.APIKey{}
	err := sqlx.GetContext(ctx, r.db, key, r.db.Rebind(query), keyHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find api key: %w", err)
	}
	return key, nil
}
