package service

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/vibast-solutions/ms-go-records/app/entity"
	"github.com/vibast-solutions/ms-go-records/app/metrics"
)

type APIKeyRepository interface {
	Create(ctx context.Context, key *entity.APIKey) error
	FindByHash(ctx context.Context, keyHash string) (*entity.APIKey, error)
}

// KeyCache is an optional shortcut for digests already known to be valid.
type KeyCache interface {
	IsKnown(ctx context.Context, keyHash string) (bool, error)
	Remember(ctx context.Context, keyHash string) error
}

type KeyService interface {
	IssueAPIKey(ctx context.Context) (string, error)
	ValidateAPIKey(ctx context.Context, apiKey string) (bool, error)
	// Authorize validates the key and returns the owner value that scopes
	// the caller's users and balances.
	Authorize(ctx context.Context, apiKey string) (string, error)
}

type keyService struct {
	apiKeyRepo APIKeyRepository
	cache      KeyCache
}

// NewKeyService builds the key store. cache may be nil.
func NewKeyService(apiKeyRepo APIKeyRepository, cache KeyCache) KeyService {
	return &keyService{apiKeyRepo: apiKeyRepo, cache: cache}
}

func (s *keyService) IssueAPIKey(ctx context.Context) (string, error) {
	rawKey := uuid.NewString()
	if err := s.apiKeyRepo.Create(ctx, &entity.APIKey{KeyHash: HashAPIKey(rawKey)}); err != nil {
		return "", err
	}

	metrics.RecordKeyIssued()
	return rawKey, nil
}

func (s *keyService) ValidateAPIKey(ctx context.Context, apiKey string) (bool, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		metrics.RecordKeyValidation(metrics.OutcomeInvalid)
		return false, nil
	}

	keyHash := HashAPIKey(apiKey)
	if s.cache != nil {
		known, err := s.cache.IsKnown(ctx, keyHash)
		if err != nil {
			logrus.WithError(err).Warn("Key cache lookup failed, falling back to database")
		} else if known {
			metrics.RecordKeyValidation(metrics.OutcomeOK)
			return true, nil
		}
	}

	key, err := s.apiKeyRepo.FindByHash(ctx, keyHash)
	if err != nil {
		metrics.RecordKeyValidation(metrics.OutcomeError)
		return false, err
	}
	if key == nil {
		metrics.RecordKeyValidation(metrics.OutcomeInvalid)
		return false, nil
	}

	if s.cache != nil {
		if err := s.cache.Remember(ctx, keyHash); err != nil {
			logrus.WithError(err).Warn("Failed to cache validated key")
		}
	}

	metrics.RecordKeyValidation(metrics.OutcomeOK)
	return true, nil
}

func (s *keyService) Authorize(ctx context.Context, apiKey string) (string, error) {
	valid, err := s.ValidateAPIKey(ctx, apiKey)
	if err != nil {
		return "", err
	}
	if !valid {
		return "", ErrUnauthorized
	}
	return HashAPIKey(strings.TrimSpace(apiKey)), nil
}

// HashAPIKey is the digest stored for a key and used as the owner column of
// every row the key creates.
func HashAPIKey(rawKey string) string {
	sum := blake2b.Sum256([]byte(rawKey))
	return hex.EncodeToString(sum[:])
}

// KeyPrefix is the loggable part of a key.
func KeyPrefix(rawKey string) string {
	if len(rawKey) <= 8 {
		return rawKey
	}
	return rawKey[:8]
}
