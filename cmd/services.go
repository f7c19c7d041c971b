package cmd

import (
	"context"

	"github.com/vibast-solutions/ms-go-records/app/cache"
	"github.com/vibast-solutions/ms-go-records/app/repository"
	"github.com/vibast-solutions/ms-go-records/app/service"
	"github.com/vibast-solutions/ms-go-records/config"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type services struct {
	db       *sqlx.DB
	keyCache *cache.KeyCache

	keys     service.KeyService
	users    service.UserService
	balances service.BalanceService
}

func newServices(ctx context.Context, cfg *config.Config) (*services, error) {
	db, err := repository.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	s := &services{db: db}

	var keyCache service.KeyCache
	if cfg.Keys.RedisURL != "" {
		s.keyCache, err = cache.New(ctx, cfg.Keys.RedisURL, cfg.Keys.CacheTTL)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		keyCache = s.keyCache
		logrus.Info("API key cache enabled")
	}

	keys := service.NewKeyService(repository.NewAPIKeyRepository(db), keyCache)
	s.keys = service.NewThrottledKeyService(keys, cfg.Keys.ValidationDelay)
	s.users = service.NewUserService(repository.NewUserRepository(db), service.Limits{
		NameMaxLength: cfg.Records.NameMaxLength,
		MetaMaxLength: cfg.Records.MetaMaxLength,
	})
	s.balances = service.NewBalanceService(repository.NewBalanceRepository(db))

	return s, nil
}

func (s *services) Close() {
	if s.keyCache != nil {
		if err := s.keyCache.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close API key cache")
		}
	}
	if err := s.db.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to close database")
	}
}
