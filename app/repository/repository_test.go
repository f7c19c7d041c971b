package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vibast-solutions/ms-go-records/app/entity"
	"github.com/vibast-solutions/ms-go-records/app/meta"
	"github.com/vibast-solutions/ms-go-records/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

const (
	insertAPIKeyQuery        = `(?s)INSERT INTO api_keys \(key_hash\) VALUES \(\?\)`
	findAPIKeyQuery          = `(?s)SELECT key_hash FROM api_keys WHERE key_hash = \?`
	insertUserQuery          = `(?s)INSERT INTO users \(user_id, name, meta, owner\)\s+VALUES \(\?, \?, \?, \?\)`
	listUsersQuery           = `(?s)SELECT user_id, name, meta, owner\s+FROM users WHERE owner = \?\s+ORDER BY user_id`
	findUserQuery            = `(?s)SELECT user_id, name, meta, owner\s+FROM users WHERE user_id = \? AND owner = \?`
	updateUserNameQuery      = `(?s)UPDATE users SET name = \? WHERE user_id = \? AND owner = \?`
	updateUserNameMetaQuery  = `(?s)UPDATE users SET name = \?, meta = \? WHERE user_id = \? AND owner = \?`
	deleteUserQuery          = `(?s)DELETE FROM users WHERE user_id = \? AND owner = \?`
	insertBalanceQuery       = `(?s)INSERT INTO balances \(balance_id, api_key, user_id, balance\)\s+VALUES \(\?, \?, \?, \?\)`
	listBalancesQuery        = `(?s)SELECT balance_id, api_key, user_id, balance\s+FROM balances WHERE api_key = \?\s+ORDER BY balance_id`
	listBalancesByUserQuery  = `(?s)SELECT balance_id, api_key, user_id, balance\s+FROM balances WHERE api_key = \? AND user_id = \?\s+ORDER BY balance_id`
	findBalanceQuery         = `(?s)SELECT balance_id, api_key, user_id, balance\s+FROM balances WHERE balance_id = \? AND api_key = \?`
	updateBalanceQuery       = `(?s)UPDATE balances SET balance = \? WHERE balance_id = \? AND api_key = \?`
	deleteBalanceQuery       = `(?s)DELETE FROM balances WHERE balance_id = \? AND api_key = \?`
	postgresFindBalanceQuery = `(?s)SELECT balance_id, api_key, user_id, balance\s+FROM balances WHERE balance_id = \$1 AND api_key = \$2`
)

var userColumns = []string{"user_id", "name", "meta", "owner"}

var balanceColumns = []string{"balance_id", "api_key", "user_id", "balance"}

func newMockDB(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return sqlx.NewDb(db, driver), mock, func() { _ = db.Close() }
}

func TestAPIKeyRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewAPIKeyRepository(db)
	mock.ExpectExec(insertAPIKeyQuery).
		WithArgs("digest").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), &entity.APIKey{KeyHash: "digest"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAPIKeyRepository_FindByHash(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewAPIKeyRepository(db)
	mock.ExpectQuery(findAPIKeyQuery).
		WithArgs("digest").
		WillReturnRows(sqlmock.NewRows([]string{"key_hash"}).AddRow("digest"))
	mock.ExpectQuery(findAPIKeyQuery).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"key_hash"}))

	key, err := repo.FindByHash(context.Background(), "digest")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if key == nil || key.KeyHash != "digest" {
		t.Fatalf("expected key digest, got %+v", key)
	}

	key, err = repo.FindByHash(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if key != nil {
		t.Fatalf("expected nil key, got %+v", key)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAPIKeyRepository_FindByHashPropagatesErrors(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewAPIKeyRepository(db)
	dbErr := errors.New("connection reset")
	mock.ExpectQuery(findAPIKeyQuery).
		WithArgs("digest").
		WillReturnError(dbErr)

	if _, err := repo.FindByHash(context.Background(), "digest"); !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	user := &entity.User{
		ID:    "01HZY0000000000000000000AA",
		Name:  "Alice",
		Meta:  meta.Pairs{{Key: "city", Value: "Ldn"}},
		Owner: "owner-digest",
	}

	mock.ExpectExec(insertUserQuery).
		WithArgs(user.ID, "Alice", "city=Ldn", "owner-digest").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_ListByOwner(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	mock.ExpectQuery(listUsersQuery).
		WithArgs("owner-digest").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", "Alice", "city=Ldn", "owner-digest").
			AddRow("u2", "Bob", "", "owner-digest"))

	users, err := repo.ListByOwner(context.Background(), "owner-digest")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Name != "Alice" || users[0].Meta.Encode() != "city=Ldn" {
		t.Fatalf("unexpected first user: %+v", users[0])
	}
	if len(users[1].Meta) != 0 {
		t.Fatalf("expected empty meta for second user, got %#v", users[1].Meta)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_ListByOwnerEmpty(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	mock.ExpectQuery(listUsersQuery).
		WithArgs("owner-digest").
		WillReturnRows(sqlmock.NewRows(userColumns))

	users, err := repo.ListByOwner(context.Background(), "owner-digest")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", users)
	}
}

func TestUserRepository_FindByIDAndOwner(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	mock.ExpectQuery(findUserQuery).
		WithArgs("u1", "owner-digest").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u1", "Alice", "a=1", "owner-digest"))
	mock.ExpectQuery(findUserQuery).
		WithArgs("u1", "other-digest").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.FindByIDAndOwner(context.Background(), "u1", "owner-digest")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user == nil || user.ID != "u1" || user.Owner != "owner-digest" {
		t.Fatalf("unexpected user: %+v", user)
	}

	user, err = repo.FindByIDAndOwner(context.Background(), "u1", "other-digest")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user for foreign owner, got %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdateNameOnly(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	name := "Bob"
	mock.ExpectExec(updateUserNameQuery).
		WithArgs("Bob", "u1", "owner-digest").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.Update(context.Background(), "u1", "owner-digest", repository.UserChanges{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdateNameAndMeta(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	name := "Bob"
	pairs := meta.Pairs{{Key: "team", Value: "blue"}}
	mock.ExpectExec(updateUserNameMetaQuery).
		WithArgs("Bob", "team=blue", "u1", "owner-digest").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.Update(context.Background(), "u1", "owner-digest", repository.UserChanges{Name: &name, Meta: &pairs})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows affected, got %d", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_UpdateRequiresColumns(t *testing.T) {
	db, _, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	if _, err := repo.Update(context.Background(), "u1", "owner-digest", repository.UserChanges{}); err == nil {
		t.Fatalf("expected error for empty update")
	}
}

func TestUserRepository_Delete(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewUserRepository(db)
	mock.ExpectExec(deleteUserQuery).
		WithArgs("u1", "owner-digest").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.Delete(context.Background(), "u1", "owner-digest")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBalanceRepository_CreateAndList(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewBalanceRepository(db)
	mock.ExpectExec(insertBalanceQuery).
		WithArgs("b1", "owner-digest", "u1", int64(-40)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(listBalancesQuery).
		WithArgs("owner-digest").
		WillReturnRows(sqlmock.NewRows(balanceColumns).
			AddRow("b1", "owner-digest", "u1", int64(-40)).
			AddRow("b2", "owner-digest", "u1", int64(50)))

	err := repo.Create(context.Background(), &entity.Balance{
		ID:     "b1",
		Owner:  "owner-digest",
		UserID: "u1",
		Amount: -40,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	balances, err := repo.ListByOwner(context.Background(), "owner-digest")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(balances) != 2 || balances[0].Amount != -40 || balances[1].Amount != 50 {
		t.Fatalf("unexpected balances: %+v", balances)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBalanceRepository_ListByOwnerAndUser(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewBalanceRepository(db)
	mock.ExpectQuery(listBalancesByUserQuery).
		WithArgs("owner-digest", "u1").
		WillReturnRows(sqlmock.NewRows(balanceColumns).AddRow("b1", "owner-digest", "u1", int64(7)))

	balances, err := repo.ListByOwnerAndUser(context.Background(), "owner-digest", "u1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(balances) != 1 || balances[0].UserID != "u1" {
		t.Fatalf("unexpected balances: %+v", balances)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBalanceRepository_FindUpdateDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverMySQL)
	defer cleanup()

	repo := repository.NewBalanceRepository(db)
	mock.ExpectQuery(findBalanceQuery).
		WithArgs("b1", "owner-digest").
		WillReturnRows(sqlmock.NewRows(balanceColumns).AddRow("b1", "owner-digest", "u1", int64(10)))
	mock.ExpectExec(updateBalanceQuery).
		WithArgs(int64(-5), "b1", "owner-digest").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteBalanceQuery).
		WithArgs("b1", "owner-digest").
		WillReturnResult(sqlmock.NewResult(0, 0))

	balance, err := repo.FindByIDAndOwner(context.Background(), "b1", "owner-digest")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if balance == nil || balance.Amount != 10 {
		t.Fatalf("unexpected balance: %+v", balance)
	}

	rows, err := repo.UpdateAmount(context.Background(), "b1", "owner-digest", -5)
	if err != nil || rows != 1 {
		t.Fatalf("expected 1 updated row, got %d (%v)", rows, err)
	}

	rows, err = repo.Delete(context.Background(), "b1", "owner-digest")
	if err != nil || rows != 0 {
		t.Fatalf("expected 0 deleted rows, got %d (%v)", rows, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBalanceRepository_RebindsForPostgres(t *testing.T) {
	db, mock, cleanup := newMockDB(t, repository.DriverPostgres)
	defer cleanup()

	repo := repository.NewBalanceRepository(db)
	mock.ExpectQuery(postgresFindBalanceQuery).
		WithArgs("b1", "owner-digest").
		WillReturnRows(sqlmock.NewRows(balanceColumns))

	balance, err := repo.FindByIDAndOwner(context.Background(), "b1", "owner-digest")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if balance != nil {
		t.Fatalf("expected nil balance, got %+v", balance)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	if _, err := repository.Open(context.Background(), "sqlite", "file::memory:"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestOpen_RejectsMalformedMySQLDSN(t *testing.T) {
	if _, err := repository.Open(context.Background(), repository.DriverMySQL, "not a dsn"); err == nil {
		t.Fatalf("expected error for malformed dsn")
	}
}
