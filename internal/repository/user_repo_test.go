package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"userauth/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectByPhoneSQL = `SELECT id, full_name, phone, password_hash, role, created_at FROM users WHERE phone = $1`
	insertUserSQL    = `INSERT INTO users (full_name, phone, password_hash, role, created_at)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestUserRepository_FindByPhone(t *testing.T) {
	mock, repo := newMockRepo(t)

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(selectByPhoneSQL)).
		WithArgs("9876543210").
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "phone", "password_hash", "role", "created_at"}).
			AddRow(1, "John Doe", "9876543210", "$2a$10$hash", "user", created))

	user, err := repo.FindByPhone(context.Background(), "9876543210")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "John Doe", user.FullName)
	assert.Equal(t, "9876543210", user.Phone)
	assert.Equal(t, "user", user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByPhone_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectByPhoneSQL)).
		WithArgs("0000000000").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByPhone(context.Background(), "0000000000")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByPhone_StoreError(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectByPhoneSQL)).
		WithArgs("9876543210").
		WillReturnError(errors.New("connection reset"))

	user, err := repo.FindByPhone(context.Background(), "9876543210")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("John Doe", "9876543210", "$2a$10$hash", "user", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))

	user := &model.User{
		FullName:     "John Doe",
		Phone:        "9876543210",
		PasswordHash: "$2a$10$hash",
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	err := repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicatePhone(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("Jane Doe", "9876543210", "$2a$10$hash", "user", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_phone_key"})

	err := repo.Create(context.Background(), &model.User{
		FullName:     "Jane Doe",
		Phone:        "9876543210",
		PasswordHash: "$2a$10$hash",
		Role:         "user",
		CreatedAt:    time.Now(),
	})

	assert.ErrorIs(t, err, ErrDuplicatePhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_NothingInserted(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(insertUserSQL)).
		WithArgs("John Doe", "9876543210", "$2a$10$hash", "user", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	err := repo.Create(context.Background(), &model.User{
		FullName:     "John Doe",
		Phone:        "9876543210",
		PasswordHash: "$2a$10$hash",
		Role:         "user",
		CreatedAt:    time.Now(),
	})

	assert.ErrorIs(t, err, ErrNothingInserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
