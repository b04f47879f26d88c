package repository

import (
	"context"
	"errors"
	"fmt"

	"userauth/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

var (
	// ErrDuplicatePhone reports an insert rejected by the unique index on
	// phone. Two requests raced past the existence check; the index decides.
	ErrDuplicatePhone = errors.New("phone number already registered")
	// ErrNothingInserted reports an insert that affected no rows.
	ErrNothingInserted = errors.New("no row inserted")
)

// DB is the subset of pgxpool.Pool the repository needs. Narrow on purpose so
// tests can substitute a pgxmock pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository defines operations for credential records
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user and fills in the store-assigned id
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (full_name, phone, password_hash, role, created_at)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.FullName, user.Phone, user.PasswordHash, user.Role, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicatePhone
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNothingInserted
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByPhone retrieves a user by their phone number
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, full_name, phone, password_hash, role, created_at FROM users WHERE phone = $1`
	err := r.db.QueryRow(ctx, sql, phone).Scan(&user.ID, &user.FullName, &user.Phone, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error here, the service layer decides what it means
		}
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}
	return user, nil
}
