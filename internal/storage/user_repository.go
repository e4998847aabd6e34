package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stockfolio/stockfolio/internal/models"
	"github.com/stockfolio/stockfolio/internal/types"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// UserRepository handles user data persistence
type UserRepository struct {
	db *PostgresDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *PostgresDB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithDefaultPortfolio creates a user and their default portfolio in a
// single transaction, so a crash cannot leave a user with zero portfolios.
// A duplicate username or email surfaces as a CONFLICT service error.
func (r *UserRepository) CreateWithDefaultPortfolio(ctx context.Context, user *models.User, portfolioName string) (*models.Portfolio, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	userQuery := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = tx.Exec(ctx, userQuery,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, types.NewServiceError(types.CodeConflict, "username or email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	portfolio := &models.Portfolio{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Name:      portfolioName,
		CreatedAt: user.CreatedAt,
	}

	portfolioQuery := `
		INSERT INTO portfolios (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err = tx.Exec(ctx, portfolioQuery,
		portfolio.ID,
		portfolio.UserID,
		portfolio.Name,
		portfolio.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create default portfolio: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return portfolio, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewServiceError(types.CodeNotFound, fmt.Sprintf("user not found: %s", id))
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.Pool().QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewServiceError(types.CodeNotFound, fmt.Sprintf("user not found: %s", email))
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
