package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Nithish259/password-reset-backend/internal/auth/domain"
	autherror "github.com/Nithish259/password-reset-backend/internal/errors"
)

// DB is the subset of pgxpool.Pool the repository uses. pgxmock
// satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, email, password_hash, reset_code_hash, reset_code_expires_at, created_at, updated_at`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
		LIMIT 1;
	`

	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
		LIMIT 1;
	`

	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.ResetCodeHash, &user.ResetCodeExpiresAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// Create inserts the user. A violation of the unique email index is
// reported as ErrEmailAlreadyInUse so a lost check-then-create race
// still surfaces as a conflict.
func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return autherror.ErrEmailAlreadyInUse
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// SetResetCode stores the code hash and its deadline as a pair,
// replacing any code already outstanding.
func (r *PostgresRepository) SetResetCode(ctx context.Context, userID, codeHash string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
        UPDATE users
        SET reset_code_hash = $1, reset_code_expires_at = $2, updated_at = $3
        WHERE id = $4
    `, codeHash, expiresAt, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to set reset code: %w", err)
	}

	return nil
}

// ClearResetCode removes a pending reset code without touching the
// password.
func (r *PostgresRepository) ClearResetCode(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE users
        SET reset_code_hash = NULL, reset_code_expires_at = NULL, updated_at = $1
        WHERE id = $2
    `, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to clear reset code: %w", err)
	}

	return nil
}

// ConsumeResetCode swaps in the new password hash and clears the reset
// pair in one conditional update. The WHERE clause matches the stored
// code hash, so two concurrent consumers cannot both succeed; the
// loser sees false.
func (r *PostgresRepository) ConsumeResetCode(ctx context.Context, userID, codeHash, newPasswordHash string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE users
        SET password_hash = $1, reset_code_hash = NULL, reset_code_expires_at = NULL, updated_at = $2
        WHERE id = $3 AND reset_code_hash = $4
    `, newPasswordHash, time.Now(), userID, codeHash)
	if err != nil {
		return false, fmt.Errorf("failed to consume reset code: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
