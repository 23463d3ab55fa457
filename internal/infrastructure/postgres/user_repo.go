package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adilbekov/timetrack/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, password_hash, status, roles, verification_code, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user. The unique index on email is the arbiter for
// concurrent registrations; the losing insert maps to ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, status, roles, verification_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.PasswordHash, u.Status, rolesToStrings(u.Roles),
		u.VerificationCode, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string, status *domain.UserStatus) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	args := []any{email}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}

	row := r.pool.QueryRow(ctx, query, args...)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $2, password_hash = $3, status = $4, roles = $5,
		    verification_code = $6, updated_at = $7
		WHERE id = $1`,
		u.ID, u.Email, u.PasswordHash, u.Status, rolesToStrings(u.Roles),
		u.VerificationCode, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) DeleteStalePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM users WHERE status = $1 AND created_at < $2`,
		domain.UserStatusPending, createdBefore,
	)
	if err != nil {
		return 0, fmt.Errorf("delete stale pending users: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u     domain.User
		roles []string
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Status, &roles,
		&u.VerificationCode, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.Roles = make([]domain.Role, len(roles))
	for i, s := range roles {
		u.Roles[i] = domain.Role(s)
	}
	return &u, nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
