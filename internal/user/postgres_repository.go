package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL. The users table
// carries unique indexes on email and username, which is what makes Create
// safe under concurrent signups.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account. Unique-constraint violations surface as
// ErrDuplicateUser.
func (r *PostgresRepository) Create(ctx context.Context, user UserWithHash) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, user.Email, user.Username, user.PasswordHash, user.CreatedAt.UTC(), user.UpdatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

// FindByID fetches an account by its subject id.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, email, username, created_at, updated_at FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// FindByEmailWithHash fetches an account plus its password hash for signin.
func (r *PostgresRepository) FindByEmailWithHash(ctx context.Context, email string) (UserWithHash, error) {
	row := r.db.QueryRow(ctx, `SELECT id, email, username, password_hash, created_at, updated_at FROM users WHERE email = $1`, email)

	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		user      UserWithHash
	)
	if err := row.Scan(&id, &user.Email, &user.Username, &user.PasswordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserWithHash{}, ErrNotFound
		}
		return UserWithHash{}, err
	}
	user.ID = id.String()
	user.CreatedAt = createdAt.UTC()
	user.UpdatedAt = updatedAt.UTC()
	return user, nil
}

// ExistsByEmailOrUsername reports whether either identifier is taken.
func (r *PostgresRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)`, email, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		user      User
	)
	if err := row.Scan(&id, &user.Email, &user.Username, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.ID = id.String()
	user.CreatedAt = createdAt.UTC()
	user.UpdatedAt = updatedAt.UTC()
	return user, nil
}
