package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkpress/blog-api/internal/core/domain"
)

const uniqueViolation = "23505"

// UserRepository persists user accounts.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, domain.ErrEmailTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, profile_picture_data, profile_picture_mime_type, created_at, updated_at
		FROM users
		WHERE id = $1`

	user := &domain.User{}
	var picture []byte
	var mimeType sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&picture, &mimeType, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	user.ProfilePicture = picture
	if mimeType.Valid {
		user.ProfilePictureMime = mimeType.String
	}

	return user, nil
}

func (r *UserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (bool, error) {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = now()
		WHERE email = $2`

	res, err := r.db.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return false, fmt.Errorf("update password: %w", err)
	}

	return rowsAffected(res)
}

func (r *UserRepository) UpdateName(ctx context.Context, id int64, name string) (bool, error) {
	query := `
		UPDATE users
		SET name = $1, updated_at = now()
		WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return false, fmt.Errorf("update name: %w", err)
	}

	return rowsAffected(res)
}

func (r *UserRepository) UpdateProfilePicture(ctx context.Context, id int64, data []byte, mimeType string) (bool, error) {
	query := `
		UPDATE users
		SET profile_picture_data = $1, profile_picture_mime_type = $2, updated_at = now()
		WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, data, mimeType, id)
	if err != nil {
		return false, fmt.Errorf("update profile picture: %w", err)
	}

	return rowsAffected(res)
}

func rowsAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
