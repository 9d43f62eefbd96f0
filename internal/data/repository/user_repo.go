package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"karigar/internal/data/entity"
	"karigar/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// CreateProvider stores the user and the provider profile atomically.
	CreateProvider(ctx context.Context, user *entity.User, profile *entity.ProviderProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, role entity.UserRole, limit, offset int) ([]*entity.User, int64, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool, now time.Time) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, name, email, password, phone, role, city, area, is_active, created_at, updated_at`

const insertUserQuery = `
	INSERT INTO users (id, name, email, password, phone, role, city, area, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func userArgs(user *entity.User) []any {
	return []any{
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.City,
		user.Area,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	}
}

func scanUser(row scanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.City,
		&user.Area,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.db.Exec(ctx, insertUserQuery, userArgs(user)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicateKey)
		}
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (r *userRepository) CreateProvider(ctx context.Context, user *entity.User, profile *entity.ProviderProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, insertUserQuery, userArgs(user)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create provider %s: %w", user.Email, ErrDuplicateKey)
		}
		r.log.Error("Failed to create provider user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("create provider %s: %w", user.Email, err)
	}

	if _, err := tx.Exec(ctx, insertProfileQuery, profileArgs(profile)...); err != nil {
		r.log.Error("Failed to create provider profile", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("create provider profile %s: %w", user.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit provider %s: %w", user.ID, err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

// List returns users ordered by newest first. An empty role lists everyone.
func (r *userRepository) List(ctx context.Context, role entity.UserRole, limit, offset int) ([]*entity.User, int64, error) {
	where := squirrel.And{}
	if role != "" {
		where = append(where, squirrel.Eq{"role": role})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("users").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count users query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.Error("Failed to count users", zap.Error(err))
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query, args, err := psql.Select(userColumns).From("users").Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list users", zap.Error(err))
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, 0, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

func (r *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool, now time.Time) error {
	query := `UPDATE users SET is_active = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active, now)
	if err != nil {
		r.log.Error("Failed to update user status", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("update user %s status: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}

	return nil
}
