package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/clinic-directory/internal/domain"
	"github.com/clinic-directory/internal/domain/repository"
	"github.com/clinic-directory/internal/pkg/errors"
)

const userColumns = `id, email, password_hash, role, name, created_at`

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, role, name, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING ` + userColumns

	var u domain.User
	err := r.db.QueryRowxContext(ctx, query,
		user.Email, user.PasswordHash, user.Role, user.Name,
	).StructScan(&u)
	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return nil, errors.NewStoreUnavailable(err)
	}
	return &u, nil
}
