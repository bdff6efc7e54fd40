package repository

import (
	"context"
	"errors"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.Admin, error)
}

type adminRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAdminRepository(db database.PgxIface, log *zap.Logger) AdminRepository {
	return &adminRepository{
		db:  db,
		log: log.With(zap.String("repository", "admin")),
	}
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	query := `
		SELECT id, username, password, created_at
		FROM admins
		WHERE username = $1
	`

	var admin entity.Admin
	err := r.db.QueryRow(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find admin by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find admin by username %s: %w", username, err)
	}

	return &admin, nil
}
