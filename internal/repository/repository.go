package repository

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/chatbooking/admin/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
	psql   sq.StatementBuilderType
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}
