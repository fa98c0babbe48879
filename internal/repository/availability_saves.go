package repository

import (
	"context"
	"time"

	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

func (r *Repository) InsertAvailabilitySave(save *domain.AvailabilitySave) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	failedParts := save.FailedParts
	if failedParts == nil {
		failedParts = []string{}
	}

	query, args, err := r.psql.
		Insert("availability_saves").
		Columns("provider_id", "actor", "status", "failed_parts", "payload").
		Values(save.ProviderID, save.Actor, string(save.Status), failedParts, save.Payload).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}

	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&save.ID, &save.CreatedAt)
}

func (r *Repository) GetAvailabilitySaves(providerID string, limit uint64) ([]*domain.AvailabilitySave, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query, args, err := r.psql.
		Select("id", "provider_id", "actor", "status", "failed_parts", "payload", "created_at").
		From("availability_saves").
		Where("provider_id = ?", providerID).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// database/sql 无法直接扫描 text[]，借助 pgtype 的 SQLScanner
	typeMap := pgtype.NewMap()

	saves := make([]*domain.AvailabilitySave, 0)
	for rows.Next() {
		save := &domain.AvailabilitySave{
			FailedParts: make([]string, 0),
		}

		dst := []any{&save.ID, &save.ProviderID, &save.Actor, &save.Status, typeMap.SQLScanner(&save.FailedParts), &save.Payload, &save.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		saves = append(saves, save)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return saves, nil
}
