package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
)

func (p *Postgres) Setting(ctx context.Context, key string) (string, error) {
	var value string
	err := p.DB.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, key).
		Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrSettingNotFound
		}
		return "", fmt.Errorf("error fetching setting %s: %w", key, err)
	}

	return value, nil
}

func (p *Postgres) UpsertSetting(ctx context.Context, key, value string, updatedBy int64) error {
	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at, updated_by) VALUES ($1, $2, now(), $3)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now(), updated_by = $3`,
		key, value, updatedBy)
	if err != nil {
		return fmt.Errorf("error upserting setting %s: %w", key, err)
	}

	return nil
}

func (p *Postgres) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	err := p.DB.QueryRowContext(ctx,
		`SELECT (SELECT count(*) FROM users),
		        (SELECT count(*) FROM photos WHERE status = $1),
		        (SELECT coalesce(sum(final_amount), 0) FROM withdrawals WHERE status = $2)`,
		domain.StatusApproved, domain.StatusCompleted).
		Scan(&stats.Users, &stats.ApprovedPhotos, &stats.TotalPaidOut)
	if err != nil {
		return nil, fmt.Errorf("error fetching stats: %w", err)
	}

	return &stats, nil
}
