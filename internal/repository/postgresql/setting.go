package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/setting"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingRepositoryImpl struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) setting.SettingRepository {
	return &settingRepositoryImpl{db: db}
}

// Get implements setting.SettingRepository.
func (r *settingRepositoryImpl) Get(ctx context.Context, key string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var value string
	err := q.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", setting.ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// GetAll implements setting.SettingRepository.
func (r *settingRepositoryImpl) GetAll(ctx context.Context) (map[string]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return values, nil
}

// Upsert implements setting.SettingRepository.
func (r *settingRepositoryImpl) Upsert(ctx context.Context, key, value string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}

// GetOrCreate implements setting.SettingRepository. The insert and the read
// happen in one statement, so concurrent callers all observe the first value written.
func (r *settingRepositoryImpl) GetOrCreate(ctx context.Context, key, value string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH ins AS (
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO NOTHING
			RETURNING value
		)
		SELECT value FROM ins
		UNION ALL
		SELECT value FROM settings WHERE key = $1
		LIMIT 1`

	var stored string
	err := q.QueryRow(ctx, query, key, value).Scan(&stored)
	if errors.Is(err, pgx.ErrNoRows) {
		// A concurrent insert committed after this statement's snapshot was taken.
		return r.Get(ctx, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get or create setting %s: %w", key, err)
	}
	return stored, nil
}
