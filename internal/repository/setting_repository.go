package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// SettingRepository persists system-wide key/value configuration.
type SettingRepository interface {
	List(ctx context.Context) ([]domain.Setting, error)
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, setting *domain.Setting) error
}

type settingRepository struct {
	pool *pgxpool.Pool
}

// NewSettingRepository instantiates repository.
func NewSettingRepository(pool *pgxpool.Pool) SettingRepository {
	return &settingRepository{pool: pool}
}

func (r *settingRepository) List(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT key, value, updated_by, updated_at FROM system_settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Setting
	for rows.Next() {
		var setting domain.Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedBy, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, setting)
	}
	return result, rows.Err()
}

func (r *settingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var setting domain.Setting
	err := r.pool.QueryRow(ctx,
		`SELECT key, value, updated_by, updated_at FROM system_settings WHERE key=$1`, key).
		Scan(&setting.Key, &setting.Value, &setting.UpdatedBy, &setting.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	const query = `
        INSERT INTO system_settings (key, value, updated_by)
        VALUES ($1,$2,$3)
        ON CONFLICT (key) DO UPDATE SET value=$2, updated_by=$3, updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		setting.Key,
		setting.Value,
		setting.UpdatedBy,
	).Scan(&setting.UpdatedAt)
}
