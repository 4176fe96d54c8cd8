package setting

import "context"

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Upsert(ctx context.Context, key, value string) error
	// GetOrCreate stores value under key unless the key exists, and returns the stored value.
	GetOrCreate(ctx context.Context, key, value string) (string, error)
}
