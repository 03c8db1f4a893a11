package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelic/bookstand/internal/telemetry/tracing"
)

var ErrSettingNotFound = errors.New("setting not found")

// MaintenanceModeKey is the site_settings key gating the whole site,
// value space is the strings "true" and "false"
const MaintenanceModeKey = "maintenance_mode"

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, key string) (string, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "settingsRepo.get")
	defer span.End()

	var value string
	err := r.db.QueryRow(
		ctx,
		`SELECT value FROM site_settings WHERE key = $1;`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSettingNotFound
		}
		return "", err
	}

	return value, nil
}

func (r *Repo) Set(ctx context.Context, key, value string) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "settingsRepo.set")
	defer span.End()

	_, err := r.db.Exec(
		ctx,
		`
			INSERT INTO site_settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
		`,
		key, value,
	)
	return err
}
