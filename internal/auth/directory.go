package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/avelic/bookstand/internal/telemetry/tracing"
)

// Directory checks whether an auth provider principal is listed in the
// admin_users table.
type Directory struct {
	db *pgxpool.Pool
}

func NewDirectory(db *pgxpool.Pool) *Directory {
	return &Directory{
		db: db,
	}
}

// IsListedAdmin reports whether the given user id has an admin_users row.
// A missing row and a failed lookup both read as "not an admin", the
// single-row query cannot tell them apart anyway.
func (d *Directory) IsListedAdmin(ctx context.Context, userID string) bool {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authDirectory.isListedAdmin")
	defer span.End()

	var id string
	err := d.db.QueryRow(
		ctx,
		`SELECT id FROM admin_users WHERE id = $1;`,
		userID,
	).Scan(&id)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Errorf("admin directory lookup for %s: %s", userID, err)
		}
		return false
	}

	return true
}
