//go:build integration_test || all_tests

package settings

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelic/bookstand/internal/db"
)

func testRepoSetup(t *testing.T) (*Repo, func()) {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	t.Logf("using postgres host: %s", host)

	dbPool, err := db.NewDBPool(timeoutCtx, db.NewDBPoolParams{
		DBHost:         host,
		DBPort:         "5432",
		DBName:         "bookstand",
		TracingEnabled: false,
	})
	require.NoError(t, err)

	return NewRepo(dbPool), func() {
		dbPool.Close()
	}
}

func TestRepo_GetSet(t *testing.T) {
	ctx := context.Background()
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	_, err := repo.Get(ctx, "no-such-setting")
	assert.ErrorIs(t, err, ErrSettingNotFound)

	require.NoError(t, repo.Set(ctx, MaintenanceModeKey, "true"))
	value, err := repo.Get(ctx, MaintenanceModeKey)
	require.NoError(t, err)
	assert.Equal(t, "true", value)

	// upsert overwrites
	require.NoError(t, repo.Set(ctx, MaintenanceModeKey, "false"))
	value, err = repo.Get(ctx, MaintenanceModeKey)
	require.NoError(t, err)
	assert.Equal(t, "false", value)
}
