package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type readerMock struct {
	values map[string]string
	err    error
	calls  int
}

func (r *readerMock) Get(_ context.Context, key string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	value, ok := r.values[key]
	if !ok {
		return "", ErrSettingNotFound
	}
	return value, nil
}

func TestMaintenanceChecker_Enabled(t *testing.T) {
	ctx := context.Background()

	repo := &readerMock{values: map[string]string{MaintenanceModeKey: "true"}}
	checker := NewMaintenanceChecker(repo)
	assert.True(t, checker.Enabled(ctx))

	repo = &readerMock{values: map[string]string{MaintenanceModeKey: "false"}}
	checker = NewMaintenanceChecker(repo)
	assert.False(t, checker.Enabled(ctx))

	// anything that is not the literal "true" reads as off
	repo = &readerMock{values: map[string]string{MaintenanceModeKey: "TRUE"}}
	checker = NewMaintenanceChecker(repo)
	assert.False(t, checker.Enabled(ctx))
}

func TestMaintenanceChecker_FailsOpen(t *testing.T) {
	ctx := context.Background()

	// no row
	checker := NewMaintenanceChecker(&readerMock{})
	assert.False(t, checker.Enabled(ctx))

	// lookup error
	checker = NewMaintenanceChecker(&readerMock{err: errors.New("db down")})
	assert.False(t, checker.Enabled(ctx))
}

func TestMaintenanceChecker_Caches(t *testing.T) {
	ctx := context.Background()

	repo := &readerMock{values: map[string]string{MaintenanceModeKey: "true"}}
	checker := NewMaintenanceChecker(repo)

	assert.True(t, checker.Enabled(ctx))
	assert.True(t, checker.Enabled(ctx))
	assert.True(t, checker.Enabled(ctx))
	assert.Equal(t, 1, repo.calls)

	// flag toggled, stale value served until invalidated
	repo.values[MaintenanceModeKey] = "false"
	assert.True(t, checker.Enabled(ctx))

	checker.Invalidate()
	assert.False(t, checker.Enabled(ctx))
	assert.Equal(t, 2, repo.calls)
}
