package settings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelic/bookstand/internal/auth"
)

func settingsRouterForTests(t *testing.T, repo *repoMock, admin bool) (*mux.Router, *MaintenanceChecker) {
	t.Helper()

	r := mux.NewRouter()
	maintenance := NewMaintenanceChecker(repo)
	handler := NewHandler(repo, maintenance, &auth.TestChecker{Admin: admin})
	handler.SetupRoutes(r)
	return r, maintenance
}

func TestHandler_GetMaintenance(t *testing.T) {
	repo := newRepoMock()
	repo.Values[MaintenanceModeKey] = "true"
	router, _ := settingsRouterForTests(t, repo, true)

	req, err := http.NewRequest("GET", "/admin/settings/maintenance", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"enabled":true}`, rr.Body.String())
}

func TestHandler_GetMaintenance_NoRow(t *testing.T) {
	router, _ := settingsRouterForTests(t, newRepoMock(), true)

	req, err := http.NewRequest("GET", "/admin/settings/maintenance", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"enabled":false}`, rr.Body.String())
}

// repo whose errors come back wrapped, the way pgx call sites wrap them
type wrappingRepo struct {
	inner *repoMock
}

func (r *wrappingRepo) Get(ctx context.Context, key string) (string, error) {
	value, err := r.inner.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

func (r *wrappingRepo) Set(ctx context.Context, key, value string) error {
	return r.inner.Set(ctx, key, value)
}

func TestHandler_GetMaintenance_WrappedNoRow(t *testing.T) {
	repo := &wrappingRepo{inner: newRepoMock()}
	r := mux.NewRouter()
	handler := NewHandler(repo, NewMaintenanceChecker(repo), &auth.TestChecker{Admin: true})
	handler.SetupRoutes(r)

	req, err := http.NewRequest("GET", "/admin/settings/maintenance", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"enabled":false}`, rr.Body.String())
}

func TestHandler_GetMaintenance_Preflight(t *testing.T) {
	router, _ := settingsRouterForTests(t, newRepoMock(), false)

	req, err := http.NewRequest("OPTIONS", "/admin/settings/maintenance", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "GET, OPTIONS", rr.Header().Get("Allow"))
}

func TestHandler_SetMaintenance(t *testing.T) {
	repo := newRepoMock()
	router, maintenance := settingsRouterForTests(t, repo, true)

	req, err := http.NewRequest("PUT", "/admin/settings/maintenance", strings.NewReader(`{"enabled":true}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "maintenance:true", rr.Body.String())
	assert.Equal(t, "true", repo.Values[MaintenanceModeKey])
	assert.True(t, maintenance.Enabled(req.Context()))
}

func TestHandler_SetMaintenance_Form(t *testing.T) {
	repo := newRepoMock()
	router, _ := settingsRouterForTests(t, repo, true)

	req, err := http.NewRequest("PUT", "/admin/settings/maintenance", strings.NewReader("enabled=false"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "false", repo.Values[MaintenanceModeKey])
}

func TestHandler_SetMaintenance_Unauthorized(t *testing.T) {
	repo := newRepoMock()
	router, _ := settingsRouterForTests(t, repo, false)

	req, err := http.NewRequest("PUT", "/admin/settings/maintenance", strings.NewReader(`{"enabled":true}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, repo.Values)
}
