package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	userID string
	found  bool
}

func (f *fakeResolver) Resolve(_ context.Context, _ *http.Request) (string, bool) {
	return f.userID, f.found
}

type fakeDirectory struct {
	listed map[string]bool
}

func (f *fakeDirectory) IsListedAdmin(_ context.Context, userID string) bool {
	return f.listed[userID]
}

func TestAuthorizer_CookieSession(t *testing.T) {
	authorizer := NewAuthorizer(&fakeResolver{}, &fakeDirectory{})

	now := time.Now()
	cookie, err := NewSessionCookie(NewSession("admin@bookstand.test", now, time.Hour))
	require.NoError(t, err)

	r := httptest.NewRequest("POST", "/admin/books", nil)
	r.AddCookie(cookie)
	assert.True(t, authorizer.IsRequestAdmin(context.Background(), r))

	// expired cookie session does not authorize
	authorizer.nowFunc = func() time.Time { return now.Add(2 * time.Hour) }
	assert.False(t, authorizer.IsRequestAdmin(context.Background(), r))
}

func TestAuthorizer_ListedPrincipal(t *testing.T) {
	directory := &fakeDirectory{listed: map[string]bool{"user-1": true}}

	authorizer := NewAuthorizer(&fakeResolver{userID: "user-1", found: true}, directory)
	r := httptest.NewRequest("POST", "/admin/books", nil)
	assert.True(t, authorizer.IsRequestAdmin(context.Background(), r))

	// a principal that is not listed does not authorize, unlike the
	// gate's admin-path rule
	authorizer = NewAuthorizer(&fakeResolver{userID: "user-2", found: true}, directory)
	assert.False(t, authorizer.IsRequestAdmin(context.Background(), r))
}

func TestAuthorizer_NoCredentials(t *testing.T) {
	authorizer := NewAuthorizer(&fakeResolver{}, &fakeDirectory{})
	r := httptest.NewRequest("POST", "/admin/books", nil)
	assert.False(t, authorizer.IsRequestAdmin(context.Background(), r))
}
