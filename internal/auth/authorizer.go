package auth

import (
	"context"
	"net/http"
	"time"
)

var _ Checker = (*Authorizer)(nil)
var _ Checker = (*TestChecker)(nil)

// Checker is the handler-side admin check. Every admin mutation endpoint
// re-validates through it, the access gate alone is a routing convenience
// and not an enforcement point.
type Checker interface {
	IsRequestAdmin(ctx context.Context, r *http.Request) bool
}

type adminDirectory interface {
	IsListedAdmin(ctx context.Context, userID string) bool
}

// Authorizer combines the admin session cookie with the auth provider
// principal plus the admin directory. Unlike the gate's admin-path rule,
// a bare principal is not enough here, it has to be listed.
type Authorizer struct {
	resolver  Resolver
	directory adminDirectory
	nowFunc   func() time.Time
}

func NewAuthorizer(resolver Resolver, directory adminDirectory) *Authorizer {
	return &Authorizer{
		resolver:  resolver,
		directory: directory,
		nowFunc:   time.Now,
	}
}

func (a *Authorizer) IsRequestAdmin(ctx context.Context, r *http.Request) bool {
	if session, ok := SessionFromRequest(r, a.nowFunc()); ok && session.IsAdmin {
		return true
	}

	if userID, found := a.resolver.Resolve(ctx, r); found {
		return a.directory.IsListedAdmin(ctx, userID)
	}

	return false
}

// TestChecker is a Checker stand-in for handler unit tests
type TestChecker struct {
	Admin bool
}

func (c *TestChecker) IsRequestAdmin(_ context.Context, _ *http.Request) bool {
	return c.Admin
}
