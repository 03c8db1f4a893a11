package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/avelic/bookstand/internal/auth"
	"github.com/avelic/bookstand/internal/telemetry/metrics"
	"github.com/avelic/bookstand/internal/telemetry/tracing"
)

type maintenanceChecker interface {
	Enabled(ctx context.Context) bool
}

type principalResolver interface {
	Resolve(ctx context.Context, r *http.Request) (userID string, found bool)
}

type adminDirectory interface {
	IsListedAdmin(ctx context.Context, userID string) bool
}

// AccessGate runs once per request, before any handler, and decides one
// of: allow, redirect to /maintenance, redirect to /admin/login. It
// never produces an error status on its own.
type AccessGate struct {
	maintenance maintenanceChecker
	principals  principalResolver
	directory   adminDirectory
	metrics     *metrics.Manager
	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewAccessGate(
	maintenance maintenanceChecker,
	principals principalResolver,
	directory adminDirectory,
	metricsManager *metrics.Manager,
) *AccessGate {
	return &AccessGate{
		maintenance: maintenance,
		principals:  principals,
		directory:   directory,
		metrics:     metricsManager,
		NowFunc:     time.Now,
	}
}

func (g *AccessGate) Check() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.gate")
			defer span.End()

			// a missing, malformed or expired cookie all count as no session
			session, sessionOk := auth.SessionFromRequest(r, g.NowFunc())
			isAdminAuthenticated := sessionOk && session.IsAdmin

			principalID, principalFound := g.principals.Resolve(ctx, r)

			path := r.URL.Path
			if g.maintenance.Enabled(ctx) &&
				!strings.HasPrefix(path, "/admin") &&
				!strings.HasPrefix(path, "/maintenance") {
				isAdmin := isAdminAuthenticated
				if !isAdmin && principalFound {
					isAdmin = g.directory.IsListedAdmin(ctx, principalID)
				}
				if !isAdmin {
					log.Tracef("[maintenance] redirecting %s %s", r.Method, path)
					g.metrics.CounterMaintenanceRedirects.Inc()
					span.SetStatus(codes.Ok, "maintenance-redirect")
					http.Redirect(w, r, "/maintenance", http.StatusFound)
					return
				}
			}

			if strings.HasPrefix(path, "/admin") && path != "/admin/login" &&
				r.Method != http.MethodOptions {
				// preflight requests carry no cookies, they pass through
				// to the handlers' own OPTIONS responses; any provider
				// principal passes here, the listed-admin check is left
				// to the handlers themselves
				if !principalFound && !isAdminAuthenticated {
					log.Tracef("[admin gate] redirecting to login => %s", path)
					g.metrics.CounterLoginRedirects.Inc()
					span.SetStatus(codes.Ok, "login-redirect")
					http.Redirect(w, r, "/admin/login", http.StatusFound)
					return
				}
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
