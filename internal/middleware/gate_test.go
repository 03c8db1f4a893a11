package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avelic/bookstand/internal/auth"
	"github.com/avelic/bookstand/internal/middleware"
	"github.com/avelic/bookstand/internal/telemetry/metrics"
)

func adminSessionCookie(t *testing.T, loginTime time.Time, ttl time.Duration, isAdmin bool) *http.Cookie {
	t.Helper()
	session := auth.NewSession("admin@bookstand.test", loginTime, ttl)
	session.IsAdmin = isAdmin
	cookie, err := auth.NewSessionCookie(session)
	require.NoError(t, err)
	return cookie
}

func TestAccessGate_Check(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name             string
		method           string
		path             string
		maintenance      bool
		cookie           *http.Cookie
		principalID      string
		principalFound   bool
		principalListed  bool
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:           "NoMaintenanceNoCookiePublicPath",
			path:           "/books",
			expectedStatus: http.StatusOK,
		},
		{
			name:             "MaintenancePublicPathNoCredentials",
			path:             "/books",
			maintenance:      true,
			expectedStatus:   http.StatusFound,
			expectedLocation: "/maintenance",
		},
		{
			// admin paths are themselves exempt from the maintenance check
			name:           "MaintenanceAdminPathValidCookie",
			path:           "/admin/dashboard",
			maintenance:    true,
			cookie:         adminSessionCookie(t, now, time.Hour, true),
			expectedStatus: http.StatusOK,
		},
		{
			name:             "AdminPathNoCredentials",
			path:             "/admin/dashboard",
			expectedStatus:   http.StatusFound,
			expectedLocation: "/admin/login",
		},
		{
			// expired exactly past the boundary
			name:             "AdminPathExpiredCookie",
			path:             "/admin/dashboard",
			cookie:           adminSessionCookie(t, now.Add(-time.Hour-time.Millisecond), time.Hour, true),
			expectedStatus:   http.StatusFound,
			expectedLocation: "/admin/login",
		},
		{
			// never redirect the login page to itself
			name:           "LoginPageNoCredentials",
			path:           "/admin/login",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "MaintenancePublicPathCookieAdmin",
			path:           "/books",
			maintenance:    true,
			cookie:         adminSessionCookie(t, now, time.Hour, true),
			expectedStatus: http.StatusOK,
		},
		{
			name:            "MaintenancePublicPathListedPrincipal",
			path:            "/books",
			maintenance:     true,
			principalID:     "user-1",
			principalFound:  true,
			principalListed: true,
			expectedStatus:  http.StatusOK,
		},
		{
			name:             "MaintenancePublicPathUnlistedPrincipal",
			path:             "/books",
			maintenance:      true,
			principalID:      "user-2",
			principalFound:   true,
			expectedStatus:   http.StatusFound,
			expectedLocation: "/maintenance",
		},
		{
			name:           "MaintenanceMaintenancePageItself",
			path:           "/maintenance",
			maintenance:    true,
			expectedStatus: http.StatusOK,
		},
		{
			// any provider principal passes the admin-path rule, the
			// listed check is the handlers' job
			name:           "AdminPathUnlistedPrincipal",
			path:           "/admin/dashboard",
			principalID:    "user-2",
			principalFound: true,
			expectedStatus: http.StatusOK,
		},
		{
			name: "AdminPathMalformedCookie",
			path: "/admin/dashboard",
			cookie: &http.Cookie{
				Name:  auth.SessionCookieName,
				Value: "garbage-not-a-session",
			},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/admin/login",
		},
		{
			// preflight requests never carry cookies, they must reach
			// the handlers' OPTIONS responses
			name:           "AdminPathPreflightNoCredentials",
			method:         "OPTIONS",
			path:           "/admin/books",
			expectedStatus: http.StatusOK,
		},
		{
			// a session cookie with isAdmin false never authenticates
			name:             "AdminPathNonAdminCookie",
			path:             "/admin/dashboard",
			cookie:           adminSessionCookie(t, now, time.Hour, false),
			expectedStatus:   http.StatusFound,
			expectedLocation: "/admin/login",
		},
		{
			// maintenance redirect discards the query string
			name:             "MaintenanceRedirectDropsQuery",
			path:             "/books?category=fiction&sort=title",
			maintenance:      true,
			expectedStatus:   http.StatusFound,
			expectedLocation: "/maintenance",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			maintenance := NewMockmaintenanceChecker(ctrl)
			principals := NewMockprincipalResolver(ctrl)
			directory := NewMockadminDirectory(ctrl)

			maintenance.EXPECT().Enabled(gomock.Any()).Return(tc.maintenance).AnyTimes()
			principals.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(tc.principalID, tc.principalFound).AnyTimes()
			directory.EXPECT().IsListedAdmin(gomock.Any(), tc.principalID).Return(tc.principalListed).AnyTimes()

			gate := middleware.NewAccessGate(maintenance, principals, directory, metrics.NewTestManager())
			gate.NowFunc = func() time.Time { return now }

			method := tc.method
			if method == "" {
				method = "GET"
			}
			req, err := http.NewRequest(method, tc.path, nil)
			require.NoError(t, err)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}

			rr := httptest.NewRecorder()
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			gate.Check()(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectedLocation, rr.Header().Get("Location"))
		})
	}
}
