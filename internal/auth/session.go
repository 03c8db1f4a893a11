package auth

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const (
	SessionCookieName = "adminSession"
	DefaultSessionTTL = 24 * time.Hour
)

// Session is the admin session carried in the adminSession cookie.
// The cookie is the single source of truth and is validated on every
// request, clients may keep a copy for display purposes but that copy
// is never trusted for authorization.
type Session struct {
	IsAdmin   bool   `json:"isAdmin"`
	Email     string `json:"email"`
	LoginTime int64  `json:"loginTime"` // unix milliseconds
	ExpiresIn int64  `json:"expiresIn"` // milliseconds
}

func NewSession(email string, now time.Time, ttl time.Duration) Session {
	return Session{
		IsAdmin:   true,
		Email:     email,
		LoginTime: now.UnixMilli(),
		ExpiresIn: ttl.Milliseconds(),
	}
}

// Valid reports whether the session is still alive, there is no refresh.
// A session exactly at the expiry boundary is invalid.
func (s Session) Valid(now time.Time) bool {
	return now.UnixMilli()-s.LoginTime < s.ExpiresIn
}

// NewSessionCookie serializes the session into the adminSession cookie.
// The session JSON is base64url wrapped since raw JSON is not cookie safe.
func NewSessionCookie(s Session) (*http.Cookie, error) {
	sessionJson, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    base64.URLEncoding.EncodeToString(sessionJson),
		Path:     "/",
		MaxAge:   int(s.ExpiresIn / 1000),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ExpiredSessionCookie clears the adminSession cookie on sign-out
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionFromRequest reads the session from the request cookie.
// A missing, malformed or expired cookie all read as "no session",
// never as an error.
func SessionFromRequest(r *http.Request, now time.Time) (Session, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return Session{}, false
	}
	return ParseSession(cookie.Value, now)
}

func ParseSession(cookieValue string, now time.Time) (Session, bool) {
	sessionJson, err := base64.URLEncoding.DecodeString(cookieValue)
	if err != nil {
		return Session{}, false
	}

	var s Session
	if err := json.Unmarshal(sessionJson, &s); err != nil {
		return Session{}, false
	}

	if !s.Valid(now) {
		return Session{}, false
	}

	return s, true
}
