package auth

import (
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrWrongCredentials = errors.New("wrong credentials")

// Service logs admins in and out. A successful login produces the
// session and its cookie, sign-out produces the clearing cookie.
type Service struct {
	verifier Verifier
	ttl      time.Duration
	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewService(verifier Verifier, ttl time.Duration) *Service {
	return &Service{
		verifier: verifier,
		ttl:      ttl,
		NowFunc:  time.Now,
	}
}

func (s *Service) Login(email, password string) (Session, *http.Cookie, error) {
	if !s.verifier.Verify(email, password) {
		log.Tracef("failed login attempt for: %s", email)
		return Session{}, nil, ErrWrongCredentials
	}

	session := NewSession(email, s.NowFunc(), s.ttl)
	cookie, err := NewSessionCookie(session)
	if err != nil {
		return Session{}, nil, err
	}

	return session, cookie, nil
}

func (s *Service) Logout() *http.Cookie {
	return ExpiredSessionCookie()
}
