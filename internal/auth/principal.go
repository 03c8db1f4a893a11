package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	PrincipalCookieName = "principalToken"
	principalKeyPrefix  = "bookstand-principal||"
)

var _ Resolver = (*PrincipalResolver)(nil)

// Resolver establishes the caller's identity from the auth provider's
// own session, independent of the admin session cookie.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (userID string, found bool)
}

// PrincipalResolver looks the provider session token from the request
// cookie up in redis, where the auth provider keeps token -> user id
// mappings. Lookup failures read as "no principal".
type PrincipalResolver struct {
	redisClient *redis.Client
}

func NewPrincipalResolver(redisClient *redis.Client) *PrincipalResolver {
	return &PrincipalResolver{
		redisClient: redisClient,
	}
}

func (pr *PrincipalResolver) Resolve(ctx context.Context, r *http.Request) (string, bool) {
	cookie, err := r.Cookie(PrincipalCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	cmd := pr.redisClient.Get(ctx, principalKeyPrefix+cookie.Value)
	if err := cmd.Err(); err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("resolve principal: %s", err)
		}
		return "", false
	}

	userID := cmd.Val()
	return userID, userID != ""
}
