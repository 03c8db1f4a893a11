//go:build integration_test || all_tests

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelic/bookstand/pkg"
	pkgtesting "github.com/avelic/bookstand/pkg/testing"
)

func TestPrincipalResolver_Resolve_redis(t *testing.T) {
	ctx, rdb := pkgtesting.GetRedisClientAndCtx(t)
	defer rdb.Close()

	token, err := pkg.GenerateRandomString(16)
	require.NoError(t, err)

	require.NoError(t, rdb.Set(ctx, principalKeyPrefix+token, "user-id-77", time.Minute).Err())
	defer rdb.Del(ctx, principalKeyPrefix+token)

	resolver := NewPrincipalResolver(rdb)

	userID, found := resolver.Resolve(ctx, principalRequest(t, token))
	assert.True(t, found)
	assert.Equal(t, "user-id-77", userID)

	// a token the provider never stored
	unknownToken, err := pkg.GenerateRandomString(16)
	require.NoError(t, err)
	_, found = resolver.Resolve(ctx, principalRequest(t, unknownToken))
	assert.False(t, found)
}
