package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), config.Config{RedisHost: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	assert.Equal(t, "v", mr.Get("k"))
}

func TestConnectRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConnectRedis(ctx, config.Config{RedisHost: addr})
	assert.Error(t, err)
}

func TestConnectMinIO_RequiresEndpoint(t *testing.T) {
	_, err := ConnectMinIO(context.Background(), config.Config{})
	assert.ErrorContains(t, err, "MINIO_ENDPOINT")
}
