//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestNotificationGuard_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := Connect(ctx, Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	guard := NewNotificationGuard(client, time.Minute)

	first, err := guard.Claim(ctx, "welcome:alice")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := guard.Claim(ctx, "welcome:alice")
	require.NoError(t, err)
	assert.False(t, again)

	ttl, err := client.TTL(ctx, "notify:welcome:alice").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, guard.Release(ctx, "welcome:alice"))
	reclaimed, err := guard.Claim(ctx, "welcome:alice")
	require.NoError(t, err)
	assert.True(t, reclaimed)
}
