package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"claim-escrow-engine/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	mr, _ := newTestClient(t)

	cfg := config.RedisConfig{Host: mr.Host(), Port: mustPort(t, mr.Port())}
	client, err := NewClient(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	hc := NewHealthCheck(client)
	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "redis", hc.Name())
}

func TestNewClient_AppliesTimeout(t *testing.T) {
	mr, _ := newTestClient(t)

	cfg := config.RedisConfig{Host: mr.Host(), Port: mustPort(t, mr.Port()), Timeout: 250 * time.Millisecond}
	client, err := NewClient(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	opts := client.Options()
	assert.Equal(t, 250*time.Millisecond, opts.DialTimeout)
	assert.Equal(t, 250*time.Millisecond, opts.ReadTimeout)
	assert.Equal(t, 250*time.Millisecond, opts.WriteTimeout)
}

func TestNewClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewClient(ctx, config.RedisConfig{Host: "127.0.0.1", Port: 1}, zerolog.Nop())
	assert.ErrorContains(t, err, "127.0.0.1:1")
}

func TestPassLock(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()

	a := NewPassLock(client, "reconciler:lock")
	b := NewPassLock(client, "reconciler:lock")

	release, ok, err := a.TryAcquire(ctx, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = b.TryAcquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second replica must skip the pass")

	require.NoError(t, release(ctx))

	release, ok, err = b.TryAcquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// Lock expired underneath the holder: release is still clean.
	mr.FastForward(2 * time.Minute)
	assert.NoError(t, release(ctx))
}

func mustPort(t *testing.T, s string) int {
	t.Helper()
	p, err := strconv.Atoi(s)
	require.NoError(t, err)
	return p
}
