package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/pkg/metrics"
)

// Sin servidor Redis el cache degrada a "miss" sin propagar errores.
func TestRoomSummaryCache_UnreachableRedisIsMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := NewRoomSummaryCache(rdb, 0, zerolog.Nop())
	assert.Equal(t, DefaultTTL, c.ttl)

	ctx := context.Background()
	before := testutil.ToFloat64(metrics.CacheMisses)

	c.Set(ctx, dto.RoomSummary{Total: 3})
	s, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, s)
	c.Invalidate(ctx)

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CacheMisses))
}

func TestNewClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err := NewClient(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
