package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-hotel/internal/application/dto"
	"github.com/jhoicas/gestion-hotel/internal/application/ports"
	"github.com/jhoicas/gestion-hotel/pkg/metrics"
)

var _ ports.RoomSummaryCache = (*RoomSummaryCache)(nil)

// DefaultTTL vigencia del resumen si no se configura otra.
const DefaultTTL = 30 * time.Second

const roomSummaryKey = "hotel:rooms:summary"

// RoomSummaryCache guarda el resumen de habitaciones en Redis como JSON.
// Los errores de Redis se registran y se tratan como fallo de cache.
type RoomSummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRoomSummaryCache construye el cache sobre un cliente ya creado.
func NewRoomSummaryCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RoomSummaryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RoomSummaryCache{rdb: rdb, ttl: ttl, log: log}
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (c *RoomSummaryCache) Get(ctx context.Context) (*dto.RoomSummary, bool) {
	val, err := c.rdb.Get(ctx, roomSummaryKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("cache: lectura del resumen fallida")
		}
		metrics.CacheMisses.Inc()
		return nil, false
	}
	var s dto.RoomSummary
	if err := json.Unmarshal(val, &s); err != nil {
		metrics.CacheMisses.Inc()
		return nil, false
	}
	metrics.CacheHits.Inc()
	return &s, true
}

func (c *RoomSummaryCache) Set(ctx context.Context, summary dto.RoomSummary) {
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, roomSummaryKey, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache: escritura del resumen fallida")
	}
}

func (c *RoomSummaryCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, roomSummaryKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache: invalidación fallida")
	}
}
