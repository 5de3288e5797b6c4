// Package cache caché de productos destacados por tenant sobre Redis, con variante Noop.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/application/ports"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

var (
	_ ports.FeaturedCache = (*RedisFeaturedCache)(nil)
	_ ports.FeaturedCache = NoopFeaturedCache{}
)

// FeaturedKey clave Redis del listado de destacados de un tenant.
func FeaturedKey(ownerAdmin string) string {
	return "featured_products:" + ownerAdmin
}

// NoopFeaturedCache caché deshabilitada (REDIS_ADDR vacío): siempre falla la lectura.
type NoopFeaturedCache struct{}

func (NoopFeaturedCache) GetFeatured(context.Context, string) ([]dto.ProductResponse, bool) {
	return nil, false
}

func (NoopFeaturedCache) SetFeatured(context.Context, string, []dto.ProductResponse) {}

func (NoopFeaturedCache) InvalidateFeatured(context.Context, string) {}

// RedisFeaturedCache destacados serializados en JSON con TTL.
// Los errores de Redis se registran y se tratan como fallo de caché.
type RedisFeaturedCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisFeaturedCache construye la caché contra addr.
func NewRedisFeaturedCache(addr, password string, db int, ttl time.Duration, log *logger.Logger) *RedisFeaturedCache {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
	})
	return &RedisFeaturedCache{client: client, ttl: ttl, log: log.Named("cache")}
}

// Ping comprueba la conexión al arrancar.
func (c *RedisFeaturedCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisFeaturedCache) Close() error {
	return c.client.Close()
}

func (c *RedisFeaturedCache) GetFeatured(ctx context.Context, ownerAdmin string) ([]dto.ProductResponse, bool) {
	val, err := c.client.Get(ctx, FeaturedKey(ownerAdmin)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("owner_admin", ownerAdmin).Msg("lectura de caché fallida")
		return nil, false
	}
	var items []dto.ProductResponse
	if err := json.Unmarshal(val, &items); err != nil {
		c.log.Warn().Err(err).Str("owner_admin", ownerAdmin).Msg("entrada de caché corrupta")
		return nil, false
	}
	return items, true
}

func (c *RedisFeaturedCache) SetFeatured(ctx context.Context, ownerAdmin string, items []dto.ProductResponse) {
	if items == nil {
		items = []dto.ProductResponse{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, FeaturedKey(ownerAdmin), payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("owner_admin", ownerAdmin).Msg("escritura de caché fallida")
	}
}

func (c *RedisFeaturedCache) InvalidateFeatured(ctx context.Context, ownerAdmin string) {
	if err := c.client.Del(ctx, FeaturedKey(ownerAdmin)).Err(); err != nil {
		c.log.Warn().Err(err).Str("owner_admin", ownerAdmin).Msg("invalidación de caché fallida")
	}
}
