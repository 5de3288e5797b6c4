package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/cache"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

func TestFeaturedKey(t *testing.T) {
	assert.Equal(t, "featured_products:a1", cache.FeaturedKey("a1"))
}

func TestNoopFeaturedCache(t *testing.T) {
	c := cache.NoopFeaturedCache{}
	c.SetFeatured(context.Background(), "a1", []dto.ProductResponse{{ID: "p1"}})
	_, ok := c.GetFeatured(context.Background(), "a1")
	assert.False(t, ok)
}

func TestRedisFeaturedCache_SinServidorEsFalloDeCache(t *testing.T) {
	c := cache.NewRedisFeaturedCache("127.0.0.1:1", "", 0, time.Minute, logger.Nop())
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	assert.NotPanics(t, func() {
		c.SetFeatured(ctx, "a1", []dto.ProductResponse{{ID: "p1"}})
		c.InvalidateFeatured(ctx, "a1")
	})
	_, ok := c.GetFeatured(ctx, "a1")
	assert.False(t, ok)
}
