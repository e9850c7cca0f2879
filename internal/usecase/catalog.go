package usecase

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"unirenta/internal/entity"
)

const (
	cacheKeyAvailable = "services:available"
	cacheKeyAddons    = "services:addons"
	cacheKeyBase      = "services:base"
)

// Catalog serves the service catalog reads behind a TTL cache. The cache is
// an injected component with constructor-supplied TTLs, not a process-wide
// singleton, so two instances never share entries.
type Catalog struct {
	Br    BillingRepository
	cache *gocache.Cache
}

// NewCatalog creates the catalog read service. ttl bounds how stale a listing
// may get after a catalog change; purge is the expired-entry sweep interval.
func NewCatalog(br BillingRepository, ttl, purge time.Duration) *Catalog {
	return &Catalog{
		Br:    br,
		cache: gocache.New(ttl, purge),
	}
}

// Available lists the active catalog; onlyAddons drops base services.
func (c *Catalog) Available(ctx context.Context, onlyAddons bool) ([]*entity.Service, error) {
	key := cacheKeyAvailable
	if onlyAddons {
		key = cacheKeyAddons
	}
	if v, ok := c.cache.Get(key); ok {
		return v.([]*entity.Service), nil
	}
	svcs, err := c.Br.ListServices(ctx, onlyAddons)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, svcs)
	return svcs, nil
}

// Base lists the active base services (water, power, ...).
func (c *Catalog) Base(ctx context.Context) ([]*entity.Service, error) {
	if v, ok := c.cache.Get(cacheKeyBase); ok {
		return v.([]*entity.Service), nil
	}
	svcs, err := c.Br.ListBaseServices(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeyBase, svcs)
	return svcs, nil
}

// Invalidate drops every cached listing; call after catalog writes.
func (c *Catalog) Invalidate() {
	c.cache.Flush()
}
