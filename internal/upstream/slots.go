// file: internal/upstream/slots.go
// version: 1.0.0
// guid: b8c9d0e1-f2a3-4b5c-6d7e-f8a9b0c1d2e3

package upstream

import (
	"context"
	"net/http"

	"github.com/hoangdinhthien/swimadmin/internal/cache"
	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// ListSlots returns the slot catalog (the bookable time grid). Served
// cache-aside with the catalog TTL.
func (c *Client) ListSlots(ctx context.Context) ([]models.Slot, error) {
	key := cache.Key("slots", c.tenantFor(ctx))
	return cache.FetchAs(c.cache, key, c.catalogTTL, func() ([]models.Slot, error) {
		raw, err := c.do(ctx, http.MethodGet, "/slots", nil, nil, "")
		if err != nil {
			return nil, err
		}
		page, err := pageFrom[models.Slot]("/slots", raw)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
}

// GetSlot fetches one slot by id.
func (c *Client) GetSlot(ctx context.Context, id string) (*models.Slot, error) {
	path := "/slots/" + id
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return oneFrom[models.Slot](path, raw)
}
