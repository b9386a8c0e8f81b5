// file: internal/upstream/permissions.go
// version: 1.1.0
// guid: d0e1f2a3-b4c5-6d7e-8f9a-b0c1d2e3f4a5

package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hoangdinhthien/swimadmin/internal/cache"
	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// The permission endpoints require a `service` header naming the module
// whose permission catalog is being read or changed.
const permissionService = "permission"

func (c *Client) permissionCatalogKey(ctx context.Context, module string) string {
	return cache.Key("permissions", c.tenantFor(ctx), module)
}

// ListPermissions returns the permission catalog for one module. Served
// cache-aside with the catalog TTL; mutations invalidate it.
func (c *Client) ListPermissions(ctx context.Context, module string) ([]models.Permission, error) {
	key := c.permissionCatalogKey(ctx, module)
	return cache.FetchAs(c.cache, key, c.catalogTTL, func() ([]models.Permission, error) {
		q := url.Values{}
		if module != "" {
			q.Set("module", module)
		}
		raw, err := c.do(ctx, http.MethodGet, "/permissions", q, nil, permissionService)
		if err != nil {
			return nil, err
		}
		page, err := pageFrom[models.Permission]("/permissions", raw)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
}

// UpdatePermissionRoles replaces the role list allowed for a permission
// entry and invalidates the module's cached catalog.
func (c *Client) UpdatePermissionRoles(ctx context.Context, id, module string, roles []string) (*models.Permission, error) {
	body := map[string]any{"role": roles}
	raw, err := c.do(ctx, http.MethodPut, "/permissions/"+id, nil, body, permissionService)
	if err != nil {
		return nil, err
	}
	c.cache.Delete(c.permissionCatalogKey(ctx, module))
	return maybeOneFrom[models.Permission](raw)
}
