// file: internal/upstream/auth.go
// version: 1.1.0
// guid: b4c5d6e7-f8a9-0b1c-2d3e-f4a5b6c7d8e9

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/hoangdinhthien/swimadmin/internal/cache"
	"github.com/hoangdinhthien/swimadmin/internal/dedup"
	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// Login exchanges credentials for a bearer token. The login envelope is a
// plain `{"data":{...}}` object on current backends but has been seen in
// the doubly-nested form too, so both are tried.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	raw, err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, "")
	if err != nil {
		return nil, err
	}

	if data := gjson.GetBytes(raw, "data"); data.IsObject() {
		var out models.LoginResult
		if err := json.Unmarshal([]byte(data.Raw), &out); err != nil {
			return nil, fmt.Errorf("bad login payload: %w", err)
		}
		return &out, nil
	}
	return oneFrom[models.LoginResult]("/auth/login", raw)
}

// CurrentUser fetches the authenticated profile. Concurrent callers are
// collapsed into one upstream request; the result is not cached across
// time, so a later call always refetches.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	key := cache.Key("profile", c.tenantFor(ctx))
	return dedup.Do(c.flights, key, func() (*models.User, error) {
		path := "/auth/me"
		raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
		if err != nil {
			return nil, err
		}
		return oneFrom[models.User](path, raw)
	})
}

// ListTenants returns the tenants the current account may administer.
func (c *Client) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	raw, err := c.do(ctx, http.MethodGet, "/tenants", nil, nil, "")
	if err != nil {
		return nil, err
	}
	page, err := pageFrom[models.Tenant]("/tenants", raw)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
