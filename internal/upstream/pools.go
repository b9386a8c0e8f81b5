// file: internal/upstream/pools.go
// version: 1.0.0
// guid: c9d0e1f2-a3b4-5c6d-7e8f-a9b0c1d2e3f4

package upstream

import (
	"context"
	"net/http"

	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// PoolInput is the payload for creating or updating a pool resource.
type PoolInput struct {
	Title    string `json:"title"`
	Type     string `json:"type,omitempty"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"is_active"`
}

// ListPools returns one page of pool resources.
func (c *Client) ListPools(ctx context.Context, page, limit int) (models.Page[models.Pool], error) {
	raw, err := c.do(ctx, http.MethodGet, "/pools", pageQuery(page, limit), nil, "")
	if err != nil {
		return models.Page[models.Pool]{Items: []models.Pool{}}, err
	}
	return pageFrom[models.Pool]("/pools", raw)
}

// GetPool fetches one pool by id.
func (c *Client) GetPool(ctx context.Context, id string) (*models.Pool, error) {
	path := "/pools/" + id
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return oneFrom[models.Pool](path, raw)
}

// CreatePool registers a pool resource.
func (c *Client) CreatePool(ctx context.Context, input PoolInput) (*models.Pool, error) {
	raw, err := c.do(ctx, http.MethodPost, "/pools", nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Pool](raw)
}

// UpdatePool overwrites a pool resource.
func (c *Client) UpdatePool(ctx context.Context, id string, input PoolInput) (*models.Pool, error) {
	raw, err := c.do(ctx, http.MethodPut, "/pools/"+id, nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Pool](raw)
}

// DeletePool removes a pool resource.
func (c *Client) DeletePool(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/pools/"+id, nil, nil, "")
	return err
}
