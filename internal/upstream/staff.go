// file: internal/upstream/staff.go
// version: 1.0.0
// guid: f6a7b8c9-d0e1-2f3a-4b5c-d6e7f8a9b0c1

package upstream

import (
	"context"
	"net/http"

	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// StaffInput is the payload for creating or updating a staff member.
type StaffInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Position string `json:"position,omitempty"`
}

// ListStaff returns one page of staff records.
func (c *Client) ListStaff(ctx context.Context, page, limit int) (models.Page[models.Staff], error) {
	raw, err := c.do(ctx, http.MethodGet, "/staff", pageQuery(page, limit), nil, "")
	if err != nil {
		return models.Page[models.Staff]{Items: []models.Staff{}}, err
	}
	return pageFrom[models.Staff]("/staff", raw)
}

// GetStaff fetches one staff member by id.
func (c *Client) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	path := "/staff/" + id
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return oneFrom[models.Staff](path, raw)
}

// CreateStaff registers a new staff member.
func (c *Client) CreateStaff(ctx context.Context, input StaffInput) (*models.Staff, error) {
	raw, err := c.do(ctx, http.MethodPost, "/staff", nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Staff](raw)
}

// UpdateStaff overwrites a staff record.
func (c *Client) UpdateStaff(ctx context.Context, id string, input StaffInput) (*models.Staff, error) {
	raw, err := c.do(ctx, http.MethodPut, "/staff/"+id, nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Staff](raw)
}

// DeleteStaff removes a staff record.
func (c *Client) DeleteStaff(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/staff/"+id, nil, nil, "")
	return err
}
