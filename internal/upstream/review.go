// file: internal/upstream/review.go
// version: 1.0.0
// guid: a3b4c5d6-e7f8-9a0b-1c2d-e3f4a5b6c7d8

package upstream

import (
	"context"
	"net/http"

	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// ListPendingReviews returns one page of data-review requests awaiting a
// manager decision.
func (c *Client) ListPendingReviews(ctx context.Context, page, limit int) (models.Page[models.ReviewRequest], error) {
	q := pageQuery(page, limit)
	q.Set("status", "pending")
	raw, err := c.do(ctx, http.MethodGet, "/reviews", q, nil, "")
	if err != nil {
		return models.Page[models.ReviewRequest]{Items: []models.ReviewRequest{}}, err
	}
	return pageFrom[models.ReviewRequest]("/reviews", raw)
}

// GetReview fetches one review request by id.
func (c *Client) GetReview(ctx context.Context, id string) (*models.ReviewRequest, error) {
	path := "/reviews/" + id
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return oneFrom[models.ReviewRequest](path, raw)
}

// ApproveReview accepts a pending change, letting the backend apply it.
func (c *Client) ApproveReview(ctx context.Context, id string) error {
	body := map[string]any{"status": "approved"}
	_, err := c.do(ctx, http.MethodPut, "/reviews/"+id, nil, body, "")
	return err
}

// RejectReview declines a pending change with a reason for the requester.
func (c *Client) RejectReview(ctx context.Context, id, reason string) error {
	body := map[string]any{"status": "rejected", "reason": reason}
	_, err := c.do(ctx, http.MethodPut, "/reviews/"+id, nil, body, "")
	return err
}
