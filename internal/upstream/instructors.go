// file: internal/upstream/instructors.go
// version: 1.0.0
// guid: e5f6a7b8-c9d0-1e2f-3a4b-c5d6e7f8a9b0

package upstream

import (
	"context"
	"net/http"

	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// InstructorInput is the payload for creating or updating an instructor.
type InstructorInput struct {
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone,omitempty"`
	Degree     string   `json:"degree,omitempty"`
	Specialty  []string `json:"specialty,omitempty"`
	Experience int      `json:"experience,omitempty"`
}

// ListInstructors returns one page of instructor records.
func (c *Client) ListInstructors(ctx context.Context, page, limit int) (models.Page[models.Instructor], error) {
	raw, err := c.do(ctx, http.MethodGet, "/instructors", pageQuery(page, limit), nil, "")
	if err != nil {
		return models.Page[models.Instructor]{Items: []models.Instructor{}}, err
	}
	return pageFrom[models.Instructor]("/instructors", raw)
}

// GetInstructor fetches one instructor by id.
func (c *Client) GetInstructor(ctx context.Context, id string) (*models.Instructor, error) {
	path := "/instructors/" + id
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return oneFrom[models.Instructor](path, raw)
}

// CreateInstructor registers a new instructor.
func (c *Client) CreateInstructor(ctx context.Context, input InstructorInput) (*models.Instructor, error) {
	raw, err := c.do(ctx, http.MethodPost, "/instructors", nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Instructor](raw)
}

// UpdateInstructor overwrites an instructor record.
func (c *Client) UpdateInstructor(ctx context.Context, id string, input InstructorInput) (*models.Instructor, error) {
	raw, err := c.do(ctx, http.MethodPut, "/instructors/"+id, nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Instructor](raw)
}

// DeleteInstructor removes an instructor record.
func (c *Client) DeleteInstructor(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/instructors/"+id, nil, nil, "")
	return err
}
