// file: internal/upstream/students.go
// version: 1.0.0
// guid: d4e5f6a7-b8c9-0d1e-2f3a-b4c5d6e7f8a9

package upstream

import (
	"context"
	"net/http"

	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// StudentInput is the payload for creating or updating a student record.
type StudentInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	ParentName  string `json:"parent_name,omitempty"`
	ParentPhone string `json:"parent_phone,omitempty"`
	BirthDate   string `json:"birthday,omitempty"`
	Note        string `json:"note,omitempty"`
}

// ListStudents returns one page of student records.
func (c *Client) ListStudents(ctx context.Context, page, limit int) (models.Page[models.Student], error) {
	raw, err := c.do(ctx, http.MethodGet, "/students", pageQuery(page, limit), nil, "")
	if err != nil {
		return models.Page[models.Student]{Items: []models.Student{}}, err
	}
	return pageFrom[models.Student]("/students", raw)
}

// GetStudent fetches one student by id.
func (c *Client) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	path := "/students/" + id
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return oneFrom[models.Student](path, raw)
}

// CreateStudent registers a new student. The returned record is nil when
// the backend does not echo the created document.
func (c *Client) CreateStudent(ctx context.Context, input StudentInput) (*models.Student, error) {
	raw, err := c.do(ctx, http.MethodPost, "/students", nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Student](raw)
}

// UpdateStudent overwrites a student record.
func (c *Client) UpdateStudent(ctx context.Context, id string, input StudentInput) (*models.Student, error) {
	raw, err := c.do(ctx, http.MethodPut, "/students/"+id, nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Student](raw)
}

// DeleteStudent removes a student record.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/students/"+id, nil, nil, "")
	return err
}
