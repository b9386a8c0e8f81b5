// file: internal/upstream/classes.go
// version: 1.1.0
// guid: e1f2a3b4-c5d6-7e8f-9a0b-c1d2e3f4a5b6

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hoangdinhthien/swimadmin/internal/envelope"
	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// ClassInput is the payload for creating or updating a class.
type ClassInput struct {
	Name         string `json:"name"`
	CourseID     string `json:"course"`
	InstructorID string `json:"instructor,omitempty"`
	PoolID       string `json:"pool,omitempty"`
}

// ListClasses returns one page of classes, optionally filtered by course.
func (c *Client) ListClasses(ctx context.Context, page, limit int, courseID string) (models.Page[models.Class], error) {
	q := pageQuery(page, limit)
	if courseID != "" {
		q.Set("course", courseID)
	}
	raw, err := c.do(ctx, http.MethodGet, "/classes", q, nil, "")
	if err != nil {
		return models.Page[models.Class]{Items: []models.Class{}}, err
	}
	return pageFrom[models.Class]("/classes", raw)
}

// GetClass fetches one class by id.
func (c *Client) GetClass(ctx context.Context, id string) (*models.Class, error) {
	path := "/classes/" + id
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return oneFrom[models.Class](path, raw)
}

// CreateClass opens a new class for a course.
func (c *Client) CreateClass(ctx context.Context, input ClassInput) (*models.Class, error) {
	raw, err := c.do(ctx, http.MethodPost, "/classes", nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Class](raw)
}

// UpdateClass overwrites a class.
func (c *Client) UpdateClass(ctx context.Context, id string, input ClassInput) (*models.Class, error) {
	raw, err := c.do(ctx, http.MethodPut, "/classes/"+id, nil, input, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.Class](raw)
}

// ClassMembers returns the roster of a class. The backend nests this list
// one level differently than regular listings (data[0][0].data), so it goes
// through the dedicated extractor; mismatches yield an empty roster.
func (c *Client) ClassMembers(ctx context.Context, id string) ([]models.User, error) {
	path := "/classes/" + id + "/members"
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	var members []models.User
	if err := json.Unmarshal(envelope.NestedList(raw), &members); err != nil {
		return nil, fmt.Errorf("bad roster payload from %s: %w", path, err)
	}
	if members == nil {
		members = []models.User{}
	}
	return members, nil
}

// AddClassMember adds a student to the roster.
func (c *Client) AddClassMember(ctx context.Context, classID, userID string) error {
	body := map[string]any{"member": userID}
	_, err := c.do(ctx, http.MethodPost, "/classes/"+classID+"/members", nil, body, "")
	return err
}

// RemoveClassMember removes a student from the roster.
func (c *Client) RemoveClassMember(ctx context.Context, classID, userID string) error {
	q := url.Values{}
	q.Set("member", userID)
	_, err := c.do(ctx, http.MethodDelete, "/classes/"+classID+"/members", q, nil, "")
	return err
}
