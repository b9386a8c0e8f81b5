// file: internal/upstream/courses.go
// version: 1.1.0
// guid: a7b8c9d0-e1f2-3a4b-5c6d-e7f8a9b0c1d2

package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hoangdinhthien/swimadmin/internal/cache"
	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// CourseInput is the payload for creating or updating a course.
type CourseInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Price         int      `json:"price"`
	SessionNumber int      `json:"session_number"`
	Duration      string   `json:"session_number_duration,omitempty"`
	Media         []string `json:"media,omitempty"`
	IsActive      bool     `json:"is_active"`
}

func (c *Client) courseCatalogKey(ctx context.Context) string {
	return cache.Key("courses", c.tenantFor(ctx))
}

// ListCourses returns the full course catalog. The catalog changes rarely,
// so it is served cache-aside with the catalog TTL; mutations invalidate it.
func (c *Client) ListCourses(ctx context.Context) ([]models.Course, error) {
	return cache.FetchAs(c.cache, c.courseCatalogKey(ctx), c.catalogTTL, func() ([]models.Course, error) {
		q := url.Values{}
		q.Set("limit", "100")
		raw, err := c.do(ctx, http.MethodGet, "/courses", q, nil, "")
		if err != nil {
			return nil, err
		}
		page, err := pageFrom[models.Course]("/courses", raw)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
}

// GetCourse fetches one course by id.
func (c *Client) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	path := "/courses/" + id
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}
	return oneFrom[models.Course](path, raw)
}

// CreateCourse adds a course to the catalog and invalidates the cached
// listing.
func (c *Client) CreateCourse(ctx context.Context, input CourseInput) (*models.Course, error) {
	raw, err := c.do(ctx, http.MethodPost, "/courses", nil, input, "")
	if err != nil {
		return nil, err
	}
	c.cache.Delete(c.courseCatalogKey(ctx))
	return maybeOneFrom[models.Course](raw)
}

// UpdateCourse overwrites a course and invalidates the cached listing.
func (c *Client) UpdateCourse(ctx context.Context, id string, input CourseInput) (*models.Course, error) {
	raw, err := c.do(ctx, http.MethodPut, "/courses/"+id, nil, input, "")
	if err != nil {
		return nil, err
	}
	c.cache.Delete(c.courseCatalogKey(ctx))
	return maybeOneFrom[models.Course](raw)
}

// DeleteCourse removes a course and invalidates the cached listing.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/courses/"+id, nil, nil, "")
	if err != nil {
		return err
	}
	c.cache.Delete(c.courseCatalogKey(ctx))
	return nil
}
