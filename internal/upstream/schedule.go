// file: internal/upstream/schedule.go
// version: 1.0.0
// guid: f2a3b4c5-d6e7-8f9a-0b1c-d2e3f4a5b6c7

package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hoangdinhthien/swimadmin/internal/models"
)

// Schedule returns calendar entries for the inclusive date range
// [from, to], dates formatted YYYY-MM-DD.
func (c *Client) Schedule(ctx context.Context, from, to string) ([]models.ScheduleEntry, error) {
	q := url.Values{}
	q.Set("start_date", from)
	q.Set("end_date", to)
	raw, err := c.do(ctx, http.MethodGet, "/schedules", q, nil, "")
	if err != nil {
		return nil, err
	}
	page, err := pageFrom[models.ScheduleEntry]("/schedules", raw)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// CreateScheduleEntry books a class into a slot on a date.
func (c *Client) CreateScheduleEntry(ctx context.Context, entry models.ScheduleEntry) (*models.ScheduleEntry, error) {
	raw, err := c.do(ctx, http.MethodPost, "/schedules", nil, entry, "")
	if err != nil {
		return nil, err
	}
	return maybeOneFrom[models.ScheduleEntry](raw)
}

// DeleteScheduleEntry removes a calendar entry.
func (c *Client) DeleteScheduleEntry(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/schedules/"+id, nil, nil, "")
	return err
}
