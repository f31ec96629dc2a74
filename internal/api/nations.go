package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pthm/geoadmin/internal/model"
)

func (c *Client) ListNations(ctx context.Context) ([]model.Nation, error) {
	return getList[model.Nation](ctx, c, nil, "api", "nations")
}

// GetNation looks a nation up by id. The backend has no single-nation
// endpoint, so this scans the full list.
func (c *Client) GetNation(ctx context.Context, nationID int64) (model.Nation, error) {
	nations, err := c.ListNations(ctx)
	if err != nil {
		return model.Nation{}, err
	}
	for _, n := range nations {
		if n.ID == nationID {
			return n, nil
		}
	}
	return model.Nation{}, fmt.Errorf("nation %d: %w", nationID, ErrNotFound)
}

// NationsOfCountry lists a country's nations. 204 yields an empty slice.
func (c *Client) NationsOfCountry(ctx context.Context, countryID int64) ([]model.Nation, error) {
	return getList[model.Nation](ctx, c, nil, "api", "countries", id(countryID), "nations")
}

func (c *Client) AddNationToCountry(ctx context.Context, countryID int64, nation model.Nation) error {
	nation.ID = 0
	return c.send(ctx, http.MethodPost, nation, "api", "countries", id(countryID), "nations")
}

func (c *Client) UpdateNation(ctx context.Context, nationID int64, nation model.Nation) error {
	nation.ID = 0
	fields := url.Values{
		"name":     {nation.Name},
		"language": {nation.Language},
		"religion": {nation.Religion},
	}
	return c.put(ctx, fields, nation, "api", "nations", id(nationID))
}

func (c *Client) DeleteNation(ctx context.Context, nationID int64) error {
	return c.send(ctx, http.MethodDelete, nil, "api", "nations", id(nationID))
}

func (c *Client) DeleteNationFromCountry(ctx context.Context, countryID, nationID int64) error {
	return c.send(ctx, http.MethodDelete, nil, "api", "countries", id(countryID), "nations", id(nationID))
}
