// Package api is the REST client for the fellowship backend.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/nikbrunner/fellows/internal/model"
)

// Client calls the backend endpoints. Errors wrap model.ErrNetwork or
// model.ErrServer.
type Client struct {
	req requester
}

// New creates a client sending requests through doer.
func New(doer Doer, logger *slog.Logger) *Client {
	return &Client{req: requester{doer: doer, logger: logger}}
}

// ListFellowships fetches one page for filter.
func (c *Client) ListFellowships(ctx context.Context, filter model.FilterState) (*model.Page, error) {
	var page model.Page
	if err := c.req.do(ctx, http.MethodGet, "/api/fellowships", filter.Query(), nil, &page); err != nil {
		return nil, fmt.Errorf("list fellowships: %w", err)
	}
	if page.Fellowships == nil {
		page.Fellowships = []model.Fellowship{}
	}
	return &page, nil
}

type favoriteBody struct {
	Favorited int `json:"favorited"`
}

// SetFavorite stores the favorite flag for id.
func (c *Client) SetFavorite(ctx context.Context, id string, favorited bool) error {
	body := favoriteBody{}
	if favorited {
		body.Favorited = 1
	}
	return c.post(ctx, fellowshipPath(id, "favorite"), body, "favorite")
}

// Remove hides id from the listing.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.post(ctx, fellowshipPath(id, "remove"), nil, "remove")
}

// Undo restores a removed id.
func (c *Client) Undo(ctx context.Context, id string) error {
	return c.post(ctx, fellowshipPath(id, "undo"), nil, "undo")
}

// Refresh asks the backend to reload its data set.
func (c *Client) Refresh(ctx context.Context) error {
	return c.post(ctx, "/api/refresh", nil, "refresh")
}

// Process runs the backend's processing step over scraped output.
func (c *Client) Process(ctx context.Context) error {
	return c.post(ctx, "/process", nil, "process")
}

// Scrape starts a scrape run.
func (c *Client) Scrape(ctx context.Context, req model.ScrapeRequest) error {
	return c.post(ctx, "/scrape", req, "scrape")
}

// SaveFilters stores the scrape filter selection.
func (c *Client) SaveFilters(ctx context.Context, filters model.ScrapeFilters) error {
	return c.post(ctx, "/api/filters", filters.Normalize(), "save filters")
}

// SaveAPIKey stores a provider key. An empty key is not sent.
func (c *Client) SaveAPIKey(ctx context.Context, provider model.APIKeyProvider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	path := "/api/api_key"
	if provider == model.ProviderPerplexity {
		path = "/api/api_key/perplexity"
	}
	return c.post(ctx, path, map[string]string{provider.Field(): key}, "save api key")
}

// Status reports whether processed data is available.
func (c *Client) Status(ctx context.Context) (*model.Status, error) {
	var status model.Status
	if err := c.req.do(ctx, http.MethodGet, "/api/status", nil, nil, &status); err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	return &status, nil
}

func (c *Client) post(ctx context.Context, path string, body any, op string) error {
	var res model.Result
	if err := c.req.do(ctx, http.MethodPost, path, nil, body, &res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkResult(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func fellowshipPath(id, action string) string {
	return "/api/fellowships/" + url.PathEscape(id) + "/" + action
}
