// Package songcatalog wraps the Spotify search API behind the Catalog
// interface. The client authenticates with the client-credentials flow,
// caches the bearer token and refreshes it once when a request comes back 401.
package songcatalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"resty.dev/v3"

	"songboard/internal/config"
)

type Catalog interface {
	Search(ctx context.Context, q string, offset int) (*SearchResponse, error)
}

type SearchResponse struct {
	Tracks Tracks `json:"tracks"`
}

type Tracks struct {
	Items  []Track `json:"items"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Next   string  `json:"next"`
}

type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Popularity   int          `json:"popularity"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Album        Album        `json:"album"`
	Artists      []Artist     `json:"artists"`
}

type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

type Album struct {
	Images []Image `json:"images"`
}

type Image struct {
	URL string `json:"url"`
}

type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type Client struct {
	http *resty.Client
	cfg  config.Spotify

	mu    sync.Mutex
	token string
}

func NewClient(cfg config.Spotify) *Client {
	return &Client{
		http: resty.New(),
		cfg:  cfg,
	}
}

func (c *Client) Close() error {
	return c.http.Close()
}

func (c *Client) Search(ctx context.Context, q string, offset int) (*SearchResponse, error) {
	// One retry: a 401 means the cached token expired.
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.ensureToken(ctx)
		if err != nil {
			return nil, err
		}

		var out SearchResponse
		res, err := c.http.R().
			WithContext(ctx).
			SetAuthToken(token).
			SetQueryParams(map[string]string{
				"q":      q,
				"type":   "track",
				"market": "US",
				"offset": strconv.Itoa(offset),
			}).
			SetResult(&out).
			Get(c.cfg.APIURL + "/v1/search")
		if err != nil {
			return nil, fmt.Errorf("searching song catalog: %w", err)
		}

		if res.StatusCode() == http.StatusUnauthorized {
			c.invalidateToken()
			continue
		}
		if res.IsError() {
			return nil, fmt.Errorf("song catalog search returned status %d", res.StatusCode())
		}

		return &out, nil
	}

	return nil, fmt.Errorf("unable to search song catalog after token refresh")
}

func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	var out tokenResponse
	res, err := c.http.R().
		WithContext(ctx).
		SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret).
		SetFormData(map[string]string{
			"grant_type": "client_credentials",
		}).
		SetResult(&out).
		Post(c.cfg.AccountsURL + "/api/token")
	if err != nil {
		return "", fmt.Errorf("fetching song catalog token: %w", err)
	}
	if res.IsError() || out.AccessToken == "" {
		return "", fmt.Errorf("song catalog token request returned status %d", res.StatusCode())
	}

	c.token = out.AccessToken
	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}
