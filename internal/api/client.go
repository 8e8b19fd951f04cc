package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/pefman/alpha-counter/internal/models"
)

var defaultHTTPClient = &http.Client{Timeout: 8 * time.Second}

// Config holds API configuration
type Config struct {
	BaseURL string
}

// Client reads roster data from another alpha-counter instance (or anything
// serving the same /api/characters shape).
type Client struct {
	config Config
	http   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		config: Config{BaseURL: baseURL},
		http:   defaultHTTPClient,
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

func (c *Client) apiGet(ctx context.Context, path string, out interface{}) error {
	base := strings.TrimRight(c.config.BaseURL, "/")
	url := base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("GET %s: api status %d", path, resp.StatusCode)
	}
	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "decode %s", path)
}

// Health is accepted both as a number and as a string ("90").
type apiCharacter struct {
	Name   string          `json:"name"`
	Health json.RawMessage `json:"health"`
}

// FetchCharacters returns the remote roster in the order it was served.
// Health must be a whole number; anything else fails the fetch. Names and
// ranges are validated by the roster.
func (c *Client) FetchCharacters(ctx context.Context) ([]models.Character, error) {
	var res []apiCharacter
	if err := c.apiGet(ctx, "/api/characters", &res); err != nil {
		return nil, err
	}
	out := make([]models.Character, 0, len(res))
	for i, ac := range res {
		name := strings.TrimSpace(ac.Name)
		health, err := parseHealth(ac.Health)
		if err != nil {
			return nil, errors.Wrapf(err, "character %d (%q)", i, name)
		}
		out = append(out, models.Character{Name: name, Health: health})
	}
	return out, nil
}

func parseHealth(raw json.RawMessage) (int, error) {
	if t := strings.TrimSpace(string(raw)); t == "" || t == "null" {
		return 0, errors.New("health is missing")
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, errors.Errorf("health %s is not a whole number", raw)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Errorf("health %q is not a whole number", s)
	}
	return n, nil
}
