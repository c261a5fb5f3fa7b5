package openproject

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	dayLayout = "2006-01-02"

	// The API authenticates API-key access as basic auth with the literal
	// user "apikey" and the key as password.
	basicAuthUser = "apikey"

	timeEntriesPath = "/api/v3/time_entries"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient httpDoer
}

// HTTPClient talks to one OpenProject instance. All calls are blocking and
// sequential; the client holds no mutable state.
type HTTPClient struct {
	baseURL    string
	base       *url.URL
	apiKey     string
	userAgent  string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		base:       parsedBase,
		apiKey:     apiKey,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

// FetchError wraps a failed API request with the URL that failed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TimeEntriesURL builds the first-page query for one user's entries between
// from and to inclusive. Filtering and sorting happen server-side: spent_on
// ascending, then id ascending, so pages come back in stable chronological
// order.
func (c *HTTPClient) TimeEntriesURL(from, to time.Time, user string, pageSize int) string {
	filters := []map[string]map[string]any{
		{"spent_on": {
			"operator": "<>d",
			"values":   []string{from.Format(dayLayout), to.Format(dayLayout)},
		}},
		{"user_id": {
			"operator": "=",
			"values":   []string{user},
		}},
	}
	filtersJSON, _ := json.Marshal(filters)
	sortJSON, _ := json.Marshal([][]string{{"spent_on", "asc"}, {"id", "asc"}})

	query := url.Values{}
	query.Set("filters", string(filtersJSON))
	query.Set("pageSize", strconv.Itoa(pageSize))
	query.Set("sortBy", string(sortJSON))

	return c.baseURL + timeEntriesPath + "?" + query.Encode()
}

// GetOption retrieves the display value of a custom-option resource. A
// missing "value" field on the resource yields "".
func (c *HTTPClient) GetOption(ctx context.Context, href string) (string, error) {
	absolute, err := c.absoluteURL(href)
	if err != nil {
		return "", err
	}
	var option customOption
	if err := c.getJSON(ctx, absolute, &option); err != nil {
		return "", err
	}
	return option.Value, nil
}

// absoluteURL resolves an API href (usually a rooted path such as
// /api/v3/custom_options/5) against the instance base URL.
func (c *HTTPClient) absoluteURL(href string) (string, error) {
	parsed, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parse link %q: %w", href, err)
	}
	return c.base.ResolveReference(parsed).String(), nil
}

func (c *HTTPClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request GET %s: %w", rawURL, err)
	}

	req.SetBasicAuth(basicAuthUser, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &FetchError{
			URL: rawURL,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseBody))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{URL: rawURL, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
