// Package client is the Go data layer for the game store API: typed accessors
// for every endpoint plus cached, deduplicated list queries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultGamesDedup is short because games change with every edit.
	DefaultGamesDedup = 2 * time.Second
	// DefaultGenresDedup is long because genres are effectively static.
	DefaultGenresDedup = 60 * time.Second
)

// Client talks to one API base URL. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	cache  *gocache.Cache
	flight singleflight.Group

	gamesDedup  time.Duration
	genresDedup time.Duration

	Games  *GamesAPI
	Genres *GenresAPI

	cachedGames  *Query[[]GameSummary]
	cachedGenres *Query[[]Genre]
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithGamesDedup sets how long a fetched games list is reused.
func WithGamesDedup(d time.Duration) Option {
	return func(c *Client) { c.gamesDedup = d }
}

// WithGenresDedup sets how long a fetched genres list is reused.
func WithGenresDedup(d time.Duration) Option {
	return func(c *Client) { c.genresDedup = d }
}

// New returns a client for the API at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		cache:       gocache.New(gocache.NoExpiration, time.Minute),
		gamesDedup:  DefaultGamesDedup,
		genresDedup: DefaultGenresDedup,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Games = &GamesAPI{c: c}
	c.Genres = &GenresAPI{c: c}
	c.cachedGames = newQuery(c, gamesPath, c.gamesDedup, []GameSummary{})
	c.cachedGenres = newQuery(c, genresPath, c.genresDedup, []Genre{})
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CachedGames is the cached query over GET /games.
func (c *Client) CachedGames() *Query[[]GameSummary] {
	return c.cachedGames
}

// CachedGenres is the cached query over GET /genres.
func (c *Client) CachedGenres() *Query[[]Genre] {
	return c.cachedGenres
}

// do sends a JSON request. A non-2xx answer becomes an *APIError. out is left
// untouched when the response has no JSON body, such as a 204.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil || !isJSON(resp.Header.Get("Content-Type")) {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// APIError is a non-success answer from the API.
type APIError struct {
	StatusCode int
	Message    string
	// ValidationErrors maps a field name to its messages for 400 validation failures.
	ValidationErrors map[string][]string
}

func (e *APIError) Error() string {
	return e.Message
}

// FieldErrors flattens ValidationErrors to the first message per field,
// keyed by field name with a lower-case first letter.
func (e *APIError) FieldErrors() FieldErrors {
	if len(e.ValidationErrors) == 0 {
		return nil
	}
	out := make(FieldErrors, len(e.ValidationErrors))
	for field, msgs := range e.ValidationErrors {
		if len(msgs) == 0 || field == "" {
			continue
		}
		out[strings.ToLower(field[:1])+field[1:]] = msgs[0]
	}
	return out
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err carries field validation errors.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && len(apiErr.ValidationErrors) > 0
}

type errorBody struct {
	Title   string              `json:"title"`
	Message string              `json:"message"`
	Detail  string              `json:"detail"`
	Errors  map[string][]string `json:"errors"`
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("API Error: %d", resp.StatusCode),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		if text := strings.TrimSpace(string(raw)); text != "" {
			apiErr.Message = text
		}
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	switch {
	case body.Errors != nil:
		apiErr.ValidationErrors = body.Errors
		apiErr.Message = "Validation error"
		if body.Title != "" {
			apiErr.Message = body.Title
		}
	case body.Message != "":
		apiErr.Message = body.Message
	case body.Detail != "":
		apiErr.Message = body.Detail
	}
	return apiErr
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
