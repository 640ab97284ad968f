package jikan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"animebuddy/internal/anime"
	"animebuddy/internal/logging"
	"animebuddy/internal/services"
)

const (
	// DefaultBaseURL is the public Jikan v4 endpoint.
	DefaultBaseURL = "https://api.jikan.moe/v4"

	defaultTimeout   = 15 * time.Second
	defaultRPS       = 3
	defaultBurst     = 3
	defaultTopLimit  = 5
	maxErrorBodySize = 4 << 10
)

// Client talks to the Jikan REST catalog. It is safe for concurrent use; every
// request first waits on a shared client-side rate limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit overrides the request budget. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Jikan client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "jikan", "new", "parse base url", err)
	}
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
		limiter: rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
	}
	client.logger = logging.NewComponentLogger(client.logger, "jikan")
	return client, nil
}

// SearchByTitle returns at most one record: the catalog's first match.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]anime.Record, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrNoMatch, "jikan", "search", "title required", nil)
	}
	params := url.Values{}
	params.Set("q", title)
	params.Set("limit", "1")

	var payload listResponse
	if err := c.get(ctx, "search", "/anime", params, &payload); err != nil {
		return nil, err
	}
	records := toRecords(payload.Data)
	if len(records) > 1 {
		records = records[:1]
	}
	return records, nil
}

// FetchFull loads the full record for a catalog id.
func (c *Client) FetchFull(ctx context.Context, id int) (anime.Record, error) {
	if id <= 0 {
		return anime.Record{}, services.Wrap(services.ErrNoMatch, "jikan", "fetch full", "invalid id "+strconv.Itoa(id), nil)
	}
	var payload singleResponse
	if err := c.get(ctx, "fetch full", "/anime/"+strconv.Itoa(id)+"/full", nil, &payload); err != nil {
		return anime.Record{}, err
	}
	if payload.Data == nil {
		return anime.Record{}, services.Wrap(services.ErrMalformedResponse, "jikan", "fetch full", "missing data", nil)
	}
	return payload.Data.toRecord(), nil
}

// FetchByTitle searches for title and loads the full record of the first match.
func (c *Client) FetchByTitle(ctx context.Context, title string) (anime.Record, error) {
	id, err := c.resolveID(ctx, title)
	if err != nil {
		return anime.Record{}, err
	}
	return c.FetchFull(ctx, id)
}

// FetchRecommendations returns the titles the catalog recommends for fans of seedTitle.
func (c *Client) FetchRecommendations(ctx context.Context, seedTitle string) ([]anime.Record, error) {
	id, err := c.resolveID(ctx, seedTitle)
	if err != nil {
		return nil, err
	}
	var payload recommendationResponse
	if err := c.get(ctx, "recommendations", "/anime/"+strconv.Itoa(id)+"/recommendations", nil, &payload); err != nil {
		return nil, err
	}
	records := make([]anime.Record, 0, len(payload.Data))
	for _, item := range payload.Data {
		records = append(records, anime.Record{
			ID:       item.Entry.MalID,
			Title:    strings.TrimSpace(item.Entry.Title),
			URL:      item.Entry.URL,
			ImageURL: pickImage(item.Entry.Images),
		})
	}
	return records, nil
}

// FetchTop returns the highest ranked titles, optionally narrowed by genre and year.
func (c *Client) FetchTop(ctx context.Context, filter anime.TopFilter) ([]anime.Record, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	if !filter.HasGenre() && filter.Year <= 0 {
		var payload listResponse
		if err := c.get(ctx, "top", "/top/anime", params, &payload); err != nil {
			return nil, err
		}
		return toRecords(payload.Data), nil
	}

	if filter.HasGenre() {
		genreID, err := c.ResolveGenre(ctx, filter.Genre)
		if err != nil {
			return nil, err
		}
		params.Set("genres", strconv.Itoa(genreID))
	}
	if filter.Year > 0 {
		year := strconv.Itoa(filter.Year)
		params.Set("start_date", year+"-01-01")
		params.Set("end_date", year+"-12-31")
	}
	params.Set("order_by", "score")
	params.Set("sort", "desc")

	var payload listResponse
	if err := c.get(ctx, "top filtered", "/anime", params, &payload); err != nil {
		return nil, err
	}
	return toRecords(payload.Data), nil
}

// TopPage returns one page of the top list for browsing.
func (c *Client) TopPage(ctx context.Context, page int) (anime.Page, error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var payload listResponse
	if err := c.get(ctx, "top page", "/top/anime", params, &payload); err != nil {
		return anime.Page{}, err
	}
	current := payload.Pagination.CurrentPage
	if current == 0 {
		current = page
	}
	return anime.Page{
		Records:         toRecords(payload.Data),
		CurrentPage:     current,
		LastVisiblePage: payload.Pagination.LastVisiblePage,
		HasNextPage:     payload.Pagination.HasNextPage,
	}, nil
}

// Genres lists the catalog's genre directory as name to id.
func (c *Client) Genres(ctx context.Context) (map[string]int, error) {
	var payload genreResponse
	if err := c.get(ctx, "genres", "/genres/anime", nil, &payload); err != nil {
		return nil, err
	}
	genres := make(map[string]int, len(payload.Data))
	for _, g := range payload.Data {
		if name := strings.TrimSpace(g.Name); name != "" && g.MalID > 0 {
			genres[name] = g.MalID
		}
	}
	return genres, nil
}

// ResolveGenre maps a genre name onto its catalog id, ignoring case and
// treating spaces, hyphens, and underscores as equivalent.
func (c *Client) ResolveGenre(ctx context.Context, name string) (int, error) {
	want := genreKey(name)
	if want == "" {
		return 0, services.Wrap(services.ErrNoMatch, "jikan", "resolve genre", "genre required", nil)
	}
	genres, err := c.Genres(ctx)
	if err != nil {
		return 0, err
	}
	for candidate, id := range genres {
		if genreKey(candidate) == want {
			return id, nil
		}
	}
	return 0, services.Wrap(services.ErrNoMatch, "jikan", "resolve genre", fmt.Sprintf("unknown genre %q", name), nil)
}

func genreKey(name string) string {
	replacer := strings.NewReplacer("-", " ", "_", " ")
	return strings.Join(strings.Fields(strings.ToLower(replacer.Replace(name))), " ")
}

func (c *Client) resolveID(ctx context.Context, title string) (int, error) {
	matches, err := c.SearchByTitle(ctx, title)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, services.Wrap(services.ErrNoMatch, "jikan", "search", fmt.Sprintf("no results for %q", strings.TrimSpace(title)), nil)
	}
	return matches[0].ID, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, target any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "jikan", op, "parse url", err)
	}
	if len(params) > 0 {
		endpoint.RawQuery = params.Encode()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return services.Wrap(services.ErrNetwork, "jikan", op, "rate limit wait", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "jikan", op, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrNetwork, "jikan", op, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("jikan request",
		logging.String("operation", op),
		logging.String("path", path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &services.HTTPStatusError{Service: "jikan " + op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return services.Wrap(services.ErrMalformedResponse, "jikan", op, "decode response", err)
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return services.Wrap(services.ErrMalformedResponse, "jikan", op, "decode response", err)
		}
		return services.Wrap(services.ErrNetwork, "jikan", op, "read response", err)
	}
	return nil
}
