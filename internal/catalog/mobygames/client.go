// Package mobygames implements the remote catalog provider backed by the
// MobyGames v1 API.
package mobygames

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"launchmeta/internal/catalog"
	"launchmeta/internal/logging"
)

// SourceLabel is written to the sidecar's source field for records resolved
// through this provider.
const SourceLabel = "Mobygames.com"

// Cache stores successful raw responses keyed by request.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error
}

// Client provides access to the MobyGames API and implements catalog.Provider.
type Client struct {
	apiKey          string
	baseURL         string
	platform        string
	genreCategories []string
	delay           time.Duration
	httpClient      *http.Client
	cache           Cache
	sleep           func(context.Context, time.Duration) error
	logger          *slog.Logger
}

var _ catalog.Provider = (*Client)(nil)

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

// WithCache enables response caching.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithSleep replaces the courtesy delay implementation.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a MobyGames client restricted to one target platform. delay is
// waited before every network call.
func New(apiKey, baseURL, platform string, genreCategories []string, delay time.Duration, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("mobygames api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("mobygames base url required")
	}
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return nil, errors.New("target platform required")
	}
	client := &Client{
		apiKey:          apiKey,
		baseURL:         strings.TrimRight(baseURL, "/"),
		platform:        platform,
		genreCategories: append([]string(nil), genreCategories...),
		delay:           delay,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		sleep:           sleepContext,
		logger:          logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "mobygames")
	return client, nil
}

// Name implements catalog.Provider.
func (c *Client) Name() string { return "remote" }

// Source implements catalog.Provider.
func (c *Client) Source() string { return SourceLabel }

// ResolvesPlatform implements catalog.Provider; the user picks a platform release.
func (c *Client) ResolvesPlatform() bool { return false }

// Search looks up games by title and keeps those released on the target platform.
func (c *Client) Search(ctx context.Context, title string) catalog.Outcome[[]catalog.Candidate] {
	title = strings.TrimSpace(title)
	if title == "" {
		return catalog.Empty[[]catalog.Candidate]()
	}
	body, err := c.get(ctx, "/games", url.Values{"title": {title}}, "games")
	if err != nil {
		return catalog.Unavailable[[]catalog.Candidate](err)
	}
	var games []wireGame
	if err := json.Unmarshal(body["games"], &games); err != nil {
		return catalog.Unavailable[[]catalog.Candidate](fmt.Errorf("decode games: %w", err))
	}
	candidates := make([]catalog.Candidate, 0, len(games))
	for _, g := range games {
		candidate := catalog.Candidate{
			ID:        fmt.Sprint(g.GameID),
			Title:     g.Title,
			SourceURL: g.MobyURL,
			Platforms: convertPlatforms(g.Platforms),
		}
		if !candidate.HasPlatform(c.platform) {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return catalog.FoundList(candidates)
}

// Details loads the full record for a candidate.
func (c *Client) Details(ctx context.Context, candidate catalog.Candidate) catalog.Outcome[catalog.Game] {
	id := strings.TrimSpace(candidate.ID)
	if id == "" {
		return catalog.Unavailable[catalog.Game](errors.New("candidate has no game id"))
	}
	body, err := c.get(ctx, "/games/"+url.PathEscape(id), nil, "game_id", "platforms")
	if err != nil {
		return catalog.Unavailable[catalog.Game](err)
	}
	var g wireGame
	if err := decodeObject(body, &g); err != nil {
		return catalog.Unavailable[catalog.Game](fmt.Errorf("decode game: %w", err))
	}
	game := catalog.Game{
		ID:        fmt.Sprint(g.GameID),
		Title:     g.Title,
		SourceURL: g.MobyURL,
		Platforms: convertPlatforms(g.Platforms),
	}
	for _, genre := range g.Genres {
		game.Genres = append(game.Genres, catalog.Genre{Name: genre.GenreName, Category: genre.GenreCategory})
	}
	return catalog.Found(game)
}

// PlatformRelease loads release and company information for one platform.
func (c *Client) PlatformRelease(ctx context.Context, game catalog.Game, platform catalog.Platform) catalog.Outcome[catalog.PlatformRelease] {
	if strings.TrimSpace(game.ID) == "" || platform.ID <= 0 {
		return catalog.Unavailable[catalog.PlatformRelease](errors.New("platform lookup requires game and platform ids"))
	}
	path := fmt.Sprintf("/games/%s/platforms/%d", url.PathEscape(game.ID), platform.ID)
	body, err := c.get(ctx, path, nil, "releases")
	if err != nil {
		return catalog.Unavailable[catalog.PlatformRelease](err)
	}
	var detail wirePlatformDetail
	if err := decodeObject(body, &detail); err != nil {
		return catalog.Unavailable[catalog.PlatformRelease](fmt.Errorf("decode platform: %w", err))
	}
	release := catalog.PlatformRelease{
		GameID:           game.ID,
		PlatformID:       platform.ID,
		PlatformName:     firstNonEmpty(detail.PlatformName, platform.Name),
		FirstReleaseDate: firstNonEmpty(detail.FirstReleaseDate, platform.FirstReleaseDate),
	}
	for _, r := range detail.Releases {
		if release.ReleaseDate == "" {
			release.ReleaseDate = r.ReleaseDate
		}
		for _, company := range r.Companies {
			release.Companies = append(release.Companies, catalog.Company{
				Name:        company.CompanyName,
				Role:        company.Role,
				ReleaseDate: r.ReleaseDate,
			})
		}
	}
	return catalog.Found(release)
}

// Companies projects the companies credited on a release.
func (c *Client) Companies(_ context.Context, release catalog.PlatformRelease) catalog.Outcome[[]catalog.Company] {
	return catalog.FoundList(append([]catalog.Company(nil), release.Companies...))
}

// Genres returns the game's genres limited to the configured categories.
func (c *Client) Genres(_ context.Context, game catalog.Game) catalog.Outcome[[]catalog.Genre] {
	return catalog.FoundList(catalog.FilterGenres(game.Genres, c.genreCategories))
}

// Images lists screenshots for a platform release.
func (c *Client) Images(ctx context.Context, release catalog.PlatformRelease) catalog.Outcome[[]catalog.Image] {
	if strings.TrimSpace(release.GameID) == "" || release.PlatformID <= 0 {
		return catalog.Unavailable[[]catalog.Image](errors.New("screenshot lookup requires game and platform ids"))
	}
	path := fmt.Sprintf("/games/%s/platforms/%d/screenshots", url.PathEscape(release.GameID), release.PlatformID)
	body, err := c.get(ctx, path, nil, "screenshots")
	if err != nil {
		return catalog.Unavailable[[]catalog.Image](err)
	}
	var shots []wireScreenshot
	if err := json.Unmarshal(body["screenshots"], &shots); err != nil {
		return catalog.Unavailable[[]catalog.Image](fmt.Errorf("decode screenshots: %w", err))
	}
	images := make([]catalog.Image, 0, len(shots))
	for _, s := range shots {
		if strings.TrimSpace(s.Image) == "" {
			continue
		}
		images = append(images, catalog.Image{Caption: s.Caption, SourceURL: s.Image})
	}
	return catalog.FoundList(images)
}

// get performs one API call. The query is built fresh for every call from the
// fixed credentials plus extra; requiredKeys must all be present at the top
// level of the JSON object for the response to count as a success.
func (c *Client) get(ctx context.Context, path string, extra url.Values, requiredKeys ...string) (map[string]json.RawMessage, error) {
	params := url.Values{}
	for key, values := range extra {
		params[key] = append([]string(nil), values...)
	}
	params.Set("format", "normal")
	cacheKey := path + "?" + params.Encode()
	params.Set("api_key", c.apiKey)

	if c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, cacheKey)
		if err != nil {
			c.logger.Debug("response cache read failed", logging.String("key", cacheKey), logging.Error(err))
		} else if ok {
			if body, err := decodeTopLevel(cached, requiredKeys); err == nil {
				c.logger.Debug("response cache hit", logging.String("key", cacheKey))
				return body, nil
			}
		}
	}

	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse mobygames url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	if err := c.sleep(ctx, c.delay); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mobygames %s returned %d (latency=%v)", path, resp.StatusCode, latency)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read mobygames response: %w", err)
	}
	body, err := decodeTopLevel(raw, requiredKeys)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("mobygames request complete", logging.String("path", path), logging.Duration("latency", latency))

	if c.cache != nil {
		if err := c.cache.Put(ctx, cacheKey, raw); err != nil {
			c.logger.Debug("response cache write failed", logging.String("key", cacheKey), logging.Error(err))
		}
	}
	return body, nil
}

// ErrMissingKey reports a response without an expected top-level key.
var ErrMissingKey = errors.New("response missing expected key")

func decodeTopLevel(raw []byte, requiredKeys []string) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode mobygames response: %w", err)
	}
	for _, key := range requiredKeys {
		if _, ok := body[key]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingKey, key)
		}
	}
	return body, nil
}

func decodeObject(body map[string]json.RawMessage, dst any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func convertPlatforms(in []wirePlatform) []catalog.Platform {
	out := make([]catalog.Platform, 0, len(in))
	for _, p := range in {
		out = append(out, catalog.Platform{
			ID:               p.PlatformID,
			Name:             p.PlatformName,
			FirstReleaseDate: p.FirstReleaseDate,
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
