// Package tmdb wraps The Movie Database HTTP API. The client is pure
// request/response: given a catalog ID it returns a normalized detail
// record, and given free text it returns one page of ranked candidates.
//
// Failures are deliberately coarse: a 404 maps to ErrNotFound, everything
// else (network, non-2xx, malformed body) to a wrapped transient error.
// Callers treat enrichment as best-effort and degrade gracefully.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/maevebot/maeve/internal/metrics"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p/w500"
)

// ErrNotFound is returned when the remote catalog has no movie with the
// requested ID.
var ErrNotFound = errors.New("tmdb: movie not found")

// Details is the normalized record for one movie.
type Details struct {
	Title       string
	Overview    string
	ReleaseYear int
	// PosterURL and BackdropURL are fully-qualified display URLs, or empty
	// when the remote record has no artwork.
	PosterURL   string
	BackdropURL string
	Rating      float64 // 0-10, 0 when unrated
	VoteCount   int
	Genres      []string
	Runtime     int // minutes, 0 when unknown
}

// SearchResult is one candidate from a free-text search, in remote ranking
// order.
type SearchResult struct {
	ID          int
	Title       string
	ReleaseYear int
	PosterURL   string
	Overview    string
}

// Client calls the TMDB API. Construct with New; the zero value is not
// usable.
type Client struct {
	http    *resty.Client
	apiKey  string
	limiter *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests to point the
// client at a local server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.http.SetBaseURL(u) }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithRateLimit bounds outbound requests to rps with the given burst.
// rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New constructs a Client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(10 * time.Second),
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(4), 8),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// wire shapes

type movieResponse struct {
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Runtime      int     `json:"runtime"`
	Genres       []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

type searchResponse struct {
	Results []struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		ReleaseDate string `json:"release_date"`
		PosterPath  string `json:"poster_path"`
		Overview    string `json:"overview"`
	} `json:"results"`
}

// MovieDetails fetches the detail record for one TMDB movie ID. The ID must
// be positive.
func (c *Client) MovieDetails(ctx context.Context, tmdbID int) (*Details, error) {
	if tmdbID <= 0 {
		return nil, fmt.Errorf("tmdb: invalid movie id %d", tmdbID)
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	var body movieResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":  c.apiKey,
			"language": "en-US",
		}).
		SetResult(&body).
		Get("/movie/" + strconv.Itoa(tmdbID))
	if err != nil {
		metrics.TMDBRequest("details", "error")
		return nil, fmt.Errorf("tmdb: fetch movie %d: %w", tmdbID, err)
	}
	if resp.StatusCode() == 404 {
		metrics.TMDBRequest("details", "not_found")
		return nil, ErrNotFound
	}
	if resp.IsError() {
		metrics.TMDBRequest("details", "error")
		return nil, fmt.Errorf("tmdb: movie %d: unexpected status %d", tmdbID, resp.StatusCode())
	}
	metrics.TMDBRequest("details", "ok")

	d := &Details{
		Title:       body.Title,
		Overview:    body.Overview,
		ReleaseYear: yearOf(body.ReleaseDate),
		PosterURL:   imageURL(body.PosterPath),
		BackdropURL: imageURL(body.BackdropPath),
		Rating:      body.VoteAverage,
		VoteCount:   body.VoteCount,
		Runtime:     body.Runtime,
	}
	for _, g := range body.Genres {
		d.Genres = append(d.Genres, g.Name)
	}
	return d, nil
}

// SearchMovies returns the first page of candidates matching query, in
// remote ranking order.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]SearchResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	var body searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":  c.apiKey,
			"query":    query,
			"language": "en-US",
			"page":     "1",
		}).
		SetResult(&body).
		Get("/search/movie")
	if err != nil {
		metrics.TMDBRequest("search", "error")
		return nil, fmt.Errorf("tmdb: search %q: %w", query, err)
	}
	if resp.IsError() {
		metrics.TMDBRequest("search", "error")
		return nil, fmt.Errorf("tmdb: search %q: unexpected status %d", query, resp.StatusCode())
	}
	metrics.TMDBRequest("search", "ok")

	out := make([]SearchResult, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, SearchResult{
			ID:          r.ID,
			Title:       r.Title,
			ReleaseYear: yearOf(r.ReleaseDate),
			PosterURL:   imageURL(r.PosterPath),
			Overview:    r.Overview,
		})
	}
	return out, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// yearOf extracts the year from a TMDB "2006-01-02" date, 0 when absent or
// malformed.
func yearOf(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return t.Year()
}

// imageURL resolves a relative artwork path against the image CDN.
func imageURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + path
}
