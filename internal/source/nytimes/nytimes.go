// Package nytimes implements the source.Archive capability against the
// New York Times Article Search API.
package nytimes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sydlexius/presswatch/internal/source"
	"github.com/sydlexius/presswatch/internal/version"
)

const (
	defaultBaseURL = "https://api.nytimes.com/svc/search/v2/articlesearch.json"

	// The API returns at most 10 docs per page and throttles hard at
	// 10 requests per minute. On 429 we back off 8s, 16s, 32s before
	// giving up.
	maxAttempts = 3
)

// retryBaseDelay is the first 429 backoff step. Package tests shrink it.
var retryBaseDelay = 8 * time.Second

// Adapter implements source.Archive for the NYT Article Search API.
type Adapter struct {
	client     *http.Client
	limiter    *source.RateLimiterMap
	logger     *slog.Logger
	apiKey     string
	artistName string
	baseURL    string
}

// New creates an NYT adapter with the default base URL. artistName is the
// subject of SearchArtist's broad coverage queries and is quoted alongside
// album titles in SearchAlbum.
func New(apiKey, artistName string, limiter *source.RateLimiterMap, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(apiKey, artistName, limiter, logger, defaultBaseURL)
}

// NewWithBaseURL creates an NYT adapter with a custom base URL (for testing).
func NewWithBaseURL(apiKey, artistName string, limiter *source.RateLimiterMap, logger *slog.Logger, baseURL string) *Adapter {
	return &Adapter{
		client:     &http.Client{Timeout: 15 * time.Second},
		limiter:    limiter,
		logger:     logger.With(slog.String("source", string(source.NameNYTimes))),
		apiKey:     apiKey,
		artistName: artistName,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the source name.
func (a *Adapter) Name() source.Name { return source.NameNYTimes }

// Search runs a free-text query, fetching up to pages result pages within
// the window. Fetching stops early at the first empty page.
func (a *Adapter) Search(ctx context.Context, query string, pages int, w source.Window) ([]source.Article, error) {
	docs, err := a.SearchDocs(ctx, query, pages, w)
	if err != nil {
		return nil, err
	}
	return ToArticles(docs), nil
}

// SearchArtist fetches the broad coverage corpus for the configured artist.
func (a *Adapter) SearchArtist(ctx context.Context, pages int) ([]source.Article, error) {
	return a.Search(ctx, a.artistName, pages, source.Window{})
}

// SearchAlbum runs an album-scoped query: the album title and the artist
// name, both quoted, e.g. `"1989" "Taylor Swift"`.
func (a *Adapter) SearchAlbum(ctx context.Context, albumTitle string, pages int, w source.Window) ([]source.Article, error) {
	return a.Search(ctx, fmt.Sprintf("%q %q", albumTitle, a.artistName), pages, w)
}

// SearchDocs is Search without the tabular mapping, returning raw documents.
func (a *Adapter) SearchDocs(ctx context.Context, query string, pages int, w source.Window) ([]Doc, error) {
	var all []Doc
	for page := 0; page < pages; page++ {
		docs, err := a.getPage(ctx, query, page, w)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			break
		}
		all = append(all, docs...)
	}
	return all, nil
}

// ToArticles converts raw documents into the tabular article form.
func ToArticles(docs []Doc) []source.Article {
	articles := make([]source.Article, 0, len(docs))
	for _, d := range docs {
		articles = append(articles, source.Article{
			PubDate:      d.PubDate,
			Headline:     d.Headline.Main,
			Snippet:      d.Snippet,
			Section:      d.SectionName,
			Source:       d.Source,
			NewsDesk:     d.NewsDesk,
			MaterialType: d.TypeOfMaterial,
			URL:          d.WebURL,
		})
	}
	return articles
}

// getPage fetches a single result page, retrying on 429 with exponential
// backoff before reporting the source unavailable.
func (a *Adapter) getPage(ctx context.Context, query string, page int, w source.Window) ([]Doc, error) {
	params := url.Values{
		"q":       {query},
		"api-key": {a.apiKey},
		"page":    {strconv.Itoa(page)},
	}
	if w.Begin != "" {
		params.Set("begin_date", w.Begin)
	}
	if w.End != "" {
		params.Set("end_date", w.End)
	}
	reqURL := a.baseURL + "?" + params.Encode()

	lastStatus := 0
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := a.limiter.Wait(ctx, source.NameNYTimes); err != nil {
			return nil, &source.ErrSourceUnavailable{
				Source: source.NameNYTimes,
				Cause:  fmt.Errorf("rate limiter: %w", err),
			}
		}

		docs, status, err := a.doRequest(ctx, reqURL)
		if err != nil {
			return nil, err
		}
		if status == http.StatusOK {
			return docs, nil
		}

		lastStatus = status
		delay := retryBaseDelay << attempt
		a.logger.Warn("throttled, backing off",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay))
		if err := sleepCtx(ctx, delay); err != nil {
			return nil, &source.ErrSourceUnavailable{
				Source: source.NameNYTimes,
				Cause:  err,
			}
		}
	}

	return nil, &source.ErrSourceUnavailable{
		Source: source.NameNYTimes,
		Cause:  fmt.Errorf("HTTP %d after %d attempts", lastStatus, maxAttempts),
	}
}

// doRequest performs one GET. A 429 is reported via the status return so the
// caller can back off; other failures become typed errors.
func (a *Adapter) doRequest(ctx context.Context, reqURL string) ([]Doc, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("Accept", "application/json")

	a.logger.Debug("requesting", slog.String("url", reqURL))

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, &source.ErrSourceUnavailable{
			Source: source.NameNYTimes,
			Cause:  err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, &source.ErrAuthRequired{Source: source.NameNYTimes}
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, &source.ErrSourceUnavailable{
			Source: source.NameNYTimes,
			Cause:  fmt.Errorf("unexpected HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("parsing search response: %w", err)
	}
	return sr.Response.Docs, resp.StatusCode, nil
}

// sleepCtx sleeps for d or until the context is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func userAgent() string {
	return fmt.Sprintf("Presswatch/%s (https://github.com/sydlexius/presswatch)", version.Version)
}
