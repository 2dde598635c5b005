// Package spotify implements the source.Catalog capability against the
// Spotify Web API using the client-credentials flow.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/sydlexius/presswatch/internal/source"
	"github.com/sydlexius/presswatch/internal/version"
)

const (
	defaultAPIBase  = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"

	pageLimit = 50
)

// CatalogRules is the curated per-artist configuration the adapter needs to
// turn raw album listings into enriched records: which display titles count
// as canonical, and which parenthesized qualifiers mark editions.
type CatalogRules struct {
	// CanonicalTitles is the exact set of display names kept after filtering.
	CanonicalTitles []string

	// RerecordingQualifier is the parenthesized qualifier marking a
	// re-recorded edition, without parentheses (e.g. "Taylor's Version").
	RerecordingQualifier string

	// DeluxeQualifier is the parenthesized qualifier marking a deluxe
	// edition, without parentheses (e.g. "deluxe version").
	DeluxeQualifier string
}

// canonical reports whether name is in the canonical title set.
func (r CatalogRules) canonical(name string) bool {
	for _, t := range r.CanonicalTitles {
		if t == name {
			return true
		}
	}
	return false
}

// baseTitle strips the edition qualifiers from a display name.
func (r CatalogRules) baseTitle(name string) string {
	out := name
	for _, q := range []string{r.RerecordingQualifier, r.DeluxeQualifier} {
		if q == "" {
			continue
		}
		out = stripQualifier(out, q)
	}
	return strings.Join(strings.Fields(out), " ")
}

// isRerecording reports whether a display name carries the rerecording
// qualifier anywhere, parenthesized or not.
func (r CatalogRules) isRerecording(name string) bool {
	return r.RerecordingQualifier != "" &&
		strings.Contains(strings.ToLower(name), strings.ToLower(r.RerecordingQualifier))
}

// isDeluxe reports whether a display name carries the deluxe marker. Only
// the qualifier's first word is required, so "Lover (Deluxe)" counts even
// when the qualifier is "deluxe version".
func (r CatalogRules) isDeluxe(name string) bool {
	fields := strings.Fields(strings.ToLower(r.DeluxeQualifier))
	if len(fields) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(name), fields[0])
}

// stripQualifier removes every case-insensitive occurrence of "(qualifier)".
func stripQualifier(s, qualifier string) string {
	needle := "(" + strings.ToLower(qualifier) + ")"
	for {
		idx := strings.Index(strings.ToLower(s), needle)
		if idx < 0 {
			return s
		}
		s = s[:idx] + s[idx+len(needle):]
	}
}

// Adapter implements source.Catalog for the Spotify Web API.
type Adapter struct {
	client  *http.Client
	limiter *source.RateLimiterMap
	logger  *slog.Logger
	rules   CatalogRules
	apiBase string
}

// Config holds the credentials and curated rules for the adapter.
type Config struct {
	ClientID     string
	ClientSecret string
	Rules        CatalogRules
}

// New creates a Spotify adapter using the default API endpoints.
func New(cfg Config, limiter *source.RateLimiterMap, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(cfg, limiter, logger, defaultAPIBase, defaultTokenURL)
}

// NewWithBaseURL creates a Spotify adapter with custom endpoints (for testing).
func NewWithBaseURL(cfg Config, limiter *source.RateLimiterMap, logger *slog.Logger, apiBase, tokenURL string) *Adapter {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	// The oauth2 client caches the access token and refreshes it on expiry.
	client := cc.Client(context.Background())
	client.Timeout = 15 * time.Second

	return &Adapter{
		client:  client,
		limiter: limiter,
		logger:  logger.With(slog.String("source", string(source.NameSpotify))),
		rules:   cfg.Rules,
		apiBase: strings.TrimRight(apiBase, "/"),
	}
}

// Name returns the source name.
func (a *Adapter) Name() source.Name { return source.NameSpotify }

// GetArtist fetches basic artist metadata.
func (a *Adapter) GetArtist(ctx context.Context, artistID string) (*source.Artist, error) {
	body, err := a.doRequest(ctx, a.apiBase+"/artists/"+url.PathEscape(artistID))
	if err != nil {
		return nil, err
	}

	var resp artistResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing artist response: %w", err)
	}

	return &source.Artist{
		ID:         resp.ID,
		Name:       resp.Name,
		Genres:     resp.Genres,
		Popularity: resp.Popularity,
		Followers:  resp.Followers.Total,
	}, nil
}

// getArtistAlbums fetches all album listings for an artist, following the
// API's next-page URLs until exhausted.
func (a *Adapter) getArtistAlbums(ctx context.Context, artistID string) ([]albumItem, error) {
	params := url.Values{
		"include_groups": {"album,single"},
		"limit":          {fmt.Sprint(pageLimit)},
	}
	reqURL := a.apiBase + "/artists/" + url.PathEscape(artistID) + "/albums?" + params.Encode()

	var items []albumItem
	for reqURL != "" {
		body, err := a.doRequest(ctx, reqURL)
		if err != nil {
			return nil, err
		}

		var page albumsPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("parsing albums page: %w", err)
		}

		items = append(items, page.Items...)
		reqURL = page.Next
	}
	return items, nil
}

// getAlbumDetail fetches per-album fields the listing endpoint omits.
func (a *Adapter) getAlbumDetail(ctx context.Context, albumID string) (*albumDetail, error) {
	body, err := a.doRequest(ctx, a.apiBase+"/albums/"+url.PathEscape(albumID))
	if err != nil {
		return nil, err
	}

	var detail albumDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("parsing album detail: %w", err)
	}
	return &detail, nil
}

// getAlbumTracks fetches all tracks of one album, following next-page URLs.
func (a *Adapter) getAlbumTracks(ctx context.Context, albumID string) ([]trackItem, error) {
	params := url.Values{"limit": {fmt.Sprint(pageLimit)}}
	reqURL := a.apiBase + "/albums/" + url.PathEscape(albumID) + "/tracks?" + params.Encode()

	var items []trackItem
	for reqURL != "" {
		body, err := a.doRequest(ctx, reqURL)
		if err != nil {
			return nil, err
		}

		var page tracksPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("parsing tracks page: %w", err)
		}

		items = append(items, page.Items...)
		reqURL = page.Next
	}
	return items, nil
}

// AlbumsEnriched returns the artist's albums filtered to primary-artist
// releases with canonical titles, with base titles and edition flags derived
// and per-album detail (popularity, label) joined on. A failed detail fetch
// is logged and leaves Popularity nil rather than dropping the album.
func (a *Adapter) AlbumsEnriched(ctx context.Context, artistID string) ([]source.Album, error) {
	items, err := a.getArtistAlbums(ctx, artistID)
	if err != nil {
		return nil, err
	}

	var albums []source.Album
	for _, item := range items {
		if len(item.Artists) == 0 || item.Artists[0].ID != artistID {
			continue
		}
		if !a.rules.canonical(item.Name) {
			continue
		}

		alb := source.Album{
			ID:                   item.ID,
			Name:                 item.Name,
			BaseTitle:            a.rules.baseTitle(item.Name),
			AlbumType:            item.AlbumType,
			TotalTracks:          item.TotalTracks,
			ReleaseDate:          item.ReleaseDate,
			ReleaseDatePrecision: item.ReleaseDatePrecision,
			IsRerecording:        a.rules.isRerecording(item.Name),
			IsDeluxe:             a.rules.isDeluxe(item.Name),
			URL:                  item.ExternalURLs.Spotify,
		}

		detail, err := a.getAlbumDetail(ctx, item.ID)
		if err != nil {
			a.logger.Warn("album detail fetch failed",
				slog.String("album_id", item.ID),
				slog.String("error", err.Error()))
		} else {
			pop := detail.Popularity
			alb.Popularity = &pop
			alb.Label = detail.Label
		}

		albums = append(albums, alb)
	}
	return albums, nil
}

// TracksEnriched returns every track of every enriched album with album
// metadata joined onto each row. A failed track fetch for one album is
// logged and that album's tracks are skipped.
func (a *Adapter) TracksEnriched(ctx context.Context, artistID string) ([]source.Track, error) {
	albums, err := a.AlbumsEnriched(ctx, artistID)
	if err != nil {
		return nil, err
	}

	var tracks []source.Track
	for _, alb := range albums {
		items, err := a.getAlbumTracks(ctx, alb.ID)
		if err != nil {
			a.logger.Warn("track fetch failed",
				slog.String("album_id", alb.ID),
				slog.String("error", err.Error()))
			continue
		}

		for _, item := range items {
			tracks = append(tracks, source.Track{
				AlbumID:            alb.ID,
				AlbumName:          alb.Name,
				AlbumBaseTitle:     alb.BaseTitle,
				AlbumType:          alb.AlbumType,
				AlbumReleaseDate:   alb.ReleaseDate,
				AlbumPopularity:    alb.Popularity,
				AlbumLabel:         alb.Label,
				AlbumIsRerecording: alb.IsRerecording,
				AlbumIsDeluxe:      alb.IsDeluxe,
				ID:                 item.ID,
				Name:               strings.Join(strings.Fields(item.Name), " "),
				TrackNumber:        item.TrackNumber,
				DiscNumber:         item.DiscNumber,
				DurationMS:         item.DurationMS,
				Explicit:           item.Explicit,
			})
		}
	}
	return tracks, nil
}

// doRequest executes a rate-limited GET and maps HTTP failures to typed errors.
func (a *Adapter) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := a.limiter.Wait(ctx, source.NameSpotify); err != nil {
		return nil, &source.ErrSourceUnavailable{
			Source: source.NameSpotify,
			Cause:  fmt.Errorf("rate limiter: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("Accept", "application/json")

	a.logger.Debug("requesting", slog.String("url", reqURL))

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &source.ErrSourceUnavailable{
			Source: source.NameSpotify,
			Cause:  err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &source.ErrAuthRequired{Source: source.NameSpotify}
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &source.ErrNotFound{Source: source.NameSpotify, ID: reqURL}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &source.ErrSourceUnavailable{
			Source:     source.NameSpotify,
			Cause:      fmt.Errorf("HTTP %d", resp.StatusCode),
			RetryAfter: 2 * time.Second,
		}
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &source.ErrSourceUnavailable{
			Source: source.NameSpotify,
			Cause:  fmt.Errorf("unexpected HTTP %d", resp.StatusCode),
		}
	}

	return io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
}

func userAgent() string {
	return fmt.Sprintf("Presswatch/%s (https://github.com/sydlexius/presswatch)", version.Version)
}
