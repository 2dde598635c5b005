// Package source defines the external data sources presswatch draws from:
// a music catalog (album and track metadata) and a news archive (article
// search). Adapters live in subpackages; everything downstream of this
// package works on the neutral types below.
package source

import (
	"context"
	"fmt"
	"time"
)

// Name uniquely identifies a data source.
type Name string

// Known source names.
const (
	NameSpotify Name = "spotify"
	NameNYTimes Name = "nytimes"
)

// DisplayName returns a human-readable name for the source.
func (n Name) DisplayName() string {
	switch n {
	case NameSpotify:
		return "Spotify"
	case NameNYTimes:
		return "The New York Times"
	default:
		return string(n)
	}
}

// Album is one release in an artist's catalog, enriched with derived fields.
// BaseTitle is the display name with edition qualifiers (the rerecording and
// deluxe markers) stripped; IsRerecording and IsDeluxe are derived from
// substring checks on the display name. Albums are built once per run and
// never mutated afterwards.
type Album struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	BaseTitle            string `json:"base_title"`
	AlbumType            string `json:"album_type,omitempty"`
	TotalTracks          int    `json:"total_tracks,omitempty"`
	ReleaseDate          string `json:"release_date"`
	ReleaseDatePrecision string `json:"release_date_precision,omitempty"`
	Popularity           *int   `json:"popularity,omitempty"`
	Label                string `json:"label,omitempty"`
	IsRerecording        bool   `json:"is_rerecording"`
	IsDeluxe             bool   `json:"is_deluxe"`
	URL                  string `json:"url,omitempty"`
}

// Track is one track row with its album's metadata joined on.
type Track struct {
	AlbumID            string `json:"album_id"`
	AlbumName          string `json:"album_name"`
	AlbumBaseTitle     string `json:"album_base_title"`
	AlbumType          string `json:"album_type,omitempty"`
	AlbumReleaseDate   string `json:"album_release_date"`
	AlbumPopularity    *int   `json:"album_popularity,omitempty"`
	AlbumLabel         string `json:"album_label,omitempty"`
	AlbumIsRerecording bool   `json:"album_is_rerecording"`
	AlbumIsDeluxe      bool   `json:"album_is_deluxe"`

	ID          string `json:"id"`
	Name        string `json:"name"`
	TrackNumber int    `json:"track_number"`
	DiscNumber  int    `json:"disc_number"`
	DurationMS  int    `json:"duration_ms"`
	Explicit    bool   `json:"explicit"`
}

// Artist is basic catalog metadata for an artist.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres,omitempty"`
	Popularity int      `json:"popularity"`
	Followers  int      `json:"followers,omitempty"`
}

// Article is one news-archive document in tabular form. URL is the
// deduplication key: two articles with the same URL are the same physical
// article regardless of which query returned them.
type Article struct {
	PubDate      string `json:"pub_date"`
	Headline     string `json:"headline"`
	Snippet      string `json:"snippet"`
	Section      string `json:"section,omitempty"`
	Source       string `json:"source,omitempty"`
	NewsDesk     string `json:"news_desk,omitempty"`
	MaterialType string `json:"material_type,omitempty"`
	URL          string `json:"url"`
}

// Window bounds an archive search to a date range. Dates are in the
// archive's YYYYMMDD parameter format; an empty string leaves that bound open.
type Window struct {
	Begin string
	End   string
}

// Catalog is the capability the music-catalog collaborator must provide.
type Catalog interface {
	// GetArtist fetches basic artist metadata.
	GetArtist(ctx context.Context, artistID string) (*Artist, error)

	// AlbumsEnriched returns the artist's albums filtered to canonical
	// titles, with base titles and edition flags derived.
	AlbumsEnriched(ctx context.Context, artistID string) ([]Album, error)

	// TracksEnriched returns every track of every enriched album, with
	// album metadata joined onto each row.
	TracksEnriched(ctx context.Context, artistID string) ([]Track, error)
}

// Archive is the capability the news-archive collaborator must provide.
// Implementations own their rate-limit, backoff, and retry policy and
// return a typed error once retries are exhausted, never partial data.
type Archive interface {
	// Search runs a free-text query over the archive, fetching up to
	// pages result pages within the given window.
	Search(ctx context.Context, query string, pages int, w Window) ([]Article, error)

	// SearchArtist fetches the broad coverage corpus for the configured artist.
	SearchArtist(ctx context.Context, pages int) ([]Article, error)

	// SearchAlbum runs an album-scoped query (album title plus artist
	// name) within the given window.
	SearchAlbum(ctx context.Context, albumTitle string, pages int, w Window) ([]Article, error)
}

// ErrSourceUnavailable indicates a transient failure (rate-limited, timeout,
// server error), possibly after the adapter's own retries were exhausted.
type ErrSourceUnavailable struct {
	Source     Name
	Cause      error
	RetryAfter time.Duration
}

func (e *ErrSourceUnavailable) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Cause)
}

func (e *ErrSourceUnavailable) Unwrap() error { return e.Cause }

// ErrNotFound indicates the source has no data for the requested ID.
type ErrNotFound struct {
	Source Name
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("source %s: %s not found", e.Source, e.ID)
}

// ErrAuthRequired indicates the source rejected or is missing credentials.
type ErrAuthRequired struct {
	Source Name
}

func (e *ErrAuthRequired) Error() string {
	return fmt.Sprintf("source %s: credentials missing or rejected", e.Source)
}
