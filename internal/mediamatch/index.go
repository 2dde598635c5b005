package mediamatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sydlexius/presswatch/internal/source"
)

// AlbumSearcher is the one archive operation the index builder needs.
type AlbumSearcher interface {
	SearchAlbum(ctx context.Context, albumTitle string, pages int, w source.Window) ([]source.Article, error)
}

// IndexedArticle is an archive article tagged with the album whose search
// window produced it.
type IndexedArticle struct {
	source.Article
	AlbumBaseTitle string
}

// IndexOutcome says how indexing went for one album.
type IndexOutcome string

const (
	OutcomeIndexed       IndexOutcome = "indexed"
	OutcomeNoReleaseDate IndexOutcome = "no_release_date"
	OutcomeInvalidDate   IndexOutcome = "invalid_date"
	OutcomeSearchFailed  IndexOutcome = "search_failed"
	OutcomeNoResults     IndexOutcome = "no_results"
)

// AlbumIndexStatus records the per-album outcome of an index build. Err is
// set for OutcomeInvalidDate and OutcomeSearchFailed.
type AlbumIndexStatus struct {
	BaseTitle string
	Outcome   IndexOutcome
	Articles  int
	Err       error
}

// IndexResult is the output of one index build: the tagged articles plus a
// status row per album, in input order.
type IndexResult struct {
	Articles []IndexedArticle
	Statuses []AlbumIndexStatus
}

// IndexBuilder assembles a windowed article index, one archive search per
// album, using the configured release dates to plan each window.
type IndexBuilder struct {
	searcher AlbumSearcher
	cfg      Config
	logger   *slog.Logger
}

func NewIndexBuilder(searcher AlbumSearcher, cfg Config, logger *slog.Logger) *IndexBuilder {
	return &IndexBuilder{
		searcher: searcher,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "indexbuilder")),
	}
}

// Build searches the archive once per album over that album's window and
// returns everything found, tagged by album. One album failing never stops
// the build; the failure lands in its status row instead. pagesPerAlbum and
// yearsAfter bound each search's depth and each window's length.
func (b *IndexBuilder) Build(ctx context.Context, albums []source.Album, pagesPerAlbum, yearsAfter int) (*IndexResult, error) {
	if pagesPerAlbum < 1 {
		return nil, fmt.Errorf("pages per album must be >= 1, got %d", pagesPerAlbum)
	}
	if yearsAfter < 0 {
		return nil, fmt.Errorf("years after release must be >= 0, got %d", yearsAfter)
	}

	result := &IndexResult{}
	for _, alb := range albums {
		title := alb.BaseTitle
		if title == "" {
			title = alb.Name
		}
		status := AlbumIndexStatus{BaseTitle: title}

		releaseDate, ok := b.cfg.ReleaseDates[title]
		if !ok || releaseDate == "" {
			status.Outcome = OutcomeNoReleaseDate
			b.logger.Warn("no release date on record, skipping album",
				slog.String("album", title))
			result.Statuses = append(result.Statuses, status)
			continue
		}

		window, err := PlanWindow(releaseDate, yearsAfter)
		if err != nil {
			status.Outcome = OutcomeInvalidDate
			status.Err = err
			b.logger.Warn("cannot plan search window, skipping album",
				slog.String("album", title),
				slog.String("release_date", releaseDate),
				slog.Any("error", err))
			result.Statuses = append(result.Statuses, status)
			continue
		}

		articles, err := b.searcher.SearchAlbum(ctx, title, pagesPerAlbum, window)
		if err != nil {
			status.Outcome = OutcomeSearchFailed
			status.Err = err
			b.logger.Warn("archive search failed, skipping album",
				slog.String("album", title),
				slog.Any("error", err))
			result.Statuses = append(result.Statuses, status)
			continue
		}
		if len(articles) == 0 {
			status.Outcome = OutcomeNoResults
			result.Statuses = append(result.Statuses, status)
			continue
		}

		for _, art := range articles {
			result.Articles = append(result.Articles, IndexedArticle{
				Article:        art,
				AlbumBaseTitle: title,
			})
		}
		status.Outcome = OutcomeIndexed
		status.Articles = len(articles)
		result.Statuses = append(result.Statuses, status)
		b.logger.Info("indexed album window",
			slog.String("album", title),
			slog.String("begin", window.Begin),
			slog.String("end", window.End),
			slog.Int("articles", len(articles)))
	}
	return result, nil
}
