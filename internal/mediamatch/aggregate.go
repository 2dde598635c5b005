package mediamatch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sydlexius/presswatch/internal/source"
)

// MentionCount is the per-album tally of a coverage run.
type MentionCount struct {
	AlbumBaseTitle string
	Mentions       int
}

type mention struct {
	title string
	url   string
}

// CountMentions tallies engine matches per base title. With uniqueByURL
// set, several matches of the same album in the same article count once.
// Counts come back sorted descending; albums with equal counts keep their
// first-appearance order.
func CountMentions(matches []Match, uniqueByURL bool) []MentionCount {
	rows := make([]mention, len(matches))
	for i, m := range matches {
		rows[i] = mention{title: m.AlbumBaseTitle, url: m.URL}
	}
	return countGrouped(rows, uniqueByURL)
}

// CountStrictMentions is CountMentions for the strict pass.
func CountStrictMentions(matches []StrictMatch, uniqueByURL bool) []MentionCount {
	rows := make([]mention, len(matches))
	for i, m := range matches {
		rows[i] = mention{title: m.AlbumBaseTitle, url: m.URL}
	}
	return countGrouped(rows, uniqueByURL)
}

func countGrouped(rows []mention, uniqueByURL bool) []MentionCount {
	counts := make(map[string]int)
	seenURL := make(map[mention]struct{})
	var order []string
	for _, r := range rows {
		if _, ok := counts[r.title]; !ok {
			order = append(order, r.title)
		}
		if uniqueByURL {
			if _, dup := seenURL[r]; dup {
				continue
			}
			seenURL[r] = struct{}{}
		}
		counts[r.title]++
	}

	out := make([]MentionCount, 0, len(order))
	for _, t := range order {
		out = append(out, MentionCount{AlbumBaseTitle: t, Mentions: counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Mentions > out[j].Mentions
	})
	return out
}

// CoverageReport is the end product of one coverage run.
type CoverageReport struct {
	RunID       string
	GeneratedAt time.Time
	ArtistID    string
	ArtistName  string
	Matches     []StrictMatch
	Mentions    []MentionCount
}

// Aggregator drives a full coverage run: fetch the discography from the
// catalog, search the archive per album, strict-match, and tally.
type Aggregator struct {
	catalog source.Catalog
	archive source.Archive
	cfg     Config
	logger  *slog.Logger
}

func NewAggregator(catalog source.Catalog, archive source.Archive, cfg Config, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		catalog: catalog,
		archive: archive,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "aggregator")),
	}
}

// Summarize runs end to end for one artist: fetch the enriched discography,
// fetch the broad artist-coverage corpus (pages bounds its depth), run the
// strict matcher over it, and tally unique-URL mentions per album. Either
// fetch failing is fatal to the run; there is no per-item granularity to
// degrade to here.
func (g *Aggregator) Summarize(ctx context.Context, artistID string, pages int) (*CoverageReport, error) {
	albums, err := g.catalog.AlbumsEnriched(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("fetching discography: %w", err)
	}
	g.logger.Info("discography fetched",
		slog.String("artist_id", artistID),
		slog.Int("albums", len(albums)))

	articles, err := g.archive.SearchArtist(ctx, pages)
	if err != nil {
		return nil, fmt.Errorf("fetching coverage corpus: %w", err)
	}
	g.logger.Info("coverage corpus fetched", slog.Int("articles", len(articles)))

	matches := MatchStrict(articles, albums, g.cfg, true)

	return &CoverageReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		ArtistID:    artistID,
		ArtistName:  g.cfg.ArtistName,
		Matches:     matches,
		Mentions:    CountStrictMentions(matches, true),
	}, nil
}

// DedupeArticles collapses a tagged index back to distinct articles,
// keyed by URL, preserving first-seen order.
func DedupeArticles(indexed []IndexedArticle) []source.Article {
	seen := make(map[string]struct{}, len(indexed))
	out := make([]source.Article, 0, len(indexed))
	for _, ia := range indexed {
		if _, ok := seen[ia.URL]; ok {
			continue
		}
		seen[ia.URL] = struct{}{}
		out = append(out, ia.Article)
	}
	return out
}
