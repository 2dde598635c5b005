package mediamatch

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/sydlexius/presswatch/internal/source"
)

// MatchLocation says where in an article an album title was found.
type MatchLocation string

const (
	LocationHeadline MatchLocation = "headline"
	LocationSnippet  MatchLocation = "snippet"
	LocationBoth     MatchLocation = "headline+snippet"
)

// Match is one confirmed album mention in one article.
type Match struct {
	AlbumID          string
	AlbumName        string
	AlbumBaseTitle   string
	AlbumReleaseDate string

	PubDate      string
	Headline     string
	Snippet      string
	Section      string
	Source       string
	NewsDesk     string
	MaterialType string
	URL          string

	Location MatchLocation
}

// Engine cross-references albums against articles using class-aware title
// matching.
type Engine struct {
	classifier *Classifier
	logger     *slog.Logger
}

// NewEngine builds an Engine from the artist configuration.
func NewEngine(cfg Config, logger *slog.Logger) (*Engine, error) {
	cls, err := NewClassifier(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		classifier: cls,
		logger:     logger.With(slog.String("component", "matchengine")),
	}, nil
}

type normArticle struct {
	headline string
	snippet  string
}

// Match compares every album against every article and returns one Match
// per (album, article) pair where the album's title appears under its
// class's rules. Albums whose titles normalize to nothing are skipped.
// Articles are normalized once up front; the comparison itself is a full
// cross product.
func (e *Engine) Match(albums []source.Album, articles []source.Article) []Match {
	normed := make([]normArticle, len(articles))
	for i, art := range articles {
		normed[i] = normArticle{
			headline: Normalize(art.Headline),
			snippet:  Normalize(art.Snippet),
		}
	}

	var matches []Match
	for _, alb := range albums {
		title := alb.BaseTitle
		if title == "" {
			title = alb.Name
		}
		normTitle := Normalize(title)
		if normTitle == "" {
			e.logger.Debug("skipping album with empty normalized title",
				slog.String("album", alb.Name))
			continue
		}

		class := e.classifier.Classify(normTitle)
		var pattern *regexp.Regexp
		if class == TitleGeneric {
			pattern = wordPattern(normTitle)
		}

		for i, art := range articles {
			loc := e.locate(normTitle, class, pattern, normed[i])
			if loc == "" {
				continue
			}
			matches = append(matches, Match{
				AlbumID:          alb.ID,
				AlbumName:        alb.Name,
				AlbumBaseTitle:   title,
				AlbumReleaseDate: alb.ReleaseDate,
				PubDate:          art.PubDate,
				Headline:         art.Headline,
				Snippet:          art.Snippet,
				Section:          art.Section,
				Source:           art.Source,
				NewsDesk:         art.NewsDesk,
				MaterialType:     art.MaterialType,
				URL:              art.URL,
				Location:         loc,
			})
		}
	}
	return matches
}

// locate applies the class-specific rules to one article and reports where
// the title occurs, or "" for no match.
func (e *Engine) locate(normTitle string, class TitleClass, pattern *regexp.Regexp, art normArticle) MatchLocation {
	var inHeadline, inSnippet bool
	if class == TitleGeneric {
		inHeadline = pattern.MatchString(art.headline) && e.classifier.HasMusicContext(art.headline)
		inSnippet = pattern.MatchString(art.snippet) && e.classifier.HasMusicContext(art.snippet)
		if e.classifier.isSelfTitled(normTitle) {
			inHeadline = inHeadline && e.classifier.hasDebutContext(art.headline)
			inSnippet = inSnippet && e.classifier.hasDebutContext(art.snippet)
		}
	} else {
		inHeadline = strings.Contains(art.headline, normTitle)
		inSnippet = strings.Contains(art.snippet, normTitle)
	}

	switch {
	case inHeadline && inSnippet:
		return LocationBoth
	case inHeadline:
		return LocationHeadline
	case inSnippet:
		return LocationSnippet
	default:
		return ""
	}
}
