package mediamatch

import (
	"regexp"
	"strings"

	"github.com/sydlexius/presswatch/internal/source"
)

// StrictMatch is one whole-word album mention found by the strict pass.
type StrictMatch struct {
	AlbumBaseTitle string
	PubDate        string
	Headline       string
	Snippet        string
	URL            string
}

// MatchStrict runs the conservative matching pass: every base title matches
// only as a whole word against the lowercased concatenation of headline and
// snippet, with no context gating and no further normalization. When
// skipAmbiguous is set, the self-titled album is excluded so the artist's
// own name cannot inflate the counts.
//
// Rows come out article-major: all titles found in the first article, then
// the second, and so on. One article can yield several rows when it names
// several albums. Intended as a cross-check against Engine.Match, not a
// replacement.
func MatchStrict(articles []source.Article, albums []source.Album, cfg Config, skipAmbiguous bool) []StrictMatch {
	type titlePattern struct {
		title   string
		pattern *regexp.Regexp
	}

	selfLower := strings.ToLower(cfg.SelfTitled)
	var titles []titlePattern
	seen := make(map[string]struct{})
	for _, alb := range albums {
		title := alb.BaseTitle
		if title == "" {
			title = alb.Name
		}
		if title == "" {
			continue
		}
		lower := strings.ToLower(title)
		if skipAmbiguous && selfLower != "" && lower == selfLower {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, titlePattern{
			title:   title,
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(lower) + `\b`),
		})
	}

	var matches []StrictMatch
	for _, art := range articles {
		text := strings.ToLower(art.Headline + " " + art.Snippet)
		for _, tp := range titles {
			if !tp.pattern.MatchString(text) {
				continue
			}
			matches = append(matches, StrictMatch{
				AlbumBaseTitle: tp.title,
				PubDate:        art.PubDate,
				Headline:       art.Headline,
				Snippet:        art.Snippet,
				URL:            art.URL,
			})
		}
	}
	return matches
}
