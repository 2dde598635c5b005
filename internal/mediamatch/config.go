package mediamatch

import (
	"fmt"
	"regexp"
	"strings"
)

// Config carries the curated knowledge the matcher needs about one artist.
// All of it is data, not code, so a deployment can swap artists by editing
// the config file rather than the source.
type Config struct {
	// ArtistName is the artist's display name, e.g. "Taylor Swift".
	ArtistName string

	// SelfTitled is the title of the self-titled album, if the artist has
	// one. Empty means no self-titled handling applies.
	SelfTitled string

	// GenericTitles lists album titles that are also everyday words and
	// therefore need corroborating music context before they count as a
	// mention.
	GenericTitles []string

	// ContextKeywords are the words whose presence marks a text as being
	// about music, e.g. "album" or "song".
	ContextKeywords []string

	// DebutPhrases are the phrases that disambiguate a self-titled album
	// from the artist's own name, e.g. "debut album".
	DebutPhrases []string

	// ReleaseDates maps a base album title to its release date in
	// YYYY-MM-DD form. The index builder uses it to plan search windows.
	ReleaseDates map[string]string
}

func (c Config) validate() error {
	if c.ArtistName == "" {
		return fmt.Errorf("mediamatch: artist name is required")
	}
	for _, k := range c.ContextKeywords {
		if Normalize(k) == "" {
			return fmt.Errorf("mediamatch: context keyword %q normalizes to nothing", k)
		}
	}
	return nil
}

// TitleClass says how a title participates in matching.
type TitleClass string

const (
	// TitleDistinctive titles match as plain substrings of normalized text.
	TitleDistinctive TitleClass = "distinctive"

	// TitleGeneric titles match only as whole words and only when the
	// surrounding text carries music context.
	TitleGeneric TitleClass = "generic"
)

// Classifier answers title-class and context questions for one artist's
// configuration. All inputs are assumed to be already normalized.
type Classifier struct {
	generic    map[string]struct{}
	keywords   []string
	debut      []string
	selfTitled string
}

// NewClassifier precomputes the normalized lookup structures for cfg.
func NewClassifier(cfg Config) (*Classifier, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	c := &Classifier{
		generic:    make(map[string]struct{}, len(cfg.GenericTitles)),
		selfTitled: Normalize(cfg.SelfTitled),
	}
	for _, t := range cfg.GenericTitles {
		if n := Normalize(t); n != "" {
			c.generic[n] = struct{}{}
		}
	}
	for _, k := range cfg.ContextKeywords {
		c.keywords = append(c.keywords, Normalize(k))
	}
	for _, p := range cfg.DebutPhrases {
		if n := Normalize(p); n != "" {
			c.debut = append(c.debut, n)
		}
	}
	return c, nil
}

// Classify reports whether a normalized base title is generic or
// distinctive. Membership is exact, never substring.
func (c *Classifier) Classify(normTitle string) TitleClass {
	if _, ok := c.generic[normTitle]; ok {
		return TitleGeneric
	}
	return TitleDistinctive
}

// HasMusicContext reports whether normalized text contains at least one
// context keyword as a substring. Short keywords like "lp" can fire inside
// longer words.
func (c *Classifier) HasMusicContext(normText string) bool {
	for _, kw := range c.keywords {
		if strings.Contains(normText, kw) {
			return true
		}
	}
	return false
}

// isSelfTitled reports whether a normalized title is the self-titled album.
func (c *Classifier) isSelfTitled(normTitle string) bool {
	return c.selfTitled != "" && normTitle == c.selfTitled
}

// hasDebutContext reports whether normalized text contains any of the
// phrases that mark a self-titled album mention.
func (c *Classifier) hasDebutContext(normText string) bool {
	for _, p := range c.debut {
		if strings.Contains(normText, p) {
			return true
		}
	}
	return false
}

// wordPattern builds a whole-word matcher for an already-normalized term.
func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
}
