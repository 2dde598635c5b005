// Package config loads presswatch configuration from YAML with environment
// overrides. The artist section ships with a curated Taylor Swift default so
// a fresh install works with nothing but API credentials.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sydlexius/presswatch/internal/logging"
	"github.com/sydlexius/presswatch/internal/mediamatch"
	"github.com/sydlexius/presswatch/internal/source/spotify"
)

// Config holds all application configuration.
type Config struct {
	Spotify SpotifyConfig  `yaml:"spotify"`
	NYTimes NYTimesConfig  `yaml:"nytimes"`
	Artist  ArtistConfig   `yaml:"artist"`
	Run     RunConfig      `yaml:"run"`
	Logging logging.Config `yaml:"logging"`
}

// SpotifyConfig holds the catalog API credentials.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// NYTimesConfig holds the archive API credentials.
type NYTimesConfig struct {
	APIKey string `yaml:"api_key"`
}

// RunConfig holds per-run tunables.
type RunConfig struct {
	PagesPerAlbum     int `yaml:"pages_per_album"`
	YearsAfterRelease int `yaml:"years_after_release"`
}

// ArtistConfig is the curated knowledge about the artist under watch. All
// matcher behavior is driven from here, so pointing presswatch at another
// artist is a config change, not a code change.
type ArtistConfig struct {
	ID                   string            `yaml:"id"`
	Name                 string            `yaml:"name"`
	SelfTitledAlbum      string            `yaml:"self_titled_album"`
	RerecordingQualifier string            `yaml:"rerecording_qualifier"`
	DeluxeQualifier      string            `yaml:"deluxe_qualifier"`
	CanonicalAlbums      []string          `yaml:"canonical_albums"`
	GenericTitles        []string          `yaml:"generic_titles"`
	ContextKeywords      []string          `yaml:"context_keywords"`
	DebutPhrases         []string          `yaml:"debut_phrases"`
	ReleaseDates         map[string]string `yaml:"release_dates"`
}

// Default returns a Config with the curated Taylor Swift dataset and no
// credentials.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			PagesPerAlbum:     1,
			YearsAfterRelease: 2,
		},
		Artist: ArtistConfig{
			ID:                   "06HL4z0CvFAxyc27GXpf02",
			Name:                 "Taylor Swift",
			SelfTitledAlbum:      "Taylor Swift",
			RerecordingQualifier: "Taylor's Version",
			DeluxeQualifier:      "deluxe version",
			CanonicalAlbums: []string{
				"Taylor Swift",
				"Fearless",
				"Fearless (Taylor's Version)",
				"Speak Now",
				"Speak Now (Taylor's Version)",
				"Red",
				"Red (Taylor's Version)",
				"1989",
				"1989 (Taylor's Version)",
				"reputation",
				"Lover",
				"folklore",
				"folklore (deluxe version)",
				"evermore",
				"evermore (deluxe version)",
				"Midnights",
				"THE TORTURED POETS DEPARTMENT",
				"The Tortured Poets Department",
				"The Life of a Showgirl",
			},
			GenericTitles: []string{
				"red", "lover", "reputation", "midnights",
				"folklore", "evermore", "taylor swift",
			},
			ContextKeywords: []string{"album", "record", "song", "track", "lp", "ep"},
			DebutPhrases:    []string{"debut album", "self titled", "selftitled"},
			ReleaseDates: map[string]string{
				"Taylor Swift":                  "2006-10-24",
				"Fearless":                      "2008-11-11",
				"Speak Now":                     "2010-10-25",
				"Red":                           "2012-10-22",
				"1989":                          "2014-10-27",
				"reputation":                    "2017-11-10",
				"Lover":                         "2019-08-23",
				"folklore":                      "2020-07-24",
				"evermore":                      "2020-12-11",
				"Midnights":                     "2022-10-21",
				"THE TORTURED POETS DEPARTMENT": "2024-04-19",
				"The Life of a Showgirl":        "2025-10-03",
				"Fearless (Taylor's Version)":   "2021-04-09",
				"Red (Taylor's Version)":        "2021-11-12",
				"Speak Now (Taylor's Version)":  "2023-07-07",
				"1989 (Taylor's Version)":       "2023-10-27",
				"folklore (deluxe version)":     "2020-08-18",
				"evermore (deluxe version)":     "2021-01-07",
			},
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads config from a YAML file (if it exists) and overrides with
// environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("PW_SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("PW_SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("PW_NYT_API_KEY"); v != "" {
		c.NYTimes.APIKey = v
	}
	if v := os.Getenv("PW_ARTIST_ID"); v != "" {
		c.Artist.ID = v
	}
	if v := os.Getenv("PW_PAGES_PER_ALBUM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Run.PagesPerAlbum = n
		}
	}
	if v := os.Getenv("PW_YEARS_AFTER_RELEASE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Run.YearsAfterRelease = n
		}
	}
	if v := os.Getenv("PW_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PW_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("PW_LOG_FILE"); v != "" {
		c.Logging.FilePath = v
	}
}

func (c *Config) validate() error {
	if c.Artist.ID == "" {
		return fmt.Errorf("artist id is required")
	}
	if c.Artist.Name == "" {
		return fmt.Errorf("artist name is required")
	}
	if c.Run.PagesPerAlbum < 1 {
		return fmt.Errorf("pages per album must be >= 1, got %d", c.Run.PagesPerAlbum)
	}
	if c.Run.YearsAfterRelease < 0 {
		return fmt.Errorf("years after release must be >= 0, got %d", c.Run.YearsAfterRelease)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	return nil
}

// CatalogRules converts the artist section into the catalog adapter's
// filtering rules.
func (c *Config) CatalogRules() spotify.CatalogRules {
	return spotify.CatalogRules{
		CanonicalTitles:      c.Artist.CanonicalAlbums,
		RerecordingQualifier: c.Artist.RerecordingQualifier,
		DeluxeQualifier:      c.Artist.DeluxeQualifier,
	}
}

// MatcherConfig converts the artist section into the matcher's
// configuration.
func (c *Config) MatcherConfig() mediamatch.Config {
	return mediamatch.Config{
		ArtistName:      c.Artist.Name,
		SelfTitled:      c.Artist.SelfTitledAlbum,
		GenericTitles:   c.Artist.GenericTitles,
		ContextKeywords: c.Artist.ContextKeywords,
		DebutPhrases:    c.Artist.DebutPhrases,
		ReleaseDates:    c.Artist.ReleaseDates,
	}
}
