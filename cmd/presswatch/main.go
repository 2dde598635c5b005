// Command presswatch cross-references a music catalog with a news archive
// to measure press coverage of an artist's albums.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/sydlexius/presswatch/internal/config"
	"github.com/sydlexius/presswatch/internal/discography"
	"github.com/sydlexius/presswatch/internal/logging"
	"github.com/sydlexius/presswatch/internal/mediamatch"
	"github.com/sydlexius/presswatch/internal/source"
	"github.com/sydlexius/presswatch/internal/source/nytimes"
	"github.com/sydlexius/presswatch/internal/source/spotify"
	"github.com/sydlexius/presswatch/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "index":
		err = runIndex(os.Args[2:])
	case "summary":
		err = runSummary(os.Args[2:])
	case "discography":
		err = runDiscography(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "version":
		fmt.Println(version.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: presswatch <command> [flags]

commands:
  index        build the windowed article index and match it against albums
  summary      run the full coverage summary (strict matching)
  discography  track analyses: per-year, longest, popularity, rerecordings
  init         write a starter config file, prompting for API credentials
  version      print the version

run "presswatch <command> -h" for command flags
`)
}

func defaultConfigPath() string {
	if p := os.Getenv("PW_CONFIG_PATH"); p != "" {
		return p
	}
	return "presswatch.yaml"
}

// app wires the shared pieces every command needs: config, logging, and the
// two source adapters on a common rate limiter.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	logs    *logging.Manager
	catalog *spotify.Adapter
	archive *nytimes.Adapter
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	manager, logger := logging.NewManager(cfg.Logging)

	limiter := source.NewRateLimiterMap()
	catalog := spotify.New(spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		Rules:        cfg.CatalogRules(),
	}, limiter, logger)
	archive := nytimes.New(cfg.NYTimes.APIKey, cfg.Artist.Name, limiter, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		logs:    manager,
		catalog: catalog,
		archive: archive,
	}, nil
}

func (a *app) close() {
	if err := a.logs.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing logs: %v\n", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath(), "config file path")
	pages := fs.Int("pages", 0, "archive pages per album (0 = config value)")
	yearsAfter := fs.Int("years-after", -1, "window length in years (-1 = config value)")
	artistID := fs.String("artist", "", "catalog artist ID (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer a.close()
	applyRunOverrides(a.cfg, *pages, *yearsAfter, *artistID)

	ctx, cancel := signalContext()
	defer cancel()

	albums, err := a.catalog.AlbumsEnriched(ctx, a.cfg.Artist.ID)
	if err != nil {
		return fmt.Errorf("fetching discography: %w", err)
	}

	matcherCfg := a.cfg.MatcherConfig()
	builder := mediamatch.NewIndexBuilder(a.archive, matcherCfg, a.logger)
	index, err := builder.Build(ctx, albums, a.cfg.Run.PagesPerAlbum, a.cfg.Run.YearsAfterRelease)
	if err != nil {
		return err
	}

	engine, err := mediamatch.NewEngine(matcherCfg, a.logger)
	if err != nil {
		return err
	}
	articles := mediamatch.DedupeArticles(index.Articles)
	matches := engine.Match(albums, articles)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALBUM\tOUTCOME\tARTICLES\tDETAIL")
	for _, st := range index.Statuses {
		detail := ""
		if st.Err != nil {
			detail = st.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", st.BaseTitle, st.Outcome, st.Articles, detail)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "ALBUM\tMENTIONS")
	for _, mc := range mediamatch.CountMentions(matches, true) {
		fmt.Fprintf(w, "%s\t%d\n", mc.AlbumBaseTitle, mc.Mentions)
	}
	return w.Flush()
}

func runSummary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath(), "config file path")
	pages := fs.Int("pages", 3, "archive pages of artist coverage to fetch")
	artistID := fs.String("artist", "", "catalog artist ID (default from config)")
	asJSON := fs.Bool("json", false, "emit the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer a.close()
	if *artistID != "" {
		a.cfg.Artist.ID = *artistID
	}

	ctx, cancel := signalContext()
	defer cancel()

	agg := mediamatch.NewAggregator(a.catalog, a.archive, a.cfg.MatcherConfig(), a.logger)
	report, err := agg.Summarize(ctx, a.cfg.Artist.ID, *pages)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("coverage run %s for %s (generated %s)\n\n",
		report.RunID, report.ArtistName, report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALBUM\tMENTIONS")
	for _, mc := range report.Mentions {
		fmt.Fprintf(w, "%s\t%d\n", mc.AlbumBaseTitle, mc.Mentions)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "DATE\tALBUM\tHEADLINE")
	for _, m := range report.Matches {
		fmt.Fprintf(w, "%.10s\t%s\t%s\n", m.PubDate, m.AlbumBaseTitle, m.Headline)
	}
	return w.Flush()
}

func runDiscography(args []string) error {
	fs := flag.NewFlagSet("discography", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath(), "config file path")
	artistID := fs.String("artist", "", "catalog artist ID (default from config)")
	year := fs.Int("year", 0, "filter tracks to one release year (0 = skip)")
	top := fs.Int("top", 10, "how many longest tracks to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp(*configPath)
	if err != nil {
		return err
	}
	defer a.close()
	if *artistID != "" {
		a.cfg.Artist.ID = *artistID
	}

	ctx, cancel := signalContext()
	defer cancel()

	tracks, err := a.catalog.TracksEnriched(ctx, a.cfg.Artist.ID)
	if err != nil {
		return fmt.Errorf("fetching tracks: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	if *year != 0 {
		byYear, err := discography.TracksByYear(tracks, *year)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "tracks released in %d: %d\n\n", *year, len(byYear))
	}

	longest, err := discography.LongestTracks(tracks, *top)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "TRACK\tALBUM\tMINUTES")
	for _, tr := range longest {
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", tr.Name, tr.AlbumName, tr.DurationMin)
	}
	fmt.Fprintln(w)

	trend, err := discography.PopularityOverTime(tracks)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "YEAR\tAVG POPULARITY")
	for _, yp := range trend {
		fmt.Fprintf(w, "%d\t%.1f\n", yp.Year, yp.AvgPopularity)
	}
	fmt.Fprintln(w)

	comparisons, err := discography.CompareRerecordings(tracks)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "ALBUM\tORIGINAL\tRERECORDING")
	for _, c := range comparisons {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.AlbumBaseTitle, fmtAvg(c.Original), fmtAvg(c.Rerecording))
	}
	return w.Flush()
}

func fmtAvg(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

// runInit writes a starter config with the full curated artist dataset so
// the user can see and edit everything the matcher relies on.
func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath(), "where to write the config file")
	force := fs.Bool("force", false, "overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*force {
		if _, err := os.Stat(*configPath); err == nil {
			return fmt.Errorf("%s already exists (use -force to overwrite)", *configPath)
		}
	}

	cfg := config.Default()
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Spotify client ID: ")
	id, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	cfg.Spotify.ClientID = strings.TrimSpace(id)

	cfg.Spotify.ClientSecret, err = readSecret(reader, "Spotify client secret: ")
	if err != nil {
		return err
	}
	cfg.NYTimes.APIKey, err = readSecret(reader, "NYT API key: ")
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(*configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("wrote %s\n", *configPath)
	return nil
}

// readSecret prompts without echoing when stdin is a terminal, and falls
// back to a plain line read when it is not (pipes, CI).
func readSecret(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading secret: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func applyRunOverrides(cfg *config.Config, pages, yearsAfter int, artistID string) {
	if pages > 0 {
		cfg.Run.PagesPerAlbum = pages
	}
	if yearsAfter >= 0 {
		cfg.Run.YearsAfterRelease = yearsAfter
	}
	if artistID != "" {
		cfg.Artist.ID = artistID
	}
}
