// Package discography analyzes the enriched track rows the catalog adapter
// produces: per-year filtering, longest tracks, popularity trends, and
// original-versus-rerecording comparisons.
package discography

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sydlexius/presswatch/internal/source"
)

// MissingFieldError reports that the field an operation depends on carries
// no data on any input row.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q has no values", e.Field)
}

// TracksByYear returns the tracks whose album was released in year.
// Rows without a parseable release year are dropped.
func TracksByYear(tracks []source.Track, year int) ([]source.Track, error) {
	if err := requireReleaseDates(tracks); err != nil {
		return nil, err
	}
	var out []source.Track
	for _, tr := range tracks {
		if y, ok := releaseYear(tr.AlbumReleaseDate); ok && y == year {
			out = append(out, tr)
		}
	}
	return out, nil
}

// LongTrack is a track annotated with its duration in minutes.
type LongTrack struct {
	source.Track
	DurationMin float64
}

// LongestTracks returns the n longest tracks, longest first. Ties keep
// input order.
func LongestTracks(tracks []source.Track, n int) ([]LongTrack, error) {
	if n < 1 {
		return nil, fmt.Errorf("track count must be >= 1, got %d", n)
	}
	if len(tracks) > 0 {
		all := true
		for _, tr := range tracks {
			if tr.DurationMS != 0 {
				all = false
				break
			}
		}
		if all {
			return nil, &MissingFieldError{Field: "duration_ms"}
		}
	}

	sorted := make([]source.Track, len(tracks))
	copy(sorted, tracks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DurationMS > sorted[j].DurationMS
	})
	if n > len(sorted) {
		n = len(sorted)
	}

	out := make([]LongTrack, n)
	for i, tr := range sorted[:n] {
		out[i] = LongTrack{Track: tr, DurationMin: float64(tr.DurationMS) / 60000}
	}
	return out, nil
}

// YearPopularity is the average album popularity across one release year.
type YearPopularity struct {
	Year          int
	AvgPopularity float64
}

// PopularityOverTime averages album popularity per release year, earliest
// year first. Rows without a popularity value or a parseable release year
// are dropped from the averages.
func PopularityOverTime(tracks []source.Track) ([]YearPopularity, error) {
	if err := requirePopularity(tracks); err != nil {
		return nil, err
	}

	sums := make(map[int]int)
	counts := make(map[int]int)
	for _, tr := range tracks {
		if tr.AlbumPopularity == nil {
			continue
		}
		y, ok := releaseYear(tr.AlbumReleaseDate)
		if !ok {
			continue
		}
		sums[y] += *tr.AlbumPopularity
		counts[y]++
	}

	out := make([]YearPopularity, 0, len(sums))
	for y := range sums {
		out = append(out, YearPopularity{
			Year:          y,
			AvgPopularity: float64(sums[y]) / float64(counts[y]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// RerecordingComparison holds the average popularity of one base title's
// original release and its rerecording. A nil side means that edition does
// not exist in the input.
type RerecordingComparison struct {
	AlbumBaseTitle string
	Original       *float64
	Rerecording    *float64
}

// CompareRerecordings averages album popularity per base title, split into
// original and rerecorded editions, sorted by base title.
func CompareRerecordings(tracks []source.Track) ([]RerecordingComparison, error) {
	if len(tracks) > 0 {
		all := true
		for _, tr := range tracks {
			if tr.AlbumBaseTitle != "" {
				all = false
				break
			}
		}
		if all {
			return nil, &MissingFieldError{Field: "album_base_title"}
		}
	}

	type editionKey struct {
		title       string
		rerecording bool
	}
	sums := make(map[editionKey]int)
	counts := make(map[editionKey]int)
	for _, tr := range tracks {
		if tr.AlbumBaseTitle == "" || tr.AlbumPopularity == nil {
			continue
		}
		k := editionKey{title: tr.AlbumBaseTitle, rerecording: tr.AlbumIsRerecording}
		sums[k] += *tr.AlbumPopularity
		counts[k]++
	}

	byTitle := make(map[string]*RerecordingComparison)
	var titles []string
	for k := range sums {
		cmp, ok := byTitle[k.title]
		if !ok {
			cmp = &RerecordingComparison{AlbumBaseTitle: k.title}
			byTitle[k.title] = cmp
			titles = append(titles, k.title)
		}
		avg := float64(sums[k]) / float64(counts[k])
		if k.rerecording {
			cmp.Rerecording = &avg
		} else {
			cmp.Original = &avg
		}
	}

	sort.Strings(titles)
	out := make([]RerecordingComparison, len(titles))
	for i, t := range titles {
		out[i] = *byTitle[t]
	}
	return out, nil
}

func requireReleaseDates(tracks []source.Track) error {
	if len(tracks) == 0 {
		return nil
	}
	for _, tr := range tracks {
		if tr.AlbumReleaseDate != "" {
			return nil
		}
	}
	return &MissingFieldError{Field: "album_release_date"}
}

func requirePopularity(tracks []source.Track) error {
	if len(tracks) == 0 {
		return nil
	}
	for _, tr := range tracks {
		if tr.AlbumPopularity != nil {
			return nil
		}
	}
	return &MissingFieldError{Field: "album_popularity"}
}

// releaseYear extracts the year from a catalog release date, which can be
// YYYY, YYYY-MM, or YYYY-MM-DD depending on the album's date precision.
func releaseYear(releaseDate string) (int, bool) {
	if len(releaseDate) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}
