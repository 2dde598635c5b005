package discography

import (
	"errors"
	"math"
	"testing"

	"github.com/sydlexius/presswatch/internal/source"
)

func intp(v int) *int { return &v }

func testTracks() []source.Track {
	return []source.Track{
		{
			ID: "t1", Name: "All Too Well (10 Minute Version)",
			AlbumBaseTitle: "Red", AlbumReleaseDate: "2021-11-12",
			AlbumIsRerecording: true, AlbumPopularity: intp(90), DurationMS: 613000,
		},
		{
			ID: "t2", Name: "All Too Well",
			AlbumBaseTitle: "Red", AlbumReleaseDate: "2012-10-22",
			AlbumPopularity: intp(70), DurationMS: 329000,
		},
		{
			ID: "t3", Name: "cardigan",
			AlbumBaseTitle: "folklore", AlbumReleaseDate: "2020-07-24",
			AlbumPopularity: intp(84), DurationMS: 239000,
		},
		{
			ID: "t4", Name: "willow",
			AlbumBaseTitle: "evermore", AlbumReleaseDate: "2020-12-11",
			AlbumPopularity: intp(80), DurationMS: 214000,
		},
	}
}

func TestTracksByYear(t *testing.T) {
	got, err := TracksByYear(testTracks(), 2020)
	if err != nil {
		t.Fatalf("TracksByYear: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tracks, want 2: %+v", len(got), got)
	}
	if got[0].ID != "t3" || got[1].ID != "t4" {
		t.Errorf("got tracks %s, %s, want t3, t4", got[0].ID, got[1].ID)
	}
}

func TestTracksByYear_MissingReleaseDates(t *testing.T) {
	tracks := []source.Track{{ID: "t1"}, {ID: "t2"}}
	_, err := TracksByYear(tracks, 2020)
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != "album_release_date" {
		t.Fatalf("err = %v, want MissingFieldError for album_release_date", err)
	}
}

func TestLongestTracks(t *testing.T) {
	got, err := LongestTracks(testTracks(), 2)
	if err != nil {
		t.Fatalf("LongestTracks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tracks, want 2", len(got))
	}
	if got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("order = %s, %s, want t1, t2", got[0].ID, got[1].ID)
	}
	if want := 613000.0 / 60000; got[0].DurationMin != want {
		t.Errorf("DurationMin = %v, want %v", got[0].DurationMin, want)
	}
}

func TestLongestTracks_NLargerThanInput(t *testing.T) {
	got, err := LongestTracks(testTracks(), 100)
	if err != nil {
		t.Fatalf("LongestTracks: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("got %d tracks, want all 4", len(got))
	}
}

func TestLongestTracks_BadArguments(t *testing.T) {
	if _, err := LongestTracks(testTracks(), 0); err == nil {
		t.Error("expected error for n=0")
	}
	zeroed := []source.Track{{ID: "t1"}, {ID: "t2"}}
	_, err := LongestTracks(zeroed, 1)
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != "duration_ms" {
		t.Errorf("err = %v, want MissingFieldError for duration_ms", err)
	}
}

func TestPopularityOverTime(t *testing.T) {
	got, err := PopularityOverTime(testTracks())
	if err != nil {
		t.Fatalf("PopularityOverTime: %v", err)
	}
	want := []YearPopularity{
		{Year: 2012, AvgPopularity: 70},
		{Year: 2020, AvgPopularity: 82},
		{Year: 2021, AvgPopularity: 90},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d years, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Year != want[i].Year || math.Abs(got[i].AvgPopularity-want[i].AvgPopularity) > 1e-9 {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPopularityOverTime_MissingPopularity(t *testing.T) {
	tracks := []source.Track{{ID: "t1", AlbumReleaseDate: "2020-07-24"}}
	_, err := PopularityOverTime(tracks)
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != "album_popularity" {
		t.Fatalf("err = %v, want MissingFieldError for album_popularity", err)
	}
}

func TestCompareRerecordings(t *testing.T) {
	got, err := CompareRerecordings(testTracks())
	if err != nil {
		t.Fatalf("CompareRerecordings: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3: %+v", len(got), got)
	}
	// Sorted by base title.
	if got[0].AlbumBaseTitle != "Red" || got[1].AlbumBaseTitle != "evermore" || got[2].AlbumBaseTitle != "folklore" {
		t.Fatalf("title order = %v, %v, %v", got[0].AlbumBaseTitle, got[1].AlbumBaseTitle, got[2].AlbumBaseTitle)
	}
	red := got[0]
	if red.Original == nil || *red.Original != 70 {
		t.Errorf("Red original = %v, want 70", red.Original)
	}
	if red.Rerecording == nil || *red.Rerecording != 90 {
		t.Errorf("Red rerecording = %v, want 90", red.Rerecording)
	}
	if got[1].Rerecording != nil {
		t.Errorf("evermore has no rerecording, got %v", *got[1].Rerecording)
	}
}

func TestCompareRerecordings_MissingBaseTitles(t *testing.T) {
	tracks := []source.Track{{ID: "t1", AlbumPopularity: intp(50)}}
	_, err := CompareRerecordings(tracks)
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != "album_base_title" {
		t.Fatalf("err = %v, want MissingFieldError for album_base_title", err)
	}
}
