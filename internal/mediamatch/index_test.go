package mediamatch

import (
	"context"
	"errors"
	"testing"

	"github.com/sydlexius/presswatch/internal/source"
)

type fakeSearcher struct {
	results map[string][]source.Article
	errs    map[string]error
	windows map[string]source.Window
}

func (f *fakeSearcher) SearchAlbum(_ context.Context, albumTitle string, _ int, w source.Window) ([]source.Article, error) {
	if f.windows != nil {
		f.windows[albumTitle] = w
	}
	if err := f.errs[albumTitle]; err != nil {
		return nil, err
	}
	return f.results[albumTitle], nil
}

func TestIndexBuilder_Build(t *testing.T) {
	cfg := testConfig()
	cfg.ReleaseDates["Broken"] = "22 October 2012"

	searcher := &fakeSearcher{
		results: map[string][]source.Article{
			"Red":  {article("u1", "Red reviewed", ""), article("u2", "More on Red", "")},
			"1989": {},
		},
		errs:    map[string]error{"Lover": errors.New("archive down")},
		windows: make(map[string]source.Window),
	}
	builder := NewIndexBuilder(searcher, cfg, discardLogger())

	albums := []source.Album{
		album("a1", "Red", "Red"),
		album("a2", "1989", "1989"),
		album("a3", "Lover", "Lover"),
		album("a4", "Unknown Album", "Unknown Album"),
		album("a5", "Broken", "Broken"),
	}
	result, err := builder.Build(context.Background(), albums, 1, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(result.Articles) != 2 {
		t.Fatalf("got %d indexed articles, want 2: %+v", len(result.Articles), result.Articles)
	}
	for _, ia := range result.Articles {
		if ia.AlbumBaseTitle != "Red" {
			t.Errorf("indexed article tagged %q, want Red", ia.AlbumBaseTitle)
		}
	}

	wantOutcomes := map[string]IndexOutcome{
		"Red":           OutcomeIndexed,
		"1989":          OutcomeNoResults,
		"Lover":         OutcomeSearchFailed,
		"Unknown Album": OutcomeNoReleaseDate,
		"Broken":        OutcomeInvalidDate,
	}
	if len(result.Statuses) != len(albums) {
		t.Fatalf("got %d statuses, want %d", len(result.Statuses), len(albums))
	}
	for _, st := range result.Statuses {
		if st.Outcome != wantOutcomes[st.BaseTitle] {
			t.Errorf("outcome for %q = %q, want %q", st.BaseTitle, st.Outcome, wantOutcomes[st.BaseTitle])
		}
		switch st.Outcome {
		case OutcomeSearchFailed, OutcomeInvalidDate:
			if st.Err == nil {
				t.Errorf("status %q missing error", st.BaseTitle)
			}
		case OutcomeIndexed:
			if st.Articles != 2 {
				t.Errorf("indexed article count = %d, want 2", st.Articles)
			}
		}
	}

	// Red released 2012-10-22, two years after.
	if w := searcher.windows["Red"]; w.Begin != "20120101" || w.End != "20140101" {
		t.Errorf("Red window = %+v, want 20120101..20140101", w)
	}
	if _, searched := searcher.windows["Unknown Album"]; searched {
		t.Error("album without a release date must not be searched")
	}
}

func TestIndexBuilder_Build_RejectsBadArguments(t *testing.T) {
	builder := NewIndexBuilder(&fakeSearcher{}, testConfig(), discardLogger())
	if _, err := builder.Build(context.Background(), nil, 0, 2); err == nil {
		t.Error("expected error for zero pages")
	}
	if _, err := builder.Build(context.Background(), nil, 1, -1); err == nil {
		t.Error("expected error for negative years")
	}
}
