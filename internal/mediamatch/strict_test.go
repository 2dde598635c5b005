package mediamatch

import (
	"testing"

	"github.com/sydlexius/presswatch/internal/source"
)

func TestMatchStrict_WholeWordOnly(t *testing.T) {
	albums := []source.Album{
		album("a1", "Red (Taylor's Version)", "Red"),
		album("a2", "1989", "1989"),
	}
	articles := []source.Article{
		article("u1", "Red returns, re-recorded", "The 2012 album gets a second life."),
		article("u2", "Infrared imaging advances", "New sensors arrive in 1989 models."),
	}
	got := MatchStrict(articles, albums, testConfig(), true)
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(got), got)
	}
	// Article-major order: u1's titles first, then u2's.
	if got[0].AlbumBaseTitle != "Red" || got[0].URL != "u1" {
		t.Errorf("first match = %+v, want Red in u1", got[0])
	}
	if got[1].AlbumBaseTitle != "1989" || got[1].URL != "u2" {
		t.Errorf("second match = %+v, want 1989 in u2", got[1])
	}
}

func TestMatchStrict_SkipAmbiguousDropsSelfTitled(t *testing.T) {
	albums := []source.Album{
		album("a1", "Taylor Swift", "Taylor Swift"),
		album("a2", "Fearless", "Fearless"),
	}
	articles := []source.Article{
		article("u1", "Taylor Swift announces tour dates", "Fearless features in the setlist."),
	}

	strict := MatchStrict(articles, albums, testConfig(), true)
	if len(strict) != 1 || strict[0].AlbumBaseTitle != "Fearless" {
		t.Fatalf("with skipAmbiguous, got %+v, want only Fearless", strict)
	}

	loose := MatchStrict(articles, albums, testConfig(), false)
	if len(loose) != 2 {
		t.Fatalf("without skipAmbiguous, got %d matches, want 2: %+v", len(loose), loose)
	}
}

func TestMatchStrict_DeduplicatesTitles(t *testing.T) {
	// Both the original and the re-recording share the base title, so one
	// article must produce one row, not two.
	albums := []source.Album{
		album("a1", "Red", "Red"),
		album("a2", "Red (Taylor's Version)", "Red"),
	}
	articles := []source.Article{
		article("u1", "Red is back", "A sprawling album, twice over."),
	}
	got := MatchStrict(articles, albums, testConfig(), true)
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(got), got)
	}
}

func TestMatchStrict_SeveralAlbumsInOneArticle(t *testing.T) {
	albums := []source.Album{
		album("a1", "folklore", "folklore"),
		album("a2", "evermore", "evermore"),
	}
	articles := []source.Article{
		article("u1", "Sister records folklore and evermore", ""),
	}
	got := MatchStrict(articles, albums, testConfig(), true)
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(got), got)
	}
}
