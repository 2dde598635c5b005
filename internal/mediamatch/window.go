package mediamatch

import (
	"fmt"
	"time"

	"github.com/sydlexius/presswatch/internal/source"
)

const (
	releaseDateLayout = "2006-01-02"
	windowLayout      = "20060102"
)

// InvalidDateError reports a release date that is not a real calendar date
// in YYYY-MM-DD form.
type InvalidDateError struct {
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid release date %q: %v", e.Value, e.Err)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

// PlanWindow derives the archive search window for an album released on
// releaseDate. The window opens on January 1 of the release year and closes
// exactly yearsAfter years later, so early-January releases still cover
// pre-release press from the same year.
func PlanWindow(releaseDate string, yearsAfter int) (source.Window, error) {
	if yearsAfter < 0 {
		return source.Window{}, fmt.Errorf("years after release must be >= 0, got %d", yearsAfter)
	}
	t, err := time.Parse(releaseDateLayout, releaseDate)
	if err != nil {
		return source.Window{}, &InvalidDateError{Value: releaseDate, Err: err}
	}
	begin := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := begin.AddDate(yearsAfter, 0, 0)
	return source.Window{
		Begin: begin.Format(windowLayout),
		End:   end.Format(windowLayout),
	}, nil
}
