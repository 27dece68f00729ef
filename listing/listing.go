// Package listing holds the state and fetch logic of a genre listing.
//
// A Listing is plain view state: it knows its page, sort, display filter and layout
// and computes pagination from the genre count. Fetching is done by a Service, which
// tags every request with a Ticket so that late responses can be recognized and dropped.
package listing

import (
	"fmt"

	"github.com/anitrack-cli/anitrack/api"
)

// Listing is the view state of one genre.
type Listing struct {
	GenreID int
	Name    string
	Count   int

	Page    int
	Sort    Sort
	Display Display
	Compact bool
	Search  string

	Items []api.Anime

	// Failed is set when the last fetch failed. Items keep their previous value.
	Failed bool
}

// New returns the first page of a genre with the default sort.
func New(genreID int) *Listing {
	return &Listing{
		GenreID: genreID,
		Page:    1,
		Sort:    DefaultSort,
	}
}

// Header is "<name> Anime (<count>)".
func (l *Listing) Header() string {
	return fmt.Sprintf("%s Anime (%d)", l.Name, l.Count)
}

// TotalPages is derived from Count.
func (l *Listing) TotalPages() int {
	return TotalPages(l.Count)
}

// CanPrev reports whether a previous page exists.
func (l *Listing) CanPrev() bool {
	return l.TotalPages() > 0 && l.Page > 1
}

// CanNext reports whether a following page exists.
func (l *Listing) CanNext() bool {
	return l.Page < l.TotalPages()
}

// Prev moves one page back and reports whether the page changed.
func (l *Listing) Prev() bool {
	if !l.CanPrev() {
		return false
	}
	l.Page--
	return true
}

// Next moves one page forward and reports whether the page changed.
func (l *Listing) Next() bool {
	if !l.CanNext() {
		return false
	}
	l.Page++
	return true
}

// GoTo jumps to page, clamped to the valid range, and reports whether the page changed.
func (l *Listing) GoTo(page int) bool {
	total := l.TotalPages()
	if total == 0 {
		return false
	}

	page = Clamp(page, total)
	if page == l.Page {
		return false
	}

	l.Page = page
	return true
}

// SetSort changes the sort and reports whether it changed. The page is kept.
func (l *Listing) SetSort(s Sort) bool {
	if s == l.Sort {
		return false
	}
	l.Sort = s
	return true
}

// CycleDisplay advances the display filter.
func (l *Listing) CycleDisplay() {
	l.Display = l.Display.Next()
}

// ToggleCompact switches between the card and table layouts.
func (l *Listing) ToggleCompact() {
	l.Compact = !l.Compact
}

// Visible returns the items that pass the display filter and the search.
func (l *Listing) Visible() []api.Anime {
	return Search(l.Display.Filter(l.Items), l.Search)
}

// Query captures what a fetch for the current state must request.
func (l *Listing) Query() Query {
	return Query{
		GenreID: l.GenreID,
		Page:    l.Page,
		Sort:    l.Sort,
		Display: l.Display,
		Search:  l.Search,
	}
}

// Apply stores a fetch result.
func (l *Listing) Apply(result Result) {
	l.Items = result.Items
	l.Failed = false

	if result.Count >= 0 {
		l.Count = result.Count
	}

	if total := l.TotalPages(); total > 0 && l.Page > total {
		l.Page = total
	}
}

// Fail marks the last fetch as failed without touching the items.
func (l *Listing) Fail() {
	l.Failed = true
}
