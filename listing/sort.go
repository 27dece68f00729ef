package listing

import (
	"fmt"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Sort is the field a genre listing is ordered by.
type Sort int

const (
	Members Sort = iota
	Newest
	Score
	Title
)

// Sorts lists every sort in menu order.
var Sorts = []Sort{Members, Newest, Score, Title}

// DefaultSort is used when nothing else is configured.
const DefaultSort = Score

var sortNames = map[Sort]string{
	Members: "Members",
	Newest:  "Newest",
	Score:   "Score",
	Title:   "Title",
}

// String returns the name the backend expects in the route.
func (s Sort) String() string {
	if name, ok := sortNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sort(%d)", int(s))
}

// Label is the text of the sort button.
func (s Sort) Label() string {
	return "Sorted By " + s.String()
}

// Next returns the following sort in menu order, wrapping around.
func (s Sort) Next() Sort {
	i := slices.Index(Sorts, s)
	return Sorts[(i+1)%len(Sorts)]
}

// SortNames returns the names of all sorts.
func SortNames() []string {
	return lo.Map(Sorts, func(s Sort, _ int) string {
		return s.String()
	})
}

// ParseSort resolves a sort by name, ignoring case.
func ParseSort(name string) (Sort, error) {
	trimmed := strings.TrimSpace(name)

	for _, s := range Sorts {
		if strings.EqualFold(s.String(), trimmed) {
			return s, nil
		}
	}

	closest := lo.MinBy(SortNames(), func(a, b string) bool {
		return levenshtein.Distance(strings.ToLower(trimmed), strings.ToLower(a)) <
			levenshtein.Distance(strings.ToLower(trimmed), strings.ToLower(b))
	})

	return DefaultSort, fmt.Errorf("unknown sort %q, did you mean %q?", name, closest)
}
