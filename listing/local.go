package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Search keeps the items whose name fuzzily contains query. An empty query keeps everything.
func Search(animes []api.Anime, query string) []api.Anime {
	query = strings.TrimSpace(query)
	if query == "" {
		return animes
	}

	return lo.Filter(animes, func(anime api.Anime, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, anime.Name)
	})
}

// Order returns a sorted copy of animes. Ties are broken by name.
func Order(animes []api.Anime, by Sort) []api.Anime {
	sorted := make([]api.Anime, len(animes))
	copy(sorted, animes)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		switch by {
		case Members:
			if a.Members != b.Members {
				return a.Members > b.Members
			}
		case Newest:
			ta, tb := aired(a), aired(b)
			if !ta.Equal(tb) {
				return ta.After(tb)
			}
		case Score:
			if a.Score != b.Score {
				return a.Score > b.Score
			}
		}

		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	return sorted
}

// Paginate returns the items of page using the same range arithmetic as the backend.
func Paginate(animes []api.Anime, page int) []api.Anime {
	start, end := Range(page)
	if start > len(animes) || start < 1 {
		return nil
	}
	return animes[start-1:min(end, len(animes))]
}

// InGenre keeps the catalog items tagged with genre id.
func InGenre(catalog []api.Anime, id int) []api.Anime {
	return lo.Filter(catalog, func(anime api.Anime, _ int) bool {
		return anime.InGenre(id)
	})
}

// Local runs a query over a full catalog: genre, display filter, search, sort, then paging.
// The returned count is the number of items that passed the filters.
func Local(catalog []api.Anime, q Query) (items []api.Anime, count int) {
	filtered := Search(q.Display.Filter(InGenre(catalog, q.GenreID)), q.Search)
	count = len(filtered)

	page := Clamp(q.Page, TotalPages(count))
	return Paginate(Order(filtered, q.Sort), page), count
}

var airedLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"Jan 2, 2006",
	"Jan 2006",
	"2006",
}

// aired parses the start of the Aired field, e.g. "Apr 3, 1998 to Apr 24, 1999".
func aired(anime api.Anime) time.Time {
	value, _, _ := strings.Cut(anime.Aired, " to ")
	value = strings.TrimSpace(value)

	for _, layout := range airedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}

	return time.Time{}
}
