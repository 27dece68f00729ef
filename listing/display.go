package listing

import (
	"fmt"
	"strings"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/samber/lo"
)

// Display narrows a listing by watch status.
type Display int

const (
	Default Display = iota
	Seen
	NotSeen
)

// String returns the button text.
func (d Display) String() string {
	switch d {
	case Default:
		return "Default"
	case Seen:
		return "Seen"
	case NotSeen:
		return "NotSeen"
	default:
		return fmt.Sprintf("Display(%d)", int(d))
	}
}

// Next cycles Default, Seen, NotSeen.
func (d Display) Next() Display {
	return (d + 1) % 3
}

// Match reports whether anime belongs to the bucket.
func (d Display) Match(anime api.Anime) bool {
	switch d {
	case Seen:
		return HasStatus(anime)
	case NotSeen:
		return !HasStatus(anime)
	default:
		return true
	}
}

// Filter keeps the items that belong to the bucket.
func (d Display) Filter(animes []api.Anime) []api.Anime {
	if d == Default {
		return animes
	}

	return lo.Filter(animes, func(anime api.Anime, _ int) bool {
		return d.Match(anime)
	})
}

// HasStatus reports whether the user has a watchlist entry for anime.
func HasStatus(anime api.Anime) bool {
	switch strings.ToLower(strings.TrimSpace(anime.WatchStatus)) {
	case "", "unseen", "notseen", "not seen":
		return false
	default:
		return true
	}
}

// ParseDisplay is the inverse of String. Unknown names are Default.
func ParseDisplay(name string) Display {
	for _, d := range []Display{Seen, NotSeen} {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d
		}
	}
	return Default
}
