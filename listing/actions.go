package listing

import (
	"fmt"
	"strings"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/modal"
	"github.com/anitrack-cli/anitrack/session"
)

func extra(anime api.Anime) *modal.Extra {
	return &modal.Extra{
		ID:    anime.ID,
		Name:  anime.Name,
		Img:   anime.ImageURL,
		State: anime.WatchStatus,
	}
}

// RateAction is the dialog opened by the rate button.
func RateAction(s *session.Session, anime api.Anime) modal.Request {
	if !s.LoggedIn() {
		return modal.Login()
	}

	return modal.Request{
		Title: "Update Rating",
		Body:  modal.RatingAddNew,
		Extra: extra(anime),
	}
}

// WatchlistAction is the dialog opened by the watchlist button.
func WatchlistAction(s *session.Session, anime api.Anime) modal.Request {
	if !s.LoggedIn() {
		return modal.Login()
	}

	return modal.Request{
		Title: "Update Watch Status",
		Body:  modal.WatchlistAddNew,
		Extra: extra(anime),
	}
}

// DetailsURL is the web page of an anime.
func DetailsURL(webURL string, id int) string {
	return fmt.Sprintf("%s/app/details/%d", strings.TrimRight(webURL, "/"), id)
}
