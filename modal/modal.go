// Package modal describes dialog requests raised by views.
//
// Views never mutate ratings or watchlists themselves. They raise a Request and the
// front end decides how to present it.
package modal

import "fmt"

// BodyType selects the dialog body.
type BodyType int

const (
	RequireLogin BodyType = iota + 1
	RatingAddNew
	WatchlistAddNew
)

// String returns the wire name of the body type.
func (b BodyType) String() string {
	switch b {
	case RequireLogin:
		return "REQUIRE_LOGIN"
	case RatingAddNew:
		return "RATING_ADD_NEW"
	case WatchlistAddNew:
		return "WATCHLIST_ADD_NEW"
	default:
		return fmt.Sprintf("BodyType(%d)", int(b))
	}
}

// MarshalText encodes the body type by its wire name.
func (b BodyType) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Extra identifies the item a dialog acts on.
type Extra struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Img   string `json:"img"`
	State string `json:"state"`
}

// Request is a dialog to open.
type Request struct {
	Title string   `json:"title"`
	Body  BodyType `json:"bodyType"`
	Extra *Extra   `json:"extraObject,omitempty"`
}

// Login is the request raised when an action needs credentials.
func Login() Request {
	return Request{
		Title: "You need to login",
		Body:  RequireLogin,
	}
}
