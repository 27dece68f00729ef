package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Anime is a listing item.
type Anime struct {
	ID          int     `json:"anime_id" jsonschema:"description=Backend identifier"`
	Name        string  `json:"Name"`
	ImageURL    string  `json:"Image_URL"`
	Synopsis    string  `json:"Synopsis"`
	Score       float64 `json:"Score"`
	WatchStatus string  `json:"Watch_Status" jsonschema:"description=Empty when the user has no watchlist entry"`
	Members     int     `json:"Members,omitempty"`
	Aired       string  `json:"Aired,omitempty"`
	GenreIDs    []int   `json:"Genre_ids,omitempty" jsonschema:"description=Genres the item belongs to, only set by the full catalog"`
}

// InGenre reports whether the item is tagged with genre id.
func (a Anime) InGenre(id int) bool {
	for _, g := range a.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts numbers encoded as strings and a null watch status.
// Key matching is case-insensitive, so both anime_id and Anime_id populate ID.
func (a *Anime) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID          number  `json:"anime_id"`
		Name        string  `json:"Name"`
		ImageURL    string  `json:"Image_URL"`
		Synopsis    string  `json:"Synopsis"`
		Score       number  `json:"Score"`
		WatchStatus *string `json:"Watch_Status"`
		Members     number  `json:"Members"`
		Aired       string  `json:"Aired"`
		GenreID     *number `json:"Genre_id"`
		GenreIDs    idList  `json:"Genre_ids"`
		Genres      idList  `json:"Genres"`
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*a = Anime{
		ID:       wire.ID.Int(),
		Name:     wire.Name,
		ImageURL: wire.ImageURL,
		Synopsis: wire.Synopsis,
		Score:    float64(wire.Score),
		Members:  wire.Members.Int(),
		Aired:    wire.Aired,
	}

	if wire.GenreID != nil {
		a.GenreIDs = append(a.GenreIDs, wire.GenreID.Int())
	}
	for _, id := range append(wire.GenreIDs, wire.Genres...) {
		if !a.InGenre(id) {
			a.GenreIDs = append(a.GenreIDs, id)
		}
	}

	if wire.WatchStatus != nil {
		a.WatchStatus = strings.TrimSpace(*wire.WatchStatus)
	}

	return nil
}

// ScoreString renders the score without trailing zeros.
func (a Anime) ScoreString() string {
	return strconv.FormatFloat(a.Score, 'f', -1, 64)
}

// Profile is the current user's profile record.
type Profile struct {
	Username string `json:"Username"`
	Gender   string `json:"Gender"`
	Birthday string `json:"Birthday"`
}

// UnmarshalJSON tolerates a null gender or birthday.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var wire struct {
		Username *string `json:"Username"`
		Gender   *string `json:"Gender"`
		Birthday *string `json:"Birthday"`
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	*p = Profile{
		Username: deref(wire.Username),
		Gender:   deref(wire.Gender),
		Birthday: deref(wire.Birthday),
	}
	return nil
}

// ProfileUpdate is the body of an update request.
type ProfileUpdate struct {
	Gender   string `json:"gender"`
	Birthday string `json:"birthday"`
}

// number decodes a JSON number, a numeric string or null.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse number %q: %w", s, err)
		}
		*n = number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = number(f)
	return nil
}

func (n number) Int() int {
	return int(math.Round(float64(n)))
}

// idList decodes genre ids given as an array of numbers or numeric strings,
// a single number, or a comma separated string such as "1, 4".
type idList []int

func (l *idList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = nil

	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '[':
		var values []number
		if err := json.Unmarshal(data, &values); err != nil {
			return err
		}
		for _, v := range values {
			*l = append(*l, v.Int())
		}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return fmt.Errorf("parse genre id %q: %w", part, err)
			}
			*l = append(*l, id)
		}
		return nil
	}

	var n number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = idList{n.Int()}
	return nil
}
