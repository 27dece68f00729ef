package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/log"
)

// GenreName returns the display name of a genre.
func (c *Client) GenreName(ctx context.Context, id int) (string, error) {
	if c.genres != nil {
		if name, ok := c.genres.names.Get(id).Get(); ok {
			return name, nil
		}
	}

	var rows []struct {
		Name string `json:"Genre_name"`
	}

	if err := c.get(ctx, fmt.Sprintf("%s/%d", constant.RouteGenreName, id), &rows); err != nil {
		return "", err
	}

	if len(rows) == 0 {
		return "", fmt.Errorf("genre %d name: %w", id, ErrEmptyResult)
	}

	if c.genres != nil {
		if err := c.genres.names.Set(id, rows[0].Name); err != nil {
			log.Warnf("caching genre %d name: %s", id, err)
		}
	}

	return rows[0].Name, nil
}

// GenreCount returns the number of anime in a genre.
func (c *Client) GenreCount(ctx context.Context, id int) (int, error) {
	if c.genres != nil {
		if count, ok := c.genres.counts.Get(id).Get(); ok {
			return count, nil
		}
	}

	var rows []struct {
		Count number `json:"cnt"`
	}

	if err := c.get(ctx, fmt.Sprintf("%s/%d", constant.RouteGenreCount, id), &rows); err != nil {
		return 0, err
	}

	if len(rows) == 0 {
		return 0, fmt.Errorf("genre %d count: %w", id, ErrEmptyResult)
	}

	count := rows[0].Count.Int()
	if c.genres != nil {
		if err := c.genres.counts.Set(id, count); err != nil {
			log.Warnf("caching genre %d count: %s", id, err)
		}
	}

	return count, nil
}

// AnimesByGenre returns the items start..end (1-based, inclusive) of a genre in the given sort order.
func (c *Client) AnimesByGenre(ctx context.Context, id int, sort string, start, end int) ([]Anime, error) {
	path := fmt.Sprintf("%s/%d/%s/%d/%d", constant.RouteAnimesByGenre, id, url.PathEscape(sort), start, end)

	var animes []Anime
	if err := c.get(ctx, path, &animes); err != nil {
		return nil, err
	}

	return animes, nil
}
