package api

import (
	"context"

	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/internal/cache"
	"github.com/anitrack-cli/anitrack/log"
)

// Animes returns the whole catalog.
func (c *Client) Animes(ctx context.Context) ([]Anime, error) {
	var animes []Anime
	if err := c.get(ctx, constant.RouteAnimes, &animes); err != nil {
		return nil, err
	}
	return animes, nil
}

// Catalog is Animes behind the on-disk snapshot cache.
// Snapshots are keyed by the token so watch statuses never leak between accounts.
func (c *Client) Catalog(ctx context.Context) ([]Anime, error) {
	if !c.catalog {
		return c.Animes(ctx)
	}

	var token string
	if c.session != nil {
		token = c.session.Token().OrEmpty()
	}

	id := cache.Key(c.base, constant.RouteAnimes, token)

	var animes []Anime
	if cache.Read(id, &animes) {
		return animes, nil
	}

	animes, err := c.Animes(ctx)
	if err != nil {
		return nil, err
	}

	if err := cache.Write(id, animes); err != nil {
		log.Warnf("caching catalog: %s", err)
	}

	return animes, nil
}

// ForgetCatalog drops cached catalog snapshots, e.g. after the session changes.
func (c *Client) ForgetCatalog() error {
	return cache.Clear()
}
