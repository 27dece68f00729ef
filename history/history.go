// Package history remembers recently visited genre pages.
package history

import (
	"sort"
	"sync"
	"time"

	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/key"
	"github.com/anitrack-cli/anitrack/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var (
	cacher     *gache.Cache[map[string]*Visit]
	cacherOnce sync.Once
)

func store() *gache.Cache[map[string]*Visit] {
	cacherOnce.Do(func() {
		cacher = gache.New[map[string]*Visit](
			&gache.Options{
				Path:       where.History(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	})
	return cacher
}

// Get returns every saved visit keyed by genre id.
func Get() (map[string]*Visit, error) {
	cached, expired, err := store().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Visit), nil
	}
	return cached, nil
}

// Save records a visit, replacing the previous one of the same genre.
// It is a no-op when history.save is disabled.
func Save(visit Visit) error {
	if !viper.GetBool(key.HistorySave) {
		return nil
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now()
	}

	saved[visit.encode()] = &visit
	return store().Set(saved)
}

// Recent returns the visits, most recent first.
func Recent() ([]*Visit, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	visits := lo.Values(saved)
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].VisitedAt.After(visits[j].VisitedAt)
	})

	return visits, nil
}

// Last returns the most recent visit, if any.
func Last() mo.Option[*Visit] {
	visits, err := Recent()
	if err != nil || len(visits) == 0 {
		return mo.None[*Visit]()
	}
	return mo.Some(visits[0])
}

// Remove deletes the visit of a genre.
func Remove(genreID int) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, (&Visit{GenreID: genreID}).encode())
	return store().Set(saved)
}
