package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/session"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

type fakeBackend struct {
	session  *session.Session
	count    int
	catalog  []api.Anime
	requests []string
	tokens   []string
	err      error
}

func (f *fakeBackend) GenreName(_ context.Context, _ int) (string, error) {
	return "Drama", nil
}

func (f *fakeBackend) GenreCount(_ context.Context, _ int) (int, error) {
	return f.count, nil
}

func (f *fakeBackend) AnimesByGenre(_ context.Context, _ int, sort string, start, end int) ([]api.Anime, error) {
	f.requests = append(f.requests, sort)
	f.tokens = append(f.tokens, f.session.Token().OrEmpty())

	if f.err != nil && f.session.LoggedIn() {
		return nil, f.err
	}

	return []api.Anime{{ID: start, Name: "first"}, {ID: end, Name: "last"}}, nil
}

func (f *fakeBackend) Catalog(_ context.Context) ([]api.Anime, error) {
	return f.catalog, nil
}

func TestService(t *testing.T) {
	Convey("Given a server mode service", t, func() {
		keyring.MockInit()
		s := session.Default()
		backend := &fakeBackend{session: s, count: 100}
		service := NewService(backend, s, ServerMode)
		ctx := context.Background()

		Convey("A page requests its range with the sort name", func() {
			result, err := service.Run(ctx, Query{GenreID: 1, Page: 2, Sort: Members})
			So(err, ShouldBeNil)
			So(result.Count, ShouldEqual, 100)
			So(result.Items[0].ID, ShouldEqual, 49)
			So(result.Items[1].ID, ShouldEqual, 96)
			So(backend.requests, ShouldResemble, []string{"Members"})
		})

		Convey("Only the latest ticket is current", func() {
			firstCtx, first := service.Issue(ctx, Query{Page: 1})
			_, second := service.Issue(ctx, Query{Page: 2})

			So(service.Current(first), ShouldBeFalse)
			So(service.Current(second), ShouldBeTrue)
			So(firstCtx.Err(), ShouldEqual, context.Canceled)
		})

		Convey("A rejected token is dropped and the page reloaded once", func() {
			So(s.Login("stale"), ShouldBeNil)
			backend.err = &api.UnauthorizedError{Message: "Token expired"}

			result, err := service.Run(ctx, Query{GenreID: 1, Page: 1, Sort: Score})
			So(err, ShouldBeNil)
			So(result.LoggedOut, ShouldBeTrue)
			So(s.LoggedIn(), ShouldBeFalse)
			So(backend.tokens, ShouldResemble, []string{"stale", ""})

			_, err = keyring.Get("anitrack", "backend-token")
			So(err, ShouldEqual, keyring.ErrNotFound)
		})

		Convey("Other 401s are returned as is", func() {
			So(s.Login("token"), ShouldBeNil)
			backend.err = &api.UnauthorizedError{Message: "nope"}

			_, err := service.Run(ctx, Query{GenreID: 1, Page: 1})
			So(err, ShouldNotBeNil)
			So(s.LoggedIn(), ShouldBeTrue)
			So(backend.requests, ShouldHaveLength, 1)
		})

		Convey("Other errors are returned with an unknown count", func() {
			So(s.Login("token"), ShouldBeNil)
			backend.err = errors.New("boom")

			result, err := service.Run(ctx, Query{GenreID: 1, Page: 1})
			So(err, ShouldNotBeNil)
			So(result.Count, ShouldEqual, -1)
		})
	})

	Convey("Given a client mode service", t, func() {
		keyring.MockInit()
		s := session.Default()
		backend := &fakeBackend{
			session: s,
			catalog: []api.Anime{
				{ID: 1, Name: "B", Score: 7, GenreIDs: []int{1}},
				{ID: 2, Name: "A", Score: 9, WatchStatus: "Completed", GenreIDs: []int{1}},
				{ID: 3, Name: "C", Score: 8, GenreIDs: []int{2}},
			},
		}
		service := NewService(backend, s, ClientMode)

		Convey("The catalog is sorted and counted locally", func() {
			result, err := service.Run(context.Background(), Query{GenreID: 1, Page: 1, Sort: Score})
			So(err, ShouldBeNil)
			So(result.Count, ShouldEqual, 2)
			So(result.Items[0].ID, ShouldEqual, 2)
			So(backend.requests, ShouldBeEmpty)
		})

		Convey("The display filter changes the count", func() {
			result, err := service.Run(context.Background(), Query{GenreID: 1, Page: 1, Display: Seen})
			So(err, ShouldBeNil)
			So(result.Count, ShouldEqual, 1)
		})

		Convey("Each genre sees only its own items", func() {
			first, err := service.Run(context.Background(), Query{GenreID: 1, Page: 1, Sort: Score})
			So(err, ShouldBeNil)
			second, err := service.Run(context.Background(), Query{GenreID: 2, Page: 1, Sort: Score})
			So(err, ShouldBeNil)

			So(first.Items, ShouldNotResemble, second.Items)
			So(second.Count, ShouldEqual, 1)
			So(second.Items[0].ID, ShouldEqual, 3)
		})
	})

	Convey("ParseMode defaults to server", t, func() {
		So(ParseMode("client"), ShouldEqual, ClientMode)
		So(ParseMode("CLIENT "), ShouldEqual, ClientMode)
		So(ParseMode("whatever"), ShouldEqual, ServerMode)
	})
}
