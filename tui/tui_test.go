package tui

import (
	"context"
	"testing"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/listing"
	"github.com/anitrack-cli/anitrack/modal"
	"github.com/anitrack-cli/anitrack/profile"
	"github.com/anitrack-cli/anitrack/session"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeBackend struct {
	updates []api.ProfileUpdate
}

func (f *fakeBackend) GenreName(context.Context, int) (string, error) {
	return "Action", nil
}

func (f *fakeBackend) GenreCount(context.Context, int) (int, error) {
	return 100, nil
}

func (f *fakeBackend) AnimesByGenre(context.Context, int, string, int, int) ([]api.Anime, error) {
	return nil, nil
}

func (f *fakeBackend) Catalog(context.Context) ([]api.Anime, error) {
	return nil, nil
}

func (f *fakeBackend) Profile(context.Context) (api.Profile, error) {
	return api.Profile{Username: "kim", Gender: profile.Male, Birthday: "2020-01-15T00:00:00Z"}, nil
}

func (f *fakeBackend) UpdateProfile(_ context.Context, update api.ProfileUpdate) error {
	f.updates = append(f.updates, update)
	return nil
}

func press(b *statefulBubble, keys string) {
	for _, r := range keys {
		b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func enter(b *statefulBubble) {
	b.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

var animes = []api.Anime{
	{ID: 1, Name: "Cowboy Bebop", Score: 8.75, WatchStatus: "Completed"},
	{ID: 2, Name: "Trigun", Score: 8.2},
	{ID: 3, Name: "Outlaw Star", Score: 7.9, WatchStatus: "Watching"},
}

func TestBubble(t *testing.T) {
	Convey("Given a genre bubble", t, func() {
		keyring.MockInit()

		backend := &fakeBackend{}
		s := session.Default()
		service := listing.NewService(backend, s, listing.ServerMode)

		b := newBubble(&Options{
			GenreID: 1,
			Sort:    listing.Score,
			Service: service,
			Backend: backend,
			Session: s,
			WebURL:  "https://anitrack.example",
		})
		b.setState(genreState)
		Reset(b.close)

		load := func(count, page int) {
			b.listing.Page = page
			_, ticket := service.Issue(context.Background(), b.listing.Query())
			b.onPage(pageMsg{ticket: ticket, result: listing.Result{Ticket: ticket, Items: animes, Count: count}})
		}

		Convey("A response to a superseded request is dropped", func() {
			_, stale := service.Issue(context.Background(), b.listing.Query())
			_, current := service.Issue(context.Background(), b.listing.Query())

			b.onPage(pageMsg{ticket: stale, result: listing.Result{Items: animes, Count: 3}})
			So(b.listing.Items, ShouldBeEmpty)
			So(b.listing.Count, ShouldEqual, 0)

			b.onPage(pageMsg{ticket: current, result: listing.Result{Items: animes[:1], Count: 1}})
			So(b.listing.Items, ShouldHaveLength, 1)
			So(b.listing.Count, ShouldEqual, 1)
		})

		Convey("A cancelled request leaves the listing untouched", func() {
			_, ticket := service.Issue(context.Background(), b.listing.Query())
			b.onPage(pageMsg{ticket: ticket, err: context.Canceled})
			So(b.listing.Failed, ShouldBeFalse)
		})

		Convey("A failed request keeps the previous items", func() {
			load(100, 1)

			_, ticket := service.Issue(context.Background(), b.listing.Query())
			b.onPage(pageMsg{ticket: ticket, err: &api.StatusError{Code: 500}})

			So(b.listing.Failed, ShouldBeTrue)
			So(b.listing.Items, ShouldResemble, animes)
		})

		Convey("Toggling compact keeps items and pagination", func() {
			load(200, 2)
			So(b.animesC.Items(), ShouldHaveLength, 3)

			press(b, "c")

			So(b.listing.Compact, ShouldBeTrue)
			So(b.listing.Page, ShouldEqual, 2)
			So(b.listing.Items, ShouldResemble, animes)
			So(b.tableC.Rows(), ShouldHaveLength, 3)
			So(b.tableC.Rows()[0][1], ShouldEqual, "⭐8.75")

			Convey("And back", func() {
				press(b, "c")
				So(b.listing.Compact, ShouldBeFalse)
				So(b.listing.Page, ShouldEqual, 2)
				So(b.animesC.Items(), ShouldHaveLength, 3)
			})
		})

		Convey("Paging is inert at the edges", func() {
			load(48, 1)

			press(b, "n")
			So(b.listing.Page, ShouldEqual, 1)

			press(b, "p")
			So(b.listing.Page, ShouldEqual, 1)
		})

		Convey("Paging moves within range", func() {
			load(100, 1)

			press(b, "n")
			So(b.listing.Page, ShouldEqual, 2)
			So(b.loading, ShouldBeTrue)
		})

		Convey("The page jump is clamped", func() {
			load(100, 1)

			press(b, "g")
			So(b.state, ShouldEqual, pageInputState)

			press(b, "99")
			enter(b)

			So(b.state, ShouldEqual, genreState)
			So(b.listing.Page, ShouldEqual, 3)
		})

		Convey("The display filter cycles", func() {
			load(100, 1)

			press(b, "d")
			So(b.listing.Display, ShouldEqual, listing.Seen)
			So(b.animesC.Items(), ShouldHaveLength, 2)

			press(b, "d")
			So(b.listing.Display, ShouldEqual, listing.NotSeen)
			So(b.animesC.Items(), ShouldHaveLength, 1)

			press(b, "d")
			So(b.listing.Display, ShouldEqual, listing.Default)
		})

		Convey("Rating without a token asks for a login", func() {
			load(100, 1)

			press(b, "r")

			So(b.state, ShouldEqual, loginState)
			So(b.request.MustGet().Body, ShouldEqual, modal.RequireLogin)

			Convey("And a submitted token logs in", func() {
				press(b, "abc.def")
				enter(b)

				So(s.LoggedIn(), ShouldBeTrue)
				So(b.state, ShouldEqual, genreState)
				So(b.request.IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("Rating with a token opens the rating dialog", func() {
			So(s.Login("token"), ShouldBeNil)
			load(100, 1)

			press(b, "r")

			So(b.state, ShouldEqual, modalState)
			request := b.request.MustGet()
			So(request.Body, ShouldEqual, modal.RatingAddNew)
			So(request.Extra.ID, ShouldEqual, 1)
			So(request.Extra.State, ShouldEqual, "Completed")

			Convey("And esc closes it", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, genreState)
				So(b.request.IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("Search filters the visible titles", func() {
			load(100, 1)

			press(b, "/")
			So(b.state, ShouldEqual, searchState)

			press(b, "bebop")
			enter(b)

			So(b.state, ShouldEqual, genreState)
			So(b.listing.Search, ShouldEqual, "bebop")
			So(b.animesC.Items(), ShouldHaveLength, 1)

			Convey("And esc clears it", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.listing.Search, ShouldBeEmpty)
				So(b.animesC.Items(), ShouldHaveLength, 3)
			})
		})
	})

	Convey("Given a profile bubble", t, func() {
		keyring.MockInit()

		backend := &fakeBackend{}
		s := session.Default()

		b := newBubble(&Options{
			Profile: true,
			Service: listing.NewService(backend, s, listing.ServerMode),
			Backend: backend,
			Session: s,
		})
		Reset(b.close)

		loaded := b.loadProfile()()
		So(b.form.Gender, ShouldBeEmpty)
		b.Update(loaded)

		Convey("The birthday is shown as written", func() {
			So(b.state, ShouldEqual, profileState)
			So(b.birthdayC.Value(), ShouldEqual, "2020-01-15")
		})

		Convey("Changing the gender stays local", func() {
			press(b, " ")
			So(b.form.Gender, ShouldEqual, profile.Female)
			So(backend.updates, ShouldBeEmpty)
		})

		Convey("The gender cannot change while an update is in flight", func() {
			enter(b)
			So(b.loading, ShouldBeTrue)

			press(b, " ")
			So(b.form.Gender, ShouldEqual, profile.Male)
		})

		Convey("The submitted values are taken before the request runs", func() {
			submit := b.submitProfile()
			So(b.form.SetGender(profile.Female), ShouldBeNil)

			msg := submit()
			So(msg, ShouldResemble, profileUpdatedMsg{})
			So(backend.updates, ShouldResemble, []api.ProfileUpdate{{Gender: profile.Male, Birthday: "2020-01-15"}})
		})

		Convey("An invalid birthday is not submitted", func() {
			b.focusProfile(focusBirthday)
			b.birthdayC.SetValue("2020-13")
			enter(b)

			So(b.loading, ShouldBeFalse)
			So(b.form.Birthday, ShouldEqual, "2020-01-15")
		})

		Convey("A valid birthday is submitted on update", func() {
			b.focusProfile(focusBirthday)
			b.birthdayC.SetValue("1999-12-31")
			enter(b)

			So(b.loading, ShouldBeTrue)
			So(b.form.Birthday, ShouldEqual, "1999-12-31")
		})
	})
}
