package listing

import (
	"testing"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/config"
	"github.com/anitrack-cli/anitrack/modal"
	"github.com/anitrack-cli/anitrack/session"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestPagination(t *testing.T) {
	Convey("TotalPages is ceil(count / 48)", t, func() {
		So(TotalPages(0), ShouldEqual, 0)
		So(TotalPages(1), ShouldEqual, 1)
		So(TotalPages(48), ShouldEqual, 1)
		So(TotalPages(49), ShouldEqual, 2)
		So(TotalPages(130), ShouldEqual, 3)
	})

	Convey("Range is inclusive and 1-based", t, func() {
		start, end := Range(1)
		So(start, ShouldEqual, 1)
		So(end, ShouldEqual, 48)

		start, end = Range(3)
		So(start, ShouldEqual, 97)
		So(end, ShouldEqual, 144)
	})

	Convey("Given an empty genre", t, func() {
		l := New(1)

		Convey("Pagination is inert", func() {
			So(l.CanPrev(), ShouldBeFalse)
			So(l.CanNext(), ShouldBeFalse)
			So(l.Prev(), ShouldBeFalse)
			So(l.Next(), ShouldBeFalse)
			So(l.GoTo(5), ShouldBeFalse)
			So(l.Page, ShouldEqual, 1)
		})
	})

	Convey("Given a genre with 130 items", t, func() {
		l := New(1)
		l.Count = 130

		Convey("Prev is inert on the first page", func() {
			So(l.Prev(), ShouldBeFalse)
			So(l.Page, ShouldEqual, 1)
		})

		Convey("Next stops at the last page", func() {
			So(l.Next(), ShouldBeTrue)
			So(l.Next(), ShouldBeTrue)
			So(l.Next(), ShouldBeFalse)
			So(l.Page, ShouldEqual, 3)
		})

		Convey("GoTo is clamped", func() {
			So(l.GoTo(99), ShouldBeTrue)
			So(l.Page, ShouldEqual, 3)
			So(l.GoTo(-4), ShouldBeTrue)
			So(l.Page, ShouldEqual, 1)
			So(l.GoTo(1), ShouldBeFalse)
		})
	})
}

func TestState(t *testing.T) {
	Convey("Given a listing with items", t, func() {
		l := New(3)
		l.Name = "Mystery"
		l.Apply(Result{
			Count: 60,
			Items: []api.Anime{
				{ID: 1, Name: "Monster", WatchStatus: "Watching"},
				{ID: 2, Name: "Another"},
				{ID: 3, Name: "Erased", WatchStatus: "unseen"},
			},
		})
		l.Next()

		Convey("The header names the genre and count", func() {
			So(l.Header(), ShouldEqual, "Mystery Anime (60)")
		})

		Convey("Toggling compact keeps items and pagination", func() {
			items, page, total := l.Items, l.Page, l.TotalPages()
			l.ToggleCompact()

			So(l.Compact, ShouldBeTrue)
			So(l.Items, ShouldResemble, items)
			So(l.Page, ShouldEqual, page)
			So(l.TotalPages(), ShouldEqual, total)
		})

		Convey("Display cycles Default, Seen, NotSeen", func() {
			So(l.Display, ShouldEqual, Default)
			So(l.Visible(), ShouldHaveLength, 3)

			l.CycleDisplay()
			So(l.Display, ShouldEqual, Seen)
			So(l.Visible(), ShouldHaveLength, 1)

			l.CycleDisplay()
			So(l.Display, ShouldEqual, NotSeen)
			So(l.Visible(), ShouldHaveLength, 2)

			l.CycleDisplay()
			So(l.Display, ShouldEqual, Default)
		})

		Convey("Display names round trip", func() {
			for _, d := range []Display{Default, Seen, NotSeen} {
				So(ParseDisplay(d.String()), ShouldEqual, d)
			}
			So(ParseDisplay("bogus"), ShouldEqual, Default)
		})

		Convey("Search narrows the visible items", func() {
			l.Search = "mnstr"
			So(l.Visible(), ShouldHaveLength, 1)
			So(l.Visible()[0].ID, ShouldEqual, 1)
		})

		Convey("Changing the sort keeps the page", func() {
			So(l.SetSort(Title), ShouldBeTrue)
			So(l.SetSort(Title), ShouldBeFalse)
			So(l.Page, ShouldEqual, 2)
			So(l.Query().Sort, ShouldEqual, Title)
		})

		Convey("A failure keeps the items", func() {
			l.Fail()
			So(l.Failed, ShouldBeTrue)
			So(l.Items, ShouldHaveLength, 3)
		})

		Convey("A shrinking count pulls the page back", func() {
			l.Apply(Result{Count: 10})
			So(l.Page, ShouldEqual, 1)
		})
	})
}

func TestSort(t *testing.T) {
	Convey("Sort names and labels", t, func() {
		So(SortNames(), ShouldResemble, []string{"Members", "Newest", "Score", "Title"})
		So(SortNames(), ShouldResemble, config.Sorts)
		So(Score.Label(), ShouldEqual, "Sorted By Score")
		So(Title.Next(), ShouldEqual, Members)
	})

	Convey("ParseSort ignores case and suggests on typos", t, func() {
		s, err := ParseSort("newest")
		So(err, ShouldBeNil)
		So(s, ShouldEqual, Newest)

		_, err = ParseSort("scroe")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, `"Score"`)
	})
}

func TestLocal(t *testing.T) {
	catalog := []api.Anime{
		{ID: 1, Name: "Bebop", Score: 8.8, Members: 100, Aired: "Apr 3, 1998 to Apr 24, 1999", GenreIDs: []int{1, 24}},
		{ID: 2, Name: "Akira", Score: 8.8, Members: 300, Aired: "Jul 16, 1988", GenreIDs: []int{1}},
		{ID: 3, Name: "Chihayafuru", Score: 8.2, Members: 200, Aired: "Oct 5, 2011 to Mar 27, 2012", WatchStatus: "Completed", GenreIDs: []int{1, 8}},
	}

	Convey("Order sorts by field and breaks ties by name", t, func() {
		ids := func(animes []api.Anime) []int {
			out := make([]int, len(animes))
			for i, a := range animes {
				out[i] = a.ID
			}
			return out
		}

		So(ids(Order(catalog, Score)), ShouldResemble, []int{2, 1, 3})
		So(ids(Order(catalog, Members)), ShouldResemble, []int{2, 3, 1})
		So(ids(Order(catalog, Newest)), ShouldResemble, []int{3, 1, 2})
		So(ids(Order(catalog, Title)), ShouldResemble, []int{2, 1, 3})
	})

	Convey("Local filters before counting", t, func() {
		items, count := Local(catalog, Query{GenreID: 1, Page: 1, Sort: Score, Display: NotSeen})
		So(count, ShouldEqual, 2)
		So(items, ShouldHaveLength, 2)
	})

	Convey("Local keeps only the requested genre", t, func() {
		items, count := Local(catalog, Query{GenreID: 24, Page: 1, Sort: Score})
		So(count, ShouldEqual, 1)
		So(items[0].ID, ShouldEqual, 1)

		items, count = Local(catalog, Query{GenreID: 99, Page: 1, Sort: Score})
		So(count, ShouldEqual, 0)
		So(items, ShouldBeEmpty)
	})

	Convey("Paginate past the end is empty", t, func() {
		So(Paginate(catalog, 2), ShouldBeEmpty)
	})
}

func TestActions(t *testing.T) {
	anime := api.Anime{ID: 9, Name: "Mushishi", ImageURL: "http://img/9.jpg", WatchStatus: "Watching"}

	Convey("Given no token", t, func() {
		keyring.MockInit()
		s := session.Default()

		Convey("Both actions ask to log in", func() {
			So(RateAction(s, anime), ShouldResemble, modal.Login())
			So(WatchlistAction(s, anime), ShouldResemble, modal.Login())
		})
	})

	Convey("Given a token", t, func() {
		keyring.MockInit()
		s := session.Default()
		So(s.Login("token"), ShouldBeNil)

		want := &modal.Extra{ID: 9, Name: "Mushishi", Img: "http://img/9.jpg", State: "Watching"}

		Convey("Rate opens the rating dialog", func() {
			req := RateAction(s, anime)
			So(req.Title, ShouldEqual, "Update Rating")
			So(req.Body, ShouldEqual, modal.RatingAddNew)
			So(req.Extra, ShouldResemble, want)
		})

		Convey("Watchlist opens the status dialog", func() {
			req := WatchlistAction(s, anime)
			So(req.Title, ShouldEqual, "Update Watch Status")
			So(req.Body, ShouldEqual, modal.WatchlistAddNew)
			So(req.Extra, ShouldResemble, want)
		})
	})
}

func TestDetailsURL(t *testing.T) {
	Convey("DetailsURL joins the web root and the id", t, func() {
		So(DetailsURL("http://localhost:3000/", 21), ShouldEqual, "http://localhost:3000/app/details/21")
	})
}
