package history

import (
	"testing"
	"time"

	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given saving is enabled", t, func() {
		viper.Set(key.HistorySave, true)

		older := Visit{GenreID: 1, Name: "Action", Page: 2, Sort: "Score", VisitedAt: time.Now().Add(-time.Hour)}
		newer := Visit{GenreID: 7, Name: "Mystery", Page: 1, Sort: "Title"}

		Convey("When saving two visits", func() {
			So(Save(older), ShouldBeNil)
			So(Save(newer), ShouldBeNil)

			Convey("Then the newest comes first", func() {
				visits, err := Recent()
				So(err, ShouldBeNil)
				So(len(visits), ShouldBeGreaterThanOrEqualTo, 2)
				So(visits[0].GenreID, ShouldEqual, 7)
				So(Last().MustGet().Name, ShouldEqual, "Mystery")
			})

			Convey("And revisiting a genre replaces its entry", func() {
				older.Page = 5
				older.VisitedAt = time.Now().Add(time.Minute)
				So(Save(older), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved["1"].Page, ShouldEqual, 5)
				So(Last().MustGet().GenreID, ShouldEqual, 1)
			})

			Convey("And removing forgets it", func() {
				So(Remove(7), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldNotContainKey, "7")
			})
		})
	})

	Convey("Given saving is disabled", t, func() {
		viper.Set(key.HistorySave, false)
		defer viper.Set(key.HistorySave, true)

		So(Save(Visit{GenreID: 99, Name: "Ignored"}), ShouldBeNil)

		saved, err := Get()
		So(err, ShouldBeNil)
		So(saved, ShouldNotContainKey, "99")
	})
}
