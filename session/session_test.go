package session

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestSession(t *testing.T) {
	Convey("Given a session over a mocked keyring", t, func() {
		keyring.MockInit()
		s := Default()

		Convey("It starts logged out", func() {
			So(s.LoggedIn(), ShouldBeFalse)
			So(s.Token().IsAbsent(), ShouldBeTrue)
		})

		Convey("Login stores the trimmed token", func() {
			So(s.Login("  abc.def  "), ShouldBeNil)
			So(s.Token().MustGet(), ShouldEqual, "abc.def")

			stored, err := Keyring{}.Get()
			So(err, ShouldBeNil)
			So(stored, ShouldEqual, "abc.def")

			Convey("And a fresh session sees it", func() {
				So(Default().Token().OrEmpty(), ShouldEqual, "abc.def")
			})

			Convey("And Logout removes it", func() {
				So(s.Logout(), ShouldBeNil)
				So(s.LoggedIn(), ShouldBeFalse)

				_, err := Keyring{}.Get()
				So(err, ShouldEqual, keyring.ErrNotFound)
			})
		})

		Convey("Login rejects an empty token", func() {
			So(s.Login("   "), ShouldNotBeNil)
			So(s.LoggedIn(), ShouldBeFalse)
		})

		Convey("Logout without a token is not an error", func() {
			So(s.Logout(), ShouldBeNil)
		})
	})
}
