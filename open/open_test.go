package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCheck(t *testing.T) {
	Convey("Only web pages are opened", t, func() {
		So(Check("http://localhost:3000/anime/5"), ShouldBeNil)
		So(Check("https://tracker.example/anime/5"), ShouldBeNil)

		So(Check("file:///etc/passwd"), ShouldNotBeNil)
		So(Check("/anime/5"), ShouldNotBeNil)
		So(Check("javascript:alert(1)"), ShouldNotBeNil)
	})

	Convey("Start refuses a bad url before launching anything", t, func() {
		So(Start("ftp://example.com/5"), ShouldNotBeNil)
	})
}
