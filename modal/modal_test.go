package modal

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRequest(t *testing.T) {
	Convey("Login request", t, func() {
		r := Login()
		So(r.Title, ShouldEqual, "You need to login")
		So(r.Body, ShouldEqual, RequireLogin)
		So(r.Extra, ShouldBeNil)
	})

	Convey("Body types render their wire names", t, func() {
		So(RequireLogin.String(), ShouldEqual, "REQUIRE_LOGIN")
		So(RatingAddNew.String(), ShouldEqual, "RATING_ADD_NEW")
		So(WatchlistAddNew.String(), ShouldEqual, "WATCHLIST_ADD_NEW")
		So(BodyType(42).String(), ShouldEqual, "BodyType(42)")
	})

	Convey("Extra is encoded as extraObject", t, func() {
		data, err := json.Marshal(Request{
			Title: "Update Rating",
			Body:  RatingAddNew,
			Extra: &Extra{ID: 5, Name: "Monster", Img: "m.jpg", State: "Watching"},
		})
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, `"bodyType":"RATING_ADD_NEW"`)
		So(string(data), ShouldContainSubstring, `"extraObject":{"id":5,"name":"Monster","img":"m.jpg","state":"Watching"}`)
	})
}
