package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/anitrack-cli/anitrack/constant"
	"github.com/anitrack-cli/anitrack/filesystem"
	"github.com/anitrack-cli/anitrack/network"
	"github.com/anitrack-cli/anitrack/session"
	"github.com/h2non/gock"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

const base = "http://backend.test"

func init() {
	filesystem.SetMemMapFs()
}

func newTestClient(token string, options ...Option) (*Client, *http.Client) {
	keyring.MockInit()
	s := session.Default()
	if token != "" {
		So(s.Login(token), ShouldBeNil)
	}

	httpClient := network.New(0)
	gock.InterceptClient(httpClient)

	client, err := New(base, s, append([]Option{WithHTTPClient(httpClient)}, options...)...)
	So(err, ShouldBeNil)
	return client, httpClient
}

func TestNew(t *testing.T) {
	Convey("New rejects relative URLs", t, func() {
		_, err := New("localhost", nil)
		So(err, ShouldNotBeNil)
	})

	Convey("New trims the trailing slash", t, func() {
		c, err := New("http://localhost:8080/", nil)
		So(err, ShouldBeNil)
		So(c.base, ShouldEqual, "http://localhost:8080")
	})
}

func TestHeaders(t *testing.T) {
	defer gock.Off()

	Convey("Given a logged in client", t, func() {
		client, _ := newTestClient("secret")

		gock.New(base).
			Get(constant.RouteProfile).
			MatchHeader("Authorization", "^secret$").
			MatchHeader("X-Request-Id", "^[0-9a-f-]{36}$").
			MatchHeader("User-Agent", constant.App).
			Reply(200).
			JSON(map[string]any{"Username": "kai", "Gender": nil, "Birthday": "2001-02-03T00:00:00.000Z"})

		Convey("The raw token and a request id are sent", func() {
			profile, err := client.Profile(context.Background())
			So(err, ShouldBeNil)
			So(profile.Username, ShouldEqual, "kai")
			So(profile.Gender, ShouldBeEmpty)
			So(profile.Birthday, ShouldEqual, "2001-02-03T00:00:00.000Z")
			So(gock.IsDone(), ShouldBeTrue)
		})
	})
}

func TestErrors(t *testing.T) {
	defer gock.Off()

	Convey("Given a client", t, func() {
		client, _ := newTestClient("secret")
		ctx := context.Background()

		Convey("An expired token is recognized", func() {
			gock.New(base).Get(constant.RouteProfile).Reply(401).BodyString("Token expired")

			_, err := client.Profile(ctx)
			So(IsTokenExpired(err), ShouldBeTrue)
			So(IsTokenRejected(err), ShouldBeTrue)
		})

		Convey("An invalid token is rejected but not expired", func() {
			gock.New(base).Get(constant.RouteProfile).Reply(401).BodyString(`"Token is invalid"`)

			_, err := client.Profile(ctx)
			So(IsTokenExpired(err), ShouldBeFalse)
			So(IsTokenRejected(err), ShouldBeTrue)
		})

		Convey("Other 401s are neither", func() {
			gock.New(base).Get(constant.RouteProfile).Reply(401).JSON(map[string]string{"message": "nope"})

			_, err := client.Profile(ctx)
			u, ok := AsUnauthorized(err)
			So(ok, ShouldBeTrue)
			So(u.Message, ShouldEqual, "nope")
			So(IsTokenRejected(err), ShouldBeFalse)
		})

		Convey("A server error becomes a StatusError", func() {
			gock.New(base).Get(constant.RouteProfile).Reply(500).BodyString("boom")

			_, err := client.Profile(ctx)
			var status *StatusError
			So(errors.As(err, &status), ShouldBeTrue)
			So(status.Code, ShouldEqual, 500)
			So(status.Body, ShouldEqual, "boom")
		})

		Convey("A malformed body is a decode error", func() {
			gock.New(base).Get(constant.RouteProfile).Reply(200).BodyString("{")

			_, err := client.Profile(ctx)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "decode")
		})
	})
}

func TestGenres(t *testing.T) {
	defer gock.Off()

	Convey("Given an anonymous client", t, func() {
		client, _ := newTestClient("")
		ctx := context.Background()

		Convey("GenreName reads the first row", func() {
			gock.New(base).Get(constant.RouteGenreName + "/7").
				Reply(200).JSON([]map[string]string{{"Genre_name": "Mystery"}})

			name, err := client.GenreName(ctx, 7)
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "Mystery")
		})

		Convey("An empty row set is ErrEmptyResult", func() {
			gock.New(base).Get(constant.RouteGenreName + "/8").Reply(200).BodyString("[]")

			_, err := client.GenreName(ctx, 8)
			So(errors.Is(err, ErrEmptyResult), ShouldBeTrue)
		})

		Convey("GenreCount accepts a count encoded as a string", func() {
			gock.New(base).Get(constant.RouteGenreCount + "/7").
				Reply(200).BodyString(`[{"cnt":"130"}]`)

			count, err := client.GenreCount(ctx, 7)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 130)
		})

		Convey("No Authorization header is sent without a token", func() {
			gock.New(base).Get(constant.RouteGenreCount + "/9").
				MatchHeader("Authorization", ".+").
				Reply(200).BodyString(`[{"cnt":1}]`)
			gock.New(base).Get(constant.RouteGenreCount + "/9").
				Reply(200).BodyString(`[{"cnt":2}]`)

			count, err := client.GenreCount(ctx, 9)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 2)
		})

		Convey("AnimesByGenre builds the range path and decodes both id spellings", func() {
			gock.New(base).Get(constant.RouteAnimesByGenre + "/7/Score/49/96").
				Reply(200).
				BodyString(`[
					{"anime_id": 1, "Name": "A", "Score": 8.5, "Watch_Status": "Watching"},
					{"Anime_id": "2", "Name": "B", "Score": "7", "Watch_Status": null}
				]`)

			animes, err := client.AnimesByGenre(ctx, 7, "Score", 49, 96)
			So(err, ShouldBeNil)
			So(animes, ShouldHaveLength, 2)
			So(animes[0].ID, ShouldEqual, 1)
			So(animes[0].ScoreString(), ShouldEqual, "8.5")
			So(animes[0].WatchStatus, ShouldEqual, "Watching")
			So(animes[1].ID, ShouldEqual, 2)
			So(animes[1].Score, ShouldEqual, 7.0)
			So(animes[1].WatchStatus, ShouldBeEmpty)
		})
	})
}

func TestGenreCache(t *testing.T) {
	defer gock.Off()

	Convey("Given a client with caching enabled", t, func() {
		client, _ := newTestClient("", WithCache(true))
		ctx := context.Background()

		gock.New(base).Get(constant.RouteGenreName + "/42").
			Times(1).
			Reply(200).JSON([]map[string]string{{"Genre_name": "Space"}})

		Convey("The name is fetched once", func() {
			first, err := client.GenreName(ctx, 42)
			So(err, ShouldBeNil)
			second, err := client.GenreName(ctx, 42)
			So(err, ShouldBeNil)

			So(first, ShouldEqual, "Space")
			So(second, ShouldEqual, "Space")
			So(gock.IsDone(), ShouldBeTrue)
		})
	})
}

func TestProfileUpdate(t *testing.T) {
	defer gock.Off()

	Convey("UpdateProfile posts gender and birthday", t, func() {
		client, _ := newTestClient("secret")

		gock.New(base).Post(constant.RouteUpdateProfile).
			MatchType("json").
			JSON(map[string]string{"gender": "Female", "birthday": "1999-12-31"}).
			Reply(200).BodyString("OK")

		err := client.UpdateProfile(context.Background(), ProfileUpdate{Gender: "Female", Birthday: "1999-12-31"})
		So(err, ShouldBeNil)
		So(gock.IsDone(), ShouldBeTrue)
	})
}

func TestCatalog(t *testing.T) {
	defer gock.Off()

	Convey("Given a client with caching enabled", t, func() {
		client, _ := newTestClient("catalog-token", WithCache(true))
		So(client.ForgetCatalog(), ShouldBeNil)

		gock.New(base).Get(constant.RouteAnimes).
			Times(1).
			Reply(200).BodyString(`[{"anime_id": 3, "Name": "C", "Members": "1200", "Genre_id": "4", "Genres": "4, 7"}]`)

		Convey("The catalog is fetched once and then served from disk", func() {
			first, err := client.Catalog(context.Background())
			So(err, ShouldBeNil)
			second, err := client.Catalog(context.Background())
			So(err, ShouldBeNil)

			So(first, ShouldResemble, second)
			So(first[0].Members, ShouldEqual, 1200)
			So(first[0].GenreIDs, ShouldResemble, []int{4, 7})
			So(gock.IsDone(), ShouldBeTrue)
		})
	})
}
