package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/notify"
	"github.com/anitrack-cli/anitrack/session"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

type fakeBackend struct {
	profile api.Profile
	err     error
	loads   int
	updates []api.ProfileUpdate
}

func (f *fakeBackend) Profile(_ context.Context) (api.Profile, error) {
	f.loads++
	return f.profile, f.err
}

func (f *fakeBackend) UpdateProfile(_ context.Context, update api.ProfileUpdate) error {
	f.updates = append(f.updates, update)
	return f.err
}

func TestNormalizeBirthday(t *testing.T) {
	Convey("Birthdays are shown as written", t, func() {
		So(NormalizeBirthday("2020-01-15T00:00:00Z"), ShouldEqual, "2020-01-15")
		So(NormalizeBirthday("2020-01-15T23:30:00-08:00"), ShouldEqual, "2020-01-15")
		So(NormalizeBirthday("2020-01-15"), ShouldEqual, "2020-01-15")
		So(NormalizeBirthday(""), ShouldEqual, "")
		So(NormalizeBirthday(" someday "), ShouldEqual, "someday")
	})
}

func TestForm(t *testing.T) {
	Convey("Given a loaded form", t, func() {
		keyring.MockInit()
		s := session.Default()
		So(s.Login("token"), ShouldBeNil)

		backend := &fakeBackend{profile: api.Profile{Username: "kai", Gender: "Male", Birthday: "2020-01-15T00:00:00Z"}}
		recorder := &notify.Recorder{}
		form := NewForm(backend, s, recorder)

		So(form.Load(context.Background()), ShouldBeNil)
		So(form.Birthday, ShouldEqual, "2020-01-15")

		Convey("Edits stay local", func() {
			So(form.SetGender("female"), ShouldBeNil)
			So(form.SetBirthday("1999-12-31"), ShouldBeNil)

			So(form.Gender, ShouldEqual, Female)
			So(backend.updates, ShouldBeEmpty)
			So(backend.loads, ShouldEqual, 1)
		})

		Convey("Invalid edits are rejected", func() {
			So(form.SetGender("other"), ShouldNotBeNil)
			So(form.SetBirthday("31/12/1999"), ShouldNotBeNil)
			So(form.Gender, ShouldEqual, Male)
			So(form.Birthday, ShouldEqual, "2020-01-15")
		})

		Convey("Update submits and notifies success", func() {
			So(form.SetGender(Female), ShouldBeNil)
			So(form.Update(context.Background()), ShouldBeNil)

			So(backend.updates, ShouldResemble, []api.ProfileUpdate{{Gender: Female, Birthday: "2020-01-15"}})
			So(recorder.Notifications, ShouldResemble, []notify.Notification{{Message: MsgUpdated, Status: notify.Success}})
		})

		Convey("An expired token logs out and notifies twice", func() {
			backend.err = &api.UnauthorizedError{Message: "Token expired"}

			So(form.Update(context.Background()), ShouldNotBeNil)
			So(s.LoggedIn(), ShouldBeFalse)
			So(recorder.Notifications, ShouldResemble, []notify.Notification{
				{Message: MsgTokenExpired, Status: notify.Failure},
				{Message: MsgUpdateFailed, Status: notify.Failure},
			})
		})

		Convey("Another 401 keeps the token", func() {
			backend.err = &api.UnauthorizedError{Message: "Token is invalid"}

			So(form.Update(context.Background()), ShouldNotBeNil)
			So(s.LoggedIn(), ShouldBeTrue)
			So(recorder.Notifications, ShouldResemble, []notify.Notification{
				{Message: MsgUpdateFailed, Status: notify.Failure},
			})
		})

		Convey("Other errors notify failure", func() {
			backend.err = errors.New("offline")

			So(form.Update(context.Background()), ShouldNotBeNil)
			So(recorder.Notifications, ShouldHaveLength, 1)
			So(recorder.Notifications[0].Status, ShouldEqual, notify.Failure)
		})
	})

	Convey("Loading with an expired token logs out", t, func() {
		keyring.MockInit()
		s := session.Default()
		So(s.Login("token"), ShouldBeNil)

		recorder := &notify.Recorder{}
		form := NewForm(&fakeBackend{err: &api.UnauthorizedError{Message: "Token expired"}}, s, recorder)

		So(form.Load(context.Background()), ShouldNotBeNil)
		So(s.LoggedIn(), ShouldBeFalse)
		So(recorder.Notifications, ShouldResemble, []notify.Notification{{Message: MsgTokenExpired, Status: notify.Failure}})
	})
}
