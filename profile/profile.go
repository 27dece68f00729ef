// Package profile implements the profile settings form.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anitrack-cli/anitrack/api"
	"github.com/anitrack-cli/anitrack/log"
	"github.com/anitrack-cli/anitrack/notify"
	"github.com/anitrack-cli/anitrack/session"
)

// DateLayout is the display and submit format of the birthday.
const DateLayout = "2006-01-02"

// Notification texts.
const (
	MsgUpdated      = "Profile updated"
	MsgUpdateFailed = "Error updating profile"
	MsgTokenExpired = "Token expired. Logging out..."
)

// Gender values accepted by the backend.
const (
	Male   = "Male"
	Female = "Female"
)

// Genders lists the selectable genders.
var Genders = []string{Male, Female}

// Fields of the sections that are shown but not wired to anything.
var (
	PasswordFields = []string{"Old Password", "New Password", "Check Password"}
	DeleteFields   = []string{"Confirm Password"}
)

// NormalizeBirthday turns a stored timestamp into YYYY-MM-DD using the date as written.
// Values that cannot be parsed are returned trimmed but otherwise untouched.
func NormalizeBirthday(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	// "2020-01-15T00:00:00Z" and friends: the calendar date is the prefix.
	if len(raw) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, raw[:len(DateLayout)]); err == nil {
			return t.Format(DateLayout)
		}
	}

	return raw
}

// ParseGender resolves a gender, ignoring case.
func ParseGender(value string) (string, error) {
	for _, g := range Genders {
		if strings.EqualFold(g, strings.TrimSpace(value)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown gender %q, expected %s", value, strings.Join(Genders, " or "))
}

// ValidateBirthday checks the YYYY-MM-DD format.
func ValidateBirthday(value string) error {
	if _, err := time.Parse(DateLayout, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("birthday must be YYYY-MM-DD: %w", err)
	}
	return nil
}

// Backend is the part of the API the form needs.
type Backend interface {
	Profile(ctx context.Context) (api.Profile, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) error
}

// Form is the editable profile. Edits stay local until Update.
type Form struct {
	backend Backend
	session *session.Session
	sink    notify.Sink

	Username string
	Gender   string
	Birthday string
}

// NewForm creates an empty form.
func NewForm(backend Backend, s *session.Session, sink notify.Sink) *Form {
	return &Form{
		backend: backend,
		session: s,
		sink:    sink,
	}
}

// Load fetches the profile into the form.
func (f *Form) Load(ctx context.Context) error {
	p, err := f.Fetch(ctx)
	if err != nil {
		return err
	}

	f.Apply(p)
	return nil
}

// Fetch requests the profile without touching the form fields,
// so it may run off the goroutine that owns the form.
func (f *Form) Fetch(ctx context.Context) (api.Profile, error) {
	p, err := f.backend.Profile(ctx)
	if err != nil {
		f.unauthorized(err)
		return api.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// Apply copies a fetched profile into the form.
func (f *Form) Apply(p api.Profile) {
	f.Username = p.Username
	f.Gender = p.Gender
	f.Birthday = NormalizeBirthday(p.Birthday)
}

// Snapshot returns the values Update would submit.
func (f *Form) Snapshot() api.ProfileUpdate {
	return api.ProfileUpdate{
		Gender:   f.Gender,
		Birthday: f.Birthday,
	}
}

// SetGender edits the gender locally.
func (f *Form) SetGender(value string) error {
	g, err := ParseGender(value)
	if err != nil {
		return err
	}
	f.Gender = g
	return nil
}

// SetBirthday edits the birthday locally.
func (f *Form) SetBirthday(value string) error {
	value = strings.TrimSpace(value)
	if err := ValidateBirthday(value); err != nil {
		return err
	}
	f.Birthday = value
	return nil
}

// Update submits gender and birthday and reports the outcome through the sink.
func (f *Form) Update(ctx context.Context) error {
	return f.Submit(ctx, f.Snapshot())
}

// Submit sends a snapshot taken with Snapshot. It does not read the form fields.
func (f *Form) Submit(ctx context.Context, update api.ProfileUpdate) error {
	err := f.backend.UpdateProfile(ctx, update)

	if err != nil {
		f.unauthorized(err)
		f.notify(notify.Fail(MsgUpdateFailed))
		return fmt.Errorf("update profile: %w", err)
	}

	f.notify(notify.Ok(MsgUpdated))
	return nil
}

// unauthorized handles a 401: an expired token logs out, any other reason is only logged.
func (f *Form) unauthorized(err error) {
	u, ok := api.AsUnauthorized(err)
	if !ok {
		log.Error(err)
		return
	}

	if !u.Expired() {
		log.Warnf("profile request unauthorized: %s", u.Message)
		return
	}

	if f.session != nil {
		if err := f.session.Logout(); err != nil {
			log.Errorf("logout: %s", err)
		}
	}

	f.notify(notify.Fail(MsgTokenExpired))
}

func (f *Form) notify(n notify.Notification) {
	if f.sink != nil {
		f.sink.Notify(n)
	}
}
