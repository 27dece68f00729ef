// Package notify carries short user-facing notifications from components to the front end.
package notify

// Status of a notification.
type Status int

const (
	Failure Status = 0
	Success Status = 1
)

// Notification is a toast-style message.
type Notification struct {
	Message string
	Status  Status
}

// Fail builds a failure notification.
func Fail(message string) Notification {
	return Notification{Message: message, Status: Failure}
}

// Ok builds a success notification.
func Ok(message string) Notification {
	return Notification{Message: message, Status: Success}
}

// Sink receives notifications.
type Sink interface {
	Notify(Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notification)

// Notify calls f.
func (f SinkFunc) Notify(n Notification) {
	f(n)
}

// Recorder collects notifications in order.
type Recorder struct {
	Notifications []Notification
}

// Notify appends n.
func (r *Recorder) Notify(n Notification) {
	r.Notifications = append(r.Notifications, n)
}
