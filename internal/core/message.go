package core

import "time"

const (
	// DefaultAdminName is the sender name used for system notices.
	DefaultAdminName = "Admin"
	// DefaultTimeFormat renders hour:minute:second like the default locale does.
	DefaultTimeFormat = "3:04:05 PM"
)

// Message is an ephemeral chat line. It is built at send time and never stored.
type Message struct {
	Name string
	Text string
	Time string
}

// Clock returns the current time. Tests replace it to get stable timestamps.
type Clock func() time.Time

func buildMessage(name, text string, now time.Time, layout string) Message {
	return Message{
		Name: name,
		Text: text,
		Time: now.Format(layout),
	}
}
