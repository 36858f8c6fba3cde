package core

import "errors"

// ErrHubStopped is returned when a command is submitted after Run has returned.
var ErrHubStopped = errors.New("hub stopped")
