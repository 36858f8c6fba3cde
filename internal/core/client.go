package core

// DefaultClientBuffer is the number of events buffered per client before
// further deliveries to it are dropped.
const DefaultClientBuffer = 16

// Client is one live connection as seen by the core layer. The hub is the only
// writer of Events and closes it once the connection is gone.
type Client struct {
	ID     string
	Events chan *Event
}

// NewClient constructs a client with a buffered event channel.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	return &Client{
		ID:     id,
		Events: make(chan *Event, buffer),
	}
}
