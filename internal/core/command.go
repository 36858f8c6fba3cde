package core

// CommandKind describes what happened on a connection.
type CommandKind int

const (
	// CommandConnect registers a freshly accepted connection.
	CommandConnect CommandKind = iota
	// CommandEnterRoom moves the connection into a room, leaving any previous one.
	CommandEnterRoom
	// CommandMessage sends chat text to the connection's current room.
	CommandMessage
	// CommandActivity tells room peers that the sender is typing.
	CommandActivity
	// CommandDisconnect removes the connection for good.
	CommandDisconnect
	// commandSnapshot is an internal read of the registry.
	commandSnapshot
)

func (k CommandKind) String() string {
	switch k {
	case CommandConnect:
		return "connect"
	case CommandEnterRoom:
		return "enterRoom"
	case CommandMessage:
		return "message"
	case CommandActivity:
		return "activity"
	case CommandDisconnect:
		return "disconnect"
	case commandSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Command is an inbound event for a single connection. Only the fields
// relevant to Kind are read.
type Command struct {
	Kind     CommandKind
	ClientID string
	Name     string
	Room     string
	Text     string

	client *Client
	reply  chan []Connection
}
