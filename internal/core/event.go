package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventMessage carries chat text, including system notices from the admin name.
	EventMessage EventKind = iota
	// EventActivity tells room peers someone is typing.
	EventActivity
	// EventUserList carries the current members of a room.
	EventUserList
	// EventRoomList carries every occupied room.
	EventRoomList
)

func (k EventKind) String() string {
	switch k {
	case EventMessage:
		return "message"
	case EventActivity:
		return "activity"
	case EventUserList:
		return "userList"
	case EventRoomList:
		return "roomList"
	default:
		return "unknown"
	}
}

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Message Message      // EventMessage
	Name    string       // EventActivity
	Room    string       // EventUserList
	Users   []Connection // EventUserList
	Rooms   []string     // EventRoomList
}
