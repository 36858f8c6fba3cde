package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeEnterRoom = "enterRoom"
	InboundTypeMessage   = "message"
	InboundTypeActivity  = "activity"

	OutboundTypeMessage  = "message"
	OutboundTypeActivity = "activity"
	OutboundTypeUserList = "userList"
	OutboundTypeRoomList = "roomList"
)

// EnterRoomData asks to join a room under a display name.
type EnterRoomData struct {
	Name string `json:"name"`
	Room string `json:"room"`
}

// MessageData is a chat message from the client. The room is resolved by the
// server.
type MessageData struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ActivityData reports that the named user is typing.
type ActivityData struct {
	Name string `json:"name"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// EventMessage is a chat line or system notice.
type EventMessage struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// EventActivity is a typing indicator.
type EventActivity struct {
	Name string `json:"name"`
}

// User is one entry of a room's user list.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Room string `json:"room"`
}

// EventUserList carries the members of one room.
type EventUserList struct {
	Users []User `json:"users"`
}

// EventRoomList carries every occupied room.
type EventRoomList struct {
	Rooms []string `json:"rooms"`
}

// RoomPresence is one room in the presence listing served over HTTP.
type RoomPresence struct {
	Name  string `json:"name"`
	Users []User `json:"users"`
}

// PresenceResponse is the body of the presence listing.
type PresenceResponse struct {
	Rooms []RoomPresence `json:"rooms"`
}
