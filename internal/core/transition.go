package core

import (
	"fmt"
	"time"
)

// Scope selects who receives a delivery.
type Scope int

const (
	// ScopeClient targets the listed connections only.
	ScopeClient Scope = iota
	// ScopeMembers targets a room snapshot taken right after the mutation.
	ScopeMembers
	// ScopeAll targets every connected client, joined or not.
	ScopeAll
)

// Target names the recipients of a delivery. Recipients is unused for ScopeAll.
type Target struct {
	Scope      Scope
	Recipients []string
}

// Delivery is one outbound event and who should get it.
type Delivery struct {
	Target Target
	Event  *Event
}

// Transition describes the broadcasts a state change requires, in order.
type Transition struct {
	Deliveries []Delivery
}

// Empty reports whether the transition produced no broadcasts.
func (t Transition) Empty() bool {
	return len(t.Deliveries) == 0
}

func (t *Transition) add(target Target, ev *Event) {
	t.Deliveries = append(t.Deliveries, Delivery{Target: target, Event: ev})
}

// Router holds the pure state transitions for connection events. It mutates
// only the registry passed to it and performs no I/O.
type Router struct {
	AdminName  string
	TimeFormat string
	Now        Clock
}

// NewRouter returns a router with the default admin name, time layout and clock.
func NewRouter() Router {
	return Router{
		AdminName:  DefaultAdminName,
		TimeFormat: DefaultTimeFormat,
		Now:        time.Now,
	}
}

func (rt Router) message(name, text string) *Event {
	now := time.Now
	if rt.Now != nil {
		now = rt.Now
	}
	layout := rt.TimeFormat
	if layout == "" {
		layout = DefaultTimeFormat
	}
	return &Event{Kind: EventMessage, Message: buildMessage(name, text, now(), layout)}
}

func (rt Router) notice(text string) *Event {
	admin := rt.AdminName
	if admin == "" {
		admin = DefaultAdminName
	}
	return rt.message(admin, text)
}

// Connect greets a new connection. The registry is not touched: the
// connection stays unjoined until it enters a room.
func (rt Router) Connect(_ *Registry, id string) Transition {
	var t Transition
	t.add(only(id), rt.notice("Welcome to chat app!"))
	return t
}

// EnterRoom moves id into room, leaving its previous room first. Re-entering
// the same room runs the full leave and join sequence.
func (rt Router) EnterRoom(reg *Registry, id, name, room string) Transition {
	var t Transition
	if room == "" {
		return t
	}

	prev, joined := reg.Lookup(id)
	conn := reg.Upsert(id, name, room)

	if joined && prev.Room != "" {
		others := except(memberIDs(reg.MembersOf(prev.Room)), id)
		t.add(members(others), rt.notice(fmt.Sprintf("%s has left the room", name)))
		t.add(members(others), userList(prev.Room, reg.MembersOf(prev.Room)))
	}

	inRoom := reg.MembersOf(conn.Room)
	t.add(only(id), rt.notice(fmt.Sprintf("You have joined the %s chat room", conn.Room)))
	t.add(members(except(memberIDs(inRoom), id)),
		rt.notice(fmt.Sprintf("User: %s has joined the %s chat room", conn.Name, conn.Room)))
	t.add(members(memberIDs(inRoom)), userList(conn.Room, inRoom))
	t.add(Target{Scope: ScopeAll}, roomList(reg.ActiveRooms()))
	return t
}

// Message relays text to every member of the sender's room, sender included.
// Connections without a room produce nothing.
func (rt Router) Message(reg *Registry, id, name, text string) Transition {
	var t Transition
	conn, ok := reg.Lookup(id)
	if !ok || conn.Room == "" {
		return t
	}
	t.add(members(memberIDs(reg.MembersOf(conn.Room))), rt.message(name, text))
	return t
}

// Activity forwards a typing indicator to the sender's room peers.
func (rt Router) Activity(reg *Registry, id, name string) Transition {
	var t Transition
	conn, ok := reg.Lookup(id)
	if !ok || conn.Room == "" {
		return t
	}
	t.add(members(except(memberIDs(reg.MembersOf(conn.Room)), id)), &Event{Kind: EventActivity, Name: name})
	return t
}

// Disconnect removes id. Only a connection that had joined a room causes
// broadcasts.
func (rt Router) Disconnect(reg *Registry, id string) Transition {
	var t Transition
	prev, ok := reg.Remove(id)
	if !ok || prev.Room == "" {
		return t
	}
	remaining := reg.MembersOf(prev.Room)
	t.add(members(memberIDs(remaining)), rt.notice(fmt.Sprintf("%s has left the room", prev.Name)))
	t.add(members(memberIDs(remaining)), userList(prev.Room, remaining))
	t.add(Target{Scope: ScopeAll}, roomList(reg.ActiveRooms()))
	return t
}

func only(id string) Target {
	return Target{Scope: ScopeClient, Recipients: []string{id}}
}

func members(ids []string) Target {
	return Target{Scope: ScopeMembers, Recipients: ids}
}

func except(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func userList(room string, users []Connection) *Event {
	return &Event{Kind: EventUserList, Room: room, Users: users}
}

func roomList(rooms []string) *Event {
	return &Event{Kind: EventRoomList, Rooms: rooms}
}
