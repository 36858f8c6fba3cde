package core

import (
	"reflect"
	"testing"
)

func testRouter() Router {
	return Router{AdminName: "Admin", TimeFormat: DefaultTimeFormat, Now: fixedClock}
}

type step struct {
	scope Scope
	to    []string
	kind  EventKind
	text  string
}

func flatten(tr Transition) []step {
	steps := make([]step, 0, len(tr.Deliveries))
	for _, d := range tr.Deliveries {
		s := step{scope: d.Target.Scope, to: d.Target.Recipients, kind: d.Event.Kind}
		if d.Event.Kind == EventMessage {
			s.text = d.Event.Message.Text
		}
		steps = append(steps, s)
	}
	return steps
}

func TestEnterRoomFromUnjoined(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()
	reg.Upsert("b", "bob", "lobby")

	tr := rt.EnterRoom(reg, "a", "alice", "lobby")

	want := []step{
		{scope: ScopeClient, to: []string{"a"}, kind: EventMessage, text: "You have joined the lobby chat room"},
		{scope: ScopeMembers, to: []string{"b"}, kind: EventMessage, text: "User: alice has joined the lobby chat room"},
		{scope: ScopeMembers, to: []string{"b", "a"}, kind: EventUserList},
		{scope: ScopeAll, kind: EventRoomList},
	}
	if got := flatten(tr); !reflect.DeepEqual(got, want) {
		t.Fatalf("steps = %+v\nwant %+v", got, want)
	}

	users := tr.Deliveries[2].Event.Users
	if got := userNames(users); !reflect.DeepEqual(got, []string{"bob", "alice"}) {
		t.Fatalf("user list = %v", got)
	}
	if rooms := tr.Deliveries[3].Event.Rooms; !reflect.DeepEqual(rooms, []string{"lobby"}) {
		t.Fatalf("room list = %v", rooms)
	}
	if msg := tr.Deliveries[0].Event.Message; msg.Name != "Admin" || msg.Time != "2:05:09 PM" {
		t.Fatalf("unexpected notice: %+v", msg)
	}
}

func TestEnterRoomSwitchLeavesPreviousRoom(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()
	rt.EnterRoom(reg, "a", "alice", "lobby")
	rt.EnterRoom(reg, "b", "bob", "lobby")

	tr := rt.EnterRoom(reg, "a", "alice", "den")

	want := []step{
		{scope: ScopeMembers, to: []string{"b"}, kind: EventMessage, text: "alice has left the room"},
		{scope: ScopeMembers, to: []string{"b"}, kind: EventUserList},
		{scope: ScopeClient, to: []string{"a"}, kind: EventMessage, text: "You have joined the den chat room"},
		{scope: ScopeMembers, to: []string{}, kind: EventMessage, text: "User: alice has joined the den chat room"},
		{scope: ScopeMembers, to: []string{"a"}, kind: EventUserList},
		{scope: ScopeAll, kind: EventRoomList},
	}
	if got := flatten(tr); !reflect.DeepEqual(got, want) {
		t.Fatalf("steps = %+v\nwant %+v", got, want)
	}
	if got := userNames(tr.Deliveries[1].Event.Users); !reflect.DeepEqual(got, []string{"bob"}) {
		t.Fatalf("lobby list = %v", got)
	}
	if rooms := tr.Deliveries[5].Event.Rooms; !reflect.DeepEqual(rooms, []string{"lobby", "den"}) {
		t.Fatalf("room list = %v", rooms)
	}
}

func TestEnterRoomSoleMemberSwitchDropsRoom(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()
	rt.EnterRoom(reg, "a", "alice", "lobby")

	tr := rt.EnterRoom(reg, "a", "alice", "den")

	last := tr.Deliveries[len(tr.Deliveries)-1].Event
	if !reflect.DeepEqual(last.Rooms, []string{"den"}) {
		t.Fatalf("room list = %v", last.Rooms)
	}
	if got := reg.MembersOf("lobby"); len(got) != 0 {
		t.Fatalf("lobby still has members: %v", got)
	}
}

func TestEnterSameRoomTwice(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()
	rt.EnterRoom(reg, "a", "alice", "lobby")
	before := reg.Snapshot()

	tr := rt.EnterRoom(reg, "a", "alice", "lobby")

	if !reflect.DeepEqual(reg.Snapshot(), before) {
		t.Fatalf("state changed: %+v -> %+v", before, reg.Snapshot())
	}
	steps := flatten(tr)
	if len(steps) != 6 {
		t.Fatalf("expected full leave and join sequence, got %+v", steps)
	}
	if steps[0].text != "alice has left the room" || len(steps[0].to) != 0 {
		t.Fatalf("unexpected leave notice: %+v", steps[0])
	}
}

func TestEnterRoomEmptyRoomIgnored(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()

	if tr := rt.EnterRoom(reg, "a", "alice", ""); !tr.Empty() {
		t.Fatalf("expected no broadcasts, got %+v", flatten(tr))
	}
	if reg.Len() != 0 {
		t.Fatalf("registry mutated")
	}
}

func TestMessageAndActivity(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()
	rt.EnterRoom(reg, "a", "alice", "lobby")
	rt.EnterRoom(reg, "b", "bob", "lobby")
	rt.EnterRoom(reg, "c", "carol", "den")

	tr := rt.Message(reg, "a", "alice", "hi")
	if len(tr.Deliveries) != 1 {
		t.Fatalf("expected one delivery, got %d", len(tr.Deliveries))
	}
	d := tr.Deliveries[0]
	if !reflect.DeepEqual(d.Target.Recipients, []string{"a", "b"}) {
		t.Fatalf("message recipients = %v", d.Target.Recipients)
	}
	if d.Event.Message != (Message{Name: "alice", Text: "hi", Time: "2:05:09 PM"}) {
		t.Fatalf("unexpected message: %+v", d.Event.Message)
	}

	tr = rt.Activity(reg, "a", "alice")
	if len(tr.Deliveries) != 1 || !reflect.DeepEqual(tr.Deliveries[0].Target.Recipients, []string{"b"}) {
		t.Fatalf("activity deliveries = %+v", tr.Deliveries)
	}
	if tr.Deliveries[0].Event.Kind != EventActivity || tr.Deliveries[0].Event.Name != "alice" {
		t.Fatalf("unexpected activity event: %+v", tr.Deliveries[0].Event)
	}
}

func TestIntentsBeforeJoinProduceNothing(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()

	if tr := rt.Message(reg, "a", "alice", "hi"); !tr.Empty() {
		t.Fatalf("message produced %+v", flatten(tr))
	}
	if tr := rt.Activity(reg, "a", "alice"); !tr.Empty() {
		t.Fatalf("activity produced %+v", flatten(tr))
	}
	if tr := rt.Disconnect(reg, "a"); !tr.Empty() {
		t.Fatalf("disconnect produced %+v", flatten(tr))
	}
}

func TestDisconnect(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()
	rt.EnterRoom(reg, "a", "alice", "lobby")
	rt.EnterRoom(reg, "b", "bob", "lobby")

	tr := rt.Disconnect(reg, "b")
	want := []step{
		{scope: ScopeMembers, to: []string{"a"}, kind: EventMessage, text: "bob has left the room"},
		{scope: ScopeMembers, to: []string{"a"}, kind: EventUserList},
		{scope: ScopeAll, kind: EventRoomList},
	}
	if got := flatten(tr); !reflect.DeepEqual(got, want) {
		t.Fatalf("steps = %+v\nwant %+v", got, want)
	}
	if rooms := tr.Deliveries[2].Event.Rooms; !reflect.DeepEqual(rooms, []string{"lobby"}) {
		t.Fatalf("room list = %v", rooms)
	}

	tr = rt.Disconnect(reg, "a")
	if rooms := tr.Deliveries[2].Event.Rooms; len(rooms) != 0 {
		t.Fatalf("expected no rooms, got %v", rooms)
	}
}

func TestConnectWelcomesOnlyNewClient(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()

	tr := rt.Connect(reg, "a")
	want := []step{{scope: ScopeClient, to: []string{"a"}, kind: EventMessage, text: "Welcome to chat app!"}}
	if got := flatten(tr); !reflect.DeepEqual(got, want) {
		t.Fatalf("steps = %+v", got)
	}
	if reg.Len() != 0 {
		t.Fatalf("connect must not join a room")
	}
}

func TestActiveRoomsTrackOccupancy(t *testing.T) {
	rt := testRouter()
	reg := NewRegistry()
	rooms := []string{"lobby", "den", "lobby", "attic", "den"}
	for i, room := range rooms {
		rt.EnterRoom(reg, string(rune('a'+i)), "user", room)
	}
	rt.EnterRoom(reg, "d", "user", "den")
	rt.Disconnect(reg, "b")
	rt.Disconnect(reg, "e")

	// attic emptied when d switched to den; den now holds only d.
	if got := reg.ActiveRooms(); !reflect.DeepEqual(got, []string{"lobby", "den"}) {
		t.Fatalf("active rooms = %v", got)
	}
	for _, room := range reg.ActiveRooms() {
		if len(reg.MembersOf(room)) == 0 {
			t.Fatalf("active room %q has no members", room)
		}
	}
	for _, c := range reg.MembersOf("lobby") {
		if c.ID != "a" && c.ID != "c" {
			t.Fatalf("unexpected lobby member %+v", c)
		}
	}
}
