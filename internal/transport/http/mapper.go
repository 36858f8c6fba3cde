package http

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/wirechat-relay/internal/core"
	"github.com/vovakirdan/wirechat-relay/internal/proto"
)

// inboundToCommand maps a client frame to a hub command. A nil command with a
// nil error means the frame type is not one the relay handles.
func inboundToCommand(clientID string, inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Type {
	case proto.InboundTypeEnterRoom:
		var data proto.EnterRoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", inbound.Type, err)
		}
		return &core.Command{
			Kind:     core.CommandEnterRoom,
			ClientID: clientID,
			Name:     data.Name,
			Room:     data.Room,
		}, nil
	case proto.InboundTypeMessage:
		var data proto.MessageData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", inbound.Type, err)
		}
		return &core.Command{
			Kind:     core.CommandMessage,
			ClientID: clientID,
			Name:     data.Name,
			Text:     data.Text,
		}, nil
	case proto.InboundTypeActivity:
		var data proto.ActivityData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", inbound.Type, err)
		}
		return &core.Command{
			Kind:     core.CommandActivity,
			ClientID: clientID,
			Name:     data.Name,
		}, nil
	default:
		return nil, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeMessage,
			Data: proto.EventMessage{
				Name: event.Message.Name,
				Text: event.Message.Text,
				Time: event.Message.Time,
			},
		}
	case core.EventActivity:
		return proto.Outbound{
			Type: proto.OutboundTypeActivity,
			Data: proto.EventActivity{Name: event.Name},
		}
	case core.EventUserList:
		return proto.Outbound{
			Type: proto.OutboundTypeUserList,
			Data: proto.EventUserList{Users: usersFromConnections(event.Users)},
		}
	case core.EventRoomList:
		rooms := event.Rooms
		if rooms == nil {
			rooms = []string{}
		}
		return proto.Outbound{
			Type: proto.OutboundTypeRoomList,
			Data: proto.EventRoomList{Rooms: rooms},
		}
	default:
		return proto.Outbound{Type: event.Kind.String()}
	}
}

func usersFromConnections(conns []core.Connection) []proto.User {
	users := make([]proto.User, 0, len(conns))
	for _, c := range conns {
		users = append(users, proto.User{ID: c.ID, Name: c.Name, Room: c.Room})
	}
	return users
}

// presenceFromSnapshot groups a registry snapshot by room, rooms in order of
// first appearance.
func presenceFromSnapshot(conns []core.Connection) proto.PresenceResponse {
	resp := proto.PresenceResponse{Rooms: make([]proto.RoomPresence, 0)}
	index := make(map[string]int)
	for _, c := range conns {
		if c.Room == "" {
			continue
		}
		i, ok := index[c.Room]
		if !ok {
			i = len(resp.Rooms)
			index[c.Room] = i
			resp.Rooms = append(resp.Rooms, proto.RoomPresence{Name: c.Room, Users: make([]proto.User, 0)})
		}
		resp.Rooms[i].Users = append(resp.Rooms[i].Users, proto.User{ID: c.ID, Name: c.Name, Room: c.Room})
	}
	return resp
}
