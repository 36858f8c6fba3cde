package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vovakirdan/wirechat-relay/internal/proto"
)

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// render formats one outbound frame for the terminal. Frames that cannot be
// decoded are skipped.
func render(f frame) (string, bool) {
	switch f.Type {
	case proto.OutboundTypeMessage:
		var evt proto.EventMessage
		if err := json.Unmarshal(f.Data, &evt); err != nil {
			return "", false
		}
		return fmt.Sprintf("%s %s: %s", evt.Time, evt.Name, evt.Text), true
	case proto.OutboundTypeActivity:
		var evt proto.EventActivity
		if err := json.Unmarshal(f.Data, &evt); err != nil {
			return "", false
		}
		return fmt.Sprintf("%s is typing...", evt.Name), true
	case proto.OutboundTypeUserList:
		var evt proto.EventUserList
		if err := json.Unmarshal(f.Data, &evt); err != nil {
			return "", false
		}
		if len(evt.Users) == 0 {
			return "", false
		}
		names := make([]string, 0, len(evt.Users))
		for _, u := range evt.Users {
			names = append(names, u.Name)
		}
		return fmt.Sprintf("Users in %s: %s", evt.Users[0].Room, strings.Join(names, ", ")), true
	case proto.OutboundTypeRoomList:
		var evt proto.EventRoomList
		if err := json.Unmarshal(f.Data, &evt); err != nil {
			return "", false
		}
		return fmt.Sprintf("Active rooms: %s", strings.Join(evt.Rooms, ", ")), true
	default:
		return "", false
	}
}
