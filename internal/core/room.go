package core

// Rooms are not stored. Both views below are recomputed from the registry on
// every call, so they cannot drift from it.

// MembersOf returns every connection whose room equals room, in registry order.
func (r *Registry) MembersOf(room string) []Connection {
	members := make([]Connection, 0)
	if room == "" {
		return members
	}
	for _, c := range r.entries {
		if c.Room == room {
			members = append(members, c)
		}
	}
	return members
}

// ActiveRooms returns the distinct non-empty rooms in order of first appearance.
func (r *Registry) ActiveRooms() []string {
	rooms := make([]string, 0)
	seen := make(map[string]struct{})
	for _, c := range r.entries {
		if c.Room == "" {
			continue
		}
		if _, ok := seen[c.Room]; ok {
			continue
		}
		seen[c.Room] = struct{}{}
		rooms = append(rooms, c.Room)
	}
	return rooms
}

func memberIDs(members []Connection) []string {
	ids := make([]string, 0, len(members))
	for _, c := range members {
		ids = append(ids, c.ID)
	}
	return ids
}
