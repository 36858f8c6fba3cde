package core

// Connection is the presence record of one joined connection.
type Connection struct {
	ID   string
	Name string
	Room string
}

// Registry maps connection ids to their current name and room. Entries keep
// insertion order; re-inserting an id moves it to the end.
//
// A Registry is not safe for concurrent use. The Hub owns one and touches it
// only from its Run goroutine.
type Registry struct {
	entries []Connection
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Upsert inserts or replaces the record for id and returns it.
func (r *Registry) Upsert(id, name, room string) Connection {
	r.drop(id)
	conn := Connection{ID: id, Name: name, Room: room}
	r.entries = append(r.entries, conn)
	return conn
}

// Remove deletes the record for id and returns the prior value, if any.
func (r *Registry) Remove(id string) (Connection, bool) {
	prev, ok := r.Lookup(id)
	if ok {
		r.drop(id)
	}
	return prev, ok
}

// Lookup fetches the record for id.
func (r *Registry) Lookup(id string) (Connection, bool) {
	for _, c := range r.entries {
		if c.ID == id {
			return c, true
		}
	}
	return Connection{}, false
}

// Len reports the number of joined connections.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Snapshot returns a copy of every record in registry order.
func (r *Registry) Snapshot() []Connection {
	out := make([]Connection, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) drop(id string) {
	kept := r.entries[:0]
	for _, c := range r.entries {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	// clear the tail so removed records are not pinned by the backing array
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = Connection{}
	}
	r.entries = kept
}
