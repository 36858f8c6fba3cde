package core

// dispatch hands every delivery of t to its recipients. Sends never block: a
// client whose buffer is full loses that one event and the rest still get it.
func (h *Hub) dispatch(t Transition) {
	for _, d := range t.Deliveries {
		switch d.Target.Scope {
		case ScopeAll:
			for _, c := range h.clients {
				h.deliver(c, d.Event)
			}
		default:
			for _, id := range d.Target.Recipients {
				c, ok := h.clients[id]
				if !ok {
					continue
				}
				h.deliver(c, d.Event)
			}
		}
	}
}

func (h *Hub) deliver(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		h.log.Debug().Str("client_id", c.ID).Stringer("event", ev.Kind).Msg("client buffer full, event dropped")
	}
}
