package core

import (
	"context"

	"github.com/rs/zerolog"
)

const defaultInboxSize = 256

// HubConfig tunes a Hub. Zero values fall back to defaults.
type HubConfig struct {
	AdminName  string
	TimeFormat string
	Clock      Clock
	InboxSize  int
	Logger     *zerolog.Logger
}

// Hub is the single owner of the registry. Every command from every
// connection is applied by Run, one at a time, and the resulting broadcasts
// are handed to client channels before the next command is read.
type Hub struct {
	registry *Registry
	router   Router
	clients  map[string]*Client
	inbox    chan Command
	done     chan struct{}
	log      *zerolog.Logger
}

// NewHub creates a hub with its own empty registry.
func NewHub(cfg HubConfig) *Hub {
	router := NewRouter()
	if cfg.AdminName != "" {
		router.AdminName = cfg.AdminName
	}
	if cfg.TimeFormat != "" {
		router.TimeFormat = cfg.TimeFormat
	}
	if cfg.Clock != nil {
		router.Now = cfg.Clock
	}
	size := cfg.InboxSize
	if size <= 0 {
		size = defaultInboxSize
	}
	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry: NewRegistry(),
		router:   router,
		clients:  make(map[string]*Client),
		inbox:    make(chan Command, size),
		done:     make(chan struct{}),
		log:      logger,
	}
}

// Run processes commands until ctx is cancelled. On return every client's
// Events channel is closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case cmd := <-h.inbox:
			h.handle(cmd)
		}
	}
}

// Submit queues cmd for the hub. It fails if ctx ends or the hub has stopped
// before the command is accepted.
func (h *Hub) Submit(ctx context.Context, cmd Command) error {
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}
	select {
	case h.inbox <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHubStopped
	}
}

// RegisterClient connects c. The hub greets it with a welcome message.
func (h *Hub) RegisterClient(ctx context.Context, c *Client) error {
	return h.Submit(ctx, Command{Kind: CommandConnect, ClientID: c.ID, client: c})
}

// UnregisterClient disconnects c. It does not take a context so it can run
// after the connection's own context is gone; it returns once the hub has
// accepted the command or stopped.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.inbox <- Command{Kind: CommandDisconnect, ClientID: c.ID}:
	case <-h.done:
	}
}

// Snapshot returns the registry contents as seen between two commands.
func (h *Hub) Snapshot(ctx context.Context) ([]Connection, error) {
	reply := make(chan []Connection, 1)
	if err := h.Submit(ctx, Command{Kind: commandSnapshot, reply: reply}); err != nil {
		return nil, err
	}
	select {
	case conns := <-reply:
		return conns, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-h.done:
		return nil, ErrHubStopped
	}
}

func (h *Hub) handle(cmd Command) {
	if cmd.Kind == commandSnapshot {
		cmd.reply <- h.registry.Snapshot()
		return
	}

	if cmd.Kind == CommandConnect {
		h.connect(cmd)
		return
	}

	client, ok := h.clients[cmd.ClientID]
	if !ok {
		h.log.Debug().Str("client_id", cmd.ClientID).Stringer("kind", cmd.Kind).Msg("command for unknown client dropped")
		return
	}

	var t Transition
	switch cmd.Kind {
	case CommandEnterRoom:
		t = h.router.EnterRoom(h.registry, cmd.ClientID, cmd.Name, cmd.Room)
		if !t.Empty() {
			h.log.Info().Str("client_id", cmd.ClientID).Str("name", cmd.Name).Str("room", cmd.Room).Msg("entered room")
		}
	case CommandMessage:
		t = h.router.Message(h.registry, cmd.ClientID, cmd.Name, cmd.Text)
	case CommandActivity:
		t = h.router.Activity(h.registry, cmd.ClientID, cmd.Name)
	case CommandDisconnect:
		delete(h.clients, cmd.ClientID)
		t = h.router.Disconnect(h.registry, cmd.ClientID)
		close(client.Events)
		h.log.Info().Str("client_id", cmd.ClientID).Int("clients", len(h.clients)).Msg("client disconnected")
	default:
		h.log.Warn().Int("kind", int(cmd.Kind)).Msg("unknown command kind")
		return
	}

	if t.Empty() && cmd.Kind != CommandDisconnect {
		h.log.Debug().Str("client_id", cmd.ClientID).Stringer("kind", cmd.Kind).Msg("intent ignored")
	}
	h.dispatch(t)
}

func (h *Hub) connect(cmd Command) {
	if cmd.client == nil || cmd.ClientID == "" {
		h.log.Warn().Msg("connect without client dropped")
		return
	}
	if _, exists := h.clients[cmd.ClientID]; exists {
		h.log.Warn().Str("client_id", cmd.ClientID).Msg("duplicate client id dropped")
		return
	}
	h.clients[cmd.ClientID] = cmd.client
	h.log.Info().Str("client_id", cmd.ClientID).Int("clients", len(h.clients)).Msg("client connected")
	h.dispatch(h.router.Connect(h.registry, cmd.ClientID))
}

func (h *Hub) shutdown() {
	for id, c := range h.clients {
		close(c.Events)
		delete(h.clients, id)
	}
}
