package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirechat-relay/internal/proto"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "relaychat: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr, name, room string

	cmd := &cobra.Command{
		Use:           "relaychat",
		Short:         "Terminal client for the wirechat relay",
		Long:          "Joins a room and sends every stdin line as a message. A line of the form \"/join <room>\" switches rooms.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, addr, name, room, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "ws://localhost:3500/ws", "WebSocket address")
	cmd.Flags().StringVar(&name, "name", "cli-user", "display name")
	cmd.Flags().StringVar(&room, "room", "lobby", "room to enter")
	return cmd
}

func run(ctx context.Context, addr, name, room string, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if err := send(ctx, conn, proto.InboundTypeEnterRoom, proto.EnterRoomData{Name: name, Room: room}); err != nil {
		return err
	}

	fmt.Fprintf(out, "Connected to %s as %s in room %s\n", addr, name, room)
	fmt.Fprintln(out, "Type messages and press Enter to send. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn, out)
	}()

	return writeLoop(ctx, conn, name, in)
}

func send(ctx context.Context, conn *websocket.Conn, typ string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: payload}); err != nil {
		return fmt.Errorf("send %s: %w", typ, err)
	}
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn, out io.Writer) {
	for {
		var f frame
		if err := wsjson.Read(ctx, conn, &f); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			fmt.Fprintf(out, "read error: %v\n", err)
			return
		}
		if line, ok := render(f); ok {
			fmt.Fprintln(out, line)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, name string, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			typ, data := intent(name, line)
			if data == nil {
				continue
			}
			if err := send(ctx, conn, typ, data); err != nil {
				return err
			}
		}
	}
}

// intent turns one input line into a frame type and payload. Blank lines
// yield a nil payload.
func intent(name, line string) (string, any) {
	text := strings.TrimSpace(line)
	if text == "" {
		return "", nil
	}
	if room, ok := strings.CutPrefix(text, "/join "); ok {
		room = strings.TrimSpace(room)
		if room == "" {
			return "", nil
		}
		return proto.InboundTypeEnterRoom, proto.EnterRoomData{Name: name, Room: room}
	}
	return proto.InboundTypeMessage, proto.MessageData{Name: name, Text: text}
}
