package filestatus

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

type subscribeFrame struct {
	Action string   `json:"action"`
	Events []string `json:"events"`
}

// Consumer maintains the websocket connection to the backend status
// hub. On any failure it waits a fixed delay and dials again; there is
// no backoff growth and no attempt limit. Run returns only when the
// context is canceled.
type Consumer struct {
	url    string
	hub    *Hub
	delay  time.Duration
	dialer *websocket.Dialer
}

func NewConsumer(url string, hub *Hub, delay time.Duration) *Consumer {
	return &Consumer{
		url:    url,
		hub:    hub,
		delay:  delay,
		dialer: websocket.DefaultDialer,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if err := c.connectAndRead(ctx); err != nil {
			slog.Warn("status channel disconnected", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.delay):
		}
	}
}

func (c *Consumer) connectAndRead(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock ReadJSON when the context is canceled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	if err := conn.WriteJSON(subscribeFrame{
		Action: "subscribe",
		Events: []string{EventFileStatusUpdated},
	}); err != nil {
		return err
	}

	slog.Info("status channel connected", "url", c.url)

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			return err
		}
		if ev.Type != EventFileStatusUpdated {
			continue
		}
		c.hub.Broadcast(ev)
	}
}
