package filestatus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubSubscribeAndUnsubscribe(t *testing.T) {
	hub := NewHub()

	var first, second []Event
	idFirst := hub.Subscribe(func(ev Event) { first = append(first, ev) })
	hub.Subscribe(func(ev Event) { second = append(second, ev) })

	hub.Broadcast(Event{Type: EventFileStatusUpdated, FileID: 1, FileStatus: "Processed"})
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("delivery counts: %d, %d", len(first), len(second))
	}

	hub.Unsubscribe(idFirst)
	hub.Broadcast(Event{Type: EventFileStatusUpdated, FileID: 2, FileStatus: "Failed"})
	if len(first) != 1 {
		t.Error("unsubscribed listener was still delivered to")
	}
	if len(second) != 2 {
		t.Errorf("remaining listener got %d events, want 2", len(second))
	}
}

// statusHubServer upgrades one connection, checks the subscribe frame,
// then replays the given events including any duplicates.
func statusHubServer(t *testing.T, events []Event) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var frame subscribeFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Errorf("read subscribe frame: %v", err)
			return
		}
		if frame.Action != "subscribe" || len(frame.Events) != 1 || frame.Events[0] != EventFileStatusUpdated {
			t.Errorf("unexpected subscribe frame: %+v", frame)
		}

		for _, ev := range events {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestConsumerDeliversEvents(t *testing.T) {
	events := []Event{
		{Type: EventFileStatusUpdated, FileID: 5, FileStatus: "Processing"},
		{Type: "SomethingElse", FileID: 5, FileStatus: "ignored"},
		{Type: EventFileStatusUpdated, FileID: 5, FileStatus: "Processed", DownloadLink: "https://files.example/5"},
		// Duplicate delivery from the hub is normal.
		{Type: EventFileStatusUpdated, FileID: 5, FileStatus: "Processed", DownloadLink: "https://files.example/5"},
	}
	srv := statusHubServer(t, events)
	defer srv.Close()

	hub := NewHub()
	received := make(chan Event, 8)
	hub.Subscribe(func(ev Event) { received <- ev })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumer(wsURL(srv), hub, 10*time.Millisecond)
	go consumer.Run(ctx)

	var got []Event
	timeout := time.After(2 * time.Second)
	for len(got) < 3 {
		select {
		case ev := <-received:
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("timed out with %d events: %+v", len(got), got)
		}
	}

	if got[0].FileStatus != "Processing" {
		t.Errorf("first event: %+v", got[0])
	}
	if got[1].FileStatus != "Processed" || got[1].DownloadLink != "https://files.example/5" {
		t.Errorf("second event: %+v", got[1])
	}
	// The duplicate arrives verbatim; dedup is the listener's job.
	if got[2] != got[1] {
		t.Errorf("duplicate not delivered as-is: %+v", got[2])
	}
	for _, ev := range got {
		if ev.Type != EventFileStatusUpdated {
			t.Errorf("foreign event type broadcast: %+v", ev)
		}
	}
}

func TestConsumerReconnectsAfterDrop(t *testing.T) {
	var dials atomic.Int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := dials.Add(1)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if n == 1 {
			// First connection drops immediately after the handshake.
			conn.Close()
			return
		}
		defer conn.Close()
		var frame subscribeFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		conn.WriteJSON(Event{Type: EventFileStatusUpdated, FileID: 9, FileStatus: "Processed"})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	hub := NewHub()
	received := make(chan Event, 1)
	hub.Subscribe(func(ev Event) { received <- ev })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumer(wsURL(srv), hub, 10*time.Millisecond)
	go consumer.Run(ctx)

	select {
	case ev := <-received:
		if ev.FileID != 9 {
			t.Errorf("event after reconnect: %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event after the connection dropped and redialed")
	}
	if dials.Load() < 2 {
		t.Errorf("dials = %d, want at least 2", dials.Load())
	}
}

func TestConsumerStopsOnCancel(t *testing.T) {
	srv := statusHubServer(t, nil)
	defer srv.Close()

	consumer := NewConsumer(wsURL(srv), NewHub(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		consumer.Run(ctx)
		close(stopped)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop on context cancel")
	}
}
