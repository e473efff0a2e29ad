package telemetry

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/milk9111/bossrush/encounter"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func read(t *testing.T, conn *websocket.Conn) encounter.Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var e encounter.Event
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return e
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", h.Clients(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubBroadcastsEvents(t *testing.T) {
	h := NewHub(8)
	srv := httptest.NewServer(h)
	defer srv.Close()

	h.Observe(encounter.Event{Type: encounter.EventBegin})

	a, b := dial(t, srv), dial(t, srv)
	defer a.Close()
	defer b.Close()
	waitClients(t, h, 2)

	for _, conn := range []*websocket.Conn{a, b} {
		if e := read(t, conn); e.Type != encounter.EventBegin {
			t.Fatalf("replayed %s, want begin", e.Type)
		}
	}

	h.Observe(encounter.Event{Type: encounter.EventPhaseChanged, Phase: "dj", SubPhase: "tutorial", Time: 1})
	for _, conn := range []*websocket.Conn{a, b} {
		e := read(t, conn)
		if e.Type != encounter.EventPhaseChanged || e.Phase != "dj" || e.Time != 1 {
			t.Fatalf("event = %+v", e)
		}
	}
}

func TestHubDropsClosedClients(t *testing.T) {
	h := NewHub(0)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv)
	waitClients(t, h, 1)
	conn.Close()
	waitClients(t, h, 0)

	if err := h.Publish(encounter.Event{Type: encounter.EventRestart}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
