package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bearpark/bear-slice/event"
	"github.com/bearpark/bear-slice/status"
)

func dial(t *testing.T, h *Hub, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	waitFor(t, func() bool { return h.Clients() > 0 })
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubStreamsNotifications(t *testing.T) {
	h := NewHub(nil)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()
	conn := dial(t, h, srv)

	h.HandleEvent(event.GameEvent{
		Type:    event.EventScoreChanged,
		Payload: &event.ScoreChangedPayload{Score: 120, Delta: 20},
		At:      1500 * time.Millisecond,
	})
	h.HandleEvent(event.GameEvent{Type: event.EventPaused, At: 2 * time.Second})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type    string                    `json:"type"`
		At      int64                     `json:"at"`
		Payload event.ScoreChangedPayload `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "score-changed" || msg.At != 1500 || msg.Payload.Score != 120 || msg.Payload.Delta != 20 {
		t.Errorf("message = %+v", msg)
	}

	var paused Message
	if err := conn.ReadJSON(&paused); err != nil {
		t.Fatalf("read: %v", err)
	}
	if paused.Type != "paused" || paused.Payload != nil {
		t.Errorf("paused message = %+v", paused)
	}
}

func TestHubDropsWhenClientLags(t *testing.T) {
	reg := status.NewRegistry()
	h := NewHub(reg)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()
	dial(t, h, srv)

	// Never read: the limiter burst and send buffer eventually overflow
	for i := 0; i < 1000; i++ {
		h.HandleEvent(event.GameEvent{Type: event.EventComboChanged, Payload: &event.ComboChangedPayload{Count: i}})
	}
	if reg.Ints.Get("feed.dropped").Load() == 0 {
		t.Error("no messages dropped for a lagging client")
	}
	if sent := reg.Ints.Get("feed.sent").Load(); sent == 0 || sent > 1000 {
		t.Errorf("sent = %d", sent)
	}
}

func TestHubStatus(t *testing.T) {
	reg := status.NewRegistry()
	reg.Ints.Get("round.best").Store(640)
	h := NewHub(reg)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}
	var got map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got["round.best"] != 640 {
		t.Errorf("status = %v", got)
	}
	if _, ok := got["feed.clients"]; !ok {
		t.Error("feed metrics missing from status")
	}
}

func TestHubClose(t *testing.T) {
	h := NewHub(nil)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()
	conn := dial(t, h, srv)

	h.Close()
	if h.Clients() != 0 {
		t.Errorf("%d clients after Close", h.Clients())
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read after Close = %v, want normal closure", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	late, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer late.Close()
	late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("late client read = %v, want going away", err)
	}
}
