package network

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/platform/config"
)

type recordingHandler struct {
	mu      sync.Mutex
	actions []PlayerAction
}

func (r *recordingHandler) HandleAction(a PlayerAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
	return nil
}

func (r *recordingHandler) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actions)
}

func startHub(t *testing.T, handler ActionHandler) (*Hub, *websocket.Conn) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(config.HubConfig{}, handler, nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return hub, conn
}

func TestBroadcastFrameReachesClient(t *testing.T) {
	hub, conn := startHub(t, nil)

	var f display.Frame
	f.Reset("Home")
	f.Text(1, 2, "12:00")
	hub.BroadcastFrame(f)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg struct {
		Type MessageType   `json:"type"`
		Data display.Frame `json:"data"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != MessageFrame || msg.Data.Scene != "Home" || msg.Data.Texts[0].Body != "12:00" {
		t.Errorf("unexpected message %s", raw)
	}
}

func TestActionsReachHandler(t *testing.T) {
	handler := &recordingHandler{}
	_, conn := startHub(t, handler)

	if err := conn.WriteJSON(PlayerAction{Type: ActionPress, Button: "MIDDLE"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for handler.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("action never arrived")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if handler.actions[0].Button != "MIDDLE" || handler.actions[0].Type != ActionPress {
		t.Errorf("unexpected action %+v", handler.actions[0])
	}
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub, conn := startHub(t, nil)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client still registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastWithoutRunDoesNotBlock(t *testing.T) {
	hub := NewHub(config.HubConfig{BroadcastBuffer: 1}, nil, nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Broadcast(Message{Type: MessageSong, Data: "ALARM"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full queue")
	}
}

type refusingHandler struct{}

func (refusingHandler) HandleAction(PlayerAction) error { return errors.New("no such button") }

func TestRejectedActionRepliesToSender(t *testing.T) {
	_, conn := startHub(t, refusingHandler{})

	if err := conn.WriteJSON(PlayerAction{Type: ActionPress, Button: "UP"}); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != MessageError || msg.Data != "no such button" {
		t.Errorf("unexpected reply %+v", msg)
	}
}

func TestMalformedActionIsRejected(t *testing.T) {
	_, conn := startHub(t, &recordingHandler{})

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != MessageError {
		t.Errorf("expected ERROR, got %+v", msg)
	}
}
