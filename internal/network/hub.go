package network

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/MRamiBalles/sdop/internal/display"
	"github.com/MRamiBalles/sdop/internal/domain/sound"
	"github.com/MRamiBalles/sdop/internal/events"
	"github.com/MRamiBalles/sdop/internal/platform/config"
	"github.com/MRamiBalles/sdop/internal/platform/logger"
	"github.com/MRamiBalles/sdop/internal/platform/metrics"
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	direct     chan reply
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	handler    ActionHandler
	sendBuffer int
	logger     *logger.Logger
}

// NewHub initializes a new WebSocket Hub. Actions read from clients go to
// handler, which may be nil for a broadcast-only hub.
func NewHub(cfg config.HubConfig, handler ActionHandler, log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Discard()
	}
	if cfg.BroadcastBuffer <= 0 {
		cfg.BroadcastBuffer = 256
	}
	if cfg.ClientSendBuffer <= 0 {
		cfg.ClientSendBuffer = 64
	}
	return &Hub{
		broadcast:  make(chan []byte, cfg.BroadcastBuffer),
		direct:     make(chan reply, cfg.ClientSendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		handler:    handler,
		sendBuffer: cfg.ClientSendBuffer,
		logger:     log,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	m := metrics.Get()
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
				m.RecordWSConnection(-1)
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			m.RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				m.RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case r := <-h.direct:
			h.mu.Lock()
			if _, ok := h.clients[r.to]; ok {
				select {
				case r.to.send <- r.payload:
					m.RecordWSMessage(false)
				default:
				}
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					m.RecordWSMessage(false)
				default:
					// Slow consumer.
					close(client.send)
					delete(h.clients, client)
					m.RecordWSConnection(-1)
					m.RecordWSError()
					h.logger.Warn("Dropped slow WebSocket client")
				}
			}
			h.mu.Unlock()
		}
	}
}

// reply is a message addressed to one client. It passes through Run so it
// never races the hub closing the client's send channel.
type reply struct {
	to      *Client
	payload []byte
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast serializes msg and queues it for every client. It never blocks
// the caller; when the queue is full the message is dropped.
func (h *Hub) Broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Errorf("Failed to serialize %s message for WebSocket broadcast: %v", msg.Type, err)
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		metrics.Get().RecordWSError()
		h.logger.Warn("Broadcast queue full, dropping " + string(msg.Type))
	}
}

func (h *Hub) BroadcastFrame(f display.Frame) {
	h.Broadcast(Message{Type: MessageFrame, Data: f})
}

func (h *Hub) BroadcastEvents(evs []events.GameEvent) {
	for _, e := range evs {
		h.Broadcast(Message{Type: MessageEvent, Data: e})
	}
}

func (h *Hub) BroadcastSongs(songs []sound.SongID) {
	for _, s := range songs {
		h.Broadcast(Message{Type: MessageSong, Data: s.String()})
	}
}
